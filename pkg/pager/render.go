package pager

import (
	"slices"
	"strconv"
	"strings"
)

const (
	defaultFooter = "Pages: {pageNumber}/{totalPages}"

	tokenPageNumber = "{pageNumber}"
	tokenTotalPages = "{totalPages}"
)

// Ready finalizes the paginator before the first send: it computes the page
// totals, builds the navigation buttons and renders the current page.
func (p *Paginator) Ready() (*Payload, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.readyLocked(); err != nil {
		return nil, err
	}
	return p.snapshotLocked(), nil
}

func (p *Paginator) readyLocked() error {
	// whole embeds are always one per page, whatever limit was set after them
	if len(p.embeds) > 0 {
		p.opts.Limit = 1
	}
	if p.opts.Limit <= 0 {
		return ErrInvalidLimit
	}

	if p.fieldPaginate {
		p.pageFields = cloneFields(p.rawFields)
	} else if len(p.rawFields) > 0 {
		p.embed.Fields = cloneFields(p.rawFields)
	}

	p.totalEntries = len(p.embeds)
	if p.totalEntries == 0 {
		p.totalEntries = max(len(p.descriptions), len(p.images))
		if p.fieldPaginate {
			p.totalEntries = max(p.totalEntries, len(p.rawFields))
		}
	}
	p.totalPages = (p.totalEntries + p.opts.Limit - 1) / p.opts.Limit

	if !p.customButtons {
		p.buttons = p.buildButtons()
	}
	p.refreshButtonsLocked()

	p.goToPageLocked(p.currentPage)
	return nil
}

func (p *Paginator) buildButtons() Buttons {
	var b Buttons
	for _, id := range []ButtonID{ButtonFirst, ButtonPrev, ButtonNext, ButtonLast} {
		a := p.appearance.get(id)
		*b.Get(id) = Button{
			CustomID: id.CustomID(),
			Label:    a.Label,
			Emoji:    a.Emoji,
			Style:    a.Style,
		}
	}
	return b
}

// refreshButtonsLocked derives the disabled flags from the current page.
// Without loop, first/prev are disabled on page 1 and next/last on the last
// page; with a single page everything is disabled.
func (p *Paginator) refreshButtonsLocked() {
	all := []ButtonID{ButtonFirst, ButtonPrev, ButtonNext, ButtonLast}
	if p.totalEntries <= p.opts.Limit {
		p.buttons.setDisabled(true, all...)
		return
	}
	if p.opts.Loop {
		p.buttons.setDisabled(false, all...)
		return
	}
	p.buttons.setDisabled(p.currentPage <= 1, ButtonFirst, ButtonPrev)
	p.buttons.setDisabled(p.currentPage >= p.totalPages, ButtonNext, ButtonLast)
}

// GoToPage renders page n. Out of range pages wrap around: n < 1 goes to the
// last page and n past the last page goes to page 1, whether or not loop is
// enabled. Button state is not touched.
func (p *Paginator) GoToPage(n int) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.goToPageLocked(n)
	p.snapshotLocked()
	return p
}

func (p *Paginator) goToPageLocked(n int) {
	if n < 1 {
		n = p.totalPages
	}
	if n > p.totalPages {
		n = 1
	}
	if n < 1 {
		n = 1
	}
	p.currentPage = n

	if len(p.embeds) > 0 {
		return
	}

	if !p.footerCached {
		p.footerTmpl = defaultFooter
		if p.embed.Footer != nil && p.embed.Footer.Text != "" {
			p.footerTmpl = p.embed.Footer.Text
		}
		p.footerCached = true
	}
	footer := EmbedFooter{Text: p.footerText()}
	if p.embed.Footer != nil {
		footer.IconURL = p.embed.Footer.IconURL
	}
	p.embed.Footer = &footer

	if len(p.images) > 0 {
		p.embed.Image = nil
		if n <= len(p.images) {
			p.embed.Image = &EmbedImage{URL: p.images[n-1]}
		}
	}

	if len(p.descriptions) > 0 {
		p.embed.Description = p.opts.PrevDescription + "\n" +
			strings.Join(pageSlice(p.descriptions, n, p.opts.Limit), "\n") +
			"\n" + p.opts.PostDescription
	}

	if p.fieldPaginate {
		p.embed.Fields = slices.Clone(pageSlice(p.pageFields, n, p.opts.Limit))
	}
}

func (p *Paginator) footerText() string {
	return strings.NewReplacer(
		tokenPageNumber, strconv.Itoa(p.currentPage),
		tokenTotalPages, strconv.Itoa(p.totalPages),
	).Replace(p.footerTmpl)
}

// pageSlice returns the half-open window [(page-1)*limit, page*limit) of s.
func pageSlice[T any](s []T, page, limit int) []T {
	lo := min((page-1)*limit, len(s))
	hi := min(page*limit, len(s))
	return s[lo:hi]
}

func (p *Paginator) contentLocked() *string {
	if p.hasContents {
		if p.currentPage-1 < len(p.opts.Contents) {
			c := p.opts.Contents[p.currentPage-1]
			return &c
		}
		return nil
	}
	if p.content == nil {
		return nil
	}
	c := *p.content
	return &c
}

// rowsLocked assembles the action rows: rows added above the navigation row
// in insertion order, the navigation row, then rows added below.
func (p *Paginator) rowsLocked() []Row {
	var above, below []Row
	for _, x := range p.extraRows {
		for _, r := range x.rows {
			if x.position == RowAbove {
				above = append(above, cloneRow(r))
			} else {
				below = append(below, cloneRow(r))
			}
		}
	}
	rows := make([]Row, 0, len(above)+1+len(below))
	rows = append(rows, above...)
	rows = append(rows, p.buttons.Row())
	return append(rows, below...)
}

// snapshotLocked builds the payload for the current page and keeps a copy
// as the paginator's last rendered view.
func (p *Paginator) snapshotLocked() *Payload {
	out := &Payload{
		Content:    p.contentLocked(),
		Files:      append([]Attachment(nil), p.opts.Attachments...),
		Components: p.rowsLocked(),
		Ephemeral:  p.opts.Ephemeral,
	}
	if len(p.embeds) > 0 {
		i := min(p.currentPage, len(p.embeds)) - 1
		out.Embeds = []Embed{p.embeds[i].Clone()}
	} else {
		out.Embeds = []Embed{p.embed.Clone()}
	}
	p.payload = *out.clone()
	return out
}
