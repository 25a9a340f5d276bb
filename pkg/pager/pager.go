package pager

import (
	"slices"
	"sync"
	"time"

	logx "pewpager/pkg/logx"
)

// Paginator owns paged content, navigation state and the embed the pages are
// rendered into.
//
// All methods are safe for concurrent use; host bridges deliver clicks on
// their own goroutines.
type Paginator struct {
	mu sync.Mutex

	handle Handle
	opts   Options
	log    logx.Logger

	appearance    ButtonsAppearance
	buttons       Buttons
	customButtons bool

	embed        Embed
	descriptions []string
	images       []string
	embeds       []Embed

	rawFields     []EmbedField
	pageFields    []EmbedField // snapshot of rawFields taken by Ready
	fieldPaginate bool

	content     *string
	hasContents bool

	extraRows []extraRows

	authorized []string

	totalEntries int
	totalPages   int
	currentPage  int

	footerTmpl   string
	footerCached bool

	payload   Payload
	collector Collector
}

type extraRows struct {
	rows     []Row
	position RowPosition
}

// New creates a paginator for the given handle. The handle's user becomes
// the only authorized user; see SetAuthorizedUsers.
func New(h Handle, opts ...Option) (*Paginator, error) {
	if h == nil {
		return nil, &ConfigurationError{Reason: "handle is nil"}
	}
	if !isHandle(h) {
		return nil, &ConfigurationError{Reason: "handle is neither a message nor an interaction"}
	}

	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	log := o.Logger
	if log.IsZero() {
		log = logx.Nop()
	}

	p := &Paginator{
		handle:      h,
		log:         log,
		currentPage: 1,
	}
	p.applyOptions(o)
	if id := h.UserID(); id != "" {
		p.authorized = []string{id}
	}
	return p, nil
}

func (p *Paginator) applyOptions(o Options) {
	o.Attachments = append([]Attachment(nil), o.Attachments...)
	p.opts = o
	p.appearance = o.appearance()
	if len(o.Contents) > 0 {
		p.hasContents = true
	}
}

// SetOptions replaces the options, keeping content and custom buttons.
func (p *Paginator) SetOptions(o Options) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	if o.Logger.IsZero() {
		o.Logger = p.opts.Logger
	}
	p.applyOptions(o)
	if !o.Logger.IsZero() {
		p.log = o.Logger
	}
	return p
}

// Handle returns the triggering handle.
func (p *Paginator) Handle() Handle { return p.handle }

// ---- content ----

func (p *Paginator) SetDescriptions(d ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.descriptions = slices.Clone(d)
	return p
}

func (p *Paginator) AddDescriptions(d ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.descriptions = append(p.descriptions, d...)
	return p
}

func (p *Paginator) SetImages(urls ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images = slices.Clone(urls)
	return p
}

func (p *Paginator) AddImages(urls ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images = append(p.images, urls...)
	return p
}

// EmbedTemplate transforms an embed before it is paginated; i is its index
// in the list being set or added.
type EmbedTemplate func(e Embed, i int, all []Embed) Embed

// SetEmbeds paginates over whole embeds, one per page. Descriptions, images,
// fields and the paginator's own embed are then ignored for rendering.
func (p *Paginator) SetEmbeds(embeds []Embed, tmpl EmbedTemplate) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.embeds = applyTemplate(embeds, tmpl)
	p.opts.Limit = 1
	return p
}

func (p *Paginator) AddEmbeds(embeds []Embed, tmpl EmbedTemplate) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.embeds = append(p.embeds, applyTemplate(embeds, tmpl)...)
	p.opts.Limit = 1
	return p
}

func applyTemplate(embeds []Embed, tmpl EmbedTemplate) []Embed {
	out := cloneEmbeds(embeds)
	if tmpl == nil {
		return out
	}
	for i := range out {
		out[i] = tmpl(out[i].Clone(), i, embeds)
	}
	return out
}

// SetFields replaces the embed fields. They are shown as-is unless
// PaginateFields is enabled.
func (p *Paginator) SetFields(f ...EmbedField) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rawFields = cloneFields(f)
	return p
}

func (p *Paginator) AddFields(f ...EmbedField) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rawFields = append(p.rawFields, f...)
	return p
}

// SpliceFields removes deleteCount fields starting at index and inserts f
// there. A negative index counts from the end; both are clamped to the
// field list.
func (p *Paginator) SpliceFields(index, deleteCount int, f ...EmbedField) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.rawFields)
	if index < 0 {
		index = max(n+index, 0)
	}
	index = min(index, n)
	end := index + min(max(deleteCount, 0), n-index)
	p.rawFields = slices.Concat(p.rawFields[:index], cloneFields(f), p.rawFields[end:])
	return p
}

// PaginateFields makes the embed fields the paged content.
func (p *Paginator) PaginateFields(v bool) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fieldPaginate = v
	return p
}

// SetContent sets one message text shown on every page.
func (p *Paginator) SetContent(s string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.content = &s
	p.opts.Contents = nil
	p.hasContents = false
	return p
}

// SetContents sets a message text per page; pages past the end get none.
func (p *Paginator) SetContents(c ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.content = nil
	p.opts.Contents = slices.Clone(c)
	p.hasContents = true
	return p
}

func (p *Paginator) SetAttachments(a ...Attachment) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Attachments = append([]Attachment(nil), a...)
	return p
}

func (p *Paginator) AddAttachment(a Attachment) *Paginator {
	return p.AddAttachments(a)
}

func (p *Paginator) AddAttachments(a ...Attachment) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Attachments = append(p.opts.Attachments, a...)
	return p
}

// ---- embed ----

func (p *Paginator) SetTitle(s string) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Title = s })
}

func (p *Paginator) SetURL(s string) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.URL = s })
}

func (p *Paginator) SetColor(c int) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Color = c })
}

func (p *Paginator) SetAuthor(name, url, iconURL string) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Author = &EmbedAuthor{Name: name, URL: url, IconURL: iconURL} })
}

func (p *Paginator) SetThumbnail(url string) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Thumbnail = &EmbedImage{URL: url} })
}

func (p *Paginator) SetTimestamp(t time.Time) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Timestamp = t.UTC().Format(time.RFC3339) })
}

// SetFooter sets a custom footer. The text may use the {pageNumber} and
// {totalPages} tokens; it is captured as the footer template the first time
// a page is rendered.
func (p *Paginator) SetFooter(text, iconURL string) *Paginator {
	return p.EditEmbed(func(e *Embed) { e.Footer = &EmbedFooter{Text: text, IconURL: iconURL} })
}

// EditEmbed edits the paginator's embed in place.
func (p *Paginator) EditEmbed(fn func(e *Embed)) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.embed)
	return p
}

// BuildEmbed returns a copy of the paginator's embed as last rendered.
func (p *Paginator) BuildEmbed() Embed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.embed.Clone()
}

// ---- options ----

func (p *Paginator) SetLimit(n int) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Limit = n
	return p
}

// SetIdle sets the idle timeout; see Options.Idle.
func (p *Paginator) SetIdle(d time.Duration) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Idle = d
	return p
}

func (p *Paginator) SetEphemeral(v bool) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Ephemeral = v
	return p
}

func (p *Paginator) SetLoop(v bool) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Loop = v
	return p
}

func (p *Paginator) SetPrevDescription(s string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.PrevDescription = s
	return p
}

func (p *Paginator) SetPostDescription(s string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.PostDescription = s
	return p
}

// SetEmojis sets the button emojis; empty values keep the current ones.
func (p *Paginator) SetEmojis(first, prev, next, last string) *Paginator {
	return p.SetButtonAppearance(ButtonsAppearance{
		First: ButtonAppearance{Emoji: first},
		Prev:  ButtonAppearance{Emoji: prev},
		Next:  ButtonAppearance{Emoji: next},
		Last:  ButtonAppearance{Emoji: last},
	})
}

// SetLabels sets the button labels; empty values keep the current ones.
func (p *Paginator) SetLabels(first, prev, next, last string) *Paginator {
	return p.SetButtonAppearance(ButtonsAppearance{
		First: ButtonAppearance{Label: first},
		Prev:  ButtonAppearance{Label: prev},
		Next:  ButtonAppearance{Label: next},
		Last:  ButtonAppearance{Label: last},
	})
}

// SetStyle applies one style to all four buttons.
func (p *Paginator) SetStyle(s ButtonStyle) *Paginator {
	return p.SetButtonAppearance(ButtonsAppearance{
		First: ButtonAppearance{Style: s},
		Prev:  ButtonAppearance{Style: s},
		Next:  ButtonAppearance{Style: s},
		Last:  ButtonAppearance{Style: s},
	})
}

// SetButtonAppearance customizes each button; zero values keep the current
// appearance.
func (p *Paginator) SetButtonAppearance(a ButtonsAppearance) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range []ButtonID{ButtonFirst, ButtonPrev, ButtonNext, ButtonLast} {
		p.appearance.get(id).merge(*a.get(id))
	}
	return p
}

// SetButtons installs caller-built navigation buttons. Their custom ids and
// appearance are kept as given; only the disabled state is managed.
func (p *Paginator) SetButtons(b Buttons) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttons = b
	p.customButtons = true
	return p
}

// AddActionRows adds caller rows above or below the navigation row.
func (p *Paginator) AddActionRows(position RowPosition, rows ...Row) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]Row, len(rows))
	for i, r := range rows {
		cp[i] = cloneRow(r)
	}
	p.extraRows = append(p.extraRows, extraRows{rows: cp, position: position})
	return p
}

// ---- authorization ----

// SetAuthorizedUsers replaces the users allowed to navigate. An empty list
// lets everyone navigate.
func (p *Paginator) SetAuthorizedUsers(ids ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authorized = slices.Clone(ids)
	return p
}

func (p *Paginator) AddAuthorizedUser(id string) *Paginator {
	return p.AddAuthorizedUsers(id)
}

func (p *Paginator) AddAuthorizedUsers(ids ...string) *Paginator {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(p.authorized, id) {
			p.authorized = append(p.authorized, id)
		}
	}
	return p
}

// AuthorizedUsers returns a copy of the authorized user ids.
func (p *Paginator) AuthorizedUsers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.authorized)
}

// IsAuthorized reports whether userID may navigate.
func (p *Paginator) IsAuthorized(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.authorized) == 0 || slices.Contains(p.authorized, userID)
}

// ---- state ----

func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

func (p *Paginator) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages
}

func (p *Paginator) TotalEntries() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalEntries
}

func (p *Paginator) Limit() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Limit
}

func (p *Paginator) Idle() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Idle
}

func (p *Paginator) Loop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Loop
}

// Buttons returns the navigation buttons with their current state.
func (p *Paginator) Buttons() Buttons {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons
}

// Payload returns a copy of the last rendered page view; it is empty
// before Ready.
func (p *Paginator) Payload() *Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payload.clone()
}

// Collector returns the active collector, or nil before Paginate.
func (p *Paginator) Collector() Collector {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collector
}
