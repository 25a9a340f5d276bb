package pager

// Embed is the rich-message value a page is rendered into. It mirrors the
// fields chat platforms commonly support; bridges convert it to their own
// types.
type Embed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Timestamp   string // RFC 3339, empty for none

	Author    *EmbedAuthor
	Thumbnail *EmbedImage
	Image     *EmbedImage
	Footer    *EmbedFooter
	Fields    []EmbedField
}

type EmbedAuthor struct {
	Name    string
	URL     string
	IconURL string
}

type EmbedImage struct {
	URL string
}

type EmbedFooter struct {
	Text    string
	IconURL string
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Clone returns a deep copy of e.
func (e Embed) Clone() Embed {
	out := e
	if e.Author != nil {
		a := *e.Author
		out.Author = &a
	}
	if e.Thumbnail != nil {
		t := *e.Thumbnail
		out.Thumbnail = &t
	}
	if e.Image != nil {
		i := *e.Image
		out.Image = &i
	}
	if e.Footer != nil {
		f := *e.Footer
		out.Footer = &f
	}
	out.Fields = cloneFields(e.Fields)
	return out
}

// IsEmpty reports whether e carries nothing renderable.
func (e Embed) IsEmpty() bool {
	return e.Title == "" && e.Description == "" && e.URL == "" && e.Author == nil &&
		e.Thumbnail == nil && e.Image == nil && e.Footer == nil && len(e.Fields) == 0
}

func cloneFields(in []EmbedField) []EmbedField {
	if in == nil {
		return nil
	}
	return append([]EmbedField(nil), in...)
}

func cloneEmbeds(in []Embed) []Embed {
	if in == nil {
		return nil
	}
	out := make([]Embed, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
