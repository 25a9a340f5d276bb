package pager

// Attachment is a file sent with the first page.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Payload is the rendered page view handed to a host bridge.
type Payload struct {
	// Content is the plain message text; nil means "no content".
	Content    *string
	Embeds     []Embed
	Files      []Attachment
	Components []Row
	Ephemeral  bool
}

// ContentString returns Content or "".
func (p *Payload) ContentString() string {
	if p == nil || p.Content == nil {
		return ""
	}
	return *p.Content
}

func (p *Payload) clone() *Payload {
	out := &Payload{
		Embeds:    cloneEmbeds(p.Embeds),
		Files:     append([]Attachment(nil), p.Files...),
		Ephemeral: p.Ephemeral,
	}
	if p.Content != nil {
		c := *p.Content
		out.Content = &c
	}
	if p.Components != nil {
		out.Components = make([]Row, len(p.Components))
		for i, r := range p.Components {
			out.Components[i] = cloneRow(r)
		}
	}
	return out
}
