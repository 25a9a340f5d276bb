package telegram

import (
	"bytes"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v4"

	"pewpager/pkg/pager"
)

// view is a payload rendered for Telegram.
type view struct {
	text   string
	image  string
	markup *tele.ReplyMarkup
	// dropped lists buttons whose custom id does not fit in callback data.
	dropped []string
}

const emptyText = "(empty)"

// render converts p to Telegram HTML. Text longer than the message limit, or
// the caption limit for image pages and asCaption, is shortened: descriptions
// first, then trailing fields, then the content.
func render(p *pager.Payload, asCaption bool) view {
	var image string
	for _, e := range p.Embeds {
		if e.Image != nil && e.Image.URL != "" {
			image = e.Image.URL
			break
		}
	}
	limit := maxTextLen
	if image != "" || asCaption {
		limit = maxCaptionLen
	}

	content := strings.TrimSpace(p.ContentString())
	embeds := append([]pager.Embed(nil), p.Embeds...)
	text := compose(content, embeds)
	for over := visibleLen(text) - limit; over > 0; over = visibleLen(text) - limit {
		if !shrink(&content, embeds, over) {
			break
		}
		text = compose(content, embeds)
	}
	if text == "" {
		text = emptyText
	}

	markup, dropped := keyboard(p.Components)
	return view{text: string(text), image: image, markup: markup, dropped: dropped}
}

func compose(content string, embeds []pager.Embed) htmlText {
	parts := []htmlText{esc(content)}
	for _, e := range embeds {
		parts = append(parts, renderEmbed(e)...)
	}
	return joinHTML("\n\n", parts...)
}

func renderEmbed(e pager.Embed) []htmlText {
	var parts []htmlText
	if e.Author != nil && e.Author.Name != "" {
		parts = append(parts, italic(e.Author.Name))
	}
	if e.Title != "" {
		title := bold(e.Title)
		if e.URL != "" {
			title = link(e.URL, title)
		}
		parts = append(parts, title)
	}
	parts = append(parts, esc(strings.Trim(e.Description, "\n")))
	for _, f := range e.Fields {
		parts = append(parts, bold(f.Name)+"\n"+esc(f.Value))
	}
	if e.Footer != nil && e.Footer.Text != "" {
		parts = append(parts, italic(e.Footer.Text))
	}
	return parts
}

// shrink removes at least over visible characters from the longest
// description, else the last field, else the content. It reports false when
// nothing is left to remove.
func shrink(content *string, embeds []pager.Embed, over int) bool {
	longest, n := -1, 0
	for i, e := range embeds {
		if l := utf8.RuneCountInString(e.Description); l > n {
			longest, n = i, l
		}
	}
	if longest >= 0 {
		embeds[longest].Description = truncRunes(embeds[longest].Description, n-over-1)
		return true
	}
	for i := len(embeds) - 1; i >= 0; i-- {
		if f := embeds[i].Fields; len(f) > 0 {
			embeds[i].Fields = f[:len(f)-1]
			return true
		}
	}
	if n := utf8.RuneCountInString(*content); n > 0 {
		*content = truncRunes(*content, n-over-1)
		return true
	}
	return false
}

// keyboard returns nil when no button is enabled, which also removes the
// keyboard of an edited message.
func keyboard(rows []pager.Row) (*tele.ReplyMarkup, []string) {
	var (
		kb      [][]tele.InlineButton
		dropped []string
	)
	for _, r := range rows {
		var row []tele.InlineButton
		for _, b := range r.Buttons {
			if b.Disabled {
				continue
			}
			btn := tele.InlineButton{Text: buttonText(b), Data: b.CustomID}
			if b.URL != "" {
				btn.URL = b.URL
				btn.Data = ""
			} else if len(btn.Data) > maxCallbackDataLen {
				dropped = append(dropped, b.CustomID)
				continue
			}
			row = append(row, btn)
		}
		if len(row) > 0 {
			kb = append(kb, row)
		}
	}
	if len(kb) == 0 {
		return nil, dropped
	}
	return &tele.ReplyMarkup{InlineKeyboard: kb}, dropped
}

func buttonText(b pager.Button) string {
	emoji := b.Emoji
	// custom platform emoji (<:name:id>) cannot be shown in Telegram
	if strings.HasPrefix(emoji, "<") {
		emoji = ""
	}
	if t := strings.TrimSpace(emoji + " " + b.Label); t != "" {
		return t
	}
	return b.CustomID
}

func (v view) options() *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		ReplyMarkup:           v.markup,
		DisableWebPagePreview: true,
	}
}

// what is the value passed to Bot.Send: a photo with caption for image
// pages, text otherwise.
func (v view) what() interface{} {
	if v.image != "" {
		return &tele.Photo{File: tele.FromURL(v.image), Caption: v.text}
	}
	return v.text
}

func documents(files []pager.Attachment) []*tele.Document {
	out := make([]*tele.Document, 0, len(files))
	for _, f := range files {
		out = append(out, &tele.Document{
			File:     tele.FromReader(bytes.NewReader(f.Data)),
			FileName: f.Name,
			MIME:     f.ContentType,
		})
	}
	return out
}
