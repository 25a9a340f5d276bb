package discord

import (
	"bytes"
	"strings"

	"github.com/bwmarrin/discordgo"

	"pewpager/pkg/pager"
)

func toEmbeds(in []pager.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(in))
	for _, e := range in {
		out = append(out, toEmbed(e))
	}
	return out
}

func toEmbed(e pager.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}
	if e.Author != nil {
		me.Author = &discordgo.MessageEmbedAuthor{Name: e.Author.Name, URL: e.Author.URL, IconURL: e.Author.IconURL}
	}
	if e.Thumbnail != nil {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.Thumbnail.URL}
	}
	if e.Image != nil {
		me.Image = &discordgo.MessageEmbedImage{URL: e.Image.URL}
	}
	if e.Footer != nil {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer.Text, IconURL: e.Footer.IconURL}
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return me
}

func toComponents(rows []pager.Row) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, r := range rows {
		row := discordgo.ActionsRow{}
		for _, b := range r.Buttons {
			row.Components = append(row.Components, toButton(b))
		}
		out = append(out, row)
	}
	return out
}

func toButton(b pager.Button) discordgo.Button {
	btn := discordgo.Button{
		Label:    b.Label,
		Style:    toStyle(b.Style),
		Disabled: b.Disabled,
		Emoji:    parseEmoji(b.Emoji),
		CustomID: b.CustomID,
	}
	if b.URL != "" {
		btn.Style = discordgo.LinkButton
		btn.URL = b.URL
		btn.CustomID = ""
	}
	return btn
}

func toStyle(s pager.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case pager.StylePrimary:
		return discordgo.PrimaryButton
	case pager.StyleSuccess:
		return discordgo.SuccessButton
	case pager.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

// parseEmoji accepts a unicode emoji or a custom one written as <:name:id>
// or <a:name:id>.
func parseEmoji(s string) *discordgo.ComponentEmoji {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		parts := strings.Split(s[1:len(s)-1], ":")
		if len(parts) == 3 {
			return &discordgo.ComponentEmoji{
				Name:     parts[1],
				ID:       parts[2],
				Animated: parts[0] == "a",
			}
		}
	}
	return &discordgo.ComponentEmoji{Name: s}
}

func toFiles(in []pager.Attachment) []*discordgo.File {
	if len(in) == 0 {
		return nil
	}
	out := make([]*discordgo.File, 0, len(in))
	for _, a := range in {
		out = append(out, &discordgo.File{
			Name:        a.Name,
			ContentType: a.ContentType,
			Reader:      bytes.NewReader(a.Data),
		})
	}
	return out
}

func flags(p *pager.Payload) discordgo.MessageFlags {
	if p.Ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// responseData builds an interaction response. Files are only attached when
// withFiles is set; page turns reuse the files of the first message.
func responseData(p *pager.Payload, withFiles bool) *discordgo.InteractionResponseData {
	d := &discordgo.InteractionResponseData{
		Content:    p.ContentString(),
		Embeds:     toEmbeds(p.Embeds),
		Components: toComponents(p.Components),
	}
	if withFiles {
		d.Files = toFiles(p.Files)
	}
	return d
}

func webhookEdit(p *pager.Payload) *discordgo.WebhookEdit {
	content := p.ContentString()
	embeds := toEmbeds(p.Embeds)
	components := toComponents(p.Components)
	return &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &embeds,
		Components: &components,
		Files:      toFiles(p.Files),
	}
}

func webhookParams(p *pager.Payload) *discordgo.WebhookParams {
	return &discordgo.WebhookParams{
		Content:    p.ContentString(),
		Embeds:     toEmbeds(p.Embeds),
		Components: toComponents(p.Components),
		Files:      toFiles(p.Files),
		Flags:      flags(p),
	}
}

func messageSend(p *pager.Payload, ref *discordgo.MessageReference) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    p.ContentString(),
		Embeds:     toEmbeds(p.Embeds),
		Components: toComponents(p.Components),
		Files:      toFiles(p.Files),
		Reference:  ref,
	}
}
