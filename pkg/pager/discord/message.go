package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"pewpager/pkg/pager"
)

// Message is a pager handle for a text command. It can reply to the message
// or send to its channel. Ephemeral payloads are sent as normal messages.
type Message struct {
	s   Session
	m   *discordgo.Message
	cfg config
}

var (
	_ pager.Replier       = (*Message)(nil)
	_ pager.ChannelSender = (*Message)(nil)
)

func FromMessage(s Session, mc *discordgo.MessageCreate, opts ...Option) *Message {
	return &Message{s: s, m: mc.Message, cfg: newConfig(opts)}
}

func (h *Message) UserID() string {
	if h.m.Author == nil {
		return ""
	}
	return h.m.Author.ID
}

func (h *Message) Reply(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	return h.send(ctx, p, h.m.Reference())
}

func (h *Message) HasChannel() bool { return h.m.ChannelID != "" }

func (h *Message) Send(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	return h.send(ctx, p, nil)
}

func (h *Message) send(ctx context.Context, p *pager.Payload, ref *discordgo.MessageReference) (pager.Message, error) {
	msg, err := h.s.ChannelMessageSendComplex(h.m.ChannelID, messageSend(p, ref), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &SentMessage{s: h.s, msg: msg, cfg: h.cfg}, nil
}
