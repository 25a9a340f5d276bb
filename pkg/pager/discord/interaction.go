package discord

import (
	"context"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"pewpager/pkg/pager"
)

// Interaction is a pager handle for an application command or component
// interaction. It remembers whether the interaction was already answered so
// pager.Paginator.Render can choose between reply and edit.
type Interaction struct {
	s     Session
	i     *discordgo.Interaction
	cfg   config
	acked atomic.Bool
}

var (
	_ pager.Replier       = (*Interaction)(nil)
	_ pager.EditReplier   = (*Interaction)(nil)
	_ pager.FollowUpper   = (*Interaction)(nil)
	_ pager.Updater       = (*Interaction)(nil)
	_ pager.ChannelSender = (*Interaction)(nil)
	_ pager.Acknowledger  = (*Interaction)(nil)
)

func FromInteraction(s Session, ic *discordgo.InteractionCreate, opts ...Option) *Interaction {
	return &Interaction{s: s, i: ic.Interaction, cfg: newConfig(opts)}
}

// Raw returns the wrapped interaction.
func (h *Interaction) Raw() *discordgo.Interaction { return h.i }

func (h *Interaction) UserID() string { return interactionUserID(h.i) }

func (h *Interaction) Acknowledged() bool { return h.acked.Load() }

// Defer acknowledges the interaction with a loading state; the paginator
// then renders through EditReply.
func (h *Interaction) Defer(ctx context.Context, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := h.s.InteractionRespond(h.i, resp, discordgo.WithContext(ctx)); err != nil {
		return err
	}
	h.acked.Store(true)
	return nil
}

func (h *Interaction) Reply(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	data := responseData(p, true)
	data.Flags = flags(p)
	err := h.s.InteractionRespond(h.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	h.acked.Store(true)
	msg, err := h.s.InteractionResponse(h.i, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return h.sent(msg), nil
}

func (h *Interaction) EditReply(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	msg, err := h.s.InteractionResponseEdit(h.i, webhookEdit(p), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return h.sent(msg), nil
}

func (h *Interaction) FollowUp(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	msg, err := h.s.FollowupMessageCreate(h.i, true, webhookParams(p), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return h.sent(msg), nil
}

// Update replaces the message a component interaction was triggered on.
// Other interaction types fail with a pager.PreconditionError.
func (h *Interaction) Update(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	if h.i.Type != discordgo.InteractionMessageComponent || h.i.Message == nil {
		return nil, &pager.PreconditionError{Op: "update", Err: pager.ErrUnsupported}
	}
	err := h.s.InteractionRespond(h.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(p, true),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	h.acked.Store(true)
	return h.sent(h.i.Message), nil
}

func (h *Interaction) HasChannel() bool { return h.i.ChannelID != "" }

func (h *Interaction) Send(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	msg, err := h.s.ChannelMessageSendComplex(h.i.ChannelID, messageSend(p, nil), discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return h.sent(msg), nil
}

func (h *Interaction) sent(msg *discordgo.Message) *SentMessage {
	return &SentMessage{s: h.s, msg: msg, cfg: h.cfg}
}

func interactionUserID(i *discordgo.Interaction) string {
	switch {
	case i == nil:
		return ""
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	}
	return ""
}
