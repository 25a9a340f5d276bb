package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	logx "pewpager/pkg/logx"
	"pewpager/pkg/pager"
)

// SentMessage is a message the paginator was rendered into.
type SentMessage struct {
	s   Session
	msg *discordgo.Message
	cfg config
}

var _ pager.Message = (*SentMessage)(nil)

// Raw returns the discord message.
func (m *SentMessage) Raw() *discordgo.Message { return m.msg }

// Collect registers an InteractionCreate handler for button presses on this
// message. The handler is removed when the collector stops.
func (m *SentMessage) Collect(opts pager.CollectOptions, fn pager.ClickFunc) (pager.Collector, error) {
	if m.msg == nil || m.msg.ID == "" {
		return nil, &pager.PreconditionError{Op: "collect", Err: pager.ErrUnsupported}
	}
	c := pager.NewIdleCollector(opts, fn)
	log := m.cfg.log.With(logx.String("message", m.msg.ID))

	remove := m.s.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		if !m.owns(ic) {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.clickTimeout)
		defer cancel()
		c.Dispatch(ctx, &click{s: m.s, i: ic.Interaction})
	})
	c.OnStop(func() {
		remove()
		log.Debug("collector removed")
	})
	c.Start()
	return c, nil
}

func (m *SentMessage) owns(ic *discordgo.InteractionCreate) bool {
	if ic == nil || ic.Interaction == nil {
		return false
	}
	if ic.Type != discordgo.InteractionMessageComponent || ic.Message == nil || ic.Message.ID != m.msg.ID {
		return false
	}
	return ic.MessageComponentData().ComponentType == discordgo.ButtonComponent
}

type click struct {
	s Session
	i *discordgo.Interaction
}

func (c *click) UserID() string { return interactionUserID(c.i) }

func (c *click) CustomID() string { return c.i.MessageComponentData().CustomID }

func (c *click) Update(ctx context.Context, p *pager.Payload) error {
	return c.s.InteractionRespond(c.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(p, false),
	}, discordgo.WithContext(ctx))
}

func (c *click) Ack(ctx context.Context) error {
	return c.s.InteractionRespond(c.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}
