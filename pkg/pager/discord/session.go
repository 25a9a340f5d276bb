package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	logx "pewpager/pkg/logx"
)

//go:generate go run go.uber.org/mock/mockgen -package=discord -destination=mock_session_test.go pewpager/pkg/pager/discord Session

// Session is the part of *discordgo.Session the bridge uses.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	AddHandler(handler interface{}) func()
}

var _ Session = (*discordgo.Session)(nil)

// DefaultClickTimeout bounds the calls made for one button click.
const DefaultClickTimeout = 10 * time.Second

type config struct {
	log          logx.Logger
	clickTimeout time.Duration
}

// Option configures a handle.
type Option func(c *config)

func WithLogger(l logx.Logger) Option { return func(c *config) { c.log = l } }

// WithClickTimeout sets the deadline of the calls made for one click.
func WithClickTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.clickTimeout = d
		}
	}
}

func newConfig(opts []Option) config {
	c := config{log: logx.Nop(), clickTimeout: DefaultClickTimeout}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	if c.log.IsZero() {
		c.log = logx.Nop()
	}
	c.log = c.log.With(logx.Component("discord"))
	return c
}
