package telegram

import (
	"context"
	"errors"
	"sync"

	tele "gopkg.in/telebot.v4"

	logx "pewpager/pkg/logx"
	"pewpager/pkg/pager"
)

// SentMessage is a Telegram message a paginator was rendered into.
//
// A message sent as a photo stays a photo: pages without an image keep the
// last image shown. A text message shows page images as a link.
type SentMessage struct {
	d   *Dispatcher
	msg *tele.Message

	mu        sync.Mutex
	photo     bool
	lastImage string
}

var _ pager.Message = (*SentMessage)(nil)

func newSentMessage(d *Dispatcher, msg *tele.Message) *SentMessage {
	s := &SentMessage{d: d, msg: msg}
	if msg != nil && msg.Photo != nil {
		s.photo = true
	}
	return s
}

// Raw returns the telebot message.
func (m *SentMessage) Raw() *tele.Message { return m.msg }

func (m *SentMessage) Collect(opts pager.CollectOptions, fn pager.ClickFunc) (pager.Collector, error) {
	if m.msg == nil || m.msg.Chat == nil {
		return nil, &pager.PreconditionError{Op: "collect", Err: pager.ErrUnsupported}
	}
	key := msgKey{chat: m.msg.Chat.ID, msg: m.msg.ID}
	c := pager.NewIdleCollector(opts, fn)
	m.d.register(key, registration{collector: c, sent: m})
	c.OnStop(func() {
		m.d.unregister(key, c)
		m.d.log.Debug("collector removed", logx.Int64("chat", key.chat), logx.Int("message", key.msg))
	})
	c.Start()
	return c, nil
}

var errNoPhoto = errors.New("telegram: photo message needs an image")

func (m *SentMessage) edit(p *pager.Payload) error {
	m.mu.Lock()
	photo := m.photo
	m.mu.Unlock()

	v := render(p, photo)
	if len(v.dropped) > 0 {
		m.d.log.Warn("buttons dropped: custom id exceeds callback data limit", logx.Any("custom_ids", v.dropped))
	}

	m.mu.Lock()
	if v.image != "" {
		m.lastImage = v.image
	}
	image := m.lastImage
	m.mu.Unlock()

	if photo {
		if image == "" {
			return errNoPhoto
		}
		v.image = image
		_, err := m.d.bot.Edit(m.msg, v.what(), v.options())
		return ignoreUnchanged(err)
	}

	if v.image != "" {
		v.text += "\n\n" + string(link(v.image, "🖼"))
		v.image = ""
	}
	opts := v.options()
	opts.DisableWebPagePreview = false
	_, err := m.d.bot.Edit(m.msg, v.text, opts)
	return ignoreUnchanged(err)
}

// ignoreUnchanged drops the error Telegram returns for an edit that would
// leave the message as it is, as when a looping single page wraps onto itself.
func ignoreUnchanged(err error) error {
	if errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrMessageNotModified) {
		return nil
	}
	return err
}

type click struct {
	bot  Bot
	cb   *tele.Callback
	sent *SentMessage
}

func (c *click) UserID() string {
	if c.cb.Sender == nil {
		return ""
	}
	return formatID(c.cb.Sender.ID)
}

func (c *click) CustomID() string { return c.cb.Data }

func (c *click) Update(ctx context.Context, p *pager.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// the callback is answered even when the edit fails, or the client
	// keeps its loading indicator
	err := c.sent.edit(p)
	return errors.Join(err, c.bot.Respond(c.cb))
}

func (c *click) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.bot.Respond(c.cb)
}
