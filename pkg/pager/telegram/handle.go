package telegram

import (
	"context"
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v4"

	logx "pewpager/pkg/logx"
	"pewpager/pkg/pager"
)

// Handle is a pager handle for a Telegram command or callback. It can reply
// to the triggering message, send to the chat and, for callbacks, update the
// message the button belongs to.
type Handle struct {
	d      *Dispatcher
	sender *tele.User
	chat   *tele.Chat
	msg    *tele.Message
	cb     *tele.Callback
}

var (
	_ pager.Replier       = (*Handle)(nil)
	_ pager.Updater       = (*Handle)(nil)
	_ pager.ChannelSender = (*Handle)(nil)
)

func FromContext(d *Dispatcher, c tele.Context) *Handle {
	return newHandle(d, c.Sender(), c.Chat(), c.Message(), c.Callback())
}

func newHandle(d *Dispatcher, sender *tele.User, chat *tele.Chat, msg *tele.Message, cb *tele.Callback) *Handle {
	if chat == nil && msg != nil {
		chat = msg.Chat
	}
	return &Handle{d: d, sender: sender, chat: chat, msg: msg, cb: cb}
}

func (h *Handle) UserID() string {
	if h.sender == nil {
		return ""
	}
	return formatID(h.sender.ID)
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func (h *Handle) Reply(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	if h.msg == nil || h.cb != nil {
		return h.Send(ctx, p)
	}
	return h.send(ctx, p, h.msg)
}

func (h *Handle) HasChannel() bool { return h.chat != nil }

func (h *Handle) Send(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	if !h.HasChannel() {
		return nil, &pager.PreconditionError{Op: "send", Err: pager.ErrNoChannel}
	}
	return h.send(ctx, p, nil)
}

// Update edits the message of the callback that triggered the handle.
func (h *Handle) Update(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	if h.cb == nil || h.cb.Message == nil {
		return nil, &pager.PreconditionError{Op: "update", Err: pager.ErrUnsupported}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sent := newSentMessage(h.d, h.cb.Message)
	if err := errors.Join(sent.edit(p), h.d.bot.Respond(h.cb)); err != nil {
		return nil, err
	}
	return sent, nil
}

func (h *Handle) send(ctx context.Context, p *pager.Payload, replyTo *tele.Message) (pager.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v := render(p, false)
	if len(v.dropped) > 0 {
		h.d.log.Warn("buttons dropped: custom id exceeds callback data limit", logx.Any("custom_ids", v.dropped))
	}
	opts := v.options()
	opts.ReplyTo = replyTo

	msg, err := h.d.bot.Send(h.chat, v.what(), opts)
	if err != nil {
		return nil, err
	}
	for _, f := range documents(p.Files) {
		if _, err := h.d.bot.Send(h.chat, f, &tele.SendOptions{ReplyTo: msg}); err != nil {
			return nil, err
		}
	}
	sent := newSentMessage(h.d, msg)
	sent.photo = v.image != ""
	sent.lastImage = v.image
	return sent, nil
}
