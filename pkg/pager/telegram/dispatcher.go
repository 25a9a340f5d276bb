package telegram

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	logx "pewpager/pkg/logx"
	"pewpager/pkg/pager"
)

// Bot is the part of *tele.Bot the bridge uses.
type Bot interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Respond(c *tele.Callback, resp ...*tele.CallbackResponse) error
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
}

var _ Bot = (*tele.Bot)(nil)

const DefaultClickTimeout = 10 * time.Second

type msgKey struct {
	chat int64
	msg  int
}

type registration struct {
	collector *pager.IdleCollector
	sent      *SentMessage
}

// Dispatcher routes callback queries to the collectors of sent pages.
type Dispatcher struct {
	bot          Bot
	log          logx.Logger
	limiter      *rate.Limiter
	fallback     tele.HandlerFunc
	clickTimeout time.Duration
	throttleText string

	mu   sync.Mutex
	regs map[msgKey]registration
}

type Option func(d *Dispatcher)

func WithLogger(l logx.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// WithClickRate throttles button presses across the dispatcher. Presses over
// the limit are answered with a short notice and dropped. A non-positive
// rate disables throttling.
func WithClickRate(perSec float64, burst int) Option {
	return func(d *Dispatcher) {
		if perSec <= 0 {
			d.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithFallback handles callbacks on messages no paginator collects on.
func WithFallback(h tele.HandlerFunc) Option { return func(d *Dispatcher) { d.fallback = h } }

func WithClickTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if t > 0 {
			d.clickTimeout = t
		}
	}
}

// NewDispatcher registers the dispatcher as the bot's OnCallback handler.
func NewDispatcher(bot Bot, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		bot:          bot,
		log:          logx.Nop(),
		clickTimeout: DefaultClickTimeout,
		throttleText: "Too fast, try again in a moment.",
		regs:         make(map[msgKey]registration),
	}
	for _, o := range opts {
		if o != nil {
			o(d)
		}
	}
	if d.log.IsZero() {
		d.log = logx.Nop()
	}
	d.log = d.log.With(logx.Component("telegram"))

	bot.Handle(tele.OnCallback, func(c tele.Context) error {
		return d.route(c.Callback(), func() error {
			if d.fallback != nil {
				return d.fallback(c)
			}
			return d.bot.Respond(c.Callback())
		})
	})
	return d
}

// SetClickRate changes the throttle at runtime; see WithClickRate.
func (d *Dispatcher) SetClickRate(perSec float64, burst int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	WithClickRate(perSec, burst)(d)
}

// Active returns the number of messages currently collecting clicks.
func (d *Dispatcher) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.regs)
}

func (d *Dispatcher) route(cb *tele.Callback, fallback func() error) error {
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	key := msgKey{chat: cb.Message.Chat.ID, msg: cb.Message.ID}

	d.mu.Lock()
	reg, ok := d.regs[key]
	limiter := d.limiter
	d.mu.Unlock()
	if !ok {
		return fallback()
	}

	if limiter != nil && !limiter.Allow() {
		d.log.Debug("click throttled", logx.Int64("chat", key.chat))
		return d.bot.Respond(cb, &tele.CallbackResponse{Text: d.throttleText})
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.clickTimeout)
	defer cancel()
	reg.collector.Dispatch(ctx, &click{bot: d.bot, cb: cb, sent: reg.sent})
	return nil
}

func (d *Dispatcher) register(key msgKey, reg registration) {
	d.mu.Lock()
	prev, ok := d.regs[key]
	d.regs[key] = reg
	d.mu.Unlock()
	if ok {
		prev.collector.Stop()
	}
}

func (d *Dispatcher) unregister(key msgKey, c *pager.IdleCollector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.regs[key]; ok && cur.collector == c {
		delete(d.regs, key)
	}
}
