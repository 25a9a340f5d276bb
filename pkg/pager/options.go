package pager

import (
	"time"

	logx "pewpager/pkg/logx"
)

const (
	DefaultLimit = 5
	DefaultIdle  = 5 * time.Minute
)

// Options is the explicit configuration of a Paginator. Build one with
// DefaultOptions and adjust it, or pass functional options to New.
type Options struct {
	Limit int
	// Idle stops click collection after this long without a click. Zero
	// never expires; stop it with Collector().Stop().
	Idle time.Duration

	Ephemeral       bool
	PrevDescription string
	PostDescription string
	Attachments     []Attachment
	// Contents is the per-page message text; page n shows Contents[n-1].
	Contents []string
	Loop     bool

	FirstEmoji string
	PrevEmoji  string
	NextEmoji  string
	LastEmoji  string

	FirstLabel string
	PrevLabel  string
	NextLabel  string
	LastLabel  string

	ButtonStyle ButtonStyle

	Logger logx.Logger
	// OnError receives errors from click handling, which has no caller to
	// return them to. When nil they are logged at WARN.
	OnError func(error)
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Limit:       DefaultLimit,
		Idle:        DefaultIdle,
		FirstEmoji:  "⏪",
		PrevEmoji:   "◀️",
		NextEmoji:   "▶️",
		LastEmoji:   "⏭",
		ButtonStyle: StyleSecondary,
	}
}

func (o Options) appearance() ButtonsAppearance {
	style := o.ButtonStyle
	if style == 0 {
		style = StyleSecondary
	}
	return ButtonsAppearance{
		First: ButtonAppearance{Emoji: o.FirstEmoji, Label: o.FirstLabel, Style: style},
		Prev:  ButtonAppearance{Emoji: o.PrevEmoji, Label: o.PrevLabel, Style: style},
		Next:  ButtonAppearance{Emoji: o.NextEmoji, Label: o.NextLabel, Style: style},
		Last:  ButtonAppearance{Emoji: o.LastEmoji, Label: o.LastLabel, Style: style},
	}
}

// Option mutates Options during New.
type Option func(o *Options)

// WithOptions replaces the whole option set; later options still apply on top.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func WithLimit(n int) Option { return func(o *Options) { o.Limit = n } }

func WithIdle(d time.Duration) Option { return func(o *Options) { o.Idle = d } }

func WithEphemeral(v bool) Option { return func(o *Options) { o.Ephemeral = v } }

func WithLoop(v bool) Option { return func(o *Options) { o.Loop = v } }

func WithPrevDescription(s string) Option { return func(o *Options) { o.PrevDescription = s } }

func WithPostDescription(s string) Option { return func(o *Options) { o.PostDescription = s } }

func WithAttachments(a ...Attachment) Option {
	return func(o *Options) { o.Attachments = append([]Attachment(nil), a...) }
}

func WithContents(c ...string) Option {
	return func(o *Options) { o.Contents = append([]string(nil), c...) }
}

// WithEmojis sets the button emojis; empty values keep the current ones.
func WithEmojis(first, prev, next, last string) Option {
	return func(o *Options) {
		o.FirstEmoji = orKeep(first, o.FirstEmoji)
		o.PrevEmoji = orKeep(prev, o.PrevEmoji)
		o.NextEmoji = orKeep(next, o.NextEmoji)
		o.LastEmoji = orKeep(last, o.LastEmoji)
	}
}

// WithLabels sets the button labels; empty values keep the current ones.
func WithLabels(first, prev, next, last string) Option {
	return func(o *Options) {
		o.FirstLabel = orKeep(first, o.FirstLabel)
		o.PrevLabel = orKeep(prev, o.PrevLabel)
		o.NextLabel = orKeep(next, o.NextLabel)
		o.LastLabel = orKeep(last, o.LastLabel)
	}
}

func WithButtonStyle(s ButtonStyle) Option { return func(o *Options) { o.ButtonStyle = s } }

func WithLogger(l logx.Logger) Option { return func(o *Options) { o.Logger = l } }

func WithOnError(fn func(error)) Option { return func(o *Options) { o.OnError = fn } }

func orKeep(v, cur string) string {
	if v == "" {
		return cur
	}
	return v
}
