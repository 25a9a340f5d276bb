package pager

import (
	"context"
	"time"
)

// Handle is the message or interaction that triggered the paginator.
//
// Dispatch capabilities are optional interfaces (Replier, EditReplier,
// FollowUpper, Updater, ChannelSender); a handle implements the ones its
// platform state allows.
type Handle interface {
	// UserID is the id of the user who owns the handle (message author or
	// interaction invoker).
	UserID() string
}

type Replier interface {
	Reply(ctx context.Context, p *Payload) (Message, error)
}

type EditReplier interface {
	EditReply(ctx context.Context, p *Payload) (Message, error)
}

type FollowUpper interface {
	FollowUp(ctx context.Context, p *Payload) (Message, error)
}

// Updater updates the message a component interaction was triggered on.
type Updater interface {
	Update(ctx context.Context, p *Payload) (Message, error)
}

type ChannelSender interface {
	HasChannel() bool
	Send(ctx context.Context, p *Payload) (Message, error)
}

// Acknowledger is implemented by interaction handles that know whether they
// were already replied to or deferred.
type Acknowledger interface {
	Acknowledged() bool
}

// Message is a sent message that buttons can be collected on.
type Message interface {
	Collect(opts CollectOptions, fn ClickFunc) (Collector, error)
}

// Click is one button press delivered by a collector.
type Click interface {
	UserID() string
	CustomID() string
	// Update replaces the clicked message with p and acknowledges the click.
	Update(ctx context.Context, p *Payload) error
	// Ack acknowledges the click without changing the message.
	Ack(ctx context.Context) error
}

type ClickFunc func(ctx context.Context, c Click)

// CollectOptions configures a collector.
type CollectOptions struct {
	// Idle stops the collector after this long without an accepted click.
	// Zero means never.
	Idle time.Duration
	// Filter selects the clicks delivered to the ClickFunc. Nil accepts all.
	Filter func(c Click) bool
	// Reject, if set, receives the clicks Filter turned down.
	Reject ClickFunc
}

// Collector streams clicks until stopped or idle.
type Collector interface {
	Stop()
	Done() <-chan struct{}
}

func isHandle(h Handle) bool {
	switch h.(type) {
	case Replier, EditReplier, FollowUpper, Updater, ChannelSender:
		return true
	}
	return false
}
