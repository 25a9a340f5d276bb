package pager

import (
	"context"
	"sync"
	"time"
)

// IdleCollector is the shared collector state machine for host bridges: it
// filters clicks, resets an idle timer on every accepted click and runs the
// stop hooks exactly once.
//
// Bridges create it, register their platform handler, add the handler's
// removal with OnStop, then call Start.
type IdleCollector struct {
	opts CollectOptions
	fn   ClickFunc

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool
	onStop  []func()
	done    chan struct{}
}

func NewIdleCollector(opts CollectOptions, fn ClickFunc) *IdleCollector {
	return &IdleCollector{opts: opts, fn: fn, done: make(chan struct{})}
}

// OnStop registers f to run when the collector stops. If it already stopped,
// f runs immediately.
func (c *IdleCollector) OnStop(f func()) {
	if f == nil {
		return
	}
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		f()
		return
	}
	c.onStop = append(c.onStop, f)
	c.mu.Unlock()
}

// Start arms the idle timer.
func (c *IdleCollector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true
	if c.opts.Idle > 0 {
		c.timer = time.AfterFunc(c.opts.Idle, c.Stop)
	}
}

// Dispatch runs one click through the filter and, if accepted, resets the
// idle timer and calls the ClickFunc. Clicks after Stop are dropped.
func (c *IdleCollector) Dispatch(ctx context.Context, click Click) {
	if c.Stopped() || click == nil {
		return
	}
	if c.opts.Filter != nil && !c.opts.Filter(click) {
		if c.opts.Reject != nil {
			c.opts.Reject(ctx, click)
		}
		return
	}
	c.touch()
	if c.fn != nil {
		c.fn(ctx, click)
	}
}

func (c *IdleCollector) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil && !c.stopped {
		c.timer.Reset(c.opts.Idle)
	}
}

// Stop ends collection. It is safe to call more than once.
func (c *IdleCollector) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
	}
	hooks := c.onStop
	c.onStop = nil
	close(c.done)
	c.mu.Unlock()

	for _, f := range hooks {
		f()
	}
}

func (c *IdleCollector) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *IdleCollector) Done() <-chan struct{} { return c.done }
