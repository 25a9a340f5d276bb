package pager

import (
	"context"
	"fmt"

	logx "pewpager/pkg/logx"
)

// Navigate moves to the page selected by the button and returns the new
// page view. Prev on page 1 and next on the last page wrap around.
func (p *Paginator) Navigate(id ButtonID) *Payload {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case ButtonFirst:
		p.currentPage = 1
	case ButtonPrev:
		p.currentPage--
	case ButtonNext:
		p.currentPage++
	case ButtonLast:
		p.currentPage = p.totalPages
	}
	p.goToPageLocked(p.currentPage)
	p.refreshButtonsLocked()
	return p.snapshotLocked()
}

func (p *Paginator) GoFirst(ctx context.Context, c Click) error { return p.goTo(ctx, ButtonFirst, c) }

func (p *Paginator) GoPrev(ctx context.Context, c Click) error { return p.goTo(ctx, ButtonPrev, c) }

func (p *Paginator) GoNext(ctx context.Context, c Click) error { return p.goTo(ctx, ButtonNext, c) }

func (p *Paginator) GoLast(ctx context.Context, c Click) error { return p.goTo(ctx, ButtonLast, c) }

// goTo navigates and pushes the new view through the click. The state
// change happens under the lock; the update call does not.
func (p *Paginator) goTo(ctx context.Context, id ButtonID, c Click) error {
	payload := p.Navigate(id)
	if c == nil {
		return nil
	}
	return c.Update(ctx, payload)
}

// Paginate starts collecting navigation clicks on msg. A previous collector
// of this paginator is stopped first.
//
// Only clicks on the four navigation buttons from authorized users move the
// page. Navigation clicks from other users are acknowledged and otherwise
// ignored; clicks on any other button are left to the caller.
func (p *Paginator) Paginate(msg Message) (*Paginator, error) {
	if msg == nil {
		return p, &PreconditionError{Op: "paginate", Err: ErrUnsupported}
	}

	p.mu.Lock()
	prev := p.collector
	idle := p.opts.Idle
	p.collector = nil
	p.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	c, err := msg.Collect(CollectOptions{
		Idle: idle,
		Filter: func(c Click) bool {
			_, ok := p.navButton(c.CustomID())
			return ok && p.IsAuthorized(c.UserID())
		},
		Reject: p.reject,
	}, p.onClick)
	if err != nil {
		return p, err
	}

	p.mu.Lock()
	p.collector = c
	p.mu.Unlock()

	p.log.Debug("collector started", logx.Duration("idle", idle))
	if idle <= 0 {
		// never expires; the caller stops it via Collector().Stop()
		return p, nil
	}
	go func() {
		<-c.Done()
		p.log.Debug("collector stopped", logx.Int("page", p.CurrentPage()))
	}()
	return p, nil
}

func (p *Paginator) navButton(customID string) (ButtonID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons.Lookup(customID)
}

func (p *Paginator) onClick(ctx context.Context, c Click) {
	id, ok := p.navButton(c.CustomID())
	if !ok {
		return
	}
	p.log.Debug("navigation click",
		logx.String("button", id.String()),
		logx.String("user", c.UserID()),
	)
	if err := p.goTo(ctx, id, c); err != nil {
		p.reportError(fmt.Errorf("pager %s: %w", id, err))
	}
}

func (p *Paginator) reject(ctx context.Context, c Click) {
	if _, ok := p.navButton(c.CustomID()); !ok {
		return
	}
	p.log.Debug("unauthorized click", logx.String("user", c.UserID()))
	if err := c.Ack(ctx); err != nil {
		p.reportError(fmt.Errorf("pager ack: %w", err))
	}
}

func (p *Paginator) reportError(err error) {
	p.mu.Lock()
	fn := p.opts.OnError
	p.mu.Unlock()
	if fn != nil {
		fn(err)
		return
	}
	p.log.Warn("click handling failed", logx.Err(err))
}
