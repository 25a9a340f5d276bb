package pager_test

import (
	"context"
	"errors"
	"sync"

	"pewpager/pkg/pager"
)

// replyHandle is a plain chat message: it can reply and send to its channel.
type replyHandle struct {
	user    string
	channel bool
	msg     *fakeMessage
	sent    []*pager.Payload
	err     error
}

func (h *replyHandle) UserID() string   { return h.user }
func (h *replyHandle) HasChannel() bool { return h.channel }

func (h *replyHandle) Reply(_ context.Context, p *pager.Payload) (pager.Message, error) {
	return h.record(p)
}

func (h *replyHandle) Send(_ context.Context, p *pager.Payload) (pager.Message, error) {
	return h.record(p)
}

func (h *replyHandle) record(p *pager.Payload) (pager.Message, error) {
	if h.err != nil {
		return nil, h.err
	}
	h.sent = append(h.sent, p)
	if h.msg == nil {
		h.msg = &fakeMessage{}
	}
	return h.msg, nil
}

// interactionHandle supports every interaction call and tracks acks.
type interactionHandle struct {
	replyHandle
	acked bool
	calls []string
}

func (h *interactionHandle) Acknowledged() bool { return h.acked }

func (h *interactionHandle) Reply(ctx context.Context, p *pager.Payload) (pager.Message, error) {
	h.calls = append(h.calls, "reply")
	h.acked = true
	return h.record(p)
}

func (h *interactionHandle) EditReply(_ context.Context, p *pager.Payload) (pager.Message, error) {
	h.calls = append(h.calls, "edit")
	return h.record(p)
}

func (h *interactionHandle) FollowUp(_ context.Context, p *pager.Payload) (pager.Message, error) {
	h.calls = append(h.calls, "followup")
	return h.record(p)
}

func (h *interactionHandle) Update(_ context.Context, p *pager.Payload) (pager.Message, error) {
	h.calls = append(h.calls, "update")
	return h.record(p)
}

// userOnly has no dispatch capability at all.
type userOnly struct{}

func (userOnly) UserID() string { return "u1" }

type fakeMessage struct {
	mu        sync.Mutex
	opts      pager.CollectOptions
	collector *pager.IdleCollector
	collects  int
}

func (m *fakeMessage) Collect(opts pager.CollectOptions, fn pager.ClickFunc) (pager.Collector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = opts
	m.collects++
	m.collector = pager.NewIdleCollector(opts, fn)
	m.collector.Start()
	return m.collector, nil
}

func (m *fakeMessage) click(c *fakeClick) {
	m.mu.Lock()
	col := m.collector
	m.mu.Unlock()
	col.Dispatch(context.Background(), c)
}

type fakeClick struct {
	user     string
	customID string

	mu      sync.Mutex
	updates []*pager.Payload
	acks    int
	err     error
}

func (c *fakeClick) UserID() string   { return c.user }
func (c *fakeClick) CustomID() string { return c.customID }

func (c *fakeClick) Update(_ context.Context, p *pager.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.updates = append(c.updates, p)
	return nil
}

func (c *fakeClick) Ack(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acks++
	return nil
}

var errHost = errors.New("host: unknown message")
