package pager

import "context"

// Reply renders the first page as a reply to the handle and starts
// paginating the sent message.
func (p *Paginator) Reply(ctx context.Context) (Message, error) {
	r, ok := p.handle.(Replier)
	if !ok {
		return nil, &PreconditionError{Op: "reply", Err: ErrUnsupported}
	}
	return p.dispatch(ctx, r.Reply)
}

// EditReply replaces the deferred or initial reply of an interaction.
func (p *Paginator) EditReply(ctx context.Context) (Message, error) {
	r, ok := p.handle.(EditReplier)
	if !ok {
		return nil, &PreconditionError{Op: "edit reply", Err: ErrUnsupported}
	}
	return p.dispatch(ctx, r.EditReply)
}

// FollowUp sends the first page as a follow-up message to an interaction.
func (p *Paginator) FollowUp(ctx context.Context) (Message, error) {
	f, ok := p.handle.(FollowUpper)
	if !ok {
		return nil, &PreconditionError{Op: "follow up", Err: ErrUnsupported}
	}
	return p.dispatch(ctx, f.FollowUp)
}

// Update replaces the message a component interaction was triggered on.
func (p *Paginator) Update(ctx context.Context) (Message, error) {
	u, ok := p.handle.(Updater)
	if !ok {
		return nil, &PreconditionError{Op: "update", Err: ErrUnsupported}
	}
	return p.dispatch(ctx, u.Update)
}

// Send posts the first page as a new message in the handle's channel.
func (p *Paginator) Send(ctx context.Context) (Message, error) {
	s, ok := p.handle.(ChannelSender)
	if !ok || !s.HasChannel() {
		return nil, &PreconditionError{Op: "send", Err: ErrNoChannel}
	}
	return p.dispatch(ctx, s.Send)
}

// Render edits the reply when the handle was already acknowledged and
// replies otherwise.
func (p *Paginator) Render(ctx context.Context) (Message, error) {
	if a, ok := p.handle.(Acknowledger); ok && a.Acknowledged() {
		return p.EditReply(ctx)
	}
	return p.Reply(ctx)
}

func (p *Paginator) dispatch(ctx context.Context, send func(context.Context, *Payload) (Message, error)) (Message, error) {
	payload, err := p.Ready()
	if err != nil {
		return nil, err
	}
	msg, err := send(ctx, payload)
	if err != nil {
		return nil, err
	}
	if _, err := p.Paginate(msg); err != nil {
		return msg, err
	}
	return msg, nil
}
