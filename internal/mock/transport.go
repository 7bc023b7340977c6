package mock

import (
	"context"
	"sync"

	"github.com/brokermux/brokermux/core"
)

// Transport is a test double for core.Transport.
type Transport struct {
	Stream     *Stream
	PublishErr error
	ConsumeErr error

	mu        sync.Mutex
	published []PublishedMessage
	closed    bool
}

// PublishedMessage records a message sent through Publish.
type PublishedMessage struct {
	Exchange   string
	RoutingKey string
	Body       []byte
}

func NewTransport() *Transport {
	return &Transport{Stream: NewStream()}
}

func (t *Transport) Publish(_ context.Context, exchange, routingKey string, body []byte) (core.Confirmation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.PublishErr != nil {
		return nil, t.PublishErr
	}
	t.published = append(t.published, PublishedMessage{Exchange: exchange, RoutingKey: routingKey, Body: body})
	return Confirmation{Ok: true}, nil
}

func (t *Transport) Consume(ctx context.Context) (core.Stream, error) {
	if t.ConsumeErr != nil {
		return nil, t.ConsumeErr
	}
	return t.Stream, nil
}

func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Published returns all messages sent via Publish.
func (t *Transport) Published() []PublishedMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PublishedMessage, len(t.published))
	copy(out, t.published)
	return out
}

// IsClosed reports whether Close was called.
func (t *Transport) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Confirmation is a fixed core.Confirmation.
type Confirmation struct {
	Ok  bool
	Err error
}

func (c Confirmation) Wait(context.Context) (bool, error) { return c.Ok, c.Err }
