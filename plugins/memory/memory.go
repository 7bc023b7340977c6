// Package memory provides an in-process transport for tests, examples,
// and local development. Deliveries are injected with Deliver and
// publishes are captured for inspection.
package memory

import (
	"context"
	"sync"

	"github.com/brokermux/brokermux/broker"
	"github.com/brokermux/brokermux/core"
)

func init() {
	broker.Register("memory", func(cfg broker.Config) (core.Transport, error) {
		return New(), nil
	})
}

// Transport implements core.Transport backed by a channel.
type Transport struct {
	queue chan core.Message
	done  chan struct{}

	mu        sync.Mutex
	published []Published
	closed    bool
}

// Published records a message sent through Publish.
type Published struct {
	Exchange   string
	RoutingKey string
	Body       []byte
}

// Option configures the memory transport.
type Option func(*Transport)

// WithBufferSize sets the delivery queue capacity (default 64).
func WithBufferSize(n int) Option {
	return func(t *Transport) { t.queue = make(chan core.Message, n) }
}

// New creates a memory Transport.
func New(opts ...Option) *Transport {
	t := &Transport{
		queue: make(chan core.Message, 64),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Deliver enqueues a message for the dispatch loop. It blocks when the
// queue is full, mirroring broker-side backpressure.
func (t *Transport) Deliver(msg core.Message) error {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return core.ErrTransportClosed
	}

	select {
	case t.queue <- msg:
		return nil
	case <-t.done:
		return core.ErrTransportClosed
	}
}

// Publish captures the message and reports it as confirmed.
func (t *Transport) Publish(_ context.Context, exchange, routingKey string, body []byte) (core.Confirmation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, core.ErrTransportClosed
	}
	t.published = append(t.published, Published{Exchange: exchange, RoutingKey: routingKey, Body: body})
	return confirmation{}, nil
}

// Consume opens the delivery stream.
func (t *Transport) Consume(ctx context.Context) (core.Stream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, core.ErrTransportClosed
	}
	return &stream{queue: t.queue, done: t.done}, nil
}

// Close ends the delivery stream.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.done)
	return nil
}

// Published returns all messages sent via Publish.
func (t *Transport) Published() []Published {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Published, len(t.published))
	copy(out, t.published)
	return out
}

type stream struct {
	queue <-chan core.Message
	done  <-chan struct{}
}

func (s *stream) Next(ctx context.Context) (core.Message, error) {
	select {
	case <-ctx.Done():
		return nil, core.ErrStreamClosed
	case <-s.done:
		return nil, core.ErrStreamClosed
	case msg := <-s.queue:
		return msg, nil
	}
}

// confirmation reports every publish as accepted.
type confirmation struct{}

func (confirmation) Wait(context.Context) (bool, error) { return true, nil }
