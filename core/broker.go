package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/brokermux/brokermux/metrics"
)

// Broker wires a transport, the listener registry, and the publisher
// together. Register listeners, then call Run to start consuming:
//
//	b := core.NewBroker(transport)
//	b.AddListener(ordersListener)
//	err := b.Run(ctx)
//
// The transport's connection and topology are owned by the caller; Run
// does not close the transport when it returns.
type Broker struct {
	transport Transport
	registry  *Registry
	publisher *Publisher
	codec     Codec
	collector metrics.Collector
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
}

// Option configures a Broker.
type Option func(*Broker)

// WithCodec replaces the payload codec (default JSONCodec).
func WithCodec(c Codec) Option {
	return func(b *Broker) { b.codec = c }
}

// WithCollector sets the metrics sink (default: observations are dropped).
func WithCollector(c metrics.Collector) Option {
	return func(b *Broker) { b.collector = c }
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(b *Broker) { b.logger = l }
}

// NewBroker creates a Broker on the given transport.
func NewBroker(t Transport, opts ...Option) *Broker {
	b := &Broker{
		transport: t,
		registry:  NewRegistry(),
		codec:     JSONCodec{},
		collector: metrics.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.publisher = NewPublisher(t, b.codec, b.collector)
	return b
}

// AddListener registers a listener for its exchange. Must be called
// before Run; the registry is immutable once the loop starts.
func (b *Broker) AddListener(l Listener) {
	b.registry.Add(l)
}

// Registry exposes the listener registry, e.g. to run the dispatch loop
// against a custom stream.
func (b *Broker) Registry() *Registry { return b.registry }

// Publisher returns the broker's publisher.
func (b *Broker) Publisher() *Publisher { return b.publisher }

// Publish encodes entity and publishes it to the entity's exchange.
func (b *Broker) Publish(ctx context.Context, entity Publishable, routingKey string) (Confirmation, error) {
	return b.publisher.Publish(ctx, entity, routingKey)
}

// PublishRaw publishes pre-encoded bytes to the given exchange.
func (b *Broker) PublishRaw(ctx context.Context, exchange, routingKey string, body []byte) (Confirmation, error) {
	return b.publisher.PublishRaw(ctx, exchange, routingKey, body)
}

// Run opens the delivery stream and dispatches until the stream ends or
// a fault stops the loop. It blocks; run it in its own goroutine when
// publishing from the same caller.
func (b *Broker) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.transport == nil {
		b.mu.Unlock()
		return ErrNoTransport
	}
	if b.started {
		b.mu.Unlock()
		return ErrAlreadyStarted
	}
	b.started = true
	b.mu.Unlock()

	stream, err := b.transport.Consume(ctx)
	if err != nil {
		return err
	}

	loop := NewDispatchLoop(stream, b.registry, b.collector, b.logger)
	return loop.Run(ctx)
}
