package core

import (
	"context"
	"time"

	"github.com/brokermux/brokermux/metrics"
)

// Publishable tags a payload with the exchange it is published to.
type Publishable interface {
	ExchangeName() string
}

// Publisher encodes payloads and pushes them into the transport.
// It is safe for concurrent use.
type Publisher struct {
	transport Transport
	codec     Codec
	collector metrics.Collector
}

// NewPublisher creates a Publisher. codec defaults to JSONCodec and
// collector to the no-op collector when nil.
func NewPublisher(t Transport, codec Codec, collector metrics.Collector) *Publisher {
	if codec == nil {
		codec = JSONCodec{}
	}
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &Publisher{transport: t, codec: codec, collector: collector}
}

// Publish encodes entity and sends it to the entity's exchange with the
// given routing key. An encode failure is returned without touching the
// transport; a transport error is returned untouched. There is no retry.
func (p *Publisher) Publish(ctx context.Context, entity Publishable, routingKey string) (Confirmation, error) {
	body, err := p.codec.Encode(entity)
	if err != nil {
		return nil, err
	}
	return p.PublishRaw(ctx, entity.ExchangeName(), routingKey, body)
}

// PublishRaw sends pre-encoded bytes to the given exchange.
func (p *Publisher) PublishRaw(ctx context.Context, exchange, routingKey string, body []byte) (Confirmation, error) {
	start := time.Now()
	conf, err := p.transport.Publish(ctx, exchange, routingKey, body)
	p.collector.ObservePublishDuration(exchange, routingKey, time.Since(start))
	return conf, err
}
