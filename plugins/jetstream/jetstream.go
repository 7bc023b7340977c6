package jetstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/brokermux/brokermux/broker"
	"github.com/brokermux/brokermux/core"
)

func init() {
	broker.Register("jetstream", func(cfg broker.Config) (core.Transport, error) {
		opts := optsFromConfig(cfg)
		if len(cfg.URLs) == 0 {
			return nil, fmt.Errorf("brokermux/jetstream: at least one broker URL is required")
		}
		return New(cfg.URLs[0], opts...)
	})
}

// Transport implements core.Transport for NATS JetStream.
//
// The AMQP notions are mapped onto subjects: a message for exchange E with
// routing key K travels on subject "E.K", and a delivery's exchange is the
// first subject token. Reject(requeue=true) maps to Nak (server-side
// redelivery), Reject(requeue=false) to Term (no redelivery). Publisher
// confirmations are JetStream PubAcks.
type Transport struct {
	conn *nats.Conn
	js   jetstream.JetStream
	opts options

	mu     sync.Mutex
	closed bool
}

// New creates a JetStream Transport. url is a standard NATS URL
// (nats://host:port).
func New(url string, fns ...Option) (*Transport, error) {
	opts := defaults()
	for _, fn := range fns {
		fn(&opts)
	}

	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("brokermux/jetstream: connect to %q: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("brokermux/jetstream: init jetstream: %w", err)
	}

	return &Transport{conn: nc, js: js, opts: opts}, nil
}

// Publish sends body on subject exchange.routingKey and returns the
// pending PubAck as the confirmation.
func (t *Transport) Publish(ctx context.Context, exchange, routingKey string, body []byte) (core.Confirmation, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, core.ErrTransportClosed
	}
	t.mu.Unlock()

	f, err := t.js.PublishMsgAsync(&nats.Msg{
		Subject: subjectFor(exchange, routingKey),
		Data:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("brokermux/jetstream: publish to %q: %w", exchange, err)
	}
	return confirmation{f: f}, nil
}

// Consume creates or updates the stream and its durable consumer, then
// opens the delivery stream. Deliveries stop when ctx is cancelled.
func (t *Transport) Consume(ctx context.Context) (core.Stream, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, core.ErrTransportClosed
	}
	t.mu.Unlock()

	st, err := t.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      t.opts.stream,
		Subjects:  t.opts.subjects,
		Replicas:  t.opts.replicas,
		Retention: t.opts.retention,
		Storage:   t.opts.storage,
	})
	if err != nil {
		return nil, fmt.Errorf("brokermux/jetstream: create stream %q: %w", t.opts.stream, err)
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:    t.opts.durable,
		AckPolicy:  jetstream.AckExplicitPolicy,
		AckWait:    t.opts.ackWait,
		MaxDeliver: t.opts.maxDeliver,
	})
	if err != nil {
		return nil, fmt.Errorf("brokermux/jetstream: create consumer %q: %w", t.opts.durable, err)
	}

	it, err := cons.Messages()
	if err != nil {
		return nil, fmt.Errorf("brokermux/jetstream: start consume on %q: %w", t.opts.durable, err)
	}

	// The iterator has no context of its own; stop it when ctx ends so
	// Next unblocks with a clean close.
	go func() {
		<-ctx.Done()
		it.Stop()
	}()

	return &stream{it: it}, nil
}

// Close drains the NATS connection.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.conn.Close()
	return nil
}

// stream adapts a JetStream message iterator to core.Stream.
type stream struct {
	it jetstream.MessagesContext
}

func (s *stream) Next(ctx context.Context) (core.Message, error) {
	msg, err := s.it.Next()
	if err != nil {
		if errors.Is(err, jetstream.ErrMsgIteratorClosed) {
			return nil, core.ErrStreamClosed
		}
		return nil, fmt.Errorf("brokermux/jetstream: next delivery: %w", err)
	}
	return newMessage(msg), nil
}

// confirmation adapts a PubAckFuture to core.Confirmation.
type confirmation struct {
	f jetstream.PubAckFuture
}

func (c confirmation) Wait(ctx context.Context) (bool, error) {
	select {
	case <-c.f.Ok():
		return true, nil
	case err := <-c.f.Err():
		return false, err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// subjectFor joins exchange and routing key into a subject.
func subjectFor(exchange, routingKey string) string {
	if routingKey == "" {
		return exchange
	}
	return exchange + "." + routingKey
}

// splitSubject recovers (exchange, routingKey) from a delivery subject.
func splitSubject(subject string) (string, string) {
	if i := strings.IndexByte(subject, '.'); i >= 0 {
		return subject[:i], subject[i+1:]
	}
	return subject, ""
}

// optsFromConfig extracts options from broker.Config.
func optsFromConfig(cfg broker.Config) []Option {
	var opts []Option
	if cfg.Queue != "" {
		opts = append(opts, WithDurable(cfg.Queue))
	}
	if cfg.Extra == nil {
		return opts
	}
	if s, ok := cfg.Extra["stream"].(string); ok {
		subjects, _ := cfg.Extra["subjects"].([]string)
		opts = append(opts, WithStream(s, subjects...))
	}
	if n, ok := cfg.Extra["max_deliver"].(int); ok {
		opts = append(opts, WithMaxDeliver(n))
	}
	return opts
}
