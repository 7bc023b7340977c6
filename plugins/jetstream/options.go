package jetstream

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Option configures the JetStream transport.
type Option func(*options)

type options struct {
	// Stream
	stream    string
	subjects  []string
	replicas  int
	retention jetstream.RetentionPolicy
	storage   jetstream.StorageType

	// Consumer
	durable    string
	ackWait    time.Duration
	maxDeliver int
}

func defaults() options {
	return options{
		stream:     "BROKERMUX",
		subjects:   []string{"BROKERMUX.>"},
		replicas:   1,
		retention:  jetstream.WorkQueuePolicy,
		storage:    jetstream.FileStorage,
		durable:    "brokermux",
		ackWait:    30 * time.Second,
		maxDeliver: 5,
	}
}

// WithStream sets the stream name and the subjects it captures. Subjects
// should cover every exchange listeners are registered for, e.g.
// "orders.>".
func WithStream(name string, subjects ...string) Option {
	return func(o *options) {
		o.stream = name
		if len(subjects) > 0 {
			o.subjects = subjects
		}
	}
}

// WithDurable sets the durable consumer name.
func WithDurable(name string) Option {
	return func(o *options) { o.durable = name }
}

// WithReplicas sets the stream replication factor.
func WithReplicas(n int) Option {
	return func(o *options) { o.replicas = n }
}

// WithRetention sets the stream retention policy.
func WithRetention(r jetstream.RetentionPolicy) Option {
	return func(o *options) { o.retention = r }
}

// WithStorage sets the stream storage type (file or memory).
func WithStorage(s jetstream.StorageType) Option {
	return func(o *options) { o.storage = s }
}

// WithAckWait sets how long the server waits for an ack before redelivering.
func WithAckWait(d time.Duration) Option {
	return func(o *options) { o.ackWait = d }
}

// WithMaxDeliver sets the maximum number of delivery attempts.
func WithMaxDeliver(n int) Option {
	return func(o *options) { o.maxDeliver = n }
}
