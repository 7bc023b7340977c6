package core

import "context"

// Listener consumes deliveries arriving from one exchange.
// Application code implements this interface and registers it with a Broker.
type Listener interface {
	// ExchangeName binds the listener to the exchange it consumes from.
	ExchangeName() string

	// Consume processes a single delivery and reports the outcome.
	// The returned Outcome decides the acknowledgement: Success sends an
	// ack, Failure sends a reject carrying the requeue flag.
	Consume(ctx context.Context, msg Message) Outcome
}

// BoundedListener is an optional interface a Listener may implement to
// raise the number of deliveries processed concurrently. Listeners that
// do not implement it (or return a value < 1) are limited to one
// in-flight delivery at a time.
type BoundedListener interface {
	MaxConcurrentTasks() int
}

// maxConcurrentTasks resolves the concurrency bound for a listener.
func maxConcurrentTasks(l Listener) int {
	if b, ok := l.(BoundedListener); ok {
		if n := b.MaxConcurrentTasks(); n > 0 {
			return n
		}
	}
	return 1
}

// Outcome is the result of consuming a delivery. It is ordinary data, not
// an error: a Failure outcome is handled entirely by the handler task and
// never surfaces as a fault.
type Outcome struct {
	failed  bool
	requeue bool
}

// Success reports that the delivery was processed and may be acked.
func Success() Outcome {
	return Outcome{}
}

// Failure reports that processing failed. requeue decides whether the
// broker should redeliver the message for another attempt.
func Failure(requeue bool) Outcome {
	return Outcome{failed: true, requeue: requeue}
}

// Failed reports whether the delivery should be rejected.
func (o Outcome) Failed() bool { return o.failed }

// Requeue reports whether a rejected delivery should be redelivered.
func (o Outcome) Requeue() bool { return o.requeue }

// ListenerFunc adapts a plain function to the Listener interface.
//
//	l := core.ListenerFunc("orders", 4, func(ctx context.Context, msg core.Message) core.Outcome {
//	    // process msg.Body()...
//	    return core.Success()
//	})
func ListenerFunc(exchange string, maxConcurrent int, fn func(ctx context.Context, msg Message) Outcome) Listener {
	return &listenerFunc{exchange: exchange, max: maxConcurrent, fn: fn}
}

type listenerFunc struct {
	exchange string
	max      int
	fn       func(ctx context.Context, msg Message) Outcome
}

func (l *listenerFunc) ExchangeName() string    { return l.exchange }
func (l *listenerFunc) MaxConcurrentTasks() int { return l.max }

func (l *listenerFunc) Consume(ctx context.Context, msg Message) Outcome {
	return l.fn(ctx, msg)
}
