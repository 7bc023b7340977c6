package core

import "context"

// Stream yields inbound deliveries in the order the broker sends them.
type Stream interface {
	// Next blocks until a delivery arrives, the stream ends, or ctx is
	// done. It returns ErrStreamClosed when the stream has ended normally
	// (including cancellation of ctx); any other error is a transport
	// fault the caller cannot recover from.
	Next(ctx context.Context) (Message, error)
}

// Confirmation is the broker's proof that a published message was accepted.
type Confirmation interface {
	// Wait blocks until the broker confirms (or refuses) the publication,
	// or ctx is done. acked is true when the broker accepted the message.
	Wait(ctx context.Context) (acked bool, err error)
}

// Transport is the contract broker plugins implement. The connection,
// channels, and topology (exchanges, queues, bindings) are owned by the
// plugin and set up before the dispatch loop starts; reconnection is out
// of scope; a broken transport surfaces as a stream or publish error.
//
// Publish, and the Ack/Reject methods of the Messages a Stream yields,
// must be safe for concurrent use from multiple goroutines.
type Transport interface {
	// Consume opens the delivery stream.
	Consume(ctx context.Context) (Stream, error)

	// Publish sends body to the given exchange with the given routing key.
	Publish(ctx context.Context, exchange, routingKey string, body []byte) (Confirmation, error)

	// Close tears down the transport.
	Close() error
}
