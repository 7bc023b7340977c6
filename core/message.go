package core

// Message is one inbound delivery from the broker.
// Implementations are provided by transport plugins.
//
// Ack and Reject are one-shot: the broker treats a second acknowledgement
// for the same delivery as a protocol violation. The dispatch loop hands
// each Message to exactly one handler task, which performs exactly one of
// the two calls.
type Message interface {
	// Exchange returns the name of the exchange the delivery originated
	// from. It is the key used to resolve the responsible listener.
	Exchange() string

	// RoutingKey returns the routing key the delivery was published with.
	RoutingKey() string

	// Redelivered reports whether the broker has delivered this message
	// before (e.g. after a reject with requeue).
	Redelivered() bool

	// Body returns the raw message payload.
	Body() []byte

	// Ack acknowledges the message, removing it from the queue.
	Ack() error

	// Reject negatively acknowledges the message. If requeue is true the
	// broker redelivers it for another attempt.
	Reject(requeue bool) error
}
