package broker

// Config holds transport-agnostic configuration.
// Transport plugins extract the fields they need.
type Config struct {
	// URLs is a list of broker addresses (e.g., "amqp://localhost:5672").
	URLs []string

	// Queue is the queue (or durable consumer) deliveries are read from.
	Queue string

	// Extra holds plugin-specific configuration.
	Extra map[string]any
}
