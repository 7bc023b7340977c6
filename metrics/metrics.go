// Package metrics defines the observability sink the dispatch loop and
// publisher report into. The Collector interface keeps the core decoupled
// from any specific metrics backend; Prometheus is the provided
// implementation.
package metrics

import "time"

// Collector receives the observations the broker core produces. All
// methods must be safe for concurrent use from many handler tasks.
type Collector interface {
	// SetMaxConcurrent records the concurrency bound of the listener
	// serving the given exchange.
	SetMaxConcurrent(exchange string, n int)

	// IncPermitsUsed records that a permit was acquired for the exchange.
	IncPermitsUsed(exchange string)

	// DecPermitsUsed records that a permit was released for the exchange.
	DecPermitsUsed(exchange string)

	// ObserveConsumeDuration records the time a listener spent consuming
	// one delivery. Acknowledgement I/O is not included.
	ObserveConsumeDuration(exchange string, d time.Duration)

	// ObservePublishDuration records the time one publish call spent in
	// the transport.
	ObservePublishDuration(exchange, routingKey string, d time.Duration)
}

// Nop is a Collector that discards every observation.
type Nop struct{}

func (Nop) SetMaxConcurrent(string, int) {}

func (Nop) IncPermitsUsed(string) {}

func (Nop) DecPermitsUsed(string) {}

func (Nop) ObserveConsumeDuration(string, time.Duration) {}

func (Nop) ObservePublishDuration(string, string, time.Duration) {}
