// Package brokermux provides the top-level API for the brokermux
// dispatch layer. It re-exports core types for convenience, so users can
// write:
//
//	b := brokermux.New(transport)
//	b.AddListener(ordersListener)
//	b.Run(ctx)
package brokermux

import (
	"github.com/brokermux/brokermux/core"
)

// Re-export core types at the package level for ergonomic usage.
type (
	Message      = core.Message
	Listener     = core.Listener
	Outcome      = core.Outcome
	Limiter      = core.Limiter
	Permit       = core.Permit
	Registry     = core.Registry
	Transport    = core.Transport
	Stream       = core.Stream
	Confirmation = core.Confirmation
	Codec        = core.Codec
	Publishable  = core.Publishable
	Publisher    = core.Publisher
	Broker       = core.Broker
	Option       = core.Option
)

// Constructors and options, re-exported.
var (
	Success      = core.Success
	Failure      = core.Failure
	ListenerFunc = core.ListenerFunc

	WithCodec     = core.WithCodec
	WithCollector = core.WithCollector
	WithLogger    = core.WithLogger
)

// New creates a Broker on the given transport.
func New(t Transport, opts ...Option) *Broker {
	return core.NewBroker(t, opts...)
}
