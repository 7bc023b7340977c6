package core

import "errors"

var (
	// ErrStreamClosed is returned by Stream.Next when the delivery stream
	// has ended normally. The dispatch loop treats it as a clean stop.
	ErrStreamClosed = errors.New("brokermux: stream closed")

	// ErrLimiterClosed is returned when a permit acquisition is
	// interrupted by shutdown while the caller is suspended.
	ErrLimiterClosed = errors.New("brokermux: limiter closed")

	// ErrNoListener is returned when a delivery arrives from an exchange
	// no listener is registered for. The dispatch loop treats this as a
	// topology defect and stops.
	ErrNoListener = errors.New("brokermux: no listener registered for exchange")

	// ErrEncode is returned by Publish when the payload cannot be encoded.
	// Nothing is sent to the transport in that case.
	ErrEncode = errors.New("brokermux: encode")

	// ErrTransportClosed is returned when operations are attempted on a
	// closed transport.
	ErrTransportClosed = errors.New("brokermux: transport is closed")

	// ErrAlreadyStarted is returned when Run is called on a running broker.
	ErrAlreadyStarted = errors.New("brokermux: broker already started")

	// ErrNoTransport is returned when a broker is created without a transport.
	ErrNoTransport = errors.New("brokermux: transport is nil")
)
