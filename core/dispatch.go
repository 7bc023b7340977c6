package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/brokermux/brokermux/metrics"
)

// DispatchLoop pulls deliveries from a Stream, resolves the responsible
// listener through the Registry, and spawns one handler task per delivery
// under the listener's concurrency limit.
//
// The permit is acquired inline, before the next delivery is read: when
// the matched listener's pool is saturated the whole loop stalls on that
// delivery, even if listeners for other exchanges have idle capacity.
// This is the single backpressure point, a deliberate trade of per-exchange
// fairness for a loop with no internal queueing.
type DispatchLoop struct {
	stream    Stream
	registry  *Registry
	collector metrics.Collector
	logger    *slog.Logger
}

// NewDispatchLoop creates a loop over the given stream and registry.
// collector and logger may be nil.
func NewDispatchLoop(stream Stream, registry *Registry, collector metrics.Collector, logger *slog.Logger) *DispatchLoop {
	if collector == nil {
		collector = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchLoop{
		stream:    stream,
		registry:  registry,
		collector: collector,
		logger:    logger,
	}
}

// Run consumes the stream until it ends or a fault stops the loop.
//
// It returns nil when the stream closes normally. Any transport error is
// returned as-is: the loop never retries. A delivery from an exchange no
// listener is registered for is rejected best-effort (without requeue)
// and stops the loop with ErrNoListener: an unroutable delivery is a
// topology defect, not a transient fault.
//
// Spawned handler tasks are not cancelled when Run returns; each one runs
// to completion and sends its acknowledgement.
func (d *DispatchLoop) Run(ctx context.Context) error {
	d.logger.Debug("dispatch loop consuming")

	for {
		msg, err := d.stream.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrStreamClosed) || ctx.Err() != nil {
				return nil
			}
			d.logger.Error("error when receiving a delivery", "error", err)
			return err
		}

		entry := d.registry.Lookup(msg.Exchange())
		if entry == nil {
			if rerr := msg.Reject(false); rerr != nil {
				d.logger.Error("failed to send reject for unroutable delivery",
					"exchange", msg.Exchange(), "error", rerr)
			}
			return fmt.Errorf("%w: %q", ErrNoListener, msg.Exchange())
		}

		exchange := entry.ExchangeName()
		d.collector.SetMaxConcurrent(exchange, entry.MaxConcurrentTasks())
		d.logger.Debug("waiting for a permit",
			"exchange", exchange,
			"permits_used", entry.Limiter().InUse(),
			"permits_max", entry.MaxConcurrentTasks())

		permit, err := entry.Limiter().Acquire(ctx)
		if err != nil {
			return err
		}
		d.collector.IncPermitsUsed(exchange)

		// Handler tasks outlive the loop and are never cancelled.
		go d.runTask(context.WithoutCancel(ctx), msg, entry, permit)
	}
}

// runTask consumes one delivery and translates the outcome into an
// acknowledgement. The permit is released as soon as Consume returns,
// before any acknowledgement I/O, so the freed slot is visible to the
// dispatch loop while the ack round-trip is still in flight.
func (d *DispatchLoop) runTask(ctx context.Context, msg Message, entry *Entry, permit *Permit) {
	exchange := entry.ExchangeName()

	start := time.Now()
	out := d.consume(ctx, entry.Listener(), msg)
	permit.Release()
	d.collector.DecPermitsUsed(exchange)
	d.collector.ObserveConsumeDuration(exchange, time.Since(start))

	if !out.Failed() {
		if err := msg.Ack(); err != nil {
			d.logger.Error("delivery consumed, but failed to send ack back to the broker",
				"exchange", exchange, "error", err)
		}
		return
	}

	if err := msg.Reject(out.Requeue()); err != nil {
		d.logger.Error("failed to send reject",
			"exchange", exchange, "requeue", out.Requeue(), "error", err)
		return
	}
	d.logger.Warn("error during consumption of a delivery, reject sent",
		"exchange", exchange,
		"routing_key", msg.RoutingKey(),
		"redelivered", msg.Redelivered(),
		"requeue", out.Requeue())
}

// consume invokes the listener, converting a panic into a requeueing
// failure so the delivery still receives exactly one acknowledgement.
func (d *DispatchLoop) consume(ctx context.Context, l Listener, msg Message) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			d.logger.Error("panic recovered in listener",
				"exchange", l.ExchangeName(), "panic", r, "stack", string(buf[:n]))
			out = Failure(true)
		}
	}()
	return l.Consume(ctx, msg)
}
