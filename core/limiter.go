package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of deliveries a single listener processes
// concurrently. It is created once per registered listener and lives for
// the lifetime of the process; capacity is fixed at construction.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int
	inUse    atomic.Int64
}

// NewLimiter creates a Limiter with the given capacity. Capacities below
// one are clamped to one.
func NewLimiter(capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Acquire blocks the calling goroutine until a slot is available, then
// returns the Permit holding it. If ctx is done while waiting, Acquire
// returns ErrLimiterClosed wrapping the context error.
func (l *Limiter) Acquire(ctx context.Context) (*Permit, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLimiterClosed, err)
	}
	l.inUse.Add(1)
	return &Permit{limiter: l}, nil
}

// Capacity returns the maximum number of concurrently held permits.
func (l *Limiter) Capacity() int { return l.capacity }

// InUse returns the number of permits currently held.
func (l *Limiter) InUse() int { return int(l.inUse.Load()) }

// Permit is one unit of a listener's concurrency capacity. It is handed
// to the handler task together with the delivery and must be released
// exactly once; Release is safe to call again but only the first call
// returns the slot.
type Permit struct {
	limiter *Limiter
	once    sync.Once
}

// Release returns the slot to the limiter, waking one blocked Acquire.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.limiter.inUse.Add(-1)
		p.limiter.sem.Release(1)
	})
}
