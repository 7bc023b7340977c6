package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brokermux/brokermux/core"
)

func TestLimiter_CapacityClamped(t *testing.T) {
	require.Equal(t, 1, core.NewLimiter(0).Capacity())
	require.Equal(t, 1, core.NewLimiter(-3).Capacity())
	require.Equal(t, 4, core.NewLimiter(4).Capacity())
}

func TestLimiter_AcquireRelease(t *testing.T) {
	l := core.NewLimiter(2)
	ctx := context.Background()

	p1, err := l.Acquire(ctx)
	require.NoError(t, err)
	p2, err := l.Acquire(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, l.InUse())

	p1.Release()
	require.Equal(t, 1, l.InUse())
	p2.Release()
	require.Equal(t, 0, l.InUse())
}

func TestLimiter_AcquireBlocksUntilRelease(t *testing.T) {
	l := core.NewLimiter(1)
	ctx := context.Background()

	p, err := l.Acquire(ctx)
	require.NoError(t, err)

	acquired := make(chan *core.Permit, 1)
	go func() {
		p2, err := l.Acquire(ctx)
		if err == nil {
			acquired <- p2
		}
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should block while the permit is held")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release()

	select {
	case p2 := <-acquired:
		p2.Release()
	case <-time.After(2 * time.Second):
		t.Fatal("acquire did not unblock after release")
	}
}

func TestLimiter_AcquireFailsOnShutdown(t *testing.T) {
	l := core.NewLimiter(1)

	p, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer p.Release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := l.Acquire(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, core.ErrLimiterClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("acquire did not fail after cancellation")
	}
	require.Equal(t, 1, l.InUse())
}

func TestLimiter_DoubleReleaseReturnsOneSlot(t *testing.T) {
	l := core.NewLimiter(1)

	p, err := l.Acquire(context.Background())
	require.NoError(t, err)

	p.Release()
	p.Release()
	require.Equal(t, 0, l.InUse())

	// A second slot must not have appeared: two concurrent acquires
	// still serialize.
	p1, err := l.Acquire(context.Background())
	require.NoError(t, err)
	defer p1.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx)
	require.ErrorIs(t, err, core.ErrLimiterClosed)
}
