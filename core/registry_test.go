package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokermux/brokermux/core"
)

func noopListener(exchange string, max int) core.Listener {
	return core.ListenerFunc(exchange, max, func(ctx context.Context, msg core.Message) core.Outcome {
		return core.Success()
	})
}

func TestRegistry_LookupExactMatch(t *testing.T) {
	r := core.NewRegistry()
	r.Add(noopListener("orders", 1))
	r.Add(noopListener("payments", 3))

	e := r.Lookup("payments")
	require.NotNil(t, e)
	require.Equal(t, "payments", e.ExchangeName())
	require.Equal(t, 3, e.MaxConcurrentTasks())

	require.Nil(t, r.Lookup("shipments"))
	require.Nil(t, r.Lookup("order"))
	require.Equal(t, 2, r.Len())
}

func TestRegistry_FirstRegisteredWins(t *testing.T) {
	r := core.NewRegistry()
	first := r.Add(noopListener("orders", 1))
	r.Add(noopListener("orders", 5))

	require.Same(t, first, r.Lookup("orders"))
	require.Equal(t, 1, r.Lookup("orders").MaxConcurrentTasks())
}

func TestRegistry_DefaultConcurrencyIsOne(t *testing.T) {
	r := core.NewRegistry()

	// A listener without the BoundedListener interface defaults to 1.
	e := r.Add(plainListener{})
	require.Equal(t, 1, e.MaxConcurrentTasks())
	require.Equal(t, 1, e.Limiter().Capacity())

	// A non-positive bound is clamped to 1.
	e = r.Add(noopListener("other", 0))
	require.Equal(t, 1, e.MaxConcurrentTasks())
}

type plainListener struct{}

func (plainListener) ExchangeName() string { return "plain" }

func (plainListener) Consume(context.Context, core.Message) core.Outcome {
	return core.Success()
}

func TestOutcome(t *testing.T) {
	require.False(t, core.Success().Failed())
	require.True(t, core.Failure(true).Failed())
	require.True(t, core.Failure(true).Requeue())
	require.True(t, core.Failure(false).Failed())
	require.False(t, core.Failure(false).Requeue())
}
