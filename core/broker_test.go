package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brokermux/brokermux/core"
	"github.com/brokermux/brokermux/internal/mock"
)

func TestBroker_RunDispatches(t *testing.T) {
	tr := mock.NewTransport()
	b := core.NewBroker(tr, core.WithLogger(discardLogger()))

	done := make(chan struct{})
	b.AddListener(core.ListenerFunc("orders", 1, func(ctx context.Context, msg core.Message) core.Outcome {
		close(done)
		return core.Success()
	}))

	msg := &mock.Message{Exch: "orders"}
	tr.Stream.Push(msg)
	tr.Stream.End()

	require.NoError(t, b.Run(context.Background()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not invoked")
	}
	require.Eventually(t, func() bool { return msg.AckCalls() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroker_Publish(t *testing.T) {
	tr := mock.NewTransport()
	b := core.NewBroker(tr)

	_, err := b.Publish(context.Background(), orderCreated{ID: "9"}, "orders.created")
	require.NoError(t, err)
	require.Len(t, tr.Published(), 1)
}

func TestBroker_NilTransport(t *testing.T) {
	b := core.NewBroker(nil)
	require.ErrorIs(t, b.Run(context.Background()), core.ErrNoTransport)
}

func TestBroker_DoubleRun(t *testing.T) {
	tr := mock.NewTransport()
	b := core.NewBroker(tr, core.WithLogger(discardLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- b.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	require.ErrorIs(t, b.Run(ctx), core.ErrAlreadyStarted)

	cancel()
	require.NoError(t, <-errCh)
}
