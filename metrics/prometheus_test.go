package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Collects(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	require.NoError(t, p.Register())
	require.NoError(t, p.Register()) // safe to call twice

	p.SetMaxConcurrent("orders", 4)
	p.IncPermitsUsed("orders")
	p.IncPermitsUsed("orders")
	p.DecPermitsUsed("orders")
	p.ObserveConsumeDuration("orders", 30*time.Millisecond)
	p.ObservePublishDuration("orders", "orders.created", time.Millisecond)

	require.Equal(t, 4.0, testutil.ToFloat64(p.concurrentTasks.WithLabelValues("orders", "max")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.concurrentTasks.WithLabelValues("orders", "permits_used")))
	require.Equal(t, 1, testutil.CollectAndCount(p.consumerDuration))
	require.Equal(t, 1, testutil.CollectAndCount(p.publisherDuration))
}

func TestPrometheus_NilRegistererDefaults(t *testing.T) {
	p := NewPrometheus(nil)
	require.NotNil(t, p.registerer)
}
