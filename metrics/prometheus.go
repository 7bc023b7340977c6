package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Collector backed by prometheus/client_golang.
type Prometheus struct {
	concurrentTasks   *prometheus.GaugeVec
	consumerDuration  *prometheus.HistogramVec
	publisherDuration *prometheus.HistogramVec

	registerer prometheus.Registerer
	mu         sync.Mutex
	registered bool
}

// NewPrometheus creates the collectors. If registerer is nil,
// prometheus.DefaultRegisterer is used. Call Register before serving.
func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Prometheus{
		registerer: registerer,
		concurrentTasks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "broker_consumer_concurrent_tasks",
				Help: "Current and maximum concurrent handler tasks per exchange",
			},
			[]string{"exchange_name", "kind"},
		),
		consumerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broker_consumer_duration_seconds",
				Help:    "Time spent consuming one delivery, excluding acknowledgement I/O",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"exchange_name"},
		),
		publisherDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broker_publisher_duration_seconds",
				Help:    "Time spent publishing one message to the transport",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"exchange_name", "routing_key"},
		),
	}
}

// Register registers the collectors with the configured Registerer.
// Safe to call multiple times.
func (p *Prometheus) Register() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.registered {
		return nil
	}

	for _, c := range []prometheus.Collector{
		p.concurrentTasks,
		p.consumerDuration,
		p.publisherDuration,
	} {
		if err := p.registerer.Register(c); err != nil {
			return err
		}
	}
	p.registered = true
	return nil
}

func (p *Prometheus) SetMaxConcurrent(exchange string, n int) {
	p.concurrentTasks.WithLabelValues(exchange, "max").Set(float64(n))
}

func (p *Prometheus) IncPermitsUsed(exchange string) {
	p.concurrentTasks.WithLabelValues(exchange, "permits_used").Inc()
}

func (p *Prometheus) DecPermitsUsed(exchange string) {
	p.concurrentTasks.WithLabelValues(exchange, "permits_used").Dec()
}

func (p *Prometheus) ObserveConsumeDuration(exchange string, d time.Duration) {
	p.consumerDuration.WithLabelValues(exchange).Observe(d.Seconds())
}

func (p *Prometheus) ObservePublishDuration(exchange, routingKey string, d time.Duration) {
	p.publisherDuration.WithLabelValues(exchange, routingKey).Observe(d.Seconds())
}
