package mock

import (
	"sync"
	"time"
)

// Collector is a metrics.Collector that records every observation.
type Collector struct {
	mu          sync.Mutex
	maxSet      map[string]int
	permitsUsed map[string]int
	consumeObs  map[string]int
	publishObs  map[string]int
}

func NewCollector() *Collector {
	return &Collector{
		maxSet:      make(map[string]int),
		permitsUsed: make(map[string]int),
		consumeObs:  make(map[string]int),
		publishObs:  make(map[string]int),
	}
}

func (c *Collector) SetMaxConcurrent(exchange string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSet[exchange] = n
}

func (c *Collector) IncPermitsUsed(exchange string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permitsUsed[exchange]++
}

func (c *Collector) DecPermitsUsed(exchange string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permitsUsed[exchange]--
}

func (c *Collector) ObserveConsumeDuration(exchange string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumeObs[exchange]++
}

func (c *Collector) ObservePublishDuration(exchange, routingKey string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishObs[exchange+"/"+routingKey]++
}

// MaxConcurrent returns the last recorded bound for the exchange.
func (c *Collector) MaxConcurrent(exchange string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxSet[exchange]
}

// PermitsUsed returns the current permits-used gauge for the exchange.
func (c *Collector) PermitsUsed(exchange string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permitsUsed[exchange]
}

// ConsumeObservations returns how many consume durations were recorded.
func (c *Collector) ConsumeObservations(exchange string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumeObs[exchange]
}

// PublishObservations returns how many publish durations were recorded.
func (c *Collector) PublishObservations(exchange, routingKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishObs[exchange+"/"+routingKey]
}
