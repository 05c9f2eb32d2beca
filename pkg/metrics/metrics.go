package metrics

import (
	"sync"
	"time"
)

// Collector accumulates in-process counters, latency samples and size
// samples. It backs the /metrics endpoint and is safe for concurrent use.
// Sample series are capped at the most recent 100 observations.
type Collector struct {
	mu        sync.RWMutex
	counters  map[string]map[string]int64
	latencies map[string][]time.Duration
	sizes     map[string][]float64
}

const maxSamples = 100

func NewCollector() *Collector {
	return &Collector{
		counters:  make(map[string]map[string]int64),
		latencies: make(map[string][]time.Duration),
		sizes:     make(map[string][]float64),
	}
}

// IncrementCounter bumps the counter identified by name and label, e.g.
// ("store_ops", "projects:update").
func (c *Collector) IncrementCounter(name, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if label == "" {
		label = "default"
	}
	if _, ok := c.counters[name]; !ok {
		c.counters[name] = make(map[string]int64)
	}
	c.counters[name][label]++
}

// ObserveLatency records one duration sample for the named operation.
func (c *Collector) ObserveLatency(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := append(c.latencies[name], d)
	if len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	c.latencies[name] = samples
}

// ObserveSize records one size sample in bytes, e.g. an uploaded image.
func (c *Collector) ObserveSize(name string, size float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := append(c.sizes[name], size)
	if len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	c.sizes[name] = samples
}

// Counters returns a copy of all counters.
func (c *Collector) Counters() map[string]map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]map[string]int64, len(c.counters))
	for name, labels := range c.counters {
		out[name] = make(map[string]int64, len(labels))
		for label, v := range labels {
			out[name][label] = v
		}
	}
	return out
}

// Latencies returns the average latency in milliseconds per operation.
func (c *Collector) Latencies() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]float64, len(c.latencies))
	for name, samples := range c.latencies {
		if len(samples) == 0 {
			continue
		}
		var sum time.Duration
		for _, d := range samples {
			sum += d
		}
		out[name] = float64(sum) / float64(len(samples)) / float64(time.Millisecond)
	}
	return out
}

// Sizes returns average and max observed size in bytes per series.
func (c *Collector) Sizes() map[string]map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]map[string]float64, len(c.sizes))
	for name, samples := range c.sizes {
		if len(samples) == 0 {
			continue
		}
		var sum, max float64
		for _, v := range samples {
			sum += v
			if v > max {
				max = v
			}
		}
		out[name] = map[string]float64{
			"avg_bytes": sum / float64(len(samples)),
			"max_bytes": max,
		}
	}
	return out
}
