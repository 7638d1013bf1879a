package cache

import "time"

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Hit, Miss, Evict and Size are called under the store lock.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int, bytes int64)
	// Sweep is called after every sweep pass, including empty ones.
	Sweep(removed int, took time.Duration)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                     {}
func (NoopMetrics) Miss()                    {}
func (NoopMetrics) Evict(EvictReason)        {}
func (NoopMetrics) Size(int, int64)          {}
func (NoopMetrics) Sweep(int, time.Duration) {}

var _ Metrics = NoopMetrics{}
