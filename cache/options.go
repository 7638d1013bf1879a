package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IvanBrykalov/ttlcache/policy"
)

// Strategy selects one of the built-in eviction policies.
type Strategy int

const (
	// LRU evicts the least recently read or written entry.
	LRU Strategy = iota
	// LFU evicts the entry with the fewest accesses (oldest insert on ties).
	LFU
	// FIFO evicts the oldest insert regardless of access.
	FIFO
)

func (s Strategy) String() string {
	switch s {
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	case FIFO:
		return "fifo"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "lru", "lfu" or "fifo" (any case) to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lru":
		return LRU, nil
	case "lfu":
		return LFU, nil
	case "fifo":
		return FIFO, nil
	}
	return 0, &ConfigError{Field: "Strategy", Value: s, Reason: "must be one of lru, lfu, fifo"}
}

// EvictReason explains why an entry was removed by the cache itself.
type EvictReason int

const (
	// EvictCapacity: removed by the eviction policy to admit a new key.
	EvictCapacity EvictReason = iota
	// EvictExpired: found expired on Get/Has (lazy expiry).
	EvictExpired
	// EvictSwept: removed by the background sweeper or DeleteExpired.
	EvictSwept
)

func (r EvictReason) String() string {
	switch r {
	case EvictExpired:
		return "expired"
	case EvictSwept:
		return "swept"
	default:
		return "capacity"
	}
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Item is one entry for SetMany. A non-positive TTL means DefaultTTL.
type Item[V any] struct {
	Key   string
	Value V
	TTL   time.Duration
}

// DefaultSweepInterval is the sweeper period when Options.SweepInterval is 0.
const DefaultSweepInterval = 60 * time.Second

// Options configures the cache. DefaultTTL and MaxSize are required and
// fixed for the lifetime of the instance; everything else has a default:
//   - Strategy zero value => LRU
//   - SweepInterval 0     => DefaultSweepInterval
//   - nil Metrics         => NoopMetrics
//   - nil Logger          => NopLogger
//   - nil Sizer           => msgpack-encoded length
//   - nil Clock           => time.Now()
type Options[V any] struct {
	// DefaultTTL applies to Set and to SetWithTTL/SetMany with ttl <= 0. Must be > 0.
	DefaultTTL time.Duration

	// MaxSize is the entry count bound. Inserting a new key at MaxSize
	// evicts one victim first. Must be > 0.
	MaxSize int

	// Strategy picks a built-in policy. Ignored when Policy is set.
	Strategy Strategy

	// Policy plugs a custom eviction policy (e.g. twoq). nil => Strategy.
	Policy policy.Policy[string]

	// SweepInterval is the period of the background expiry sweep.
	SweepInterval time.Duration

	// Sizer estimates a value's size in bytes for Stats.ApproximateSizeBytes.
	// It is called once per Set, outside the store lock.
	Sizer func(v V) int

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, key string) (V, error)

	// OnEvict is called for every removal the cache performs on its own,
	// after the store lock is released, so it may call back into the cache.
	// It runs on the goroutine whose operation caused the removal (the
	// sweeper for swept entries). Explicit Delete and Clear do not trigger it.
	OnEvict func(key string, v V, reason EvictReason)

	Metrics Metrics
	Logger  Logger

	// Clock allows overriding time source (tests). Nil => time.Now().
	Clock Clock
}

// DefaultOptions returns a ready-to-use configuration:
// 5 minute TTL, 1000 entries, LRU, 60s sweep.
func DefaultOptions[V any]() Options[V] {
	return Options[V]{
		DefaultTTL:    5 * time.Minute,
		MaxSize:       1000,
		Strategy:      LRU,
		SweepInterval: DefaultSweepInterval,
	}
}

// validate reports the first invalid field.
func (o *Options[V]) validate() error {
	switch {
	case o.MaxSize <= 0:
		return &ConfigError{Field: "MaxSize", Value: o.MaxSize, Reason: "must be > 0"}
	case o.DefaultTTL <= 0:
		return &ConfigError{Field: "DefaultTTL", Value: o.DefaultTTL, Reason: "must be > 0"}
	case o.SweepInterval < 0:
		return &ConfigError{Field: "SweepInterval", Value: o.SweepInterval, Reason: "must be >= 0"}
	case o.Policy == nil && (o.Strategy < LRU || o.Strategy > FIFO):
		return &ConfigError{Field: "Strategy", Value: o.Strategy, Reason: "must be one of lru, lfu, fifo"}
	}
	return nil
}
