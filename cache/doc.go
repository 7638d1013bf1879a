// Package cache provides a generic, in-process cache with per-entry TTL,
// pluggable eviction policies (LRU, LFU, FIFO or a custom policy.Policy),
// capacity bounding, batch operations, singleflight loading, and a
// background sweeper for expired entries.
//
// Design
//
//   - Concurrency: one RWMutex guards the whole store. Every mutation,
//     including capacity eviction and sweep removals, is a critical section,
//     so two concurrent inserts can never both skip eviction and exceed
//     MaxSize, and a key is removed at most once.
//
//   - Storage: a map[string]*node for lookups and an intrusive doubly linked
//     list whose order is owned by the policy (recency for LRU, insertion for
//     FIFO and LFU). All list updates are O(1).
//
//   - Policies: see package policy. The built-ins are selected with
//     Options.Strategy; Options.Policy plugs anything else (e.g. twoq).
//
//   - TTL: every entry has a ttl > 0 (DefaultTTL when none is given).
//     Expiry is lazy on Get/Has and is the source of truth; the sweeper
//     removes dead entries every SweepInterval (60s by default).
//
//   - Lifecycle: New starts the sweeper, Close stops it and freezes the
//     cache. Instances share nothing; there is no global cache.
//
// Basic usage
//
//	c, err := cache.New[string](cache.Options[string]{
//	    DefaultTTL: 5 * time.Minute,
//	    MaxSize:    1000,
//	    Strategy:   cache.LFU,
//	})
//	if err != nil {
//	    return err // *cache.ConfigError
//	}
//	defer c.Close()
//
//	c.Set(keys.Diagram("d1"), "payload")
//	c.SetWithTTL("tmp", "v", 200*time.Millisecond)
//	if v, ok := c.Get(keys.Diagram("d1")); ok {
//	    _ = v
//	}
//
// With GetOrLoad (singleflight)
//
//	c, _ := cache.New[string](cache.Options[string]{
//	    DefaultTTL: time.Minute,
//	    MaxSize:    1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return fetch(ctx, k)
//	    },
//	})
//	v, err := c.GetOrLoad(ctx, keys.Computed("layout:d1"))
//
// Exporting metrics
//
//	m := prom.New(nil, "ttlcache", "diagrams", nil) // implements Metrics
//	c, _ := cache.New[[]byte](cache.Options[[]byte]{
//	    DefaultTTL: time.Minute,
//	    MaxSize:    10_000,
//	    Metrics:    m,
//	})
package cache
