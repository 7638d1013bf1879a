package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/IvanBrykalov/ttlcache/codec"
	"github.com/IvanBrykalov/ttlcache/policy"
	"github.com/IvanBrykalov/ttlcache/policy/fifo"
	"github.com/IvanBrykalov/ttlcache/policy/lfu"
	"github.com/IvanBrykalov/ttlcache/policy/lru"
)

// cache is the facade over the store and the sweeper.
type cache[V any] struct {
	s   *store[V]
	sw  *sweeper
	opt Options[V]
	log Logger

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group
}

// New validates opt and constructs a cache with its sweeper running.
// Invalid options yield a *ConfigError (errors.Is(err, ErrInvalidConfig)).
func New[V any](opt Options[V]) (Cache[V], error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if opt.SweepInterval == 0 {
		opt.SweepInterval = DefaultSweepInterval
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = NopLogger{}
	}
	if opt.Sizer == nil {
		opt.Sizer = codec.SizeOf[V](codec.Msgpack[V]{})
	}

	pol := opt.Policy
	if pol == nil {
		pol = builtin(opt.Strategy)
	}

	c := &cache[V]{opt: opt, log: opt.Logger}
	c.s = newStore[V](pol, &c.opt)
	c.sw = startSweeper(opt.SweepInterval, func() { c.sweep() })

	c.log.Info("cache created", Fields{
		"policy":   pol.Name(),
		"max_size": opt.MaxSize,
		"ttl":      opt.DefaultTTL,
		"sweep":    opt.SweepInterval,
	})
	return c, nil
}

func builtin(s Strategy) policy.Policy[string] {
	switch s {
	case LFU:
		return lfu.New[string]()
	case FIFO:
		return fifo.New[string]()
	default:
		return lru.New[string]()
	}
}

// ---- Cache[V] implementation ----

func (c *cache[V]) Get(key string) (V, bool) {
	return c.s.get(key, c.now())
}

func (c *cache[V]) Set(key string, v V) {
	c.SetWithTTL(key, v, 0)
}

func (c *cache[V]) SetWithTTL(key string, v V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.opt.DefaultTTL
	}
	// Size outside the lock; the encoder may be slow.
	size := c.opt.Sizer(v)
	if size < 0 {
		size = 0
	}
	c.s.set(key, v, ttl, size, c.now())
}

func (c *cache[V]) Delete(key string) bool {
	return c.s.remove(key)
}

func (c *cache[V]) Has(key string) bool {
	_, ok := c.s.get(key, c.now())
	return ok
}

func (c *cache[V]) Clear() {
	c.s.clear()
}

func (c *cache[V]) Len() int {
	return c.s.count()
}

func (c *cache[V]) GetMany(keys []string) map[string]V {
	out := make(map[string]V, len(keys))
	for _, k := range keys {
		if v, ok := c.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

func (c *cache[V]) SetMany(items []Item[V]) {
	for _, it := range items {
		c.SetWithTTL(it.Key, it.Value, it.TTL)
	}
}

func (c *cache[V]) Keys() []string {
	return c.s.keys()
}

func (c *cache[V]) DeleteExpired() int {
	return c.sweep()
}

// GetOrLoad returns the value for key; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key. The Loader sees the first
// caller's ctx values but not its cancellation, so one caller giving up does
// not fail the load for the others. Any caller whose ctx is done returns
// ctx.Err() without waiting.
func (c *cache[V]) GetOrLoad(ctx context.Context, key string) (V, error) {
	var zero V
	// fast path
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}
	if c.s.isClosed() {
		return zero, ErrClosed
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (any, error) {
		// double-check after flight join
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := c.opt.Loader(loadCtx, key)
		if err != nil {
			c.log.Warn("loader failed", Fields{"key": key, "err": err})
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(V)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close marks the store closed first, so nothing mutates once it returns,
// then stops the sweeper and waits for it.
func (c *cache[V]) Close() error {
	if c.s.close() {
		return nil
	}
	c.sw.stop()
	c.log.Info("cache closed", Fields{"entries": c.s.count()})
	return nil
}

// ---- helpers ----

// sweep runs one expiry pass and reports it.
func (c *cache[V]) sweep() int {
	start := time.Now()
	removed := c.s.sweep(c.now())
	took := time.Since(start)

	c.opt.Metrics.Sweep(removed, took)
	if removed > 0 {
		c.log.Debug("sweep completed", Fields{"removed": removed, "took": took})
	}
	return removed
}

func (c *cache[V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}
