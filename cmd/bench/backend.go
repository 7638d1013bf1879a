package main

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/IvanBrykalov/ttlcache/cache"
	"github.com/IvanBrykalov/ttlcache/policy/twoq"
)

// backend is the slice of a cache the workload drives.
type backend interface {
	Get(key string) (string, bool)
	SetWithTTL(key, v string, ttl time.Duration)
	Len() int
	Close() error
}

type benchConfig struct {
	impl     string
	policy   string
	capacity int
	ttl      time.Duration
	sweep    time.Duration
	opt      cache.Options[string]
}

// newBackend builds either a ttlcache instance or a ristretto baseline.
func newBackend(cfg benchConfig) (backend, error) {
	switch cfg.impl {
	case "ttlcache":
		return newTTLCache(cfg)
	case "ristretto":
		return newRistretto(cfg.capacity)
	default:
		return nil, fmt.Errorf("unknown impl %q (use ttlcache or ristretto)", cfg.impl)
	}
}

func newTTLCache(cfg benchConfig) (backend, error) {
	opt := cfg.opt
	opt.MaxSize = cfg.capacity
	opt.DefaultTTL = cfg.ttl
	opt.SweepInterval = cfg.sweep
	opt.Sizer = func(v string) int { return len(v) }

	switch cfg.policy {
	case "2q":
		opt.Policy = twoq.New[string](cfg.capacity/4, cfg.capacity/2)
	default:
		s, err := cache.ParseStrategy(cfg.policy)
		if err != nil {
			return nil, err
		}
		opt.Strategy = s
	}
	c, err := cache.New[string](opt)
	if err != nil {
		return nil, err
	}
	return ttlBackend{c}, nil
}

type ttlBackend struct{ cache.Cache[string] }

// ristrettoBackend admits entries with cost 1 so MaxCost is an entry bound.
type ristrettoBackend struct{ c *ristretto.Cache }

func newRistretto(capacity int) (backend, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid capacity %d", capacity)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &ristrettoBackend{c: c}, nil
}

func (r *ristrettoBackend) Get(key string) (string, bool) {
	v, ok := r.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (r *ristrettoBackend) SetWithTTL(key, v string, ttl time.Duration) {
	r.c.SetWithTTL(key, v, 1, ttl)
}

// Len is approximate: ristretto admits asynchronously and counts via metrics.
func (r *ristrettoBackend) Len() int {
	r.c.Wait()
	if m := r.c.Metrics; m != nil {
		return int(m.KeysAdded() - m.KeysEvicted())
	}
	return -1
}

func (r *ristrettoBackend) Close() error {
	r.c.Wait()
	r.c.Close()
	return nil
}
