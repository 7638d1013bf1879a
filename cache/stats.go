package cache

// Stats is a point-in-time diagnostic snapshot of a cache.
//
// ActiveEntries and ExpiredEntries partition TotalEntries using the same
// liveness check as Get, but computing them removes nothing.
type Stats struct {
	TotalEntries   int
	ActiveEntries  int
	ExpiredEntries int

	// ApproximateSizeBytes is Σ len(key) + Sizer(value) over stored entries.
	ApproximateSizeBytes int64

	// Strategy is the eviction policy name ("lru", "lfu", "fifo", ...).
	Strategy string
	MaxSize  int

	// Lifetime counters.
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // capacity evictions
	Expirations uint64 // lazy expiries + swept entries
}

// HitRate returns Hits/(Hits+Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (c *cache[V]) Stats() Stats {
	return c.s.stats(c.now())
}

// stats is a read-only pass under the read lock.
func (s *store[V]) stats(now int64) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalEntries:         len(s.m),
		ApproximateSizeBytes: s.bytes,
		Strategy:             s.pol.Name(),
		MaxSize:              s.cap,
		Hits:                 s.hits.Load(),
		Misses:               s.misses.Load(),
		Evictions:            s.evicts.Load(),
		Expirations:          s.expires.Load(),
	}
	for _, n := range s.m {
		if n.expired(now) {
			st.ExpiredEntries++
		} else {
			st.ActiveEntries++
		}
	}
	return st
}
