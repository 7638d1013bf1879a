package prom

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/IvanBrykalov/ttlcache/cache"
)

type fakeClock struct{ t int64 }

func (f *fakeClock) NowUnixNano() int64 { return f.t }

func TestAdapter_CacheEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "ttlcache", "test", prometheus.Labels{"instance": "a"})

	clk := &fakeClock{}
	c, err := cache.New[string](cache.Options[string]{
		DefaultTTL:    time.Minute,
		MaxSize:       2,
		SweepInterval: time.Hour,
		Clock:         clk,
		Metrics:       m,
		Sizer:         func(v string) int { return len(v) },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Set("a", "1")
	c.Get("a")
	c.Get("missing")
	c.Set("b", "2")
	c.Set("c", "3") // evicts a (LRU)
	c.SetWithTTL("d", "4", time.Millisecond)
	clk.t += int64(time.Second)
	c.DeleteExpired()

	if got := testutil.ToFloat64(m.hits); got != 1 {
		t.Fatalf("hits = %v", got)
	}
	if got := testutil.ToFloat64(m.misses); got != 1 {
		t.Fatalf("misses = %v", got)
	}
	if got := testutil.ToFloat64(m.evicts.WithLabelValues("capacity")); got != 2 {
		t.Fatalf("capacity evictions = %v", got)
	}
	if got := testutil.ToFloat64(m.evicts.WithLabelValues("swept")); got != 1 {
		t.Fatalf("swept evictions = %v", got)
	}
	if got := testutil.ToFloat64(m.swept); got != 1 {
		t.Fatalf("swept_entries_total = %v", got)
	}
	if got := testutil.ToFloat64(m.sizeEnt); got != 1 {
		t.Fatalf("size_entries = %v", got)
	}
	if got := testutil.ToFloat64(m.sizeBytes); got != 2 {
		t.Fatalf("size_bytes = %v", got)
	}
}

func TestAdapter_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "ttlcache", "diagrams", nil)
	m.Evict(cache.EvictExpired)

	want := `
# HELP ttlcache_diagrams_evictions_total Entries removed by the cache, by reason (capacity, expired, swept)
# TYPE ttlcache_diagrams_evictions_total counter
ttlcache_diagrams_evictions_total{reason="capacity"} 0
ttlcache_diagrams_evictions_total{reason="expired"} 1
ttlcache_diagrams_evictions_total{reason="swept"} 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "ttlcache_diagrams_evictions_total"); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CollectAndCount(m.sweepDur); n != 1 {
		t.Fatalf("sweep histogram series = %d", n)
	}
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "ttlcache", "dup", nil)

	defer func() {
		if recover() == nil {
			t.Fatal("second registration must panic")
		}
	}()
	New(reg, "ttlcache", "dup", nil)
}
