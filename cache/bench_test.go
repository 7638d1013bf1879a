package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// benchmarkMix exercises a read/write mix against a warm cache.
// RunParallel spawns GOMAXPROCS goroutines; string keys include
// strconv/concat costs, which is fine for an end-to-end benchmark.
func benchmarkMix(b *testing.B, s Strategy, readsPct int) {
	c, err := New[string](Options[string]{
		DefaultTTL: time.Minute,
		MaxSize:    100_000,
		Strategy:   s,
		Sizer:      func(v string) int { return len(v) },
	})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = c.Close() })

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 17) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		for pb.Next() {
			k := "k:" + strconv.Itoa(r.Int()&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Set(k, "v")
			}
		}
	})
}

func BenchmarkCache_LRU_90r10w(b *testing.B)  { benchmarkMix(b, LRU, 90) }
func BenchmarkCache_LRU_50r50w(b *testing.B)  { benchmarkMix(b, LRU, 50) }
func BenchmarkCache_LFU_90r10w(b *testing.B)  { benchmarkMix(b, LFU, 90) }
func BenchmarkCache_FIFO_90r10w(b *testing.B) { benchmarkMix(b, FIFO, 90) }

// The default msgpack sizer runs on every Set.
func BenchmarkCache_SetDefaultSizer(b *testing.B) {
	type payload struct {
		ID   string
		Tags []string
	}
	c, err := New[payload](Options[payload]{DefaultTTL: time.Minute, MaxSize: 1 << 14})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = c.Close() })

	v := payload{ID: "d1", Tags: []string{"aws", "prod"}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set("k:"+strconv.Itoa(i&(1<<14-1)), v)
	}
}

func BenchmarkCache_Stats(b *testing.B) {
	c, err := New[int](Options[int]{DefaultTTL: time.Minute, MaxSize: 10_000})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = c.Close() })
	for i := 0; i < 10_000; i++ {
		c.Set(strconv.Itoa(i), i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Stats()
	}
}
