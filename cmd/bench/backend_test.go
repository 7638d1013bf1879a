package main

import (
	"strconv"
	"testing"
	"time"
)

func TestNewBackend_TTLCachePolicies(t *testing.T) {
	for _, p := range []string{"lru", "lfu", "fifo", "2q"} {
		b, err := newBackend(benchConfig{impl: "ttlcache", policy: p, capacity: 8, ttl: time.Minute})
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		for i := 0; i < 32; i++ {
			b.SetWithTTL("k"+strconv.Itoa(i), "v", time.Minute)
		}
		if n := b.Len(); n > 8 {
			t.Fatalf("%s: Len = %d > cap", p, n)
		}
		_ = b.Close()
	}
}

func TestNewBackend_Errors(t *testing.T) {
	cases := []benchConfig{
		{impl: "memcached", capacity: 8, ttl: time.Minute},
		{impl: "ttlcache", policy: "arc", capacity: 8, ttl: time.Minute},
		{impl: "ttlcache", policy: "lru", capacity: 0, ttl: time.Minute},
		{impl: "ristretto", capacity: 0},
	}
	for _, cfg := range cases {
		if _, err := newBackend(cfg); err == nil {
			t.Fatalf("%+v: expected error", cfg)
		}
	}
}

func TestRistrettoBackend_RoundTrip(t *testing.T) {
	b, err := newBackend(benchConfig{impl: "ristretto", capacity: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	b.SetWithTTL("a", "1", time.Minute)
	// Admission is asynchronous; Len waits for the buffers to drain.
	_ = b.Len()
	if v, ok := b.Get("a"); ok && v != "1" {
		t.Fatalf("Get a = %q", v)
	}
}
