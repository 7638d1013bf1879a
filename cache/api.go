package cache

import (
	"context"
	"time"
)

// Cache is an in-process key/value cache with per-entry TTL, a pluggable
// eviction policy and a background expiry sweeper.
// All methods are safe for concurrent use by multiple goroutines.
//
// A miss (unknown key or expired entry) is reported as (zero, false), never
// as an error.
type Cache[V any] interface {
	// Get returns the value for key and a presence flag.
	// An expired entry is deleted and reported as a miss.
	Get(key string) (V, bool)

	// Set inserts or overwrites key with the cache's DefaultTTL.
	// Inserting a new key at MaxSize evicts one entry chosen by the policy;
	// overwriting never evicts.
	Set(key string, v V)

	// SetWithTTL is Set with a per-entry TTL. ttl <= 0 means DefaultTTL.
	SetWithTTL(key string, v V, ttl time.Duration)

	// Delete removes key and reports whether it existed. Idempotent.
	Delete(key string) bool

	// Has reports whether key holds a live entry, with Get's expiry semantics.
	Has(key string) bool

	// Clear removes all entries and all policy state.
	Clear()

	// Len returns the number of stored entries, including expired entries
	// that have not been detected yet.
	Len() int

	// GetMany looks up each key via Get. Absent keys are missing from the result.
	GetMany(keys []string) map[string]V

	// SetMany applies each item via SetWithTTL. Not atomic as a whole.
	SetMany(items []Item[V])

	// Stats returns a read-only diagnostic snapshot; it never deletes.
	Stats() Stats

	// Keys returns stored keys from the head of the policy list to the tail
	// (for LRU: most to least recently used).
	Keys() []string

	// DeleteExpired runs one sweep pass synchronously and returns the
	// number of entries removed.
	DeleteExpired() int

	// GetOrLoad returns the value for key, loading it via Options.Loader on miss.
	// Concurrent loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, key string) (V, error)

	// Close stops the sweeper and freezes the cache. After Close returns no
	// further mutation happens: writes are ignored and reads miss.
	// Close is idempotent and always returns nil.
	Close() error
}
