// Package util contains internal helpers.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for most modern CPUs.
const CacheLineSize = 64

// Counter is a monotonically increasing atomic counter padded to one cache
// line, so that neighbouring counters updated by different goroutines do not
// share a line.
type Counter struct {
	v atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// Inc adds one.
func (c *Counter) Inc() { c.v.Add(1) }

// Add adds n.
func (c *Counter) Add(n uint64) { c.v.Add(n) }

// Load returns the current value.
func (c *Counter) Load() uint64 { return c.v.Load() }

// Compile-time size check: exactly one cache line.
var _ [CacheLineSize - int(unsafe.Sizeof(Counter{}))]byte
