package cache

import (
	"sync"
	"time"

	"github.com/IvanBrykalov/ttlcache/internal/util"
	"github.com/IvanBrykalov/ttlcache/policy"
)

// store is the entry store: one lock, one map, and one intrusive list whose
// order is maintained by the policy tracker through hooks.
//
// Every mutation (including eviction and sweep) is a critical section under
// mu, so victim selection always sees a consistent view and a key can be
// removed only once.
type store[V any] struct {
	// ---- guarded by mu ----
	mu     sync.RWMutex
	m      map[string]*node[V]
	head   *node[V]
	tail   *node[V]
	bytes  int64 // Σ len(key)+size over resident entries
	closed bool

	// pending holds evictions made under mu, delivered to OnEvict by
	// unlockNotify once mu is released.
	pending []evicted[V]

	cap int
	pol policy.Policy[string]
	tr  policy.Tracker[string]
	opt *Options[V]

	// ---- lifetime counters (separate cache lines) ----
	_       [util.CacheLineSize]byte
	hits    util.Counter
	misses  util.Counter
	evicts  util.Counter
	expires util.Counter
}

func newStore[V any](pol policy.Policy[string], opt *Options[V]) *store[V] {
	s := &store[V]{
		m:   make(map[string]*node[V], opt.MaxSize),
		cap: opt.MaxSize,
		pol: pol,
		opt: opt,
	}
	s.tr = pol.New(storeHooks[V]{s: s})
	return s
}

// get returns the value for k and records the access with the tracker.
// An expired entry is removed and reported as a miss.
func (s *store[V]) get(k string, now int64) (V, bool) {
	s.mu.Lock()
	defer s.unlockNotify()

	var zero V
	if s.closed {
		return zero, false
	}
	n, ok := s.m[k]
	if !ok {
		s.missLocked()
		return zero, false
	}
	if n.expired(now) {
		s.evictLocked(n, EvictExpired)
		s.missLocked()
		s.reportSizeLocked()
		return zero, false
	}

	s.tr.OnGet(n)
	s.hits.Inc()
	s.opt.Metrics.Hit()
	return n.val, true
}

// set inserts or overwrites k. Only a new key can trigger eviction.
func (s *store[V]) set(k string, v V, ttl time.Duration, size int, now int64) {
	s.mu.Lock()
	defer s.unlockNotify()

	if s.closed {
		return
	}

	if n, ok := s.m[k]; ok {
		s.bytes += int64(size - n.size)
		n.val = v
		n.created = now
		n.ttl = ttl
		n.size = size
		s.tr.OnUpdate(n)
		s.reportSizeLocked()
		return
	}

	for len(s.m) >= s.cap {
		victim := s.tr.Victim()
		if victim == nil {
			break
		}
		s.evictLocked(victim.(*node[V]), EvictCapacity)
	}

	n := &node[V]{key: k, val: v, created: now, ttl: ttl, size: size}
	s.m[k] = n
	s.bytes += int64(len(k) + size)
	s.tr.OnAdd(n)
	s.reportSizeLocked()
}

// remove deletes k and reports whether it was present.
func (s *store[V]) remove(k string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	n, ok := s.m[k]
	if !ok {
		return false
	}
	s.deleteLocked(n)
	s.reportSizeLocked()
	return true
}

// clear drops every entry and rebinds a fresh tracker.
func (s *store[V]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.m = make(map[string]*node[V], s.cap)
	s.head, s.tail = nil, nil
	s.bytes = 0
	s.tr = s.pol.New(storeHooks[V]{s: s})
	s.reportSizeLocked()
}

// sweep removes every expired entry and returns how many were removed.
func (s *store[V]) sweep(now int64) int {
	s.mu.Lock()
	defer s.unlockNotify()

	if s.closed {
		return 0
	}
	removed := 0
	for _, n := range s.m {
		if n.expired(now) {
			s.evictLocked(n, EvictSwept)
			removed++
		}
	}
	if removed > 0 {
		s.reportSizeLocked()
	}
	return removed
}

// close freezes the store: no further mutation is possible.
func (s *store[V]) close() (already bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	already = s.closed
	s.closed = true
	return already
}

func (s *store[V]) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *store[V]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// keys lists resident keys from head to tail.
func (s *store[V]) keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.m))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.key)
	}
	return out
}

// -------------------- internals (mu held) --------------------

func (s *store[V]) missLocked() {
	s.misses.Inc()
	s.opt.Metrics.Miss()
}

// deleteLocked is the single removal path: tracker, list, map, bytes.
func (s *store[V]) deleteLocked(n *node[V]) {
	s.tr.OnRemove(n)
	s.unlink(n)
	delete(s.m, n.key)
	s.bytes -= int64(len(n.key) + n.size)
	if s.bytes < 0 {
		s.bytes = 0
	}
}

// evictLocked removes n on the cache's own initiative and notifies observers.
func (s *store[V]) evictLocked(n *node[V], reason EvictReason) {
	s.deleteLocked(n)
	if reason == EvictCapacity {
		s.evicts.Inc()
	} else {
		s.expires.Inc()
	}
	s.opt.Metrics.Evict(reason)
	if s.opt.OnEvict != nil {
		s.pending = append(s.pending, evicted[V]{key: n.key, val: n.val, reason: reason})
	}
}

type evicted[V any] struct {
	key    string
	val    V
	reason EvictReason
}

// unlockNotify releases mu, then runs OnEvict for the removals collected
// while it was held. Used by every path that can evict.
func (s *store[V]) unlockNotify() {
	ev := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range ev {
		s.opt.OnEvict(e.key, e.val, e.reason)
	}
}

func (s *store[V]) reportSizeLocked() {
	s.opt.Metrics.Size(len(s.m), s.bytes)
}

// insertFront links n at the head in O(1).
func (s *store[V]) insertFront(n *node[V]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// moveToFront promotes n to the head in O(1).
func (s *store[V]) moveToFront(n *node[V]) {
	if n == s.head {
		return
	}
	s.unlink(n)
	s.insertFront(n)
}

// unlink detaches n from the list in O(1).
func (s *store[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// -------------------- policy hooks --------------------

// storeHooks adapts the store's list operations to policy.Hooks.
type storeHooks[V any] struct{ s *store[V] }

func (h storeHooks[V]) MoveToFront(x policy.Node[string]) { h.s.moveToFront(x.(*node[V])) }
func (h storeHooks[V]) PushFront(x policy.Node[string])   { h.s.insertFront(x.(*node[V])) }
func (h storeHooks[V]) Len() int                          { return len(h.s.m) }

// Back and Prev return an untyped nil at the list ends so that callers can
// compare against nil.
func (h storeHooks[V]) Back() policy.Node[string] {
	if h.s.tail == nil {
		return nil
	}
	return h.s.tail
}

func (h storeHooks[V]) Prev(x policy.Node[string]) policy.Node[string] {
	p := x.(*node[V]).prev
	if p == nil {
		return nil
	}
	return p
}
