package cache

import "time"

// node is an intrusive doubly linked list element owned by the store.
// It carries the entry (value, creation time, ttl) alongside list links.
type node[V any] struct {
	key string
	val V

	// Intrusive list links: head is the front, tail is the victim side.
	prev *node[V]
	next *node[V]

	// created is the UnixNano time of the last Set; overwrite resets it.
	created int64
	// ttl is always > 0.
	ttl time.Duration

	// size is the Sizer estimate for val, taken at Set time.
	size int
}

// Key returns the node key (part of policy.Node interface).
func (n *node[V]) Key() string { return n.key }

// expired reports whether the entry is no longer live at now.
// An entry is live iff now - created <= ttl; the subtraction form does not
// overflow for ttls close to math.MaxInt64.
func (n *node[V]) expired(now int64) bool {
	return now-n.created > int64(n.ttl)
}
