// Package policy defines the contract between the cache's entry store and
// its eviction policies.
//
// The store owns the key->node map and an intrusive doubly linked list
// (head = front, tail = back). A policy never allocates its own copy of the
// keys for ordering: it arranges the store's list through Hooks and keeps any
// extra bookkeeping (counters, queues) on the side.
package policy

// Node is the minimal contract a stored entry satisfies for a policy.
type Node[K comparable] interface {
	Key() K
}

// Hooks expose O(1) list operations on the store's intrusive list.
// Implementations are provided by the store.
//
// Concurrency: all hook calls happen under the store lock.
// Hooks manage only the list; the store owns the key->node map and unlinks
// nodes itself on removal.
type Hooks[K comparable] interface {
	// MoveToFront promotes the node to the head of the list.
	MoveToFront(Node[K])
	// PushFront links a newly admitted node at the head.
	PushFront(Node[K])
	// Back returns the tail node, or nil if the list is empty.
	Back() Node[K]
	// Prev returns the node one step closer to the head, or nil at the head.
	Prev(Node[K]) Node[K]
	// Len returns the number of resident nodes.
	Len() int
}

// Tracker is a policy instance bound to one store's hooks. It is the
// access tracker: it records touches and names a victim when the store is
// full. All methods are invoked under the store lock.
//
// Semantics:
//   - OnAdd must link the node via Hooks.PushFront.
//   - OnGet is a read hit, OnUpdate an overwrite of an existing key.
//   - OnRemove is called before the store unlinks the node, for any removal
//     reason (delete, expiry, sweep, eviction).
//   - Victim only selects; the store performs the removal and then calls
//     OnRemove for the victim like for any other removal.
type Tracker[K comparable] interface {
	OnAdd(Node[K])
	OnGet(Node[K])
	OnUpdate(Node[K])
	OnRemove(Node[K])
	Victim() Node[K]
}

// Policy is a factory that creates tracker instances bound to a store.
// The store calls New again on Clear to drop all tracker state.
type Policy[K comparable] interface {
	// Name is reported in cache stats (e.g. "lru").
	Name() string
	New(Hooks[K]) Tracker[K]
}
