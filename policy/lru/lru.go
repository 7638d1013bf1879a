// Package lru implements the LRU eviction policy.
package lru

import "github.com/IvanBrykalov/ttlcache/policy"

// lru is a classic "move-to-front" Least-Recently-Used policy.
// The list head is the most recently touched entry, the tail the victim.
type lru[K comparable] struct {
	h policy.Hooks[K]
}

type lruPolicy[K comparable] struct{}

// New returns a Policy factory that constructs LRU trackers.
func New[K comparable]() policy.Policy[K] { return lruPolicy[K]{} }

func (lruPolicy[K]) Name() string { return "lru" }

// New implements policy.Policy by binding store hooks.
func (lruPolicy[K]) New(h policy.Hooks[K]) policy.Tracker[K] {
	return &lru[K]{h: h}
}

// OnAdd places the new entry at the head.
func (p *lru[K]) OnAdd(n policy.Node[K]) { p.h.PushFront(n) }

// OnGet promotes the entry to the head.
func (p *lru[K]) OnGet(n policy.Node[K]) { p.h.MoveToFront(n) }

// OnUpdate promotes the entry (writes count as recent use).
func (p *lru[K]) OnUpdate(n policy.Node[K]) { p.h.MoveToFront(n) }

// OnRemove is a no-op: LRU keeps no state outside the list.
func (p *lru[K]) OnRemove(policy.Node[K]) {}

// Victim is the least recently touched entry.
func (p *lru[K]) Victim() policy.Node[K] { return p.h.Back() }
