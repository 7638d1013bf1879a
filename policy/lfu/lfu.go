// Package lfu implements the Least-Frequently-Used eviction policy.
package lfu

import "github.com/IvanBrykalov/ttlcache/policy"

// lfu keeps an access counter per resident key. Nodes are linked at
// insertion and never moved, so the store list stays in insertion order and
// gives the victim scan a deterministic iteration order.
//
// Counters start at 1 on insert and grow by one on every hit or overwrite.
type lfu[K comparable] struct {
	h      policy.Hooks[K]
	counts map[K]uint64
}

type lfuPolicy[K comparable] struct{}

// New returns a Policy factory that constructs LFU trackers.
func New[K comparable]() policy.Policy[K] { return lfuPolicy[K]{} }

func (lfuPolicy[K]) Name() string { return "lfu" }

func (lfuPolicy[K]) New(h policy.Hooks[K]) policy.Tracker[K] {
	return &lfu[K]{h: h, counts: make(map[K]uint64)}
}

func (p *lfu[K]) OnAdd(n policy.Node[K]) {
	p.h.PushFront(n)
	p.counts[n.Key()] = 1
}

func (p *lfu[K]) OnGet(n policy.Node[K])    { p.counts[n.Key()]++ }
func (p *lfu[K]) OnUpdate(n policy.Node[K]) { p.counts[n.Key()]++ }
func (p *lfu[K]) OnRemove(n policy.Node[K]) { delete(p.counts, n.Key()) }

// Victim scans from the tail (oldest insert) towards the head and returns
// the first node holding the minimum count. O(n) in resident entries.
func (p *lfu[K]) Victim() policy.Node[K] {
	var (
		victim policy.Node[K]
		low    uint64
	)
	for n := p.h.Back(); n != nil; n = p.h.Prev(n) {
		c := p.counts[n.Key()]
		if victim == nil || c < low {
			victim, low = n, c
			if low == 0 {
				break
			}
		}
	}
	return victim
}
