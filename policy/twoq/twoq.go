// Package twoq implements the 2Q eviction policy.
package twoq

import (
	"container/list"

	"github.com/IvanBrykalov/ttlcache/policy"
)

// twoQ implements the 2Q eviction policy.
//
// Resident queues:
//   - A1in (younger queue): its own list + index by Node; admits first-time entries
//   - Am   (mature queue):  nodes not present in inIdx; ordering is the store list
//
// Ghost A1out: keys only (no values), tracks recently removed A1in keys to give
// them a second chance (bypass A1in on re-admission).
//
// Concurrency: all methods are called under the store lock.
type twoQ[K comparable] struct {
	h policy.Hooks[K]

	capIn    int // A1in quota
	capGhost int // A1out (ghost) capacity

	// A1in: newest at Front() -> oldest at Back()
	inList *list.List
	inIdx  map[policy.Node[K]]*list.Element

	// A1out (ghosts): newest at Front() -> oldest at Back()
	ghostList *list.List
	ghostIdx  map[K]*list.Element
}

// New constructs a 2Q policy factory.
// Common choices: capIn ≈ 25% of capacity; capGhost ≈ 50–100% of capacity.
func New[K comparable](capIn, capGhost int) policy.Policy[K] {
	if capIn < 1 {
		capIn = 1
	}
	if capGhost < 1 {
		capGhost = 1
	}
	return twoQPolicy[K]{capIn: capIn, capGhost: capGhost}
}

type twoQPolicy[K comparable] struct {
	capIn    int
	capGhost int
}

func (twoQPolicy[K]) Name() string { return "2q" }

func (p twoQPolicy[K]) New(h policy.Hooks[K]) policy.Tracker[K] {
	return &twoQ[K]{
		h:         h,
		capIn:     p.capIn,
		capGhost:  p.capGhost,
		inList:    list.New(),
		inIdx:     make(map[policy.Node[K]]*list.Element),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}
}

// OnAdd admission rules:
//   - If the key is a ghost (A1out), skip A1in and admit straight to Am.
//   - Otherwise admit into A1in.
//
// Either way the node is linked at the head of the store list.
func (q *twoQ[K]) OnAdd(n policy.Node[K]) {
	q.h.PushFront(n)
	k := n.Key()
	if ge, ok := q.ghostIdx[k]; ok {
		q.ghostList.Remove(ge)
		delete(q.ghostIdx, k)
		return
	}
	q.inIdx[n] = q.inList.PushFront(n)
}

// OnGet promotes an A1in node to Am and moves it to the head.
func (q *twoQ[K]) OnGet(n policy.Node[K]) {
	if el, ok := q.inIdx[n]; ok {
		q.inList.Remove(el)
		delete(q.inIdx, n)
	}
	q.h.MoveToFront(n)
}

// OnUpdate follows OnGet semantics (updates count as recent use).
func (q *twoQ[K]) OnUpdate(n policy.Node[K]) { q.OnGet(n) }

// OnRemove remembers an A1in key as a ghost, respecting capGhost.
// Removals from Am do not create ghosts.
func (q *twoQ[K]) OnRemove(n policy.Node[K]) {
	el, ok := q.inIdx[n]
	if !ok {
		return
	}
	q.inList.Remove(el)
	delete(q.inIdx, n)

	k := n.Key()
	if old := q.ghostIdx[k]; old != nil {
		q.ghostList.Remove(old)
	}
	q.ghostIdx[k] = q.ghostList.PushFront(k)

	for q.ghostList.Len() > q.capGhost {
		tail := q.ghostList.Back()
		if tail == nil {
			break
		}
		delete(q.ghostIdx, tail.Value.(K))
		q.ghostList.Remove(tail)
	}
}

// Victim reclaims from A1in while it is over quota, otherwise from the
// oldest Am node. Falls back to A1in when Am is empty.
func (q *twoQ[K]) Victim() policy.Node[K] {
	if q.inList.Len() > q.capIn {
		return q.inList.Back().Value.(policy.Node[K])
	}
	for n := q.h.Back(); n != nil; n = q.h.Prev(n) {
		if _, young := q.inIdx[n]; !young {
			return n
		}
	}
	if el := q.inList.Back(); el != nil {
		return el.Value.(policy.Node[K])
	}
	return nil
}
