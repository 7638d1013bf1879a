// Package fifo implements the First-In-First-Out eviction policy.
package fifo

import "github.com/IvanBrykalov/ttlcache/policy"

// fifo links nodes at insertion and never reorders them, so the tail is
// always the oldest resident insert. Reads and overwrites are ignored.
type fifo[K comparable] struct {
	h policy.Hooks[K]
}

type fifoPolicy[K comparable] struct{}

// New returns a Policy factory that constructs FIFO trackers.
func New[K comparable]() policy.Policy[K] { return fifoPolicy[K]{} }

func (fifoPolicy[K]) Name() string { return "fifo" }

func (fifoPolicy[K]) New(h policy.Hooks[K]) policy.Tracker[K] {
	return &fifo[K]{h: h}
}

func (p *fifo[K]) OnAdd(n policy.Node[K])  { p.h.PushFront(n) }
func (p *fifo[K]) OnGet(policy.Node[K])    {}
func (p *fifo[K]) OnUpdate(policy.Node[K]) {}
func (p *fifo[K]) OnRemove(policy.Node[K]) {}

// Victim is the first inserted entry still resident.
func (p *fifo[K]) Victim() policy.Node[K] { return p.h.Back() }
