package twoq

import (
	"testing"

	"github.com/IvanBrykalov/ttlcache/policy"
)

// --- test doubles (same shape as in LRU tests) ---

type testNode[K comparable] struct{ k K }

func (n *testNode[K]) Key() K { return n.k }

// mockHooks keeps the list as a slice, front first.
type mockHooks[K comparable] struct {
	order []policy.Node[K]

	pushFrontCnt   int
	moveToFrontCnt int
}

func (h *mockHooks[K]) index(n policy.Node[K]) int {
	for i, x := range h.order {
		if x == n {
			return i
		}
	}
	return -1
}

func (h *mockHooks[K]) PushFront(n policy.Node[K]) {
	h.pushFrontCnt++
	h.order = append([]policy.Node[K]{n}, h.order...)
}

func (h *mockHooks[K]) MoveToFront(n policy.Node[K]) {
	h.moveToFrontCnt++
	i := h.index(n)
	if i < 0 {
		return
	}
	rest := append(h.order[:i:i], h.order[i+1:]...)
	h.order = append([]policy.Node[K]{n}, rest...)
}

func (h *mockHooks[K]) Back() policy.Node[K] {
	if len(h.order) == 0 {
		return nil
	}
	return h.order[len(h.order)-1]
}

func (h *mockHooks[K]) Prev(n policy.Node[K]) policy.Node[K] {
	i := h.index(n)
	if i <= 0 {
		return nil
	}
	return h.order[i-1]
}

func (h *mockHooks[K]) Len() int { return len(h.order) }

// unlink plays the store's part on removal.
func (h *mockHooks[K]) unlink(n policy.Node[K]) {
	if i := h.index(n); i >= 0 {
		h.order = append(h.order[:i:i], h.order[i+1:]...)
	}
}

// --- tests ---

// OnAdd of a first-time key admits into A1in.
func TestTwoQ_AddGoesToA1in(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](2, 4).New(h).(*twoQ[string])

	n1 := &testNode[string]{k: "a"}
	p.OnAdd(n1)

	if p.inList.Len() != 1 {
		t.Fatalf("A1in must have 1 element, got %d", p.inList.Len())
	}
	if _, ok := p.inIdx[n1]; !ok {
		t.Fatalf("n1 must be present in A1in index")
	}
	if h.pushFrontCnt != 1 {
		t.Fatalf("OnAdd must link the node in the store list")
	}
}

// While A1in is over quota, the victim is its oldest member.
func TestTwoQ_VictimFromA1inOverQuota(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](2, 4).New(h).(*twoQ[string])

	n1 := &testNode[string]{k: "a"}
	n2 := &testNode[string]{k: "b"}
	n3 := &testNode[string]{k: "c"}
	p.OnAdd(n1)
	p.OnAdd(n2)
	p.OnAdd(n3) // A1in: [c, b, a] -> over quota

	if v := p.Victim(); v != n1 {
		t.Fatalf("expected victim n1 (oldest of A1in), got %v", v)
	}
}

// Within quota, the victim is the oldest Am node, skipping young ones.
func TestTwoQ_VictimFromAm(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](2, 4).New(h).(*twoQ[string])

	old := &testNode[string]{k: "old"}
	young := &testNode[string]{k: "young"}
	p.OnAdd(old)
	p.OnGet(old) // promote to Am, list: [old]
	p.OnAdd(young)
	h.MoveToFront(old) // list: [old, young]; young sits at the tail

	if v := p.Victim(); v != old {
		t.Fatalf("expected Am victim old, got %v", v)
	}
}

// Removing a node from A1in places its key into ghosts (A1out).
func TestTwoQ_OnRemoveFromA1inGoesToGhost(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](2, 2).New(h).(*twoQ[string])

	n1 := &testNode[string]{k: "a"}
	p.OnAdd(n1)
	p.OnRemove(n1)
	h.unlink(n1)
	if _, ok := p.inIdx[n1]; ok {
		t.Fatal("n1 must be removed from A1in")
	}
	if _, ok := p.ghostIdx["a"]; !ok {
		t.Fatal("key 'a' must be in ghost (A1out)")
	}
}

// Re-admitting a ghost key bypasses A1in.
func TestTwoQ_AddFromGhostGoesToAm(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](1, 2).New(h).(*twoQ[string])

	n1 := &testNode[string]{k: "a"}
	p.OnAdd(n1)
	p.OnRemove(n1)
	h.unlink(n1)

	n2 := &testNode[string]{k: "a"}
	p.OnAdd(n2)
	if _, ok := p.inIdx[n2]; ok {
		t.Fatalf("n2 must NOT be in A1in (should go to Am)")
	}
	if _, ok := p.ghostIdx["a"]; ok {
		t.Fatalf("ghost must be consumed on re-admission")
	}
}

// Ghost list is bounded by capGhost.
func TestTwoQ_GhostCapacity(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](4, 1).New(h).(*twoQ[string])

	a := &testNode[string]{k: "a"}
	b := &testNode[string]{k: "b"}
	p.OnAdd(a)
	p.OnAdd(b)
	p.OnRemove(a)
	p.OnRemove(b)

	if p.ghostList.Len() != 1 {
		t.Fatalf("ghosts must be capped at 1, got %d", p.ghostList.Len())
	}
	if _, ok := p.ghostIdx["b"]; !ok {
		t.Fatal("newest ghost b must survive")
	}
}

// A Get on an A1in node promotes it to Am and moves it to the front.
func TestTwoQ_GetPromotesFromA1inToAm(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string]{}
	p := New[string](2, 2).New(h).(*twoQ[string])

	n1 := &testNode[string]{k: "a"}
	p.OnAdd(n1)
	p.OnGet(n1)
	if _, ok := p.inIdx[n1]; ok {
		t.Fatal("n1 must be promoted out of A1in after Get")
	}
	if h.moveToFrontCnt != 1 {
		t.Fatalf("OnGet must call MoveToFront once")
	}
}
