// Package gc owns every runtime value the evaluator allocates and frees the
// ones that can no longer be reached from the environment chain.
//
// Values live in an arena of slots addressed by generational handles. A
// sweep vacates slots whose mark bit is clear and puts them on a free list,
// so registration stays O(1) and a sweep is a single pass over the arena.
// Environments are not registered: they are kept alive by the values
// (functions) that close over them, and marking walks through them.
package gc

import (
	"fortio.org/log"
	"github.com/bits-and-blooms/bitset"

	"corny/internal/object"
)

type slot struct {
	obj object.Managed // nil when the slot is free
	gen uint32         // generation of the current (or last) occupant
}

// Stats is a snapshot of the heap counters.
type Stats struct {
	Live     int // objects currently registered
	Capacity int // arena slots, free or not
	Cycles   int // completed collections
	Freed    int // objects released over the heap's lifetime
}

// Heap is a stop-the-world mark-sweep collector. It is not safe for
// concurrent use; the evaluator is its only mutator.
type Heap struct {
	slots []slot
	free  []uint32
	marks *bitset.BitSet
	live  int

	// environments already walked in the current mark phase
	visited map[*object.Environment]struct{}

	cycles int
	freed  int
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{
		marks:   bitset.New(0),
		visited: make(map[*object.Environment]struct{}),
	}
}

// Register hands ownership of obj to the heap and returns its handle.
// Registering an object twice returns the existing handle.
func (h *Heap) Register(obj object.Managed) object.Handle {
	if h.Contains(obj) {
		return obj.Handle()
	}

	var idx uint32
	if n := len(h.free); n > 0 {
		idx = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		idx = uint32(len(h.slots))
		h.slots = append(h.slots, slot{})
	}

	s := &h.slots[idx]
	s.gen++
	s.obj = obj
	hd := object.Handle{Slot: idx, Gen: s.gen}
	obj.SetHandle(hd)
	h.live++
	return hd
}

// Contains reports whether obj is currently owned by this heap.
func (h *Heap) Contains(obj object.Managed) bool {
	got, ok := h.Get(obj.Handle())
	return ok && got == obj
}

// Get resolves a handle. Stale handles (the slot was swept and maybe reused)
// resolve to nothing.
func (h *Heap) Get(hd object.Handle) (object.Managed, bool) {
	if hd.IsZero() || int(hd.Slot) >= len(h.slots) {
		return nil, false
	}
	s := h.slots[hd.Slot]
	if s.obj == nil || s.gen != hd.Gen {
		return nil, false
	}
	return s.obj, true
}

// Live is the number of objects the heap currently owns.
func (h *Heap) Live() int {
	return h.live
}

// Stats returns the heap counters.
func (h *Heap) Stats() Stats {
	return Stats{
		Live:     h.live,
		Capacity: len(h.slots),
		Cycles:   h.cycles,
		Freed:    h.freed,
	}
}

// Mark sets the mark bit of obj and of everything reachable from it.
// The bit is tested before recursing, so marking is idempotent and
// terminates on cyclic structures. Values the heap does not own (the
// boolean and null singletons, builtins) are ignored.
func (h *Heap) Mark(obj object.Object) {
	m, ok := obj.(object.Managed)
	if !ok || !h.Contains(m) {
		return
	}
	idx := uint(m.Handle().Slot)
	if h.marks.Test(idx) {
		return
	}
	h.marks.Set(idx)

	switch v := obj.(type) {
	case *object.Array:
		for _, el := range v.Elements {
			h.Mark(el)
		}
	case *object.Hash:
		for _, val := range v.Pairs {
			h.Mark(val)
		}
	case *object.Function:
		h.MarkEnv(v.Env)
	}
}

// MarkEnv marks every value bound in env and its enclosing scopes.
func (h *Heap) MarkEnv(env *object.Environment) {
	for e := env; e != nil; e = e.Outer() {
		if _, seen := h.visited[e]; seen {
			return
		}
		h.visited[e] = struct{}{}
		e.Range(func(_ string, val object.Object) bool {
			h.Mark(val)
			return true
		})
	}
}

// Marked reports whether obj was reached in the current mark phase.
func (h *Heap) Marked(obj object.Managed) bool {
	return h.Contains(obj) && h.marks.Test(uint(obj.Handle().Slot))
}

// Sweep releases every unmarked object, clears all marks for the next
// cycle and returns how many objects were freed.
func (h *Heap) Sweep() int {
	freed := 0
	for i := range h.slots {
		s := &h.slots[i]
		if s.obj == nil || h.marks.Test(uint(i)) {
			continue
		}
		s.obj = nil
		h.free = append(h.free, uint32(i))
		freed++
	}

	h.marks.ClearAll()
	clear(h.visited)
	h.live -= freed
	h.freed += freed
	h.cycles++
	return freed
}

// Collect runs a full cycle with env's chain and extra as roots.
func (h *Heap) Collect(env *object.Environment, extra ...object.Object) int {
	before := h.live
	h.MarkEnv(env)
	for _, obj := range extra {
		h.Mark(obj)
	}
	freed := h.Sweep()
	log.LogVf("gc: cycle %d freed %d of %d objects, %d live, %d slots", h.cycles, freed, before, h.live, len(h.slots))
	return freed
}
