// heap.go: bounded lock-free max-heap of arena slot references
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"runtime"
	"sync/atomic"
)

// bucketHeap is a bounded max-heap, keyed by Entry.Priority, over
// non-owning references (arena slot indices) to Entry slots. It is the
// per-symbol structure a SymbolIndex bucket hands out.
//
// push and pop are lock-free: readers and writers coordinate purely
// through atomic.Int64 cells and a CAS-guarded size counter. Go's
// sync/atomic provides sequentially consistent ordering on every
// operation below, which is strictly stronger than the Release/Acquire
// discipline this design requires — there is no weaker primitive
// available in the language, so the extra ordering is free.
//
// Sift-up and sift-down perform their rebalancing swap as a pair of CAS
// operations on parent and child cells. On contention the sift aborts
// rather than retrying the traversal: this bounds per-operation latency
// at the cost of transient heap-property violations. The heap property
// (P3) and max-priority pop (P4) are quiescent-state contracts, not
// step-by-step linearizability guarantees.
type bucketHeap struct {
	arena                *arena
	slots                []atomic.Int64
	size                 atomic.Int64
	cap                  int64
	spinCountBeforeYield *atomic.Int32
}

// newBucketHeap constructs a heap of the given capacity. spinCountBeforeYield
// is shared with the owning symbolIndex (and, transitively, Store) so a
// hot-reloaded spin bound applies to every heap without re-threading
// config through each one individually; nil defaults to yielding on every
// contended retry.
func newBucketHeap(a *arena, capacity int, spinCountBeforeYield *atomic.Int32) *bucketHeap {
	if spinCountBeforeYield == nil {
		spinCountBeforeYield = new(atomic.Int32)
	}
	h := &bucketHeap{
		arena:                a,
		slots:                make([]atomic.Int64, capacity),
		cap:                  int64(capacity),
		spinCountBeforeYield: spinCountBeforeYield,
	}
	for i := range h.slots {
		h.slots[i].Store(noSlot)
	}
	return h
}

// spinThenYield calls runtime.Gosched() once attempt reaches spinCount.
// spinCount <= 0 yields on every retry, matching the unbounded-spin
// default; a positive spinCount busy-spins for that many contended
// retries before starting to yield (spec §5: spin-bounding is optional).
func spinThenYield(attempt int, spinCount int32) {
	if int32(attempt) >= spinCount {
		runtime.Gosched()
	}
}

// priorityOf reads the priority of the entry a slot reference points to.
// Safe to call only for refs already published into the arena: the slot
// was filled by its claimer before the reference was ever stored in a
// heap cell.
func (h *bucketHeap) priorityOf(ref int64) int32 {
	return h.arena.at(ref).Priority
}

// push admits a new slot reference into the heap, failing with
// ErrCapacityExceeded once the heap is at its configured bound.
func (h *bucketHeap) push(ref int64) error {
	for attempt := 0; ; attempt++ {
		sz := h.size.Load()
		if sz >= h.cap {
			return ErrCapacityExceeded
		}
		if h.size.CompareAndSwap(sz, sz+1) {
			h.slots[sz].Store(ref)
			h.siftUp(sz)
			return nil
		}
		spinThenYield(attempt, h.spinCountBeforeYield.Load())
	}
}

// pop removes and returns the highest-priority slot reference, or
// (0, false) if the heap was empty. It does not screen for expiry; see
// Store.GetHighestPriority for the live-entry wrapper around this.
func (h *bucketHeap) pop() (int64, bool) {
	for attempt := 0; ; attempt++ {
		sz := h.size.Load()
		if sz == 0 {
			return 0, false
		}
		top := h.slots[0].Load()
		if top == noSlot {
			// A concurrent push has claimed size but not yet published
			// slots[0]; retry until it does.
			spinThenYield(attempt, h.spinCountBeforeYield.Load())
			continue
		}
		if !h.size.CompareAndSwap(sz, sz-1) {
			spinThenYield(attempt, h.spinCountBeforeYield.Load())
			continue
		}
		last := h.slots[sz-1].Swap(noSlot)
		if sz > 1 {
			h.slots[0].Store(last)
			h.siftDown(0, sz-1)
		}
		return top, true
	}
}

// siftUp restores the heap property upward from index starting at i,
// best-effort: it aborts on the first contended swap instead of retrying.
func (h *bucketHeap) siftUp(i int64) {
	for i > 0 {
		parent := (i - 1) / 2
		child := h.slots[i].Load()
		parentRef := h.slots[parent].Load()
		if child == noSlot || parentRef == noSlot {
			return
		}
		if h.priorityOf(parentRef) >= h.priorityOf(child) {
			return
		}
		if h.slots[parent].CompareAndSwap(parentRef, child) &&
			h.slots[i].CompareAndSwap(child, parentRef) {
			i = parent
			continue
		}
		return
	}
}

// siftDown restores the heap property downward from index i, over a
// heap whose logical size is sz. Best-effort, same contract as siftUp.
func (h *bucketHeap) siftDown(i, sz int64) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2
		current := h.slots[i].Load()
		if current == noSlot {
			return
		}

		if left < sz {
			if leftRef := h.slots[left].Load(); leftRef != noSlot && h.priorityOf(leftRef) > h.priorityOf(current) {
				largest = left
			}
		}
		if right < sz {
			largestRef := h.slots[largest].Load()
			if rightRef := h.slots[right].Load(); rightRef != noSlot && largestRef != noSlot && h.priorityOf(rightRef) > h.priorityOf(largestRef) {
				largest = right
			}
		}
		if largest == i {
			return
		}

		largestRef := h.slots[largest].Load()
		if largestRef == noSlot {
			return
		}
		if h.slots[i].CompareAndSwap(current, largestRef) &&
			h.slots[largest].CompareAndSwap(largestRef, current) {
			i = largest
			continue
		}
		return
	}
}

// length reports the current heap occupancy.
func (h *bucketHeap) length() int64 {
	return h.size.Load()
}
