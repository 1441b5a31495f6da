// arena.go: fixed-capacity, bump-allocated pool of Entry slots
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import "sync/atomic"

// noSlot marks the absence of a slot reference in a bucketHeap cell.
const noSlot int64 = -1

// arena is a preallocated, fixed-size vector of Entry slots handed out by
// a monotonically increasing bump counter. There is no free list: once a
// slot index is claimed it is filled exactly once and then is read-only
// for the lifetime of the arena. This removes reclamation hazards at the
// cost of never reusing a slot within a single Store's lifetime, matching
// the one-shot workload model of the system this was ported from.
type arena struct {
	slots []Entry
	next  atomic.Int64
	max   int64
}

func newArena(maxNodes int) *arena {
	return &arena{
		slots: make([]Entry, maxNodes),
		max:   int64(maxNodes),
	}
}

// claimOne atomically reserves the next free slot. The overshoot when the
// arena is exhausted is not rolled back: once next >= max, every future
// claim also fails, and the arena is permanently spent.
func (a *arena) claimOne() (int64, bool) {
	i := a.next.Add(1) - 1
	if i >= a.max {
		return 0, false
	}
	return i, true
}

// claimMany atomically reserves k contiguous slots, or none at all.
func (a *arena) claimMany(k int64) (int64, bool) {
	start := a.next.Add(k) - k
	if start+k > a.max {
		return 0, false
	}
	return start, true
}

// fill populates a claimed slot. Callers must only call fill once per
// index, and only for an index they themselves claimed.
func (a *arena) fill(i int64, e Entry) {
	a.slots[i] = e
}

// at returns the entry at a claimed, filled slot index.
func (a *arena) at(i int64) Entry {
	return a.slots[i]
}

// len reports the bump counter's position, capped at the arena's
// capacity: overshoot from rejected claims is not counted past max. After
// a rejected claimMany it reports max even if some slots below max were
// never handed out.
func (a *arena) len() int64 {
	n := a.next.Load()
	if n > a.max {
		return a.max
	}
	return n
}
