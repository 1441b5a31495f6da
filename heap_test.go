// heap_test.go: unit tests for the bounded lock-free max-heap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"errors"
	"sync"
	"testing"
)

func pushEntry(t *testing.T, a *arena, h *bucketHeap, priority int32) int64 {
	t.Helper()
	i, ok := a.claimOne()
	if !ok {
		t.Fatalf("arena exhausted while setting up test")
	}
	a.fill(i, Entry{Priority: priority})
	if err := h.push(i); err != nil {
		t.Fatalf("push() = %v, want nil", err)
	}
	return i
}

func TestBucketHeap_PushPop_QuiescentMaxOrder(t *testing.T) {
	a := newArena(16)
	h := newBucketHeap(a, 16, nil)

	priorities := []int32{5, 1, 9, 3, 7, 2, 8}
	for _, p := range priorities {
		pushEntry(t, a, h, p)
	}

	want := []int32{9, 8, 7, 5, 3, 2, 1}
	for i, wp := range want {
		ref, ok := h.pop()
		if !ok {
			t.Fatalf("pop() #%d: ok = false, want true", i)
		}
		if got := a.at(ref).Priority; got != wp {
			t.Errorf("pop() #%d priority = %d, want %d", i, got, wp)
		}
	}

	if _, ok := h.pop(); ok {
		t.Error("pop() on drained heap: ok = true, want false")
	}
}

func TestBucketHeap_Push_CapacityExceeded(t *testing.T) {
	a := newArena(4)
	h := newBucketHeap(a, 2, nil)

	pushEntry(t, a, h, 1)
	pushEntry(t, a, h, 2)

	i, ok := a.claimOne()
	if !ok {
		t.Fatal("arena exhausted while setting up test")
	}
	a.fill(i, Entry{Priority: 3})

	if err := h.push(i); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("push() on full heap = %v, want ErrCapacityExceeded", err)
	}

	if got := h.length(); got != 2 {
		t.Errorf("length() after rejected push = %d, want 2", got)
	}
}

func TestBucketHeap_Pop_EmptyHeap(t *testing.T) {
	a := newArena(1)
	h := newBucketHeap(a, 1, nil)

	if _, ok := h.pop(); ok {
		t.Error("pop() on empty heap: ok = true, want false")
	}
}

func TestBucketHeap_ConcurrentPush_EventuallyMaxAtQuiescence(t *testing.T) {
	const n = 500
	a := newArena(n)
	h := newBucketHeap(a, n, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int32) {
			defer wg.Done()
			for p := base; p < n; p += 8 {
				i, ok := a.claimOne()
				if !ok {
					return
				}
				a.fill(i, Entry{Priority: p})
				_ = h.push(i)
			}
		}(int32(g))
	}
	wg.Wait()

	if got := h.length(); got != n {
		t.Fatalf("length() after all pushes settled = %d, want %d", got, n)
	}

	ref, ok := h.pop()
	if !ok {
		t.Fatal("pop() after quiescence: ok = false, want true")
	}
	if got := a.at(ref).Priority; got != n-1 {
		t.Errorf("first pop at quiescence priority = %d, want %d", got, n-1)
	}
}
