// index_test.go: unit tests for the fixed-bucket symbol hash table
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"sync"
	"testing"
)

func TestSymbolIndex_GetOrCreate_SameSymbolReturnsSameHeap(t *testing.T) {
	a := newArena(8)
	idx := newSymbolIndex(a, NoOpLogger{}, nil, nil)

	h1 := idx.getOrCreate("AAPL", 4)
	h2 := idx.getOrCreate("AAPL", 4)

	if h1 != h2 {
		t.Error("getOrCreate() for the same symbol returned two different heaps")
	}
}

func TestSymbolIndex_GetOrCreate_DistinctSymbolsGetDistinctHeaps(t *testing.T) {
	a := newArena(8)
	idx := newSymbolIndex(a, NoOpLogger{}, nil, nil)

	h1 := idx.getOrCreate("AAPL", 4)
	h2 := idx.getOrCreate("GOOG", 4)

	if h1 == h2 {
		t.Error("getOrCreate() for distinct symbols returned the same heap")
	}
}

func TestSymbolIndex_Get_UnknownSymbol(t *testing.T) {
	a := newArena(8)
	idx := newSymbolIndex(a, NoOpLogger{}, nil, nil)

	if _, ok := idx.get("NOPE"); ok {
		t.Error("get() on an unknown symbol: ok = true, want false")
	}
}

func TestSymbolIndex_Get_AfterGetOrCreate(t *testing.T) {
	a := newArena(8)
	idx := newSymbolIndex(a, NoOpLogger{}, nil, nil)

	created := idx.getOrCreate("AAPL", 4)
	got, ok := idx.get("AAPL")
	if !ok {
		t.Fatal("get() after getOrCreate(): ok = false, want true")
	}
	if got != created {
		t.Error("get() after getOrCreate() returned a different heap")
	}
}

func TestSymbolIndex_GetOrCreate_ConcurrentRaceConvergesOnOneHeap(t *testing.T) {
	a := newArena(8)
	idx := newSymbolIndex(a, NoOpLogger{}, nil, nil)

	const goroutines = 32
	heaps := make([]*bucketHeap, goroutines)

	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(idx2 int) {
			defer wg.Done()
			start.Wait()
			heaps[idx2] = idx.getOrCreate("NEWSYM", 4)
		}(g)
	}
	start.Done()
	wg.Wait()

	first := heaps[0]
	for i, h := range heaps {
		if h != first {
			t.Errorf("goroutine %d got a different heap than goroutine 0: a racing getOrCreate installed more than one heap for the same symbol", i)
		}
	}
}

func TestBucketFor_IsStableAndWithinRange(t *testing.T) {
	for _, sym := range []string{"AAPL", "GOOG", "MSFT", ""} {
		b1 := bucketFor(sym)
		b2 := bucketFor(sym)
		if b1 != b2 {
			t.Errorf("bucketFor(%q) not stable across calls: %d != %d", sym, b1, b2)
		}
		if b1 >= buckets {
			t.Errorf("bucketFor(%q) = %d, want < %d", sym, b1, buckets)
		}
	}
}
