// index.go: fixed-bucket lock-free hash table from symbol to BucketHeap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"sync/atomic"
)

// buckets is the fixed, power-of-two bucket count. Chain nodes are
// append-only and the table is never rehashed, even as chains grow: the
// core contract is sticky symbols, not a bounded chain length.
const buckets = 64
const bucketMask = uint64(buckets - 1)

// chainLengthWarnThreshold is the chain length at which getOrCreate logs a
// warning. It does not change behavior — the table still never resizes —
// it only surfaces a degenerate symbol distribution to the operator.
const chainLengthWarnThreshold = 16

// chainNode is one link of a symbol's hash bucket chain. Once installed
// it is never unlinked for the life of the Store.
type chainNode struct {
	symbol string
	heap   *bucketHeap
	next   atomic.Pointer[chainNode]
}

// symbolIndex is a fixed-bucket, CAS-linked-chain hash table from symbol
// to its dedicated bucketHeap. At most one bucketHeap is ever installed
// per symbol, even under racing getOrCreate calls: losing racers discard
// their candidate node and heap.
type symbolIndex struct {
	heads                [buckets]atomic.Pointer[chainNode]
	arena                *arena
	logger               Logger
	spinCountBeforeYield *atomic.Int32
	chainWarnThreshold   *atomic.Int32
}

// newSymbolIndex constructs an index backed by arena a. spinCountBeforeYield
// and chainWarnThreshold are shared with the owning Store (nil defaults to
// yield-on-every-retry and chainLengthWarnThreshold respectively), so a
// hot-reloaded value takes effect immediately across every bucket and heap.
func newSymbolIndex(a *arena, logger Logger, spinCountBeforeYield, chainWarnThreshold *atomic.Int32) *symbolIndex {
	if spinCountBeforeYield == nil {
		spinCountBeforeYield = new(atomic.Int32)
	}
	if chainWarnThreshold == nil {
		chainWarnThreshold = new(atomic.Int32)
		chainWarnThreshold.Store(chainLengthWarnThreshold)
	}
	return &symbolIndex{
		arena:                a,
		logger:               logger,
		spinCountBeforeYield: spinCountBeforeYield,
		chainWarnThreshold:   chainWarnThreshold,
	}
}

// fnv1a hashes a symbol with the 64-bit FNV-1a algorithm.
func fnv1a(symbol string) uint64 {
	const (
		offset uint64 = 0xcbf29ce484222325
		prime  uint64 = 0x100000001b3
	)
	h := offset
	for i := 0; i < len(symbol); i++ {
		h ^= uint64(symbol[i])
		h *= prime
	}
	return h
}

func bucketFor(symbol string) uint64 {
	return fnv1a(symbol) & bucketMask
}

// get returns the bucketHeap installed for symbol, if any. It never
// mutates the index.
func (idx *symbolIndex) get(symbol string) (*bucketHeap, bool) {
	b := bucketFor(symbol)
	node := idx.heads[b].Load()
	for node != nil {
		if node.symbol == symbol {
			return node.heap, true
		}
		node = node.next.Load()
	}
	return nil, false
}

// getOrCreate returns the bucketHeap for symbol, installing a fresh one
// of the given capacity on first sight of that symbol. Racing callers for
// the same new symbol converge on exactly one winner's heap; the losers'
// candidate nodes are simply dropped for the garbage collector.
func (idx *symbolIndex) getOrCreate(symbol string, heapCap int) *bucketHeap {
	b := bucketFor(symbol)

	if h, ok := idx.scan(b, symbol); ok {
		return h
	}

	candidate := &chainNode{symbol: symbol, heap: newBucketHeap(idx.arena, heapCap, idx.spinCountBeforeYield)}
	for attempt := 0; ; attempt++ {
		head := idx.heads[b].Load()
		// Re-check the exact chain the CAS below will extend: a racer may
		// have installed this symbol since the scan above. Nodes are only
		// ever prepended, so a successful CAS on this head means no node
		// for symbol exists below it.
		for node := head; node != nil; node = node.next.Load() {
			if node.symbol == symbol {
				return node.heap
			}
		}
		candidate.next.Store(head)
		if idx.heads[b].CompareAndSwap(head, candidate) {
			return candidate.heap
		}
		spinThenYield(attempt, idx.spinCountBeforeYield.Load())
	}
}

// scan walks the chain at bucket b looking for symbol. When the symbol is
// not found and the chain length has reached the current
// chainWarnThreshold, it logs a warning (on every such miss).
func (idx *symbolIndex) scan(b uint64, symbol string) (*bucketHeap, bool) {
	node := idx.heads[b].Load()
	length := 0
	for node != nil {
		if node.symbol == symbol {
			return node.heap, true
		}
		node = node.next.Load()
		length++
	}
	if length >= int(idx.chainWarnThreshold.Load()) && idx.logger != nil {
		idx.logger.Warn("symbol index chain exceeds warning threshold",
			"bucket", b, "length", length)
	}
	return nil, false
}
