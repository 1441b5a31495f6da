// store.go: the Store facade composing Arena, SymbolIndex and BucketHeap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import "sync/atomic"

// InsertItem is one record in a batch insert.
type InsertItem struct {
	Value         float64
	Symbol        string
	Priority      int32
	ExpirySeconds float64
}

// EntryResult is one slot of a batch retrieval: Found is false when the
// symbol was unknown or its heap was empty after the expiry sweep.
type EntryResult struct {
	Entry Entry
	Found bool
}

// StoreStats reports arena occupancy and the per-reason failure counters
// named in spec §7, the kind of lightweight observability a metrics.cpp
// subsystem would have exposed in the original — without reintroducing
// that subsystem (spec §1 marks it out of scope).
type StoreStats struct {
	TotalNodes             int64
	MaxNodes               int64
	ArenaExhaustedCount    int64
	HeapFullCount          int64
	CapacityPrecheckFailed int64
}

// Store is a concurrent keyed priority store: a fixed-capacity Arena of
// Entry slots, fronted by a SymbolIndex of per-symbol bounded max-heaps.
// All operations are safe for concurrent use; none block on I/O and none
// are cancellable (spec §5).
type Store struct {
	arena         *arena
	index         *symbolIndex
	maxNodes      int64
	bucketHeapCap int
	totalNodes    atomic.Int64

	arenaExhausted atomic.Int64
	heapFull       atomic.Int64
	precheckFailed atomic.Int64

	// spinCountBeforeYield and chainWarnThreshold back the symbolIndex's
	// and every bucketHeap's retry loops; HotConfig mutates them in place
	// so a reload takes effect without reconstructing anything (spec §10).
	spinCountBeforeYield atomic.Int32
	chainWarnThreshold   atomic.Int32

	logger           *leveledLogger
	timeProvider     TimeProvider
	metricsCollector MetricsCollector
}

// NewStore constructs a Store. It rejects MaxNodes <= 0 by returning a
// non-nil error; every other field, including a non-positive
// BucketHeapCap, is defaulted by Config.Validate.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := newArena(cfg.MaxNodes)
	s := &Store{
		arena:            a,
		maxNodes:         int64(cfg.MaxNodes),
		bucketHeapCap:    cfg.BucketHeapCap,
		logger:           newLeveledLogger(cfg.Logger, LevelDebug),
		timeProvider:     cfg.TimeProvider,
		metricsCollector: cfg.MetricsCollector,
	}
	s.spinCountBeforeYield.Store(int32(cfg.SpinCountBeforeYield))
	s.chainWarnThreshold.Store(int32(cfg.ChainLengthWarnThreshold))
	s.index = newSymbolIndex(a, s.logger, &s.spinCountBeforeYield, &s.chainWarnThreshold)
	return s, nil
}

// SetLogLevel changes the minimum severity the Store's Logger passes
// through. Safe to call concurrently with any other Store operation.
func (s *Store) SetLogLevel(level LogLevel) {
	s.logger.setLevel(level)
}

// SetSpinCountBeforeYield changes how many contended CAS retries push,
// pop, and getOrCreate attempt before yielding. Safe to call concurrently
// with any other Store operation; takes effect on the next retry loop
// iteration anywhere in the Store.
func (s *Store) SetSpinCountBeforeYield(n int) {
	s.spinCountBeforeYield.Store(int32(n))
}

// SetChainLengthWarnThreshold changes the symbol-index chain length at
// which getOrCreate logs a warning. Safe to call concurrently with any
// other Store operation.
func (s *Store) SetChainLengthWarnThreshold(n int) {
	s.chainWarnThreshold.Store(int32(n))
}

// Insert reserves one arena slot, fills it, and pushes it into symbol's
// BucketHeap. Returns false if the arena is exhausted or — the
// documented hazard of spec §9 Q1/§8 P7 — if the per-symbol heap is full:
// in the latter case the arena slot is still consumed (arena.next has
// advanced) even though TotalNodes has not. This is the source's
// behavior, preserved deliberately rather than "fixed".
func (s *Store) Insert(value float64, symbol string, priority int32, expirySeconds float64) bool {
	start := s.timeProvider.Now()
	ok := s.insert(value, symbol, priority, expirySeconds, start)
	s.metricsCollector.RecordOp("insert", int64(s.timeProvider.Now()-start), ok, false)
	return ok
}

func (s *Store) insert(value float64, symbol string, priority int32, expirySeconds float64, nowNs uint64) bool {
	if s.totalNodes.Load() >= s.maxNodes {
		s.arenaExhausted.Add(1)
		return false
	}

	i, ok := s.arena.claimOne()
	if !ok {
		s.arenaExhausted.Add(1)
		return false
	}

	s.arena.fill(i, Entry{
		Value:       value,
		Priority:    priority,
		TimestampNs: nowNs,
		ExpiryNs:    uint64(expirySeconds * 1e9),
	})

	heap := s.index.getOrCreate(symbol, s.bucketHeapCap)
	if err := heap.push(i); err != nil {
		// Slot i is now orphaned: claimed and filled, but never
		// referenced by any heap. TotalNodes does not count it.
		s.heapFull.Add(1)
		return false
	}

	s.totalNodes.Add(1)
	return true
}

// InsertBatch admits items as a single all-or-nothing arena reservation:
// either every item gets a contiguous arena range, or none do. Per-item
// heap-push failures inside a successfully admitted batch are tolerated
// silently (spec §9 Q2, §4.5 step 3): TotalNodes still advances by the
// full batch size even if some items' pushes failed, matching the
// source's unconditional fetch_add.
func (s *Store) InsertBatch(items []InsertItem) bool {
	start := s.timeProvider.Now()
	ok := s.insertBatch(items, start)
	s.metricsCollector.RecordOp("insert_batch", int64(s.timeProvider.Now()-start), ok, false)
	return ok
}

func (s *Store) insertBatch(items []InsertItem, nowNs uint64) bool {
	n := int64(len(items))
	if n == 0 {
		return true
	}

	if s.totalNodes.Load()+n > s.maxNodes {
		s.precheckFailed.Add(1)
		return false
	}

	start, ok := s.arena.claimMany(n)
	if !ok {
		s.precheckFailed.Add(1)
		return false
	}

	for offset, item := range items {
		i := start + int64(offset)
		s.arena.fill(i, Entry{
			Value:       item.Value,
			Priority:    item.Priority,
			TimestampNs: nowNs,
			ExpiryNs:    uint64(item.ExpirySeconds * 1e9),
		})
		heap := s.index.getOrCreate(item.Symbol, s.bucketHeapCap)
		if err := heap.push(i); err != nil {
			s.heapFull.Add(1)
		}
	}

	s.totalNodes.Add(n)
	return true
}

// GetHighestPriority pops the highest-priority live entry for symbol,
// transparently discarding expired entries encountered along the way.
// Their arena slots are not reclaimed (the arena is bump-only); this is
// the documented expiry-on-pop trade-off of spec §9.
func (s *Store) GetHighestPriority(symbol string) (Entry, bool) {
	start := s.timeProvider.Now()
	e, found := s.get(symbol, start)
	s.metricsCollector.RecordOp("get", int64(s.timeProvider.Now()-start), found, found)
	return e, found
}

func (s *Store) get(symbol string, nowNs uint64) (Entry, bool) {
	heap, ok := s.index.get(symbol)
	if !ok {
		return Entry{}, false
	}

	for {
		ref, ok := heap.pop()
		if !ok {
			return Entry{}, false
		}
		e := s.arena.at(ref)
		if !e.Expired(nowNs) {
			return e, true
		}
	}
}

// GetHighestPriorityBatch applies GetHighestPriority to each symbol in
// turn. There is no cross-symbol atomicity.
func (s *Store) GetHighestPriorityBatch(symbols []string) []EntryResult {
	start := s.timeProvider.Now()
	results := make([]EntryResult, len(symbols))
	hits := 0
	for i, sym := range symbols {
		e, found := s.get(sym, start)
		results[i] = EntryResult{Entry: e, Found: found}
		if found {
			hits++
		}
	}
	s.metricsCollector.RecordOp("get_batch", int64(s.timeProvider.Now()-start), true, hits > 0)
	return results
}

// Stats returns a snapshot of arena occupancy and failure counters.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		TotalNodes:             s.totalNodes.Load(),
		MaxNodes:               s.maxNodes,
		ArenaExhaustedCount:    s.arenaExhausted.Load(),
		HeapFullCount:          s.heapFull.Load(),
		CapacityPrecheckFailed: s.precheckFailed.Load(),
	}
}

// Close is a no-op: the Store holds no external resources. It exists so
// Store satisfies the same lifecycle shape the teacher's Cache does.
func (s *Store) Close() error {
	return nil
}
