// Package symcache provides a low-latency, in-process, multi-tenant
// priority cache for trading workloads: many producers stream
// (value, priority, expiry) records keyed by a short textual symbol, and
// many consumers pull the highest-priority live record for a given
// symbol.
//
// # Overview
//
// symcache is designed for sub-microsecond single-operation latency
// under contention, with throughput that scales with cores:
//
//   - Lock-free core: Arena, BucketHeap and SymbolIndex all coordinate
//     through CAS loops, never a mutex.
//   - Per-symbol bounded max-heaps: priority ordering is local to a
//     symbol, so hot symbols never contend with cold ones.
//   - Expiry on pop, not on write: no background sweep; a consumer
//     discards an expired entry the moment it would have returned it.
//   - Structured errors, pluggable clock, logger and metrics sink.
//
// # Quick Start
//
//	store, err := symcache.NewStore(symcache.Config{MaxNodes: 100_000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store.Insert(150.75, "AAPL", 1, 60.0)
//	store.Insert(151.00, "AAPL", 3, 60.0)
//
//	if e, found := store.GetHighestPriority("AAPL"); found {
//	    fmt.Printf("value=%v priority=%d\n", e.Value, e.Priority)
//	}
//
// # Concurrency Model
//
// All Store operations are safe for concurrent use. Internally:
//
//   - Arena: bump-allocated, wait-free slot admission via atomic
//     fetch-add. No reclamation; a slot is filled once and read-only
//     thereafter.
//   - BucketHeap: bounded max-heap over arena slot indices. push/pop
//     retry a CAS loop on the size counter; sift-up/down perform a
//     best-effort two-CAS pair-swap that aborts on contention rather
//     than retrying the traversal. Heap-property and max-priority-pop
//     guarantees hold at quiescence (no in-flight operation), not
//     step-by-step.
//   - SymbolIndex: fixed 64-bucket, CAS-linked hash chains from symbol
//     to its BucketHeap. Symbols are sticky: once installed, a chain
//     node is never unlinked, and at most one BucketHeap is ever
//     installed per symbol even under racing inserts of a brand-new
//     symbol.
//
// # Batch Operations
//
// InsertBatch reserves a contiguous arena range for the whole batch in
// one atomic step (all-or-nothing admission), then pushes each item into
// its symbol's heap independently; a single item's heap-full failure
// does not fail the batch (see Store.InsertBatch for the exact, source-
// preserving semantics). GetHighestPriorityBatch is a simple sequential
// loop over GetHighestPriority: there is no cross-symbol atomicity.
//
// # Documented Hazards
//
// Two behaviors are preserved from the system this package was ported
// from, rather than "fixed", because changing them would change
// observable semantics callers may already depend on:
//
//   - Insert can advance the arena's bump counter by one without
//     advancing TotalNodes, when the arena claim succeeds but the
//     symbol's heap is full. The slot is orphaned, not reclaimed.
//   - InsertBatch's TotalNodes counter advances by the full batch size
//     even if some items' heap pushes failed.
//
// # Non-goals
//
// Persistence, durability across process exit, cross-process sharing,
// cryptographic protection, network exposure, range queries,
// aggregations and pattern search are all out of scope for this
// package. They are better layered on top of Store's public API than
// built into the core.
//
// # Observability
//
//	stats := store.Stats()
//	fmt.Printf("nodes: %d/%d, heap-full: %d\n",
//	    stats.TotalNodes, stats.MaxNodes, stats.HeapFullCount)
//
// Enterprise observability with OpenTelemetry is available as a
// separate module:
//
//	import symcacheotel "github.com/flowbyte-labs/symcache/otel"
//
//	collector, _ := symcacheotel.NewOTelMetricsCollector(provider)
//	store, _ := symcache.NewStore(symcache.Config{
//	    MaxNodes:         100_000,
//	    MetricsCollector: collector,
//	})
//
// The core symcache package has zero OTEL dependencies.
//
// # License
//
// See LICENSE file in the repository.
package symcache
