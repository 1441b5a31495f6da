// Command symbench drives a multi-threaded insert/retrieve workload
// against a symcache.Store and reports per-operation latency statistics.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/flowbyte-labs/symcache"
)

var (
	numOperations int
	numWorkers    int
	maxNodes      int
	symbolCount   int
)

var rootCmd = &cobra.Command{
	Use:   "symbench",
	Short: "symbench exercises a symcache.Store under concurrent load",
	Long:  `symbench runs single and batch insert/retrieve workloads against a symcache.Store across multiple goroutines and reports latency statistics (avg, min, max, p99).`,
	RunE:  runBench,
}

func init() {
	rootCmd.Flags().IntVar(&numOperations, "ops", 100_000, "number of single insert/retrieve operations")
	rootCmd.Flags().IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of concurrent goroutines per phase")
	rootCmd.Flags().IntVar(&maxNodes, "max-nodes", 1_000_000, "arena capacity for the benchmarked Store")
	rootCmd.Flags().IntVar(&symbolCount, "symbols", 3, "number of distinct symbols to spread load across")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// latencySamples holds one phase's nanosecond latencies under a mutex;
// runPhase's goroutines each append their local samples to it in one
// locked step.
type latencySamples struct {
	mu     sync.Mutex
	values []int64
}

func (s *latencySamples) add(v int64) {
	s.mu.Lock()
	s.values = append(s.values, v)
	s.mu.Unlock()
}

func runBench(cmd *cobra.Command, args []string) error {
	store, err := symcache.NewStore(symcache.Config{MaxNodes: maxNodes})
	if err != nil {
		return fmt.Errorf("construct store: %w", err)
	}
	defer store.Close()

	symbols := make([]string, symbolCount)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%d", i)
	}

	insertTimes := runPhase(numOperations, numWorkers, func(r *rand.Rand) int64 {
		sym := symbols[r.Intn(len(symbols))]
		value := 100.0 + r.Float64()*100.0
		priority := int32(r.Intn(11))
		start := time.Now()
		store.Insert(value, sym, priority, 1.0)
		return time.Since(start).Nanoseconds()
	})

	retrieveTimes := runPhase(numOperations, numWorkers, func(r *rand.Rand) int64 {
		sym := symbols[r.Intn(len(symbols))]
		start := time.Now()
		store.GetHighestPriority(sym)
		return time.Since(start).Nanoseconds()
	})

	batchOps := numOperations / 10
	batchInsertTimes := runPhase(batchOps, numWorkers, func(r *rand.Rand) int64 {
		items := make([]symcache.InsertItem, 10)
		for i := range items {
			items[i] = symcache.InsertItem{
				Value:         100.0 + r.Float64()*100.0,
				Symbol:        symbols[r.Intn(len(symbols))],
				Priority:      int32(r.Intn(11)),
				ExpirySeconds: 1.0,
			}
		}
		start := time.Now()
		store.InsertBatch(items)
		return time.Since(start).Nanoseconds()
	})

	batchRetrieveTimes := runPhase(batchOps, numWorkers, func(r *rand.Rand) int64 {
		sym := symbols[r.Intn(len(symbols))]
		batch := make([]string, 10)
		for i := range batch {
			batch[i] = sym
		}
		start := time.Now()
		store.GetHighestPriorityBatch(batch)
		return time.Since(start).Nanoseconds()
	})

	fmt.Printf("\nBenchmark Results (%d operations, %d workers):\n", numOperations, numWorkers)
	printStats("Single Insertions", insertTimes)
	printStats("Single Retrievals", retrieveTimes)
	printStats("Batch Insertions (10 ops/batch)", batchInsertTimes)
	printStats("Batch Retrievals (10 ops/batch)", batchRetrieveTimes)

	stats := store.Stats()
	fmt.Printf("\nStore stats: total_nodes=%d/%d arena_exhausted=%d heap_full=%d precheck_failed=%d\n",
		stats.TotalNodes, stats.MaxNodes, stats.ArenaExhaustedCount, stats.HeapFullCount, stats.CapacityPrecheckFailed)

	return nil
}

// runPhase fans n operations out across workers goroutines via errgroup,
// each producing one latency sample per call to op, and returns every
// sample collected.
func runPhase(n, workers int, op func(r *rand.Rand) int64) []int64 {
	if workers <= 0 {
		workers = 1
	}
	samples := &latencySamples{values: make([]int64, 0, n)}

	var g errgroup.Group
	perWorker := n / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = n
		}
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(start)))
			local := make([]int64, 0, end-start)
			for i := start; i < end; i++ {
				local = append(local, op(r))
			}
			samples.mu.Lock()
			samples.values = append(samples.values, local...)
			samples.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return samples.values
}

func printStats(label string, times []int64) {
	if len(times) == 0 {
		fmt.Printf("%s:\n  (no samples)\n", label)
		return
	}

	sorted := make([]int64, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	min, max := sorted[0], sorted[len(sorted)-1]
	for _, t := range times {
		sum += t
	}
	avg := float64(sum) / float64(len(times))
	p99 := sorted[int(float64(len(sorted))*0.99)]

	fmt.Printf("%s:\n", label)
	fmt.Printf("  Average: %.0f ns (%.2f µs)\n", avg, avg/1000.0)
	fmt.Printf("  Min: %d ns (%.2f µs)\n", min, float64(min)/1000.0)
	fmt.Printf("  Max: %d ns (%.2f µs)\n", max, float64(max)/1000.0)
	fmt.Printf("  P99: %d ns (%.2f µs)\n", p99, float64(p99)/1000.0)
}
