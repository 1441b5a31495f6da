// collector_test.go: unit tests for the OpenTelemetry-backed MetricsCollector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"testing"

	"github.com/flowbyte-labs/symcache"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOTelMetricsCollector_Interface(t *testing.T) {
	var _ symcache.MetricsCollector = (*OTelMetricsCollector)(nil)
}

func TestNewOTelMetricsCollector_NilProvider(t *testing.T) {
	collector, err := NewOTelMetricsCollector(nil)
	if err == nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return error")
	}
	if collector != nil {
		t.Fatal("NewOTelMetricsCollector(nil) should return nil collector")
	}
}

func newTestCollector(t *testing.T) (*OTelMetricsCollector, *metric.ManualReader) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	collector, err := NewOTelMetricsCollector(provider)
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	return collector, reader
}

func TestOTelMetricsCollector_RecordOp_LatencyHistogram(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordOp("insert", 1000, true, false)
	collector.RecordOp("insert", 2000, true, false)
	collector.RecordOp("get", 1500, true, true)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	var foundLatency bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "symcache_op_latency_ns" {
				continue
			}
			foundLatency = true
			hist, ok := m.Data.(metricdata.Histogram[int64])
			if !ok {
				t.Fatalf("symcache_op_latency_ns: expected Histogram[int64], got %T", m.Data)
			}
			var total uint64
			for _, dp := range hist.DataPoints {
				total += dp.Count
			}
			if total != 3 {
				t.Errorf("total histogram count = %d, want 3", total)
			}
		}
	}
	if !foundLatency {
		t.Error("symcache_op_latency_ns metric not found")
	}
}

func TestOTelMetricsCollector_RecordOp_SuccessAndFailureCounters(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordOp("insert", 100, true, false)
	collector.RecordOp("insert", 100, false, false)
	collector.RecordOp("insert", 100, false, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}

	if sums["symcache_op_success_total"] != 1 {
		t.Errorf("symcache_op_success_total = %d, want 1", sums["symcache_op_success_total"])
	}
	if sums["symcache_op_failure_total"] != 2 {
		t.Errorf("symcache_op_failure_total = %d, want 2", sums["symcache_op_failure_total"])
	}
}

func TestOTelMetricsCollector_RecordOp_HitAndMissCounters(t *testing.T) {
	collector, reader := newTestCollector(t)

	collector.RecordOp("get", 100, true, true)
	collector.RecordOp("get", 100, true, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}

	if sums["symcache_op_hit_total"] != 1 {
		t.Errorf("symcache_op_hit_total = %d, want 1", sums["symcache_op_hit_total"])
	}
	if sums["symcache_op_miss_total"] != 1 {
		t.Errorf("symcache_op_miss_total = %d, want 1", sums["symcache_op_miss_total"])
	}
}

func TestOTelMetricsCollector_WithMeterName(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	collector, err := NewOTelMetricsCollector(provider, WithMeterName("custom_symcache"))
	if err != nil {
		t.Fatalf("NewOTelMetricsCollector() error = %v", err)
	}
	collector.RecordOp("insert", 100, true, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("no scope metrics")
	}
	if rm.ScopeMetrics[0].Scope.Name != "custom_symcache" {
		t.Errorf("scope name = %q, want %q", rm.ScopeMetrics[0].Scope.Name, "custom_symcache")
	}
}
