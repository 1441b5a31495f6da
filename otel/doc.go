// Package otel provides OpenTelemetry integration for symcache metrics.
//
// # Overview
//
// This package implements the symcache.MetricsCollector interface using
// OpenTelemetry, so a Store's per-operation latency, success and hit
// outcomes can be exported to Prometheus, Jaeger, Datadog or any other
// OTEL-compatible backend.
//
// It is a separate module so the symcache core stays free of OTEL
// dependencies: applications that don't need metrics collection don't
// pay for them.
//
// # Quick Start
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := symcacheotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, _ := symcache.NewStore(symcache.Config{
//	    MaxNodes:         100_000,
//	    MetricsCollector: collector,
//	})
//
// # Metrics Exposed
//
//	symcache_op_latency_ns   histogram, labeled by op (insert, insert_batch, get, get_batch)
//	symcache_op_success_total  counter, labeled by op
//	symcache_op_failure_total  counter, labeled by op
//	symcache_op_hit_total      counter, labeled by op
//	symcache_op_miss_total     counter, labeled by op
//
// Histograms automatically yield percentiles (p50, p95, p99) in any OTEL
// backend that supports them.
package otel
