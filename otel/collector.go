// collector.go: OpenTelemetry-backed MetricsCollector
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/flowbyte-labs/symcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements symcache.MetricsCollector using
// OpenTelemetry. All instruments are labeled by operation name (op), so a
// single histogram and a small set of counters cover Insert, InsertBatch,
// GetHighestPriority and GetHighestPriorityBatch alike.
//
// Thread-safety: safe for concurrent use; the underlying OTEL instruments
// are lock-free.
type OTelMetricsCollector struct {
	latency metric.Int64Histogram
	success metric.Int64Counter
	failure metric.Int64Counter
	hit     metric.Int64Counter
	miss    metric.Int64Counter
}

// Options configures OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/flowbyte-labs/symcache".
	MeterName string
}

// Option is a functional option for OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing
// metrics from multiple Store instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a collector backed by provider. Returns
// an error if provider is nil or if instrument creation fails.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/flowbyte-labs/symcache"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	c := &OTelMetricsCollector{}

	var err error
	c.latency, err = meter.Int64Histogram(
		"symcache_op_latency_ns",
		metric.WithDescription("Latency of Store operations in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	c.success, err = meter.Int64Counter(
		"symcache_op_success_total",
		metric.WithDescription("Total number of operations that succeeded"),
	)
	if err != nil {
		return nil, err
	}

	c.failure, err = meter.Int64Counter(
		"symcache_op_failure_total",
		metric.WithDescription("Total number of operations that failed"),
	)
	if err != nil {
		return nil, err
	}

	c.hit, err = meter.Int64Counter(
		"symcache_op_hit_total",
		metric.WithDescription("Total number of operations that returned a live entry"),
	)
	if err != nil {
		return nil, err
	}

	c.miss, err = meter.Int64Counter(
		"symcache_op_miss_total",
		metric.WithDescription("Total number of operations that found nothing live"),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RecordOp implements symcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordOp(op string, latencyNs int64, success bool, hit bool) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("op", op))

	c.latency.Record(ctx, latencyNs, attrs)

	if success {
		c.success.Add(ctx, 1, attrs)
	} else {
		c.failure.Add(ctx, 1, attrs)
	}

	if hit {
		c.hit.Add(ctx, 1, attrs)
	} else {
		c.miss.Add(ctx, 1, attrs)
	}
}

var _ symcache.MetricsCollector = (*OTelMetricsCollector)(nil)
