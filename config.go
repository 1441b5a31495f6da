// config.go: configuration for symcache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"github.com/agilira/go-timecache"
)

// Config holds construction parameters for a Store.
type Config struct {
	// MaxNodes is the fixed arena capacity: the maximum number of
	// Entry slots the Store can ever hand out. Must be > 0.
	MaxNodes int

	// BucketHeapCap is the capacity of each symbol's BucketHeap.
	// Default: MaxNodes / 10, minimum 1 (spec §9 Q4).
	BucketHeapCap int

	// SpinCountBeforeYield bounds how many CAS retries push/pop/getOrCreate
	// attempt before calling runtime.Gosched(). 0 means yield on every
	// retry, matching the source's unbounded-spin default. Hot-reloadable
	// via HotConfig (spec §10).
	SpinCountBeforeYield int

	// ChainLengthWarnThreshold is the symbol-index chain length at which
	// getOrCreate logs a warning. Default: chainLengthWarnThreshold (16).
	// Hot-reloadable via HotConfig (spec §10).
	ChainLengthWarnThreshold int

	// Logger is used for diagnostics (e.g. long symbol-index chains). Its
	// verbosity is hot-reloadable via HotConfig's logger tunable (spec
	// §10), independent of the Logger implementation itself.
	// Default: NoOpLogger.
	Logger Logger

	// TimeProvider supplies the monotonic clock for Entry timestamps and
	// expiry checks. Default: go-timecache backed systemTimeProvider.
	TimeProvider TimeProvider

	// MetricsCollector receives {op, latency_ns, success, hit} records.
	// Default: NoOpMetricsCollector (zero overhead).
	MetricsCollector MetricsCollector
}

// Validate normalizes defaults and rejects MaxNodes <= 0 with an error. A
// BucketHeapCap <= 0 is not rejected: it is replaced by MaxNodes / 10,
// floored at 1, so the resolved capacity is never 0. Unlike the teacher's Config.Validate (which never errors), this one can:
// the spec's domain has real construction-time fatal conditions the
// teacher's cache config didn't.
func (c *Config) Validate() error {
	if c.MaxNodes <= 0 {
		return NewErrInvalidMaxNodes(c.MaxNodes)
	}

	if c.BucketHeapCap <= 0 {
		c.BucketHeapCap = c.MaxNodes / 10
		if c.BucketHeapCap < 1 {
			c.BucketHeapCap = 1
		}
	}

	if c.ChainLengthWarnThreshold <= 0 {
		c.ChainLengthWarnThreshold = chainLengthWarnThreshold
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults for a
// 10,000-node store. MaxNodes still must be set explicitly by callers
// who want a different capacity; this exists mainly for tests.
func DefaultConfig() Config {
	return Config{
		MaxNodes:         DefaultMaxNodes,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default TimeProvider, using go-timecache for
// a cached monotonic read that is far cheaper than time.Now() on the hot
// insert/get path.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() uint64 {
	return uint64(timecache.CachedTimeNano())
}
