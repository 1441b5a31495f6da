// hot-reload.go: dynamic operational tunables via Argus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// Tunables are the operational knobs that can be hot-reloaded without
// disrupting a running Store. MaxNodes and BucketHeapCap are
// deliberately absent: changing arena or heap capacity requires a new
// Store, exactly as the teacher documents for its own MaxSize.
type Tunables struct {
	// SpinCountBeforeYield bounds CAS retry spinning before yielding
	// the scheduler (spec §5; 0 means yield on every retry).
	SpinCountBeforeYield int

	// ChainLengthWarnThreshold is the SymbolIndex chain length at which
	// a warning is logged (spec §4.4). It never changes the no-resize
	// invariant, only the logging cadence.
	ChainLengthWarnThreshold int

	// LogLevel is the minimum severity the Store's Logger passes through
	// (spec §10's "logger" tunable). It reconfigures verbosity only; the
	// underlying Logger implementation itself is fixed at Store
	// construction.
	LogLevel LogLevel
}

// HotConfig watches an operational tunables file and applies changes to
// a running Store's diagnostics without reconstructing it.
type HotConfig struct {
	store    *Store
	watcher  *argus.Watcher
	mu       sync.RWMutex
	tunables Tunables

	// OnReload is called after tunables are successfully reloaded. Must
	// be fast and non-blocking.
	OnReload func(old, new Tunables)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the tunables file to watch. Supports
	// JSON, YAML, TOML, HCL, INI, Properties formats (via Argus).
	ConfigPath string

	// PollInterval is how often to check for changes. Default: 1s,
	// minimum 100ms.
	PollInterval time.Duration

	OnReload func(old, new Tunables)
}

// NewHotConfig creates a hot-reloadable tunables watcher for store. It
// starts watching immediately.
//
// Example tunables file (YAML):
//
//	symcache:
//	  spin_count_before_yield: 1000
//	  chain_length_warn_threshold: 16
//	  log_level: info
func NewHotConfig(store *Store, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	hc := &HotConfig{
		store:    store,
		OnReload: opts.OnReload,
		tunables: Tunables{ChainLengthWarnThreshold: chainLengthWarnThreshold, LogLevel: LevelDebug},
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argus.Config{
		PollInterval: opts.PollInterval,
	})
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the tunables file, if not already running.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the tunables file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetTunables returns the current tunables, thread-safe.
func (hc *HotConfig) GetTunables() Tunables {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.tunables
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	hc.mu.Lock()
	old := hc.tunables
	next := hc.parseTunables(data)
	hc.tunables = next
	hc.mu.Unlock()

	if hc.store != nil {
		hc.store.SetSpinCountBeforeYield(next.SpinCountBeforeYield)
		hc.store.SetChainLengthWarnThreshold(next.ChainLengthWarnThreshold)
		hc.store.SetLogLevel(next.LogLevel)
	}

	if hc.OnReload != nil {
		hc.OnReload(old, next)
	}
}

// parseTunables overlays data onto the current tunables. It reads
// hc.tunables directly rather than through GetTunables: handleConfigChange
// calls it with hc.mu already write-locked, and sync.RWMutex is not
// reentrant.
func (hc *HotConfig) parseTunables(data map[string]interface{}) Tunables {
	t := hc.tunables

	section, ok := data["symcache"].(map[string]interface{})
	if !ok {
		_, hasSpin := data["spin_count_before_yield"]
		_, hasLevel := data["log_level"]
		if hasSpin || hasLevel {
			section = data
		} else {
			return t
		}
	}

	if v, ok := parsePositiveInt(section["spin_count_before_yield"]); ok {
		t.SpinCountBeforeYield = v
	}
	if v, ok := parsePositiveInt(section["chain_length_warn_threshold"]); ok {
		t.ChainLengthWarnThreshold = v
	}
	if s, ok := section["log_level"].(string); ok {
		if level, ok := parseLogLevel(s); ok {
			t.LogLevel = level
		}
	}

	return t
}

// parsePositiveInt extracts a positive integer from interface{}. Supports
// both int and float64 (YAML/JSON decode differently).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}
