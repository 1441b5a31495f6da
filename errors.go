// errors.go: structured error handling for symcache
//
// This file provides structured error types using the go-errors library,
// matching the spec §7 error taxonomy (ArenaExhausted, HeapFull,
// CapacityPrecheckFailed, NotFound) plus construction-time failures.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for symcache operations.
const (
	// Configuration errors (construction-time, fatal).
	ErrCodeInvalidMaxNodes      errors.ErrorCode = "SYMCACHE_INVALID_MAX_NODES"
	ErrCodeInvalidBucketHeapCap errors.ErrorCode = "SYMCACHE_INVALID_BUCKET_HEAP_CAP"

	// Operation errors (per spec §7; all are returned as bool/Option at
	// the public API, but constructed here for logging and Stats).
	ErrCodeArenaExhausted         errors.ErrorCode = "SYMCACHE_ARENA_EXHAUSTED"
	ErrCodeHeapFull               errors.ErrorCode = "SYMCACHE_HEAP_FULL"
	ErrCodeCapacityPrecheckFailed errors.ErrorCode = "SYMCACHE_CAPACITY_PRECHECK_FAILED"
	ErrCodeNotFound               errors.ErrorCode = "SYMCACHE_NOT_FOUND"
)

// ErrCapacityExceeded is returned by bucketHeap.push when the heap is at
// its configured bound. It is a plain sentinel, not a go-errors value:
// this is an expected, hot-path outcome (spec §4.3), not an exceptional
// one, and callers compare it with errors.Is.
var ErrCapacityExceeded = goerrors.New("symcache: heap at capacity")

// NewErrInvalidMaxNodes creates an error for MaxNodes <= 0.
func NewErrInvalidMaxNodes(n int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxNodes, "max nodes must be greater than 0", map[string]interface{}{
		"provided_max_nodes": n,
	})
}

// NewErrInvalidBucketHeapCap creates an error for a BucketHeapCap that
// resolves to 0 (spec §9 Q4).
func NewErrInvalidBucketHeapCap(n int) error {
	return errors.NewWithContext(ErrCodeInvalidBucketHeapCap, "bucket heap capacity must be greater than 0", map[string]interface{}{
		"provided_bucket_heap_cap": n,
	})
}

// NewErrArenaExhausted creates an error describing an exhausted arena.
func NewErrArenaExhausted(maxNodes int) error {
	return errors.NewWithContext(ErrCodeArenaExhausted, "arena is exhausted", map[string]interface{}{
		"max_nodes": maxNodes,
	}).AsRetryable()
}

// NewErrHeapFull creates an error describing a full per-symbol heap.
// Retryable: a later pop may make room.
func NewErrHeapFull(symbol string, cap int) error {
	return errors.NewWithContext(ErrCodeHeapFull, "symbol heap is at capacity", map[string]interface{}{
		"symbol": symbol,
		"cap":    cap,
	}).AsRetryable()
}

// NewErrCapacityPrecheckFailed creates an error for a batch insert that
// would exceed MaxNodes.
func NewErrCapacityPrecheckFailed(requested, available int) error {
	return errors.NewWithContext(ErrCodeCapacityPrecheckFailed, "batch would exceed arena capacity", map[string]interface{}{
		"requested": requested,
		"available": available,
	})
}

// NewErrNotFound creates a non-error NotFound condition for logging
// purposes; the public API surfaces this as (_, false), not an error.
func NewErrNotFound(symbol string) error {
	return errors.NewWithField(ErrCodeNotFound, "symbol not found or heap empty after expiry sweep", "symbol", symbol)
}

// IsArenaExhausted reports whether err is an arena-exhaustion error.
func IsArenaExhausted(err error) bool { return errors.HasCode(err, ErrCodeArenaExhausted) }

// IsHeapFull reports whether err is a heap-full error.
func IsHeapFull(err error) bool { return errors.HasCode(err, ErrCodeHeapFull) }

// IsCapacityPrecheckFailed reports whether err is a batch capacity
// precheck failure.
func IsCapacityPrecheckFailed(err error) bool {
	return errors.HasCode(err, ErrCodeCapacityPrecheckFailed)
}

// IsRetryable reports whether the error can reasonably be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
