// errors_test.go: unit tests for symcache's structured errors
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

import (
	stderrors "errors"
	"testing"
)

func TestNewErrArenaExhausted_IsRetryable(t *testing.T) {
	err := NewErrArenaExhausted(1000)
	if !IsArenaExhausted(err) {
		t.Error("IsArenaExhausted() = false, want true")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestNewErrHeapFull_IsRetryable(t *testing.T) {
	err := NewErrHeapFull("AAPL", 10)
	if !IsHeapFull(err) {
		t.Error("IsHeapFull() = false, want true")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false, want true")
	}
}

func TestNewErrCapacityPrecheckFailed_IsNotRetryable(t *testing.T) {
	err := NewErrCapacityPrecheckFailed(20, 5)
	if !IsCapacityPrecheckFailed(err) {
		t.Error("IsCapacityPrecheckFailed() = false, want true")
	}
	if IsRetryable(err) {
		t.Error("IsRetryable() = true, want false: a batch precheck failure needs a smaller batch, not a retry")
	}
}

func TestErrorPredicates_RejectUnrelatedErrors(t *testing.T) {
	other := stderrors.New("something else")
	if IsArenaExhausted(other) {
		t.Error("IsArenaExhausted() on an unrelated error = true, want false")
	}
	if IsHeapFull(other) {
		t.Error("IsHeapFull() on an unrelated error = true, want false")
	}
	if IsCapacityPrecheckFailed(other) {
		t.Error("IsCapacityPrecheckFailed() on an unrelated error = true, want false")
	}
	if IsRetryable(other) {
		t.Error("IsRetryable() on an unrelated error = true, want false")
	}
}

func TestIsRetryable_NilError(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) = true, want false")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewErrArenaExhausted(10)); got != ErrCodeArenaExhausted {
		t.Errorf("GetErrorCode() = %q, want %q", got, ErrCodeArenaExhausted)
	}
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q, want empty", got)
	}
}

func TestErrCapacityExceeded_IsASentinelComparableWithErrorsIs(t *testing.T) {
	a := newArena(2)
	h := newBucketHeap(a, 1, nil)

	i, _ := a.claimOne()
	a.fill(i, Entry{Priority: 1})
	_ = h.push(i)

	j, _ := a.claimOne()
	a.fill(j, Entry{Priority: 2})
	err := h.push(j)

	if !stderrors.Is(err, ErrCapacityExceeded) {
		t.Errorf("push() on a full heap = %v, want errors.Is(_, ErrCapacityExceeded)", err)
	}
}
