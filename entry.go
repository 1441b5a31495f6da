// entry.go: the unit of data stored in the arena
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

// Entry is a single priced, prioritized, expiring record. It carries no
// allocation identity beyond the arena slot that holds it: once filled by
// its inserter, an Entry is read-only for the rest of its lifetime.
type Entry struct {
	Value       float64
	Priority    int32
	TimestampNs uint64
	ExpiryNs    uint64
}

// Expired reports whether the entry is no longer live at nowNs. Both
// timestamps come from the same monotonic clock, so the subtraction never
// wraps as long as nowNs >= TimestampNs.
func (e Entry) Expired(nowNs uint64) bool {
	return (nowNs - e.TimestampNs) > e.ExpiryNs
}
