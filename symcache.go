// symcache.go: version and package-wide defaults
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package symcache

const (
	// Version of the symcache library.
	Version = "v0.1.0-dev"

	// DefaultMaxNodes is the default arena capacity used by DefaultConfig.
	DefaultMaxNodes = 10_000
)
