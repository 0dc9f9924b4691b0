// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package asset defines the closed set of protocol asset tags used across
// the monetary-policy core. It replaces hash-map asset lookups with a
// small dense enum, keeping the string-tag encoding only at the
// serialization boundary.
package asset

import "fmt"

// Type is a dense enum identifying one of the protocol's three assets.
type Type uint8

const (
	// Invalid is the zero value; it is never a valid asset.
	Invalid Type = iota
	Zeph
	ZephUSD
	ZephRsv
)

// Tag is the canonical on-chain string identifier for an asset.
const (
	TagZeph    = "ZEPH"
	TagZephUSD = "ZEPHUSD"
	TagZephRsv = "ZEPHRSV"
)

// String returns the canonical tag for a, or "" if a is not a known asset.
func (a Type) String() string {
	switch a {
	case Zeph:
		return TagZeph
	case ZephUSD:
		return TagZephUSD
	case ZephRsv:
		return TagZephRsv
	default:
		return ""
	}
}

// Parse maps a canonical tag to its dense enum value. Any tag outside the
// closed set of §3 is rejected.
func Parse(tag string) (Type, error) {
	switch tag {
	case TagZeph:
		return Zeph, nil
	case TagZephUSD:
		return ZephUSD, nil
	case TagZephRsv:
		return ZephRsv, nil
	default:
		return Invalid, fmt.Errorf("asset: unsupported tag %q", tag)
	}
}

// IsValid reports whether a is one of the three closed-set assets.
func (a Type) IsValid() bool {
	switch a {
	case Zeph, ZephUSD, ZephRsv:
		return true
	default:
		return false
	}
}
