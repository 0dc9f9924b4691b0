// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package supply is the read-only accessor over the storage engine's
// per-height circulating-supply totals. It never mutates state; every
// call is a point lookup against the height the caller supplies.
package supply

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
)

// Key prefixes under which the storage engine persists each asset's
// circulating total as a decimal string, one entry per height.
const (
	keyZephReserve = "circ/zeph_reserve/"
	keyNumStables  = "circ/num_stables/"
	keyNumReserves = "circ/num_reserves/"
)

// Snapshot is the circulating-supply triple consumed by the derived-
// pricing and reserve-ratio-guard components.
type Snapshot struct {
	ZephReserve *uint256.Int
	NumStables  *uint256.Int
	NumReserves *uint256.Int
}

// Get reads the circulating-supply snapshot at height from db. A height
// with no recorded entry for a given asset is treated as zero supply
// rather than an error, matching genesis and any asset not yet minted.
func Get(db database.Database, height uint64) (*Snapshot, error) {
	zeph, err := readDecimal(db, keyZephReserve, height)
	if err != nil {
		return nil, err
	}
	stables, err := readDecimal(db, keyNumStables, height)
	if err != nil {
		return nil, err
	}
	reserves, err := readDecimal(db, keyNumReserves, height)
	if err != nil {
		return nil, err
	}
	return &Snapshot{ZephReserve: zeph, NumStables: stables, NumReserves: reserves}, nil
}

func readDecimal(db database.Database, prefix string, height uint64) (*uint256.Int, error) {
	raw, err := db.Get(heightKey(prefix, height))
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("supply: read %s%d: %w", prefix, height, err)
	}
	v := new(uint256.Int)
	if err := v.SetFromDecimal(string(raw)); err != nil {
		return nil, fmt.Errorf("supply: parse %s%d %q: %w", prefix, height, raw, err)
	}
	return v, nil
}

// heightKey derives the storage key for a given prefix and height. The
// height is fixed-width zero-padded so that keys sort numerically.
func heightKey(prefix string, height uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefix, height))
}
