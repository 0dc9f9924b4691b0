// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainparams holds the per-height protocol version schedule and
// the monetary-policy constants that are consumed by every other
// component in this module. Nothing here is a process-wide singleton:
// every policy function takes a *NetworkConfig and a Version explicitly,
// per the hard-fork-dispatch design used throughout the core.
package chainparams

import (
	"sort"

	"github.com/holiman/uint256"
)

// Version is the monetary-policy protocol version. It is selected purely
// by activation height; policy functions never read it from a global.
type Version uint32

const (
	// VersionGenesis predates the Djed-style stablecoin mechanism.
	// Pricing records at this version are always legally empty.
	VersionGenesis Version = 0

	// VersionDjed activates the oracle-signed pricing record and the
	// stable/reserve-coin conversion machinery (HF_VERSION_DJED).
	VersionDjed Version = 1

	// VersionPRUpdate extends the pricing record with an on-chain
	// reserve-ratio echo (HF_VERSION_PR_UPDATE). The signed message still
	// carries the legacy moving_average field at this version; it is
	// dropped from the message at every later version.
	VersionPRUpdate Version = 2

	// VersionV5 revises the conversion fee schedule. The reserve-ratio
	// guard uses the same 128-bit integer arithmetic at every version,
	// so this version does not change it.
	VersionV5 Version = 3
)

// Activation pairs a protocol version with the height and timestamp at
// which it takes effect.
type Activation struct {
	Version Version
	Height  uint64
	Time    int64
}

// NetworkConfig is the immutable, per-network configuration consumed by
// the core: the oracle's public key and the ordered hard-fork schedule.
// It is loaded once at process startup and passed by reference to every
// function that needs it — there is no package-level network singleton.
type NetworkConfig struct {
	Name string

	// OraclePublicKeyPEM is the network's compiled-in oracle public key,
	// PEM-encoded. See pricingrecord.VerifySignature for the exact
	// verification scheme.
	OraclePublicKeyPEM []byte

	// Activations must be sorted ascending by Height; NewNetworkConfig
	// sorts a copy defensively.
	Activations []Activation
}

// NewNetworkConfig returns a NetworkConfig with its activation schedule
// sorted by height, regardless of the order activations were supplied in.
func NewNetworkConfig(name string, oraclePubKeyPEM []byte, activations []Activation) *NetworkConfig {
	sorted := make([]Activation, len(activations))
	copy(sorted, activations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Height < sorted[j].Height })
	return &NetworkConfig{
		Name:               name,
		OraclePublicKeyPEM: oraclePubKeyPEM,
		Activations:        sorted,
	}
}

// VersionAt returns the highest activation whose height is <= height. If
// height predates every activation, VersionGenesis is returned.
func (nc *NetworkConfig) VersionAt(height uint64) Version {
	v := VersionGenesis
	for _, a := range nc.Activations {
		if a.Height > height {
			break
		}
		v = a.Version
	}
	return v
}

// Monetary-policy constants, network-agnostic and compile-time fixed.
const (
	// PricingRecordValidBlocks is the number of blocks a pricing record
	// may be referenced without being refreshed (informational; the
	// binding constraint enforced here is the timestamp window below).
	PricingRecordValidBlocks = 10

	// PricingRecordValidTimeDiffFromBlock bounds how far a pricing
	// record's timestamp may be from the current block's timestamp, in
	// either direction.
	PricingRecordValidTimeDiffFromBlock = 120 // seconds

	// StableThresholdUnrestrictedCoins is the stable-coin supply (in
	// whole coins) below which MINT_RESERVE is always admitted,
	// regardless of reserve ratio (bootstrap corridor).
	StableThresholdUnrestrictedCoins = 100

	// ReserveCoinPriceFloorAtomic is the 0.5 ZEPH floor under which the
	// reserve-coin price never falls.
	ReserveCoinPriceFloorAtomic = 500_000_000_000

	// MovingAverageWindow is the number of trailing pricing records
	// (including the current one) a moving average is computed over.
	MovingAverageWindow = 720

	// MovingAverageHistoryRequired is the minimum count of historical
	// records (excluding the current one) needed before a moving
	// average is defined; below this, moving averages are zero.
	MovingAverageHistoryRequired = MovingAverageWindow - 1
)

// ReserveRatioMin and ReserveRatioMax are the admissible band for the
// reserve ratio, scaled by fixedpoint.Coin (4.0 and 8.0 respectively).
var (
	coin            = uint256.NewInt(1_000_000_000_000)
	ReserveRatioMin = new(uint256.Int).Mul(uint256.NewInt(4), coin)
	ReserveRatioMax = new(uint256.Int).Mul(uint256.NewInt(8), coin)
)

// ConversionFeeBps returns the basis-point fee (out of 10_000) deducted
// from the named conversion's rate at protocol version v. See §4.F.
func ConversionFeeBps(v Version, conv Conversion) uint64 {
	v5 := v >= VersionV5
	switch conv {
	case MintStable, RedeemStable:
		if v5 {
			return 10 // 0.1%
		}
		return 200 // 2%
	case MintReserve:
		if v5 {
			return 100 // 1%
		}
		return 0 // 0%
	case RedeemReserve:
		if v5 {
			return 100 // 1%
		}
		return 200 // 2%
	default:
		return 0
	}
}

// Conversion identifies one of the four mint/redeem conversion kinds
// priced in §4.F.
type Conversion uint8

const (
	MintStable Conversion = iota
	RedeemStable
	MintReserve
	RedeemReserve
)
