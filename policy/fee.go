// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/zephcore/asset"
	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/fixedpoint"
	"github.com/luxfi/zephcore/pricingrecord"
)

// ZephToAssetFee converts a ZEPH-denominated fee into the destination
// asset at rate (atomic ZEPH per whole unit of the asset), mirroring the
// ZEPH-to-asset conversions of §4.F minus their conversion fee
// deduction: invert the rate to COIN·COIN/rate, quantize it, then apply
// it. Overflow clamps to zero.
func ZephToAssetFee(zephFee, rate *uint256.Int) *uint256.Int {
	inverse := fixedpoint.MulDiv(fixedpoint.Coin, fixedpoint.Coin, rate)
	return fixedpoint.ApplyRate(zephFee, fixedpoint.Quantize(inverse))
}

// AssetToZephFee converts an asset-denominated fee into ZEPH at rate:
// asset_fee * rate / COIN, clamped to zero on overflow.
func AssetToZephFee(assetFee, rate *uint256.Int) *uint256.Int {
	return fixedpoint.ApplyRate(assetFee, rate)
}

// maRateFor returns the pricing record's moving-average rate for the
// given non-ZEPH asset: stable_ma for ZEPHUSD, reserve_ma for ZEPHRSV.
func maRateFor(a asset.Type, pr *pricingrecord.Record) (*uint256.Int, bool) {
	switch a {
	case asset.ZephUSD:
		return fixedpoint.FromUint64(pr.StableMA), true
	case asset.ZephRsv:
		return fixedpoint.FromUint64(pr.ReserveMA), true
	default:
		return nil, false
	}
}

// FeeInZephEquivalent converts a fee of amount atomic units of asset
// into its ZEPH equivalent using the pricing record's moving-average
// rate for that asset. ZEPH fees, and fees priced against a record
// missing required rates, pass through unchanged.
func FeeInZephEquivalent(a asset.Type, amount *uint256.Int, pr *pricingrecord.Record, v chainparams.Version) *uint256.Int {
	if a == asset.Zeph || pr.HasMissingRates(v) {
		return amount
	}
	rate, ok := maRateFor(a, pr)
	if !ok {
		return amount
	}
	return AssetToZephFee(amount, rate)
}

// FeeInAssetEquivalent converts a ZEPH-denominated fee of amount atomic
// units into asset using the pricing record's moving-average rate for
// that asset, symmetric to FeeInZephEquivalent.
func FeeInAssetEquivalent(a asset.Type, amount *uint256.Int, pr *pricingrecord.Record, v chainparams.Version) *uint256.Int {
	if a == asset.Zeph || pr.HasMissingRates(v) {
		return amount
	}
	rate, ok := maRateFor(a, pr)
	if !ok {
		return amount
	}
	return ZephToAssetFee(amount, rate)
}
