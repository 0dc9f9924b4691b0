// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/fixedpoint"
)

// rateThenApply implements the common five-step conversion algorithm of
// §4.F: deduct the version-dependent fee from rate, quantize, then
// apply it to amount.
func rateThenApply(v chainparams.Version, conv chainparams.Conversion, rate, amount *uint256.Int) *uint256.Int {
	feeBps := chainparams.ConversionFeeBps(v, conv)
	netRate := fixedpoint.SubFeeBps(rate, feeBps)
	return fixedpoint.ApplyRate(amount, netRate)
}

// MintStableAmount converts amount atomic ZEPH into atomic ZEPHUSD at
// the worst-for-user rate COIN·COIN/max(stable, stable_ma), net of the
// mint-stable conversion fee.
func MintStableAmount(v chainparams.Version, stable, stableMA, amount *uint256.Int) *uint256.Int {
	worst := fixedpoint.Max(stable, stableMA)
	rate := fixedpoint.MulDiv(fixedpoint.Coin, fixedpoint.Coin, worst)
	return rateThenApply(v, chainparams.MintStable, rate, amount)
}

// RedeemStableAmount converts amount atomic ZEPHUSD into atomic ZEPH at
// the worst-for-user rate min(stable, stable_ma), net of the
// redeem-stable conversion fee.
func RedeemStableAmount(v chainparams.Version, stable, stableMA, amount *uint256.Int) *uint256.Int {
	rate := fixedpoint.Min(stable, stableMA)
	return rateThenApply(v, chainparams.RedeemStable, rate, amount)
}

// MintReserveAmount converts amount atomic ZEPH into atomic ZEPHRSV at
// the worst-for-user rate COIN·COIN/max(reserve, reserve_ma), net of the
// mint-reserve conversion fee.
func MintReserveAmount(v chainparams.Version, reserve, reserveMA, amount *uint256.Int) *uint256.Int {
	worst := fixedpoint.Max(reserve, reserveMA)
	rate := fixedpoint.MulDiv(fixedpoint.Coin, fixedpoint.Coin, worst)
	return rateThenApply(v, chainparams.MintReserve, rate, amount)
}

// RedeemReserveAmount converts amount atomic ZEPHRSV into atomic ZEPH at
// the worst-for-user rate min(reserve, reserve_ma), net of the
// redeem-reserve conversion fee.
func RedeemReserveAmount(v chainparams.Version, reserve, reserveMA, amount *uint256.Int) *uint256.Int {
	rate := fixedpoint.Min(reserve, reserveMA)
	return rateThenApply(v, chainparams.RedeemReserve, rate, amount)
}

// Prices bundles the four derived rates a conversion needs, so callers
// that already computed them via StableCoinPrice/ReserveCoinPrice don't
// have to re-derive them per conversion.
type Prices struct {
	Stable    *uint256.Int
	StableMA  *uint256.Int
	Reserve   *uint256.Int
	ReserveMA *uint256.Int
}

// ConvertAmount dispatches to the conversion named by tt, or returns nil
// if tt does not name a conversion (i.e. it is a plain transfer).
func ConvertAmount(v chainparams.Version, tt TransactionType, p Prices, amount *uint256.Int) *uint256.Int {
	switch tt {
	case MintStable:
		return MintStableAmount(v, p.Stable, p.StableMA, amount)
	case RedeemStable:
		return RedeemStableAmount(v, p.Stable, p.StableMA, amount)
	case MintReserve:
		return MintReserveAmount(v, p.Reserve, p.ReserveMA, amount)
	case RedeemReserve:
		return RedeemReserveAmount(v, p.Reserve, p.ReserveMA, amount)
	default:
		return nil
	}
}
