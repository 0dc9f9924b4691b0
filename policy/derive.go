// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"github.com/holiman/uint256"

	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/fixedpoint"
	"github.com/luxfi/zephcore/supply"
)

// StableCoinPrice derives the ZEPHUSD price (atomic ZEPH per whole
// ZEPHUSD) from the circulating-supply snapshot and an oracle price of
// ZEPH in USD. Called once with the pricing record's spot and once with
// its moving_average to produce the pair consumed by §4.F.
//
// The spec frames the undercollateralisation branch as a float
// comparison of reserve_ratio against 1.0; that is replaced here with
// the exactly equivalent integer cross-multiplication
// zeph_reserve·oracle_price ≶ num_stables·COIN, per the "replace
// 128-bit float reserve-ratio math" design note — a float comparison
// has no platform-independent bit-exact meaning and this is a
// consensus-critical branch.
func StableCoinPrice(circ *supply.Snapshot, oraclePrice *uint256.Int) *uint256.Int {
	if oraclePrice.IsZero() {
		return fixedpoint.Zero()
	}
	rate := fixedpoint.Quantize(fixedpoint.MulDiv(fixedpoint.Coin, fixedpoint.Coin, oraclePrice))
	if circ.NumStables.IsZero() {
		return rate
	}

	lhs := new(uint256.Int).Mul(circ.ZephReserve, oraclePrice)
	rhs := new(uint256.Int).Mul(circ.NumStables, fixedpoint.Coin)
	if lhs.Lt(rhs) {
		// Undercollateralised: guarantee pro-rata exit at the worst-case
		// rate rather than the pegged rate.
		return fixedpoint.Quantize(fixedpoint.MulDiv(circ.ZephReserve, fixedpoint.Coin, circ.NumStables))
	}
	return rate
}

// ReserveCoinPrice derives the ZEPHRSV price (atomic ZEPH per whole
// ZEPHRSV) from the circulating-supply snapshot and an oracle price of
// ZEPH in USD. Like StableCoinPrice, called once with spot and once
// with moving_average.
func ReserveCoinPrice(circ *supply.Snapshot, oraclePrice *uint256.Int) *uint256.Int {
	floor := fixedpoint.FromUint64(chainparams.ReserveCoinPriceFloorAtomic)
	if circ.NumReserves.IsZero() {
		return floor
	}

	liabilities := fixedpoint.MulDiv(circ.NumStables, fixedpoint.Coin, oraclePrice)
	var equity *uint256.Int
	if circ.ZephReserve.Gt(liabilities) {
		equity = new(uint256.Int).Sub(circ.ZephReserve, liabilities)
	} else {
		equity = fixedpoint.Zero()
	}
	if equity.IsZero() {
		return floor
	}

	raw := new(uint256.Int).Mul(equity, fixedpoint.Coin)
	q := new(uint256.Int).Div(raw, circ.NumReserves)
	if fixedpoint.Overflowed(q) {
		return fixedpoint.Zero()
	}
	price := fixedpoint.Quantize(q)
	return fixedpoint.Max(price, floor)
}

// MovingAverage computes the trailing 720-record average of a field
// (stable, stable_ma, reserve, reserve_ma or the reserve ratio itself),
// given up to the caller's full history and the current record's value.
// It returns zero unless at least MovingAverageHistoryRequired historical
// values are supplied; with more supplied, only the most recent window
// is used.
func MovingAverage(history []*uint256.Int, current *uint256.Int) *uint256.Int {
	if len(history) < chainparams.MovingAverageHistoryRequired {
		return fixedpoint.Zero()
	}
	window := history[len(history)-chainparams.MovingAverageHistoryRequired:]

	sum := new(uint256.Int).Set(current)
	for _, v := range window {
		sum.Add(sum, v)
	}
	avg := new(uint256.Int).Div(sum, uint256.NewInt(chainparams.MovingAverageWindow))
	return fixedpoint.Quantize(avg)
}

// Ratio is a reserve ratio scaled by fixedpoint.Coin, or the degenerate
// +∞ value used when there are no liabilities outstanding.
type Ratio struct {
	Value    *uint256.Int
	Infinite bool
}

// finiteRatio constructs a finite Ratio.
func finiteRatio(v *uint256.Int) Ratio { return Ratio{Value: v} }

// infiniteRatio is the ratio reported when num_stables == 0.
func infiniteRatio() Ratio { return Ratio{Infinite: true} }

// GreaterOrEqual reports whether r >= threshold, treating +∞ as always
// satisfying the bound.
func (r Ratio) GreaterOrEqual(threshold *uint256.Int) bool {
	if r.Infinite {
		return true
	}
	return !r.Value.Lt(threshold)
}

// LessThan reports whether r < threshold; +∞ never satisfies this.
func (r Ratio) LessThan(threshold *uint256.Int) bool {
	if r.Infinite {
		return false
	}
	return r.Value.Lt(threshold)
}

// SpotReserveRatio computes assets/liabilities = zeph_reserve·price /
// num_stables for the supplied price (the oracle's spot field). Since
// price is itself scaled by COIN, the result is the reserve ratio scaled
// by COIN, directly comparable with chainparams.ReserveRatioMin/Max.
func SpotReserveRatio(circ *supply.Snapshot, price *uint256.Int) Ratio {
	if circ.NumStables.IsZero() {
		return infiniteRatio()
	}
	product := new(uint256.Int).Mul(circ.ZephReserve, price)
	return finiteRatio(new(uint256.Int).Div(product, circ.NumStables))
}

// MAReserveRatio computes the moving-average reserve ratio. Before
// HF_VERSION_PR_UPDATE it is derived directly from the oracle's
// moving_average price with the same formula as SpotReserveRatio; from
// HF_VERSION_PR_UPDATE onward it is itself a 720-record moving average
// of the spot ratio, consistent with the reserve_ratio/reserve_ratio_ma
// fields the pricing record starts carrying at that version.
func MAReserveRatio(v chainparams.Version, circ *supply.Snapshot, oracleMA *uint256.Int, ratioHistory []*uint256.Int, spotRatio Ratio) Ratio {
	if circ.NumStables.IsZero() {
		return infiniteRatio()
	}
	if v < chainparams.VersionPRUpdate {
		product := new(uint256.Int).Mul(circ.ZephReserve, oracleMA)
		return finiteRatio(new(uint256.Int).Div(product, circ.NumStables))
	}
	if spotRatio.Infinite {
		return infiniteRatio()
	}
	return finiteRatio(MovingAverage(ratioHistory, spotRatio.Value))
}
