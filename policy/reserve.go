// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/fixedpoint"
	"github.com/luxfi/zephcore/pricingrecord"
	"github.com/luxfi/zephcore/supply"
)

// Tally is the signed change a candidate conversion would make to each
// asset's circulating supply: positive for mint, negative for redeem.
type Tally struct {
	DeltaZeph     *big.Int
	DeltaStables  *big.Int
	DeltaReserves *big.Int
}

// Admit is the reserve-ratio guard: the heart of the monetary policy.
// It decides whether the post-trade state produced by applying tally to
// circ remains admissible for a conversion of type tt, given the
// network's current pricing record.
//
// Per the "replace 128-bit float reserve-ratio math" design note, this
// always uses the V5+ integer formulation; the pre-V5 source used an
// extended-precision float over the same inequalities and was
// behaviourally equivalent, so no float path is implemented here.
//
// ok is the admission decision; reason is a user-visible explanation
// that, for ratio-based rejections, names both the spot and
// moving-average ratios that were compared.
func Admit(v chainparams.Version, circ *supply.Snapshot, pr *pricingrecord.Record, ratioHistory []*uint256.Int, tt TransactionType, tally Tally) (bool, string) {
	if pr.HasMissingRates(v) {
		return false, "pricing record is missing a rate required at this version"
	}

	if circ.ZephReserve.IsZero() {
		if tt == MintReserve {
			return true, "bootstrap: zeph_reserve is zero, only MINT_RESERVE is admitted"
		}
		return false, "zeph_reserve is zero; only MINT_RESERVE is admitted until the reserve is seeded"
	}

	assets := new(big.Int).Add(circ.ZephReserve.ToBig(), tally.DeltaZeph)
	liabilities := new(big.Int).Add(circ.NumStables.ToBig(), tally.DeltaStables)
	reserves := new(big.Int).Add(circ.NumReserves.ToBig(), tally.DeltaReserves)
	if assets.Sign() < 0 || liabilities.Sign() < 0 || reserves.Sign() < 0 {
		return false, "post-trade supply would go negative"
	}
	if assets.Sign() == 0 && liabilities.Sign() == 0 {
		return false, "post-trade state has no assets and no liabilities"
	}

	spot := uint256FromBig(new(big.Int).SetUint64(pr.Spot))
	ma := uint256FromBig(new(big.Int).SetUint64(pr.MovingAverage))
	if assets.Sign() != 0 && spot.IsZero() {
		return false, "spot price is zero against a non-zero post-trade asset balance"
	}

	postAssets, overflow := uint256.FromBig(assets)
	if overflow {
		return false, "post-trade assets overflow the 128-bit consensus range"
	}
	postLiabilities, overflow := uint256.FromBig(liabilities)
	if overflow {
		return false, "post-trade liabilities overflow the 128-bit consensus range"
	}
	postReserves, overflow := uint256.FromBig(reserves)
	if overflow {
		return false, "post-trade reserves overflow the 128-bit consensus range"
	}
	postCirc := &supply.Snapshot{ZephReserve: postAssets, NumStables: postLiabilities, NumReserves: postReserves}

	ratioSpot := SpotReserveRatio(postCirc, spot)
	ratioMA := MAReserveRatio(v, postCirc, ma, ratioHistory, ratioSpot)

	switch tt {
	case MintStable:
		if ratioSpot.GreaterOrEqual(chainparams.ReserveRatioMin) && ratioMA.GreaterOrEqual(chainparams.ReserveRatioMin) {
			return true, ratioReason(ratioSpot, ratioMA)
		}
		return false, fmt.Sprintf("MINT_STABLE requires both ratios >= reserve ratio minimum: %s", ratioReason(ratioSpot, ratioMA))

	case RedeemStable:
		// Users may exit even when undercollateralised: the only
		// requirement is that the post-trade reserve stays positive, not
		// any ratio threshold.
		if assets.Sign() > 0 {
			return true, "REDEEM_STABLE admitted: post-trade assets positive"
		}
		return false, "REDEEM_STABLE requires positive post-trade assets"

	case MintReserve:
		threshold := new(big.Int).Mul(big.NewInt(chainparams.StableThresholdUnrestrictedCoins), fixedpoint.Coin.ToBig())
		if liabilities.Cmp(threshold) < 0 {
			return true, "bootstrap corridor: liabilities below unrestricted threshold"
		}
		if ratioSpot.LessThan(chainparams.ReserveRatioMax) && ratioMA.LessThan(chainparams.ReserveRatioMax) {
			return true, ratioReason(ratioSpot, ratioMA)
		}
		return false, fmt.Sprintf("MINT_RESERVE requires both ratios < reserve ratio maximum: %s", ratioReason(ratioSpot, ratioMA))

	case RedeemReserve:
		if ratioSpot.GreaterOrEqual(chainparams.ReserveRatioMin) && ratioMA.GreaterOrEqual(chainparams.ReserveRatioMin) {
			return true, ratioReason(ratioSpot, ratioMA)
		}
		return false, fmt.Sprintf("REDEEM_RESERVE requires both ratios >= reserve ratio minimum: %s", ratioReason(ratioSpot, ratioMA))

	default:
		return false, "reserve-ratio guard does not apply to plain transfers"
	}
}

func ratioReason(spot, ma Ratio) string {
	return fmt.Sprintf("ratio_spot=%s ratio_ma=%s", ratioString(spot), ratioString(ma))
}

func ratioString(r Ratio) string {
	if r.Infinite {
		return "+Inf"
	}
	return r.Value.Dec()
}

func uint256FromBig(b *big.Int) *uint256.Int {
	v, _ := uint256.FromBig(b)
	return v
}
