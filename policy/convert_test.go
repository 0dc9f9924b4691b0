// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/fixedpoint"
)

// TestMintStableAmountScenario5 reproduces the literal ZEPH->ZEPHUSD
// conversion from §8 scenario 5: amount = 120*COIN against the supply
// state and spot = 20*COIN, ma = 15*COIN prices of scenario 1. The scenario's own version
// label predates this module's VersionV5 fee-schedule hardening, so it
// is exercised here at the pre-V5 (2%) fee rather than the V5+ (0.1%)
// fee the scenario notes would give a different result.
func TestMintStableAmountScenario5(t *testing.T) {
	circ := scenario1()
	spot := coins(20)
	ma := coins(15)
	stable := StableCoinPrice(circ, spot)
	stableMA := StableCoinPrice(circ, ma)

	amount := coins(120)
	got := MintStableAmount(chainparams.VersionPRUpdate, stable, stableMA, amount)
	want := uint256.NewInt(0)
	want.SetFromDecimal("1764000176400000")
	if got.Cmp(want) != 0 {
		t.Fatalf("MintStableAmount = %s, want %s", got, want)
	}
}

func TestConversionZeroAmountYieldsZero(t *testing.T) {
	stable, stableMA := coins(1), coins(2)
	reserve, reserveMA := coins(1), coins(2)
	zero := fixedpoint.Zero()
	if !MintStableAmount(chainparams.VersionV5, stable, stableMA, zero).IsZero() {
		t.Fatal("MintStableAmount(0, ...) should be 0")
	}
	if !RedeemStableAmount(chainparams.VersionV5, stable, stableMA, zero).IsZero() {
		t.Fatal("RedeemStableAmount(0, ...) should be 0")
	}
	if !MintReserveAmount(chainparams.VersionV5, reserve, reserveMA, zero).IsZero() {
		t.Fatal("MintReserveAmount(0, ...) should be 0")
	}
	if !RedeemReserveAmount(chainparams.VersionV5, reserve, reserveMA, zero).IsZero() {
		t.Fatal("RedeemReserveAmount(0, ...) should be 0")
	}
}

// TestConversionMonotoneInPrice checks that a higher redeem-stable price
// (more ZEPH per ZEPHUSD) never yields a smaller converted amount for a
// fixed input, i.e. the conversion rate is monotone non-decreasing in
// the relevant oracle price.
func TestConversionMonotoneInPrice(t *testing.T) {
	amount := coins(10)
	lowPrice := coins(5)
	highPrice := coins(10)

	low := RedeemStableAmount(chainparams.VersionV5, lowPrice, lowPrice, amount)
	high := RedeemStableAmount(chainparams.VersionV5, highPrice, highPrice, amount)
	if high.Lt(low) {
		t.Fatalf("higher redeem-stable price gave smaller amount: low=%s high=%s", low, high)
	}
}

func TestConvertAmountDispatch(t *testing.T) {
	p := Prices{Stable: coins(1), StableMA: coins(1), Reserve: coins(1), ReserveMA: coins(1)}
	amount := coins(10)
	if ConvertAmount(chainparams.VersionV5, Transfer, p, amount) != nil {
		t.Fatal("ConvertAmount should return nil for a plain transfer")
	}
	if ConvertAmount(chainparams.VersionV5, MintStable, p, amount) == nil {
		t.Fatal("ConvertAmount should return a value for MINT_STABLE")
	}
}
