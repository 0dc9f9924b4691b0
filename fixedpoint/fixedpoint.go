// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixedpoint implements the 128-bit arithmetic kernel shared by
// every price and conversion step in the monetary-policy core. All
// consensus paths compute in scaled integers rather than floating point,
// including the reserve-ratio guard in the policy package at every
// version.
//
// Division truncates toward zero. A computed rate that overflows 64 bits
// is clamped to zero rather than propagated, since callers treat a zero
// price as a fatal input to downstream checks.
package fixedpoint

import (
	"github.com/holiman/uint256"
)

// Coin is 10^12, the number of atomic units in one whole coin.
var Coin = uint256.NewInt(1_000_000_000_000)

// QuantizeStep is the modulus used to zero the low-order decimal digits
// of a computed rate before it is multiplied by a user-supplied amount.
var QuantizeStep = uint256.NewInt(10_000)

// maxUint64 is the clamp boundary: a rate or amount that cannot be
// represented in 64 bits is consensus-invalid and degrades to zero.
var maxUint64 = new(uint256.Int).SetUint64(^uint64(0))

// Zero returns a fresh zero-valued 128-bit integer. Every exported
// function here returns a newly allocated value; none mutate their
// arguments.
func Zero() *uint256.Int { return new(uint256.Int) }

// FromUint64 lifts a 64-bit atomic amount into the 128-bit domain.
func FromUint64(v uint64) *uint256.Int { return new(uint256.Int).SetUint64(v) }

// ClampUint64 returns x unchanged if it fits in 64 bits, else zero. This
// is the overflow policy described in §4.A: results exceeding 2^64-1
// degrade to zero rather than abort.
func ClampUint64(x *uint256.Int) *uint256.Int {
	if x.Gt(maxUint64) {
		return Zero()
	}
	return new(uint256.Int).Set(x)
}

// Overflowed reports whether x exceeds the 64-bit consensus range. Used
// where a caller must distinguish a genuine zero result from a clamped
// overflow before applying a price floor.
func Overflowed(x *uint256.Int) bool {
	return x.Gt(maxUint64)
}

// Quantize truncates the low four decimal digits of a rate: x ← x −
// (x mod 10_000). This keeps reserve-coin and stable-coin rates stable
// against rounding in the low digits and is consensus-critical — every
// per-unit price and conversion rate is quantized before being
// multiplied by a user-supplied amount.
func Quantize(x *uint256.Int) *uint256.Int {
	rem := new(uint256.Int).Mod(x, QuantizeStep)
	return new(uint256.Int).Sub(x, rem)
}

// MulDiv computes a*b/c with 256-bit intermediate precision, truncating
// toward zero, and clamps the result to zero on 64-bit overflow or
// division by zero. This is the core primitive behind every rate
// application in §4.E–§4.F.
func MulDiv(a, b, c *uint256.Int) *uint256.Int {
	if c.IsZero() {
		return Zero()
	}
	// uint256 does not overflow multiplying two 128-bit-range values
	// into 256 bits, so a plain Mul followed by Div is exact.
	num := new(uint256.Int).Mul(a, b)
	q := new(uint256.Int).Div(num, c)
	return ClampUint64(q)
}

// Mul multiplies two values and clamps to zero on 64-bit overflow.
func Mul(a, b *uint256.Int) *uint256.Int {
	return ClampUint64(new(uint256.Int).Mul(a, b))
}

// Min returns the smaller of a and b.
func Min(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int).Set(a)
	}
	return new(uint256.Int).Set(b)
}

// Max returns the larger of a and b.
func Max(a, b *uint256.Int) *uint256.Int {
	if a.Gt(b) {
		return new(uint256.Int).Set(a)
	}
	return new(uint256.Int).Set(b)
}

// SubFeeBps subtracts a basis-point fee from rate: rate − rate*feeBps/10_000,
// quantized. feeBps is out of 10_000 (e.g. 100 = 1%).
func SubFeeBps(rate *uint256.Int, feeBps uint64) *uint256.Int {
	fee := MulDiv(rate, FromUint64(feeBps), FromUint64(10_000))
	if fee.Gt(rate) {
		return Zero()
	}
	return Quantize(new(uint256.Int).Sub(rate, fee))
}

// ApplyRate computes amount*rate/Coin, the standard conversion of an
// atomic amount in the source asset into atomic units of the destination
// asset via a per-unit rate. Overflow clamps to zero.
func ApplyRate(amount, rate *uint256.Int) *uint256.Int {
	return MulDiv(amount, rate, Coin)
}
