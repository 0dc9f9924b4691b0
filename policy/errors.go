// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package policy implements the monetary-policy functions that sit atop
// the pricing record, the circulating-supply snapshot and the protocol
// parameters: derived pricing, conversion rates, transaction
// classification, the reserve-ratio guard and fee-asset equivalence.
// Every function here is pure and reentrant; none retain state across
// calls.
package policy

// Kind identifies the class of failure a policy function reports. It
// mirrors the error kinds surfaced by the core: callers branch on Kind
// rather than parsing Reason, which is for humans.
type Kind int

const (
	// KindInvalidClassification: the input/output asset multisets of a
	// transaction violate the classification rules.
	KindInvalidClassification Kind = iota
	// KindUnsupportedAsset: a tag outside the closed {ZEPH, ZEPHUSD,
	// ZEPHRSV} set was presented.
	KindUnsupportedAsset
	// KindReserveRatioViolation: a conversion was rejected by the
	// reserve-ratio guard. Admit reports its decision as (bool, string)
	// and does not construct an Error of this kind.
	KindReserveRatioViolation
)

// Error is the structured failure type returned by Classify. Reason is
// user-visible. The reserve-ratio guard (Admit) does not return an Error;
// its own reason string carries the numeric ratios that drove a
// ratio-based decision.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func newError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}
