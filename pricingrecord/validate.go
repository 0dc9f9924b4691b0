// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricingrecord

import (
	"errors"
	"fmt"

	"github.com/luxfi/zephcore/chainparams"
)

// Sentinel errors for pricing-record validation. Callers that need the
// specific failure reason should use errors.Is against these. Valid
// returns every one of them except ErrEmptyRecord: it accepts an empty
// record at every version.
var (
	ErrEmptyRecord         = errors.New("pricingrecord: empty record at a version that requires rates")
	ErrMissingRates        = errors.New("pricingrecord: record is missing a rate required at this version")
	ErrStaleTimestamp      = errors.New("pricingrecord: record timestamp is too far from the block timestamp")
	ErrTimestampBeforePrev = errors.New("pricingrecord: record timestamp precedes the previous block's timestamp")
	ErrBadSignature        = errors.New("pricingrecord: signature verification failed")
)

// IsEmpty reports whether r carries no oracle data at all: every numeric
// field is zero AND the signature is all-zero. A legacy (pre-Djed) parse
// always produces an empty record; at Djed and later Valid also accepts
// an empty record, as a "no quote yet" marker.
// A record with zero rates but a non-zero signature is NOT empty: it is
// a corrupt, half-populated record that must be rejected by Valid, not
// waved through as "no quote yet".
func (r *Record) IsEmpty() bool {
	return r.Spot == 0 && r.MovingAverage == 0 && r.Stable == 0 && r.StableMA == 0 &&
		r.Reserve == 0 && r.ReserveMA == 0 && r.ReserveRatio == 0 && r.ReserveRatioMA == 0 &&
		r.YieldPriceReserved == 0 && r.Timestamp == 0 && r.signatureIsZero()
}

// signatureIsZero reports whether every byte of the signature is zero.
func (r *Record) signatureIsZero() bool {
	for _, b := range r.Signature {
		if b != 0 {
			return false
		}
	}
	return true
}

// HasMissingRates reports whether r lacks a rate the wire format at
// version v actually carries. The required set grows with the binary
// layout: the ten-field layout (v >= HF_VERSION_PR_UPDATE) also requires
// the reserve-ratio pair to be non-zero.
func (r *Record) HasMissingRates(v chainparams.Version) bool {
	if v < chainparams.VersionDjed {
		return false // legacy records carry no rates to miss
	}
	if r.Spot == 0 || r.MovingAverage == 0 || r.Stable == 0 || r.StableMA == 0 ||
		r.Reserve == 0 || r.ReserveMA == 0 {
		return true
	}
	if v >= chainparams.VersionPRUpdate {
		if r.ReserveRatio == 0 || r.ReserveRatioMA == 0 {
			return true
		}
	}
	return false
}

// Valid checks r for admission into a block at version v, given the
// timestamp of the block it is attached to and the timestamp of the
// previous block. It returns nil if r is acceptable.
//
// A legacy (pre-Djed) record is always valid: it carries no rates to
// check, per §6. From Djed onward, an empty record is valid only as a
// degenerate "no quote yet" marker; a non-empty record must carry every
// rate the wire format requires and fall within the network's timestamp
// tolerance, and its signature must verify against the network's oracle
// key.
func (r *Record) Valid(network *chainparams.NetworkConfig, v chainparams.Version, blockTimestamp, prevBlockTimestamp int64) error {
	if v < chainparams.VersionDjed {
		return nil
	}
	if r.IsEmpty() {
		return nil
	}
	if r.HasMissingRates(v) {
		return fmt.Errorf("%w: version %d", ErrMissingRates, v)
	}
	if int64(r.Timestamp) < prevBlockTimestamp {
		return ErrTimestampBeforePrev
	}
	diff := blockTimestamp - int64(r.Timestamp)
	if diff < 0 {
		diff = -diff
	}
	if diff > chainparams.PricingRecordValidTimeDiffFromBlock {
		return fmt.Errorf("%w: |%d| > %d seconds", ErrStaleTimestamp, diff, chainparams.PricingRecordValidTimeDiffFromBlock)
	}
	ok, err := VerifySignature(network.OraclePublicKeyPEM, v, r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if !ok {
		return ErrBadSignature
	}
	return nil
}
