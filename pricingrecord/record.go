// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pricingrecord implements the oracle-signed pricing quote
// carried by every block: its versioned binary layout, signature
// verification, and validity predicate. A record is immutable once
// parsed; every operation here is a pure function of the record, the
// protocol version, and (for validity) the surrounding block timestamps.
package pricingrecord

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/luxfi/zephcore/chainparams"
)

// SignatureSize is the size of the detached oracle signature in bytes.
// It is also the RSA modulus size for the network's 512-bit oracle key;
// see VerifySignature.
const SignatureSize = 64

// legacyLayoutSize is the byte length of the pre-Djed binary layout:
// three little-endian u64 fields whose values are discarded on read.
const legacyLayoutSize = 24

// Record is the in-memory form of an oracle pricing quote. All numeric
// fields are atomic-unit integers; see spec §3 for units.
type Record struct {
	Spot               uint64
	MovingAverage      uint64
	Stable             uint64
	StableMA           uint64
	Reserve            uint64
	ReserveMA          uint64
	ReserveRatio       uint64
	ReserveRatioMA     uint64
	YieldPriceReserved uint64 // reserved ZYIELD leg; parsed but never consulted, see §9 open question 1
	Timestamp          uint64
	Signature          [SignatureSize]byte
}

// layoutKind distinguishes the three binary encodings of §6.
type layoutKind uint8

const (
	layoutLegacy layoutKind = iota // < HF_VERSION_DJED: 24 bytes, mapped to empty
	layoutSeven                    // [HF_VERSION_DJED, HF_VERSION_PR_UPDATE): 7 u64 + 64-byte sig = 120 bytes
	layoutTen                      // >= HF_VERSION_PR_UPDATE: 10 u64 + 64-byte sig = 144 bytes
)

// layoutFor picks the wire encoding for a protocol version. See DESIGN.md
// for why the ten-field layout (and therefore the reserve-ratio fields)
// is taken to start exactly at HF_VERSION_PR_UPDATE rather than strictly
// after it: that is the only reading consistent with the required-field
// growth described in HasMissingRates.
func layoutFor(v chainparams.Version) layoutKind {
	switch {
	case v < chainparams.VersionDjed:
		return layoutLegacy
	case v < chainparams.VersionPRUpdate:
		return layoutSeven
	default:
		return layoutTen
	}
}

// EncodedSize returns the number of bytes Encode will produce at version v.
func EncodedSize(v chainparams.Version) int {
	switch layoutFor(v) {
	case layoutLegacy:
		return legacyLayoutSize
	case layoutSeven:
		return 7*8 + SignatureSize
	default:
		return 10*8 + SignatureSize
	}
}

// Parse decodes the versioned binary form of a pricing record. Legacy
// (pre-Djed) blobs are read for their length only; their field values
// are discarded and the returned record is always empty, per §6.
func Parse(v chainparams.Version, data []byte) (*Record, error) {
	want := EncodedSize(v)
	if len(data) != want {
		return nil, fmt.Errorf("pricingrecord: parse: want %d bytes at version %d, got %d", want, v, len(data))
	}

	switch layoutFor(v) {
	case layoutLegacy:
		return &Record{}, nil

	case layoutSeven:
		r := &Record{}
		r.Spot = le64(data[0:8])
		r.MovingAverage = le64(data[8:16])
		r.Stable = le64(data[16:24])
		r.StableMA = le64(data[24:32])
		r.Reserve = le64(data[32:40])
		r.ReserveMA = le64(data[40:48])
		r.Timestamp = le64(data[48:56])
		copy(r.Signature[:], data[56:56+SignatureSize])
		return r, nil

	default: // layoutTen
		r := &Record{}
		r.Spot = le64(data[0:8])
		r.MovingAverage = le64(data[8:16])
		r.Stable = le64(data[16:24])
		r.StableMA = le64(data[24:32])
		r.Reserve = le64(data[32:40])
		r.ReserveMA = le64(data[40:48])
		r.ReserveRatio = le64(data[48:56])
		r.ReserveRatioMA = le64(data[56:64])
		r.YieldPriceReserved = le64(data[64:72])
		r.Timestamp = le64(data[72:80])
		copy(r.Signature[:], data[80:80+SignatureSize])
		return r, nil
	}
}

// Encode serializes r into the versioned binary layout of §6. Round-
// tripping Parse(Encode(r)) reproduces r byte-for-byte at every version
// except legacy, whose layout never carries real field values.
func (r *Record) Encode(v chainparams.Version) []byte {
	switch layoutFor(v) {
	case layoutLegacy:
		buf := make([]byte, legacyLayoutSize)
		putLE64(buf[0:8], 0)
		putLE64(buf[8:16], 0)
		putLE64(buf[16:24], r.Timestamp)
		return buf

	case layoutSeven:
		buf := make([]byte, 7*8+SignatureSize)
		putLE64(buf[0:8], r.Spot)
		putLE64(buf[8:16], r.MovingAverage)
		putLE64(buf[16:24], r.Stable)
		putLE64(buf[24:32], r.StableMA)
		putLE64(buf[32:40], r.Reserve)
		putLE64(buf[40:48], r.ReserveMA)
		putLE64(buf[48:56], r.Timestamp)
		copy(buf[56:56+SignatureSize], r.Signature[:])
		return buf

	default:
		buf := make([]byte, 10*8+SignatureSize)
		putLE64(buf[0:8], r.Spot)
		putLE64(buf[8:16], r.MovingAverage)
		putLE64(buf[16:24], r.Stable)
		putLE64(buf[24:32], r.StableMA)
		putLE64(buf[32:40], r.Reserve)
		putLE64(buf[40:48], r.ReserveMA)
		putLE64(buf[48:56], r.ReserveRatio)
		putLE64(buf[56:64], r.ReserveRatioMA)
		putLE64(buf[64:72], r.YieldPriceReserved)
		putLE64(buf[72:80], r.Timestamp)
		copy(buf[80:80+SignatureSize], r.Signature[:])
		return buf
	}
}

// CacheKey hashes the record's versioned binary encoding with BLAKE3.
// It has no consensus meaning; callers outside the validation path
// (mempool, RPC) use it to deduplicate identical oracle quotes without
// re-parsing them.
func (r *Record) CacheKey(v chainparams.Version) [32]byte {
	return blake3.Sum256(r.Encode(v))
}

func le64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func putLE64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
