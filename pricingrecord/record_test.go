// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// The oracle key is 512-bit RSA; the standard library refuses keys
// under 1024 bits unless rsa1024min=0 is set.
//go:debug rsa1024min=0

package pricingrecord

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/luxfi/zephcore/chainparams"
)

func TestCacheKeyDistinguishesContent(t *testing.T) {
	a := &Record{Spot: 1, MovingAverage: 1, Stable: 1, StableMA: 1, Reserve: 1, ReserveMA: 1, Timestamp: 1}
	b := &Record{Spot: 2, MovingAverage: 1, Stable: 1, StableMA: 1, Reserve: 1, ReserveMA: 1, Timestamp: 1}
	if a.CacheKey(chainparams.VersionDjed) == b.CacheKey(chainparams.VersionDjed) {
		t.Fatal("differing records must not collide")
	}
	if a.CacheKey(chainparams.VersionDjed) != a.CacheKey(chainparams.VersionDjed) {
		t.Fatal("CacheKey must be deterministic for the same record and version")
	}
}

func TestEncodeParseRoundTripLegacy(t *testing.T) {
	r := &Record{Timestamp: 12345}
	data := r.Encode(chainparams.VersionGenesis)
	if len(data) != legacyLayoutSize {
		t.Fatalf("legacy layout size = %d, want %d", len(data), legacyLayoutSize)
	}
	got, err := Parse(chainparams.VersionGenesis, data)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsEmpty() {
		t.Fatalf("legacy parse should always yield an empty record, got %+v", got)
	}
}

func TestEncodeParseRoundTripSevenField(t *testing.T) {
	r := &Record{
		Spot: 1, MovingAverage: 2, Stable: 3, StableMA: 4,
		Reserve: 5, ReserveMA: 6, Timestamp: 7,
	}
	for i := range r.Signature {
		r.Signature[i] = byte(i)
	}
	data := r.Encode(chainparams.VersionDjed)
	if len(data) != 120 {
		t.Fatalf("seven-field layout size = %d, want 120", len(data))
	}
	got, err := Parse(chainparams.VersionDjed, data)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *r {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, r)
	}
}

func TestEncodeParseRoundTripTenField(t *testing.T) {
	r := &Record{
		Spot: 1, MovingAverage: 2, Stable: 3, StableMA: 4,
		Reserve: 5, ReserveMA: 6, ReserveRatio: 7, ReserveRatioMA: 8,
		YieldPriceReserved: 9, Timestamp: 10,
	}
	for i := range r.Signature {
		r.Signature[i] = byte(255 - i)
	}
	data := r.Encode(chainparams.VersionPRUpdate)
	if len(data) != 144 {
		t.Fatalf("ten-field layout size = %d, want 144", len(data))
	}
	got, err := Parse(chainparams.VersionPRUpdate, data)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *r {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, r)
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	if _, err := Parse(chainparams.VersionDjed, make([]byte, 10)); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

// generateOracleKey produces a 512-bit RSA keypair and its PEM-encoded
// public key, matching the network's compiled-in oracle key format.
func generateOracleKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 512)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return priv, pemBytes
}

func sign(t *testing.T, priv *rsa.PrivateKey, v chainparams.Version, r *Record) [SignatureSize]byte {
	t.Helper()
	digest := sha256.Sum256(CanonicalMessage(v, r))
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatal(err)
	}
	var out [SignatureSize]byte
	copy(out[:], sig)
	return out
}

func TestValidRecordScenario(t *testing.T) {
	priv, pubPEM := generateOracleKey(t)
	network := chainparams.NewNetworkConfig("test", pubPEM, []chainparams.Activation{
		{Version: chainparams.VersionDjed, Height: 0, Time: 0},
	})

	r := &Record{
		Spot: 1, MovingAverage: 1, Stable: 1, StableMA: 1,
		Reserve: 1, ReserveMA: 1, Timestamp: 1_000,
	}
	r.Signature = sign(t, priv, chainparams.VersionDjed, r)

	if err := r.Valid(network, chainparams.VersionDjed, 1_010, 990); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestInvalidSignatureRejected(t *testing.T) {
	_, pubPEM := generateOracleKey(t)
	network := chainparams.NewNetworkConfig("test", pubPEM, []chainparams.Activation{
		{Version: chainparams.VersionDjed, Height: 0, Time: 0},
	})
	r := &Record{
		Spot: 1, MovingAverage: 1, Stable: 1, StableMA: 1,
		Reserve: 1, ReserveMA: 1, Timestamp: 1_000,
	}
	// Signature left zeroed: never produced by the real private key.
	if err := r.Valid(network, chainparams.VersionDjed, 1_010, 990); err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestStaleTimestampRejected(t *testing.T) {
	priv, pubPEM := generateOracleKey(t)
	network := chainparams.NewNetworkConfig("test", pubPEM, []chainparams.Activation{
		{Version: chainparams.VersionDjed, Height: 0, Time: 0},
	})
	r := &Record{
		Spot: 1, MovingAverage: 1, Stable: 1, StableMA: 1,
		Reserve: 1, ReserveMA: 1, Timestamp: 1_000,
	}
	r.Signature = sign(t, priv, chainparams.VersionDjed, r)

	farBlockTime := int64(1_000 + chainparams.PricingRecordValidTimeDiffFromBlock + 1)
	if err := r.Valid(network, chainparams.VersionDjed, farBlockTime, 990); err == nil {
		t.Fatal("expected stale timestamp rejection")
	}
}

func TestMissingRatesRejected(t *testing.T) {
	priv, pubPEM := generateOracleKey(t)
	network := chainparams.NewNetworkConfig("test", pubPEM, []chainparams.Activation{
		{Version: chainparams.VersionPRUpdate, Height: 0, Time: 0},
	})
	// Ten-field layout without a reserve ratio: missing a required rate.
	r := &Record{
		Spot: 1, MovingAverage: 1, Stable: 1, StableMA: 1,
		Reserve: 1, ReserveMA: 1, Timestamp: 1_000,
	}
	r.Signature = sign(t, priv, chainparams.VersionPRUpdate, r)

	if err := r.Valid(network, chainparams.VersionPRUpdate, 1_010, 990); err == nil {
		t.Fatal("expected missing-rates rejection")
	}
}

// TestZeroRatesNonZeroSignatureIsNotEmpty covers the half-populated
// record §3 requires to be rejected: zero rate fields alone do not make
// a record an empty "no quote yet" marker if the signature is non-zero.
func TestZeroRatesNonZeroSignatureIsNotEmpty(t *testing.T) {
	r := &Record{}
	r.Signature[0] = 1
	if r.IsEmpty() {
		t.Fatal("a record with a non-zero signature must not be reported empty")
	}

	network := chainparams.NewNetworkConfig("test", nil, []chainparams.Activation{
		{Version: chainparams.VersionV5, Height: 0, Time: 0},
	})
	r.Timestamp = 1_000
	err := r.Valid(network, chainparams.VersionV5, 1_000, 990)
	if !errors.Is(err, ErrMissingRates) {
		t.Fatalf("half-populated record should be rejected as missing rates, got %v", err)
	}
}

func TestEmptyRecordValidAtAnyVersion(t *testing.T) {
	network := chainparams.NewNetworkConfig("test", nil, []chainparams.Activation{
		{Version: chainparams.VersionV5, Height: 0, Time: 0},
	})
	r := &Record{}
	if err := r.Valid(network, chainparams.VersionV5, 1_000, 990); err != nil {
		t.Fatalf("empty record should be valid as a no-quote marker, got %v", err)
	}
}
