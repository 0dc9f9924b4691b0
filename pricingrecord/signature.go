// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricingrecord

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/zephcore/chainparams"
)

// CanonicalMessage rebuilds the exact byte sequence the oracle signed for
// r at version v. Up to and including HF_VERSION_PR_UPDATE the message
// carries the legacy moving_average field; from the version after that
// onward it is dropped, per §6.
//
// Field order and key names are part of the wire contract: this must
// never be reformatted, reordered, or pretty-printed differently than
// the oracle's own signer, or every signature will fail to verify.
func CanonicalMessage(v chainparams.Version, r *Record) []byte {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(`"spot":`)
	b.WriteString(strconv.FormatUint(r.Spot, 10))
	if v <= chainparams.VersionPRUpdate {
		b.WriteString(`,"moving_average":`)
		b.WriteString(strconv.FormatUint(r.MovingAverage, 10))
	}
	b.WriteString(`,"timestamp":`)
	b.WriteString(strconv.FormatUint(r.Timestamp, 10))
	b.WriteByte('}')
	return []byte(b.String())
}

// parseOraclePublicKey decodes a PEM-encoded RSA public key. Both the
// PKIX ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") block types are
// accepted since different network configs were compiled in from
// different tooling.
func parseOraclePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("pricingrecord: no PEM block found in oracle key")
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("pricingrecord: parse oracle public key: %w", err)
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("pricingrecord: oracle public key is not RSA")
	}
	return rsaKey, nil
}

// VerifySignature checks r.Signature against the oracle's PEM-encoded
// public key for the canonical message at version v. The signature
// scheme is RSASSA-PKCS1-v1_5 over a SHA-256 digest, matching the
// network's 512-bit oracle key and the fixed 64-byte (512-bit)
// signature size carried in every pricing record — this is a classical
// RSA scheme with no analogue among this module's other dependencies,
// so it is implemented directly against the standard library rather
// than substituted for a different signature scheme.
//
// The standard library's crypto/rsa refuses keys smaller than 1024 bits
// unless the running binary has GODEBUG rsa1024min=0; without it,
// verification against a 512-bit key fails and VerifySignature returns
// false.
func VerifySignature(oraclePublicKeyPEM []byte, v chainparams.Version, r *Record) (bool, error) {
	pub, err := parseOraclePublicKey(oraclePublicKeyPEM)
	if err != nil {
		return false, err
	}
	digest := sha256.Sum256(CanonicalMessage(v, r))
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], r.Signature[:]); err != nil {
		return false, nil
	}
	return true, nil
}
