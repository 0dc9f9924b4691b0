// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"

	"github.com/luxfi/zephcore/asset"
)

// TransactionType is the classification a transaction is assigned once
// its input and output asset sets have been checked against §4.G.
type TransactionType uint8

const (
	Transfer TransactionType = iota
	StableTransfer
	ReserveTransfer
	MintStable
	RedeemStable
	MintReserve
	RedeemReserve
)

func (tt TransactionType) String() string {
	switch tt {
	case Transfer:
		return "TRANSFER"
	case StableTransfer:
		return "STABLE_TRANSFER"
	case ReserveTransfer:
		return "RESERVE_TRANSFER"
	case MintStable:
		return "MINT_STABLE"
	case RedeemStable:
		return "REDEEM_STABLE"
	case MintReserve:
		return "MINT_RESERVE"
	case RedeemReserve:
		return "REDEEM_RESERVE"
	default:
		return "UNKNOWN"
	}
}

// transactionTypeFor maps a (source, destination) asset pair to its
// transaction type, per the table in §4.G. The zero bool return
// indicates the pair is not a legal combination (e.g. ZEPHUSD<->ZEPHRSV).
func transactionTypeFor(source, destination asset.Type) (TransactionType, bool) {
	switch {
	case source == asset.Zeph && destination == asset.Zeph:
		return Transfer, true
	case source == asset.ZephUSD && destination == asset.ZephUSD:
		return StableTransfer, true
	case source == asset.ZephRsv && destination == asset.ZephRsv:
		return ReserveTransfer, true
	case source == asset.Zeph && destination == asset.ZephUSD:
		return MintStable, true
	case source == asset.ZephUSD && destination == asset.Zeph:
		return RedeemStable, true
	case source == asset.Zeph && destination == asset.ZephRsv:
		return MintReserve, true
	case source == asset.ZephRsv && destination == asset.Zeph:
		return RedeemReserve, true
	default:
		return 0, false
	}
}

// Classification is the result of classifying a transaction: its type
// and the source/destination assets that produced it.
type Classification struct {
	Type        TransactionType
	Source      asset.Type
	Destination asset.Type
}

// Classify derives a transaction's type from its input and output asset
// multisets, per §4.G. Only distinctness of asset types matters, not
// multiplicity, so inputs and outputs are passed as the set of asset
// types present among the transaction's inputs and outputs respectively.
// isMiner asserts the transaction is a block reward, whose input set is
// conventionally {ZEPH}.
func Classify(inputs, outputs []asset.Type, isMiner bool) (Classification, error) {
	for _, t := range inputs {
		if !t.IsValid() {
			return Classification{}, newError(KindUnsupportedAsset, fmt.Sprintf("unsupported input asset tag %d", t))
		}
	}
	for _, t := range outputs {
		if !t.IsValid() {
			return Classification{}, newError(KindUnsupportedAsset, fmt.Sprintf("unsupported output asset tag %d", t))
		}
	}

	inSet := distinct(inputs)
	if len(inSet) != 1 {
		return Classification{}, newError(KindInvalidClassification,
			fmt.Sprintf("transaction inputs must be exactly one asset type, got %d", len(inSet)))
	}
	source := inSet[0]
	if isMiner {
		if source != asset.Zeph {
			return Classification{}, newError(KindInvalidClassification, "miner transaction inputs must be ZEPH")
		}
		// Reward outputs always classify as a ZEPH transfer; reward-
		// amount validation is out of scope here.
		return Classification{Type: Transfer, Source: asset.Zeph, Destination: asset.Zeph}, nil
	}

	outSet := distinct(outputs)
	switch len(outSet) {
	case 0:
		return Classification{}, newError(KindInvalidClassification, "transaction has no outputs")
	case 1:
		destination := outSet[0]
		if destination != source {
			return Classification{}, newError(KindInvalidClassification,
				"single output asset must match the input asset (conversion without change)")
		}
		tt, ok := transactionTypeFor(source, destination)
		if !ok {
			return Classification{}, newError(KindInvalidClassification, "unmapped asset pair")
		}
		return Classification{Type: tt, Source: source, Destination: destination}, nil
	case 2:
		var destination asset.Type
		matchesSource := 0
		for _, o := range outSet {
			if o == source {
				matchesSource++
			} else {
				destination = o
			}
		}
		if matchesSource != 1 {
			return Classification{}, newError(KindInvalidClassification,
				"with two output asset types, exactly one must equal the input asset")
		}
		tt, ok := transactionTypeFor(source, destination)
		if !ok {
			return Classification{}, newError(KindInvalidClassification,
				fmt.Sprintf("unsupported conversion pair %s -> %s", source, destination))
		}
		return Classification{Type: tt, Source: source, Destination: destination}, nil
	default:
		return Classification{}, newError(KindInvalidClassification,
			fmt.Sprintf("transaction outputs must name one or two asset types, got %d", len(outSet)))
	}
}

// distinct returns the set of distinct asset types present in types, in
// first-seen order. Classification is deliberately insensitive to
// ordering and multiplicity of the input slice.
func distinct(types []asset.Type) []asset.Type {
	seen := make(map[asset.Type]bool, len(types))
	out := make([]asset.Type, 0, len(types))
	for _, t := range types {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
