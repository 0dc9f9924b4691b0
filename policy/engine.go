// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"github.com/holiman/uint256"
	log "github.com/luxfi/log"

	"github.com/luxfi/zephcore/chainparams"
	"github.com/luxfi/zephcore/pricingrecord"
	"github.com/luxfi/zephcore/supply"
)

// Engine pairs the stateless reserve-ratio guard with a logger. Admit
// itself stays a pure function; Engine is the thin, optional seam a host
// node's validation pipeline plugs a logger into. Engine.Admit does not
// log the decision; a caller records it through Logger().
type Engine struct {
	log log.Logger
}

// NewEngine returns an Engine with a default test logger, the same
// construction the wider monorepo uses when no caller-supplied logger
// is wired in yet.
func NewEngine() *Engine {
	return &Engine{log: log.NewTestLogger(log.InfoLevel)}
}

// NewEngineWithLogger returns an Engine that logs through l.
func NewEngineWithLogger(l log.Logger) *Engine {
	return &Engine{log: l}
}

// Logger returns the Engine's logger, so a host pipeline can record
// the outcome of Admit with its own structured fields without this
// package needing to guess at a call convention it doesn't own.
func (e *Engine) Logger() log.Logger {
	return e.log
}

// Admit evaluates the reserve-ratio guard. It delegates to the
// package-level Admit; Engine only carries the logger a caller wants
// attached to the decision.
func (e *Engine) Admit(v chainparams.Version, circ *supply.Snapshot, pr *pricingrecord.Record, ratioHistory []*uint256.Int, tt TransactionType, tally Tally) (bool, string) {
	return Admit(v, circ, pr, ratioHistory, tt, tally)
}
