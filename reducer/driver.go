// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"
	"time"

	"github.com/open-s4c/deltadbg/cache"
	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/oracle"
)

// Kind names one of the four delta debugging algorithms, used to select
// HDD's inner sequence reducer and by the benchmark harness's matrix.
type Kind int

const (
	// KindDDMin is the classical recursive bisection reducer.
	KindDDMin Kind = iota
	// KindTicTocMin is the bidirectional prefix/suffix sweep variant.
	KindTicTocMin
	// KindHDD is the hierarchical tree reducer.
	KindHDD
	// KindProbDD is the probabilistic belief-driven reducer.
	KindProbDD
)

func (k Kind) String() string {
	switch k {
	case KindDDMin:
		return "ddmin"
	case KindTicTocMin:
		return "tictocmin"
	case KindHDD:
		return "hdd"
	case KindProbDD:
		return "probdd"
	default:
		return "unknown"
	}
}

// Granularity names the atom granularity for file/string inputs.
type Granularity int

const (
	GranularityBytes Granularity = iota
	GranularityLines
	GranularityTokens
)

// Config holds the options recognized by the reducers.
type Config struct {
	Granularity     Granularity
	CacheEnabled    bool
	TimeBudget      time.Duration // zero means unbounded
	Filter          FilterStrategy
	ProbDDTau       float64       // default 0.7
	ProbDDEpsilon   float64       // default 1e-3
	ProbDDStallK    int           // default 2n, resolved against n at run time if zero
	HDDInnerReducer Kind          // KindDDMin or KindTicTocMin
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:    true,
		Filter:          FilterSubset,
		ProbDDTau:       0.7,
		ProbDDEpsilon:   1e-3,
		HDDInnerReducer: KindDDMin,
	}
}

// Driver coordinates a single reduction run: it owns the oracle, the
// verdict cache, the run's counters, and the seen-set deduplication
// filter, exactly one of which (the cache) is shared state for the run's
// lifetime.
type Driver struct {
	cfg      Config
	oracle   oracle.Oracle
	cache    cache.Cache
	counters core.Counters
	seen     seenSet
}

// NewDriver returns a Driver querying o through c when cfg.CacheEnabled is
// set; a nil c then gets a fresh SingleFlightCache. When cfg.CacheEnabled
// is false, c is ignored and no cache is used.
func NewDriver(cfg Config, o oracle.Oracle, c cache.Cache) *Driver {
	if cfg.CacheEnabled && c == nil {
		c = cache.NewSingleFlightCache()
	}
	if !cfg.CacheEnabled {
		c = nil
	}
	return &Driver{cfg: cfg, oracle: o, cache: c, seen: newSeenSet()}
}

// Counters returns the run's accumulated counters.
func (d *Driver) Counters() core.Counters {
	return d.counters
}

// query evaluates bs against model, through the cache when enabled, and
// folds the result into the run's counters. The cache key is a digest of
// the materialized candidate's string form, so index sets of different
// Models (HDD's per-level models share one cache) never share a verdict
// unless they materialize identically.
func (d *Driver) query(ctx context.Context, model input.Model, bs core.Bitseq) core.Verdict {
	cand := model.Materialize(bs)
	fp := core.FingerprintBytes([]byte(cand.String()))
	eval := func(ctx context.Context) core.Verdict {
		return d.oracle.Query(ctx, cand)
	}

	if d.cache == nil {
		v := eval(ctx)
		d.counters.Record(v, false)
		return v
	}

	before := d.cache.Hits()
	v := d.cache.Query(ctx, fp, eval)
	hit := d.cache.Hits() > before
	d.counters.Record(v, hit)
	d.counters.Inconsistent = d.cache.Inconsistencies()
	return v
}

// budgetExceeded reports whether cfg.TimeBudget has elapsed since the run
// began.
func (d *Driver) budgetExceeded() bool {
	if d.cfg.TimeBudget <= 0 {
		return false
	}
	return d.counters.Elapsed() > d.cfg.TimeBudget
}

// cancelled reports whether ctx has been cancelled or cfg.TimeBudget has
// elapsed since the run began. Every reducer's outer loop checks this once
// per iteration and stops, reporting the best configuration found so far,
// as soon as it turns true.
func (d *Driver) cancelled(ctx context.Context) bool {
	return ctx.Err() != nil || d.budgetExceeded()
}

// stopReason reports which of the two ways a run can stop early applies
// right now: ctxDone if ctx itself was cancelled or its deadline expired,
// timedOut if cfg.TimeBudget elapsed. Both can be true at once; finish
// records them separately so a caller can tell "ran out of its own time
// budget" from "the caller gave up on it".
func (d *Driver) stopReason(ctx context.Context) (ctxDone, timedOut bool) {
	return ctx.Err() != nil, d.budgetExceeded()
}

// checkInitial verifies the contract that the full configuration is FAIL.
// A zero-atom model has no candidate to reduce at all, core.ErrEmptyCandidate;
// a full configuration that does not verdict FAIL is a core.ContractViolation
// wrapping core.ErrNotFailing.
func (d *Driver) checkInitial(ctx context.Context, model input.Model) (core.Bitseq, error) {
	n := model.Size()
	if n == 0 {
		return core.Bitseq{}, core.ErrEmptyCandidate
	}
	full := core.NewBitseq(n).SetRange(0, n-1)
	d.counters.Begin(n)

	v := d.query(ctx, model, full)
	if v != core.Fail {
		return full, core.NewContractViolation(core.FingerprintBitseq(full), core.ErrNotFailing)
	}
	return full, nil
}

// finish finalizes the run's counters against the given final
// configuration and logs a terse one-line summary.
func (d *Driver) finish(final core.Bitseq, ctxDone, timedOut bool) Solution {
	d.counters.Cancelled = ctxDone
	d.counters.TimedOut = timedOut
	d.counters.Finish(final.Ones())
	logger.Debugf("reduction finished: %v", d.counters)
	return Solution{
		Bitseq:   final,
		Verdict:  core.Fail,
		Elapsed:  d.counters.Elapsed(),
		Counters: d.counters,
	}
}
