// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"
	"math"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// pinLogOdds is the |log-odds| threshold beyond which an atom is pinned:
// past it, fromLogOdds would otherwise underflow/overflow toward 0 or 1
// without ever quite reaching a value exactly comparable to 1.
const pinLogOdds = 7.0

// ProbVector is p ∈ [0,1]ⁿ, the per-atom belief that the atom is required
// for failure, threaded through explicitly rather than kept as package
// state.
type ProbVector struct {
	logOdds []float64
	pinned  []bool
}

// NewProbVector returns a vector of n atoms, uniformly initialized to
// pᵢ = 0.5 (log-odds 0).
func NewProbVector(n int) ProbVector {
	return ProbVector{logOdds: make([]float64, n), pinned: make([]bool, n)}
}

func toLogOdds(p float64) float64 {
	const eps = 1e-12
	if p <= 0 {
		p = eps
	}
	if p >= 1 {
		p = 1 - eps
	}
	return math.Log(p / (1 - p))
}

func fromLogOdds(lo float64) float64 {
	return 1 / (1 + math.Exp(-lo))
}

// P returns pᵢ.
func (v ProbVector) P(i int) float64 {
	if v.pinned[i] {
		return 1
	}
	return fromLogOdds(v.logOdds[i])
}

// Pinned reports whether atom i has converged to required.
func (v ProbVector) Pinned(i int) bool {
	return v.pinned[i]
}

// pin marks atom i as pinned to pᵢ = 1 (required, never trial-removed
// again). Once pinned, stays pinned.
func (v *ProbVector) pin(i int) {
	v.pinned[i] = true
	v.logOdds[i] = pinLogOdds
}

// drop marks atom i as pᵢ = 0 (ruled out, dropped permanently).
func (v *ProbVector) drop(i int) {
	v.logOdds[i] = -pinLogOdds
}

func (v ProbVector) isDropped(i int) bool {
	return !v.pinned[i] && v.logOdds[i] <= -pinLogOdds
}

// update applies a Bayesian update for a PASS verdict on trial set trial:
// each i in trial has its posterior updated by the likelihood ratio
// derived from π_{T\{i}}, the prior that none of the rest of the trial
// set is required.
func (v *ProbVector) update(trial []int) {
	// π_T = ∏_{j∈T}(1-p_j); compute once, then divide out p_i's factor to
	// get π_{T\{i}} for each i without recomputing the whole product.
	logPiT := 0.0
	for _, i := range trial {
		logPiT += math.Log(1 - v.P(i))
	}

	for _, i := range trial {
		pi := v.P(i)
		logPiRest := logPiT - math.Log(1-pi)
		piRest := math.Exp(logPiRest)
		denom := pi + (1-pi)*(1-piRest)
		if denom <= 0 {
			continue
		}
		newP := pi / denom
		v.logOdds[i] = toLogOdds(newP)
	}
}

// epsilonPin pins every unpinned atom whose posterior pᵢ ≥ 1-epsilon.
func (v *ProbVector) epsilonPin(epsilon float64) {
	threshold := toLogOdds(1 - epsilon)
	for i := range v.logOdds {
		if !v.pinned[i] && v.logOdds[i] >= threshold {
			v.pin(i)
		}
	}
}

// selectTrial builds the trial removal set: order unpinned, non-dropped
// atoms by ascending pᵢ and take the shortest prefix T for which
// 1 - π_T, with π_T = ∏(1-pᵢ), reaches tau (or all of them if none does).
func selectTrial(v ProbVector, live []int, tau float64) []int {
	ordered := append([]int{}, live...)
	// simple insertion sort by ascending P(i); live sets are small
	// relative to typical oracle latency, so O(n²) here is not the
	// bottleneck.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && v.P(ordered[j]) < v.P(ordered[j-1]); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	var trial []int
	piT := 1.0
	for _, i := range ordered {
		piT *= 1 - v.P(i)
		trial = append(trial, i)
		if 1-piT >= tau {
			break
		}
	}
	return trial
}

func liveAtoms(v ProbVector, n int) []int {
	var live []int
	for i := 0; i < n; i++ {
		if !v.pinned[i] && !v.isDropped(i) {
			live = append(live, i)
		}
	}
	return live
}

// ProbDD runs the probability-driven reducer: it maintains a per-atom
// belief that the atom is required for failure, tries removing batches of
// low-belief atoms, and updates beliefs from the oracle's verdict.
// tau/epsilon/stallK default from d.cfg.ProbDDTau/Epsilon/StallK (stallK
// resolves to 2n when zero). After termination it runs a single DDMin
// pass on the survivors to certify 1-minimality regardless of how much
// convergence the belief update achieved. If ctx is cancelled or
// cfg.TimeBudget elapses first, it returns the best configuration found
// so far alongside core.ErrCancelled.
func (d *Driver) ProbDD(ctx context.Context, model input.Model) (Solution, error) {
	full, err := d.checkInitial(ctx, model)
	if err != nil {
		return Solution{}, err
	}
	cancelled := func() bool { return d.cancelled(ctx) }

	n := model.Size()
	tau := d.cfg.ProbDDTau
	if tau == 0 {
		tau = 0.7
	}
	epsilon := d.cfg.ProbDDEpsilon
	if epsilon == 0 {
		epsilon = 1e-3
	}
	stallK := d.cfg.ProbDDStallK
	if stallK == 0 {
		stallK = 2 * n
	}

	v := NewProbVector(n)
	stall := 0

	for !cancelled() {
		live := liveAtoms(v, n)
		if len(live) == 0 {
			break
		}

		allConverged := true
		for _, i := range live {
			if v.P(i) < 1-epsilon {
				allConverged = false
				break
			}
		}
		if allConverged || stall >= stallK {
			break
		}

		trial := selectTrial(v, live, tau)
		if len(trial) == 0 {
			stall++
			continue
		}

		var current []int
		for _, i := range full.Indices() {
			if !v.isDropped(i) {
				current = append(current, i)
			}
		}
		kept := removeIndices(current, trial)
		verdict := d.query(ctx, model, toBitseq(n, kept))

		progressed := false
		switch verdict {
		case core.Fail:
			for _, i := range trial {
				v.drop(i)
			}
			progressed = true
		case core.Pass:
			v.update(trial)
			progressed = true
		case core.Unresolved:
			// leave p unchanged
		}

		v.epsilonPin(epsilon)

		if progressed {
			stall = 0
		} else {
			stall++
		}
	}

	// The surviving candidate is every atom that is not dropped: pinned
	// (required) atoms and any still-live, unconverged atoms.
	var kept []int
	for _, i := range full.Indices() {
		if !v.isDropped(i) {
			kept = append(kept, i)
		}
	}

	queryFn := func(bs core.Bitseq) core.Verdict {
		return d.query(ctx, model, bs)
	}
	certified := ddminSequence(cancelled, n, kept, 2, queryFn, d.seen, d.cfg.Filter)

	ctxDone, timedOut := d.stopReason(ctx)
	sol := d.finish(toBitseq(n, certified), ctxDone, timedOut)
	if ctxDone || timedOut {
		return sol, core.ErrCancelled
	}
	return sol, nil
}

// removeIndices returns full minus the indices in remove; ProbDD calls it
// with the surviving atoms as full to build the candidate c' = c \ T.
func removeIndices(full, remove []int) []int {
	drop := make(map[int]bool, len(remove))
	for _, i := range remove {
		drop[i] = true
	}
	var kept []int
	for _, i := range full {
		if !drop[i] {
			kept = append(kept, i)
		}
	}
	return kept
}
