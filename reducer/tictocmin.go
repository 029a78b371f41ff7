// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// tictocState holds the three index-set accumulators TicTocMin sweeps
// between: pre and post are committed (kept) atoms on either end of the
// still-shrinking middle fragment.
type tictocState struct {
	pre, mid, post []int
}

func (s tictocState) assemble() []int {
	return append(append(append([]int{}, s.pre...), s.mid...), s.post...)
}

// removeLastChar trial-removes the last atom of mid; on FAIL it stays
// removed, otherwise it is reinstated at the front of post. Ported from
// _remove_last_char.
func removeLastChar(bits int, s tictocState, queryFn func(core.Bitseq) core.Verdict) tictocState {
	if len(s.mid) == 0 {
		return s
	}
	last := s.mid[len(s.mid)-1]
	conf := s.mid[:len(s.mid)-1]
	trial := append(append(append([]int{}, s.pre...), conf...), s.post...)

	v := queryFn(toBitseq(bits, trial))
	if v == core.Fail {
		return tictocState{pre: s.pre, mid: conf, post: s.post}
	}
	return tictocState{pre: s.pre, mid: conf, post: append([]int{last}, s.post...)}
}

// removeCheckEachFragment removes consecutive fragments of length from mid
// whose absence still keeps the overall candidate FAIL, and counts how
// many fragments were tried (the deficit input for the backward catch-up
// sweep). Ported from _remove_check_each_fragment.
func removeCheckEachFragment(bits int, s tictocState, length int,
	queryFn func(core.Bitseq) core.Verdict) ([]int, int) {
	var kept []int
	count := 0

	for i := 0; i < len(s.mid); i += length {
		end := i + length
		if end > len(s.mid) {
			end = len(s.mid)
		}
		removed := s.mid[i:end]
		remaining := s.mid[end:]

		trial := append(append(append(append([]int{}, s.pre...), kept...), remaining...), s.post...)
		v := queryFn(toBitseq(bits, trial))
		if v != core.Fail {
			kept = append(kept, removed...)
		}
		count++
	}

	deficit := count - (len(s.mid) - len(kept))
	if deficit < 0 {
		deficit = 0
	}
	return kept, deficit
}

// ticTocMinSequence runs the full alternating prefix/suffix sweep over the
// index set c. cancelled is polled once per outer iteration.
func ticTocMinSequence(cancelled func() bool, bits int, c []int, queryFn func(core.Bitseq) core.Verdict) []int {
	length := len(c) / 2
	count := 0
	deficit := 0
	s := tictocState{mid: append([]int{}, c...)}

	for length > 0 && len(s.mid) > 0 {
		if cancelled() {
			return s.assemble()
		}
		if count%2 != 0 {
			for i := 0; i < deficit; i++ {
				s = removeLastChar(bits, s, queryFn)
			}
			deficit = 0
		} else {
			kept, def := removeCheckEachFragment(bits, s, length, queryFn)
			if len(kept) == len(s.mid) {
				length /= 2
			}
			s.mid = kept
			deficit = def
		}
		count++
	}

	return s.assemble()
}

// TicTocMin runs the bidirectional prefix/suffix sweep reducer: it walks
// in from both ends of the configuration, alternating a full sweep that
// tries dropping each remaining fragment with a tail-trimming pass, until
// a full pass removes nothing more. If ctx is cancelled or cfg.TimeBudget
// elapses first, it returns the best configuration found so far alongside
// core.ErrCancelled.
func (d *Driver) TicTocMin(ctx context.Context, model input.Model) (Solution, error) {
	full, err := d.checkInitial(ctx, model)
	if err != nil {
		return Solution{}, err
	}

	queryFn := func(bs core.Bitseq) core.Verdict {
		return d.query(ctx, model, bs)
	}
	cancelled := func() bool { return d.cancelled(ctx) }

	final := ticTocMinSequence(cancelled, model.Size(), full.Indices(), queryFn)

	// Final ddmin pass, starting at single-atom granularity, to certify
	// 1-minimality.
	final = ddminSequence(cancelled, model.Size(), final, len(final), queryFn, d.seen, d.cfg.Filter)

	ctxDone, timedOut := d.stopReason(ctx)
	sol := d.finish(toBitseq(model.Size(), final), ctxDone, timedOut)
	if ctxDone || timedOut {
		return sol, core.ErrCancelled
	}
	return sol, nil
}
