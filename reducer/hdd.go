// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// yieldModel is a one-atom Model whose single atom is a tree's whole
// yield, used only to route the initial full-tree FAIL contract check
// through the same cache/counters path the sequence reducers use.
type yieldModel struct {
	yield string
}

func (m yieldModel) Size() int           { return 1 }
func (m yieldModel) Atoms() []input.Atom { return []input.Atom{m.yield} }
func (m yieldModel) Materialize(core.Bitseq) input.Candidate {
	return input.NewTreeCandidate(m.yield)
}

// HDD runs the hierarchical reducer over tree: level by
// level, it forms the removable nodes at the level into a sequence
// configuration, minimizes it with the configured inner reducer against
// the oracle O'(S) = O(yield(tree with nodes-not-in-S at this level
// pruned)), and commits the result before descending. Tree mutation is
// copy-on-write throughout (input.Tree.PruneLevel clones before mutating).
// It returns the resulting Solution alongside the pruned Tree, since HDD's
// output is structural rather than a plain index set over flat atoms. If
// ctx is cancelled or cfg.TimeBudget elapses before HDD finishes
// descending the tree, it returns the tree pruned so far alongside
// core.ErrCancelled.
func (d *Driver) HDD(ctx context.Context, tree *input.Tree) (Solution, *input.Tree, error) {
	full := tree.Yield()
	if len(full) == 0 {
		return Solution{}, nil, core.ErrEmptyCandidate
	}
	d.counters.Begin(len(full))

	one := core.NewBitseq(1).Set(0)
	if d.query(ctx, yieldModel{full}, one) != core.Fail {
		return Solution{}, nil, core.NewContractViolation(core.FingerprintBitseq(one), core.ErrNotFailing)
	}

	cancelled := func() bool { return d.cancelled(ctx) }

	level := 0
	for level <= tree.Depth() && !cancelled() {
		levelModel := input.NewTreeModel(tree, level)
		if levelModel.Size() == 0 {
			level++
			continue
		}

		fullLevel := core.NewBitseq(levelModel.Size()).SetRange(0, levelModel.Size()-1)
		queryFn := func(bs core.Bitseq) core.Verdict {
			return d.query(ctx, levelModel, bs)
		}

		var minimal []int
		switch d.cfg.HDDInnerReducer {
		case KindTicTocMin:
			minimal = ticTocMinSequence(cancelled, levelModel.Size(), fullLevel.Indices(), queryFn)
		default:
			// Each level gets its own seen set: index i names a different
			// node on every level.
			minimal = ddminSequence(cancelled, levelModel.Size(), fullLevel.Indices(), 2, queryFn, newSeenSet(), d.cfg.Filter)
		}

		tree = levelModel.PrunedTree(toBitseq(levelModel.Size(), minimal))
		level++
	}

	yield := tree.Yield()
	final := core.NewBitseq(len(yield))
	if len(yield) > 0 {
		final = final.SetRange(0, len(yield)-1)
	}
	ctxDone, timedOut := d.stopReason(ctx)
	sol := d.finish(final, ctxDone, timedOut)
	sol.Counters.FinalSize = len(yield)
	if ctxDone || timedOut {
		return sol, tree, core.ErrCancelled
	}
	return sol, tree, nil
}
