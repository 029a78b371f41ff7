// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/oracle"
)

func TestProbVectorPinAndDrop(t *testing.T) {
	v := NewProbVector(4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0.5, v.P(i))
	}

	v.pin(1)
	assert.True(t, v.Pinned(1))
	assert.Equal(t, 1.0, v.P(1))

	v.drop(2)
	assert.True(t, v.isDropped(2))
	assert.False(t, v.Pinned(2))
}

func TestProbVectorUpdateIncreasesPosteriorOnPass(t *testing.T) {
	v := NewProbVector(3)
	before := v.P(0)
	v.update([]int{0, 1, 2})
	assert.Greater(t, v.P(0), before)
}

func TestSelectTrialOrdersByAscendingProbability(t *testing.T) {
	v := NewProbVector(4)
	v.logOdds[0] = toLogOdds(0.9)
	v.logOdds[1] = toLogOdds(0.1)
	v.logOdds[2] = toLogOdds(0.5)
	v.logOdds[3] = toLogOdds(0.2)

	trial := selectTrial(v, []int{0, 1, 2, 3}, 0.99)
	assert.Equal(t, 1, trial[0])
}

func TestProbDDRequiredAtomsScenario(t *testing.T) {
	items := make([]any, 20)
	for i := range items {
		items[i] = i
	}
	model := input.NewListModel(items)
	o := oracle.RequiredItemsOracle([]any{2, 7, 13})
	d := NewDriver(DefaultConfig(), o, nil)

	sol, err := d.ProbDD(context.Background(), model)
	assert.NoError(t, err)

	out := model.Materialize(sol.Bitseq).Items()
	assert.Equal(t, []any{2, 7, 13}, out)
	assert.Equal(t, core.Fail, sol.Verdict)
}

func TestProbDDContractViolation(t *testing.T) {
	model := input.NewStringModel("xxxxxxxxx")
	o := oracle.SubstringOracle("abc")
	d := NewDriver(DefaultConfig(), o, nil)

	_, err := d.ProbDD(context.Background(), model)
	assert.ErrorIs(t, err, core.ErrNotFailing)
}

// TestProbDDRespectsStallBudget runs ProbDD with a stall budget of 1 on an
// input whose every atom is required: the run still ends without error,
// and the trailing DDMin certification pass returns the whole input as the
// 1-minimal result.
func TestProbDDRespectsStallBudget(t *testing.T) {
	model := input.NewStringModel("abcdefgh")
	o := oracle.SubstringOracle("abcdefgh")
	cfg := DefaultConfig()
	cfg.ProbDDStallK = 1
	d := NewDriver(cfg, o, nil)

	sol, err := d.ProbDD(context.Background(), model)
	assert.NoError(t, err)
	assert.Equal(t, "abcdefgh", model.Materialize(sol.Bitseq).String())
	assert.Equal(t, core.Fail, sol.Verdict)
}
