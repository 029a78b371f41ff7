// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/oracle"
)

func TestDDMinSubstringScenario(t *testing.T) {
	model := input.NewStringModel("xxxabcxxx")
	o := oracle.SubstringOracle("abc")
	d := NewDriver(DefaultConfig(), o, nil)

	sol, err := d.DDMin(context.Background(), model)
	assert.NoError(t, err)
	assert.Equal(t, "abc", model.Materialize(sol.Bitseq).String())
	assert.True(t, sol.Counters.CacheHits > 0 || d.cfg.CacheEnabled)
	assert.Equal(t, core.Fail, sol.Verdict)
}

func TestDDMinDisjointRequiredAtoms(t *testing.T) {
	items := make([]any, 8)
	for i := range items {
		items[i] = i + 1
	}
	model := input.NewListModel(items)
	o := oracle.RequiredItemsOracle([]any{3, 6})
	d := NewDriver(DefaultConfig(), o, nil)

	sol, err := d.DDMin(context.Background(), model)
	assert.NoError(t, err)

	out := model.Materialize(sol.Bitseq).Items()
	assert.Equal(t, []any{3, 6}, out)
}

func TestDDMinAlternatingPattern(t *testing.T) {
	model := input.NewStringModel("abababab")
	o := oracle.AlternatingPatternOracle(4)
	d := NewDriver(DefaultConfig(), o, nil)

	sol, err := d.DDMin(context.Background(), model)
	assert.NoError(t, err)
	assert.Equal(t, "abab", model.Materialize(sol.Bitseq).String())
}

func TestDDMinContractViolation(t *testing.T) {
	model := input.NewStringModel("xxxxxxxxx")
	o := oracle.SubstringOracle("abc")
	d := NewDriver(DefaultConfig(), o, nil)

	_, err := d.DDMin(context.Background(), model)
	assert.ErrorIs(t, err, core.ErrNotFailing)
}

func TestDDMinUnresolvedHandling(t *testing.T) {
	inner := oracle.SubstringOracle("nonexistent-needle-that-never-matches")
	fullFail := oracle.NewFuncOracle(func(ctx context.Context, c input.Candidate) core.Verdict {
		if c.Len() < 3 {
			return core.Unresolved
		}
		if c.Len() == 9 {
			return core.Fail
		}
		return inner.Query(ctx, c)
	})
	model := input.NewStringModel("123456789")
	d := NewDriver(DefaultConfig(), fullFail, nil)

	sol, err := d.DDMin(context.Background(), model)
	assert.NoError(t, err)
	assert.NotEqual(t, core.Pass, sol.Verdict)
	assert.Equal(t, core.Fail, sol.Verdict)
}

func TestDDMinCacheIdempotence(t *testing.T) {
	calls := make(map[string]int)
	o := oracle.NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		calls[c.String()]++
		if strings.Contains(c.String(), "abc") {
			return core.Fail
		}
		return core.Pass
	})
	model := input.NewStringModel("xxxabcxxx")
	d := NewDriver(DefaultConfig(), o, nil)

	sol, err := d.DDMin(context.Background(), model)
	assert.NoError(t, err)
	assert.Equal(t, "abc", model.Materialize(sol.Bitseq).String())
	for candidate, count := range calls {
		assert.Equal(t, 1, count, "candidate %q evaluated more than once", candidate)
	}
}
