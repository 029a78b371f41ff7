// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

func TestMockOracleFixedVerdict(t *testing.T) {
	m := NewMockOracle(core.Fail)
	ctx := context.Background()
	c := input.NewStringCandidate("x")

	for i := 0; i < 3; i++ {
		assert.Equal(t, core.Fail, m.Query(ctx, c))
	}
	assert.Equal(t, 3, m.Calls())
}

func TestMockOracleScript(t *testing.T) {
	m := &MockOracle{Script: []core.Verdict{core.Fail, core.Pass, core.Unresolved}, Verdict: core.Pass}
	ctx := context.Background()
	c := input.NewStringCandidate("x")

	assert.Equal(t, core.Fail, m.Query(ctx, c))
	assert.Equal(t, core.Pass, m.Query(ctx, c))
	assert.Equal(t, core.Unresolved, m.Query(ctx, c))
	assert.Equal(t, core.Pass, m.Query(ctx, c))
}
