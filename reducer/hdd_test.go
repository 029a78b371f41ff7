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

// buildCallTree mirrors input.buildCallTree's f(g(1,2),h(3,4)) fixture:
// f
// ├── g
// │   ├── 1
// │   └── 2
// └── h
//     ├── 3
//     └── 4
func buildCallTree() *input.Tree {
	leaf := func(text string) *input.Node {
		return &input.Node{Text: text, Removable: true}
	}
	g := &input.Node{Children: []*input.Node{leaf("1"), leaf("2")}, Removable: true, Text: "g(1,2)"}
	h := &input.Node{Children: []*input.Node{leaf("3"), leaf("4")}, Removable: true, Text: "h(3,4)"}
	root := &input.Node{Children: []*input.Node{g, h}, Removable: false, Text: "f(g(1,2),h(3,4))"}
	return input.NewTree(root)
}

func TestHDDPrunesToRequiredSubtree(t *testing.T) {
	tree := buildCallTree()
	o := oracle.NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		s := c.String()
		if strings.Contains(s, "3") && strings.Contains(s, "4") {
			return core.Fail
		}
		return core.Pass
	})
	d := NewDriver(DefaultConfig(), o, nil)

	sol, pruned, err := d.HDD(context.Background(), tree)
	assert.NoError(t, err)
	assert.Equal(t, "34", pruned.Yield())
	assert.Equal(t, core.Fail, sol.Verdict)
}

func TestHDDContractViolation(t *testing.T) {
	tree := buildCallTree()
	o := oracle.SubstringOracle("nonexistent-needle")
	d := NewDriver(DefaultConfig(), o, nil)

	_, _, err := d.HDD(context.Background(), tree)
	assert.ErrorIs(t, err, core.ErrNotFailing)
}

func TestHDDWithTicTocMinInnerReducer(t *testing.T) {
	tree := buildCallTree()
	o := oracle.NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		s := c.String()
		if strings.Contains(s, "3") && strings.Contains(s, "4") {
			return core.Fail
		}
		return core.Pass
	})
	cfg := DefaultConfig()
	cfg.HDDInnerReducer = KindTicTocMin
	d := NewDriver(cfg, o, nil)

	sol, pruned, err := d.HDD(context.Background(), tree)
	assert.NoError(t, err)
	assert.Equal(t, "34", pruned.Yield())
	assert.Equal(t, core.Fail, sol.Verdict)
}
