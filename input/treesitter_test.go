// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"context"
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = `package p

func f() {
	x := 1
	_ = x
}
`

func TestNewTreeSitterTreePopulatesPlaceholder(t *testing.T) {
	placeholders := PlaceholderTypes{"block": "{}"}
	tree, err := NewTreeSitterTree(context.Background(), []byte(goSource), golang.GetLanguage(), nil, placeholders)
	require.NoError(t, err)

	var found bool
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Placeholder == "{}" {
			found = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)
	assert.True(t, found, "expected some node to carry the block placeholder")
}

// blockLevelAndIndex finds the level and RemovableAtLevel index of the
// first node carrying a placeholder, the same node NewTreeSitterTree marks
// from the block entry in PlaceholderTypes.
func blockLevelAndIndex(t *testing.T, tree *Tree) (level, index int) {
	t.Helper()
	for l := 0; l <= tree.Depth(); l++ {
		for i, n := range tree.RemovableAtLevel(l) {
			if n.Placeholder != "" {
				return l, i
			}
		}
	}
	t.Fatal("no node in the tree carries a placeholder")
	return 0, 0
}

func TestNewTreeSitterTreePruneSubstitutesPlaceholder(t *testing.T) {
	placeholders := PlaceholderTypes{"block": "{}"}
	tree, err := NewTreeSitterTree(context.Background(), []byte(goSource), golang.GetLanguage(), nil, placeholders)
	require.NoError(t, err)

	level, index := blockLevelAndIndex(t, tree)
	n := len(tree.RemovableAtLevel(level))

	var keepIdx []int
	for i := 0; i < n; i++ {
		if i != index {
			keepIdx = append(keepIdx, i)
		}
	}
	keep := bitseqOf(n, keepIdx...)

	pruned := tree.PruneLevel(level, keep)
	assert.NotContains(t, pruned.Yield(), "x := 1")
	assert.Contains(t, pruned.Yield(), "{}")
}
