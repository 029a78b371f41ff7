// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
)

func bitseqOf(n int, idx ...int) core.Bitseq {
	return core.NewBitseq(n).Set(idx...)
}

func TestByteModelMaterialize(t *testing.T) {
	m := NewByteModel([]byte("xxxabcxxx"))
	assert.Equal(t, 9, m.Size())

	s := bitseqOf(9, 3, 4, 5)
	c := m.Materialize(s)
	assert.Equal(t, KindBytes, c.Kind())
	assert.Equal(t, "abc", string(c.Bytes()))
}

func TestLineModelMaterialize(t *testing.T) {
	m := NewLineModel("a\nb\nc\n")
	assert.Equal(t, 3, m.Size())

	s := bitseqOf(3, 0, 2)
	c := m.Materialize(s)
	assert.Equal(t, "a\nc\n", c.String())
}

func TestTokenModelMaterialize(t *testing.T) {
	tok := func(raw string) []string {
		return strings.Split(raw, " ")
	}
	m := NewTokenModel("a b c", tok)
	assert.Equal(t, 3, m.Size())

	s := bitseqOf(3, 0, 2)
	c := m.Materialize(s)
	assert.Equal(t, "ac", c.String())
}

func TestListModelMaterialize(t *testing.T) {
	m := NewListModel([]any{1, 2, 3, 4, 5, 6, 7, 8})
	s := bitseqOf(8, 2, 5)
	c := m.Materialize(s)
	assert.Equal(t, KindList, c.Kind())
	assert.Equal(t, []any{3, 6}, c.Items())
}

func TestNewStringModel(t *testing.T) {
	m := NewStringModel("hello")
	assert.Equal(t, 5, m.Size())
}
