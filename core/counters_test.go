// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersRecord(t *testing.T) {
	var c Counters
	c.Begin(100)
	c.Record(Fail, false)
	c.Record(Pass, true)
	c.Record(Unresolved, false)
	c.Finish(40)

	assert.Equal(t, 3, c.Queries)
	assert.Equal(t, 1, c.CacheHits)
	assert.Equal(t, 2, c.CacheMisses)
	assert.Equal(t, 1, c.Fail)
	assert.Equal(t, 1, c.Pass)
	assert.Equal(t, 1, c.Unresolved)
	assert.Equal(t, 100, c.InitialSize)
	assert.Equal(t, 40, c.FinalSize)
}

func TestCountersReduction(t *testing.T) {
	var c Counters
	c.Begin(100)
	c.Finish(25)
	assert.InDelta(t, 0.75, c.Reduction(), 1e-9)
}

func TestCountersReductionZeroInitialSize(t *testing.T) {
	var c Counters
	c.Begin(0)
	c.Finish(0)
	assert.Equal(t, 0.0, c.Reduction())
}

func TestCountersElapsedBeforeFinish(t *testing.T) {
	var c Counters
	c.Begin(10)
	assert.True(t, c.Elapsed() >= 0)
}

func TestCountersString(t *testing.T) {
	var c Counters
	c.Begin(10)
	c.Record(Fail, false)
	c.Finish(3)
	assert.Contains(t, c.String(), "queries=1")
	assert.Contains(t, c.String(), "size=10->3")
}
