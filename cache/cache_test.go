// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
)

func TestSingleFlightCacheHitMiss(t *testing.T) {
	c := NewSingleFlightCache()
	ctx := context.Background()
	fp := core.FingerprintBytes([]byte("abc"))

	var calls int32
	eval := func(context.Context) core.Verdict {
		atomic.AddInt32(&calls, 1)
		return core.Fail
	}

	v1 := c.Query(ctx, fp, eval)
	v2 := c.Query(ctx, fp, eval)

	assert.Equal(t, core.Fail, v1)
	assert.Equal(t, core.Fail, v2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, c.Hits())
	assert.Equal(t, 1, c.Misses())
}

func TestSingleFlightCacheAtMostOneEvaluation(t *testing.T) {
	c := NewSingleFlightCache()
	ctx := context.Background()
	fp := core.FingerprintBytes([]byte("xyz"))

	var calls int32
	var wg sync.WaitGroup
	results := make([]core.Verdict, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = c.Query(ctx, fp, func(context.Context) core.Verdict {
				atomic.AddInt32(&calls, 1)
				return core.Pass
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, core.Pass, v)
	}
}

func TestSingleFlightCacheInconsistency(t *testing.T) {
	c := NewSingleFlightCache()
	ctx := context.Background()
	fp := core.FingerprintBytes([]byte("inconsistent"))

	v1 := c.Query(ctx, fp, func(context.Context) core.Verdict { return core.Fail })
	assert.Equal(t, core.Fail, v1)

	c.Evict(fp)
	// A fresh cache with a verdict already stored for fp: Query returns the
	// stored verdict as a hit and never calls the eval that would disagree.
	// The inconsistency counter itself is not exercised here, since reaching
	// it needs a concurrent store between Query's re-check and its write.
	c2 := NewSingleFlightCache()
	c2.data[fp] = core.Fail
	v2 := c2.Query(ctx, fp, func(context.Context) core.Verdict { return core.Pass })
	assert.Equal(t, core.Fail, v2, "trusts the cached verdict per spec §7")
}

func TestLRUCacheEviction(t *testing.T) {
	inner := NewSingleFlightCache()
	c := NewLRUCache(inner, 2)
	ctx := context.Background()

	fpA := core.FingerprintBytes([]byte("a"))
	fpB := core.FingerprintBytes([]byte("b"))
	fpC := core.FingerprintBytes([]byte("c"))

	eval := func(v core.Verdict) EvalFunc {
		return func(context.Context) core.Verdict { return v }
	}

	c.Query(ctx, fpA, eval(core.Fail))
	c.Query(ctx, fpB, eval(core.Pass))
	c.Query(ctx, fpC, eval(core.Pass)) // evicts fpA

	_, ok := inner.Get(fpA)
	assert.False(t, ok, "fpA should have been evicted")

	_, ok = inner.Get(fpB)
	assert.True(t, ok)
}
