// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cache memoizes oracle verdicts keyed by candidate fingerprint,
// enforcing at-most-one concurrent oracle evaluation per fingerprint.
package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/open-s4c/deltadbg/core"
)

// EvalFunc evaluates the candidate identified by fp, invoking the oracle.
// It is called at most once per fingerprint while that fingerprint's
// verdict is stored, even under concurrent callers; a fingerprint removed
// by Evict is evaluated again on its next Query.
type EvalFunc func(ctx context.Context) core.Verdict

// Cache maps fingerprint to Verdict. On hit it returns the stored verdict
// without invoking eval; on miss it evaluates, stores, and returns.
type Cache interface {
	// Get returns the stored verdict for fp, if any.
	Get(fp core.Fingerprint) (core.Verdict, bool)
	// Query returns the cached verdict for fp, evaluating via eval on a
	// miss. Concurrent callers for the same fp block on a single eval.
	Query(ctx context.Context, fp core.Fingerprint, eval EvalFunc) core.Verdict
	// Hits and Misses report the running totals.
	Hits() int
	Misses() int
	// Inconsistencies reports how many times a second evaluation of an
	// already-cached fingerprint returned a different verdict than the
	// one on record.
	Inconsistencies() int
}

// SingleFlightCache is the default Cache implementation: it wraps
// golang.org/x/sync/singleflight.Group to get the at-most-one-concurrent-
// evaluation guarantee directly from the ecosystem instead of hand-rolled
// per-key locking, then mirrors the resolved verdict into a plain map
// guarded by an RWMutex so callers after resolution hit the map directly
// without re-entering singleflight.
type SingleFlightCache struct {
	group singleflight.Group

	mu   sync.RWMutex
	data map[core.Fingerprint]core.Verdict

	hits, misses, inconsistent int
}

// NewSingleFlightCache returns an empty SingleFlightCache.
func NewSingleFlightCache() *SingleFlightCache {
	return &SingleFlightCache{data: make(map[core.Fingerprint]core.Verdict)}
}

func (c *SingleFlightCache) Get(fp core.Fingerprint) (core.Verdict, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[fp]
	return v, ok
}

func (c *SingleFlightCache) Query(ctx context.Context, fp core.Fingerprint, eval EvalFunc) core.Verdict {
	if v, ok := c.Get(fp); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v
	}

	key := strconv.FormatUint(uint64(fp), 16)
	result, _, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the singleflight key: another caller may have
		// resolved and stored this fingerprint between our Get above and
		// entering the flight group.
		if v, ok := c.Get(fp); ok {
			return v, nil
		}

		v := eval(ctx)

		c.mu.Lock()
		if existing, ok := c.data[fp]; ok && existing != v {
			c.inconsistent++
			v = existing
		} else {
			c.data[fp] = v
		}
		c.mu.Unlock()

		return v, nil
	})

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	return result.(core.Verdict)
}

func (c *SingleFlightCache) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

func (c *SingleFlightCache) Misses() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.misses
}

func (c *SingleFlightCache) Inconsistencies() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inconsistent
}

// Evict removes fp's stored verdict, if any, so it will be re-evaluated on
// its next Query. Implements the evictable interface consulted by LRUCache.
func (c *SingleFlightCache) Evict(fp core.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, fp)
}
