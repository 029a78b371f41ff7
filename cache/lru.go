// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/open-s4c/deltadbg/core"
)

// LRUCache decorates another Cache with an optional size cap: once the cap
// is reached, the least-recently-used fingerprint is evicted and will be
// re-evaluated on its next query.
type LRUCache struct {
	inner Cache
	cap   int

	mu      sync.Mutex
	ll      *list.List
	entries map[core.Fingerprint]*list.Element
}

// NewLRUCache wraps inner with an LRU eviction policy capped at size
// entries. A non-positive size disables eviction entirely.
func NewLRUCache(inner Cache, size int) *LRUCache {
	return &LRUCache{
		inner:   inner,
		cap:     size,
		ll:      list.New(),
		entries: make(map[core.Fingerprint]*list.Element),
	}
}

func (c *LRUCache) touch(fp core.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[fp]; ok {
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(fp)
	c.entries[fp] = el

	if c.cap > 0 {
		for c.ll.Len() > c.cap {
			oldest := c.ll.Back()
			if oldest == nil {
				break
			}
			c.evict(oldest.Value.(core.Fingerprint))
		}
	}
}

// evict removes fp from the LRU bookkeeping and from the underlying cache,
// if the underlying cache supports explicit eviction.
func (c *LRUCache) evict(fp core.Fingerprint) {
	if el, ok := c.entries[fp]; ok {
		c.ll.Remove(el)
		delete(c.entries, fp)
	}
	if ev, ok := c.inner.(evictable); ok {
		ev.Evict(fp)
	}
}

type evictable interface {
	Evict(core.Fingerprint)
}

func (c *LRUCache) Get(fp core.Fingerprint) (core.Verdict, bool) {
	return c.inner.Get(fp)
}

func (c *LRUCache) Query(ctx context.Context, fp core.Fingerprint, eval EvalFunc) core.Verdict {
	v := c.inner.Query(ctx, fp, eval)
	c.touch(fp)
	return v
}

func (c *LRUCache) Hits() int            { return c.inner.Hits() }
func (c *LRUCache) Misses() int          { return c.inner.Misses() }
func (c *LRUCache) Inconsistencies() int { return c.inner.Inconsistencies() }
