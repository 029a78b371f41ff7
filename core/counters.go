// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"time"
)

// Counters accumulates the statistics of a single reduction run: how many
// oracle queries were issued, how many were served from cache, how the
// verdicts split, and how long the run took. A reducer owns one Counters
// value for its lifetime and updates it as it evaluates candidates.
type Counters struct {
	Queries      int
	CacheHits    int
	CacheMisses  int
	Fail         int
	Pass         int
	Unresolved   int
	Inconsistent int
	InitialSize  int
	FinalSize    int
	Start        time.Time
	End          time.Time
	// Cancelled is set when the run stopped early because ctx was
	// cancelled or its deadline expired.
	Cancelled bool
	// TimedOut is set when the run stopped early because the reducer's
	// own cfg.TimeBudget elapsed, independent of ctx.
	TimedOut bool
}

// Begin marks the start of the run and records the initial candidate size.
func (c *Counters) Begin(initialSize int) {
	c.Start = time.Now()
	c.InitialSize = initialSize
}

// Finish marks the end of the run and records the final candidate size.
func (c *Counters) Finish(finalSize int) {
	c.End = time.Now()
	c.FinalSize = finalSize
}

// Record folds one oracle verdict into the counters. hit indicates whether
// the verdict was served from cache rather than a fresh evaluation.
func (c *Counters) Record(v Verdict, hit bool) {
	c.Queries++
	if hit {
		c.CacheHits++
	} else {
		c.CacheMisses++
	}
	switch v {
	case Fail:
		c.Fail++
	case Pass:
		c.Pass++
	case Unresolved:
		c.Unresolved++
	}
}

// Elapsed returns the wall-clock duration of the run. Before Finish is
// called it reports the time elapsed so far.
func (c Counters) Elapsed() time.Duration {
	if c.End.IsZero() {
		return time.Since(c.Start)
	}
	return c.End.Sub(c.Start)
}

// Reduction returns the fraction of the initial size removed, in [0,1].
// It returns 0 when InitialSize is 0.
func (c Counters) Reduction() float64 {
	if c.InitialSize == 0 {
		return 0
	}
	return 1 - float64(c.FinalSize)/float64(c.InitialSize)
}

// String renders a human-readable one-line summary, in the spirit of a
// benchmark report row.
func (c Counters) String() string {
	return fmt.Sprintf(
		"queries=%d hits=%d misses=%d fail=%d pass=%d unresolved=%d "+
			"inconsistent=%d size=%d->%d (%.1f%% reduction) elapsed=%s "+
			"cancelled=%v timed_out=%v",
		c.Queries, c.CacheHits, c.CacheMisses, c.Fail, c.Pass, c.Unresolved,
		c.Inconsistent, c.InitialSize, c.FinalSize, 100*c.Reduction(),
		c.Elapsed().Round(time.Millisecond), c.Cancelled, c.TimedOut)
}
