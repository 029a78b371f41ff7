// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import (
	"context"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// partition splits the ascending indices of c into g contiguous blocks of
// size ceil(|c|/g) or floor(|c|/g).
func partition(c []int, g int) [][]int {
	if g > len(c) {
		g = len(c)
	}
	if g <= 0 {
		return nil
	}
	blocks := make([][]int, 0, g)
	rest := c
	for n := g; n > 0; n-- {
		i := len(rest) / n
		blocks = append(blocks, rest[:i])
		rest = rest[i:]
	}
	return blocks
}

func toBitseq(bits int, idx []int) core.Bitseq {
	return core.NewBitseq(bits).Set(idx...)
}

func complementOf(c, block []int) []int {
	in := make(map[int]bool, len(block))
	for _, i := range block {
		in[i] = true
	}
	var out []int
	for _, i := range c {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}

// ddminSequence implements the classical recursive-bisection algorithm
// starting from the configuration c with granularity g, querying through
// queryFn (supplied by the driver, and by HDD to drive the same bisection
// over a tree level). cancelled is polled once per outer iteration; it
// returns the 1-minimal configuration, or the best configuration reached so
// far if cancelled turns true first.
func ddminSequence(cancelled func() bool, bits int, c []int, g int,
	queryFn func(bs core.Bitseq) core.Verdict, seen seenSet, filter FilterStrategy) []int {
	for {
		// A single atom cannot be split further; the empty configuration
		// is never queried, so a one-atom c is already 1-minimal.
		if len(c) <= 1 {
			return c
		}
		if g < 2 {
			g = 2
		}
		if g > len(c) {
			g = len(c)
		}

		if cancelled() {
			return c
		}

		blocks := partition(c, g)

		// Reduce-to-subset.
		reduced := false
		for _, blk := range blocks {
			if len(blk) == 0 {
				continue
			}
			bs := toBitseq(bits, blk)
			if seen.contains(bs, filter) {
				continue
			}
			if queryFn(bs) == core.Fail {
				c, g = blk, 2
				reduced = true
				break
			}
			seen.add(bs)
		}
		if reduced {
			continue
		}

		// Reduce-to-complement.
		for _, blk := range blocks {
			if len(blk) == 0 {
				continue
			}
			comp := complementOf(c, blk)
			if len(comp) == 0 {
				continue
			}
			bs := toBitseq(bits, comp)
			if seen.contains(bs, filter) {
				continue
			}
			if queryFn(bs) == core.Fail {
				c = comp
				if g-1 > 2 {
					g = g - 1
				} else {
					g = 2
				}
				reduced = true
				break
			}
			seen.add(bs)
		}
		if reduced {
			continue
		}

		// Increase granularity.
		if g < len(c) {
			g = g * 2
			if g > len(c) {
				g = len(c)
			}
			continue
		}

		// Done: c is 1-minimal.
		return c
	}
}

// DDMin runs the classical recursive-bisection reducer over model. The
// initial configuration must verdict FAIL (core.ErrNotFailing otherwise).
// If ctx is cancelled or cfg.TimeBudget elapses before a 1-minimal result
// is reached, DDMin returns the best configuration found so far alongside
// core.ErrCancelled.
func (d *Driver) DDMin(ctx context.Context, model input.Model) (Solution, error) {
	full, err := d.checkInitial(ctx, model)
	if err != nil {
		return Solution{}, err
	}

	queryFn := func(bs core.Bitseq) core.Verdict {
		return d.query(ctx, model, bs)
	}
	cancelled := func() bool { return d.cancelled(ctx) }

	final := ddminSequence(cancelled, model.Size(), full.Indices(), 2, queryFn, d.seen, d.cfg.Filter)

	ctxDone, timedOut := d.stopReason(ctx)
	sol := d.finish(toBitseq(model.Size(), final), ctxDone, timedOut)
	if ctxDone || timedOut {
		return sol, core.ErrCancelled
	}
	return sol, nil
}
