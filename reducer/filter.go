// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package reducer

import "github.com/open-s4c/deltadbg/core"

// FilterStrategy controls how aggressively seenSet treats a configuration
// as already ruled out. This is an internal optimization to avoid
// re-querying configurations a run has already classified non-FAIL.
type FilterStrategy int

const (
	// FilterNone disables deduplication entirely.
	FilterNone FilterStrategy = iota
	// FilterDup skips a configuration only if it was tried verbatim
	// before.
	FilterDup
	// FilterSubset additionally skips a configuration that is a subset of
	// (or equal to) a previously ruled-out configuration: if a superset
	// already failed to reproduce, none of its subsets can either.
	FilterSubset
)

// seenSet records configurations a run has already queried and ruled out
// (observed non-FAIL), keyed by their binary-string encoding.
type seenSet map[string]bool

func newSeenSet() seenSet {
	return make(seenSet)
}

func (s seenSet) add(bs core.Bitseq) {
	s[bs.ToBinString()] = true
}

func (s seenSet) dup(bs core.Bitseq) bool {
	return s[bs.ToBinString()]
}

func (s seenSet) subset(bs core.Bitseq) bool {
	for enc := range s {
		so, err := core.FromBinString(enc)
		if err != nil {
			continue
		}
		if bs.SubsetOf(so) || bs.Equals(so) {
			return true
		}
	}
	return false
}

// contains reports whether bs should be skipped under strategy.
func (s seenSet) contains(bs core.Bitseq, strategy FilterStrategy) bool {
	switch strategy {
	case FilterNone:
		return false
	case FilterDup:
		return s.dup(bs)
	case FilterSubset:
		return s.subset(bs)
	default:
		return false
	}
}
