// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"strings"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// SubstringOracle FAILs iff the candidate's string representation contains
// needle.
func SubstringOracle(needle string) *FuncOracle {
	return NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		if strings.Contains(c.String(), needle) {
			return core.Fail
		}
		return core.Pass
	})
}

// RequiredItemsOracle FAILs iff every item in required is present in the
// candidate's item list, regardless of order or other contents.
func RequiredItemsOracle(required []any) *FuncOracle {
	return NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		present := make(map[any]bool, len(c.Items()))
		for _, it := range c.Items() {
			present[it] = true
		}
		for _, r := range required {
			if !present[r] {
				return core.Pass
			}
		}
		return core.Fail
	})
}

// AlternatingPatternOracle FAILs iff the candidate has length >= minLen and
// alternates 'a' and 'b' starting with 'a' ("abab", but also "ababa").
func AlternatingPatternOracle(minLen int) *FuncOracle {
	return NewFuncOracle(func(_ context.Context, c input.Candidate) core.Verdict {
		s := c.String()
		if len(s) < minLen {
			return core.Pass
		}
		for i, r := range s {
			want := byte('a')
			if i%2 == 1 {
				want = 'b'
			}
			if byte(r) != want {
				return core.Pass
			}
		}
		return core.Fail
	})
}

// MinLengthUnresolvedOracle returns Unresolved for any candidate shorter
// than minLen and otherwise delegates to inner.
func MinLengthUnresolvedOracle(minLen int, inner Oracle) *FuncOracle {
	return NewFuncOracle(func(ctx context.Context, c input.Candidate) core.Verdict {
		if c.Len() < minLen {
			return core.Unresolved
		}
		return inner.Query(ctx, c)
	})
}
