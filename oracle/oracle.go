// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package oracle contains the oracle contract and a handful of concrete
// oracles: an in-process function adapter, a subprocess-driven command
// oracle, and a mock for tests.
package oracle

import (
	"context"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// Oracle classifies a materialized candidate into one of {FAIL, PASS,
// UNRESOLVED}. Implementations are assumed deterministic in verdict (the
// cache's correctness is otherwise only probabilistic) but may have
// arbitrary latency, and must be pure with respect to the candidate: no
// cross-candidate state unless explicitly documented by the implementation.
// A call is abandoned on ctx cancellation/deadline and must return
// Unresolved rather than block past it.
type Oracle interface {
	Query(ctx context.Context, c input.Candidate) core.Verdict
}

// Func is the function shape wrapped by FuncOracle.
type Func func(ctx context.Context, c input.Candidate) core.Verdict

// FuncOracle adapts a plain function to the Oracle interface, the common
// case for in-process deterministic oracles such as the ones in
// examples.go (substring match, required-item membership).
type FuncOracle struct {
	fn Func
}

// NewFuncOracle wraps fn as an Oracle.
func NewFuncOracle(fn Func) *FuncOracle {
	return &FuncOracle{fn: fn}
}

func (o *FuncOracle) Query(ctx context.Context, c input.Candidate) core.Verdict {
	select {
	case <-ctx.Done():
		return core.Unresolved
	default:
	}
	return o.fn(ctx, c)
}
