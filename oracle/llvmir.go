// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"

	"github.com/llir/llvm/asm"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// GuardLLVMIR wraps next so every candidate is parsed as an LLVM IR module
// before next ever sees it. A candidate ddmin/HDD produced by deleting
// atoms can easily stop being syntactically valid IR, and forwarding that
// straight to an external checker (opt, llc, a crash reproducer) wastes a
// process launch finding out what a parse already knows; GuardLLVMIR
// reports Unresolved itself instead, the same "parse before doing
// anything else with a .ll file" order of operations as loading a
// module from disk.
func GuardLLVMIR(next Oracle) Oracle {
	return NewFuncOracle(func(ctx context.Context, c input.Candidate) core.Verdict {
		if _, err := asm.ParseString("<candidate>", c.String()); err != nil {
			return core.Unresolved
		}
		return next.Query(ctx, c)
	})
}
