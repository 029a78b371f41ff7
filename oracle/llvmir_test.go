// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

const validLLVMIR = `define i32 @f() {
	ret i32 0
}
`

func TestGuardLLVMIRPassesValidModuleThrough(t *testing.T) {
	inner := SubstringOracle("ret i32 0")
	o := GuardLLVMIR(inner)

	v := o.Query(context.Background(), input.NewStringCandidate(validLLVMIR))
	assert.Equal(t, core.Fail, v)
}

func TestGuardLLVMIRRejectsInvalidModule(t *testing.T) {
	inner := NewFuncOracle(func(context.Context, input.Candidate) core.Verdict {
		t.Fatal("inner oracle must not be queried on a non-parsing candidate")
		return core.Undefined
	})
	o := GuardLLVMIR(inner)

	v := o.Query(context.Background(), input.NewStringCandidate("this is not valid LLVM IR {{{"))
	assert.Equal(t, core.Unresolved, v)
}
