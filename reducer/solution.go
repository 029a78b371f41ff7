// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reducer implements the delta debugging algorithms: ddmin,
// TicTocMin, HDD, and ProbDD, orchestrated through a shared Driver.
package reducer

import (
	"time"

	"github.com/open-s4c/deltadbg/core"
)

// Solution is the outcome of a reducer run: the final configuration, the
// verdict it produced (FAIL on success), and the Counters accumulated
// along the way.
type Solution struct {
	Bitseq   core.Bitseq
	Verdict  core.Verdict
	Elapsed  time.Duration
	Counters core.Counters
}
