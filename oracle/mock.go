// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"sync"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
)

// MockOracle is a deterministic test double that returns a fixed verdict,
// or consults a Script of per-call overrides keyed by call index, and
// counts how many times it was queried. It is a per-test instance rather
// than a shared global so table-driven tests don't leak state into each
// other.
type MockOracle struct {
	mu      sync.Mutex
	Verdict core.Verdict
	Script  []core.Verdict
	calls   int
}

// NewMockOracle returns a MockOracle that always answers v.
func NewMockOracle(v core.Verdict) *MockOracle {
	return &MockOracle{Verdict: v}
}

func (m *MockOracle) Query(_ context.Context, _ input.Candidate) core.Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.calls++ }()
	if m.calls < len(m.Script) {
		return m.Script[m.calls]
	}
	return m.Verdict
}

// Calls reports how many times Query was invoked.
func (m *MockOracle) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
