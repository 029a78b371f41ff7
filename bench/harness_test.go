// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/oracle"
	"github.com/open-s4c/deltadbg/reducer"
)

func TestMatrixRunProducesOneRecordPerCell(t *testing.T) {
	files := []string{"needle-one", "needle-two"}
	m := Matrix{
		Files:         files,
		Algorithms:    []reducer.Kind{reducer.KindDDMin, reducer.KindTicTocMin},
		CacheVariants: []CacheVariant{CacheNone, CacheSingleFlight},
		Concurrency:   4,
		Config:        reducer.DefaultConfig(),
		BuildModel: func(file string) (input.Model, error) {
			return input.NewStringModel("xxx" + file + "xxx"), nil
		},
		BuildOracle: func(file string) (oracle.Oracle, error) {
			return oracle.SubstringOracle(file), nil
		},
	}

	rs, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(files)*2*2, rs.Len())
	for _, r := range rs.Records() {
		assert.Equal(t, StatusCompleted, r.Status, "cell %s/%s/%s should complete", r.File, r.Algorithm, r.Cache)
	}
}

func TestMatrixRunReportsModelBuildError(t *testing.T) {
	m := Matrix{
		Files:         []string{"broken"},
		Algorithms:    []reducer.Kind{reducer.KindDDMin},
		CacheVariants: []CacheVariant{CacheNone},
		Concurrency:   1,
		Config:        reducer.DefaultConfig(),
		BuildModel: func(file string) (input.Model, error) {
			return nil, assertErr
		},
		BuildOracle: func(file string) (oracle.Oracle, error) {
			return oracle.SubstringOracle("x"), nil
		},
	}

	rs, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, StatusError, rs.Records()[0].Status)
	assert.NotEmpty(t, rs.Records()[0].Err)
}

var assertErr = errTest{}

type errTest struct{}

func (errTest) Error() string { return "model build failed" }
