// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableEmptyResults(t *testing.T) {
	assert.Equal(t, "(no results)", Table(nil))
}

func TestTableSuppressesUniqueColumns(t *testing.T) {
	records := []Record{
		{File: "a.txt", Algorithm: "ddmin", Cache: "singleflight", InputSize: 10, OutputSize: 2, Status: StatusCompleted},
		{File: "a.txt", Algorithm: "tictocmin", Cache: "singleflight", InputSize: 10, OutputSize: 3, Status: StatusCompleted},
	}
	out := Table(records)
	assert.NotContains(t, out, "FILE")
	assert.NotContains(t, out, "CACHE")
	assert.Contains(t, out, "ALGORITHM")
}

func TestTableShowsVaryingColumns(t *testing.T) {
	records := []Record{
		{File: "a.txt", Algorithm: "ddmin", Cache: "none", InputSize: 10, OutputSize: 2, Status: StatusCompleted},
		{File: "b.txt", Algorithm: "ddmin", Cache: "lru", InputSize: 20, OutputSize: 5, Status: StatusError},
	}
	out := Table(records)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "CACHE")
}
