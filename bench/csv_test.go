// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCSVWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	require.NoError(t, AppendCSV(path, Record{File: "a.txt", Algorithm: "ddmin", InputSize: 10, OutputSize: 2}))
	require.NoError(t, AppendCSV(path, Record{File: "b.txt", Algorithm: "ddmin", InputSize: 8, OutputSize: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[2], "b.txt")
}

func TestAppendCSVNoopOnEmptyFilename(t *testing.T) {
	assert.NoError(t, AppendCSV("", Record{}))
}
