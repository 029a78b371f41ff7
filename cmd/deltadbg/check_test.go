// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCheckFlags() {
	checkFlags.needle = ""
	checkFlags.command = ""
	checkFlags.args = nil
	checkFlags.pty = false
	checkFlags.failPattern = ""
	checkFlags.passPattern = ""
}

func TestCheckRunFail(t *testing.T) {
	defer resetCheckFlags()
	dir := t.TempDir()
	fn := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(fn, []byte("oh no a bug"), 0600))

	checkFlags.needle = "bug"
	err := checkRun(nil, []string{fn})
	assert.Nil(t, err, "FAIL (needle found) should exit zero: the input still reproduces")
}

func TestCheckRunPass(t *testing.T) {
	defer resetCheckFlags()
	dir := t.TempDir()
	fn := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(fn, []byte("all clear"), 0600))

	checkFlags.needle = "bug"
	err := checkRun(nil, []string{fn})
	assert.NotNil(t, err, "PASS (needle absent) should exit non-zero: the input no longer reproduces")
}

func TestCheckRunNoOracleConfigured(t *testing.T) {
	defer resetCheckFlags()
	dir := t.TempDir()
	fn := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(fn, []byte("x"), 0600))

	err := checkRun(nil, []string{fn})
	assert.NotNil(t, err)
}

func TestCheckRunMissingFile(t *testing.T) {
	defer resetCheckFlags()
	checkFlags.needle = "bug"
	err := checkRun(nil, []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.NotNil(t, err)
}
