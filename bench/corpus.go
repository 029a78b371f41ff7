// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"os"
	"path/filepath"
	"sort"
)

// LoadCorpus returns the paths of every regular file directly inside dir,
// sorted for deterministic matrix ordering. It is the Go equivalent of
// examples/benchmark.py's single-TestCase-per-input idea generalized to a
// directory of inputs, so a Matrix can be built over a whole corpus with
// one call instead of listing files by hand.
func LoadCorpus(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
