// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/open-s4c/deltadbg/logger"
)

const (
	csvFileMode = 0600
	csvDateFmt  = "2006-01-02 15:04:05"
)

// AppendCSV appends r as one row of filename, writing a header line first
// if the file does not yet exist.
func AppendCSV(filename string, r Record) error {
	if filename == "" {
		return nil
	}
	withHeader := false
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		withHeader = true
	}

	fp, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, csvFileMode)
	if err != nil {
		return fmt.Errorf("could not open file: %v", filename)
	}
	defer func() {
		if err := fp.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()

	if withHeader {
		fmt.Fprint(fp, "# date, run_id, file, algorithm, cache, input_size, "+
			"output_size, reduction_ratio, count, cache_hits, fail, pass, "+
			"unresolved, inconsistent, time, status, error")
		fmt.Fprintln(fp)
	}

	fmt.Fprintf(fp, "%s, %s, %s, %s, %s, %d, %d, %.4f, %d, %d, %d, %d, %d, %d, %v, %s, %s\n",
		time.Now().Format(csvDateFmt),
		r.RunID, r.File, r.Algorithm, r.Cache,
		r.InputSize, r.OutputSize, r.ReductionRatio(),
		r.Count, r.CacheHits, r.Fail, r.Pass, r.Unresolved, r.Inconsistent,
		r.Time, r.Status, r.Err)
	return nil
}
