// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	goodColor   = color.New(color.FgGreen).SprintFunc()
	badColor    = color.New(color.FgRed).SprintFunc()
)

// uniqueValues reports which of File, Algorithm, Cache take on a single
// value across records, mirroring ResultCollection._remove_unique_column:
// a column that never varies is noise in a table meant to highlight
// differences between cells.
func uniqueValues(records []Record) (file, algorithm, cache bool) {
	files := map[string]bool{}
	algos := map[string]bool{}
	caches := map[string]bool{}
	for _, r := range records {
		files[r.File] = true
		algos[r.Algorithm] = true
		caches[r.Cache] = true
	}
	return len(files) <= 1, len(algos) <= 1, len(caches) <= 1
}

// Table renders records as an aligned, colorized text table, grounded on
// result.py's to_string (tabulate-based) but using stdlib text/tabwriter
// since the pack carries no Go table-formatting dependency; column
// suppression for single-valued fields is kept from the Python original.
func Table(records []Record) string {
	if len(records) == 0 {
		return "(no results)"
	}

	skipFile, skipAlgo, skipCache := uniqueValues(records)

	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	var header []string
	if !skipFile {
		header = append(header, "FILE")
	}
	if !skipAlgo {
		header = append(header, "ALGORITHM")
	}
	if !skipCache {
		header = append(header, "CACHE")
	}
	header = append(header, "IN", "OUT", "REDUCTION", "QUERIES", "HITS", "FAIL", "PASS", "UNRES", "TIME", "STATUS")
	for i, h := range header {
		header[i] = headerColor(h)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, r := range records {
		var row []string
		if !skipFile {
			row = append(row, filepath.Base(r.File))
		}
		if !skipAlgo {
			row = append(row, r.Algorithm)
		}
		if !skipCache {
			row = append(row, r.Cache)
		}
		status := goodColor(string(r.Status))
		if r.Status != StatusCompleted {
			status = badColor(string(r.Status))
		}
		row = append(row,
			fmt.Sprintf("%d", r.InputSize),
			fmt.Sprintf("%d", r.OutputSize),
			fmt.Sprintf("%.1f%%", 100*r.ReductionRatio()),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.CacheHits),
			fmt.Sprintf("%d", r.Fail),
			fmt.Sprintf("%d", r.Pass),
			fmt.Sprintf("%d", r.Unresolved),
			r.Time.Round(1_000_000).String(),
			status,
		)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
	return buf.String()
}
