// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bench implements the benchmark/report harness: running a matrix
// of (file, algorithm, cache) cells, collecting one Record per cell, and
// rendering the collected ResultSet as CSV, a table, or a JSON file.
package bench

import (
	"encoding/json"
	"os"
	"time"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/reducer"
)

// Status names how a Record's run ended.
type Status string

const (
	// StatusCompleted means the run reached a certified result: no error,
	// the final configuration still verdicts FAIL, and it neither ran out
	// of its own time budget nor had its context cancelled.
	StatusCompleted Status = "completed"
	// StatusTimeout means the run stopped because cfg.TimeBudget elapsed.
	StatusTimeout Status = "timeout"
	// StatusCancelled means the run stopped because its context was
	// cancelled or its deadline expired, independent of any time budget.
	StatusCancelled Status = "cancelled"
	// StatusError means the run ended on an error other than a time
	// budget or context cancellation (e.g. a contract violation).
	StatusError Status = "error"
)

// Record is the outcome of one matrix cell: a (file, algorithm, cache)
// combination run against a single oracle.
type Record struct {
	RunID        string        `json:"run_id"`
	File         string        `json:"file"`
	Algorithm    string        `json:"algorithm"`
	Cache        string        `json:"cache"`
	InputSize    int           `json:"input_size"`
	OutputSize   int           `json:"output_size"`
	Count        int           `json:"count"`
	CacheHits    int           `json:"cache_hits"`
	Fail         int           `json:"fail"`
	Pass         int           `json:"pass"`
	Unresolved   int           `json:"unresolved"`
	Inconsistent int           `json:"inconsistent"`
	Time         time.Duration `json:"time_ns"`
	Status       Status        `json:"status"`
	Err          string        `json:"error,omitempty"`
}

// ReductionRatio is (input-output)/input, defined as 1.0 when input is
// empty, matching result.py's reduction_ratio property.
func (r Record) ReductionRatio() float64 {
	if r.InputSize == 0 {
		return 1.0
	}
	return float64(r.InputSize-r.OutputSize) / float64(r.InputSize)
}

// NewRecord builds a Record from a completed reducer.Solution.
func NewRecord(runID, file, algorithm, cache string, sol reducer.Solution, err error) Record {
	r := Record{
		RunID:        runID,
		File:         file,
		Algorithm:    algorithm,
		Cache:        cache,
		InputSize:    sol.Counters.InitialSize,
		OutputSize:   sol.Counters.FinalSize,
		Count:        sol.Counters.Queries,
		CacheHits:    sol.Counters.CacheHits,
		Fail:         sol.Counters.Fail,
		Pass:         sol.Counters.Pass,
		Unresolved:   sol.Counters.Unresolved,
		Inconsistent: sol.Counters.Inconsistent,
		Time:         sol.Elapsed,
		Status:       recordStatus(err, sol),
	}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// recordStatus classifies how the run ended. A timed-out run is reported
// as StatusTimeout even if its context also happened to be cancelled,
// since the time budget is the more specific, caller-configured reason.
func recordStatus(err error, sol reducer.Solution) Status {
	switch {
	case sol.Counters.TimedOut:
		return StatusTimeout
	case sol.Counters.Cancelled:
		return StatusCancelled
	case err == nil && sol.Verdict == core.Fail:
		return StatusCompleted
	default:
		return StatusError
	}
}

// ResultSet is an ordered collection of Records, grounded on result.py's
// ResultCollection.
type ResultSet struct {
	records []Record
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Add appends r to the set.
func (rs *ResultSet) Add(r Record) {
	rs.records = append(rs.records, r)
}

// Records returns the accumulated records, in insertion order.
func (rs *ResultSet) Records() []Record {
	return rs.records
}

// Len returns the number of records in the set.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// StoreJSON writes the set to file as indented JSON, mirroring
// ResultCollection.store_results.
func (rs *ResultSet) StoreJSON(file string) error {
	data, err := json.MarshalIndent(rs.records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0600)
}

// LoadJSON replaces the set's contents with the records stored in file,
// mirroring ResultCollection.load_results.
func (rs *ResultSet) LoadJSON(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	rs.records = records
	return nil
}
