// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/open-s4c/deltadbg/cache"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/oracle"
	"github.com/open-s4c/deltadbg/reducer"
)

// CacheVariant names a cache configuration a Matrix cell can be run
// against, so the same (file, algorithm) pair can be benchmarked with and
// without caching.
type CacheVariant string

const (
	CacheNone         CacheVariant = "none"
	CacheSingleFlight CacheVariant = "singleflight"
	CacheLRU          CacheVariant = "lru"
)

// newCache builds a fresh cache.Cache for one cell: caches are per-run and
// must never be shared across cells.
func newCache(v CacheVariant, lruSize int) cache.Cache {
	switch v {
	case CacheNone:
		return nil
	case CacheLRU:
		return cache.NewLRUCache(cache.NewSingleFlightCache(), lruSize)
	default:
		return cache.NewSingleFlightCache()
	}
}

// Matrix describes a benchmark sweep: every (file, algorithm, cache
// variant) combination is run as one independent cell, each with its own
// Driver and cache instance.
type Matrix struct {
	Files         []string
	Algorithms    []reducer.Kind
	CacheVariants []CacheVariant
	LRUSize       int
	Concurrency   int
	Config        reducer.Config

	// BuildModel constructs the input.Model for file.
	BuildModel func(file string) (input.Model, error)
	// BuildOracle constructs the oracle.Oracle that evaluates candidates
	// derived from file.
	BuildOracle func(file string) (oracle.Oracle, error)

	// Metrics, if non-nil, receives one observation per finished cell.
	// Build it with WithMetrics; a nil Metrics records nothing.
	Metrics *Metrics
}

// Run executes every matrix cell, with up to Concurrency cells running
// concurrently, and returns the accumulated ResultSet. Cross-cell
// concurrency is bounded with golang.org/x/sync/errgroup. Unlike the
// typical errgroup.WithContext use (which cancels the whole group on the
// first failure), one cell's error here is recorded as a failed Record
// rather than aborting the sweep, since a benchmark run should finish
// cells that do work even if one file's oracle is broken.
func (m Matrix) Run(ctx context.Context) (*ResultSet, error) {
	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type cell struct {
		file      string
		algorithm reducer.Kind
		variant   CacheVariant
	}
	var cells []cell
	for _, f := range m.Files {
		for _, a := range m.Algorithms {
			for _, v := range m.CacheVariants {
				cells = append(cells, cell{f, a, v})
			}
		}
	}

	runID := NewRunID()
	rs := NewResultSet()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, concurrency)

	for _, c := range cells {
		c := c
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			rec := m.runCell(ctx, runID, c.file, c.algorithm, c.variant)
			m.Metrics.observe(rec)
			mu.Lock()
			rs.Add(rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return rs, err
	}
	return rs, nil
}

func (m Matrix) runCell(ctx context.Context, runID, file string, algo reducer.Kind, variant CacheVariant) Record {
	model, err := m.BuildModel(file)
	if err != nil {
		return Record{RunID: runID, File: file, Algorithm: algo.String(), Cache: string(variant), Err: err.Error()}
	}
	o, err := m.BuildOracle(file)
	if err != nil {
		return Record{RunID: runID, File: file, Algorithm: algo.String(), Cache: string(variant), Err: err.Error()}
	}

	cfg := m.Config
	cfg.CacheEnabled = variant != CacheNone
	cfg.HDDInnerReducer = reducer.KindDDMin

	c := newCache(variant, m.LRUSize)
	d := reducer.NewDriver(cfg, o, c)

	sol, err := runAlgorithm(ctx, d, model, algo)
	return NewRecord(runID, file, algo.String(), string(variant), sol, err)
}

func runAlgorithm(ctx context.Context, d *reducer.Driver, model input.Model, algo reducer.Kind) (reducer.Solution, error) {
	switch algo {
	case reducer.KindDDMin:
		return d.DDMin(ctx, model)
	case reducer.KindTicTocMin:
		return d.TicTocMin(ctx, model)
	case reducer.KindProbDD:
		return d.ProbDD(ctx, model)
	case reducer.KindHDD:
		return reducer.Solution{}, fmt.Errorf("HDD requires an input.Tree; run it with reducer.Driver.HDD")
	default:
		return reducer.Solution{}, fmt.Errorf("unknown algorithm: %v", algo)
	}
}
