// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/open-s4c/deltadbg/bench"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/oracle"
	"github.com/open-s4c/deltadbg/reducer"
)

const cpuFactor = 2

var benchCmd = cobra.Command{
	Use:   "bench [flags] <corpus-dir>",
	Short: "Runs every reducer against every file in a corpus directory",
	Args:  IsArgsn,
	RunE:  benchRun,

	DisableFlagsInUseLine: true,
}

var benchFlags = struct {
	algorithms string
	caches     string
	needle     string
	concurrent int
	lruSize    int
	csvFile    string
	jsonFile   string
	metricsURL string
}{}

func initBench() {
	rootCmd.AddCommand(&benchCmd)
	flags := benchCmd.PersistentFlags()
	flags.StringVar(&benchFlags.algorithms, "algorithms", "ddmin,tictocmin,probdd", "comma-separated algorithms to sweep")
	flags.StringVar(&benchFlags.caches, "caches", "none,singleflight,lru", "comma-separated cache variants to sweep")
	flags.StringVar(&benchFlags.needle, "needle", "", "built-in oracle: FAIL iff the candidate contains needle")
	flags.IntVarP(&benchFlags.concurrent, "jobs", "j", int(defaultInstances(0)), "number of matrix cells run concurrently")
	flags.IntVar(&benchFlags.lruSize, "cache-size", 256, "entry limit for the lru cache variant")
	flags.StringVar(&benchFlags.csvFile, "csv-log", "", "CSV file to append every cell's result to")
	flags.StringVar(&benchFlags.jsonFile, "json-log", "", "JSON file to store the full result set to")
	flags.StringVar(&benchFlags.metricsURL, "metrics-addr", "", "serve Prometheus metrics at this address (e.g. :9090) while the sweep runs")
}

func benchRun(_ *cobra.Command, args []string) error {
	dir := args[0]

	files, err := bench.LoadCorpus(dir)
	if err != nil {
		return cliErr(internalError, err)
	}
	if len(files) == 0 {
		return cliErr(internalError, fmt.Errorf("no files found in corpus %q", dir))
	}

	if benchFlags.needle == "" {
		return cliErr(oracleError, fmt.Errorf("no oracle configured: pass --needle"))
	}

	algos, err := parseKinds(benchFlags.algorithms)
	if err != nil {
		return cliErr(internalError, err)
	}
	variants, err := parseCacheVariants(benchFlags.caches)
	if err != nil {
		return cliErr(internalError, err)
	}

	m := bench.Matrix{
		Files:         files,
		Algorithms:    algos,
		CacheVariants: variants,
		LRUSize:       benchFlags.lruSize,
		Concurrency:   benchFlags.concurrent,
		Config:        reducer.DefaultConfig(),
		BuildModel: func(file string) (input.Model, error) {
			return input.NewFileModel(file)
		},
		BuildOracle: func(_ string) (oracle.Oracle, error) {
			return oracle.SubstringOracle(benchFlags.needle), nil
		},
	}

	if benchFlags.metricsURL != "" {
		registry := prometheus.NewRegistry()
		m.Metrics = bench.WithMetrics(registry)
		srv := &http.Server{Addr: benchFlags.metricsURL, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
		go func() {
			if lerr := srv.ListenAndServe(); lerr != nil && lerr != http.ErrServerClosed {
				logger.Debugf("metrics server stopped: %v", lerr)
			}
		}()
		defer srv.Close()
	}

	rs, err := m.Run(context.Background())
	if err != nil {
		return cliFail(err)
	}

	if benchFlags.csvFile != "" {
		for _, r := range rs.Records() {
			if lerr := bench.AppendCSV(benchFlags.csvFile, r); lerr != nil {
				logger.Debugf("could not append csv log: %v", lerr)
			}
		}
	}
	if benchFlags.jsonFile != "" {
		if lerr := rs.StoreJSON(benchFlags.jsonFile); lerr != nil {
			logger.Debugf("could not store json log: %v", lerr)
		}
	}

	logger.Println(bench.Table(rs.Records()))
	return nil
}

func parseKinds(s string) ([]reducer.Kind, error) {
	var out []reducer.Kind
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		k, err := parseKind(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no algorithms given")
	}
	return out, nil
}

func parseCacheVariants(s string) ([]bench.CacheVariant, error) {
	var out []bench.CacheVariant
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		switch tok {
		case "":
			continue
		case "none":
			out = append(out, bench.CacheNone)
		case "singleflight":
			out = append(out, bench.CacheSingleFlight)
		case "lru":
			out = append(out, bench.CacheLRU)
		default:
			return nil, fmt.Errorf("unknown cache variant %q", tok)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no cache variants given")
	}
	return out, nil
}

func defaultInstances(nb uint) uint {
	if nb != 0 {
		return nb
	}
	cpus := uint(runtime.NumCPU())
	if cpus == 1 {
		return 1
	}
	return cpus / cpuFactor
}
