// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/open-s4c/deltadbg/bench"
	"github.com/open-s4c/deltadbg/cache"
	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/oracle"
	"github.com/open-s4c/deltadbg/reducer"
	"github.com/open-s4c/deltadbg/tools"
)

var reduceCmd = cobra.Command{
	Use:   "reduce [flags] <input-file>",
	Short: "Reduces input-file to a smaller failure-inducing test case",
	Args:  IsArgsn,
	RunE:  reduceRun,

	DisableFlagsInUseLine: true,
}

var reduceFlags = struct {
	granularity    string
	algorithm      string
	lang           string
	cache          string
	lruSize        int
	filter         string
	timeout        time.Duration
	needle         string
	command        string
	args           []string
	pty            bool
	failPattern    string
	passPattern    string
	validateLLVMIR bool
	output         string
	csvFile        string
}{}

func initReduce() {
	rootCmd.AddCommand(&reduceCmd)
	flags := reduceCmd.PersistentFlags()
	addReduceFlags(flags)
}

func addReduceFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&reduceFlags.granularity, "granularity", "g",
		tools.GetEnv("DELTADBG_DEFAULT_GRANULARITY"), "atom granularity (bytes|lines|tokens)")
	flags.StringVarP(&reduceFlags.algorithm, "algorithm", "a",
		tools.GetEnv("DELTADBG_DEFAULT_ALGORITHM"), "reduction algorithm (ddmin|tictocmin|hdd|probdd)")
	flags.StringVar(&reduceFlags.lang, "lang", "", "tree-sitter language for hdd (go|python|bash|yaml)")
	flags.StringVar(&reduceFlags.cache, "cache", "singleflight", "verdict cache (none|singleflight|lru)")
	flags.IntVar(&reduceFlags.lruSize, "cache-size", 256, "entry limit for --cache lru")
	flags.StringVar(&reduceFlags.filter, "filter", "subset", "seen-set filter (none|dup|subset)")
	flags.DurationVar(&reduceFlags.timeout, "timeout", 0, "time budget for the whole run, 0 for unbounded")
	flags.StringVar(&reduceFlags.needle, "needle", "", "built-in oracle: FAIL iff the candidate contains needle")
	flags.StringVar(&reduceFlags.command, "command", "", "external oracle: command to run against each candidate")
	flags.StringArrayVar(&reduceFlags.args, "arg", nil, "argument for --command; \"{}\" is replaced by the candidate path")
	flags.BoolVar(&reduceFlags.pty, "pty", false, "run --command attached to a pseudo-terminal")
	flags.StringVar(&reduceFlags.failPattern, "fail-pattern", "", "regexp classifying --command output as FAIL")
	flags.StringVar(&reduceFlags.passPattern, "pass-pattern", "", "regexp classifying --command output as PASS")
	flags.BoolVar(&reduceFlags.validateLLVMIR, "validate-llvmir", false, "reject non-parsing LLVM IR candidates as UNRESOLVED before querying the oracle")
	flags.StringVarP(&reduceFlags.output, "output", "o", "", "file to write the reduced candidate to (default stdout)")
	flags.StringVar(&reduceFlags.csvFile, "csv-log", "", "CSV file to append the final result to")
	flags.SetInterspersed(false)
}

func reduceRun(_ *cobra.Command, args []string) (err error) {
	fn := args[0]

	o, err := buildOracle()
	if err != nil {
		return cliErr(oracleError, err)
	}

	cfg, err := buildReduceConfig()
	if err != nil {
		return cliErr(internalError, err)
	}

	algo, err := parseKind(reduceFlags.algorithm)
	if err != nil {
		return cliErr(internalError, err)
	}

	var (
		sol    reducer.Solution
		result string
	)

	defer func() {
		rec := bench.NewRecord(bench.NewRunID(), fn, reduceFlags.algorithm, reduceFlags.cache, sol, err)
		if reduceFlags.csvFile != "" {
			if lerr := bench.AppendCSV(reduceFlags.csvFile, rec); lerr != nil {
				logger.Debugf("could not append csv log: %v", lerr)
			}
		}
	}()

	if algo == reducer.KindHDD {
		sol, result, err = runHDD(fn, o, cfg)
	} else {
		sol, result, err = runSequence(fn, o, cfg, algo)
	}
	if err != nil && !errors.Is(err, core.ErrCancelled) {
		return cliFail(err)
	}

	logger.Println(sol.Counters.String())
	if werr := writeResult(result); werr != nil {
		return cliFail(werr)
	}
	if err != nil {
		return cliFail(err)
	}
	return nil
}

func buildOracle() (oracle.Oracle, error) {
	o, err := buildBaseOracle()
	if err != nil {
		return nil, err
	}
	if reduceFlags.validateLLVMIR {
		o = oracle.GuardLLVMIR(o)
	}
	return o, nil
}

func buildBaseOracle() (oracle.Oracle, error) {
	switch {
	case reduceFlags.command != "":
		pattern, err := compileOraclePatterns()
		if err != nil {
			return nil, err
		}
		if reduceFlags.pty {
			o := oracle.NewPtyOracle(reduceFlags.command, reduceFlags.args)
			o.FailPattern, o.PassPattern = pattern.fail, pattern.pass
			return o, nil
		}
		o := oracle.NewCommandOracle(reduceFlags.command, reduceFlags.args)
		o.FailPattern, o.PassPattern = pattern.fail, pattern.pass
		return o, nil
	case reduceFlags.needle != "":
		return oracle.SubstringOracle(reduceFlags.needle), nil
	default:
		return nil, fmt.Errorf("no oracle configured: pass --needle or --command")
	}
}

type oraclePatterns struct {
	fail *regexp.Regexp
	pass *regexp.Regexp
}

func compileOraclePatterns() (oraclePatterns, error) {
	var (
		p   oraclePatterns
		err error
	)
	if reduceFlags.failPattern != "" {
		if p.fail, err = regexp.Compile(reduceFlags.failPattern); err != nil {
			return p, err
		}
	}
	if reduceFlags.passPattern != "" {
		if p.pass, err = regexp.Compile(reduceFlags.passPattern); err != nil {
			return p, err
		}
	}
	return p, nil
}

func buildReduceConfig() (reducer.Config, error) {
	cfg := reducer.DefaultConfig()
	cfg.TimeBudget = reduceFlags.timeout
	cfg.CacheEnabled = reduceFlags.cache != "none"

	switch reduceFlags.filter {
	case "none":
		cfg.Filter = reducer.FilterNone
	case "dup":
		cfg.Filter = reducer.FilterDup
	case "subset":
		cfg.Filter = reducer.FilterSubset
	default:
		return cfg, fmt.Errorf("unknown filter %q", reduceFlags.filter)
	}
	return cfg, nil
}

func parseKind(s string) (reducer.Kind, error) {
	switch strings.ToLower(s) {
	case "ddmin":
		return reducer.KindDDMin, nil
	case "tictocmin":
		return reducer.KindTicTocMin, nil
	case "hdd":
		return reducer.KindHDD, nil
	case "probdd":
		return reducer.KindProbDD, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", s)
	}
}

func buildCache() cache.Cache {
	switch reduceFlags.cache {
	case "none":
		return nil
	case "lru":
		return cache.NewLRUCache(cache.NewSingleFlightCache(), reduceFlags.lruSize)
	default:
		return cache.NewSingleFlightCache()
	}
}

func buildModel(fn string) (input.Model, error) {
	switch reduceFlags.granularity {
	case "lines":
		raw, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		return input.NewLineModel(string(raw)), nil
	case "tokens":
		raw, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		return input.NewTokenModel(string(raw), whitespaceTokenizer), nil
	default:
		return input.NewFileModel(fn)
	}
}

func whitespaceTokenizer(raw string) []string {
	return strings.Fields(raw)
}

func runSequence(fn string, o oracle.Oracle, cfg reducer.Config, algo reducer.Kind) (reducer.Solution, string, error) {
	model, err := buildModel(fn)
	if err != nil {
		return reducer.Solution{}, "", err
	}

	d := reducer.NewDriver(cfg, o, buildCache())
	ctx := context.Background()

	var sol reducer.Solution
	switch algo {
	case reducer.KindDDMin:
		sol, err = d.DDMin(ctx, model)
	case reducer.KindTicTocMin:
		sol, err = d.TicTocMin(ctx, model)
	case reducer.KindProbDD:
		sol, err = d.ProbDD(ctx, model)
	default:
		err = fmt.Errorf("algorithm %v needs a tree-sitter language, pass --algorithm hdd --lang", algo)
	}
	if err != nil && !errors.Is(err, core.ErrCancelled) {
		return sol, "", err
	}
	return sol, model.Materialize(sol.Bitseq).String(), err
}

func runHDD(fn string, o oracle.Oracle, cfg reducer.Config) (reducer.Solution, string, error) {
	lang, err := treeSitterLanguage(reduceFlags.lang)
	if err != nil {
		return reducer.Solution{}, "", err
	}

	raw, err := os.ReadFile(fn)
	if err != nil {
		return reducer.Solution{}, "", err
	}

	ctx := context.Background()
	tree, err := input.NewTreeSitterTree(ctx, raw, lang, nil, defaultPlaceholders(reduceFlags.lang))
	if err != nil {
		return reducer.Solution{}, "", err
	}

	d := reducer.NewDriver(cfg, o, buildCache())
	sol, final, err := d.HDD(ctx, tree)
	if err != nil && !errors.Is(err, core.ErrCancelled) {
		return sol, "", err
	}
	return sol, final.Yield(), err
}

func treeSitterLanguage(name string) (*sitter.Language, error) {
	switch strings.ToLower(name) {
	case "go", "golang":
		return golang.GetLanguage(), nil
	case "python":
		return python.GetLanguage(), nil
	case "bash":
		return bash.GetLanguage(), nil
	case "yaml":
		return yaml.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unknown or missing --lang %q for --algorithm hdd", name)
	}
}

// defaultPlaceholders names, per grammar, the node types whose yield HDD
// substitutes with placeholder text rather than emptying when pruned,
// keeping the reduced candidate syntactically valid instead of UNRESOLVED.
func defaultPlaceholders(name string) input.PlaceholderTypes {
	switch strings.ToLower(name) {
	case "go", "golang":
		return input.PlaceholderTypes{
			"block":          "{}",
			"argument_list":  "()",
			"parameter_list": "()",
			"literal_value":  "{}",
		}
	case "python":
		return input.PlaceholderTypes{
			"block": "pass",
		}
	case "bash":
		return input.PlaceholderTypes{
			"compound_statement": ":",
		}
	default:
		return nil
	}
}

func writeResult(result string) error {
	if reduceFlags.output == "" {
		logger.Println(result)
		return nil
	}
	return os.WriteFile(reduceFlags.output, []byte(result), 0o644)
}
