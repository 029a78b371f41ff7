// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/oracle"
)

var checkCmd = cobra.Command{
	Use:   "check [flags] <input-file>",
	Short: "Queries the oracle once against input-file, unmodified",
	Args:  IsArgsn,
	RunE:  checkRun,

	DisableFlagsInUseLine: true,
}

var checkFlags = struct {
	needle         string
	command        string
	args           []string
	pty            bool
	failPattern    string
	passPattern    string
	validateLLVMIR bool
}{}

func initCheck() {
	rootCmd.AddCommand(&checkCmd)
	flags := checkCmd.PersistentFlags()
	flags.StringVar(&checkFlags.needle, "needle", "", "built-in oracle: FAIL iff the candidate contains needle")
	flags.StringVar(&checkFlags.command, "command", "", "external oracle: command to run against the input")
	flags.StringArrayVar(&checkFlags.args, "arg", nil, "argument for --command; \"{}\" is replaced by the candidate path")
	flags.BoolVar(&checkFlags.pty, "pty", false, "run --command attached to a pseudo-terminal")
	flags.StringVar(&checkFlags.failPattern, "fail-pattern", "", "regexp classifying --command output as FAIL")
	flags.StringVar(&checkFlags.passPattern, "pass-pattern", "", "regexp classifying --command output as PASS")
	flags.BoolVar(&checkFlags.validateLLVMIR, "validate-llvmir", false, "reject a non-parsing LLVM IR input as UNRESOLVED before querying the oracle")
	flags.SetInterspersed(false)
}

// checkRun queries the configured oracle once against input-file as-is,
// with no reduction, and reports the verdict. It is the fast path to
// confirm an oracle is wired correctly before spending a reduction run's
// worth of queries on it.
func checkRun(_ *cobra.Command, args []string) error {
	fn := args[0]

	o, err := buildCheckOracle()
	if err != nil {
		return cliErr(oracleError, err)
	}

	raw, err := os.ReadFile(fn)
	if err != nil {
		return cliErr(internalError, err)
	}

	v := o.Query(context.Background(), input.NewBytesCandidate(raw))
	logger.Println(v.String())

	if v != core.Fail {
		return cliFail(fmt.Errorf("%s: %v", fn, v))
	}
	return nil
}

func buildCheckOracle() (oracle.Oracle, error) {
	o, err := buildBaseCheckOracle()
	if err != nil {
		return nil, err
	}
	if checkFlags.validateLLVMIR {
		o = oracle.GuardLLVMIR(o)
	}
	return o, nil
}

func buildBaseCheckOracle() (oracle.Oracle, error) {
	switch {
	case checkFlags.command != "":
		var p oraclePatterns
		var err error
		if checkFlags.failPattern != "" {
			if p.fail, err = regexp.Compile(checkFlags.failPattern); err != nil {
				return nil, err
			}
		}
		if checkFlags.passPattern != "" {
			if p.pass, err = regexp.Compile(checkFlags.passPattern); err != nil {
				return nil, err
			}
		}
		if checkFlags.pty {
			o := oracle.NewPtyOracle(checkFlags.command, checkFlags.args)
			o.FailPattern, o.PassPattern = p.fail, p.pass
			return o, nil
		}
		o := oracle.NewCommandOracle(checkFlags.command, checkFlags.args)
		o.FailPattern, o.PassPattern = p.fail, p.pass
		return o, nil
	case checkFlags.needle != "":
		return oracle.SubstringOracle(checkFlags.needle), nil
	default:
		return nil, fmt.Errorf("no oracle configured: pass --needle or --command")
	}
}
