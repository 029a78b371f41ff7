// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"errors"
	"os/exec"
	"regexp"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/tools"
)

// CommandOracle shells out to an external checker: it writes the candidate
// to a temp file, runs a configured command against it with a deadline,
// and classifies the result. An oracle that can fail degrades to
// Unresolved and logs rather than propagating the error.
type CommandOracle struct {
	// Cmdl is the command line to run; Args are passed verbatim except
	// that every argument equal to "{}" is replaced with the temp file
	// path holding the materialized candidate. If no argument is "{}",
	// the path is appended as the last argument.
	Cmdl string
	Args []string
	Env  []string

	// FailPattern and PassPattern, when non-nil, classify the combined
	// stdout/stderr of the command: FailPattern takes priority, so an
	// oracle can distinguish two overlapping failure messages by
	// checking the more specific one first. When both are nil,
	// classification falls back to exit code: zero is Pass, nonzero is
	// Fail.
	FailPattern *regexp.Regexp
	PassPattern *regexp.Regexp

	// Pattern is the filename pattern passed to tools.Touch for the
	// temporary candidate file.
	Pattern string
}

// NewCommandOracle builds a CommandOracle running cmdl with args against a
// temp file holding the candidate, classifying on exit code.
func NewCommandOracle(cmdl string, args []string) *CommandOracle {
	return &CommandOracle{Cmdl: cmdl, Args: args, Pattern: "candidate-*"}
}

func (o *CommandOracle) pattern() string {
	if o.Pattern != "" {
		return o.Pattern
	}
	return "candidate-*"
}

func (o *CommandOracle) Query(ctx context.Context, c input.Candidate) core.Verdict {
	fn, err := tools.Touch(o.pattern())
	if err != nil {
		logger.Debugf("command oracle: could not create temp file: %v", err)
		return core.Unresolved
	}
	defer func() {
		if err := tools.Remove(fn); err != nil {
			logger.Debugf("command oracle: could not remove temp file: %v", err)
		}
	}()

	if err := tools.Dump(candidateStringer{c}, fn); err != nil {
		logger.Debugf("command oracle: could not dump candidate: %v", err)
		return core.Unresolved
	}

	args := make([]string, len(o.Args))
	replaced := false
	for i, a := range o.Args {
		if a == "{}" {
			args[i] = fn
			replaced = true
			continue
		}
		args[i] = a
	}
	if !replaced {
		args = append(args, fn)
	}

	out, err := tools.RunCmdContext(ctx, o.Cmdl, args, o.Env)
	if ctx.Err() == context.Canceled || ctx.Err() == context.DeadlineExceeded {
		return core.Unresolved
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		logger.Debugf("command oracle: could not run command: %v", err)
		return core.Unresolved
	}

	switch {
	case o.FailPattern != nil && o.FailPattern.MatchString(out):
		return core.Fail
	case o.PassPattern != nil && o.PassPattern.MatchString(out):
		return core.Pass
	case o.FailPattern != nil || o.PassPattern != nil:
		return core.Unresolved
	case err == nil:
		return core.Pass
	default:
		return core.Fail
	}
}

type candidateStringer struct {
	c input.Candidate
}

func (s candidateStringer) String() string {
	return s.c.String()
}
