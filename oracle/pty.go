// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package oracle

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"regexp"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/open-s4c/deltadbg/core"
	"github.com/open-s4c/deltadbg/input"
	"github.com/open-s4c/deltadbg/logger"
	"github.com/open-s4c/deltadbg/tools"
)

// PtyOracle runs a subprocess attached to a pseudo-terminal rather than
// plain pipes, for checkers that refuse to run without a controlling
// terminal (an interactive gdb-style session driving a debugger or
// dynamic analysis tool). Output is captured rather than forwarded to the
// calling process's stdio.
type PtyOracle struct {
	Cmdl        string
	Args        []string
	Env         []string
	Pattern     string
	FailPattern *regexp.Regexp
	PassPattern *regexp.Regexp
}

// NewPtyOracle builds a PtyOracle running cmdl with args attached to a pty.
func NewPtyOracle(cmdl string, args []string) *PtyOracle {
	return &PtyOracle{Cmdl: cmdl, Args: args, Pattern: "candidate-*"}
}

// inheritWinsize sizes ptmx to match the calling process's own controlling
// terminal, if it has one. A checker attached to a pty of the default 0x0
// size can misformat or refuse to run TUI output; when stdout isn't a real
// terminal (CI, a pipe), it leaves the pty at creack/pty's default.
func inheritWinsize(ptmx *os.File) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return
	}
	_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (o *PtyOracle) Query(ctx context.Context, c input.Candidate) core.Verdict {
	pat := o.Pattern
	if pat == "" {
		pat = "candidate-*"
	}
	fn, err := tools.Touch(pat)
	if err != nil {
		logger.Debugf("pty oracle: could not create temp file: %v", err)
		return core.Unresolved
	}
	defer func() {
		if err := tools.Remove(fn); err != nil {
			logger.Debugf("pty oracle: could not remove temp file: %v", err)
		}
	}()

	if err := tools.Dump(candidateStringer{c}, fn); err != nil {
		logger.Debugf("pty oracle: could not dump candidate: %v", err)
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
	cmd := exec.CommandContext(ctx, o.Cmdl, args...)
	cmd.Env = append(cmd.Env, o.Env...)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		logger.Debugf("pty oracle: could not start pty: %v", err)
		return core.Unresolved
	}
	defer func() { _ = ptmx.Close() }()
	inheritWinsize(ptmx)

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(&buf, ptmx)
		done <- copyErr
	}()

	waitErr := cmd.Wait()
	<-done

	if ctx.Err() == context.Canceled || ctx.Err() == context.DeadlineExceeded {
		return core.Unresolved
	}

	out := buf.String()
	switch {
	case o.FailPattern != nil && o.FailPattern.MatchString(out):
		return core.Fail
	case o.PassPattern != nil && o.PassPattern.MatchString(out):
		return core.Pass
	case o.FailPattern != nil || o.PassPattern != nil:
		return core.Unresolved
	case waitErr == nil:
		return core.Pass
	default:
		return core.Fail
	}
}
