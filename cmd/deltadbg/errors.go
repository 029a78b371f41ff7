// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os/exec"

	"github.com/open-s4c/deltadbg/core"
)

type errorType int

const (
	reductionFail errorType = 2
	internalError errorType = 1
	oracleError   errorType = 1
	noError       errorType = 0
)

type cliError struct {
	typ errorType
	err error
}

func cliFail(err error) *cliError {
	return &cliError{typ: reductionFail, err: err}
}

func (e *cliError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *cliError) Code() int {
	return int(e.typ)
}

func cliErr(typ errorType, err error) *cliError {
	return &cliError{typ: typ, err: err}
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *cliError:
		return e.Code()
	case *exec.ExitError:
		return e.ExitCode()
	default:
		if errors.Is(err, core.ErrNotFailing) || errors.Is(err, core.ErrEmptyCandidate) {
			return int(reductionFail)
		}
		return -1
	}
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
