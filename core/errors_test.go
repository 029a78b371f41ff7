// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractViolationWrapsSentinel(t *testing.T) {
	fp := FingerprintBytes([]byte("abc"))
	violation := NewContractViolation(fp, ErrNotFailing)

	assert.ErrorIs(t, violation, ErrNotFailing)
	assert.Equal(t, fp, violation.Fingerprint)
	assert.Equal(t, ErrNotFailing.Error(), violation.Error())
}

func TestContractViolationUnwrap(t *testing.T) {
	violation := NewContractViolation(Fingerprint(0), ErrInconsistentOracle)
	assert.True(t, errors.Is(violation, ErrInconsistentOracle))
}
