// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintBytesDeterministic(t *testing.T) {
	a := FingerprintBytes([]byte("abcxxx"))
	b := FingerprintBytes([]byte("abcxxx"))
	assert.Equal(t, a, b)
}

func TestFingerprintBytesDistinguishesContent(t *testing.T) {
	a := FingerprintBytes([]byte("abc"))
	b := FingerprintBytes([]byte("abd"))
	assert.NotEqual(t, a, b)
}

func TestFingerprintBitseqDeterministic(t *testing.T) {
	bs := NewBitseq(8).Set(1, 3, 5)
	a := FingerprintBitseq(bs)
	b := FingerprintBitseq(bs.Clone())
	assert.Equal(t, a, b)
}

func TestFingerprintBitseqDistinguishesConfigurations(t *testing.T) {
	a := FingerprintBitseq(NewBitseq(8).Set(1, 3))
	b := FingerprintBitseq(NewBitseq(8).Set(1, 4))
	assert.NotEqual(t, a, b)
}
