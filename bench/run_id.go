// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import "github.com/google/uuid"

// NewRunID returns a fresh identifier tagging every Record of one matrix
// run, so records from separate invocations of the same (file, algorithm,
// cache) combination can still be told apart after merging result files.
func NewRunID() string {
	return uuid.New().String()
}
