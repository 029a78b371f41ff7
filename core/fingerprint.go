// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"github.com/zeebo/xxh3"
)

// Fingerprint is a compact, injective-in-practice digest used as the cache
// key for a candidate. Two candidates that fingerprint equal are assumed to
// be the same candidate for caching purposes; the digest is computed either
// over the materialized bytes of the candidate or over its index-set
// encoding, never both, so that a change in the underlying Model's
// materialization never silently aliases with an index-set fingerprint.
type Fingerprint uint64

// FingerprintBytes hashes the materialized bytes of a candidate. This is the
// preferred fingerprint for Models whose Materialize output fully determines
// oracle behavior (the common case for byte/line/token based reduction).
func FingerprintBytes(b []byte) Fingerprint {
	return Fingerprint(xxh3.Hash(b))
}

// FingerprintBitseq hashes the index-set encoding of a configuration
// directly, without materializing it first. It is cheaper than
// FingerprintBytes but only sound when the mapping from index set to
// materialized candidate is injective for the Model in use (true for
// HDD's node-removal sets, not generally true for e.g. deduplicating
// token models where distinct subsets can materialize identically).
func FingerprintBitseq(bs Bitseq) Fingerprint {
	return Fingerprint(xxh3.HashString(bs.ToHexString()))
}
