// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import "fmt"

// Kind identifies which accessor of a Candidate is valid to call.
type Kind int

const (
	// KindBytes marks a Candidate backed by a byte slice.
	KindBytes Kind = iota
	// KindString marks a Candidate backed by a string.
	KindString
	// KindList marks a Candidate backed by a slice of opaque items.
	KindList
	// KindTree marks a Candidate backed by a tree yield (itself a string).
	KindTree
)

func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Candidate is the materialized external representation of a configuration:
// whichever of bytes, string, list of items, or tree yield matches the
// Model's codomain. It is a small closed sum type rather than an `any` so
// that oracles get a typed contract instead of needing a runtime assertion.
type Candidate struct {
	kind  Kind
	bytes []byte
	str   string
	list  []any
}

// NewBytesCandidate wraps b as a Candidate of KindBytes.
func NewBytesCandidate(b []byte) Candidate {
	return Candidate{kind: KindBytes, bytes: b}
}

// NewStringCandidate wraps s as a Candidate of KindString.
func NewStringCandidate(s string) Candidate {
	return Candidate{kind: KindString, str: s}
}

// NewListCandidate wraps items as a Candidate of KindList.
func NewListCandidate(items []any) Candidate {
	return Candidate{kind: KindList, list: items}
}

// NewTreeCandidate wraps a tree's yield as a Candidate of KindTree. The
// yield string is what an oracle inspects; KindTree is kept distinct from
// KindString so a caller can tell a flattened tree apart from a genuine
// string input when reporting results.
func NewTreeCandidate(yield string) Candidate {
	return Candidate{kind: KindTree, str: yield}
}

// Kind reports which accessor is valid.
func (c Candidate) Kind() Kind {
	return c.kind
}

// Bytes returns the byte representation. Valid for KindBytes; for
// KindString/KindTree it returns the UTF-8 encoding of the string.
func (c Candidate) Bytes() []byte {
	switch c.kind {
	case KindBytes:
		return c.bytes
	case KindString, KindTree:
		return []byte(c.str)
	default:
		return nil
	}
}

// String returns the string representation. Valid for KindString/KindTree;
// for KindBytes it decodes the bytes as UTF-8.
func (c Candidate) String() string {
	switch c.kind {
	case KindString, KindTree:
		return c.str
	case KindBytes:
		return string(c.bytes)
	default:
		return fmt.Sprintf("%v", c.list)
	}
}

// Items returns the item list. Valid only for KindList.
func (c Candidate) Items() []any {
	return c.list
}

// Len reports the size of the underlying representation, in whichever unit
// matches its Kind (bytes, bytes of the string, or items).
func (c Candidate) Len() int {
	switch c.kind {
	case KindBytes:
		return len(c.bytes)
	case KindString, KindTree:
		return len(c.str)
	case KindList:
		return len(c.list)
	default:
		return 0
	}
}
