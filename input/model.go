// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"os"

	"github.com/open-s4c/deltadbg/core"
)

// Atom is the smallest indivisible unit of an input: a byte, a line, a
// token, or an opaque item supplied by the caller for list inputs.
type Atom = any

// Model is a uniform, immutable view over a reducible input. It owns the
// decoded atom sequence; reducers never touch the underlying buffer, only
// the index set identifying a configuration.
type Model interface {
	// Size returns n, the number of atoms.
	Size() int
	// Materialize assembles the external representation for index set s,
	// preserving atom order. Pure and deterministic.
	Materialize(s core.Bitseq) Candidate
	// Atoms returns a read-only view of the n atoms.
	Atoms() []Atom
}

// ByteModel treats an input as a flat sequence of bytes.
type ByteModel struct {
	atoms []Atom
	raw   []byte
}

// NewByteModel wraps raw as a byte-granularity Model.
func NewByteModel(raw []byte) *ByteModel {
	atoms := make([]Atom, len(raw))
	for i, b := range raw {
		atoms[i] = b
	}
	return &ByteModel{atoms: atoms, raw: raw}
}

func (m *ByteModel) Size() int     { return len(m.atoms) }
func (m *ByteModel) Atoms() []Atom { return m.atoms }

func (m *ByteModel) Materialize(s core.Bitseq) Candidate {
	out := make([]byte, 0, len(m.atoms))
	for _, i := range s.Indices() {
		if i < len(m.raw) {
			out = append(out, m.raw[i])
		}
	}
	return NewBytesCandidate(out)
}

// LineModel treats an input as a sequence of newline-terminated lines. The
// trailing newline of each line (if any) is preserved on materialization so
// the reassembled candidate reads naturally.
type LineModel struct {
	atoms []Atom
	lines []string
}

// NewLineModel splits raw into lines, keeping the line terminator attached
// to the line it follows.
func NewLineModel(raw string) *LineModel {
	var lines []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			lines = append(lines, raw[start:i+1])
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	atoms := make([]Atom, len(lines))
	for i, l := range lines {
		atoms[i] = l
	}
	return &LineModel{atoms: atoms, lines: lines}
}

func (m *LineModel) Size() int     { return len(m.atoms) }
func (m *LineModel) Atoms() []Atom { return m.atoms }

func (m *LineModel) Materialize(s core.Bitseq) Candidate {
	var out string
	for _, i := range s.Indices() {
		if i < len(m.lines) {
			out += m.lines[i]
		}
	}
	return NewStringCandidate(out)
}

// Tokenizer splits raw text into an ordered list of tokens, each rendered
// back as its original text so materialization is a plain concatenation.
type Tokenizer func(raw string) []string

// TokenModel treats an input as a sequence of tokens produced by a
// caller-supplied Tokenizer, covering the "custom-tokenizer" granularity.
// A TokenModel may also be constructed from a tree-sitter lexer via
// NewTreeSitterTokenModel in treesitter.go.
type TokenModel struct {
	atoms  []Atom
	tokens []string
}

// NewTokenModel tokenizes raw with tok.
func NewTokenModel(raw string, tok Tokenizer) *TokenModel {
	tokens := tok(raw)
	atoms := make([]Atom, len(tokens))
	for i, t := range tokens {
		atoms[i] = t
	}
	return &TokenModel{atoms: atoms, tokens: tokens}
}

func (m *TokenModel) Size() int     { return len(m.atoms) }
func (m *TokenModel) Atoms() []Atom { return m.atoms }

func (m *TokenModel) Materialize(s core.Bitseq) Candidate {
	var out string
	for _, i := range s.Indices() {
		if i < len(m.tokens) {
			out += m.tokens[i]
		}
	}
	return NewStringCandidate(out)
}

// ListModel treats an input as a sequence of opaque caller-supplied items.
type ListModel struct {
	atoms []Atom
	items []any
}

// NewListModel wraps items as a list-granularity Model.
func NewListModel(items []any) *ListModel {
	atoms := make([]Atom, len(items))
	copy(atoms, items)
	return &ListModel{atoms: atoms, items: items}
}

func (m *ListModel) Size() int     { return len(m.atoms) }
func (m *ListModel) Atoms() []Atom { return m.atoms }

func (m *ListModel) Materialize(s core.Bitseq) Candidate {
	out := make([]any, 0, len(m.items))
	for _, i := range s.Indices() {
		if i < len(m.items) {
			out = append(out, m.items[i])
		}
	}
	return NewListCandidate(out)
}

// NewStringModel builds a byte-granularity Model directly from a string.
func NewStringModel(s string) Model {
	return NewByteModel([]byte(s))
}

// NewFileModel reads path once and builds a byte-granularity Model over its
// contents. The file is never re-read during reduction, matching the
// contract that an input's atom buffer is immutable after construction.
func NewFileModel(path string) (Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewByteModel(raw), nil
}
