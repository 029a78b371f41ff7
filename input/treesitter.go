// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// RequiredTypes names tree-sitter node types that HDD must never prune on
// their own (mandatory syntactic children for the grammar in use, e.g. a
// function's parameter list). A node whose Type() is in this set is built
// with Removable == false; NewTreeSitterTree leaves everything else
// Removable == true.
type RequiredTypes map[string]bool

// PlaceholderTypes names tree-sitter node types that are safe to prune but
// not safe to simply empty: a function body or argument list left as ""
// can turn valid source into something the grammar no longer accepts. A
// node whose Type() is a key here stays Removable == true, but its
// Node.Placeholder is set to the mapped text, so Tree.PruneLevel swaps in
// the placeholder instead of an empty leaf when the node is dropped.
type PlaceholderTypes map[string]string

// NewTreeSitterTree parses content with lang and adapts the resulting
// concrete syntax tree into an input.Tree: the same parse tree-sitter uses
// to produce a flat token stream also supplies HDD's hierarchical view, so
// a single parse backs both flat and tree-structured reduction.
func NewTreeSitterTree(ctx context.Context, content []byte, lang *sitter.Language, required RequiredTypes, placeholders PlaceholderTypes) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}

	root := adaptNode(tree.RootNode(), content, required, placeholders)
	return NewTree(root), nil
}

func adaptNode(n *sitter.Node, content []byte, required RequiredTypes, placeholders PlaceholderTypes) *Node {
	count := int(n.ChildCount())
	if count == 0 {
		return &Node{
			Text:        string(n.Content(content)),
			Removable:   !required[n.Type()],
			Placeholder: placeholders[n.Type()],
		}
	}

	out := &Node{Removable: !required[n.Type()], Placeholder: placeholders[n.Type()]}
	for i := 0; i < count; i++ {
		out.Children = append(out.Children, adaptNode(n.Child(i), content, required, placeholders))
	}
	return out
}

// TokenizeTreeSitter flattens a tree-sitter parse into an ordered token
// list, reusing the same parse for flat (sequence) reduction instead of the
// hierarchical one: each leaf node, named or anonymous, becomes one token
// holding its source text. The whitespace between tokens is not kept, so
// concatenating the tokens does not reproduce the original spacing.
func TokenizeTreeSitter(ctx context.Context, content []byte, lang *sitter.Language) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}

	var tokens []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if int(n.ChildCount()) == 0 {
			tokens = append(tokens, string(n.Content(content)))
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	return tokens, nil
}

// NewTreeSitterTokenModel builds a flat TokenModel from a tree-sitter parse
// of raw, covering the "custom-tokenizer" granularity option with a real
// lexer instead of a hand-rolled split function.
func NewTreeSitterTokenModel(ctx context.Context, raw string, lang *sitter.Language) (*TokenModel, error) {
	tokens, err := TokenizeTreeSitter(ctx, []byte(raw), lang)
	if err != nil {
		return nil, err
	}
	atoms := make([]Atom, len(tokens))
	for i, t := range tokens {
		atoms[i] = t
	}
	return &TokenModel{atoms: atoms, tokens: tokens}, nil
}
