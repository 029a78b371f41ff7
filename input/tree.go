// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package input

import (
	"strings"

	"github.com/jinzhu/copier"

	"github.com/open-s4c/deltadbg/core"
)

// Node is one node of a rooted ordered tree whose yield assembles to a
// candidate. Leaf nodes carry Text; internal nodes assemble their yield
// from their Children in order.
type Node struct {
	Children []*Node
	Text     string
	// Removable marks a node as eligible for pruning by HDD. A node
	// required by the grammar (e.g. a mandatory syntactic child) is left
	// with Removable == false by the tree builder.
	Removable bool
	// Placeholder, when non-empty, is substituted for this removable
	// node's yield when PruneLevel prunes it, instead of leaving an empty
	// leaf.
	Placeholder string
}

func (n *Node) isLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) yield(buf *strings.Builder) {
	if n.isLeaf() {
		buf.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.yield(buf)
	}
}

// clone deep-copies the node via jinzhu/copier, the same "clone before
// mutate" idiom used when expanding LLVM instructions: HDD commits a
// pruned level by cloning rather than mutating the tree reducers are still
// evaluating trial candidates against.
func (n *Node) clone() *Node {
	cp := &Node{}
	if err := copier.CopyWithOption(cp, n, copier.Option{IgnoreEmpty: false, DeepCopy: true}); err != nil {
		// Struct shapes are identical by construction; copier can only
		// fail here on a type mismatch, which would be a programming
		// error, not a runtime condition to recover from.
		panic(err)
	}
	return cp
}

// Tree is a rooted ordered tree of Nodes, the input model for HDD.
type Tree struct {
	Root *Node
}

// NewTree wraps root as a Tree.
func NewTree(root *Node) *Tree {
	return &Tree{Root: root}
}

// Yield assembles the tree's current candidate string by concatenating leaf
// text in order.
func (t *Tree) Yield() string {
	var buf strings.Builder
	t.Root.yield(&buf)
	return buf.String()
}

// nodesAtLevel collects, in left-to-right order, every node at the given
// depth from the root (root is level 0). The traversal mirrors the
// teacher's recursive visitor: depth tracked on the way down, nodes
// appended in visit order so sibling order is preserved.
func nodesAtLevel(n *Node, level, depth int, out *[]*Node) {
	if depth == level {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children {
		nodesAtLevel(c, level, depth+1, out)
	}
}

// NodesAtLevel returns the nodes at the given level, root at level 0.
func (t *Tree) NodesAtLevel(level int) []*Node {
	var out []*Node
	nodesAtLevel(t.Root, level, 0, &out)
	return out
}

// RemovableAtLevel returns the subset of NodesAtLevel(level) whose
// Removable flag is set; these are the atoms HDD hands to its inner
// sequence reducer for that level.
func (t *Tree) RemovableAtLevel(level int) []*Node {
	var out []*Node
	for _, n := range t.NodesAtLevel(level) {
		if n.Removable {
			out = append(out, n)
		}
	}
	return out
}

// Depth returns the maximum level present in the tree.
func (t *Tree) Depth() int {
	d := 0
	var walk func(n *Node, level int)
	walk = func(n *Node, level int) {
		if level > d {
			d = level
		}
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(t.Root, 0)
	return d
}

// PruneLevel returns a new Tree, cloned copy-on-write from t, in which the
// removable nodes at level that are not in keep have been pruned: such a
// node becomes a leaf holding its Placeholder text if it has one, and an
// empty leaf otherwise. Non-removable nodes are never pruned.
func (t *Tree) PruneLevel(level int, keep core.Bitseq) *Tree {
	clone := t.Root.clone()
	nodes := (&Tree{Root: clone}).RemovableAtLevel(level)
	kept := keep.Indices()
	keepSet := make(map[int]bool, len(kept))
	for _, i := range kept {
		keepSet[i] = true
	}
	for i, n := range nodes {
		if keepSet[i] {
			continue
		}
		if n.Placeholder != "" {
			n.Children = nil
			n.Text = n.Placeholder
			continue
		}
		n.Children = nil
		n.Text = ""
	}
	return &Tree{Root: clone}
}

// TreeModel adapts a Tree's removable nodes at a single level into a
// sequence Model, so HDD can drive the same ddmin/TicTocMin reducers it
// uses for flat inputs. The oracle wrapping is the caller's responsibility
// (O'(S) = O(yield(T with nodes-not-in-S at this level pruned))).
type TreeModel struct {
	tree  *Tree
	level int
	atoms []Atom
	nodes []*Node
}

// NewTreeModel builds a sequence Model over the removable nodes of tree at
// level.
func NewTreeModel(tree *Tree, level int) *TreeModel {
	nodes := tree.RemovableAtLevel(level)
	atoms := make([]Atom, len(nodes))
	for i, n := range nodes {
		atoms[i] = n
	}
	return &TreeModel{tree: tree, level: level, atoms: atoms, nodes: nodes}
}

func (m *TreeModel) Size() int     { return len(m.atoms) }
func (m *TreeModel) Atoms() []Atom { return m.atoms }

// Materialize prunes the level to the given index set and returns the
// resulting tree's yield as a KindTree Candidate.
func (m *TreeModel) Materialize(s core.Bitseq) Candidate {
	pruned := m.tree.PruneLevel(m.level, s)
	return NewTreeCandidate(pruned.Yield())
}

// PrunedTree returns the tree obtained by pruning this model's level to s,
// for callers (HDD) that need to keep building on the resulting tree rather
// than just its yield.
func (m *TreeModel) PrunedTree(s core.Bitseq) *Tree {
	return m.tree.PruneLevel(m.level, s)
}
