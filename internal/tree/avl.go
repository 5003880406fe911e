// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tree implements the height-balanced product tree that
// deduplicates candidate vampire products within a single tile: the
// kernel may emit the same product for more than one fang pair, and
// the tree counts pairs per product while keeping lookups O(log n).
package tree

// node is a single AVL node keyed by product value.
type node struct {
	value       uint64
	fangPairs   uint8
	left, right *node
	height      int8
}

func height(n *node) int8 {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *node) int8 {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func recompute(n *node) {
	h := height(n.left)
	if r := height(n.right); r > h {
		h = r
	}
	n.height = h + 1
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	recompute(y)
	recompute(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	recompute(x)
	recompute(y)
	return y
}

func rebalance(n *node) *node {
	recompute(n)
	switch bf := balanceFactor(n); {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	default:
		return n
	}
}

// insert adds value under n, reporting whether a new node was created
// (false for a duplicate, which only bumps fangPairs).
func insert(n *node, value uint64) (*node, bool) {
	if n == nil {
		return &node{value: value, fangPairs: 1, height: 1}, true
	}
	var created bool
	switch {
	case value < n.value:
		n.left, created = insert(n.left, value)
	case value > n.value:
		n.right, created = insert(n.right, value)
	default:
		n.fangPairs++
		return n, false
	}
	return rebalance(n), created
}

// Tree is an AVL tree keyed by candidate vampire product; duplicate
// insertions merge by incrementing the node's fang-pair count. Owned
// exclusively by one worker's scratch state for the lifetime of one
// tile.
type Tree struct {
	root *node
	size int
}

// New returns an empty product tree.
func New() *Tree { return &Tree{} }

// Insert records one more fang pair producing value, creating a node
// for it on first sight.
func (t *Tree) Insert(value uint64) {
	var created bool
	t.root, created = insert(t.root, value)
	if created {
		t.size++
	}
}

// Len returns the number of distinct products currently held.
func (t *Tree) Len() int { return t.size }

// Drained is one product released by Cleanup, with the number of
// distinct fang pairs that produced it within the current tile.
type Drained struct {
	Value     uint64
	FangPairs uint8
}

// Cleanup detaches every node with value >= threshold, rebalancing the
// remaining tree, and returns the detached products in descending
// order (right-to-left, mirroring the source's traversal direction).
// A threshold of 0 drains the entire tree. Cleanup does not filter by
// fang-pair count: every detached product is returned with its
// FangPairs, and the caller decides which to keep.
func (t *Tree) Cleanup(threshold uint64) []Drained {
	var drained []Drained
	t.root = cleanup(t.root, threshold, &drained)
	t.size -= len(drained)
	return drained
}

// cleanup walks right-to-left (descending value), detaching and
// collecting every node with value >= threshold while rebalancing
// what remains attached.
func cleanup(n *node, threshold uint64, out *[]Drained) *node {
	if n == nil {
		return nil
	}
	if n.value >= threshold {
		// The whole right subtree is >= n.value >= threshold: drain it
		// first (descending), then this node, then recurse left for
		// any remaining values >= threshold there.
		drainAll(n.right, out)
		*out = append(*out, Drained{Value: n.value, FangPairs: n.fangPairs})
		return cleanup(n.left, threshold, out)
	}
	n.right = cleanup(n.right, threshold, out)
	return rebalance(n)
}

// drainAll appends every node of the subtree to out in descending
// (right-to-left) order.
func drainAll(n *node, out *[]Drained) {
	if n == nil {
		return
	}
	drainAll(n.right, out)
	*out = append(*out, Drained{Value: n.value, FangPairs: n.fangPairs})
	drainAll(n.left, out)
}
