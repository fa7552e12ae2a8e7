// Package twothree implements a 2-3 tree that stores its keys in the leaves.
//
// Every inner node has 2 or 3 children and all leaves sit at the same depth.
// Inner nodes only carry separators, each being the minimum key of the
// child to its right, so a lookup is a single root-to-leaf descent. Splits
// on insertion and merges on removal are repaired on the way back up and
// touch at most one node per level, so every mutation costs O(log n).
//
// A Tree is not safe for concurrent use.
package twothree

import (
	"cmp"
	"errors"
)

// ErrEmptyTree is returned by Min and Max when the tree holds no keys.
var ErrEmptyTree = errors.New("twothree: empty tree")

type Tree[K cmp.Ordered] struct {
	root   *node[K]
	count  int
	height int
}

func New[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{height: -1}
}

// Of returns a tree holding keys. Duplicates are collapsed.
func Of[K cmp.Ordered](keys ...K) *Tree[K] {
	t := New[K]()
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

// Len returns the number of stored keys.
func (t *Tree[K]) Len() int { return t.count }

// Height is the number of edges between the root and any leaf, -1 for an
// empty tree.
func (t *Tree[K]) Height() int { return t.height }

func (t *Tree[K]) IsEmpty() bool { return t.count == 0 }

// Clear drops every key.
func (t *Tree[K]) Clear() {
	t.root = nil
	t.count = 0
	t.height = -1
}

func (t *Tree[K]) Contains(key K) bool {
	leaf := t.findLeaf(key)
	return leaf != nil && leaf.min == key
}

func (t *Tree[K]) Min() (K, error) {
	if t.root == nil {
		var zero K
		return zero, ErrEmptyTree
	}
	return t.root.min, nil
}

func (t *Tree[K]) Max() (K, error) {
	n := t.root
	if n == nil {
		var zero K
		return zero, ErrEmptyTree
	}
	for !n.isLeaf() {
		n = n.child[n.n-1]
	}
	return n.min, nil
}

// Replace removes from and inserts to, reporting whether from was present.
// to is inserted either way.
func (t *Tree[K]) Replace(from, to K) bool {
	found := t.Remove(from)
	t.Insert(to)
	return found
}

// findLeaf descends to the leaf that holds key, or to the leaf next to
// which key would be inserted. It returns nil for an empty tree.
func (t *Tree[K]) findLeaf(key K) *node[K] {
	n := t.root
	for n != nil && !n.isLeaf() {
		n = n.route(key)
	}
	return n
}

// bubble refreshes n and then each ancestor whose cached minimum changed.
// n.min must still hold its value from before the structural change.
func (t *Tree[K]) bubble(n *node[K]) {
	for n != nil {
		old := n.min
		n.refresh()
		if n.min == old {
			return
		}
		n = n.parent
	}
}
