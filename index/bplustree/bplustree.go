// Package bplustree is an in-memory B+ tree over int64 keys with chained
// leaves. Deletion is lazy: keys are removed from their leaf and leaves are
// never merged, so the tree only grows in height.
package bplustree

import (
	"fmt"
	"slices"

	"github.com/btree-query-bench/twothree/index"
)

var _ index.Index = (*BPlusTree)(nil)

type BPlusNode struct {
	IsLeaf   bool
	Keys     []int64
	Children []*BPlusNode // Only populated if IsLeaf == false
	Next     *BPlusNode   // Pointer to next leaf for scans
}

type BPlusTree struct {
	T     int // Minimum degree (t). Max keys = 2t-1
	Root  *BPlusNode
	count int
}

func NewBPlusTree(t int) *BPlusTree {
	if t < 2 {
		t = 2
	}
	return &BPlusTree{
		T:    t,
		Root: &BPlusNode{IsLeaf: true},
	}
}

func (bt *BPlusTree) Len() int { return bt.count }

// --- CONTAINS (Point Query) ---

func (bt *BPlusTree) Contains(key int64) (bool, error) {
	node := bt.findLeaf(bt.Root, key)
	_, found := slices.BinarySearch(node.Keys, key)
	return found, nil
}

func (bt *BPlusTree) findLeaf(curr *BPlusNode, key int64) *BPlusNode {
	for !curr.IsLeaf {
		curr = curr.Children[childIndex(curr, key)]
	}
	return curr
}

// childIndex routes key to the first child whose separator exceeds it.
func childIndex(x *BPlusNode, key int64) int {
	i, found := slices.BinarySearch(x.Keys, key)
	if found {
		i++
	}
	return i
}

// --- INSERT ---

func (bt *BPlusTree) Insert(key int64) error {
	root := bt.Root
	// If root is full, tree grows in height
	if len(root.Keys) == (2*bt.T - 1) {
		newRoot := &BPlusNode{IsLeaf: false, Children: []*BPlusNode{root}}
		bt.splitChild(newRoot, 0)
		bt.Root = newRoot
	}
	if bt.insertNonFull(bt.Root, key) {
		bt.count++
	}
	return nil
}

func (bt *BPlusTree) insertNonFull(x *BPlusNode, k int64) bool {
	for !x.IsLeaf {
		i := childIndex(x, k)
		if len(x.Children[i].Keys) == (2*bt.T - 1) {
			bt.splitChild(x, i)
			if k >= x.Keys[i] {
				i++
			}
		}
		x = x.Children[i]
	}
	idx, found := slices.BinarySearch(x.Keys, k)
	if found {
		return false
	}
	x.Keys = slices.Insert(x.Keys, idx, k)
	return true
}

func (bt *BPlusTree) splitChild(x *BPlusNode, i int) {
	t := bt.T
	y := x.Children[i]
	z := &BPlusNode{IsLeaf: y.IsLeaf}

	if y.IsLeaf {
		// B+ Leaf Split: The first key of the new leaf is copied to parent
		z.Keys = append([]int64{}, y.Keys[t-1:]...)
		z.Next = y.Next
		y.Next = z

		y.Keys = y.Keys[: t-1 : t-1]

		x.Keys = slices.Insert(x.Keys, i, z.Keys[0])
	} else {
		// B+ Internal Split: Middle key is pushed to parent and removed from child
		z.Keys = append([]int64{}, y.Keys[t:]...)
		z.Children = append([]*BPlusNode{}, y.Children[t:]...)

		midKey := y.Keys[t-1]
		y.Keys = y.Keys[: t-1 : t-1]
		y.Children = y.Children[:t:t]

		x.Keys = slices.Insert(x.Keys, i, midKey)
	}
	x.Children = slices.Insert(x.Children, i+1, z)
}

// --- DELETE (Lazy) ---

// Delete removes key from its leaf. Underfull and empty leaves stay in
// place; separators keep routing correctly because they only bound ranges.
func (bt *BPlusTree) Delete(key int64) (bool, error) {
	node := bt.findLeaf(bt.Root, key)
	idx, found := slices.BinarySearch(node.Keys, key)
	if !found {
		return false, nil
	}
	node.Keys = slices.Delete(node.Keys, idx, idx+1)
	bt.count--
	return true, nil
}

// --- MIN / MAX ---

func (bt *BPlusTree) firstLeaf() *BPlusNode {
	curr := bt.Root
	for !curr.IsLeaf {
		curr = curr.Children[0]
	}
	return curr
}

func (bt *BPlusTree) Min() (int64, error) {
	for leaf := bt.firstLeaf(); leaf != nil; leaf = leaf.Next {
		if len(leaf.Keys) > 0 {
			return leaf.Keys[0], nil
		}
	}
	return 0, fmt.Errorf("bplustree: min: %w", index.ErrEmpty)
}

func (bt *BPlusTree) Max() (int64, error) {
	if k, ok := lastKey(bt.Root); ok {
		return k, nil
	}
	return 0, fmt.Errorf("bplustree: max: %w", index.ErrEmpty)
}

// lastKey searches children right to left, skipping subtrees emptied by
// lazy deletes.
func lastKey(x *BPlusNode) (int64, bool) {
	if x.IsLeaf {
		if len(x.Keys) == 0 {
			return 0, false
		}
		return x.Keys[len(x.Keys)-1], true
	}
	for i := len(x.Children) - 1; i >= 0; i-- {
		if k, ok := lastKey(x.Children[i]); ok {
			return k, true
		}
	}
	return 0, false
}

// --- SCAN (The Iterator) ---

func (bt *BPlusTree) Scan() (index.Iterator, error) {
	return &BPlusIterator{curr: bt.firstLeaf()}, nil
}

type BPlusIterator struct {
	curr *BPlusNode
	i    int
	key  int64
}

func (it *BPlusIterator) Next() bool {
	for it.curr != nil {
		if it.i < len(it.curr.Keys) {
			it.key = it.curr.Keys[it.i]
			it.i++
			return true
		}
		// Follow the leaf chain
		it.curr = it.curr.Next
		it.i = 0
	}
	return false
}

func (it *BPlusIterator) Key() int64   { return it.key }
func (it *BPlusIterator) Error() error { return nil }
func (it *BPlusIterator) Close() error { return nil }

func (bt *BPlusTree) Close() error { return nil }
