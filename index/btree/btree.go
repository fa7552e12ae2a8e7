// Package btree is a CLRS-style B-tree of minimum degree T holding an int64
// key set. It serves as the high fan-out baseline next to the 2-3 tree.
package btree

import (
	"fmt"
	"slices"

	"github.com/btree-query-bench/twothree/index"
)

var _ index.Index = (*BTree)(nil)

type BTreeNode struct {
	Leaf     bool
	Keys     []int64
	Children []*BTreeNode
}

type BTree struct {
	T     int
	Root  *BTreeNode
	count int
}

func NewBTree(t int) *BTree {
	if t < 2 {
		t = 2
	}
	return &BTree{T: t, Root: &BTreeNode{Leaf: true}}
}

func (bt *BTree) Len() int { return bt.count }

func (bt *BTree) Contains(key int64) (bool, error) {
	return bt.search(bt.Root, key), nil
}

func (bt *BTree) search(x *BTreeNode, key int64) bool {
	for {
		i, found := slices.BinarySearch(x.Keys, key)
		if found {
			return true
		}
		if x.Leaf {
			return false
		}
		x = x.Children[i]
	}
}

// --- INSERT ---

func (bt *BTree) Insert(key int64) error {
	if bt.search(bt.Root, key) {
		return nil
	}
	root := bt.Root
	if len(root.Keys) == (2*bt.T - 1) {
		newRoot := &BTreeNode{Children: []*BTreeNode{root}}
		bt.splitChild(newRoot, 0)
		bt.Root = newRoot
	}
	bt.insertNonFull(bt.Root, key)
	bt.count++
	return nil
}

func (bt *BTree) insertNonFull(x *BTreeNode, k int64) {
	for !x.Leaf {
		i, _ := slices.BinarySearch(x.Keys, k)
		if len(x.Children[i].Keys) == (2*bt.T - 1) {
			bt.splitChild(x, i)
			if k > x.Keys[i] {
				i++
			}
		}
		x = x.Children[i]
	}
	idx, _ := slices.BinarySearch(x.Keys, k)
	x.Keys = slices.Insert(x.Keys, idx, k)
}

func (bt *BTree) splitChild(x *BTreeNode, i int) {
	t := bt.T
	y := x.Children[i]
	z := &BTreeNode{Leaf: y.Leaf}
	z.Keys = append(z.Keys, y.Keys[t:]...)
	if !y.Leaf {
		z.Children = append(z.Children, y.Children[t:]...)
	}

	midKey := y.Keys[t-1]
	y.Keys = y.Keys[: t-1 : t-1]
	if !y.Leaf {
		y.Children = y.Children[:t:t]
	}

	x.Keys = slices.Insert(x.Keys, i, midKey)
	x.Children = slices.Insert(x.Children, i+1, z)
}

// --- DELETE ---

func (bt *BTree) Delete(key int64) (bool, error) {
	if !bt.search(bt.Root, key) {
		return false, nil
	}
	bt.delete(bt.Root, key)
	if len(bt.Root.Keys) == 0 && !bt.Root.Leaf {
		bt.Root = bt.Root.Children[0]
	}
	bt.count--
	return true, nil
}

func (bt *BTree) delete(x *BTreeNode, k int64) {
	idx, found := slices.BinarySearch(x.Keys, k)
	if found {
		if x.Leaf {
			x.Keys = slices.Delete(x.Keys, idx, idx+1)
		} else {
			bt.deleteInternal(x, idx)
		}
	} else if !x.Leaf {
		child := x.Children[idx]
		if len(child.Keys) < bt.T {
			bt.fill(x, idx)
		}
		if idx > len(x.Keys) {
			bt.delete(x.Children[idx-1], k)
		} else {
			bt.delete(x.Children[idx], k)
		}
	}
}

func (bt *BTree) deleteInternal(x *BTreeNode, i int) {
	k, y, z := x.Keys[i], x.Children[i], x.Children[i+1]
	if len(y.Keys) >= bt.T {
		pk := bt.getPred(y)
		x.Keys[i] = pk
		bt.delete(y, pk)
	} else if len(z.Keys) >= bt.T {
		sk := bt.getSucc(z)
		x.Keys[i] = sk
		bt.delete(z, sk)
	} else {
		bt.merge(x, i)
		bt.delete(y, k)
	}
}

func (bt *BTree) getPred(x *BTreeNode) int64 {
	for !x.Leaf {
		x = x.Children[len(x.Keys)]
	}
	return x.Keys[len(x.Keys)-1]
}

func (bt *BTree) getSucc(x *BTreeNode) int64 {
	for !x.Leaf {
		x = x.Children[0]
	}
	return x.Keys[0]
}

func (bt *BTree) fill(x *BTreeNode, i int) {
	if i != 0 && len(x.Children[i-1].Keys) >= bt.T {
		bt.borrowPrev(x, i)
	} else if i != len(x.Keys) && len(x.Children[i+1].Keys) >= bt.T {
		bt.borrowNext(x, i)
	} else {
		if i != len(x.Keys) {
			bt.merge(x, i)
		} else {
			bt.merge(x, i-1)
		}
	}
}

func (bt *BTree) borrowPrev(x *BTreeNode, i int) {
	c, s := x.Children[i], x.Children[i-1]
	c.Keys = slices.Insert(c.Keys, 0, x.Keys[i-1])
	if !c.Leaf {
		c.Children = slices.Insert(c.Children, 0, s.Children[len(s.Keys)])
		s.Children = s.Children[:len(s.Keys)]
	}
	x.Keys[i-1] = s.Keys[len(s.Keys)-1]
	s.Keys = s.Keys[:len(s.Keys)-1]
}

func (bt *BTree) borrowNext(x *BTreeNode, i int) {
	c, s := x.Children[i], x.Children[i+1]
	c.Keys = append(c.Keys, x.Keys[i])
	if !c.Leaf {
		c.Children = append(c.Children, s.Children[0])
		s.Children = slices.Delete(s.Children, 0, 1)
	}
	x.Keys[i] = s.Keys[0]
	s.Keys = slices.Delete(s.Keys, 0, 1)
}

func (bt *BTree) merge(x *BTreeNode, i int) {
	y, z := x.Children[i], x.Children[i+1]
	y.Keys = append(y.Keys, x.Keys[i])
	y.Keys = append(y.Keys, z.Keys...)
	if !y.Leaf {
		y.Children = append(y.Children, z.Children...)
	}
	x.Keys = slices.Delete(x.Keys, i, i+1)
	x.Children = slices.Delete(x.Children, i+1, i+2)
}

// --- MIN / MAX / SCAN ---

func (bt *BTree) Min() (int64, error) {
	if bt.count == 0 {
		return 0, fmt.Errorf("btree: min: %w", index.ErrEmpty)
	}
	return bt.getSucc(bt.Root), nil
}

func (bt *BTree) Max() (int64, error) {
	if bt.count == 0 {
		return 0, fmt.Errorf("btree: max: %w", index.ErrEmpty)
	}
	return bt.getPred(bt.Root), nil
}

func (bt *BTree) Scan() (index.Iterator, error) {
	keys := make([]int64, 0, bt.count)
	return index.NewSliceIterator(bt.collect(bt.Root, keys)), nil
}

func (bt *BTree) collect(x *BTreeNode, keys []int64) []int64 {
	for i := 0; i < len(x.Keys); i++ {
		if !x.Leaf {
			keys = bt.collect(x.Children[i], keys)
		}
		keys = append(keys, x.Keys[i])
	}
	if !x.Leaf {
		keys = bt.collect(x.Children[len(x.Keys)], keys)
	}
	return keys
}

func (bt *BTree) Close() error { return nil }
