package twothree

import "cmp"

type kind uint8

const (
	leafKind kind = iota
	innerKind
)

// node is either a leaf holding one key or an inner vertex with 2 or 3
// children. Inner nodes with a single child exist only while a removal is
// being repaired.
//
// Separator layout for an inner node:
//
//	    [sep0 | sep1]
//	   /      |      \
//	left     mid     right
//
// sep0 = min(mid), sep1 = min(right). min caches the subtree minimum; for a
// leaf it is the stored key itself.
type node[K cmp.Ordered] struct {
	kind   kind
	parent *node[K]
	min    K
	n      int
	child  [3]*node[K]
	sep    [2]K
}

func newLeaf[K cmp.Ordered](key K) *node[K] {
	return &node[K]{kind: leafKind, min: key}
}

// newInner builds an inner node over children given in ascending order.
func newInner[K cmp.Ordered](children ...*node[K]) *node[K] {
	n := &node[K]{kind: innerKind}
	for i, c := range children {
		n.child[i] = c
		c.parent = n
	}
	n.n = len(children)
	n.refresh()
	return n
}

func (n *node[K]) isLeaf() bool { return n.kind == leafKind }

func (n *node[K]) indexOf(c *node[K]) int {
	for i := 0; i < n.n; i++ {
		if n.child[i] == c {
			return i
		}
	}
	panic("twothree: child not attached to parent")
}

// insertAt places c at slot i, shifting later children right. n must have
// fewer than 3 children.
func (n *node[K]) insertAt(i int, c *node[K]) {
	copy(n.child[i+1:n.n+1], n.child[i:n.n])
	n.child[i] = c
	c.parent = n
	n.n++
}

// removeAt detaches and returns the child at slot i.
func (n *node[K]) removeAt(i int) *node[K] {
	c := n.child[i]
	copy(n.child[i:], n.child[i+1:n.n])
	n.n--
	n.child[n.n] = nil
	c.parent = nil
	return c
}

// refresh recomputes the separators and cached minimum from the children.
func (n *node[K]) refresh() {
	var zero K
	n.min = n.child[0].min
	n.sep[0], n.sep[1] = zero, zero
	if n.n > 1 {
		n.sep[0] = n.child[1].min
	}
	if n.n > 2 {
		n.sep[1] = n.child[2].min
	}
}

// route picks the child whose subtree would hold key.
func (n *node[K]) route(key K) *node[K] {
	switch {
	case key < n.sep[0]:
		return n.child[0]
	case n.n == 2 || key < n.sep[1]:
		return n.child[1]
	default:
		return n.child[2]
	}
}
