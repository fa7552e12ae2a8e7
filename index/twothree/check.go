package twothree

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrCorrupt wraps every structural violation reported by Check.
var ErrCorrupt = errors.New("twothree: corrupt tree")

// Check walks the whole tree and verifies its structural invariants: equal
// leaf depth, 2 or 3 children per inner node, separators equal to the
// minimum of the child to their right, strictly ascending leaves, correct
// parent links and matching count and height. It is meant for tests and
// diagnostics, never for the mutation paths.
func (t *Tree[K]) Check() error {
	if t.root == nil {
		if t.count != 0 || t.height != -1 {
			return fmt.Errorf("%w: empty root with count %d height %d", ErrCorrupt, t.count, t.height)
		}
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrCorrupt)
	}
	c := checker[K]{height: t.height}
	if _, err := c.visit(t.root, 0); err != nil {
		return err
	}
	if c.leaves != t.count {
		return fmt.Errorf("%w: count %d but %d leaves", ErrCorrupt, t.count, c.leaves)
	}
	return nil
}

// MustCheck panics if Check reports a violation.
func (t *Tree[K]) MustCheck() {
	if err := t.Check(); err != nil {
		panic(err)
	}
}

type checker[K cmp.Ordered] struct {
	height int
	leaves int
	last   K
}

// visit returns the true minimum of the subtree at n.
func (c *checker[K]) visit(n *node[K], depth int) (K, error) {
	var zero K
	if n.isLeaf() {
		if depth != c.height {
			return zero, fmt.Errorf("%w: leaf %v at depth %d, height %d", ErrCorrupt, n.min, depth, c.height)
		}
		if n.n != 0 {
			return zero, fmt.Errorf("%w: leaf %v has children", ErrCorrupt, n.min)
		}
		if c.leaves > 0 && !(c.last < n.min) {
			return zero, fmt.Errorf("%w: leaf %v follows %v", ErrCorrupt, n.min, c.last)
		}
		c.last = n.min
		c.leaves++
		return n.min, nil
	}

	if n.n < 2 || n.n > 3 {
		return zero, fmt.Errorf("%w: inner node %s has %d children", ErrCorrupt, n.label(), n.n)
	}
	var mins [3]K
	for i := 0; i < n.n; i++ {
		ch := n.child[i]
		if ch == nil {
			return zero, fmt.Errorf("%w: inner node %s missing child %d", ErrCorrupt, n.label(), i)
		}
		if ch.parent != n {
			return zero, fmt.Errorf("%w: child %d of %s has a wrong parent", ErrCorrupt, i, n.label())
		}
		m, err := c.visit(ch, depth+1)
		if err != nil {
			return zero, err
		}
		mins[i] = m
	}
	for i := n.n; i < len(n.child); i++ {
		if n.child[i] != nil {
			return zero, fmt.Errorf("%w: inner node %s has a stale child %d", ErrCorrupt, n.label(), i)
		}
	}
	for i := 0; i < n.n-1; i++ {
		if n.sep[i] != mins[i+1] {
			return zero, fmt.Errorf("%w: separator %d of %s is %v, want %v", ErrCorrupt, i, n.label(), n.sep[i], mins[i+1])
		}
	}
	if n.min != mins[0] {
		return zero, fmt.Errorf("%w: cached minimum %v of %s, want %v", ErrCorrupt, n.min, n.label(), mins[0])
	}
	return mins[0], nil
}
