package twothree

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/xlab/treeprint"
)

// All yields the keys in ascending order. The tree must not be mutated
// while the sequence is being consumed.
func (t *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root != nil {
			walk(t.root, yield)
		}
	}
}

func walk[K cmp.Ordered](n *node[K], yield func(K) bool) bool {
	if n.isLeaf() {
		return yield(n.min)
	}
	for i := 0; i < n.n; i++ {
		if !walk(n.child[i], yield) {
			return false
		}
	}
	return true
}

// Keys returns all keys in ascending order.
func (t *Tree[K]) Keys() []K {
	keys := make([]K, 0, t.count)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// String renders the tree one node per line, inner nodes labelled with
// their separators.
func (t *Tree[K]) String() string {
	if t.root == nil {
		return "<empty>\n"
	}
	if t.root.isLeaf() {
		return treeprint.NewWithRoot(fmt.Sprint(t.root.min)).String()
	}
	tree := treeprint.NewWithRoot(t.root.label())
	addChildren(tree, t.root)
	return tree.String()
}

func addChildren[K cmp.Ordered](branch treeprint.Tree, n *node[K]) {
	for i := 0; i < n.n; i++ {
		c := n.child[i]
		if c.isLeaf() {
			branch.AddNode(fmt.Sprint(c.min))
			continue
		}
		addChildren(branch.AddBranch(c.label()), c)
	}
}

func (n *node[K]) label() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i := 0; i < n.n-1; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, n.sep[i])
	}
	sb.WriteByte('>')
	return sb.String()
}
