package twothree

// Remove deletes key from the tree and reports whether it was present.
func (t *Tree[K]) Remove(key K) bool {
	leaf := t.findLeaf(key)
	if leaf == nil || leaf.min != key {
		return false
	}
	t.count--
	p := leaf.parent
	if p == nil {
		t.Clear()
		return true
	}
	p.removeAt(p.indexOf(leaf))
	t.repair(p)
	return true
}

// repair restores the 2-or-3 children rule starting at n, which has just
// lost a child. A node left with a single child is hollow: it either
// borrows a child from an adjacent sibling holding three, or hands its lone
// child to a sibling holding two and is dropped, which may leave its own
// parent hollow.
//
// Merging the hollow node h into its left sibling s:
//
//	       p                       p
//	   ( C    E )                ( E )
//	  ↓     ↓    ↓       →      ↓     ↓
//	  s     h    …              s     …
//	( B )  ( )               ( B  C )
//	↓   ↓   ↓                ↓  ↓  ↓
//	A   B   C                A  B  C
//
// A hollow root is replaced by its only child and the tree shrinks by one
// level.
func (t *Tree[K]) repair(n *node[K]) {
	for n.n == 1 {
		p := n.parent
		if p == nil {
			only := n.removeAt(0)
			t.root = only
			t.height--
			return
		}

		i := p.indexOf(n)
		left := i > 0
		var sib *node[K]
		if left {
			sib = p.child[i-1]
		} else {
			sib = p.child[i+1]
		}

		if sib.n == 3 {
			if left {
				n.insertAt(0, sib.removeAt(2))
			} else {
				n.insertAt(1, sib.removeAt(0))
			}
			sib.refresh()
			n.refresh()
			t.bubble(p)
			return
		}

		c := n.removeAt(0)
		if left {
			sib.insertAt(2, c)
		} else {
			sib.insertAt(0, c)
		}
		sib.refresh()
		p.removeAt(i)
		n = p
	}
	t.bubble(n)
}
