package twothree

// Insert adds key to the tree. Inserting a key that is already present is
// a no-op.
func (t *Tree[K]) Insert(key K) {
	if t.root == nil {
		t.root = newLeaf(key)
		t.count = 1
		t.height = 0
		return
	}
	at := t.findLeaf(key)
	if at.min == key {
		return
	}
	t.count++
	fresh := newLeaf(key)
	after := key > at.min

	if at.parent == nil {
		if after {
			t.root = newInner(at, fresh)
		} else {
			t.root = newInner(fresh, at)
		}
		t.height = 1
		return
	}
	t.insertChild(at.parent, at, fresh, after)
}

// insertChild attaches fresh to p next to its existing child at. When p
// already has three children it is split and the new right half is
// attached to p's parent the same way, up to the root.
//
// Here fresh (X) lands between B and C of a full node, which splits 2/2:
//
//	     p                   p      sib
//	 (B    C)             ( B )    ( C )
//	↓    ↓    ↓    →      ↓   ↓    ↓   ↓
//	A    B    C           A   B    X   C
//	         +X
//
// and sib is handed to the parent of p.
func (t *Tree[K]) insertChild(p, at, fresh *node[K], after bool) {
	for {
		i := p.indexOf(at)
		if after {
			i++
		}
		if p.n < 3 {
			p.insertAt(i, fresh)
			t.bubble(p)
			return
		}

		var kids [4]*node[K]
		copy(kids[:i], p.child[:i])
		kids[i] = fresh
		copy(kids[i+1:], p.child[i:3])

		p.child = [3]*node[K]{kids[0], kids[1], nil}
		p.n = 2
		kids[0].parent, kids[1].parent = p, p
		p.refresh()
		sib := newInner(kids[2], kids[3])

		if p.parent == nil {
			t.root = newInner(p, sib)
			t.height++
			return
		}
		p, at, fresh, after = p.parent, p, sib, true
	}
}
