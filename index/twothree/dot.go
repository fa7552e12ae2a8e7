package twothree

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDOT renders the tree as a Graphviz digraph. Leaves share a rank so
// the key order reads left to right.
func (t *Tree[K]) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph TwoThree {")
	fmt.Fprintln(bw, "  graph [ranksep=0.8, nodesep=0.4, bgcolor=\"#ffffff\", rankdir=TB];")
	fmt.Fprintln(bw, "  node [shape=box, style=filled, fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(bw, "  edge [arrowsize=0.8, color=\"#444444\"];")

	var leaves []string
	counter := 0
	var exportRec func(n *node[K]) string
	exportRec = func(n *node[K]) string {
		name := fmt.Sprintf("n%d", counter)
		counter++
		if n.isLeaf() {
			fmt.Fprintf(bw, "  %s [label=\"%v\", fillcolor=\"#D5E8D4\"];\n", name, n.min)
			leaves = append(leaves, name)
			return name
		}
		fmt.Fprintf(bw, "  %s [label=\"%s\", fillcolor=\"#DAE8FC\"];\n", name, n.label())
		for i := 0; i < n.n; i++ {
			fmt.Fprintf(bw, "  %s -> %s;\n", name, exportRec(n.child[i]))
		}
		return name
	}

	if t.root != nil {
		exportRec(t.root)
	}
	if len(leaves) > 1 {
		fmt.Fprint(bw, "  { rank=same;")
		for _, name := range leaves {
			fmt.Fprintf(bw, " %s;", name)
		}
		fmt.Fprintln(bw, " }")
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
