package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/btree-query-bench/twothree/index/twothree"
)

var cmdDemo = &cli.Command{
	Name:  "demo",
	Usage: "walk a tree through sizes 0 to 4 and print every observable",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "dot",
			Usage: "also write the final tree as a graphviz DOT file",
		},
	},
	Action: func(cctx *cli.Context) error {
		configLogger(cctx, os.Stderr)
		tree := twothree.New[int]()
		if err := runDemo(cctx.App.Writer, tree); err != nil {
			return err
		}
		if path := cctx.String("dot"); path != "" {
			f, err := createFile(path)
			if err != nil {
				return err
			}
			defer f.Close()
			return tree.WriteDOT(f)
		}
		return nil
	},
}

type demo struct {
	w    io.Writer
	tree *twothree.Tree[int]
	err  error
}

func (d *demo) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// describe prints every query result for the current tree, probing the
// given keys for membership.
func (d *demo) describe(name string, probes ...int) {
	t := d.tree
	d.printf("-- %s tree --\n", name)
	d.printf("size: %d  empty: %v  height: %d\n", t.Len(), t.IsEmpty(), t.Height())
	for _, k := range probes {
		d.printf("contains %d: %v\n", k, t.Contains(k))
	}
	if lo, err := t.Min(); err != nil {
		d.printf("min: %v\n", err)
	} else {
		d.printf("min: %d\n", lo)
	}
	if hi, err := t.Max(); err != nil {
		d.printf("max: %v\n", err)
	} else {
		d.printf("max: %d\n", hi)
	}
	d.printf("keys: %v\n", t.Keys())
	d.printf("tree:\n%s", indent(t.String()))
}

func (d *demo) insert(keys ...int) {
	for _, k := range keys {
		d.tree.Insert(k)
	}
	d.printf("insert %v\n", keys)
	d.check()
}

func (d *demo) remove(keys ...int) {
	for _, k := range keys {
		d.printf("remove %d: %v\n", k, d.tree.Remove(k))
		d.check()
	}
}

func (d *demo) check() {
	if d.err == nil {
		d.err = d.tree.Check()
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return "  " + strings.Join(lines, "\n  ") + "\n"
}

func runDemo(w io.Writer, tree *twothree.Tree[int]) error {
	d := &demo{w: w, tree: tree}

	d.describe("empty", 1)
	d.remove(2)

	d.insert(1)
	d.describe("1", 0, 1, 2)
	d.insert(1)
	d.printf("duplicate insert keeps size %d\n", tree.Len())
	d.remove(2, 0, 1, 1)
	d.describe("emptied", 1)

	d.insert(1, 2)
	d.describe("1-2", 0, 1, 2, 3)
	d.insert(1, 2)
	d.remove(3, 0, 1, 1, 2)
	d.describe("emptied", 1)

	d.insert(1, 3, 2)
	d.describe("1-2-3", 0, 1, 2, 3, 4)
	d.remove(4, 2)
	d.describe("1-3", 1, 2, 3)

	tree.Clear()
	d.insert(4, 2, 1, 3)
	d.describe("1-2-3-4", 0, 1, 2, 3, 4, 5)
	d.remove(1, 2)
	d.describe("3-4", 1, 2, 3, 4)

	tree.Clear()
	d.printf("clear\n")
	d.describe("cleared", 3)

	d.insert(5, 8, 1, 9, 3, 7, 2, 6, 4)
	d.describe("1..9", 0, 5, 10)
	return d.err
}
