package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index/twothree"
)

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	tree := twothree.New[int]()
	require.NoError(t, runDemo(&buf, tree))

	out := buf.String()
	assert.Contains(t, out, "-- empty tree --\nsize: 0  empty: true  height: -1\n")
	assert.Contains(t, out, "min: twothree: empty tree\n")
	assert.Contains(t, out, "-- 1-2 tree --\nsize: 2  empty: false  height: 1\n")
	assert.Contains(t, out, "-- 1-2-3-4 tree --\nsize: 4  empty: false  height: 2\n")
	assert.Contains(t, out, "-- 3-4 tree --\nsize: 2  empty: false  height: 1\n")
	assert.Contains(t, out, "keys: [3 4]\n")
	assert.Contains(t, out, "duplicate insert keeps size 1\n")
	assert.Equal(t, 9, tree.Len())
}

func TestDemoCommandWritesDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	require.NoError(t, run([]string{"twothree", "--log-level", "error", "demo", "--dot", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph TwoThree {"))
}

func TestFuzzCommand(t *testing.T) {
	require.NoError(t, run([]string{"twothree", "--log-level", "error", "fuzz", "--rounds", "2", "--ops", "300", "--key-space", "50"}))
	assert.Error(t, run([]string{"twothree", "fuzz", "--rounds", "0"}))
}

func TestBenchCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "results.csv")
	chart := filepath.Join(dir, "results.png")
	page := filepath.Join(dir, "results.html")
	require.NoError(t, run([]string{
		"twothree", "--log-level", "error", "bench",
		"--scale", "300",
		"--degrees", "2", "--degrees", "4",
		"--lsm-thresholds", "16",
		"--out", out,
		"--plot", chart,
		"--html", page,
	}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	for _, name := range []string{"TwoThree", "B-Tree", "BPlusTree", "LSM-Tree", "Pebble"} {
		assert.Contains(t, string(data), name+",")
	}
	assert.FileExists(t, chart)
	assert.FileExists(t, page)
}

func TestHeightCommand(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "height.png")
	require.NoError(t, run([]string{"twothree", "--log-level", "error", "height", "--max-n", "500", "--step", "50", "--seed", "9", "--out", chart}))
	assert.FileExists(t, chart)
}
