package twothree

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShape(t *testing.T, tree *Tree[int], size, height int, keys []int) {
	t.Helper()
	require.NoError(t, tree.Check())
	assert.Equal(t, size, tree.Len())
	assert.Equal(t, height, tree.Height())
	assert.Equal(t, keys, tree.Keys())
}

func TestEmptyTree(t *testing.T) {
	tree := New[int]()
	requireShape(t, tree, 0, -1, []int{})
	assert.True(t, tree.IsEmpty())
	assert.False(t, tree.Contains(1))
	assert.False(t, tree.Remove(2))

	_, err := tree.Min()
	assert.ErrorIs(t, err, ErrEmptyTree)
	_, err = tree.Max()
	assert.ErrorIs(t, err, ErrEmptyTree)
	assert.Equal(t, "<empty>\n", tree.String())
}

func TestScenarios(t *testing.T) {
	tree := Of(1)
	requireShape(t, tree, 1, 0, []int{1})
	lo, err := tree.Min()
	require.NoError(t, err)
	hi, err := tree.Max()
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)

	requireShape(t, Of(1, 2), 2, 1, []int{1, 2})
	requireShape(t, Of(1, 3, 2), 3, 1, []int{1, 2, 3})

	tree = Of(1, 3, 2, 4)
	requireShape(t, tree, 4, 2, []int{1, 2, 3, 4})

	assert.True(t, tree.Remove(1))
	require.NoError(t, tree.Check())
	assert.True(t, tree.Remove(2))
	requireShape(t, tree, 2, 1, []int{3, 4})
}

func TestDuplicatesAndAbsentKeys(t *testing.T) {
	tree := Of(1, 2, 3)
	tree.Insert(2)
	tree.Insert(1)
	requireShape(t, tree, 3, 1, []int{1, 2, 3})

	assert.False(t, tree.Remove(0))
	assert.False(t, tree.Remove(4))
	requireShape(t, tree, 3, 1, []int{1, 2, 3})
}

func TestRemoveDownToEmpty(t *testing.T) {
	tree := Of(5, 1, 4, 2, 3)
	for _, k := range []int{3, 1, 5, 2, 4} {
		require.True(t, tree.Remove(k), "remove %d", k)
		require.NoError(t, tree.Check())
		assert.False(t, tree.Contains(k))
	}
	requireShape(t, tree, 0, -1, []int{})

	tree.Insert(7)
	requireShape(t, tree, 1, 0, []int{7})
}

func TestClear(t *testing.T) {
	tree := Of(1, 2, 3, 4, 5, 6, 7)
	tree.Clear()
	requireShape(t, tree, 0, -1, []int{})
	_, err := tree.Min()
	assert.ErrorIs(t, err, ErrEmptyTree)
	_, err = tree.Max()
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestReplace(t *testing.T) {
	tree := Of(1, 2, 3)
	assert.True(t, tree.Replace(2, 10))
	assert.False(t, tree.Replace(42, 0))
	requireShape(t, tree, 4, 2, []int{0, 1, 3, 10})
}

func TestAscendingAndDescendingLoads(t *testing.T) {
	const n = 1000
	up, down := New[int](), New[int]()
	for i := 0; i < n; i++ {
		up.Insert(i)
		down.Insert(n - 1 - i)
	}
	for _, tree := range []*Tree[int]{up, down} {
		require.NoError(t, tree.Check())
		assert.Equal(t, n, tree.Len())
		assert.LessOrEqual(t, tree.Height(), ceilLog2(n)+1)
	}
	assert.Equal(t, up.Keys(), down.Keys())

	for i := 0; i < n; i += 2 {
		require.True(t, up.Remove(i))
	}
	require.NoError(t, up.Check())
	assert.Equal(t, n/2, up.Len())
	lo, err := up.Min()
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
}

func TestHeightBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tree := New[int]()
	for n := 1; n <= 5000; n++ {
		tree.Insert(rng.Int())
		if n%250 == 0 {
			assert.LessOrEqual(t, tree.Height(), ceilLog2(tree.Len())+1)
		}
	}
}

func ceilLog2(n int) int {
	h := 0
	for v := 1; v < n; v <<= 1 {
		h++
	}
	return h
}

func TestRandomizedAgainstSortedSlice(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42} {
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		tree := New[int]()
		var want []int

		for step := 0; step < 3000; step++ {
			k := rng.IntN(200)
			i, found := slices.BinarySearch(want, k)
			if rng.IntN(2) == 0 {
				tree.Insert(k)
				if !found {
					want = slices.Insert(want, i, k)
				}
			} else {
				require.Equal(t, found, tree.Remove(k), "seed %d step %d remove %d", seed, step, k)
				if found {
					want = slices.Delete(want, i, i+1)
				}
			}

			require.NoError(t, tree.Check(), "seed %d step %d", seed, step)
			require.Equal(t, len(want), tree.Len())
			if len(want) == 0 {
				continue
			}
			lo, _ := tree.Min()
			hi, _ := tree.Max()
			require.Equal(t, want[0], lo)
			require.Equal(t, want[len(want)-1], hi)
		}
		assert.Equal(t, want, tree.Keys())
	}
}

func TestAllStopsEarly(t *testing.T) {
	tree := Of(5, 4, 3, 2, 1)
	var got []int
	for k := range tree.All() {
		if k > 3 {
			break
		}
		got = append(got, k)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestStringKeys(t *testing.T) {
	tree := Of("pear", "apple", "fig", "kiwi")
	require.NoError(t, tree.Check())
	assert.Equal(t, []string{"apple", "fig", "kiwi", "pear"}, tree.Keys())
	assert.True(t, tree.Contains("fig"))
	assert.False(t, tree.Contains("plum"))
}

func TestString(t *testing.T) {
	out := Of(1, 2, 3, 4).String()
	for _, want := range []string{"<3>", "<2>", "<4>", "1", "4"} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Of(1, 2, 3).WriteDOT(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph TwoThree {"))
	assert.Contains(t, out, `label="<2,3>"`)
	assert.Equal(t, 3, strings.Count(out, "->"))
	assert.Contains(t, out, "rank=same")
}

func TestCheckDetectsCorruption(t *testing.T) {
	tree := Of(1, 2, 3, 4)
	tree.root.sep[0] = 99
	assert.ErrorIs(t, tree.Check(), ErrCorrupt)
	assert.Panics(t, tree.MustCheck)

	tree = Of(1, 2, 3)
	tree.count = 5
	assert.ErrorIs(t, tree.Check(), ErrCorrupt)
}
