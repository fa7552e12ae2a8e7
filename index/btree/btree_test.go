package btree

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index"
)

func TestBTreeSet(t *testing.T) {
	for _, degree := range []int{2, 3, 8} {
		bt := NewBTree(degree)
		rng := rand.New(rand.NewPCG(uint64(degree), 99))
		present := map[int64]bool{}

		for i := 0; i < 4000; i++ {
			k := int64(rng.IntN(500))
			if rng.IntN(3) == 0 {
				removed, err := bt.Delete(k)
				require.NoError(t, err)
				require.Equal(t, present[k], removed, "degree %d delete %d", degree, k)
				delete(present, k)
			} else {
				require.NoError(t, bt.Insert(k))
				present[k] = true
			}
			require.Equal(t, len(present), bt.Len())
		}

		want := make([]int64, 0, len(present))
		for k := range present {
			want = append(want, k)
		}
		slices.Sort(want)

		it, err := bt.Scan()
		require.NoError(t, err)
		got, err := index.Collect(it)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		lo, err := bt.Min()
		require.NoError(t, err)
		hi, err := bt.Max()
		require.NoError(t, err)
		assert.Equal(t, want[0], lo)
		assert.Equal(t, want[len(want)-1], hi)
	}
}

func TestBTreeEmpty(t *testing.T) {
	bt := NewBTree(4)
	_, err := bt.Min()
	assert.ErrorIs(t, err, index.ErrEmpty)
	removed, err := bt.Delete(1)
	require.NoError(t, err)
	assert.False(t, removed)
}
