package bplustree

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index"
	"github.com/btree-query-bench/twothree/index/listindex"
)

func scan(t *testing.T, idx index.Index) []int64 {
	t.Helper()
	it, err := idx.Scan()
	require.NoError(t, err)
	keys, err := index.Collect(it)
	require.NoError(t, err)
	return keys
}

func TestMatchesListIndex(t *testing.T) {
	for _, degree := range []int{2, 3, 16} {
		bt := NewBPlusTree(degree)
		oracle := listindex.NewListIndex()
		rng := rand.New(rand.NewPCG(uint64(degree), 5))

		for i := 0; i < 5000; i++ {
			k := rng.Int64N(700)
			if rng.IntN(5) < 2 {
				got, err := bt.Delete(k)
				require.NoError(t, err)
				want, _ := oracle.Delete(k)
				require.Equal(t, want, got, "degree %d delete %d", degree, k)
			} else {
				require.NoError(t, bt.Insert(k))
				require.NoError(t, oracle.Insert(k))
			}
			require.Equal(t, oracle.Len(), bt.Len())
		}

		assert.Equal(t, oracle.Keys, scan(t, bt), "degree %d", degree)
		for k := int64(-1); k <= 701; k += 7 {
			got, _ := bt.Contains(k)
			want, _ := oracle.Contains(k)
			assert.Equal(t, want, got, "degree %d contains %d", degree, k)
		}
		lo, err := bt.Min()
		require.NoError(t, err)
		hi, err := bt.Max()
		require.NoError(t, err)
		assert.Equal(t, oracle.Keys[0], lo)
		assert.Equal(t, oracle.Keys[len(oracle.Keys)-1], hi)
	}
}

func TestEmptiedLeavesAreSkipped(t *testing.T) {
	bt := NewBPlusTree(2)
	for k := int64(0); k < 40; k++ {
		require.NoError(t, bt.Insert(k))
	}
	// Empty both ends of the leaf chain.
	for k := int64(0); k < 10; k++ {
		_, err := bt.Delete(k)
		require.NoError(t, err)
		_, err = bt.Delete(39 - k)
		require.NoError(t, err)
	}

	lo, err := bt.Min()
	require.NoError(t, err)
	assert.Equal(t, int64(10), lo)
	hi, err := bt.Max()
	require.NoError(t, err)
	assert.Equal(t, int64(29), hi)
	assert.Len(t, scan(t, bt), 20)

	for k := int64(10); k < 30; k++ {
		_, err := bt.Delete(k)
		require.NoError(t, err)
	}
	_, err = bt.Min()
	assert.ErrorIs(t, err, index.ErrEmpty)
	_, err = bt.Max()
	assert.ErrorIs(t, err, index.ErrEmpty)
	assert.Empty(t, scan(t, bt))

	require.NoError(t, bt.Insert(5))
	assert.Equal(t, []int64{5}, scan(t, bt))
}
