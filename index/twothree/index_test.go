package twothree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index"
)

func TestIndexAdapter(t *testing.T) {
	ix := NewIndex()
	_, err := ix.Min()
	assert.ErrorIs(t, err, index.ErrEmpty)
	assert.ErrorIs(t, err, ErrEmptyTree)

	for _, k := range []int64{-5, 10, 3, 3, 7} {
		require.NoError(t, ix.Insert(k))
	}
	assert.Equal(t, 4, ix.Len())

	ok, err := ix.Contains(7)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := ix.Delete(10)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = ix.Delete(10)
	require.NoError(t, err)
	assert.False(t, removed)

	hi, err := ix.Max()
	require.NoError(t, err)
	assert.Equal(t, int64(7), hi)

	it, err := ix.Scan()
	require.NoError(t, err)
	keys, err := index.Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []int64{-5, 3, 7}, keys)

	require.NoError(t, ix.Tree().Check())
	require.NoError(t, ix.Close())
	assert.Zero(t, ix.Len())
}

func TestIndexScanStopsEarly(t *testing.T) {
	ix := NewIndex()
	for k := int64(0); k < 100; k++ {
		require.NoError(t, ix.Insert(k))
	}
	it, err := ix.Scan()
	require.NoError(t, err)
	require.True(t, it.Next())
	require.True(t, it.Next())
	assert.Equal(t, int64(1), it.Key())
	require.NoError(t, it.Close())
}
