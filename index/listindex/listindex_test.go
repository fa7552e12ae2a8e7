package listindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index"
)

func TestListIndex(t *testing.T) {
	l := NewListIndex()
	_, err := l.Max()
	assert.ErrorIs(t, err, index.ErrEmpty)

	for _, k := range []int64{9, -1, 4, 9} {
		require.NoError(t, l.Insert(k))
	}
	assert.Equal(t, []int64{-1, 4, 9}, l.Keys)

	removed, err := l.Delete(4)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = l.Delete(4)
	require.NoError(t, err)
	assert.False(t, removed)

	it, err := l.Scan()
	require.NoError(t, err)
	require.NoError(t, l.Insert(100))
	keys, err := index.Collect(it)
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 9}, keys)
}
