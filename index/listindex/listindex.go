// Package listindex keeps the key set in one sorted slice. It is the
// simplest possible implementation and serves as the oracle the other
// indexes are checked against.
package listindex

import (
	"fmt"
	"slices"

	"github.com/btree-query-bench/twothree/index"
)

var _ index.Index = (*ListIndex)(nil)

type ListIndex struct {
	Keys []int64
}

func NewListIndex() *ListIndex {
	return &ListIndex{
		Keys: make([]int64, 0),
	}
}

func (l *ListIndex) Insert(key int64) error {
	i, found := slices.BinarySearch(l.Keys, key)
	if !found {
		l.Keys = slices.Insert(l.Keys, i, key)
	}
	return nil
}

func (l *ListIndex) Contains(key int64) (bool, error) {
	_, found := slices.BinarySearch(l.Keys, key)
	return found, nil
}

func (l *ListIndex) Delete(key int64) (bool, error) {
	i, found := slices.BinarySearch(l.Keys, key)
	if !found {
		return false, nil
	}
	l.Keys = slices.Delete(l.Keys, i, i+1)
	return true, nil
}

func (l *ListIndex) Min() (int64, error) {
	if len(l.Keys) == 0 {
		return 0, fmt.Errorf("listindex: min: %w", index.ErrEmpty)
	}
	return l.Keys[0], nil
}

func (l *ListIndex) Max() (int64, error) {
	if len(l.Keys) == 0 {
		return 0, fmt.Errorf("listindex: max: %w", index.ErrEmpty)
	}
	return l.Keys[len(l.Keys)-1], nil
}

func (l *ListIndex) Len() int { return len(l.Keys) }

// Scan iterates over a snapshot of the keys.
func (l *ListIndex) Scan() (index.Iterator, error) {
	return index.NewSliceIterator(slices.Clone(l.Keys)), nil
}

func (l *ListIndex) Close() error { return nil }
