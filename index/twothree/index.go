package twothree

import (
	"fmt"
	"iter"

	"github.com/btree-query-bench/twothree/index"
)

var _ index.Index = (*Index)(nil)

// Index exposes a Tree[int64] through the common index.Index interface.
type Index struct {
	t *Tree[int64]
}

func NewIndex() *Index {
	return &Index{t: New[int64]()}
}

// Tree returns the underlying tree.
func (ix *Index) Tree() *Tree[int64] { return ix.t }

func (ix *Index) Insert(key int64) error {
	ix.t.Insert(key)
	return nil
}

func (ix *Index) Contains(key int64) (bool, error) { return ix.t.Contains(key), nil }
func (ix *Index) Delete(key int64) (bool, error)   { return ix.t.Remove(key), nil }
func (ix *Index) Len() int                         { return ix.t.Len() }

func (ix *Index) Min() (int64, error) {
	k, err := ix.t.Min()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", index.ErrEmpty, err)
	}
	return k, nil
}

func (ix *Index) Max() (int64, error) {
	k, err := ix.t.Max()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", index.ErrEmpty, err)
	}
	return k, nil
}

func (ix *Index) Scan() (index.Iterator, error) {
	next, stop := iter.Pull(ix.t.All())
	return &Iterator{next: next, stop: stop}, nil
}

func (ix *Index) Close() error {
	ix.t.Clear()
	return nil
}

// Iterator pulls keys lazily from an in-order walk.
type Iterator struct {
	next func() (int64, bool)
	stop func()
	key  int64
}

func (it *Iterator) Next() bool {
	k, ok := it.next()
	if ok {
		it.key = k
	}
	return ok
}

func (it *Iterator) Key() int64   { return it.key }
func (it *Iterator) Error() error { return nil }
func (it *Iterator) Close() error { it.stop(); return nil }
