package index

type Iterator interface {
	Next() bool
	Key() int64
	Error() error
	Close() error
}

// Collect drains it into a slice and closes it.
func Collect(it Iterator) ([]int64, error) {
	var keys []int64
	for it.Next() {
		keys = append(keys, it.Key())
	}
	if err := it.Error(); err != nil {
		it.Close()
		return keys, err
	}
	return keys, it.Close()
}

// SliceIterator walks a materialised, already sorted key slice.
type SliceIterator struct {
	keys []int64
	idx  int
}

func NewSliceIterator(keys []int64) *SliceIterator {
	return &SliceIterator{keys: keys, idx: -1}
}

func (it *SliceIterator) Next() bool   { it.idx++; return it.idx < len(it.keys) }
func (it *SliceIterator) Key() int64   { return it.keys[it.idx] }
func (it *SliceIterator) Error() error { return nil }
func (it *SliceIterator) Close() error { return nil }
