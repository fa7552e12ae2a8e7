package index

import "errors"

// ErrEmpty is returned by Min and Max on an index holding no keys.
var ErrEmpty = errors.New("index: empty")

// Index is the common ordered key set interface shared by all
// implementations so they can be benchmarked and cross-checked.
type Index interface {
	Insert(key int64) error
	Contains(key int64) (bool, error)
	// Delete reports whether key was present.
	Delete(key int64) (bool, error)
	Min() (int64, error)
	Max() (int64, error)
	Len() int
	// Scan iterates all keys in ascending order.
	Scan() (Iterator, error)
	Close() error
}
