// Package pebblelsm wraps Pebble (CockroachDB's LSM storage engine) behind
// the common Index interface so a production LSM can be benchmarked
// alongside the in-memory trees.
package pebblelsm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/btree-query-bench/twothree/index"
)

var _ index.Index = (*LSM)(nil)

type LSM struct {
	db    *pebble.DB
	count int
}

// Open opens (or creates) a Pebble database at dir. An empty dir keeps the
// whole store in memory.
func Open(dir string) (*LSM, error) {
	opts := &pebble.Options{
		MemTableSize: 16 << 20,
		// Keep 2 memtables so one can be flushed while the other is active.
		MemTableStopWritesThreshold: 4,
		// L0 compaction trigger.
		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 12,
	}
	if dir == "" {
		opts.FS = vfs.NewMem()
		dir = "mem"
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("pebblelsm: open: %w", err)
	}
	l := &LSM{db: db}
	if err := l.recount(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// recount walks an existing store once so Len is right after a reopen.
func (l *LSM) recount() error {
	iter, err := l.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebblelsm: recount: %w", err)
	}
	for valid := iter.First(); valid; valid = iter.Next() {
		l.count++
	}
	return iter.Close()
}

// Close cleanly shuts down Pebble, flushing any in-memory state.
func (l *LSM) Close() error {
	return l.db.Close()
}

func (l *LSM) Len() int { return l.count }

func (l *LSM) Insert(key int64) error {
	ok, err := l.Contains(key)
	if err != nil || ok {
		return err
	}
	if err := l.db.Set(encodeKey(key), nil, pebble.NoSync); err != nil {
		return fmt.Errorf("pebblelsm: insert: %w", err)
	}
	l.count++
	return nil
}

func (l *LSM) Contains(key int64) (bool, error) {
	_, closer, err := l.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pebblelsm: get: %w", err)
	}
	return true, closer.Close()
}

func (l *LSM) Delete(key int64) (bool, error) {
	ok, err := l.Contains(key)
	if err != nil || !ok {
		return false, err
	}
	if err := l.db.Delete(encodeKey(key), pebble.NoSync); err != nil {
		return false, fmt.Errorf("pebblelsm: delete: %w", err)
	}
	l.count--
	return true, nil
}

func (l *LSM) Min() (int64, error) { return l.boundary("min", (*pebble.Iterator).First) }
func (l *LSM) Max() (int64, error) { return l.boundary("max", (*pebble.Iterator).Last) }

func (l *LSM) boundary(op string, seek func(*pebble.Iterator) bool) (int64, error) {
	iter, err := l.db.NewIter(nil)
	if err != nil {
		return 0, fmt.Errorf("pebblelsm: %s: %w", op, err)
	}
	defer iter.Close()
	if !seek(iter) {
		return 0, fmt.Errorf("pebblelsm: %s: %w", op, index.ErrEmpty)
	}
	return decodeKey(iter.Key())
}

// Scan returns an iterator over all keys in ascending order.
func (l *LSM) Scan() (index.Iterator, error) {
	iter, err := l.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("pebblelsm: scan: %w", err)
	}
	iter.First()
	return &rangeIterator{iter: iter, first: true}, nil
}

// ─── Key encoding ─────────────────────────────────────────────────────────────

// encodeKey encodes an int64 as a big-endian 8-byte slice with the sign bit
// flipped, so the byte order Pebble sorts by matches the numeric order.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

func decodeKey(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("pebblelsm: unexpected key length %d", len(b))
	}
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63)), nil
}

// ─── Range Iterator ───────────────────────────────────────────────────────────

type rangeIterator struct {
	iter  *pebble.Iterator
	first bool
	key   int64
	err   error
}

func (it *rangeIterator) Next() bool {
	var valid bool
	if it.first {
		// iter.First() was already called in Scan(); just check validity.
		it.first = false
		valid = it.iter.Valid()
	} else {
		valid = it.iter.Next()
	}
	if !valid {
		return false
	}
	it.key, it.err = decodeKey(it.iter.Key())
	return it.err == nil
}

func (it *rangeIterator) Key() int64   { return it.key }
func (it *rangeIterator) Error() error { return it.err }
func (it *rangeIterator) Close() error { return it.iter.Close() }
