// Package lsmtree is a small in-memory log-structured merge tree holding an
// int64 key set: an append-only memtable flushed into sorted, bloom-filtered
// segments that are compacted level by level. Deletions are tombstones.
package lsmtree

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/btree-query-bench/twothree/index"
)

// Ensure LSMTree implements the index.Index interface
var _ index.Index = (*LSMTree)(nil)

type Entry struct {
	Key       int64
	Tombstone bool
}

type Segment struct {
	Data   []Entry
	Filter *BloomFilter
}

type LSMTree struct {
	MemTable  []Entry
	Levels    [][]Segment // Level 0 contains multiple segments, Levels 1+ are merged
	Threshold int         // Max size of MemTable before flush
	count     int
}

func NewLSM(threshold int) *LSMTree {
	if threshold < 1 {
		threshold = 1
	}
	return &LSMTree{
		Threshold: threshold,
		MemTable:  make([]Entry, 0, threshold),
		Levels:    make([][]Segment, 5), // L0 to L4
	}
}

func (l *LSMTree) Len() int { return l.count }

// --- WRITE OPERATIONS ---

func (l *LSMTree) Insert(k int64) error {
	if ok, _ := l.Contains(k); ok {
		return nil
	}
	l.append(Entry{Key: k})
	l.count++
	return nil
}

func (l *LSMTree) Delete(k int64) (bool, error) {
	if ok, _ := l.Contains(k); !ok {
		return false, nil
	}
	l.append(Entry{Key: k, Tombstone: true})
	l.count--
	return true, nil
}

func (l *LSMTree) append(e Entry) {
	l.MemTable = append(l.MemTable, e)
	if len(l.MemTable) >= l.Threshold {
		l.flush()
	}
}

// sortedRun sorts entries by key keeping only the newest version of each,
// where later entries are newer.
func sortedRun(entries []Entry) []Entry {
	run := slices.Clone(entries)
	slices.SortStableFunc(run, func(a, b Entry) int {
		return cmp.Compare(a.Key, b.Key)
	})
	out := run[:0]
	for i, e := range run {
		if i+1 < len(run) && run[i+1].Key == e.Key {
			continue
		}
		out = append(out, e)
	}
	return out
}

func newSegment(data []Entry) Segment {
	filter := NewBloom(len(data)*10, 3)
	for _, e := range data {
		filter.Add(e.Key)
	}
	return Segment{Data: data, Filter: filter}
}

func (l *LSMTree) flush() {
	// Push to Level 0
	l.Levels[0] = append([]Segment{newSegment(sortedRun(l.MemTable))}, l.Levels[0]...)
	l.MemTable = make([]Entry, 0, l.Threshold)

	// Trigger 10x Leveling Check
	l.checkCompaction(0)
}

func (l *LSMTree) checkCompaction(level int) {
	// If a level has more than 10 segments, merge them into the next level
	if len(l.Levels[level]) >= 10 && level < len(l.Levels)-1 {
		l.compactLevel(level)
	}
}

func (l *LSMTree) compactLevel(level int) {
	var combined []Entry
	for _, s := range l.Levels[level] {
		combined = append(combined, s.Data...)
	}

	// Stable Sort: newer segments are at the beginning of the slice
	slices.SortStableFunc(combined, func(a, b Entry) int {
		return cmp.Compare(a.Key, b.Key)
	})

	var compacted []Entry
	for i := 0; i < len(combined); i++ {
		if i > 0 && combined[i].Key == combined[i-1].Key {
			continue // Keep newest version (Deduplicate)
		}
		compacted = append(compacted, combined[i])
	}

	l.Levels[level+1] = append([]Segment{newSegment(compacted)}, l.Levels[level+1]...)
	l.Levels[level] = make([]Segment, 0)

	l.checkCompaction(level + 1)
}

// --- READ OPERATIONS ---

func (l *LSMTree) Contains(key int64) (bool, error) {
	// 1. Search MemTable
	for i := len(l.MemTable) - 1; i >= 0; i-- {
		if l.MemTable[i].Key == key {
			return !l.MemTable[i].Tombstone, nil
		}
	}

	// 2. Search Levels
	for _, level := range l.Levels {
		for _, s := range level {
			if !s.Filter.Test(key) {
				continue
			}
			idx, found := slices.BinarySearchFunc(s.Data, key, func(e Entry, t int64) int {
				return cmp.Compare(e.Key, t)
			})
			if found {
				return !s.Data[idx].Tombstone, nil
			}
		}
	}
	return false, nil
}

// Min and Max merge every run, which is linear in the number of entries.
func (l *LSMTree) Min() (int64, error) {
	keys := l.merged()
	if len(keys) == 0 {
		return 0, fmt.Errorf("lsmtree: min: %w", index.ErrEmpty)
	}
	return keys[0], nil
}

func (l *LSMTree) Max() (int64, error) {
	keys := l.merged()
	if len(keys) == 0 {
		return 0, fmt.Errorf("lsmtree: max: %w", index.ErrEmpty)
	}
	return keys[len(keys)-1], nil
}

func (l *LSMTree) Scan() (index.Iterator, error) {
	return index.NewSliceIterator(l.merged()), nil
}

// --- MERGE (Using Priority Queue / Heap) ---

// merged returns the live keys of all runs in ascending order.
func (l *LSMTree) merged() []int64 {
	h := &MergeHeap{}
	heap.Init(h)

	rank := 0
	if len(l.MemTable) > 0 {
		heap.Push(h, &HeapItem{data: sortedRun(l.MemTable), rank: rank})
	}
	for _, level := range l.Levels {
		for _, seg := range level {
			rank++
			if len(seg.Data) > 0 {
				heap.Push(h, &HeapItem{data: seg.Data, rank: rank})
			}
		}
	}

	final := make([]int64, 0, l.count)
	var lastKey int64
	first := true
	for h.Len() > 0 {
		item := heap.Pop(h).(*HeapItem)
		entry := item.data[item.index]

		// The newest run holding a key pops first; older versions are skipped.
		if first || entry.Key != lastKey {
			if !entry.Tombstone {
				final = append(final, entry.Key)
			}
			lastKey = entry.Key
			first = false
		}

		item.index++
		if item.index < len(item.data) {
			heap.Push(h, item)
		}
	}
	return final
}

// --- HEAP IMPLEMENTATION ---

type HeapItem struct {
	data  []Entry
	index int
	rank  int // lower is newer
}

type MergeHeap []*HeapItem

func (h MergeHeap) Len() int { return len(h) }
func (h MergeHeap) Less(i, j int) bool {
	a, b := h[i].data[h[i].index].Key, h[j].data[h[j].index].Key
	if a != b {
		return a < b
	}
	return h[i].rank < h[j].rank
}
func (h MergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *MergeHeap) Push(x any)   { *h = append(*h, x.(*HeapItem)) }
func (h *MergeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (l *LSMTree) Close() error { return nil }
