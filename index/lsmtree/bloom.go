package lsmtree

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

type BloomFilter struct {
	bits []bool
	m    uint32
	k    int
}

func NewBloom(size int, k int) *BloomFilter {
	if size < 1 {
		size = 1
	}
	return &BloomFilter{
		bits: make([]bool, size),
		m:    uint32(size),
		k:    k,
	}
}

func (b *BloomFilter) getHashes(key int64) []uint32 {
	var keyBytes [8]byte
	binary.LittleEndian.PutUint64(keyBytes[:], uint64(key))
	hashes := make([]uint32, b.k)
	for i := 0; i < b.k; i++ {
		// The seed salts each of the k hash functions.
		hashes[i] = uint32(murmur3.Sum64WithSeed(keyBytes[:], uint32(i)) % uint64(b.m))
	}
	return hashes
}

func (b *BloomFilter) Add(key int64) {
	for _, h := range b.getHashes(key) {
		b.bits[h] = true
	}
}

func (b *BloomFilter) Test(key int64) bool {
	for _, h := range b.getHashes(key) {
		if !b.bits[h] {
			return false // Definitely not there
		}
	}
	return true // Might be there
}
