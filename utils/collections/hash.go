package collections

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

type HashFunc[K any] func(K) uint64

func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

func HashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// Equal is the EqualFunc for comparable types.
func Equal[T comparable](a, b T) bool {
	return a == b
}
