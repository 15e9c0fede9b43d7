package frozen

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"

	"github.com/authzed/frozen/pkg/genutil"
)

// hashSeed is the process-stable seed for element hashes. Collection
// hashes are comparable within a single process only.
var hashSeed = maphash.MakeSeed()

// ListHash returns a hash of the list's contents, sensitive to element
// order.
func ListHash[T comparable](l *List[T]) uint64 {
	digest := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], genutil.MustEnsureUInt64(len(l.items)))
	_, _ = digest.Write(buf[:])
	for _, item := range l.items {
		binary.LittleEndian.PutUint64(buf[:], maphash.Comparable(hashSeed, item))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

// Hash returns a hash of the set's contents. Elements are combined by XOR
// so that iteration order cannot matter.
func (s *Set[T]) Hash() uint64 {
	var combined uint64
	for value := range s.values {
		combined ^= maphash.Comparable(hashSeed, value)
	}
	return foldUnordered(len(s.values), combined)
}

// MapHash returns a hash of the map's contents, insensitive to entry
// order.
func MapHash[K comparable, V comparable](m *Map[K, V]) uint64 {
	var combined uint64
	for key, value := range m.items {
		combined ^= entryHash(maphash.Comparable(hashSeed, key), maphash.Comparable(hashSeed, value))
	}
	return foldUnordered(len(m.items), combined)
}

// ListMultimapHash returns a hash of the multimap's contents, insensitive
// to key order but sensitive to the value order within each key.
func ListMultimapHash[K comparable, V comparable](m *ListMultimap[K, V]) uint64 {
	var combined uint64
	for key, list := range m.items {
		combined ^= entryHash(maphash.Comparable(hashSeed, key), ListHash(list))
	}
	return foldUnordered(len(m.items), combined)
}

// SetMultimapHash returns a hash of the multimap's contents, insensitive
// to both key and value order.
func SetMultimapHash[K comparable, V comparable](m *SetMultimap[K, V]) uint64 {
	var combined uint64
	for key, set := range m.items {
		combined ^= entryHash(maphash.Comparable(hashSeed, key), set.Hash())
	}
	return foldUnordered(len(m.items), combined)
}

func entryHash(keyHash, valueHash uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], keyHash)
	binary.LittleEndian.PutUint64(buf[8:], valueHash)
	return xxhash.Sum64(buf[:])
}

// foldUnordered mixes an order-insensitive element combination with the
// element count, so that sets differing only in size cannot collide to the
// zero hash.
func foldUnordered(count int, combined uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], genutil.MustEnsureUInt64(count))
	binary.LittleEndian.PutUint64(buf[8:], combined)
	return xxhash.Sum64(buf[:])
}
