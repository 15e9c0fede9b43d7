package frozen

import (
	"slices"

	"golang.org/x/exp/maps"
)

// ListEqual returns true if the two lists hold equal elements in the same
// order. A nil list is treated as empty.
func ListEqual[T comparable](a, b *List[T]) bool {
	if a == b {
		return true
	}
	if a == nil {
		return b.IsEmpty()
	}
	if b == nil {
		return a.IsEmpty()
	}
	return slices.Equal(a.items, b.items)
}

// MapEqual returns true if the two maps hold exactly the same entries. A
// nil map is treated as empty.
func MapEqual[K comparable, V comparable](a, b *Map[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil {
		return b.IsEmpty()
	}
	if b == nil {
		return a.IsEmpty()
	}
	return maps.Equal(a.items, b.items)
}

// ListMultimapEqual returns true if the two multimaps hold the same keys
// mapping to equal value lists. A nil multimap is treated as empty.
func ListMultimapEqual[K comparable, V comparable](a, b *ListMultimap[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil {
		return b.IsEmpty()
	}
	if b == nil {
		return a.IsEmpty()
	}
	if len(a.items) != len(b.items) {
		return false
	}

	for key, alist := range a.items {
		blist, ok := b.items[key]
		if !ok || !ListEqual(alist, blist) {
			return false
		}
	}
	return true
}

// SetMultimapEqual returns true if the two multimaps hold the same keys
// mapping to equal value sets. A nil multimap is treated as empty.
func SetMultimapEqual[K comparable, V comparable](a, b *SetMultimap[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil {
		return b.IsEmpty()
	}
	if b == nil {
		return a.IsEmpty()
	}
	if len(a.items) != len(b.items) {
		return false
	}

	for key, aset := range a.items {
		bset, ok := b.items[key]
		if !ok || !aset.Equal(bset) {
			return false
		}
	}
	return true
}
