package frozen

import (
	"iter"

	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/pkg/checked"
)

// ListMultimap is an immutable map from keys to ordered lists of values. A
// value can appear more than once under a key.
//
// A key is present only while it has at least one value: building a
// multimap never retains a key whose value list has become empty.
type ListMultimap[K comparable, V any] struct {
	items     map[K]*List[V]
	keyChecks checked.Values[K]
	valChecks checked.Values[V]
}

func newListMultimapItems[K comparable, V any](src map[K][]V, keyChecks checked.Values[K], valChecks checked.Values[V]) (map[K]*List[V], error) {
	items := make(map[K]*List[V], len(src))
	for key, values := range src {
		if len(values) == 0 {
			continue
		}
		if err := keyChecks.CheckKey(key); err != nil {
			return nil, err
		}

		list := make([]V, 0, len(values))
		for _, value := range values {
			if err := valChecks.CheckValue(value); err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		items[key] = &List[V]{items: list, checks: valChecks}
	}
	return items, nil
}

// NewListMultimap returns a new immutable multimap holding the entries of
// the given map. Keys mapping to empty value slices are dropped.
func NewListMultimap[K comparable, V any](src map[K][]V) (*ListMultimap[K, V], error) {
	var keyChecks checked.Values[K]
	var valChecks checked.Values[V]
	items, err := newListMultimapItems(src, keyChecks, valChecks)
	if err != nil {
		return nil, err
	}
	return &ListMultimap[K, V]{items: items, keyChecks: keyChecks, valChecks: valChecks}, nil
}

// MustNewListMultimap is a helper function that calls NewListMultimap and
// panics on error.
func MustNewListMultimap[K comparable, V any](src map[K][]V) *ListMultimap[K, V] {
	m, err := NewListMultimap(src)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the length of the multimap, e.g. the number of *keys*
// present.
func (m *ListMultimap[K, V]) Len() int { return len(m.items) }

// IsEmpty returns true if the multimap is currently empty.
func (m *ListMultimap[K, V]) IsEmpty() bool { return len(m.items) == 0 }

// Has returns true if the key is found in the multimap.
func (m *ListMultimap[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Get returns the values stored for the provided key and whether the key
// existed. If the key does not exist, an empty list is returned.
func (m *ListMultimap[K, V]) Get(key K) (*List[V], bool) {
	found, ok := m.items[key]
	if !ok {
		return &List[V]{checks: m.valChecks}, false
	}
	return found, true
}

// CountOf returns the number of values stored for the given key.
func (m *ListMultimap[K, V]) CountOf(key K) int {
	found, ok := m.items[key]
	if !ok {
		return 0
	}
	return found.Len()
}

// Keys returns the keys of the multimap.
func (m *ListMultimap[K, V]) Keys() []K { return maps.Keys(m.items) }

// Values returns all values in the multimap, flattened across keys.
func (m *ListMultimap[K, V]) Values() []V {
	values := make([]V, 0, len(m.items)*2)
	for _, list := range m.items {
		values = append(values, list.items...)
	}
	return values
}

// All returns an iterator over the keys and value lists of the multimap, in
// no particular order.
func (m *ListMultimap[K, V]) All() iter.Seq2[K, *List[V]] {
	return func(yield func(K, *List[V]) bool) {
		for key, list := range m.items {
			if !yield(key, list) {
				return
			}
		}
	}
}

// AsMap returns a copy of the multimap's contents as a plain map of slices.
// Returns nil for an empty multimap.
func (m *ListMultimap[K, V]) AsMap() map[K][]V {
	if len(m.items) == 0 {
		return nil
	}

	out := make(map[K][]V, len(m.items))
	for key, list := range m.items {
		out[key] = list.AsSlice()
	}
	return out
}

// ToBuilder returns a new builder attached to this multimap: the builder
// shares this multimap's key map and per-key value lists, cloning the key
// map once if and when a mutation occurs and each value list only when a
// mutation touches that key.
func (m *ListMultimap[K, V]) ToBuilder() *ListMultimapBuilder[K, V] {
	return &ListMultimapBuilder[K, V]{
		builtMap:   m.items,
		owner:      m,
		builderMap: map[K]*ListBuilder[V]{},
		keyChecks:  m.keyChecks,
		valChecks:  m.valChecks,
	}
}

// Rebuild applies the given updates to a builder derived from this multimap
// and returns the result. Returns this same multimap if no update mutated
// the builder.
func (m *ListMultimap[K, V]) Rebuild(update func(*ListMultimapBuilder[K, V])) *ListMultimap[K, V] {
	b := m.ToBuilder()
	update(b)
	return b.Build()
}
