package frozen

import (
	"iter"

	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/pkg/checked"
)

// SetMultimap is an immutable map from keys to sets of unique values:
// adding a key-value pair that is already present has no effect.
//
// A key is present only while it has at least one value: building a
// multimap never retains a key whose value set has become empty.
type SetMultimap[K comparable, V comparable] struct {
	items     map[K]*Set[V]
	keyChecks checked.Values[K]
	valChecks checked.Values[V]
}

func newSetMultimapItems[K comparable, V comparable](src map[K][]V, keyChecks checked.Values[K], valChecks checked.Values[V]) (map[K]*Set[V], error) {
	items := make(map[K]*Set[V], len(src))
	for key, values := range src {
		if len(values) == 0 {
			continue
		}
		if err := keyChecks.CheckKey(key); err != nil {
			return nil, err
		}

		set := make(map[V]struct{}, len(values))
		for _, value := range values {
			if err := valChecks.CheckValue(value); err != nil {
				return nil, err
			}
			set[value] = struct{}{}
		}
		items[key] = &Set[V]{values: set, checks: valChecks}
	}
	return items, nil
}

// NewSetMultimap returns a new immutable multimap holding the entries of
// the given map, deduplicating the values of each key. Keys mapping to
// empty value slices are dropped.
func NewSetMultimap[K comparable, V comparable](src map[K][]V) (*SetMultimap[K, V], error) {
	var keyChecks checked.Values[K]
	var valChecks checked.Values[V]
	items, err := newSetMultimapItems(src, keyChecks, valChecks)
	if err != nil {
		return nil, err
	}
	return &SetMultimap[K, V]{items: items, keyChecks: keyChecks, valChecks: valChecks}, nil
}

// MustNewSetMultimap is a helper function that calls NewSetMultimap and
// panics on error.
func MustNewSetMultimap[K comparable, V comparable](src map[K][]V) *SetMultimap[K, V] {
	m, err := NewSetMultimap(src)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the length of the multimap, e.g. the number of *keys*
// present.
func (m *SetMultimap[K, V]) Len() int { return len(m.items) }

// IsEmpty returns true if the multimap is currently empty.
func (m *SetMultimap[K, V]) IsEmpty() bool { return len(m.items) == 0 }

// Has returns true if the key is found in the multimap.
func (m *SetMultimap[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// HasValue returns true if the multimap contains the given value under the
// given key.
func (m *SetMultimap[K, V]) HasValue(key K, value V) bool {
	found, ok := m.items[key]
	if !ok {
		return false
	}
	return found.Has(value)
}

// Get returns the values stored for the provided key and whether the key
// existed. If the key does not exist, an empty set is returned.
func (m *SetMultimap[K, V]) Get(key K) (*Set[V], bool) {
	found, ok := m.items[key]
	if !ok {
		return &Set[V]{values: map[V]struct{}{}, checks: m.valChecks}, false
	}
	return found, true
}

// CountOf returns the number of values stored for the given key.
func (m *SetMultimap[K, V]) CountOf(key K) int {
	found, ok := m.items[key]
	if !ok {
		return 0
	}
	return found.Len()
}

// Keys returns the keys of the multimap.
func (m *SetMultimap[K, V]) Keys() []K { return maps.Keys(m.items) }

// Values returns all values in the multimap, flattened across keys, in no
// particular order.
func (m *SetMultimap[K, V]) Values() []V {
	values := make([]V, 0, len(m.items)*2)
	for _, set := range m.items {
		for value := range set.values {
			values = append(values, value)
		}
	}
	return values
}

// All returns an iterator over the keys and value sets of the multimap, in
// no particular order.
func (m *SetMultimap[K, V]) All() iter.Seq2[K, *Set[V]] {
	return func(yield func(K, *Set[V]) bool) {
		for key, set := range m.items {
			if !yield(key, set) {
				return
			}
		}
	}
}

// AsMap returns a copy of the multimap's contents as a plain map of slices,
// each in no particular order. Returns nil for an empty multimap.
func (m *SetMultimap[K, V]) AsMap() map[K][]V {
	if len(m.items) == 0 {
		return nil
	}

	out := make(map[K][]V, len(m.items))
	for key, set := range m.items {
		out[key] = set.AsSlice()
	}
	return out
}

// ToBuilder returns a new builder attached to this multimap: the builder
// shares this multimap's key map and per-key value sets, cloning the key
// map once if and when a mutation occurs and each value set only when a
// mutation touches that key.
func (m *SetMultimap[K, V]) ToBuilder() *SetMultimapBuilder[K, V] {
	return &SetMultimapBuilder[K, V]{
		builtMap:   m.items,
		owner:      m,
		builderMap: map[K]*SetBuilder[V]{},
		keyChecks:  m.keyChecks,
		valChecks:  m.valChecks,
	}
}

// Rebuild applies the given updates to a builder derived from this multimap
// and returns the result. Returns this same multimap if no update mutated
// the builder.
func (m *SetMultimap[K, V]) Rebuild(update func(*SetMultimapBuilder[K, V])) *SetMultimap[K, V] {
	b := m.ToBuilder()
	update(b)
	return b.Build()
}
