package frozen

import (
	"iter"

	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/pkg/checked"
)

// Map is an immutable collection of key-value pairs.
//
// A Map is never mutated after construction and is safe for unsynchronized
// concurrent reads.
type Map[K comparable, V any] struct {
	items     map[K]V
	keyChecks checked.Values[K]
	valChecks checked.Values[V]
}

// NewMap returns a new immutable map holding the entries of the given map.
func NewMap[K comparable, V any](src map[K]V) (*Map[K, V], error) {
	var keyChecks checked.Values[K]
	var valChecks checked.Values[V]
	items := make(map[K]V, len(src))
	for key, value := range src {
		if err := keyChecks.CheckKey(key); err != nil {
			return nil, err
		}
		if err := valChecks.CheckValue(value); err != nil {
			return nil, err
		}
		items[key] = value
	}
	return &Map[K, V]{items: items, keyChecks: keyChecks, valChecks: valChecks}, nil
}

// MustNewMap is a helper function that calls NewMap and panics on error.
func MustNewMap[K comparable, V any](src map[K]V) *Map[K, V] {
	m, err := NewMap(src)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return len(m.items) }

// IsEmpty returns true if the map is currently empty.
func (m *Map[K, V]) IsEmpty() bool { return len(m.items) == 0 }

// Get returns the value stored for the provided key and whether the key
// existed.
func (m *Map[K, V]) Get(key K) (V, bool) {
	found, ok := m.items[key]
	return found, ok
}

// Has returns true if the key is found in the map.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Keys returns the keys of the map.
func (m *Map[K, V]) Keys() []K { return maps.Keys(m.items) }

// Values returns all values in the map.
func (m *Map[K, V]) Values() []V { return maps.Values(m.items) }

// All returns an iterator over the entries of the map, in no particular
// order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, value := range m.items {
			if !yield(key, value) {
				return
			}
		}
	}
}

// AsMap returns a copy of the map's contents as a plain map. Returns nil
// for an empty map.
func (m *Map[K, V]) AsMap() map[K]V {
	if len(m.items) == 0 {
		return nil
	}
	return maps.Clone(m.items)
}

// ToBuilder returns a new builder attached to this map: the builder shares
// this map's backing store and only clones it if and when a mutation
// occurs.
func (m *Map[K, V]) ToBuilder() *MapBuilder[K, V] {
	return &MapBuilder[K, V]{items: m.items, owner: m, keyChecks: m.keyChecks, valChecks: m.valChecks}
}

// Rebuild applies the given updates to a builder derived from this map and
// returns the result. Returns this same map if no update mutated the
// builder.
func (m *Map[K, V]) Rebuild(update func(*MapBuilder[K, V])) *Map[K, V] {
	b := m.ToBuilder()
	update(b)
	return b.Build()
}
