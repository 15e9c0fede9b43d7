package frozen

import (
	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
)

// MapBuilder is a mutable builder of immutable maps.
//
// A builder attached to a built map (via ToBuilder or a prior Build) shares
// the map's backing store; the store is cloned once, on the first mutation
// after attachment. A builder is single-goroutine only.
type MapBuilder[K comparable, V any] struct {
	items     map[K]V
	owner     *Map[K, V]
	keyChecks checked.Values[K]
	valChecks checked.Values[V]
}

// NewMapBuilder returns a new, empty map builder.
func NewMapBuilder[K comparable, V any]() *MapBuilder[K, V] {
	return &MapBuilder[K, V]{items: map[K]V{}}
}

// NewMapBuilderWithCap returns a new, empty map builder with the provided
// capacity for the backing store.
func NewMapBuilderWithCap[K comparable, V any](capacity uint32) *MapBuilder[K, V] {
	return &MapBuilder[K, V]{items: make(map[K]V, capacity)}
}

func (b *MapBuilder[K, V]) ensureDetached() {
	if b.owner == nil {
		return
	}

	b.items = maps.Clone(b.items)
	b.owner = nil

	logging.Trace().Str("collection", "map").Int("len", len(b.items)).Msg("cloned shared backing store before first write")
}

// Set stores the given value under the given key, replacing any existing
// value.
func (b *MapBuilder[K, V]) Set(key K, value V) error {
	if err := b.keyChecks.CheckKey(key); err != nil {
		return err
	}
	if err := b.valChecks.CheckValue(value); err != nil {
		return err
	}

	b.ensureDetached()
	b.items[key] = value
	return nil
}

// SetAll stores every entry of the given map. Validation is incremental:
// entries accepted before a failing entry remain set, in no particular
// entry order.
func (b *MapBuilder[K, V]) SetAll(entries map[K]V) error {
	b.ensureDetached()
	for key, value := range entries {
		if err := b.keyChecks.CheckKey(key); err != nil {
			return err
		}
		if err := b.valChecks.CheckValue(value); err != nil {
			return err
		}
		b.items[key] = value
	}
	return nil
}

// Update replaces the value stored for the given key with the result of the
// given function applied to it. Updating an absent key is a no-op.
func (b *MapBuilder[K, V]) Update(key K, update func(V) V) error {
	existing, ok := b.items[key]
	if !ok {
		return nil
	}

	produced := update(existing)
	if err := b.valChecks.CheckValue(produced); err != nil {
		return err
	}

	b.ensureDetached()
	b.items[key] = produced
	return nil
}

// UpdateAll replaces every value with the result of the given function
// applied to its entry. Validation is incremental: if a produced value is
// rejected, values updated before it remain replaced.
func (b *MapBuilder[K, V]) UpdateAll(update func(K, V) V) error {
	b.ensureDetached()
	for key, value := range b.items {
		produced := update(key, value)
		if err := b.valChecks.CheckValue(produced); err != nil {
			return err
		}
		b.items[key] = produced
	}
	return nil
}

// Remove removes the given key from the map, returning whether the key was
// present when the call was made.
func (b *MapBuilder[K, V]) Remove(key K) bool {
	if _, ok := b.items[key]; !ok {
		return false
	}

	b.ensureDetached()
	delete(b.items, key)
	return true
}

// RemoveWhere removes all entries matching the given predicate.
func (b *MapBuilder[K, V]) RemoveWhere(pred func(K, V) bool) {
	var matched []K
	for key, value := range b.items {
		if pred(key, value) {
			matched = append(matched, key)
		}
	}
	if len(matched) == 0 {
		return
	}

	b.ensureDetached()
	for _, key := range matched {
		delete(b.items, key)
	}
}

// Clear removes all entries. No copy of the prior contents is made.
func (b *MapBuilder[K, V]) Clear() {
	b.items = map[K]V{}
	b.owner = nil
}

// Replace discards the builder's contents and replaces them with the
// entries of the given map. If validation fails partway, the prior contents
// are kept.
func (b *MapBuilder[K, V]) Replace(entries map[K]V) error {
	items := make(map[K]V, len(entries))
	for key, value := range entries {
		if err := b.keyChecks.CheckKey(key); err != nil {
			return err
		}
		if err := b.valChecks.CheckValue(value); err != nil {
			return err
		}
		items[key] = value
	}

	b.items = items
	b.owner = nil
	return nil
}

// ReplaceMap discards the builder's contents and attaches the builder to
// the given map, sharing the map's backing store without copying.
func (b *MapBuilder[K, V]) ReplaceMap(m *Map[K, V]) {
	b.items = m.items
	b.owner = m
	b.keyChecks = m.keyChecks
	b.valChecks = m.valChecks
}

// Build returns an immutable map holding the builder's current contents.
//
// Build is identity-stable: repeated calls with no intervening mutation
// return the same instance, and building an unmutated builder derived from
// a map returns that original map.
func (b *MapBuilder[K, V]) Build() *Map[K, V] {
	if b.owner != nil {
		return b.owner
	}

	built := &Map[K, V]{items: b.items, keyChecks: b.keyChecks, valChecks: b.valChecks}
	b.owner = built
	return built
}

// Len returns the number of entries currently in the builder.
func (b *MapBuilder[K, V]) Len() int { return len(b.items) }

// IsEmpty returns true if the builder is currently empty.
func (b *MapBuilder[K, V]) IsEmpty() bool { return len(b.items) == 0 }

// Get returns the value stored for the provided key and whether the key
// existed. Reading never detaches the builder.
func (b *MapBuilder[K, V]) Get(key K) (V, bool) {
	found, ok := b.items[key]
	return found, ok
}

// Has returns true if the key is found in the builder. Reading never
// detaches the builder.
func (b *MapBuilder[K, V]) Has(key K) bool {
	_, ok := b.items[key]
	return ok
}
