package frozen

import (
	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
	"github.com/authzed/frozen/pkg/frozenerrors"
)

// SetMultimapBuilder is a mutable builder of immutable set multimaps.
//
// The copy-on-write protocol applies per key: the outer key map is cloned
// once, the first time any key is touched after attachment, and each key's
// value set is managed by a nested SetBuilder that clones that set only if
// the key itself is mutated. A builder is single-goroutine only.
type SetMultimapBuilder[K comparable, V comparable] struct {
	builtMap   map[K]*Set[V]
	owner      *SetMultimap[K, V]
	builderMap map[K]*SetBuilder[V]
	keyChecks  checked.Values[K]
	valChecks  checked.Values[V]
}

// NewSetMultimapBuilder returns a new, empty multimap builder.
func NewSetMultimapBuilder[K comparable, V comparable]() *SetMultimapBuilder[K, V] {
	return &SetMultimapBuilder[K, V]{
		builtMap:   map[K]*Set[V]{},
		builderMap: map[K]*SetBuilder[V]{},
	}
}

// ensureDetached clones the outer key map only; value sets stay shared with
// the owner until their key is touched.
func (b *SetMultimapBuilder[K, V]) ensureDetached() {
	if b.owner == nil {
		return
	}

	b.builtMap = maps.Clone(b.builtMap)
	b.owner = nil

	logging.Trace().Str("collection", "setmultimap").Int("keys", len(b.builtMap)).Msg("cloned shared key map before first write")
}

// valueBuilder returns the nested builder for the given key, creating it
// attached to the key's current value set if one exists.
func (b *SetMultimapBuilder[K, V]) valueBuilder(key K) *SetBuilder[V] {
	if vb, ok := b.builderMap[key]; ok {
		return vb
	}

	b.ensureDetached()

	var vb *SetBuilder[V]
	if existing, ok := b.builtMap[key]; ok {
		vb = existing.ToBuilder()
	} else {
		vb = &SetBuilder[V]{values: map[V]struct{}{}, checks: b.valChecks}
	}
	b.builderMap[key] = vb
	return vb
}

// Add inserts the value into the multimap at the given key. Adding a
// key-value pair that is already present has no effect.
func (b *SetMultimapBuilder[K, V]) Add(key K, value V) error {
	if err := b.keyChecks.CheckKey(key); err != nil {
		return err
	}
	if err := b.valChecks.CheckValue(value); err != nil {
		return err
	}
	return b.valueBuilder(key).Add(value)
}

// AddValues inserts all the given values at the given key, deduplicating.
// Validation is incremental: values accepted before a failing value remain
// added.
func (b *SetMultimapBuilder[K, V]) AddValues(key K, values ...V) error {
	if err := b.keyChecks.CheckKey(key); err != nil {
		return err
	}

	vb := b.valueBuilder(key)
	for _, value := range values {
		if err := b.valChecks.CheckValue(value); err != nil {
			return err
		}
		if err := vb.Add(value); err != nil {
			return err
		}
	}
	return nil
}

// AddAll inserts every entry of the given multimap. Validation is
// incremental, in no particular key order.
func (b *SetMultimapBuilder[K, V]) AddAll(other *SetMultimap[K, V]) error {
	for key, set := range other.items {
		if err := b.keyChecks.CheckKey(key); err != nil {
			return err
		}

		vb := b.valueBuilder(key)
		for value := range set.values {
			if err := b.valChecks.CheckValue(value); err != nil {
				return err
			}
			if err := vb.Add(value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Remove removes the value stored under the given key, returning whether it
// was present. A key whose last value is removed is dropped when the
// multimap is built.
func (b *SetMultimapBuilder[K, V]) Remove(key K, value V) bool {
	if _, inBuilder := b.builderMap[key]; !inBuilder {
		if _, inBuilt := b.builtMap[key]; !inBuilt {
			return false
		}
	}
	return b.valueBuilder(key).Remove(value)
}

// RemoveAll removes the given key from the multimap, discarding all of its
// values.
func (b *SetMultimapBuilder[K, V]) RemoveAll(key K) {
	if _, inBuilder := b.builderMap[key]; !inBuilder {
		if _, inBuilt := b.builtMap[key]; !inBuilt {
			return
		}
	}

	b.ensureDetached()
	b.builderMap[key] = &SetBuilder[V]{values: map[V]struct{}{}, checks: b.valChecks}
}

// Clear removes all keys and values. No copy of the prior contents is made.
func (b *SetMultimapBuilder[K, V]) Clear() {
	b.builtMap = map[K]*Set[V]{}
	b.builderMap = map[K]*SetBuilder[V]{}
	b.owner = nil
}

// Replace discards the builder's contents and replaces them with the
// entries of the given map, dropping keys with empty value slices. If
// validation fails partway, the prior contents are kept.
func (b *SetMultimapBuilder[K, V]) Replace(src map[K][]V) error {
	items, err := newSetMultimapItems(src, b.keyChecks, b.valChecks)
	if err != nil {
		return err
	}

	b.builtMap = items
	b.builderMap = map[K]*SetBuilder[V]{}
	b.owner = nil
	return nil
}

// ReplaceMultimap discards the builder's contents and attaches the builder
// to the given multimap, sharing its backing stores without copying.
func (b *SetMultimapBuilder[K, V]) ReplaceMultimap(m *SetMultimap[K, V]) {
	b.builtMap = m.items
	b.builderMap = map[K]*SetBuilder[V]{}
	b.owner = m
	b.keyChecks = m.keyChecks
	b.valChecks = m.valChecks
}

// Build returns an immutable multimap holding the builder's current
// contents. Every key touched this session is finalized through its nested
// builder, and keys whose value sets came out empty are dropped.
//
// Build is identity-stable: repeated calls with no intervening mutation
// return the same instance, and building an unmutated builder derived from
// a multimap returns that original multimap.
func (b *SetMultimapBuilder[K, V]) Build() *SetMultimap[K, V] {
	if b.owner != nil {
		frozenerrors.DebugAssertf(func() bool { return len(b.builderMap) == 0 }, "attached multimap builder has pending value builders")
		return b.owner
	}

	for key, vb := range b.builderMap {
		built := vb.Build()
		if built.IsEmpty() {
			delete(b.builtMap, key)
		} else {
			b.builtMap[key] = built
		}
	}
	b.builderMap = map[K]*SetBuilder[V]{}

	built := &SetMultimap[K, V]{items: b.builtMap, keyChecks: b.keyChecks, valChecks: b.valChecks}
	frozenerrors.DebugAssertf(func() bool {
		for _, set := range built.items {
			if set.IsEmpty() {
				return false
			}
		}
		return true
	}, "built multimap retains a key with no values")

	b.owner = built
	return built
}
