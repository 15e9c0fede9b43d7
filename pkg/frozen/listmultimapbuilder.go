package frozen

import (
	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
	"github.com/authzed/frozen/pkg/frozenerrors"
)

// ListMultimapBuilder is a mutable builder of immutable list multimaps.
//
// The copy-on-write protocol applies per key: the outer key map is cloned
// once, the first time any key is touched after attachment, and each key's
// value list is managed by a nested ListBuilder that clones that list only
// if the key itself is mutated. A builder is single-goroutine only.
type ListMultimapBuilder[K comparable, V any] struct {
	builtMap   map[K]*List[V]
	owner      *ListMultimap[K, V]
	builderMap map[K]*ListBuilder[V]
	keyChecks  checked.Values[K]
	valChecks  checked.Values[V]
}

// NewListMultimapBuilder returns a new, empty multimap builder.
func NewListMultimapBuilder[K comparable, V any]() *ListMultimapBuilder[K, V] {
	return &ListMultimapBuilder[K, V]{
		builtMap:   map[K]*List[V]{},
		builderMap: map[K]*ListBuilder[V]{},
	}
}

// ensureDetached clones the outer key map only; value lists stay shared
// with the owner until their key is touched.
func (b *ListMultimapBuilder[K, V]) ensureDetached() {
	if b.owner == nil {
		return
	}

	b.builtMap = maps.Clone(b.builtMap)
	b.owner = nil

	logging.Trace().Str("collection", "listmultimap").Int("keys", len(b.builtMap)).Msg("cloned shared key map before first write")
}

// valueBuilder returns the nested builder for the given key, creating it
// attached to the key's current value list if one exists.
func (b *ListMultimapBuilder[K, V]) valueBuilder(key K) *ListBuilder[V] {
	if vb, ok := b.builderMap[key]; ok {
		return vb
	}

	b.ensureDetached()

	var vb *ListBuilder[V]
	if existing, ok := b.builtMap[key]; ok {
		vb = existing.ToBuilder()
	} else {
		vb = &ListBuilder[V]{checks: b.valChecks}
	}
	b.builderMap[key] = vb
	return vb
}

// Add inserts the value into the multimap at the given key.
//
// If there exists an existing value, then this value is appended *without
// comparison*. Put another way, a value can be added twice, if this method
// is called twice for the same value.
func (b *ListMultimapBuilder[K, V]) Add(key K, value V) error {
	if err := b.keyChecks.CheckKey(key); err != nil {
		return err
	}
	if err := b.valChecks.CheckValue(value); err != nil {
		return err
	}
	return b.valueBuilder(key).Add(value)
}

// AddValues inserts all the given values at the given key. Validation is
// incremental: values accepted before a failing value remain added.
func (b *ListMultimapBuilder[K, V]) AddValues(key K, values ...V) error {
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
func (b *ListMultimapBuilder[K, V]) AddAll(other *ListMultimap[K, V]) error {
	for key, list := range other.items {
		if err := b.AddValues(key, list.items...); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll removes the given key from the multimap, discarding all of its
// values.
func (b *ListMultimapBuilder[K, V]) RemoveAll(key K) {
	if _, inBuilder := b.builderMap[key]; !inBuilder {
		if _, inBuilt := b.builtMap[key]; !inBuilt {
			return
		}
	}

	b.ensureDetached()
	b.builderMap[key] = &ListBuilder[V]{checks: b.valChecks}
}

// Clear removes all keys and values. No copy of the prior contents is made.
func (b *ListMultimapBuilder[K, V]) Clear() {
	b.builtMap = map[K]*List[V]{}
	b.builderMap = map[K]*ListBuilder[V]{}
	b.owner = nil
}

// Replace discards the builder's contents and replaces them with the
// entries of the given map, dropping keys with empty value slices. If
// validation fails partway, the prior contents are kept.
func (b *ListMultimapBuilder[K, V]) Replace(src map[K][]V) error {
	items, err := newListMultimapItems(src, b.keyChecks, b.valChecks)
	if err != nil {
		return err
	}

	b.builtMap = items
	b.builderMap = map[K]*ListBuilder[V]{}
	b.owner = nil
	return nil
}

// ReplaceMultimap discards the builder's contents and attaches the builder
// to the given multimap, sharing its backing stores without copying.
func (b *ListMultimapBuilder[K, V]) ReplaceMultimap(m *ListMultimap[K, V]) {
	b.builtMap = m.items
	b.builderMap = map[K]*ListBuilder[V]{}
	b.owner = m
	b.keyChecks = m.keyChecks
	b.valChecks = m.valChecks
}

// Build returns an immutable multimap holding the builder's current
// contents. Every key touched this session is finalized through its nested
// builder, and keys whose value lists came out empty are dropped.
//
// Build is identity-stable: repeated calls with no intervening mutation
// return the same instance, and building an unmutated builder derived from
// a multimap returns that original multimap.
func (b *ListMultimapBuilder[K, V]) Build() *ListMultimap[K, V] {
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
	b.builderMap = map[K]*ListBuilder[V]{}

	built := &ListMultimap[K, V]{items: b.builtMap, keyChecks: b.keyChecks, valChecks: b.valChecks}
	frozenerrors.DebugAssertf(func() bool {
		for _, list := range built.items {
			if list.IsEmpty() {
				return false
			}
		}
		return true
	}, "built multimap retains a key with no values")

	b.owner = built
	return built
}

// ListMultimapBuilderRemove removes the first occurrence of the given value
// from the given key's list, returning whether it was found. A key whose
// last value is removed is dropped when the multimap is built.
func ListMultimapBuilderRemove[K comparable, V comparable](b *ListMultimapBuilder[K, V], key K, value V) bool {
	if _, inBuilder := b.builderMap[key]; !inBuilder {
		if _, inBuilt := b.builtMap[key]; !inBuilt {
			return false
		}
	}
	return ListBuilderRemove(b.valueBuilder(key), value)
}
