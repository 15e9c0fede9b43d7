package frozen

import (
	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
)

// SetBuilder is a mutable builder of immutable sets.
//
// A builder attached to a built set (via ToBuilder or a prior Build) shares
// the set's backing store; the store is cloned once, on the first mutation
// after attachment. A builder is single-goroutine only.
type SetBuilder[T comparable] struct {
	values map[T]struct{}
	owner  *Set[T]
	checks checked.Values[T]
}

// NewSetBuilder returns a new, empty set builder.
func NewSetBuilder[T comparable]() *SetBuilder[T] {
	return &SetBuilder[T]{values: map[T]struct{}{}}
}

// NewSetBuilderWithCap returns a new, empty set builder with the provided
// capacity for the backing store.
func NewSetBuilderWithCap[T comparable](capacity uint32) *SetBuilder[T] {
	return &SetBuilder[T]{values: make(map[T]struct{}, capacity)}
}

func (b *SetBuilder[T]) ensureDetached() {
	if b.owner == nil {
		return
	}

	b.values = maps.Clone(b.values)
	b.owner = nil

	logging.Trace().Str("collection", "set").Int("len", len(b.values)).Msg("cloned shared backing store before first write")
}

// Add inserts the given element into the set being built.
func (b *SetBuilder[T]) Add(value T) error {
	if err := b.checks.Check(value); err != nil {
		return err
	}

	b.ensureDetached()
	b.values[value] = struct{}{}
	return nil
}

// AddAll inserts all the given elements. Validation is incremental:
// elements accepted before a failing element remain added.
func (b *SetBuilder[T]) AddAll(values ...T) error {
	b.ensureDetached()
	for _, value := range values {
		if err := b.checks.Check(value); err != nil {
			return err
		}
		b.values[value] = struct{}{}
	}
	return nil
}

// Remove removes the value from the set, returning whether the element was
// present when the call was made.
func (b *SetBuilder[T]) Remove(value T) bool {
	if _, ok := b.values[value]; !ok {
		return false
	}

	b.ensureDetached()
	delete(b.values, value)
	return true
}

// RemoveAll removes all the given values from the set.
func (b *SetBuilder[T]) RemoveAll(values ...T) {
	present := false
	for _, value := range values {
		if _, ok := b.values[value]; ok {
			present = true
			break
		}
	}
	if !present {
		return
	}

	b.ensureDetached()
	for _, value := range values {
		delete(b.values, value)
	}
}

// RetainAll removes every element not listed in the given values.
func (b *SetBuilder[T]) RetainAll(values ...T) {
	retained := make(map[T]struct{}, len(values))
	for _, value := range values {
		if _, ok := b.values[value]; ok {
			retained[value] = struct{}{}
		}
	}
	if len(retained) == len(b.values) {
		return
	}

	b.values = retained
	b.owner = nil
}

// RemoveWhere removes all elements matching the given predicate.
func (b *SetBuilder[T]) RemoveWhere(pred func(T) bool) {
	var matched []T
	for value := range b.values {
		if pred(value) {
			matched = append(matched, value)
		}
	}
	if len(matched) == 0 {
		return
	}

	b.ensureDetached()
	for _, value := range matched {
		delete(b.values, value)
	}
}

// RetainWhere removes all elements not matching the given predicate.
func (b *SetBuilder[T]) RetainWhere(pred func(T) bool) {
	retained := make(map[T]struct{}, len(b.values))
	for value := range b.values {
		if pred(value) {
			retained[value] = struct{}{}
		}
	}
	if len(retained) == len(b.values) {
		return
	}

	b.values = retained
	b.owner = nil
}

// Map replaces each element with the result of the given function applied
// to it, deduplicating produced elements. Validation is incremental: if a
// produced element is rejected, the set holds the elements transformed so
// far.
func (b *SetBuilder[T]) Map(f func(T) T) error {
	mapped := make(map[T]struct{}, len(b.values))
	for value := range b.values {
		produced := f(value)
		if err := b.checks.Check(produced); err != nil {
			b.values = mapped
			b.owner = nil
			return err
		}
		mapped[produced] = struct{}{}
	}

	b.values = mapped
	b.owner = nil
	return nil
}

// Clear removes all elements. No copy of the prior contents is made.
func (b *SetBuilder[T]) Clear() {
	b.values = map[T]struct{}{}
	b.owner = nil
}

// Replace discards the builder's contents and replaces them with the given
// elements. If validation fails partway, the prior contents are kept.
func (b *SetBuilder[T]) Replace(elems ...T) error {
	values := make(map[T]struct{}, len(elems))
	for _, elem := range elems {
		if err := b.checks.Check(elem); err != nil {
			return err
		}
		values[elem] = struct{}{}
	}

	b.values = values
	b.owner = nil
	return nil
}

// ReplaceSet discards the builder's contents and attaches the builder to
// the given set, sharing the set's backing store without copying.
func (b *SetBuilder[T]) ReplaceSet(set *Set[T]) {
	b.values = set.values
	b.owner = set
	b.checks = set.checks
}

// Build returns an immutable set holding the builder's current contents.
//
// Build is identity-stable: repeated calls with no intervening mutation
// return the same instance, and building an unmutated builder derived from
// a set returns that original set.
func (b *SetBuilder[T]) Build() *Set[T] {
	if b.owner != nil {
		return b.owner
	}

	built := &Set[T]{values: b.values, checks: b.checks}
	b.owner = built
	return built
}

// Len returns the number of elements currently in the builder.
func (b *SetBuilder[T]) Len() int { return len(b.values) }

// IsEmpty returns true if the builder is currently empty.
func (b *SetBuilder[T]) IsEmpty() bool { return len(b.values) == 0 }

// Has returns true if the builder contains the given value. Reading never
// detaches the builder.
func (b *SetBuilder[T]) Has(value T) bool {
	_, exists := b.values[value]
	return exists
}
