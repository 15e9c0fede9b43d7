package frozen

import (
	"iter"

	"golang.org/x/exp/maps"

	"github.com/authzed/frozen/pkg/checked"
)

// Set is an immutable unordered collection of unique elements.
//
// A Set is never mutated after construction and is safe for unsynchronized
// concurrent reads.
type Set[T comparable] struct {
	values map[T]struct{}
	checks checked.Values[T]
}

// NewSet returns a new immutable set holding the given elements.
func NewSet[T comparable](elems ...T) (*Set[T], error) {
	var checks checked.Values[T]
	values := make(map[T]struct{}, len(elems))
	for _, elem := range elems {
		if err := checks.Check(elem); err != nil {
			return nil, err
		}
		values[elem] = struct{}{}
	}
	return &Set[T]{values: values, checks: checks}, nil
}

// MustNewSet is a helper function that calls NewSet and panics on error.
func MustNewSet[T comparable](elems ...T) *Set[T] {
	s, err := NewSet(elems...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return len(s.values) }

// IsEmpty returns true if the set is currently empty.
func (s *Set[T]) IsEmpty() bool { return len(s.values) == 0 }

// Has returns true if the set contains the given value.
func (s *Set[T]) Has(value T) bool {
	_, exists := s.values[value]
	return exists
}

// All returns an iterator over the elements of the set, in no particular
// order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for value := range s.values {
			if !yield(value) {
				return
			}
		}
	}
}

// AsSlice returns the set as a slice of values, in no particular order.
// Returns nil for an empty set.
func (s *Set[T]) AsSlice() []T {
	if len(s.values) == 0 {
		return nil
	}
	return maps.Keys(s.values)
}

// Equal returns true if the two sets contain exactly the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for value := range s.values {
		if _, ok := other.values[value]; !ok {
			return false
		}
	}
	return true
}

// Union returns a new immutable set holding the elements of both sets.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	values := make(map[T]struct{}, len(s.values)+len(other.values))
	maps.Copy(values, s.values)
	maps.Copy(values, other.values)
	return &Set[T]{values: values, checks: s.checks}
}

// Intersect returns a new immutable set holding the elements shared by both
// sets.
func (s *Set[T]) Intersect(other *Set[T]) *Set[T] {
	values := map[T]struct{}{}
	for value := range s.values {
		if _, ok := other.values[value]; ok {
			values[value] = struct{}{}
		}
	}
	return &Set[T]{values: values, checks: s.checks}
}

// Subtract returns a new immutable set holding the elements of this set not
// found in the other set.
func (s *Set[T]) Subtract(other *Set[T]) *Set[T] {
	values := map[T]struct{}{}
	for value := range s.values {
		if _, ok := other.values[value]; !ok {
			values[value] = struct{}{}
		}
	}
	return &Set[T]{values: values, checks: s.checks}
}

// ToBuilder returns a new builder attached to this set: the builder shares
// this set's backing store and only clones it if and when a mutation
// occurs.
func (s *Set[T]) ToBuilder() *SetBuilder[T] {
	return &SetBuilder[T]{values: s.values, owner: s, checks: s.checks}
}

// Rebuild applies the given updates to a builder derived from this set and
// returns the result. Returns this same set if no update mutated the
// builder.
func (s *Set[T]) Rebuild(update func(*SetBuilder[T])) *Set[T] {
	b := s.ToBuilder()
	update(b)
	return b.Build()
}
