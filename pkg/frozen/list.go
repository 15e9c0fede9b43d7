package frozen

import (
	"fmt"
	"iter"

	"github.com/authzed/frozen/pkg/checked"
	"github.com/authzed/frozen/pkg/frozenerrors"
)

// List is an immutable ordered collection of elements.
//
// A List is never mutated after construction and is safe for unsynchronized
// concurrent reads.
type List[T any] struct {
	items  []T
	checks checked.Values[T]
}

// NewList returns a new immutable list holding the given elements.
func NewList[T any](elems ...T) (*List[T], error) {
	var checks checked.Values[T]
	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		if err := checks.Check(elem); err != nil {
			return nil, err
		}
		items = append(items, elem)
	}
	return &List[T]{items: items, checks: checks}, nil
}

// MustNewList is a helper function that calls NewList and panics on error.
func MustNewList[T any](elems ...T) *List[T] {
	l, err := NewList(elems...)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return len(l.items) }

// IsEmpty returns true if the list is currently empty.
func (l *List[T]) IsEmpty() bool { return len(l.items) == 0 }

// Get returns the element at the given index. The index must be within
// bounds.
func (l *List[T]) Get(index int) T {
	if index < 0 || index >= len(l.items) {
		frozenerrors.MustPanic("index %d out of range for list of length %d", index, len(l.items))
	}
	return l.items[index]
}

// First returns the first element of the list. The list must not be empty.
func (l *List[T]) First() T { return l.Get(0) }

// Last returns the last element of the list. The list must not be empty.
func (l *List[T]) Last() T { return l.Get(len(l.items) - 1) }

// All returns an iterator over the elements of the list, in order.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range l.items {
			if !yield(item) {
				return
			}
		}
	}
}

// AsSlice returns the contents of the list as a slice of elements. Returns
// nil for an empty list.
func (l *List[T]) AsSlice() []T {
	if len(l.items) == 0 {
		return nil
	}

	slice := make([]T, len(l.items))
	copy(slice, l.items)
	return slice
}

func (l *List[T]) String() string {
	return fmt.Sprintf("%v", l.items)
}

// ToBuilder returns a new builder attached to this list: the builder shares
// this list's backing store and only clones it if and when a mutation
// occurs.
func (l *List[T]) ToBuilder() *ListBuilder[T] {
	return &ListBuilder[T]{items: l.items, owner: l, checks: l.checks}
}

// Rebuild applies the given updates to a builder derived from this list and
// returns the result. Returns this same list if no update mutated the
// builder.
func (l *List[T]) Rebuild(update func(*ListBuilder[T])) *List[T] {
	b := l.ToBuilder()
	update(b)
	return b.Build()
}

// ListIndexOf returns the index of the first occurrence of the given value
// in the list, or -1 if the value is not present.
func ListIndexOf[T comparable](l *List[T], value T) int {
	for i, v := range l.items {
		if v == value {
			return i
		}
	}
	return -1
}

// ListContains returns true if the list contains the given value.
func ListContains[T comparable](l *List[T], value T) bool {
	return ListIndexOf(l, value) >= 0
}
