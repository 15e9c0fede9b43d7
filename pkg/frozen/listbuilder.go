package frozen

import (
	"slices"
	"sort"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
	"github.com/authzed/frozen/pkg/frozenerrors"
)

// ListBuilder is a mutable builder of immutable lists.
//
// A builder attached to a built list (via ToBuilder or a prior Build) shares
// the list's backing store; the store is cloned once, on the first mutation
// after attachment. A builder is single-goroutine only.
type ListBuilder[T any] struct {
	items  []T
	owner  *List[T]
	checks checked.Values[T]
}

// NewListBuilder returns a new, empty list builder.
func NewListBuilder[T any]() *ListBuilder[T] {
	return &ListBuilder[T]{}
}

// NewListBuilderWithCap returns a new, empty list builder with the provided
// capacity for the backing store.
func NewListBuilderWithCap[T any](capacity uint32) *ListBuilder[T] {
	return &ListBuilder[T]{items: make([]T, 0, capacity)}
}

func (b *ListBuilder[T]) ensureDetached() {
	if b.owner == nil {
		return
	}

	items := make([]T, len(b.items))
	copy(items, b.items)
	b.items = items
	b.owner = nil

	logging.Trace().Str("collection", "list").Int("len", len(b.items)).Msg("cloned shared backing store before first write")
}

// Add appends the given element.
func (b *ListBuilder[T]) Add(value T) error {
	if err := b.checks.Check(value); err != nil {
		return err
	}

	b.ensureDetached()
	b.items = append(b.items, value)
	return nil
}

// AddAll appends all the given elements. Validation is incremental:
// elements accepted before a failing element remain added.
func (b *ListBuilder[T]) AddAll(values ...T) error {
	b.ensureDetached()
	for _, value := range values {
		if err := b.checks.Check(value); err != nil {
			return err
		}
		b.items = append(b.items, value)
	}
	return nil
}

// Insert inserts the given element at the given index, shifting later
// elements right.
func (b *ListBuilder[T]) Insert(index int, value T) error {
	if index < 0 || index > len(b.items) {
		return frozenerrors.MustBugf("index %d out of range for insert into list of length %d", index, len(b.items))
	}
	if err := b.checks.Check(value); err != nil {
		return err
	}

	b.ensureDetached()
	b.items = slices.Insert(b.items, index, value)
	return nil
}

// Set replaces the element at the given index.
func (b *ListBuilder[T]) Set(index int, value T) error {
	if index < 0 || index >= len(b.items) {
		return frozenerrors.MustBugf("index %d out of range for list of length %d", index, len(b.items))
	}
	if err := b.checks.Check(value); err != nil {
		return err
	}

	b.ensureDetached()
	b.items[index] = value
	return nil
}

// Update replaces the element at the given index with the result of the
// given function applied to it.
func (b *ListBuilder[T]) Update(index int, update func(T) T) error {
	if index < 0 || index >= len(b.items) {
		return frozenerrors.MustBugf("index %d out of range for list of length %d", index, len(b.items))
	}
	return b.Set(index, update(b.items[index]))
}

// RemoveAt removes and returns the element at the given index. The index
// must be within bounds.
func (b *ListBuilder[T]) RemoveAt(index int) T {
	if index < 0 || index >= len(b.items) {
		frozenerrors.MustPanic("index %d out of range for list of length %d", index, len(b.items))
	}

	b.ensureDetached()
	removed := b.items[index]
	b.items = slices.Delete(b.items, index, index+1)
	return removed
}

// RemoveLast removes and returns the last element. The builder must not be
// empty.
func (b *ListBuilder[T]) RemoveLast() T {
	return b.RemoveAt(len(b.items) - 1)
}

// RemoveWhere removes all elements matching the given predicate.
func (b *ListBuilder[T]) RemoveWhere(pred func(T) bool) {
	b.ensureDetached()
	b.items = slices.DeleteFunc(b.items, pred)
}

// RetainWhere removes all elements not matching the given predicate.
func (b *ListBuilder[T]) RetainWhere(pred func(T) bool) {
	b.ensureDetached()
	b.items = slices.DeleteFunc(b.items, func(v T) bool { return !pred(v) })
}

// Map replaces each element with the result of the given function applied
// to it. Validation is incremental: if a produced element is rejected,
// elements transformed before it remain replaced.
func (b *ListBuilder[T]) Map(f func(T) T) error {
	b.ensureDetached()
	for i, item := range b.items {
		mapped := f(item)
		if err := b.checks.Check(mapped); err != nil {
			return err
		}
		b.items[i] = mapped
	}
	return nil
}

// Expand replaces each element with the elements produced by the given
// function, in order. Validation is incremental: if a produced element is
// rejected, the expansion performed so far is kept.
func (b *ListBuilder[T]) Expand(f func(T) []T) error {
	b.ensureDetached()
	expanded := make([]T, 0, len(b.items))
	for _, item := range b.items {
		for _, produced := range f(item) {
			if err := b.checks.Check(produced); err != nil {
				b.items = expanded
				return err
			}
			expanded = append(expanded, produced)
		}
	}
	b.items = expanded
	return nil
}

// Take truncates the list to its first n elements. A count beyond the
// current length is a no-op.
func (b *ListBuilder[T]) Take(n int) {
	if n < 0 {
		frozenerrors.MustPanic("cannot take a negative number of elements (%d)", n)
	}
	if n >= len(b.items) {
		return
	}
	if n == 0 {
		b.Clear()
		return
	}

	b.ensureDetached()
	b.items = slices.Delete(b.items, n, len(b.items))
}

// Skip drops the first n elements of the list. A count beyond the current
// length clears the list.
func (b *ListBuilder[T]) Skip(n int) {
	if n < 0 {
		frozenerrors.MustPanic("cannot skip a negative number of elements (%d)", n)
	}
	if n == 0 || len(b.items) == 0 {
		return
	}
	if n >= len(b.items) {
		b.Clear()
		return
	}

	b.ensureDetached()
	b.items = slices.Delete(b.items, 0, n)
}

// TakeWhile truncates the list at the first element not matching the given
// predicate.
func (b *ListBuilder[T]) TakeWhile(pred func(T) bool) {
	for i, item := range b.items {
		if !pred(item) {
			b.Take(i)
			return
		}
	}
}

// SkipWhile drops leading elements while they match the given predicate.
func (b *ListBuilder[T]) SkipWhile(pred func(T) bool) {
	if len(b.items) == 0 {
		return
	}

	for i, item := range b.items {
		if !pred(item) {
			b.Skip(i)
			return
		}
	}
	b.Clear()
}

// Sort sorts the list in place using the given less function.
func (b *ListBuilder[T]) Sort(less func(a, b T) bool) {
	b.ensureDetached()
	sort.Slice(b.items, func(i, j int) bool {
		return less(b.items[i], b.items[j])
	})
}

// Reverse reverses the order of the list in place.
func (b *ListBuilder[T]) Reverse() {
	b.ensureDetached()
	slices.Reverse(b.items)
}

// Clear removes all elements. No copy of the prior contents is made.
func (b *ListBuilder[T]) Clear() {
	b.items = nil
	b.owner = nil
}

// Replace discards the builder's contents and replaces them with the given
// elements. If validation fails partway, the prior contents are kept.
func (b *ListBuilder[T]) Replace(elems ...T) error {
	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		if err := b.checks.Check(elem); err != nil {
			return err
		}
		items = append(items, elem)
	}

	b.items = items
	b.owner = nil
	return nil
}

// ReplaceList discards the builder's contents and attaches the builder to
// the given list, sharing the list's backing store without copying.
func (b *ListBuilder[T]) ReplaceList(list *List[T]) {
	b.items = list.items
	b.owner = list
	b.checks = list.checks
}

// Build returns an immutable list holding the builder's current contents.
//
// Build is identity-stable: repeated calls with no intervening mutation
// return the same instance, and building an unmutated builder derived from
// a list returns that original list.
func (b *ListBuilder[T]) Build() *List[T] {
	if b.owner != nil {
		return b.owner
	}

	built := &List[T]{items: b.items, checks: b.checks}
	b.owner = built
	return built
}

// Len returns the number of elements currently in the builder.
func (b *ListBuilder[T]) Len() int { return len(b.items) }

// IsEmpty returns true if the builder is currently empty.
func (b *ListBuilder[T]) IsEmpty() bool { return len(b.items) == 0 }

// Get returns the element at the given index. Reading never detaches the
// builder.
func (b *ListBuilder[T]) Get(index int) T {
	if index < 0 || index >= len(b.items) {
		frozenerrors.MustPanic("index %d out of range for list of length %d", index, len(b.items))
	}
	return b.items[index]
}

// ListBuilderRemove removes the first occurrence of the given value,
// returning whether it was found.
func ListBuilderRemove[T comparable](b *ListBuilder[T], value T) bool {
	for i, v := range b.items {
		if v == value {
			b.RemoveAt(i)
			return true
		}
	}
	return false
}
