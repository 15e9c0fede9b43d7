package frozen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBuilderBuildIsIdentityStable(t *testing.T) {
	t.Parallel()

	l := MustNewList("a", "b")

	// Building an unmutated builder returns the original instance.
	b := l.ToBuilder()
	require.Same(t, l, b.Build())

	// Repeated builds with no intervening mutation return the same instance.
	require.Same(t, b.Build(), b.Build())

	// Reads never count as mutations.
	require.Equal(t, 2, b.Len())
	require.False(t, b.IsEmpty())
	require.Equal(t, "a", b.Get(0))
	require.Same(t, l, b.Build())

	// A mutation produces a fresh instance on the next build.
	require.NoError(t, b.Add("c"))
	rebuilt := b.Build()
	require.NotSame(t, l, rebuilt)
	require.Same(t, rebuilt, b.Build())

	// Mutating again after a build detaches from the built result too.
	require.NoError(t, b.Add("d"))
	require.NotSame(t, rebuilt, b.Build())
	require.Equal(t, []string{"a", "b", "c"}, rebuilt.AsSlice())
}

func TestListBuilderDoesNotDisturbOrigin(t *testing.T) {
	t.Parallel()

	l := MustNewList(1, 2, 3)
	b := l.ToBuilder()

	require.NoError(t, b.Add(4))
	require.NoError(t, b.Set(0, 100))
	b.Reverse()

	require.Equal(t, []int{1, 2, 3}, l.AsSlice())
	require.Equal(t, []int{4, 3, 2, 100}, b.Build().AsSlice())
}

func TestListBuilderMutatesFreelyAfterBuild(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[int]()
	require.NoError(t, b.AddAll(1, 2, 3))

	built := b.Build()
	require.NoError(t, b.Add(4))

	// The built list must not observe the later mutation.
	require.Equal(t, []int{1, 2, 3}, built.AsSlice())
	require.Equal(t, []int{1, 2, 3, 4}, b.Build().AsSlice())
}

func TestListBuilderPositionalMutations(t *testing.T) {
	t.Parallel()

	b := NewListBuilderWithCap[string](4)
	require.NoError(t, b.AddAll("b", "d"))
	require.NoError(t, b.Insert(0, "a"))
	require.NoError(t, b.Insert(2, "c"))
	require.Equal(t, []string{"a", "b", "c", "d"}, b.Build().AsSlice())

	require.NoError(t, b.Set(3, "D"))
	require.NoError(t, b.Update(0, func(v string) string { return v + "!" }))
	require.Equal(t, []string{"a!", "b", "c", "D"}, b.Build().AsSlice())

	require.Equal(t, "b", b.RemoveAt(1))
	require.Equal(t, "D", b.RemoveLast())
	require.Equal(t, []string{"a!", "c"}, b.Build().AsSlice())
}

func TestListBuilderBoundsPanicUnderTest(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[int]()
	require.NoError(t, b.Add(1))

	assert.Panics(t, func() {
		_ = b.Insert(2, 9)
	}, "The code did not panic")
	assert.Panics(t, func() {
		_ = b.Set(-1, 9)
	}, "The code did not panic")
	assert.Panics(t, func() {
		_ = b.Update(1, func(v int) int { return v })
	}, "The code did not panic")
	assert.Panics(t, func() {
		b.RemoveAt(1)
	}, "The code did not panic")
	assert.Panics(t, func() {
		b.Take(-1)
	}, "The code did not panic")
	assert.Panics(t, func() {
		b.Skip(-1)
	}, "The code did not panic")
	assert.Panics(t, func() {
		b.Get(1)
	}, "The code did not panic")
}

func TestListBuilderPredicates(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[int]()
	require.NoError(t, b.AddAll(1, 2, 3, 4, 5, 6))

	b.RemoveWhere(func(v int) bool { return v%2 == 0 })
	require.Equal(t, []int{1, 3, 5}, b.Build().AsSlice())

	b.RetainWhere(func(v int) bool { return v > 1 })
	require.Equal(t, []int{3, 5}, b.Build().AsSlice())
}

func TestListBuilderRemoveByValue(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[string]()
	require.NoError(t, b.AddAll("a", "b", "a"))

	// Only the first occurrence is removed.
	require.True(t, ListBuilderRemove(b, "a"))
	require.Equal(t, []string{"b", "a"}, b.Build().AsSlice())

	require.False(t, ListBuilderRemove(b, "z"))
	require.Equal(t, []string{"b", "a"}, b.Build().AsSlice())
}

func TestListBuilderRemoveLeavesOriginIntact(t *testing.T) {
	t.Parallel()

	l := MustNewList(1, 2)
	b := l.ToBuilder()

	require.True(t, ListBuilderRemove(b, 2))
	require.Equal(t, []int{1}, b.Build().AsSlice())
	require.Equal(t, []int{1, 2}, l.AsSlice())
}

func TestListBuilderMapAndExpand(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[int]()
	require.NoError(t, b.AddAll(1, 2, 3))
	require.NoError(t, b.Map(func(v int) int { return v * 10 }))
	require.Equal(t, []int{10, 20, 30}, b.Build().AsSlice())

	require.NoError(t, b.Expand(func(v int) []int { return []int{v, v + 1} }))
	require.Equal(t, []int{10, 11, 20, 21, 30, 31}, b.Build().AsSlice())

	// Expanding to nothing empties the list.
	require.NoError(t, b.Expand(func(v int) []int { return nil }))
	require.True(t, b.IsEmpty())
}

func TestListBuilderTakeSkip(t *testing.T) {
	t.Parallel()

	l := MustNewList(1, 2, 3, 4, 5)

	// Taking at least the current length is a no-op that preserves identity.
	b := l.ToBuilder()
	b.Take(5)
	b.Take(100)
	require.Same(t, l, b.Build())

	// Skipping nothing preserves identity too.
	b.Skip(0)
	require.Same(t, l, b.Build())

	b.Take(3)
	require.Equal(t, []int{1, 2, 3}, b.Build().AsSlice())
	b.Skip(1)
	require.Equal(t, []int{2, 3}, b.Build().AsSlice())

	// Skipping past the end clears.
	b.Skip(10)
	require.True(t, b.IsEmpty())
	require.Equal(t, []int{1, 2, 3, 4, 5}, l.AsSlice())
}

func TestListBuilderTakeSkipWhile(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[int]()
	require.NoError(t, b.AddAll(1, 2, 3, 10, 1))
	b.TakeWhile(func(v int) bool { return v < 10 })
	require.Equal(t, []int{1, 2, 3}, b.Build().AsSlice())

	b.SkipWhile(func(v int) bool { return v < 3 })
	require.Equal(t, []int{3}, b.Build().AsSlice())

	// A predicate matching every element clears the list.
	b.SkipWhile(func(v int) bool { return true })
	require.True(t, b.IsEmpty())

	// TakeWhile with a universally true predicate keeps identity.
	l := MustNewList(7, 8)
	ab := l.ToBuilder()
	ab.TakeWhile(func(v int) bool { return true })
	require.Same(t, l, ab.Build())
}

func TestListBuilderSortReverse(t *testing.T) {
	t.Parallel()

	b := NewListBuilder[string]()
	require.NoError(t, b.AddAll("pear", "apple", "plum"))

	b.Sort(func(a, b string) bool { return a < b })
	require.Equal(t, []string{"apple", "pear", "plum"}, b.Build().AsSlice())

	b.Reverse()
	require.Equal(t, []string{"plum", "pear", "apple"}, b.Build().AsSlice())
}

func TestListBuilderClearAndReplace(t *testing.T) {
	t.Parallel()

	l := MustNewList(1, 2)
	b := l.ToBuilder()

	b.Clear()
	require.True(t, b.IsEmpty())
	require.Equal(t, 2, l.Len())

	require.NoError(t, b.Replace(0, 1, 2))
	require.Equal(t, []int{0, 1, 2}, b.Build().AsSlice())

	// Replacing with a built list attaches without copying.
	b.ReplaceList(l)
	require.Same(t, l, b.Build())
}

func TestListBuilderIncrementalAddAll(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	b := NewListBuilder[*int]()
	require.NoError(t, b.Add(&one))

	// Elements accepted before the failing element remain added.
	err := b.AddAll(&two, nil, &one)
	require.Error(t, err)
	require.Equal(t, 2, b.Len())
	require.Same(t, &two, b.Get(1))
}

func TestListBuilderIncrementalMap(t *testing.T) {
	t.Parallel()

	one, two, three := 1, 2, 3
	b := NewListBuilder[*int]()
	require.NoError(t, b.AddAll(&one, &two, &three))

	// The mapping fails on the second element: the first element stays
	// mapped and the untouched tail keeps its prior values.
	mappedOne := 10
	err := b.Map(func(v *int) *int {
		if v == &two {
			return nil
		}
		return &mappedOne
	})
	require.Error(t, err)
	require.Same(t, &mappedOne, b.Get(0))
	require.Same(t, &two, b.Get(1))
	require.Same(t, &three, b.Get(2))
}

func TestListBuilderIncrementalExpand(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	b := NewListBuilder[*int]()
	require.NoError(t, b.AddAll(&one, &two))

	// The expansion of the second element fails partway: everything
	// produced up to that point is kept.
	err := b.Expand(func(v *int) []*int {
		if v == &two {
			return []*int{&two, nil}
		}
		return []*int{v, v}
	})
	require.Error(t, err)
	require.Equal(t, 3, b.Len())
	require.Same(t, &one, b.Get(0))
	require.Same(t, &one, b.Get(1))
	require.Same(t, &two, b.Get(2))
}

func TestListBuilderReplaceKeepsPriorOnFailure(t *testing.T) {
	t.Parallel()

	one := 1
	b := NewListBuilder[*int]()
	require.NoError(t, b.Add(&one))

	err := b.Replace(&one, nil)
	require.Error(t, err)
	require.Equal(t, 1, b.Len())
	require.Same(t, &one, b.Get(0))
}
