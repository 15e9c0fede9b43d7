package frozen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustGetSet[K comparable, V comparable](t *testing.T, m *SetMultimap[K, V], key K) *Set[V] {
	t.Helper()
	found, ok := m.Get(key)
	require.True(t, ok)
	return found
}

func TestSetMultimapBuilderBuildIsIdentityStable(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"a": {1}})

	b := m.ToBuilder()
	require.Same(t, m, b.Build())
	require.Same(t, b.Build(), b.Build())

	require.NoError(t, b.Add("a", 2))
	rebuilt := b.Build()
	require.NotSame(t, m, rebuilt)
	require.Same(t, rebuilt, b.Build())
}

func TestSetMultimapBuilderAddDeduplicates(t *testing.T) {
	t.Parallel()

	b := NewSetMultimapBuilder[string, int]()
	require.NoError(t, b.Add("k", 1))
	require.NoError(t, b.Add("k", 1))
	require.NoError(t, b.AddValues("k", 2, 2, 1))

	built := b.Build()
	require.Equal(t, 2, built.CountOf("k"))
	require.True(t, mustGetSet(t, built, "k").Equal(MustNewSet(1, 2)))
}

func TestSetMultimapBuilderUntouchedKeysStayShared(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"touched": {1}, "left": {2}})

	b := m.ToBuilder()
	require.NoError(t, b.Add("touched", 10))
	rebuilt := b.Build()

	require.Same(t, mustGetSet(t, m, "left"), mustGetSet(t, rebuilt, "left"))
	require.NotSame(t, mustGetSet(t, m, "touched"), mustGetSet(t, rebuilt, "touched"))
	require.False(t, m.HasValue("touched", 10))
	require.True(t, rebuilt.HasValue("touched", 10))
}

func TestSetMultimapBuilderRemoveAllDropsKey(t *testing.T) {
	t.Parallel()

	b := NewSetMultimapBuilder[int, string]()
	require.NoError(t, b.Add(1, "a"))
	require.NoError(t, b.Add(1, "b"))
	require.NoError(t, b.Add(2, "c"))

	b.RemoveAll(1)

	built := b.Build()
	require.Equal(t, 1, built.Len())
	require.False(t, built.Has(1))
	require.True(t, built.HasValue(2, "c"))
}

func TestSetMultimapBuilderRemoveAllAbsentKeepsIdentity(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"a": {1}})
	b := m.ToBuilder()

	b.RemoveAll("missing")
	require.False(t, b.Remove("missing", 1))

	require.Same(t, m, b.Build())
}

func TestSetMultimapBuilderRemoveLastValueDropsKey(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"a": {1}, "b": {2}})
	b := m.ToBuilder()

	require.True(t, b.Remove("a", 1))
	require.False(t, b.Remove("a", 1))

	built := b.Build()
	require.False(t, built.Has("a"))
	require.True(t, built.Has("b"))
	require.True(t, m.Has("a"))
}

func TestSetMultimapBuilderAddAll(t *testing.T) {
	t.Parallel()

	other := MustNewSetMultimap(map[string][]int{"a": {2}, "b": {3}})

	b := NewSetMultimapBuilder[string, int]()
	require.NoError(t, b.Add("a", 1))
	require.NoError(t, b.AddAll(other))

	built := b.Build()
	require.True(t, mustGetSet(t, built, "a").Equal(MustNewSet(1, 2)))
	require.True(t, mustGetSet(t, built, "b").Equal(MustNewSet(3)))
}

func TestSetMultimapBuilderClearAndReplace(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"a": {1}})
	b := m.ToBuilder()

	b.Clear()
	require.True(t, b.Build().IsEmpty())
	require.Equal(t, 1, m.Len())

	require.NoError(t, b.Replace(map[string][]int{"x": {9, 9}, "empty": {}}))
	built := b.Build()
	require.Equal(t, 1, built.CountOf("x"))
	require.False(t, built.Has("empty"))

	b.ReplaceMultimap(m)
	require.Same(t, m, b.Build())
}

func TestSetMultimapBuilderValidates(t *testing.T) {
	t.Parallel()

	one := 1
	b := NewSetMultimapBuilder[string, *int]()

	require.Error(t, b.Add("k", nil))

	err := b.AddValues("k", &one, nil)
	require.Error(t, err)
	require.True(t, mustGetSet(t, b.Build(), "k").Has(&one))
}

func TestSetMultimapBuilderDoesNotDisturbOrigin(t *testing.T) {
	t.Parallel()

	m := MustNewSetMultimap(map[string][]int{"a": {1, 2}})
	b := m.ToBuilder()

	require.NoError(t, b.Add("a", 3))
	b.RemoveAll("a")
	require.NoError(t, b.Add("fresh", 9))

	require.True(t, m.HasValue("a", 1))
	require.Equal(t, 1, m.Len())

	built := b.Build()
	require.False(t, built.Has("a"))
	require.True(t, built.HasValue("fresh", 9))
}
