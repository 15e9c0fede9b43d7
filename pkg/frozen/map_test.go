package frozen

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzed/frozen/pkg/testutil"
)

func TestMapReads(t *testing.T) {
	t.Parallel()

	m := MustNewMap(map[string]int{"one": 1, "two": 2})
	require.Equal(t, 2, m.Len())
	require.False(t, m.IsEmpty())

	found, ok := m.Get("one")
	require.True(t, ok)
	require.Equal(t, 1, found)

	found, ok = m.Get("three")
	require.False(t, ok)
	require.Zero(t, found)

	require.True(t, m.Has("two"))
	require.False(t, m.Has("three"))

	keys := m.Keys()
	sort.Strings(keys)
	require.Equal(t, []string{"one", "two"}, keys)

	values := m.Values()
	sort.Ints(values)
	require.Equal(t, []int{1, 2}, values)

	count := 0
	for key, value := range m.All() {
		require.True(t, m.Has(key))
		require.Positive(t, value)
		count++
	}
	require.Equal(t, 2, count)
}

func TestEmptyMap(t *testing.T) {
	t.Parallel()

	m := MustNewMap(map[string]int{})
	require.Equal(t, 0, m.Len())
	require.True(t, m.IsEmpty())
	require.Nil(t, m.AsMap())

	also := MustNewMap[string, int](nil)
	require.True(t, also.IsEmpty())
}

func TestNewMapValidates(t *testing.T) {
	t.Parallel()

	v := 1
	m, err := NewMap(map[string]*int{"ok": &v, "bad": nil})
	require.Error(t, err)
	require.Nil(t, m)

	assert.Panics(t, func() {
		MustNewMap(map[string]*int{"bad": nil})
	}, "The code did not panic")
}

func TestMapConstructionCopiesInput(t *testing.T) {
	t.Parallel()

	src := map[string]int{"a": 1}
	m := MustNewMap(src)

	src["a"] = 100
	src["b"] = 2

	found, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, found)
	require.False(t, m.Has("b"))

	out := m.AsMap()
	out["c"] = 3
	require.False(t, m.Has("c"))
}

func TestMapRebuild(t *testing.T) {
	t.Parallel()

	m := MustNewMap(map[string]int{"a": 1})

	grown := m.Rebuild(func(b *MapBuilder[string, int]) {
		require.NoError(t, b.Set("b", 2))
	})
	require.True(t, grown.Has("b"))
	require.False(t, m.Has("b"))

	same := m.Rebuild(func(b *MapBuilder[string, int]) {
		require.True(t, b.Has("a"))
	})
	require.Same(t, m, same)

	testutil.RequireEqualEmptyNil(t, map[string]int{"a": 1, "b": 2}, grown.AsMap())
}
