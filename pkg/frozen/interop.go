package frozen

import (
	"errors"
	"reflect"

	multimap "github.com/jwangsadinata/go-multimap"
	"github.com/jwangsadinata/go-multimap/setmultimap"
	"github.com/scylladb/go-set/strset"

	"github.com/authzed/frozen/internal/logging"
	"github.com/authzed/frozen/pkg/checked"
	"github.com/authzed/frozen/pkg/genutil"
)

// SetFromStrset copies a scylladb string set into an immutable set.
func SetFromStrset(src *strset.Set) *Set[string] {
	b := NewSetBuilderWithCap[string](genutil.MustEnsureUInt32(src.Size()))
	src.Each(func(item string) bool {
		_ = b.Add(item)
		return true
	})
	return b.Build()
}

// StrsetOf copies an immutable string set into a mutable scylladb set.
func StrsetOf(s *Set[string]) *strset.Set {
	out := strset.NewWithSize(s.Len())
	for item := range s.All() {
		out.Add(item)
	}
	return out
}

// SetMultimapFromEntries builds an immutable multimap from the entry view of
// a legacy interface-typed multimap, such as the one produced by
// (*setmultimap.MultiMap).Entries. Construction fails on the first entry
// whose key or value is nil or does not hold the expected concrete type.
func SetMultimapFromEntries[K comparable, V comparable](entries []multimap.Entry) (*SetMultimap[K, V], error) {
	b := NewSetMultimapBuilder[K, V]()
	for _, entry := range entries {
		key, err := assertEntrySlot[K]("key", entry.Key)
		if err != nil {
			logRejectedEntry(err)
			return nil, err
		}

		value, err := assertEntrySlot[V]("value", entry.Value)
		if err != nil {
			logRejectedEntry(err)
			return nil, err
		}

		if err := b.Add(key, value); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// ToLegacySetMultimap copies an immutable multimap into a mutable
// interface-typed setmultimap.
func ToLegacySetMultimap[K comparable, V comparable](m *SetMultimap[K, V]) *setmultimap.MultiMap {
	out := setmultimap.New()
	for key, values := range m.All() {
		for value := range values.All() {
			out.Put(key, value)
		}
	}
	return out
}

func assertEntrySlot[T any](role string, raw any) (T, error) {
	var zero T
	expected := reflect.TypeOf((*T)(nil)).Elem()
	if raw == nil {
		return zero, checked.NewNilElementErr(role, expected)
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, checked.NewWrongTypeErr(role, expected, raw)
	}
	return typed, nil
}

func logRejectedEntry(err error) {
	var invalid checked.ErrInvalidElement
	if errors.As(err, &invalid) {
		logging.Debug().Object("entry", invalid).Msg("legacy multimap entry failed validation")
	}
}
