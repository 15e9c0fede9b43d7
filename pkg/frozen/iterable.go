package frozen

import (
	"errors"
	"iter"
)

// ErrConflictingExtractors is returned when both a single-value and a
// multi-value extractor are supplied to an AddIterable call.
var ErrConflictingExtractors = errors.New("exactly one of a value extractor or a values extractor may be supplied")

// ErrMissingExtractor is returned when an AddIterable call supplies neither
// a single-value nor a multi-value extractor.
var ErrMissingExtractor = errors.New("one of a value extractor or a values extractor must be supplied")

// AddIterableToListMultimap inserts entries into the builder derived from
// the elements of the given sequence: keyOf derives each element's key, and
// exactly one of valueOf (one value per element) or valuesOf (multiple
// values per element) derives its values. Supplying both extractors, or
// neither, fails before any mutation. Validation of the derived entries is
// incremental.
func AddIterableToListMultimap[K comparable, V any, E any](
	b *ListMultimapBuilder[K, V],
	seq iter.Seq[E],
	keyOf func(E) K,
	valueOf func(E) V,
	valuesOf func(E) []V,
) error {
	if valueOf != nil && valuesOf != nil {
		return ErrConflictingExtractors
	}
	if valueOf == nil && valuesOf == nil {
		return ErrMissingExtractor
	}

	for elem := range seq {
		key := keyOf(elem)
		if valueOf != nil {
			if err := b.Add(key, valueOf(elem)); err != nil {
				return err
			}
			continue
		}

		if err := b.AddValues(key, valuesOf(elem)...); err != nil {
			return err
		}
	}
	return nil
}

// AddIterableToSetMultimap inserts entries into the builder derived from
// the elements of the given sequence: keyOf derives each element's key, and
// exactly one of valueOf (one value per element) or valuesOf (multiple
// values per element) derives its values. Supplying both extractors, or
// neither, fails before any mutation. Validation of the derived entries is
// incremental.
func AddIterableToSetMultimap[K comparable, V comparable, E any](
	b *SetMultimapBuilder[K, V],
	seq iter.Seq[E],
	keyOf func(E) K,
	valueOf func(E) V,
	valuesOf func(E) []V,
) error {
	if valueOf != nil && valuesOf != nil {
		return ErrConflictingExtractors
	}
	if valueOf == nil && valuesOf == nil {
		return ErrMissingExtractor
	}

	for elem := range seq {
		key := keyOf(elem)
		if valueOf != nil {
			if err := b.Add(key, valueOf(elem)); err != nil {
				return err
			}
			continue
		}

		if err := b.AddValues(key, valuesOf(elem)...); err != nil {
			return err
		}
	}
	return nil
}
