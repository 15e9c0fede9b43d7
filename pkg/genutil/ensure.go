package genutil

import (
	"github.com/ccoveille/go-safecast/v2"

	"github.com/authzed/frozen/pkg/frozenerrors"
)

// MustEnsureUInt32 is a helper function that calls EnsureUInt32 and panics on error.
func MustEnsureUInt32(value int) uint32 {
	ret, err := EnsureUInt32(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// EnsureUInt32 ensures that the specified value can be represented as a uint32.
func EnsureUInt32(value int) (uint32, error) {
	ret, err := safecast.Convert[uint32](value)
	if err != nil {
		return 0, frozenerrors.MustBugf("specified value does not fit in a uint32")
	}
	return ret, nil
}

// MustEnsureUInt64 is a helper function that calls EnsureUInt64 and panics on error.
func MustEnsureUInt64(value int) uint64 {
	ret, err := EnsureUInt64(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// EnsureUInt64 ensures that the specified value can be represented as a uint64.
func EnsureUInt64(value int) (uint64, error) {
	ret, err := safecast.Convert[uint64](value)
	if err != nil {
		return 0, frozenerrors.MustBugf("specified value does not fit in a uint64")
	}
	return ret, nil
}
