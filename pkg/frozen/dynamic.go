package frozen

import (
	"reflect"

	"github.com/authzed/frozen/pkg/checked"
)

// NewListOf returns an immutable list whose elements were validated at
// runtime against the given element type. The type must be specified:
// passing a nil type fails with checked.ErrUnspecifiedType, while passing
// checked.AnyType explicitly accepts elements of any type.
func NewListOf(rt reflect.Type, elems ...any) (*List[any], error) {
	checks, err := checked.OfType[any](rt)
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(elems))
	for _, elem := range elems {
		if err := checks.Check(elem); err != nil {
			return nil, err
		}
		items = append(items, elem)
	}
	return &List[any]{items: items, checks: checks}, nil
}

// NewListBuilderOf returns a list builder whose elements are validated at
// runtime against the given element type. The type must be specified:
// passing a nil type fails with checked.ErrUnspecifiedType, while passing
// checked.AnyType explicitly accepts elements of any type.
func NewListBuilderOf(rt reflect.Type) (*ListBuilder[any], error) {
	checks, err := checked.OfType[any](rt)
	if err != nil {
		return nil, err
	}
	return &ListBuilder[any]{checks: checks}, nil
}
