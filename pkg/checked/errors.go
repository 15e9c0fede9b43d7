package checked

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// ErrUnspecifiedType is returned when a checker or a dynamically typed
// collection is constructed without a concrete element type. Pass AnyType
// explicitly to accept elements of any type.
var ErrUnspecifiedType = errors.New("element type is unspecified; pass checked.AnyType to accept elements of any type")

// ErrInvalidElement occurs when an element, key or value handed to a
// collection is nil or is not assignable to the collection's declared
// element type.
type ErrInvalidElement struct {
	error
	role     string
	expected reflect.Type
	value    any
}

// Role returns which slot the offending value was destined for: "element",
// "key" or "value".
func (err ErrInvalidElement) Role() string {
	return err.role
}

// ExpectedType returns the element type the collection was declared with.
func (err ErrInvalidElement) ExpectedType() reflect.Type {
	return err.expected
}

// Value returns the offending value. It is nil for nil rejections.
func (err ErrInvalidElement) Value() any {
	return err.value
}

func (err ErrInvalidElement) MarshalZerologObject(e *zerolog.Event) {
	ev := e.Err(err.error).Str("role", err.role).Str("expected", err.expected.String())
	if err.value != nil {
		ev.Str("actual", reflect.TypeOf(err.value).String())
	}
}

// NewNilElementErr constructs an error for a nil element, key or value.
func NewNilElementErr(role string, expected reflect.Type) error {
	return ErrInvalidElement{
		error:    fmt.Errorf("invalid %s: nil is not allowed in a collection of `%s`", role, expected),
		role:     role,
		expected: expected,
	}
}

// NewWrongTypeErr constructs an error for an element, key or value whose
// dynamic type is not assignable to the collection's declared element type.
func NewWrongTypeErr(role string, expected reflect.Type, value any) error {
	return ErrInvalidElement{
		error:    fmt.Errorf("invalid %s: `%v` of type `%s` is not assignable to `%s`", role, value, reflect.TypeOf(value), expected),
		role:     role,
		expected: expected,
		value:    value,
	}
}
