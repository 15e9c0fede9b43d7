// Package checked validates elements, keys and values at the mutation entry
// points of a collection: nil-equivalents are rejected, and collections whose
// element type is an interface can be restricted at runtime to a narrower
// concrete type for guarding heterogeneous input at a boundary.
package checked

import (
	"fmt"
	"reflect"
)

// AnyType is the reflect.Type of the empty interface. A dynamically typed
// collection must name it explicitly to accept elements of any type.
var AnyType = reflect.TypeOf((*any)(nil)).Elem()

const (
	roleElement = "element"
	roleKey     = "key"
	roleValue   = "value"
)

// Values checks individual values against a collection's declared element
// type. The zero value is ready to use: the static type parameter alone then
// carries the type guarantee and only nil-equivalents are rejected.
type Values[T any] struct {
	rt reflect.Type
}

// OfType returns a checker restricted to the given runtime type. A nil type
// fails with ErrUnspecifiedType. When T is an interface type, rt must be
// assignable to it; when T is concrete, only T itself is accepted.
func OfType[T any](rt reflect.Type) (Values[T], error) {
	if rt == nil {
		return Values[T]{}, ErrUnspecifiedType
	}

	base := reflect.TypeFor[T]()
	if rt == base {
		return Values[T]{}, nil
	}

	if base.Kind() != reflect.Interface || !rt.AssignableTo(base) {
		return Values[T]{}, fmt.Errorf("declared element type `%s` cannot be restricted to `%s`", base, rt)
	}

	return Values[T]{rt: rt}, nil
}

// Type returns the runtime type this checker enforces.
func (c Values[T]) Type() reflect.Type {
	if c.rt != nil {
		return c.rt
	}
	return reflect.TypeFor[T]()
}

// Check validates a single element.
func (c Values[T]) Check(value T) error {
	return c.check(value, roleElement)
}

// CheckKey validates a single map or multimap key.
func (c Values[T]) CheckKey(value T) error {
	return c.check(value, roleKey)
}

// CheckValue validates a single map or multimap value.
func (c Values[T]) CheckValue(value T) error {
	return c.check(value, roleValue)
}

func (c Values[T]) check(value T, role string) error {
	if c.rt == nil {
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		default:
			return nil
		}
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return NewNilElementErr(role, c.Type())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		if rv.IsNil() {
			return NewNilElementErr(role, c.Type())
		}
	}

	if c.rt != nil && !rv.Type().AssignableTo(c.rt) {
		return NewWrongTypeErr(role, c.rt, value)
	}

	return nil
}
