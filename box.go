package slot

import (
	"fmt"
	"reflect"
)

// Box holds exactly one value of any type together with its dynamic type.
// It is the currency of the attribute bag and the method table.
//
// Retrieval is exact: a Box holding an int cannot be read as an int64 or as
// an interface the int happens to satisfy.
type Box struct {
	v   any
	typ reflect.Type // nil for an empty Box
}

// BoxOf wraps v. A nil v yields a Box of kind "nil".
func BoxOf(v any) Box {
	if b, ok := v.(Box); ok {
		return b
	}
	return Box{v: v, typ: reflect.TypeOf(v)}
}

// boxResult wraps a value of static type T. The dynamic type wins when
// there is one; a nil interface keeps T so the Box is not "nil".
func boxResult[T any](v T) Box {
	if any(v) != nil {
		return BoxOf(v)
	}
	return Box{typ: reflect.TypeFor[T]()}
}

// Kind returns the name of the held type, or "nil".
func (b Box) Kind() string {
	if b.typ == nil {
		return "nil"
	}
	return b.typ.String()
}

// Type returns the held dynamic type, nil for an empty Box.
func (b Box) Type() reflect.Type { return b.typ }

// Value returns the held value as an interface.
func (b Box) Value() any { return b.v }

// IsNil reports whether the Box holds nothing.
func (b Box) IsNil() bool { return b.typ == nil }

// String formats the held value with [ToText].
func (b Box) String() string { return ToText(b.v) }

// Is reports whether b holds exactly a T.
func Is[T any](b Box) bool {
	return b.typ == reflect.TypeFor[T]()
}

// As extracts the value of b as exactly T.
//
//	n, err := slot.As[int](slot.BoxOf(42))   // 42, nil
//	_, err = slot.As[int64](slot.BoxOf(42))  // ErrTypeMismatch
func As[T any](b Box) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if b.typ != want {
		return zero, &TypeError{Want: want.String(), Got: b.Kind()}
	}
	if b.v == nil {
		// typed nil of an interface type
		return zero, nil
	}
	v, ok := b.v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: box holds %T", ErrTypeMismatch, b.v)
	}
	return v, nil
}

// value returns b as a reflect.Value of the held type, suitable for
// reflect.Value.Call.
func (b Box) value() reflect.Value {
	if b.typ == nil {
		return reflect.Value{}
	}
	if b.v == nil {
		return reflect.Zero(b.typ)
	}
	rv := reflect.ValueOf(b.v)
	if rv.Type() != b.typ {
		// an interface-typed box: widen back to the declared interface
		nv := reflect.New(b.typ).Elem()
		nv.Set(rv)
		return nv
	}
	return rv
}
