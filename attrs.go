package slot

import (
	"fmt"
	"maps"
	"slices"
)

// Set stores v under name in the slot's attribute bag, replacing whatever
// was stored there before, whatever its type. The slot must hold a value.
//
//	s.Set("hp", 100)
//	s.Set("name", "slime")
func (s *Slot[P, T]) Set(name string, v any) error {
	if !s.Valid() {
		return fmt.Errorf("%w: set %q", ErrNullAccess, name)
	}
	if s.fields == nil {
		s.fields = make(map[string]Box)
	}
	s.fields[name] = BoxOf(v)
	return nil
}

// Has reports whether the attribute exists. It is false for an empty slot
// or a slot that never had an attribute set.
func (s *Slot[P, T]) Has(name string) bool {
	if !s.Valid() || s.fields == nil {
		return false
	}
	_, ok := s.fields[name]
	return ok
}

// Lookup returns the boxed attribute.
func (s *Slot[P, T]) Lookup(name string) (Box, error) {
	if !s.Valid() {
		return Box{}, fmt.Errorf("%w: get %q", ErrNullAccess, name)
	}
	if s.fields == nil {
		return Box{}, fmt.Errorf("%w: attribute %q: no attributes set", ErrNotFound, name)
	}
	b, ok := s.fields[name]
	if !ok {
		return Box{}, fmt.Errorf("%w: attribute %q", ErrNotFound, name)
	}
	return b, nil
}

// DeleteAttr removes an attribute and reports whether it was present.
func (s *Slot[P, T]) DeleteAttr(name string) bool {
	if !s.Has(name) {
		return false
	}
	delete(s.fields, name)
	return true
}

// AttrNames returns the attribute names in sorted order.
func (s *Slot[P, T]) AttrNames() []string {
	if s == nil || s.fields == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.fields))
}

// Get returns attribute name of s as exactly a T.
//
//	hp, err := slot.Get[int](s, "hp")
func Get[V, P, T any](s *Slot[P, T], name string) (V, error) {
	var zero V
	b, err := s.Lookup(name)
	if err != nil {
		return zero, err
	}
	v, err := As[V](b)
	if err != nil {
		return zero, fmt.Errorf("attribute %q: %w", name, err)
	}
	return v, nil
}

// Field is a handle on one named attribute of a slot. It is also the
// handle through which a method of the same name can be called.
type Field[P, T any] struct {
	owner *Slot[P, T]
	name  string
}

// Attr returns the handle for name. It fails on an empty slot.
func (s *Slot[P, T]) Attr(name string) (Field[P, T], error) {
	if !s.Valid() {
		return Field[P, T]{}, fmt.Errorf("%w: attribute %q", ErrNullAccess, name)
	}
	return Field[P, T]{owner: s, name: name}, nil
}

// Name returns the attribute name.
func (f Field[P, T]) Name() string { return f.name }

// Set stores v under the field's name.
func (f Field[P, T]) Set(v any) error {
	if f.owner == nil {
		return fmt.Errorf("%w: field %q has no owner", ErrNullAccess, f.name)
	}
	return f.owner.Set(f.name, v)
}

// Exists reports whether the attribute is set. It never fails.
func (f Field[P, T]) Exists() bool {
	return f.owner != nil && f.owner.Has(f.name)
}

// Box returns the stored value.
func (f Field[P, T]) Box() (Box, error) {
	if f.owner == nil {
		return Box{}, fmt.Errorf("%w: field %q has no owner", ErrNullAccess, f.name)
	}
	return f.owner.Lookup(f.name)
}

// Call invokes the method registered under the field's name.
func (f Field[P, T]) Call(args ...any) (Result, error) {
	if f.owner == nil {
		return Result{}, fmt.Errorf("%w: field %q has no owner", ErrNullAccess, f.name)
	}
	return f.owner.Invoke(f.name, args...)
}

// FieldAs returns the field's value as exactly a V.
func FieldAs[V, P, T any](f Field[P, T]) (V, error) {
	if f.owner == nil {
		var zero V
		return zero, fmt.Errorf("%w: field %q has no owner", ErrNullAccess, f.name)
	}
	return Get[V](f.owner, f.name)
}
