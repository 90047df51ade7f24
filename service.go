package slot

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// NullString is what an empty slot stringifies to.
const NullString = "<null>"

// String returns the text of the held value. It uses the value's own
// String method, then its fmt.Formatter, and otherwise names the type and
// address. An empty slot gives [NullString].
func (s *Slot[P, T]) String() string {
	if !s.Valid() {
		return NullString
	}
	switch v := any(s.ptr).(type) {
	case fmt.Stringer:
		return v.String()
	case fmt.Formatter:
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("<%s @%p>", typeName[T](), s.ptr)
}

// FullString describes the slot with the held type, the value's text and,
// for back-traceable values, where the back-reference points:
//
//	[tree.Node value=Node(2) parent@0xc000010000]
func (s *Slot[P, T]) FullString() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(typeName[T]())
	b.WriteString(" value=")
	b.WriteString(s.String())
	if Capabilities[P, T]().Backtraceable {
		var parent *P
		if s.Valid() {
			parent = any(s.ptr).(Backtraceable[P]).Parent()
		}
		if parent != nil {
			fmt.Fprintf(&b, " parent@%p", parent)
		} else {
			b.WriteString(" parent=null")
		}
	}
	b.WriteString("]")
	return b.String()
}

// Equal compares the values held by two slots. Two empty slots are equal;
// an empty and a full slot are not. The value's own Equal method is used
// when it has one, then structural equality, then identity.
func (s *Slot[P, T]) Equal(other *Slot[P, T]) bool {
	a, b := s.Get(), other.Get()
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if eq, ok := any(a).(Equaler[T]); ok {
		return eq.Equal(b)
	}
	if eq, ok := structuralEqual[P](a, b); ok {
		return eq
	}
	return false
}

// FullEqual compares two slots of the same type. It is Equal.
func (s *Slot[P, T]) FullEqual(other *Slot[P, T]) bool {
	return s.Equal(other)
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// structuralEqual compares *a and *b field by field. Comparable values use
// ==; other structs, arrays, slices and maps go through go-cmp. The
// back-reference is not part of the value and is never compared, so values
// holding one always take the go-cmp path. Other kinds report ok=false.
func structuralEqual[P, T any](a, b *T) (eq, ok bool) {
	va := reflect.ValueOf(a).Elem()
	vb := reflect.ValueOf(b).Elem()
	br := reflect.TypeFor[Backref[P]]()
	if va.Comparable() && vb.Comparable() && !holds(va.Type(), br, nil) {
		return va.Equal(vb), true
	}
	switch va.Kind() {
	case reflect.Struct, reflect.Array, reflect.Slice, reflect.Map:
		return cmp.Equal(a, b, exportAll, cmpopts.IgnoreTypes(Backref[P]{})), true
	}
	return false, false
}

// holds reports whether a value of type t contains a value of type target
// without going through a pointer.
func holds(t, target reflect.Type, seen map[reflect.Type]bool) bool {
	if t == target {
		return true
	}
	switch t.Kind() {
	case reflect.Array:
		return holds(t.Elem(), target, seen)
	case reflect.Struct:
		if seen[t] {
			return false
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		for i := range t.NumField() {
			if holds(t.Field(i).Type, target, seen) {
				return true
			}
		}
	}
	return false
}

// Len returns the size of the held value: its Size method, then Len or
// Length, then the built-in len for strings, slices, maps, arrays and
// channels. An empty slot has length 0.
func (s *Slot[P, T]) Len() (int, error) {
	if !s.Valid() {
		return 0, nil
	}
	switch v := any(s.ptr).(type) {
	case Sizer:
		return v.Size(), nil
	case Lenner:
		return v.Len(), nil
	case Lengther:
		return v.Length(), nil
	}
	rv := reflect.ValueOf(s.ptr).Elem()
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("%w: %s has no Size, Len or Length", ErrUnsupported, typeName[T]())
}

// FullCopy returns a new slot, bound to the same parent, holding an
// independent copy of the value. The copy comes from the value's Clone
// method or, for types that may be copied, a deep copy of slices, maps and
// exported fields that leaves the back-reference unset until the new slot
// adopts it. Attributes and methods stay with s.
//
// Copying an empty slot gives an empty slot with the same parent.
func (s *Slot[P, T]) FullCopy() (*Slot[P, T], error) {
	if !s.Valid() {
		return New[P, T](s.Parent()), nil
	}
	var cp *T
	switch c, ok := any(s.ptr).(Cloner[T]); {
	case ok:
		cp = c.Clone()
	case Capabilities[P, T]().Copyable:
		v, err := deepCopy(reflect.ValueOf(s.ptr).Elem(), reflect.TypeFor[Backref[P]]())
		if err != nil {
			return nil, err
		}
		cp = new(T)
		reflect.ValueOf(cp).Elem().Set(v)
	default:
		return nil, fmt.Errorf("%w: %s is neither clonable nor copyable", ErrUnsupported, typeName[T]())
	}
	d := New[P, T](s.parent)
	d.deleter = s.deleter
	d.Adopt(cp)
	return d, nil
}

// Copy is FullCopy.
func (s *Slot[P, T]) Copy() (*Slot[P, T], error) {
	return s.FullCopy()
}
