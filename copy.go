package slot

import (
	"fmt"
	"reflect"
)

var lockerType = reflect.TypeFor[interface {
	Lock()
	Unlock()
}]()

// copyable reports whether deepCopy can produce an independent copy of a t.
// Slices, maps, arrays, interfaces and exported struct fields are copied
// recursively. Pointers, channels and funcs would be shared, so they are
// refused, as is anything vet's copylocks would flag. Unexported fields
// cannot be reached through reflect and must be plain values. The
// back-reference type br is left out: a copy starts without a parent.
func copyable(t, br reflect.Type, seen map[reflect.Type]bool) bool {
	if t == br {
		return true
	}
	if reflect.PointerTo(t).Implements(lockerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Struct:
		if seen[t] {
			return true
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() {
				if !copyable(f.Type, br, seen) {
					return false
				}
			} else if !plain(f.Type, br) {
				return false
			}
		}
		return true
	case reflect.Array, reflect.Slice:
		return copyable(t.Elem(), br, seen)
	case reflect.Map:
		return plain(t.Key(), br) && copyable(t.Elem(), br, seen)
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return true
}

// plain reports whether a value copy of t shares no memory with the
// original.
func plain(t, br reflect.Type) bool {
	if t == br {
		return true
	}
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			if !plain(t.Field(i).Type, br) {
				return false
			}
		}
		return true
	case reflect.Array:
		return plain(t.Elem(), br)
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return true
}

// deepCopy returns a settable copy of v that shares no slice or map
// storage with it. Values of type br are zeroed. An interface holding a
// pointer, channel or func cannot be copied and gives ErrUnsupported.
func deepCopy(v reflect.Value, br reflect.Type) (reflect.Value, error) {
	t := v.Type()
	out := reflect.New(t).Elem()
	if t == br {
		return out, nil
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return out, nil
		}
		out.Set(reflect.MakeSlice(t, v.Len(), v.Len()))
		for i := range v.Len() {
			e, err := deepCopy(v.Index(i), br)
			if err != nil {
				return out, err
			}
			out.Index(i).Set(e)
		}
	case reflect.Array:
		for i := range v.Len() {
			e, err := deepCopy(v.Index(i), br)
			if err != nil {
				return out, err
			}
			out.Index(i).Set(e)
		}
	case reflect.Map:
		if v.IsNil() {
			return out, nil
		}
		out.Set(reflect.MakeMapWithSize(t, v.Len()))
		iter := v.MapRange()
		for iter.Next() {
			e, err := deepCopy(iter.Value(), br)
			if err != nil {
				return out, err
			}
			out.SetMapIndex(iter.Key(), e)
		}
	case reflect.Struct:
		// unexported fields are plain and come over with the value
		out.Set(v)
		for i := range t.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			f, err := deepCopy(v.Field(i), br)
			if err != nil {
				return out, err
			}
			out.Field(i).Set(f)
		}
	case reflect.Interface:
		if v.IsNil() {
			return out, nil
		}
		e, err := deepCopy(v.Elem(), br)
		if err != nil {
			return out, err
		}
		out.Set(e)
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return out, nil
		}
		return out, fmt.Errorf("%w: cannot copy a %s held by %s", ErrUnsupported, v.Kind(), t)
	default:
		out.Set(v)
	}
	return out, nil
}
