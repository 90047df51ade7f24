package slot

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

var errorType = reflect.TypeFor[error]()

// Method is a callable registered in a slot's method table. Its parameter
// types and count are fixed when it is defined; calls are checked against
// them exactly, with no numeric promotion.
type Method struct {
	name string
	in   []reflect.Type
	out  reflect.Type // nil for methods without a result
	errs bool         // the function also returns an error
	call func(args []Box) (Result, error)
}

// Name returns the name the method was defined under.
func (m *Method) Name() string { return m.name }

// Arity returns the declared number of arguments.
func (m *Method) Arity() int { return len(m.in) }

// Signature returns the method's signature in Go syntax.
func (m *Method) Signature() string {
	params := make([]string, len(m.in))
	for i, t := range m.in {
		params[i] = t.String()
	}
	sig := "func(" + strings.Join(params, ", ") + ")"
	switch {
	case m.out != nil && m.errs:
		sig += " (" + m.out.String() + ", error)"
	case m.out != nil:
		sig += " " + m.out.String()
	case m.errs:
		sig += " error"
	}
	return sig
}

func (m *Method) invoke(args []Box) (Result, error) {
	if len(args) != len(m.in) {
		return Result{}, &ArityError{Name: m.name, Want: len(m.in), Got: len(args)}
	}
	for i, want := range m.in {
		a := args[i]
		if a.typ == want {
			continue
		}
		if a.typ == nil && nillable(want) {
			args[i] = Box{typ: want}
			continue
		}
		return Result{}, fmt.Errorf("%s: %w", m.name, &TypeError{Arg: i + 1, Want: want.String(), Got: a.Kind()})
	}
	return m.call(args)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// Result is the outcome of a dynamic call. Methods without a result
// produce a Result with no value.
type Result struct {
	box Box
	ok  bool
}

// HasValue reports whether the call produced a value.
func (r Result) HasValue() bool { return r.ok }

// Box returns the produced value.
func (r Result) Box() Box { return r.box }

// String formats the produced value, or "" for a void result.
func (r Result) String() string {
	if !r.ok {
		return ""
	}
	return r.box.String()
}

// ResultAs extracts the value of r as exactly R.
func ResultAs[R any](r Result) (R, error) {
	if !r.ok {
		var zero R
		return zero, fmt.Errorf("%w: void result", ErrNoValue)
	}
	return As[R](r.box)
}

// Define registers fn under name. fn may be any non-variadic function
// returning nothing, a value, an error, or a value and an error. An error
// returned by fn is returned by the call.
//
//	s.Define("greet", func(name string) string { return "hello " + name })
func (s *Slot[P, T]) Define(name string, fn any) error {
	m, err := reflectMethod(name, fn)
	if err != nil {
		return err
	}
	s.define(m)
	return nil
}

func reflectMethod(name string, fn any) (*Method, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: define %q: expected function, got %T", ErrUnsupported, name, fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: define %q: variadic functions have no fixed arity", ErrUnsupported, name)
	}

	var out reflect.Type
	returnsErr := false
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			returnsErr = true
		} else {
			out = ft.Out(0)
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, fmt.Errorf("%w: define %q: second result must be error", ErrUnsupported, name)
		}
		out = ft.Out(0)
		returnsErr = true
	default:
		return nil, fmt.Errorf("%w: define %q: too many results", ErrUnsupported, name)
	}

	in := make([]reflect.Type, ft.NumIn())
	for i := range in {
		in[i] = ft.In(i)
	}

	m := &Method{name: name, in: in, out: out, errs: returnsErr}
	m.call = func(args []Box) (Result, error) {
		callArgs := make([]reflect.Value, len(args))
		for i, a := range args {
			callArgs[i] = a.value()
		}
		results := fv.Call(callArgs)
		if returnsErr {
			last := results[len(results)-1]
			if !last.IsNil() {
				return Result{}, last.Interface().(error)
			}
			results = results[:len(results)-1]
		}
		if len(results) == 0 {
			return Result{}, nil
		}
		return Result{box: boxReflect(results[0]), ok: true}, nil
	}
	return m, nil
}

// boxReflect boxes a call result, preferring its dynamic type.
func boxReflect(v reflect.Value) Box {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Box{typ: v.Type()}
		}
		return BoxOf(v.Interface())
	}
	return Box{v: v.Interface(), typ: v.Type()}
}

func (s *Slot[P, T]) define(m *Method) {
	if s.fns == nil {
		s.fns = make(map[string]*Method)
	}
	s.fns[m.name] = m
}

// Def0 registers a method taking no arguments.
func Def0[R, P, T any](s *Slot[P, T], name string, fn func() R) {
	s.define(&Method{
		name: name,
		out:  reflect.TypeFor[R](),
		call: func([]Box) (Result, error) {
			return Result{box: boxResult(fn()), ok: true}, nil
		},
	})
}

// Def1 registers a method taking one argument.
func Def1[R, A, P, T any](s *Slot[P, T], name string, fn func(A) R) {
	s.define(&Method{
		name: name,
		in:   []reflect.Type{reflect.TypeFor[A]()},
		out:  reflect.TypeFor[R](),
		call: func(args []Box) (Result, error) {
			a, err := As[A](args[0])
			if err != nil {
				return Result{}, err
			}
			return Result{box: boxResult(fn(a)), ok: true}, nil
		},
	})
}

// Def2 registers a method taking two arguments.
//
//	slot.Def2(s, "add", func(a, b int) int { return a + b })
//	sum, _ := slot.CallAs[int](s, "add", 10, 20) // 30
func Def2[R, A, B, P, T any](s *Slot[P, T], name string, fn func(A, B) R) {
	s.define(&Method{
		name: name,
		in:   []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		out:  reflect.TypeFor[R](),
		call: func(args []Box) (Result, error) {
			a, err := As[A](args[0])
			if err != nil {
				return Result{}, err
			}
			b, err := As[B](args[1])
			if err != nil {
				return Result{}, err
			}
			return Result{box: boxResult(fn(a, b)), ok: true}, nil
		},
	})
}

// Def3 registers a method taking three arguments.
func Def3[R, A, B, C, P, T any](s *Slot[P, T], name string, fn func(A, B, C) R) {
	s.define(&Method{
		name: name,
		in:   []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()},
		out:  reflect.TypeFor[R](),
		call: func(args []Box) (Result, error) {
			a, err := As[A](args[0])
			if err != nil {
				return Result{}, err
			}
			b, err := As[B](args[1])
			if err != nil {
				return Result{}, err
			}
			c, err := As[C](args[2])
			if err != nil {
				return Result{}, err
			}
			return Result{box: boxResult(fn(a, b, c)), ok: true}, nil
		},
	})
}

// Proc0 registers a method taking no arguments and returning nothing.
func Proc0[P, T any](s *Slot[P, T], name string, fn func()) {
	s.define(&Method{
		name: name,
		call: func([]Box) (Result, error) {
			fn()
			return Result{}, nil
		},
	})
}

// Proc1 registers a method taking one argument and returning nothing.
func Proc1[A, P, T any](s *Slot[P, T], name string, fn func(A)) {
	s.define(&Method{
		name: name,
		in:   []reflect.Type{reflect.TypeFor[A]()},
		call: func(args []Box) (Result, error) {
			a, err := As[A](args[0])
			if err != nil {
				return Result{}, err
			}
			fn(a)
			return Result{}, nil
		},
	})
}

// Proc2 registers a method taking two arguments and returning nothing.
func Proc2[A, B, P, T any](s *Slot[P, T], name string, fn func(A, B)) {
	s.define(&Method{
		name: name,
		in:   []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()},
		call: func(args []Box) (Result, error) {
			a, err := As[A](args[0])
			if err != nil {
				return Result{}, err
			}
			b, err := As[B](args[1])
			if err != nil {
				return Result{}, err
			}
			fn(a, b)
			return Result{}, nil
		},
	})
}

// Invoke calls the method registered under name with args. The slot must
// hold a value.
func (s *Slot[P, T]) Invoke(name string, args ...any) (Result, error) {
	if !s.Valid() {
		return Result{}, fmt.Errorf("%w: call %q", ErrNullAccess, name)
	}
	if s.fns == nil {
		return Result{}, fmt.Errorf("%w: method %q: no methods defined", ErrNotFound, name)
	}
	m, ok := s.fns[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: method %q: must be one of %s",
			ErrNotFound, name, strings.Join(s.Methods(), ", "))
	}
	boxed := make([]Box, len(args))
	for i, a := range args {
		boxed[i] = BoxOf(a)
	}
	return m.invoke(boxed)
}

// CallAs invokes a method and returns its result as exactly R.
func CallAs[R, P, T any](s *Slot[P, T], name string, args ...any) (R, error) {
	r, err := s.Invoke(name, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	v, err := ResultAs[R](r)
	if err != nil {
		return v, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// Method returns the method registered under name.
func (s *Slot[P, T]) Method(name string) (*Method, bool) {
	if s == nil || s.fns == nil {
		return nil, false
	}
	m, ok := s.fns[name]
	return m, ok
}

// Methods returns the registered method names in sorted order.
func (s *Slot[P, T]) Methods() []string {
	if s == nil || s.fns == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.fns))
}
