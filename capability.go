package slot

import (
	"fmt"
	"reflect"
	"sync"
)

// Capability interfaces. The service methods of [Slot] look for these on
// the held *T and fall back to generic behavior when they are missing.

// Equaler compares a value with another of the same type.
type Equaler[T any] interface {
	Equal(other *T) bool
}

// Hasher provides its own hash.
type Hasher interface {
	Hash() uint64
}

// Sizer reports a size. Preferred over [Lenner] by [Slot.Len].
type Sizer interface {
	Size() int
}

// Lenner reports a length.
type Lenner interface {
	Len() int
}

// Lengther reports a length under the longer name.
type Lengther interface {
	Length() int
}

// Cloner produces an independent deep copy.
type Cloner[T any] interface {
	Clone() *T
}

// Destroyer releases resources when a slot destroys the value.
type Destroyer interface {
	Destroy()
}

// Caps lists the capabilities a held type provides.
type Caps struct {
	Type          string
	Stringer      bool
	Formatter     bool
	Equaler       bool
	Comparable    bool
	Hasher        bool
	Sizer         bool
	Lenner        bool
	Cloner        bool
	Copyable      bool
	Destroyer     bool
	Backtraceable bool
	ParentView    bool
}

type capsKey struct{ p, t reflect.Type }

var capsCache sync.Map // capsKey -> Caps

// Capabilities inspects *T for every capability the slot services use. The
// result is computed once per (P, T) pair.
func Capabilities[P, T any]() Caps {
	key := capsKey{reflect.TypeFor[P](), reflect.TypeFor[T]()}
	if c, ok := capsCache.Load(key); ok {
		return c.(Caps)
	}
	t := reflect.TypeFor[T]()
	pt := reflect.TypeFor[*T]()
	c := Caps{
		Type:          t.String(),
		Stringer:      pt.Implements(reflect.TypeFor[fmt.Stringer]()),
		Formatter:     pt.Implements(reflect.TypeFor[fmt.Formatter]()),
		Equaler:       pt.Implements(reflect.TypeFor[Equaler[T]]()),
		Comparable:    t.Comparable(),
		Hasher:        pt.Implements(reflect.TypeFor[Hasher]()),
		Sizer:         pt.Implements(reflect.TypeFor[Sizer]()),
		Lenner:        pt.Implements(reflect.TypeFor[Lenner]()) || pt.Implements(reflect.TypeFor[Lengther]()),
		Cloner:        pt.Implements(reflect.TypeFor[Cloner[T]]()),
		Copyable:      copyable(t, reflect.TypeFor[Backref[P]](), nil),
		Destroyer:     pt.Implements(reflect.TypeFor[Destroyer]()),
		Backtraceable: pt.Implements(reflect.TypeFor[Backtraceable[P]]()),
		ParentView:    pt == reflect.TypeFor[*P]() || pt.Implements(reflect.TypeFor[ParentViewer[P]]()),
	}
	capsCache.Store(key, c)
	return c
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
