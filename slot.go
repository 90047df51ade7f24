package slot

import "fmt"

// noCopy marks Slot as non-copyable for go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Slot exclusively owns at most one *T and optionally knows the parent *P
// that owns the slot itself.
//
// When *T is [Backtraceable] with parent type P, the held value's
// back-reference always points at the slot's parent. Adoption refuses
// values that would close a loop in the chain of back-references.
//
// Besides the value, a slot owns a bag of dynamic attributes and a table of
// dynamic methods. Both belong to the slot, not to the value: they survive
// replacing the value and travel with the slot on [Slot.Move] and
// [Slot.Swap].
//
// The zero Slot is an empty orphan slot ready to use. Slots embedded in a
// struct are bound to that struct with [Slot.Init]:
//
//	func NewNode(v int) *Node {
//	    n := &Node{Value: v}
//	    n.Left.Init(n)
//	    n.Right.Init(n)
//	    return n
//	}
//
// A Slot is not safe for concurrent use and must not be copied.
type Slot[P, T any] struct {
	_ noCopy

	parent  *P // not owned
	ptr     *T // owned
	deleter func(*T)

	fields map[string]Box     // nil until the first Set
	fns    map[string]*Method // nil until the first Define
}

// New returns an empty slot bound to parent, which may be nil.
func New[P, T any](parent *P) *Slot[P, T] {
	return &Slot[P, T]{parent: parent}
}

// NewWith returns a slot bound to parent that has adopted v.
func NewWith[P, T any](parent *P, v *T) *Slot[P, T] {
	s := New[P, T](parent)
	s.Adopt(v)
	return s
}

// Make allocates a T, runs init on it and returns a slot bound to parent
// holding it.
func Make[P, T any](parent *P, init ...func(*T)) *Slot[P, T] {
	s := New[P, T](parent)
	s.Emplace(init...)
	return s
}

// Init binds an empty slot to parent. It is meant for slots embedded as
// struct fields, which cannot be bound at declaration.
func (s *Slot[P, T]) Init(parent *P) {
	s.parent = parent
	s.tag()
}

// Get returns the held value, or nil.
func (s *Slot[P, T]) Get() *T {
	if s == nil {
		return nil
	}
	return s.ptr
}

// Valid reports whether the slot holds a value.
func (s *Slot[P, T]) Valid() bool {
	return s != nil && s.ptr != nil
}

// Parent returns the parent the slot is bound to, or nil.
func (s *Slot[P, T]) Parent() *P {
	if s == nil {
		return nil
	}
	return s.parent
}

// SetDeleter sets the function run on values the slot destroys. The
// default calls Destroy on values implementing [Destroyer].
func (s *Slot[P, T]) SetDeleter(fn func(*T)) {
	s.deleter = fn
}

// Adopt takes ownership of v, destroying the value previously held.
//
// If v would create a cycle in the back-reference chain, Adopt does
// nothing: the previous value stays and v remains the caller's. Use
// [Slot.TryAdopt] to learn whether v was taken.
func (s *Slot[P, T]) Adopt(v *T) {
	s.TryAdopt(v)
}

// TryAdopt is Adopt that reports whether v is now held by the slot.
func (s *Slot[P, T]) TryAdopt(v *T) bool {
	if v == s.ptr {
		return true
	}
	if v != nil && s.parent != nil && wouldCycle(v, s.parent) {
		Logger().Debug("adoption refused",
			"reason", "cycle",
			"type", typeName[T](),
			"parent", fmt.Sprintf("%p", s.parent))
		return false
	}
	s.destroy()
	s.ptr = v
	s.tag()
	return true
}

// Emplace allocates a new T, runs init on it and adopts it.
func (s *Slot[P, T]) Emplace(init ...func(*T)) {
	v := new(T)
	for _, fn := range init {
		fn(v)
	}
	s.Adopt(v)
}

// Release gives up ownership of the held value without destroying it. The
// value's back-reference is cleared and the slot is left empty.
func (s *Slot[P, T]) Release() *T {
	s.untag()
	v := s.ptr
	s.ptr = nil
	return v
}

// Reset destroys the held value and leaves the slot empty. It is what a
// slot does when its owner goes away.
func (s *Slot[P, T]) Reset() {
	s.Adopt(nil)
}

// Move transfers everything s holds into a new slot bound to the same
// parent: value, deleter, attributes and methods. s keeps its parent and is
// left empty.
func (s *Slot[P, T]) Move() *Slot[P, T] {
	d := &Slot[P, T]{
		parent:  s.parent,
		deleter: s.deleter,
		fields:  s.fields,
		fns:     s.fns,
	}
	d.ptr = s.Release()
	d.tag()
	s.fields, s.fns = nil, nil
	return d
}

// MoveFrom destroys the value held by s and takes src's value, deleter,
// attributes and methods. The value is re-tagged to s's parent. If the
// value would create a cycle under s's parent, nothing changes on either
// side.
func (s *Slot[P, T]) MoveFrom(src *Slot[P, T]) {
	if src == nil || s == src {
		return
	}
	v := src.ptr
	if v != nil && s.parent != nil && wouldCycle(v, s.parent) {
		Logger().Debug("move refused",
			"reason", "cycle",
			"type", typeName[T](),
			"parent", fmt.Sprintf("%p", s.parent))
		return
	}
	src.Release()
	s.TryAdopt(v)
	s.deleter = src.deleter
	s.fields, s.fns = src.fields, src.fns
	src.fields, src.fns = nil, nil
}

// Swap exchanges values, deleters, attributes and methods with other.
// Parents stay where they are; both values are re-tagged.
func (s *Slot[P, T]) Swap(other *Slot[P, T]) {
	if other == nil || s == other {
		return
	}
	s.ptr, other.ptr = other.ptr, s.ptr
	s.deleter, other.deleter = other.deleter, s.deleter
	s.fields, other.fields = other.fields, s.fields
	s.fns, other.fns = other.fns, s.fns
	s.tag()
	other.tag()
}

// destroy clears the back-reference of the held value and runs the
// deleter on it. Slots inside the value are left to its Destroy method.
func (s *Slot[P, T]) destroy() {
	if s.ptr == nil {
		return
	}
	v := s.Release()
	switch {
	case s.deleter != nil:
		s.deleter(v)
	default:
		if d, ok := any(v).(Destroyer); ok {
			d.Destroy()
		}
	}
}

func (s *Slot[P, T]) tag() {
	if s.ptr == nil {
		return
	}
	if bt, ok := any(s.ptr).(Backtraceable[P]); ok {
		bt.SetParent(s.parent)
	}
}

func (s *Slot[P, T]) untag() {
	if s.ptr == nil {
		return
	}
	if bt, ok := any(s.ptr).(Backtraceable[P]); ok {
		bt.SetParent(nil)
	}
}
