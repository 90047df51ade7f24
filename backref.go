package slot

// Backtraceable is implemented by values that store a non-owning reference
// to the parent that owns them. A slot keeps the reference of the value it
// holds pointed at the slot's own parent.
//
// Embed [Backref] to get an implementation:
//
//	type Node struct {
//	    slot.Backref[Node]
//	    Left, Right slot.Slot[Node, Node]
//	}
type Backtraceable[P any] interface {
	Parent() *P
	SetParent(p *P)
}

// ParentViewer lets a value that is not itself a *P be viewed as one for
// cycle detection, typically because it embeds P.
type ParentViewer[P any] interface {
	AsParent() *P
}

// Backref is an embeddable back-reference to a parent of type P.
type Backref[P any] struct {
	parent *P
}

// Parent returns the owning parent, or nil for an orphan.
func (b *Backref[P]) Parent() *P { return b.parent }

// SetParent points the back-reference at p. Slots call this; code outside a
// slot that rewires it bypasses cycle detection.
func (b *Backref[P]) SetParent(p *P) { b.parent = p }

// HasParent reports whether the back-reference is set.
func (b *Backref[P]) HasParent() bool { return b.parent != nil }

// viewAsParent returns v as a *P when the two types coincide or v offers a
// ParentViewer.
func viewAsParent[P, T any](v *T) (*P, bool) {
	if p, ok := any(v).(*P); ok {
		return p, true
	}
	if pv, ok := any(v).(ParentViewer[P]); ok {
		return pv.AsParent(), true
	}
	return nil, false
}

// wouldCycle reports whether adopting v under parent closes a loop in the
// back-reference chain. The walk is bounded by the depth of the chain.
func wouldCycle[P, T any](v *T, parent *P) bool {
	if _, ok := any(v).(Backtraceable[P]); !ok {
		return false
	}
	self, ok := viewAsParent[P](v)
	if !ok || self == nil {
		return false
	}
	for cur := parent; cur != nil; {
		if cur == self {
			return true
		}
		bt, ok := any(cur).(Backtraceable[P])
		if !ok {
			return false
		}
		cur = bt.Parent()
	}
	return false
}
