// Package slot provides owning slots: containers that exclusively own one
// value, keep that value's back-reference to its parent in sync, and carry
// dynamic attributes and methods of their own.
//
// # Overview
//
// A [Slot] is meant to be a field of the struct that owns it. It provides:
//
//   - Exclusive ownership of a *T, with a deleter run on replacement
//   - Back-references: values embedding [Backref] always know their parent
//   - Cycle prevention: a node cannot be adopted below itself
//   - A bag of dynamic attributes of any type, read back by exact type
//   - A table of dynamic methods with fixed arity, called by name
//   - String, FullString, Equal, Hash, Len and FullCopy that use whatever
//     the held type provides and fall back to generic behavior
//
// # Quick Start
//
//	type Node struct {
//	    slot.Backref[Node]
//	    Value       int
//	    Left, Right slot.Slot[Node, Node]
//	}
//
//	func NewNode(v int) *Node {
//	    n := &Node{Value: v}
//	    n.Left.Init(n)
//	    n.Right.Init(n)
//	    return n
//	}
//
//	root := NewNode(1)
//	root.Left.Adopt(NewNode(2))
//	root.Left.Get().Parent() == root // true
//
// # Cycles
//
// Adoption walks the parent chain of the receiving slot. If the value being
// adopted is found on it, the adoption is refused and nothing changes:
//
//	root.Left.Get().Left.Adopt(root) // refused, root.Left.Get().Left stays empty
//
// [Slot.Adopt] refuses silently. [Slot.TryAdopt] reports the outcome.
//
// # Attributes
//
// Attributes belong to the slot, not to the value it holds, and survive
// replacing the value:
//
//	root.Left.Set("hp", 100)
//	hp, err := slot.Get[int](&root.Left, "hp")        // 100, nil
//	_, err = slot.Get[int64](&root.Left, "hp")        // ErrTypeMismatch
//	root.Left.Has("missing")                          // false
//
// # Methods
//
// Methods are registered with [Slot.Define] for any function, or with the
// typed helpers [Def0] through [Def3] and [Proc0] through [Proc2]:
//
//	slot.Def2(&root.Left, "add", func(a, b int) int { return a + b })
//	sum, err := slot.CallAs[int](&root.Left, "add", 10, 20) // 30, nil
//	_, err = root.Left.Invoke("add", 10)                    // ErrArityMismatch
//	_, err = root.Left.Invoke("add", 10, int64(20))         // ErrTypeMismatch
//
// # Capabilities
//
// The service methods look for these on *T, in order:
//
//   - String: fmt.Stringer, fmt.Formatter, then "<type @addr>"
//   - Equal: [Equaler], structural equality without the back-reference,
//     then identity
//   - Hash: [Hasher], a hash of scalar values, then a hash of FullString
//   - Len: [Sizer], [Lenner] or [Lengther], then the built-in len
//   - FullCopy: [Cloner], then a deep copy of slices and maps when T holds
//     no pointers, channels or funcs
//
// [Capabilities] reports what a type provides.
//
// # Errors
//
// Failing operations return errors matching [ErrNullAccess], [ErrNotFound],
// [ErrTypeMismatch], [ErrArityMismatch], [ErrUnsupported] or [ErrNoValue].
// A refused adoption is not an error.
package slot
