// Package arena stores a forest of values in one flat slice and links them
// by index. Parent links are plain indices, so a back-reference can never
// dangle and a tree can be dropped in one step.
//
// It is the index-based counterpart of slot.Slot: instead of refusing a
// cyclic adoption silently, [Arena.Attach] returns a [*CycleError].
package arena

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Index identifies a value in an [Arena].
type Index int

// None is the parent of a root.
const None Index = -1

var (
	// ErrCycle is matched by [*CycleError].
	ErrCycle = errors.New("arena: cycle")

	// ErrInvalidIndex is returned for indices that are out of range or
	// refer to removed values.
	ErrInvalidIndex = errors.New("arena: invalid index")
)

type (
	// CycleError reports an attachment that would make a value its own
	// ancestor.
	CycleError struct {
		Child  Index
		Parent Index
		// Chain runs from Parent up to and including Child.
		Chain []Index
	}

	// Arena owns a set of values of type T arranged as a forest.
	// The zero Arena is empty and ready to use.
	Arena[T any] struct {
		entries []entry[T]
		free    []Index
		live    int
	}

	entry[T any] struct {
		value    T
		parent   Index
		children []Index
		live     bool
	}
)

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, idx := range e.Chain {
		parts[i] = fmt.Sprint(int(idx))
	}
	return fmt.Sprintf("attaching %d under %d would create a cycle: %s",
		e.Child, e.Parent, strings.Join(parts, " -> "))
}

// Is makes CycleError match ErrCycle.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Add stores v as a new root and returns its index. Indices of removed
// values are reused.
func (a *Arena[T]) Add(v T) Index {
	e := entry[T]{value: v, parent: None, live: true}
	a.live++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[i] = e
		return i
	}
	a.entries = append(a.entries, e)
	return Index(len(a.entries) - 1)
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.live }

// Valid reports whether i refers to a live value.
func (a *Arena[T]) Valid(i Index) bool {
	return i >= 0 && int(i) < len(a.entries) && a.entries[i].live
}

func (a *Arena[T]) check(i Index) error {
	if !a.Valid(i) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return nil
}

// Get returns a pointer to the value at i, or nil if i is not valid. The
// pointer is invalidated by the next Add.
func (a *Arena[T]) Get(i Index) *T {
	if !a.Valid(i) {
		return nil
	}
	return &a.entries[i].value
}

// Parent returns the parent of i, or None.
func (a *Arena[T]) Parent(i Index) Index {
	if !a.Valid(i) {
		return None
	}
	return a.entries[i].parent
}

// Children returns the children of i in attachment order.
func (a *Arena[T]) Children(i Index) []Index {
	if !a.Valid(i) {
		return nil
	}
	return slices.Clone(a.entries[i].children)
}

// Roots returns the live values without a parent, in index order.
func (a *Arena[T]) Roots() []Index {
	var roots []Index
	for i := range a.entries {
		if a.entries[i].live && a.entries[i].parent == None {
			roots = append(roots, Index(i))
		}
	}
	return roots
}

// Attach makes child the last child of parent, detaching it from its
// current parent first. It fails with a *CycleError when child is parent
// or one of its ancestors; nothing changes in that case.
func (a *Arena[T]) Attach(child, parent Index) error {
	if err := a.check(child); err != nil {
		return err
	}
	if err := a.check(parent); err != nil {
		return err
	}
	var chain []Index
	for cur := parent; cur != None; cur = a.entries[cur].parent {
		chain = append(chain, cur)
		if cur == child {
			return &CycleError{Child: child, Parent: parent, Chain: chain}
		}
	}
	if a.entries[child].parent == parent {
		return nil
	}
	a.unlink(child)
	a.entries[child].parent = parent
	a.entries[parent].children = append(a.entries[parent].children, child)
	return nil
}

// Detach makes child a root.
func (a *Arena[T]) Detach(child Index) error {
	if err := a.check(child); err != nil {
		return err
	}
	a.unlink(child)
	return nil
}

func (a *Arena[T]) unlink(child Index) {
	p := a.entries[child].parent
	if p == None {
		return
	}
	a.entries[p].children = slices.DeleteFunc(a.entries[p].children, func(c Index) bool { return c == child })
	a.entries[child].parent = None
}

// Remove detaches i and frees it together with its whole subtree. It
// returns the number of values removed.
func (a *Arena[T]) Remove(i Index) (int, error) {
	if err := a.check(i); err != nil {
		return 0, err
	}
	a.unlink(i)
	n := 0
	stack := []Index{i}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, a.entries[cur].children...)
		a.entries[cur] = entry[T]{parent: None}
		a.free = append(a.free, cur)
		n++
	}
	a.live -= n
	return n, nil
}

// Path returns the indices from the root of i's tree down to i.
func (a *Arena[T]) Path(i Index) []Index {
	if !a.Valid(i) {
		return nil
	}
	var path []Index
	for cur := i; cur != None; cur = a.entries[cur].parent {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Depth returns the number of ancestors of i.
func (a *Arena[T]) Depth(i Index) int {
	return max(len(a.Path(i))-1, 0)
}

// Walk visits i and its descendants depth first, parents before children.
// Returning false from fn skips the children of that value.
func (a *Arena[T]) Walk(i Index, fn func(Index, *T) bool) {
	if !a.Valid(i) {
		return
	}
	if !fn(i, &a.entries[i].value) {
		return
	}
	for _, c := range a.entries[i].children {
		a.Walk(c, fn)
	}
}
