// Package tree is an n-ary tree whose nodes own their children through
// slots. It is what the slotree command loads, renders and edits.
package tree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/feather-lang/slot"
)

// ErrBadPath is returned for child paths that do not resolve.
var ErrBadPath = errors.New("tree: bad path")

// Slot is a slot holding a Node owned by another Node.
type Slot = slot.Slot[Node, Node]

// Node is a tree node. Its back-reference points at the node owning the
// slot it lives in.
type Node struct {
	slot.Backref[Node]
	ID       int
	Label    string
	Children []*slot.Slot[Node, Node]
}

// New returns a childless node.
func New(id int, label string) *Node {
	return &Node{ID: id, Label: label}
}

// With initializes a node in place, for use with Emplace and AddChild.
func With(id int, label string) func(*Node) {
	return func(n *Node) {
		n.ID = id
		n.Label = label
	}
}

func (n *Node) String() string {
	if n.Label == "" {
		return fmt.Sprintf("Node(%d)", n.ID)
	}
	return fmt.Sprintf("Node(%d %s)", n.ID, n.Label)
}

// Equal compares ids, labels and children, recursively.
func (n *Node) Equal(o *Node) bool {
	if n.ID != o.ID || n.Label != o.Label || len(n.Children) != len(o.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Hash combines the id, label and child hashes.
func (n *Node) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n.ID))
	d.Write(buf[:])
	d.WriteString(n.Label)
	for _, c := range n.Children {
		binary.LittleEndian.PutUint64(buf[:], c.Hash())
		d.Write(buf[:])
	}
	return d.Sum64()
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.Children) }

// Clone returns a deep copy of n without a parent. Slot attributes and
// methods are not copied.
func (n *Node) Clone() *Node {
	c := New(n.ID, n.Label)
	for _, ch := range n.Children {
		cp, err := ch.FullCopy()
		if err != nil {
			// *Node is a Cloner, so FullCopy cannot fail
			panic(err)
		}
		c.newChild().MoveFrom(cp)
	}
	return c
}

// Destroy runs when a slot drops n. It destroys the subtree so no child
// keeps a back-reference to n.
func (n *Node) Destroy() {
	for _, c := range n.Children {
		c.Reset()
	}
	n.Children = nil
}

func (n *Node) newChild() *Slot {
	s := slot.New[Node, Node](n)
	n.Children = append(n.Children, s)
	return s
}

// AddChild appends a new child built by init and returns its slot.
func (n *Node) AddChild(init ...func(*Node)) *Slot {
	s := n.newChild()
	s.Emplace(init...)
	return s
}

// Adopt appends c as the last child. It reports false, leaving n
// unchanged, when c is n or one of its ancestors.
func (n *Node) Adopt(c *Node) (*Slot, bool) {
	s := slot.New[Node, Node](n)
	if !s.TryAdopt(c) {
		return nil, false
	}
	n.Children = append(n.Children, s)
	return s, true
}

// Insert puts s back as child i, binding its value to n. It reports false,
// leaving both unchanged, when the value is n or one of its ancestors.
func (n *Node) Insert(i int, s *Slot) bool {
	d := slot.New[Node, Node](n)
	d.MoveFrom(s)
	if s.Valid() {
		return false
	}
	i = min(max(i, 0), len(n.Children))
	n.Children = slices.Insert(n.Children, i, d)
	return true
}

// Child returns the slot of child i, or nil.
func (n *Node) Child(i int) *Slot {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Detach removes child i from n and returns its slot, which still holds
// the child together with its attributes and methods. The slot stays bound
// to n until it is put back with Insert.
func (n *Node) Detach(i int) *Slot {
	s := n.Child(i)
	if s == nil {
		return nil
	}
	n.Children = slices.Delete(n.Children, i, i+1)
	return s
}

// Index returns the position of c among n's children, or -1.
func (n *Node) Index(c *Node) int {
	return slices.IndexFunc(n.Children, func(s *Slot) bool { return s.Get() == c })
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Path returns the child-index path from the root down to n, such as
// "0/2". The root's path is "".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur.Parent() != nil; cur = cur.Parent() {
		parts = append(parts, strconv.Itoa(cur.Parent().Index(cur)))
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}

// Lookup resolves a child-index path relative to root. "" and "." name
// root itself.
func Lookup(root *Slot, path string) (*Slot, error) {
	cur := root
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return cur, nil
	}
	for _, part := range strings.Split(path, "/") {
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %q is not an index", ErrBadPath, path, part)
		}
		if !cur.Valid() {
			return nil, fmt.Errorf("%w: %q: empty node", ErrBadPath, path)
		}
		next := cur.Get().Child(i)
		if next == nil {
			return nil, fmt.Errorf("%w: %q: %s has no child %d", ErrBadPath, path, cur, i)
		}
		cur = next
	}
	return cur, nil
}

// Walk visits root and its descendants depth first. depth is 0 for root.
// Returning false from fn skips that slot's children.
func Walk(root *Slot, fn func(s *Slot, depth int) bool) {
	walk(root, 0, fn)
}

func walk(s *Slot, depth int, fn func(*Slot, int) bool) {
	if !fn(s, depth) || !s.Valid() {
		return
	}
	for _, c := range s.Get().Children {
		walk(c, depth+1, fn)
	}
}
