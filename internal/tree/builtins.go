package tree

import (
	"errors"

	"github.com/feather-lang/slot"
)

// DefineBuiltins registers the methods every loaded node slot carries:
//
//	depth() int        number of ancestors
//	path() string      child-index path from the root
//	scale(k int) int   id multiplied by k
//	rename(l string)   replace the label
//
// The methods act on the node s holds when they are defined, so they keep
// working after the slot's contents move to another slot. s must hold a
// node.
func DefineBuiltins(s *Slot) {
	n := s.Get()
	if n == nil {
		return
	}
	slot.Def0(s, "depth", n.Depth)
	slot.Def0(s, "path", n.Path)
	slot.Def1(s, "scale", func(k int) int { return n.ID * k })
	// Define cannot fail for a plain func with an error result
	_ = s.Define("rename", func(label string) error {
		if label == "" {
			return errors.New("rename: empty label")
		}
		n.Label = label
		return nil
	})
}
