// Package treefile loads tree descriptions from TOML, HCL and CUE files and
// builds slot trees from them.
//
// All three formats describe the same shape: a node has an integer id, an
// optional label, optional attributes and optional children.
//
//	id    = 1
//	label = "root"
//	[attrs]
//	hp = 100
//	[[children]]
//	id = 2
package treefile

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/feather-lang/slot"
	"github.com/feather-lang/slot/internal/tree"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("treefile: unsupported format")

// Spec describes one node and its subtree.
type Spec struct {
	ID       int            `toml:"id" json:"id"`
	Label    string         `toml:"label,omitempty" json:"label,omitempty"`
	Attrs    map[string]any `toml:"attrs,omitempty" json:"attrs,omitempty"`
	Children []Spec         `toml:"children,omitempty" json:"children,omitempty"`
}

// Decoder turns file contents into a Spec. name is used in error messages.
type Decoder func(data []byte, name string) (Spec, error)

var decoders = map[string]Decoder{
	".toml": DecodeTOML,
	".hcl":  DecodeHCL,
	".cue":  DecodeCUE,
}

// Extensions returns the file extensions Load understands.
func Extensions() []string {
	return []string{".cue", ".hcl", ".toml"}
}

// Load reads and decodes the tree description at path, choosing the
// decoder by file extension.
func Load(path string) (Spec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, path, strings.Join(Extensions(), ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to read tree file %s: %w", path, err)
	}
	spec, err := dec(data, path)
	if err != nil {
		return Spec{}, err
	}
	slot.Logger().Debug("Loaded tree file.", "path", path, "nodes", spec.Count())
	return spec, nil
}

// Open loads the file at path and builds its tree.
func Open(path string) (*tree.Slot, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(spec), nil
}

// Count returns the number of nodes in the subtree.
func (s Spec) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// Build creates an orphan slot holding the tree described by spec. Each
// node's attributes are stored in the bag of the slot holding it, and every
// slot gets the tree builtins.
func Build(spec Spec) *tree.Slot {
	root := slot.Make[tree.Node](nil, tree.With(spec.ID, spec.Label))
	fill(root, spec)
	return root
}

func fill(s *tree.Slot, spec Spec) {
	for k, v := range spec.Attrs {
		// s always holds a node here
		_ = s.Set(k, normalize(v))
	}
	tree.DefineBuiltins(s)
	for _, c := range spec.Children {
		fill(s.Get().AddChild(tree.With(c.ID, c.Label)), c)
	}
}

// Snapshot describes the tree held by s, including slot attributes.
func Snapshot(s *tree.Slot) Spec {
	n := s.Get()
	if n == nil {
		return Spec{}
	}
	spec := Spec{ID: n.ID, Label: n.Label}
	for _, name := range s.AttrNames() {
		b, err := s.Lookup(name)
		if err != nil {
			continue
		}
		if spec.Attrs == nil {
			spec.Attrs = make(map[string]any)
		}
		spec.Attrs[name] = b.Value()
	}
	for _, c := range n.Children {
		if c.Valid() {
			spec.Children = append(spec.Children, Snapshot(c))
		}
	}
	return spec
}

// normalize converts decoded integers to int and floats to float64,
// recursing into lists and maps. A float stays a float even when it is
// integral. Arbitrary-precision numbers, which carry no such distinction,
// become int when they are exact integers.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case int32:
		return int(x)
	case uint64:
		if x <= math.MaxInt {
			return int(x)
		}
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case *big.Int:
		if x.IsInt64() {
			return int(x.Int64())
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case *big.Float:
		if i, acc := x.Int64(); acc == big.Exact {
			return int(i)
		}
		f, _ := x.Float64()
		return f
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	}
	return v
}

func normalizeSpec(s *Spec) {
	for k, v := range s.Attrs {
		s.Attrs[k] = normalize(v)
	}
	for i := range s.Children {
		normalizeSpec(&s.Children[i])
	}
}
