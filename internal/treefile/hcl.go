package treefile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclNode is the HCL shape of a node. Children are unlabeled child blocks:
//
//	id    = 1
//	label = "root"
//	attrs = { hp = 100 }
//	child {
//	  id = 2
//	}
type hclNode struct {
	ID       int       `hcl:"id"`
	Label    string    `hcl:"label,optional"`
	Attrs    cty.Value `hcl:"attrs,optional"`
	Children []hclNode `hcl:"child,block"`
}

// DecodeHCL decodes an HCL tree description.
func DecodeHCL(data []byte, name string) (Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return Spec{}, fmt.Errorf("failed to parse HCL tree file %s: %s", name, diags.Error())
	}

	var root hclNode
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return Spec{}, fmt.Errorf("failed to decode HCL tree file %s: %s", name, diags.Error())
	}
	return root.spec(name)
}

func (n hclNode) spec(name string) (Spec, error) {
	spec := Spec{ID: n.ID, Label: n.Label}
	if !n.Attrs.IsNull() && n.Attrs.IsKnown() {
		if !n.Attrs.Type().IsObjectType() && !n.Attrs.Type().IsMapType() {
			return Spec{}, fmt.Errorf("HCL tree file %s: node %d: attrs must be an object, got %s",
				name, n.ID, n.Attrs.Type().FriendlyName())
		}
		v, err := ctyToGo(n.Attrs)
		if err != nil {
			return Spec{}, fmt.Errorf("HCL tree file %s: node %d: %w", name, n.ID, err)
		}
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			spec.Attrs = m
		}
	}
	for _, c := range n.Children {
		cs, err := c.spec(name)
		if err != nil {
			return Spec{}, err
		}
		spec.Children = append(spec.Children, cs)
	}
	return spec, nil
}

// ctyToGo converts a cty value to plain Go values. cty has a single number
// type, so numbers come out as int when integral and float64 otherwise.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			return normalize(val.AsBigFloat()), nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
		}
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			gv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			gv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type for conversion: %s", ty.FriendlyName())
}
