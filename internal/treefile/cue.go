package treefile

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaCUE constrains CUE tree files. Definitions are closed, so unknown
// fields are rejected.
const schemaCUE = `
#Node: {
	id:     int
	label?: string
	attrs?: [string]: _
	children?: [...#Node]
}
`

// DecodeCUE decodes a CUE tree description. The file is unified with the
// node schema and must be concrete.
func DecodeCUE(data []byte, name string) (Spec, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return Spec{}, fmt.Errorf("internal error: failed to compile schema: %w", schema.Err())
	}

	user := ctx.CompileBytes(data, cue.Filename(name))
	if user.Err() != nil {
		return Spec{}, fmt.Errorf("failed to compile CUE tree file %s: %w", name, user.Err())
	}

	unified := schema.LookupPath(cue.ParsePath("#Node")).Unify(user)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Spec{}, fmt.Errorf("invalid CUE tree file %s: %w", name, err)
	}

	var spec Spec
	if err := unified.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("failed to decode CUE tree file %s: %w", name, err)
	}
	normalizeSpec(&spec)
	return spec, nil
}
