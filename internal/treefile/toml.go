package treefile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// DecodeTOML decodes a TOML tree description. Children are arrays of
// tables named children.
func DecodeTOML(data []byte, name string) (Spec, error) {
	var spec Spec
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("failed to decode TOML tree file %s: %w", name, err)
	}
	normalizeSpec(&spec)
	return spec, nil
}

// WriteTOML encodes spec as a TOML tree description.
func WriteTOML(w io.Writer, spec Spec) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(spec)
}
