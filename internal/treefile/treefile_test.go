package treefile

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/feather-lang/slot"
	"github.com/feather-lang/slot/internal/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forest = Spec{
	ID:    1,
	Label: "root",
	Attrs: map[string]any{"hp": 100, "ratio": 0.5, "name": "slime"},
	Children: []Spec{
		{
			ID:       2,
			Label:    "a",
			Attrs:    map[string]any{"alive": true, "tags": []any{"x", "y"}},
			Children: []Spec{{ID: 4}},
		},
		{ID: 3, Label: "b"},
	},
}

func TestLoad(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"forest.toml", "forest.hcl", "forest.cue"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			if diff := cmp.Diff(forest, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Load(%s) mismatch (-want +got):\n%s", name, diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		file    string
		wantErr error
		msg     string
	}{
		{file: "tree.yaml", wantErr: ErrUnsupportedFormat},
		{file: "missing.toml", wantErr: os.ErrNotExist},
		{file: "unknown.toml", msg: "failed to decode TOML tree file"},
		{file: "broken.hcl", msg: "failed to parse HCL tree file"},
		{file: "noid.cue", msg: "invalid CUE tree file"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			_, err := Load(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecodeHCLRejectsNonObjectAttrs(t *testing.T) {
	t.Parallel()
	_, err := DecodeHCL([]byte("id = 1\nattrs = 5\n"), "inline.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attrs must be an object")
}

func TestDecodeCUERejectsUnknownField(t *testing.T) {
	t.Parallel()
	_, err := DecodeCUE([]byte("id: 1\ncolour: \"red\"\n"), "inline.cue")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   any
		want any
	}{
		{int64(3), 3},
		{int32(3), 3},
		{uint64(3), 3},
		{3.0, 3.0},
		{float32(2), 2.0},
		{2.5, 2.5},
		{big.NewInt(7), 7},
		{big.NewFloat(3), 3},
		{big.NewFloat(0.5), 0.5},
		{"s", "s"},
		{[]any{int64(1), 1.5}, []any{1, 1.5}},
		{map[string]any{"k": int64(2)}, map[string]any{"k": 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize(tt.in))
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()
	root := Build(forest)

	require.True(t, root.Valid())
	assert.Equal(t, "Node(1 root)", root.String())
	assert.Equal(t, 4, forest.Count())

	hp, err := slot.Get[int](root, "hp")
	require.NoError(t, err)
	assert.Equal(t, 100, hp)
	ratio, err := slot.Get[float64](root, "ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio)

	leaf, err := tree.Lookup(root, "0/0")
	require.NoError(t, err)
	assert.Equal(t, "Node(4)", leaf.String())
	path, err := slot.CallAs[string](leaf, "path")
	require.NoError(t, err)
	assert.Equal(t, "0/0", path)
	depth, err := slot.CallAs[int](leaf, "depth")
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	a, err := tree.Lookup(root, "0")
	require.NoError(t, err)
	tags, err := slot.Get[[]any](a, "tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, tags)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	root := Build(forest)

	snap := Snapshot(root)
	if diff := cmp.Diff(forest, snap, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, snap))
	path := filepath.Join(t.TempDir(), "out.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.True(t, root.Equal(reopened))
	if diff := cmp.Diff(forest, Snapshot(reopened), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("reloaded tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripKeepsNumberKinds(t *testing.T) {
	t.Parallel()
	root := Build(Spec{ID: 1, Attrs: map[string]any{"whole": 1.0, "count": 1}})

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, Snapshot(root)))
	path := filepath.Join(t.TempDir(), "kinds.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	reopened, err := Open(path)
	require.NoError(t, err)
	whole, err := slot.Get[float64](reopened, "whole")
	require.NoError(t, err)
	assert.Equal(t, 1.0, whole)
	count, err := slot.Get[int](reopened, "count")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSnapshotEmpty(t *testing.T) {
	t.Parallel()
	var s tree.Slot
	assert.Equal(t, Spec{}, Snapshot(&s))
}
