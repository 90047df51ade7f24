package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build returns an arena holding 1 -> (2 -> 4, 3).
func build(t *testing.T) (*Arena[string], []Index) {
	t.Helper()
	a := New[string]()
	idx := []Index{a.Add("one"), a.Add("two"), a.Add("three"), a.Add("four")}
	require.NoError(t, a.Attach(idx[1], idx[0]))
	require.NoError(t, a.Attach(idx[2], idx[0]))
	require.NoError(t, a.Attach(idx[3], idx[1]))
	return a, idx
}

func TestAddAndGet(t *testing.T) {
	t.Parallel()
	var a Arena[int]
	i := a.Add(7)

	require.True(t, a.Valid(i))
	assert.Equal(t, 7, *a.Get(i))
	assert.Equal(t, None, a.Parent(i))
	assert.Equal(t, 1, a.Len())
	assert.Nil(t, a.Get(Index(5)))
	assert.Nil(t, a.Get(None))
}

func TestAttach(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	assert.Equal(t, idx[0], a.Parent(idx[1]))
	assert.Equal(t, []Index{idx[1], idx[2]}, a.Children(idx[0]))
	assert.Equal(t, []Index{idx[0]}, a.Roots())
	assert.Equal(t, []Index{idx[0], idx[1], idx[3]}, a.Path(idx[3]))
	assert.Equal(t, 2, a.Depth(idx[3]))
	assert.Equal(t, 0, a.Depth(idx[0]))
}

func TestAttachReparents(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	require.NoError(t, a.Attach(idx[3], idx[2]))

	assert.Empty(t, a.Children(idx[1]))
	assert.Equal(t, []Index{idx[3]}, a.Children(idx[2]))
	assert.Equal(t, idx[2], a.Parent(idx[3]))
}

func TestAttachSameParentIsNoop(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	require.NoError(t, a.Attach(idx[1], idx[0]))
	assert.Equal(t, []Index{idx[1], idx[2]}, a.Children(idx[0]))
}

func TestAttachCycle(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	err := a.Attach(idx[0], idx[3])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))

	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []Index{idx[3], idx[1], idx[0]}, ce.Chain)
	assert.Equal(t, "attaching 0 under 3 would create a cycle: 3 -> 1 -> 0", err.Error())

	// nothing moved
	assert.Equal(t, None, a.Parent(idx[0]))
	assert.Equal(t, idx[1], a.Parent(idx[3]))
}

func TestAttachSelf(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	assert.ErrorIs(t, a.Attach(idx[2], idx[2]), ErrCycle)
}

func TestAttachInvalid(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	assert.ErrorIs(t, a.Attach(Index(99), idx[0]), ErrInvalidIndex)
	assert.ErrorIs(t, a.Attach(idx[0], None), ErrInvalidIndex)
	assert.ErrorIs(t, a.Detach(Index(99)), ErrInvalidIndex)
}

func TestDetach(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	require.NoError(t, a.Detach(idx[1]))

	assert.Equal(t, None, a.Parent(idx[1]))
	assert.Equal(t, []Index{idx[2]}, a.Children(idx[0]))
	assert.Equal(t, []Index{idx[0], idx[1]}, a.Roots())
	// the subtree stays intact
	assert.Equal(t, idx[1], a.Parent(idx[3]))
}

func TestRemove(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	n, err := a.Remove(idx[1])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, a.Len())
	assert.False(t, a.Valid(idx[1]))
	assert.False(t, a.Valid(idx[3]))
	assert.Equal(t, []Index{idx[2]}, a.Children(idx[0]))

	_, err = a.Remove(idx[1])
	assert.ErrorIs(t, err, ErrInvalidIndex)

	// freed indices are reused
	j := a.Add("five")
	assert.Contains(t, []Index{idx[1], idx[3]}, j)
	assert.Equal(t, "five", *a.Get(j))
	assert.Equal(t, None, a.Parent(j))
	assert.Empty(t, a.Children(j))
}

func TestWalk(t *testing.T) {
	t.Parallel()
	a, idx := build(t)

	var seen []string
	a.Walk(idx[0], func(_ Index, v *string) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []string{"one", "two", "four", "three"}, seen)

	seen = nil
	a.Walk(idx[0], func(i Index, v *string) bool {
		seen = append(seen, *v)
		return i != idx[1]
	})
	assert.Equal(t, []string{"one", "two", "three"}, seen)
}
