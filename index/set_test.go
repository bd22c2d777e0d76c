package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAlgebra(t *testing.T) {
	ix := New()
	require.NoError(t, ix.MergeMovie("A", []string{"Alice", "Bob", "Carol"}))
	require.NoError(t, ix.MergeMovie("B", []string{"Carol", "Dave"}))

	a, err := ix.MovieActors("A")
	require.NoError(t, err)
	b, err := ix.MovieActors("B")
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, a.Union(b).Names())
	assert.Equal(t, []string{"Carol"}, a.Intersect(b).Names())
	assert.Equal(t, []string{"Alice", "Bob", "Dave"}, a.SymmetricDifference(b).Names())

	assert.True(t, a.Union(b).Equal(b.Union(a)))
	assert.True(t, a.Intersect(b).Equal(b.Intersect(a)))
	assert.True(t, a.SymmetricDifference(b).Equal(b.SymmetricDifference(a)))

	// Operands are never modified.
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestSetWithout(t *testing.T) {
	ix := New()
	require.NoError(t, ix.MergeMovie("A", []string{"Alice", "Bob"}))
	a, err := ix.MovieActors("A")
	require.NoError(t, err)

	assert.Equal(t, []string{"Bob"}, a.Without("Alice").Names())
	assert.Equal(t, []string{"Alice", "Bob"}, a.Without("Zed").Names())
	assert.Equal(t, []string{"Alice", "Bob"}, a.Names())
}

func TestZeroSet(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("Alice"))
	assert.Nil(t, s.Names())
	assert.True(t, s.Equal(Set{}))

	ix := New()
	require.NoError(t, ix.MergeMovie("A", []string{"Alice"}))
	a, err := ix.MovieActors("A")
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice"}, s.Union(a).Names())
	assert.True(t, s.Intersect(a).IsEmpty())
	assert.False(t, s.Equal(a))
}

func TestUnionAll(t *testing.T) {
	ix := New()
	require.NoError(t, ix.MergeMovie("A", []string{"Alice"}))
	require.NoError(t, ix.MergeMovie("B", []string{"Bob"}))
	require.NoError(t, ix.MergeMovie("C", []string{"Alice", "Carol"}))

	var sets []Set
	for _, cast := range ix.Movies() {
		sets = append(sets, cast)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, UnionAll(sets...).Names())
	assert.True(t, UnionAll().IsEmpty())
}
