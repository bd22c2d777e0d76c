package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	before := []byte("Alice, MovieX\nBob, MovieX, MovieY\n")
	after := []byte("Alice, MovieX\nBob, MovieX, MovieY\nCarol, MovieZ\n")

	d := Diff("cast.txt", "cast.txt (unsaved)", before, after)
	assert.Contains(t, d, "--- cast.txt\n")
	assert.Contains(t, d, "+++ cast.txt (unsaved)\n")
	assert.Contains(t, d, "+Carol, MovieZ\n")
	assert.NotContains(t, d, "-Alice")

	assert.Empty(t, Diff("a", "b", before, before))
}
