package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single field", "Alice", []string{"Alice"}},
		{"trims whitespace", "  Alice ,MovieX,   MovieY  ", []string{"Alice", "MovieX", "MovieY"}},
		{"keeps empty fields", "Alice,,MovieX,", []string{"Alice", "", "MovieX", ""}},
		{"empty line", "", []string{""}},
		{"carriage return", "Bob, MovieX\r", []string{"Bob", "MovieX"}},
		{"preserves case", "alice, ALICE", []string{"alice", "ALICE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.raw))
		})
	}
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "Bob, MovieX, MovieY", FormatLine([]string{"Bob", "MovieX", "MovieY"}))
	assert.Equal(t, "Alice", FormatLine([]string{"Alice"}))
}

func TestFromFields(t *testing.T) {
	t.Run("actor with movies", func(t *testing.T) {
		r, ok := FromFields([]string{"Bob", "MovieX", "", "MovieY"})
		assert.True(t, ok)
		assert.Equal(t, Record{Actor: "Bob", Movies: []string{"MovieX", "MovieY"}}, r)
	})

	t.Run("actor without movies", func(t *testing.T) {
		r, ok := FromFields([]string{"Alice"})
		assert.True(t, ok)
		assert.Equal(t, "Alice", r.Actor)
		assert.Empty(t, r.Movies)
	})

	t.Run("missing actor", func(t *testing.T) {
		_, ok := FromFields([]string{"", "MovieX"})
		assert.False(t, ok)

		_, ok = FromFields(nil)
		assert.False(t, ok)
	})
}
