package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Egg", want: "egg"},
		{name: "trims whitespace", input: "  milk \t", want: "milk"},
		{name: "keeps inner spaces", input: " Olive Oil ", want: "olive oil"},
		{name: "no plural handling", input: "Eggs", want: "eggs"},
		{name: "punctuation untouched", input: "salt, kosher", want: "salt, kosher"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	s := NewSet("Egg", " egg ", "MILK", "", "  ")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("EGG"))
	assert.True(t, s.Has("milk"))
	assert.False(t, s.Has("eggs"), "no partial or plural matching")
	assert.Equal(t, []string{"egg", "milk"}, s.Sorted())
	assert.Equal(t, "egg|milk", s.Key())
}
