package match

import (
	"testing"

	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_ShouldUseDatabaseMatches(t *testing.T) {
	t.Parallel()

	ranked := func(scores ...float64) []models.MatchResult {
		out := make([]models.MatchResult, len(scores))
		for i, s := range scores {
			out[i] = models.MatchResult{Score: s}
		}
		return out
	}

	tests := []struct {
		name      string
		threshold float64
		results   []models.MatchResult
		want      bool
	}{
		{name: "weak top match triggers generation", threshold: 0.3, results: ranked(0.25), want: false},
		{name: "strong top match", threshold: 0.3, results: ranked(0.75, 0.2), want: true},
		{name: "equal to threshold is not enough", threshold: 0.5, results: ranked(0.5), want: false},
		{name: "batch threshold", threshold: 0.5, results: ranked(0.6), want: true},
		{name: "no results", threshold: 0.3, results: nil, want: false},
		{name: "empty results", threshold: 0.0, results: []models.MatchResult{}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := Policy{Threshold: tc.threshold}
			assert.Equal(t, tc.want, p.ShouldUseDatabaseMatches(tc.results))
		})
	}
}

func TestPolicy_EmptyCorpus(t *testing.T) {
	t.Parallel()

	results := FindMatches(ingredient.NewSet("egg"), []models.Recipe{}, DefaultLimit)
	assert.Empty(t, results)
	assert.False(t, Policy{Threshold: 0.3}.ShouldUseDatabaseMatches(results))
}

func TestDisplayFilter(t *testing.T) {
	t.Parallel()

	in := []models.MatchResult{{RecipeTitle: "a", Score: 0.8}, {RecipeTitle: "b", Score: 0.2}, {RecipeTitle: "c", Score: 0.1}}
	got := DisplayFilter(in, 0.2)
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].RecipeTitle)
}
