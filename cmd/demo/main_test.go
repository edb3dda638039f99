package main

import (
	"testing"

	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	s := chef.Suggestion{
		Query:     []string{"rice", "bread", "chicken"},
		Threshold: 0.5,
		Matches: []chef.MatchView{
			{MatchResult: models.MatchResult{RecipeTitle: "Chicken Sandwich", Score: 0.4}, Percent: 40, MissingDisplay: []string{"Mayonnaise"}},
			{MatchResult: models.MatchResult{RecipeTitle: "Miso Chicken", Score: 0.2}, Percent: 20},
		},
		Generated: "Title: Chicken Rice",
	}

	out := render(s, 0.2)

	assert.Contains(t, out, "Ingredients: rice, bread, chicken")
	assert.Contains(t, out, "Chicken Sandwich\nMatch: 40%\nMissing Ingredients:\n  - Mayonnaise")
	assert.NotContains(t, out, "Miso Chicken")
	assert.Contains(t, out, "threshold 0.50")
	assert.Contains(t, out, "Title: Chicken Rice")
}

func TestRender_NothingShown(t *testing.T) {
	out := render(chef.Suggestion{Query: []string{"tofu"}, UsedDatabase: true}, 0.2)

	assert.Contains(t, out, "No database recipe scored above the display minimum.")
	assert.NotContains(t, out, "Generated recipe")
}
