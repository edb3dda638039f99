// Package match scores recipes against the ingredients a user has and
// decides whether the best database match is good enough to show.
package match

import (
	"sort"

	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/models"
)

// DefaultLimit is the number of matches returned when no limit is given
const DefaultLimit = 5

// FindMatches scores every recipe by the share of its ingredients present in
// query, keeps recipes sharing at least one ingredient, and returns the best
// limit of them, highest score first. Equal scores keep corpus order.
// Recipes without ingredients are skipped. A limit <= 0 means DefaultLimit.
func FindMatches(query ingredient.Set, recipes []models.Recipe, limit int) []models.MatchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]models.MatchResult, 0)
	if query.Len() == 0 {
		return results
	}

	for _, recipe := range recipes {
		result, ok := score(query, recipe)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// score computes one recipe's result. ok is false when the recipe has no
// ingredients or shares none with query.
func score(query ingredient.Set, recipe models.Recipe) (models.MatchResult, bool) {
	// normalized form -> first raw spelling in the recipe
	needed := make(map[string]string, len(recipe.Ingredients))
	for _, raw := range recipe.Ingredients {
		n := ingredient.Normalize(raw)
		if n == "" {
			continue
		}
		if _, seen := needed[n]; !seen {
			needed[n] = raw
		}
	}
	if len(needed) == 0 {
		return models.MatchResult{}, false
	}

	owned := make([]string, 0, len(needed))
	missing := make([]string, 0, len(needed))
	for n, raw := range needed {
		if _, ok := query[n]; ok {
			owned = append(owned, n)
		} else {
			missing = append(missing, raw)
		}
	}
	if len(owned) == 0 {
		return models.MatchResult{}, false
	}

	sort.Strings(owned)
	sort.Strings(missing)

	return models.MatchResult{
		RecipeTitle: recipe.Title,
		Score:       float64(len(owned)) / float64(len(needed)),
		Owned:       owned,
		Missing:     missing,
		ImageRef:    recipe.ImageRef,
	}, true
}

// Engine runs FindMatches with a fixed limit
type Engine struct {
	Limit int
}

// NewEngine creates an engine returning at most limit results
func NewEngine(limit int) *Engine {
	return &Engine{Limit: limit}
}

// Match scores query against recipes
func (e *Engine) Match(query ingredient.Set, recipes []models.Recipe) []models.MatchResult {
	return FindMatches(query, recipes, e.Limit)
}
