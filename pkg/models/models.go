package models

import (
	"time"
)

// Recipe is a single catalogue entry. Ingredients are kept as authored and may
// carry quantities and units.
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions,omitempty"`
	ImageRef     string   `json:"image_ref"`
}

// MatchResult describes how well a query covers one recipe. It is derived per
// query and never persisted.
type MatchResult struct {
	RecipeTitle string   `json:"recipe_title"`
	Score       float64  `json:"score"`
	Owned       []string `json:"owned"`
	Missing     []string `json:"missing"`
	ImageRef    string   `json:"image_ref"`
}

// MatchScore returns the coverage score
func (m MatchResult) MatchScore() float64 {
	return m.Score
}

// Percent returns the score as a whole percentage, truncated
func (m MatchResult) Percent() int {
	return int(m.Score * 100)
}

// Pantry holds the ingredients a chat has collected so far
type Pantry struct {
	ID          string       `json:"id"`
	ChannelID   int64        `json:"channel_id"`
	Items       []PantryItem `json:"items"`
	LastUpdated time.Time    `json:"last_updated"`
}

// PantryItem is a single ingredient in a pantry
type PantryItem struct {
	Name    string    `json:"name"`
	Source  string    `json:"source"`
	AddedAt time.Time `json:"added_at"`
}

// GeneratedRecipe is a cached response from the recipe generator
type GeneratedRecipe struct {
	Ingredients []string  `json:"ingredients"`
	Text        string    `json:"text"`
	Model       string    `json:"model,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Statistics counts the suggestions served to a chat
type Statistics struct {
	ChannelID          int64                 `json:"channel_id"`
	Suggestions        int                   `json:"suggestions"`
	DatabaseHits       int                   `json:"database_hits"`
	Generated          int                   `json:"generated"`
	GenerationFailures int                   `json:"generation_failures"`
	RecipeStats        map[string]RecipeStat `json:"recipe_stats"`
	LastSuggestedAt    time.Time             `json:"last_suggested_at"`
}

// RecipeStat counts how often a recipe came out on top
type RecipeStat struct {
	Title     string  `json:"title"`
	TopCount  int     `json:"top_count"`
	BestScore float64 `json:"best_score"`
}
