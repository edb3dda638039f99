package storage

import (
	"fmt"

	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/pkg/errors"
)

const recipePrefix = "recipe:"

// RecipeStore keeps the imported recipe catalogue with ingredients stored as
// a structured list
type RecipeStore struct {
	store *Store
}

// NewRecipeStore creates a recipe store on top of s
func NewRecipeStore(s *Store) *RecipeStore {
	return &RecipeStore{store: s}
}

func recipeKey(i int) string {
	return fmt.Sprintf("%s%06d", recipePrefix, i)
}

// ReplaceAll drops the stored catalogue and writes recipes in order
func (r *RecipeStore) ReplaceAll(recipes []models.Recipe) error {
	if err := r.store.DeletePrefix(recipePrefix); err != nil {
		return errors.Wrap(err, "failed to clear recipes")
	}
	for i, recipe := range recipes {
		if err := r.store.Set(recipeKey(i), recipe); err != nil {
			return errors.Wrapf(err, "failed to save recipe %q", recipe.Title)
		}
	}
	return nil
}

// All returns the stored catalogue in import order. Unreadable entries are
// skipped and logged.
func (r *RecipeStore) All() ([]models.Recipe, error) {
	keys, err := r.store.List(recipePrefix)
	if err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.Recipe
		if err := r.store.Get(key, &recipe); err != nil {
			r.store.logger.Error("Failed to get recipe %s: %v", key, err)
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
