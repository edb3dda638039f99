package storage

import (
	"time"

	"github.com/korjavin/fridgechef/pkg/models"
)

const generatedPrefix = "generated:"

// GeneratedCache remembers generated recipes per ingredient set
type GeneratedCache struct {
	store *Store
	ttl   time.Duration
}

// NewGeneratedCache creates a cache on top of s. A zero ttl keeps entries forever.
func NewGeneratedCache(s *Store, ttl time.Duration) *GeneratedCache {
	return &GeneratedCache{store: s, ttl: ttl}
}

// Get returns the cached text for key
func (c *GeneratedCache) Get(key string) (string, bool) {
	var entry models.GeneratedRecipe
	if err := c.store.Get(generatedPrefix+key, &entry); err != nil {
		if !IsNotFound(err) {
			c.store.logger.Warn("Failed to read generated recipe cache: %v", err)
		}
		return "", false
	}
	if c.ttl > 0 && time.Since(entry.CreatedAt) > c.ttl {
		return "", false
	}
	return entry.Text, true
}

// Put stores the generated text for key along with the model that wrote it
func (c *GeneratedCache) Put(key string, ingredients []string, model string, text string) error {
	return c.store.Set(generatedPrefix+key, models.GeneratedRecipe{
		Ingredients: ingredients,
		Text:        text,
		Model:       model,
		CreatedAt:   time.Now(),
	})
}
