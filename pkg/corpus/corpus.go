package corpus

import "github.com/korjavin/fridgechef/pkg/models"

// Corpus is an ordered, read-only recipe collection
type Corpus struct {
	recipes []models.Recipe
	source  Source
}

// Source tells where a corpus came from
type Source string

const (
	SourceDataset  Source = "dataset"
	SourceStore    Source = "store"
	SourceFallback Source = "fallback"
	SourceMemory   Source = "memory"
)

// New wraps recipes in a corpus. The slice is copied.
func New(recipes []models.Recipe) *Corpus {
	return newWithSource(recipes, SourceMemory)
}

func newWithSource(recipes []models.Recipe, src Source) *Corpus {
	cp := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		r.Ingredients = append([]string(nil), r.Ingredients...)
		cp[i] = r
	}
	return &Corpus{recipes: cp, source: src}
}

// Recipes returns the recipes in corpus order. Callers must not modify them.
func (c *Corpus) Recipes() []models.Recipe {
	return c.recipes
}

// Len returns the number of recipes
func (c *Corpus) Len() int {
	return len(c.recipes)
}

// Source returns where the recipes were loaded from
func (c *Corpus) Source() Source {
	return c.source
}

// Head returns up to n recipes from the start of the corpus
func (c *Corpus) Head(n int) []models.Recipe {
	if n <= 0 || n > len(c.recipes) {
		n = len(c.recipes)
	}
	return c.recipes[:n]
}
