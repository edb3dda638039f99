// Package chef ties the matcher, the fallback policy and the recipe
// generator into the suggestion flow used by every surface.
package chef

import (
	"context"

	"github.com/korjavin/fridgechef/pkg/corpus"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/pkg/errors"
)

// AIErrorPrefix marks generator failures in display text
const AIErrorPrefix = "❌ AI Error: "

// ErrGeneratorUnavailable is reported when no generator is configured
var ErrGeneratorUnavailable = errors.New("recipe generation is not configured")

// Generator produces a freeform recipe from raw ingredient names
type Generator interface {
	GenerateRecipe(ctx context.Context, ingredients []string) (string, error)
}

// Cache remembers generated recipes by query key
type Cache interface {
	Get(key string) (string, bool)
	Put(key string, ingredients []string, model string, text string) error
}

// modelNamer is implemented by generators that report their model
type modelNamer interface {
	Model() string
}

// MatchView is a match prepared for display
type MatchView struct {
	models.MatchResult
	Percent        int      `json:"percent"`
	MissingDisplay []string `json:"missing_display"`
}

// Suggestion is the outcome of one request
type Suggestion struct {
	Query            []string    `json:"query"`
	Matches          []MatchView `json:"matches"`
	UsedDatabase     bool        `json:"used_database"`
	Threshold        float64     `json:"threshold"`
	Generated        string      `json:"generated,omitempty"`
	GenerationFailed bool        `json:"generation_failed,omitempty"`
}

// Empty reports whether the request carried no ingredients
func (s Suggestion) Empty() bool {
	return len(s.Query) == 0
}

// Service runs the suggestion flow for one surface
type Service struct {
	corpus    *corpus.Corpus
	engine    *match.Engine
	policy    match.Policy
	generator Generator
	cache     Cache
	logger    *logger.Logger
}

// Option customises a Service
type Option func(*Service)

// WithCache enables caching of generated recipes
func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLogger replaces the service logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a suggestion service. generator may be nil, in which case a
// weak match yields an error text instead of a generated recipe.
func New(c *corpus.Corpus, engine *match.Engine, policy match.Policy, generator Generator, opts ...Option) *Service {
	s := &Service{
		corpus:    c,
		engine:    engine,
		policy:    policy,
		generator: generator,
		logger:    logger.New("chef"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Corpus returns the recipes the service matches against
func (s *Service) Corpus() *corpus.Corpus {
	return s.corpus
}

// Matches ranks the corpus against q without consulting the generator
func (s *Service) Matches(q *ingredient.Query) []MatchView {
	results := s.engine.Match(q.Set(), s.corpus.Recipes())
	views := make([]MatchView, len(results))
	for i, r := range results {
		views[i] = MatchView{
			MatchResult:    r,
			Percent:        r.Percent(),
			MissingDisplay: ingredient.CleanAll(r.Missing),
		}
	}
	return views
}

// Suggest matches q against the corpus and, when the best match is too
// weak, asks the generator for a recipe built from the raw query items.
// Generator failures end up as display text, never as an error.
func (s *Service) Suggest(ctx context.Context, q *ingredient.Query) Suggestion {
	sug := Suggestion{
		Query:     q.Raw(),
		Matches:   []MatchView{},
		Threshold: s.policy.Threshold,
	}
	if q.Empty() {
		return sug
	}

	sug.Matches = s.Matches(q)
	results := make([]models.MatchResult, len(sug.Matches))
	for i, m := range sug.Matches {
		results[i] = m.MatchResult
	}

	if s.policy.ShouldUseDatabaseMatches(results) {
		sug.UsedDatabase = true
		s.logger.Info("Top match %q scored %.2f, using database", results[0].RecipeTitle, results[0].Score)
		return sug
	}

	s.logger.Info("Database matches were weak (%d results), asking generator", len(results))
	text, err := s.generate(ctx, q)
	if err != nil {
		s.logger.Error("Recipe generation failed: %v", err)
		sug.Generated = AIErrorPrefix + err.Error()
		sug.GenerationFailed = true
		return sug
	}
	sug.Generated = text
	return sug
}

func (s *Service) generate(ctx context.Context, q *ingredient.Query) (string, error) {
	if s.generator == nil {
		return "", ErrGeneratorUnavailable
	}

	key := q.Set().Key()
	if s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			s.logger.Debug("Generated recipe cache hit for %s", key)
			return text, nil
		}
	}

	raw := q.Raw()
	text, err := s.generator.GenerateRecipe(ctx, raw)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		var model string
		if m, ok := s.generator.(modelNamer); ok {
			model = m.Model()
		}
		if err := s.cache.Put(key, raw, model, text); err != nil {
			s.logger.Warn("Failed to cache generated recipe: %v", err)
		}
	}
	return text, nil
}
