// Package app wires configuration, storage, the recipe corpus and the
// collaborator client into the services each binary runs.
package app

import (
	"context"
	"time"

	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/corpus"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/openai"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/pkg/errors"
)

// Runtime holds the shared pieces of a running binary
type Runtime struct {
	Config *config.Config
	Store  *storage.Store
	Corpus *corpus.Corpus
	OpenAI *openai.Client
	Logger *logger.Logger
}

// New sets up logging, opens storage and loads the corpus. An empty DataDir
// keeps everything in memory.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	log, err := logger.NewWithLevel(cfg.LogLevel, cfg.Production())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	logger.SetGlobal(log)

	var store *storage.Store
	if cfg.DataDir == "" {
		store, err = storage.NewInMemory()
	} else {
		store, err = storage.New(cfg.DataDir)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize storage")
	}
	if cfg.DataDir != "" {
		store.StartGCRoutine(ctx, 10*time.Minute)
	}

	loader := corpus.NewLoader(cfg.DatasetPath, cfg.ImageExtension, storage.NewRecipeStore(store))
	c := loader.Load()
	log.Info("Corpus ready: %d recipes from %s", c.Len(), c.Source())

	rt := &Runtime{
		Config: cfg,
		Store:  store,
		Corpus: c,
		Logger: log,
	}
	if cfg.GenerationEnabled() {
		rt.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel,
			openai.WithVisionModel(cfg.OpenAIVisionModel),
			openai.WithTimeouts(cfg.GenerateTimeout, 0),
		)
	} else {
		log.Warn("OPENAI_API_KEY is not set, recipe generation and photo detection are disabled")
	}
	return rt, nil
}

// Chef builds a suggestion service with the given fallback threshold
func (r *Runtime) Chef(threshold float64, channel string) *chef.Service {
	var gen chef.Generator
	if r.OpenAI != nil {
		gen = r.OpenAI
	}
	return chef.New(r.Corpus, match.NewEngine(r.Config.MatchLimit), match.Policy{Threshold: threshold}, gen,
		chef.WithCache(storage.NewGeneratedCache(r.Store, r.Config.GeneratedCacheTTL)),
		chef.WithLogger(r.Logger.WithChannel(channel)),
	)
}

// Close flushes logs and closes storage
func (r *Runtime) Close() {
	if err := r.Store.Close(); err != nil {
		r.Logger.Error("Failed to close storage: %v", err)
	}
	r.Logger.Sync()
}
