package corpus

import (
	"os"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/pkg/errors"
)

// ErrSourceUnavailable is returned when the dataset file cannot be read
var ErrSourceUnavailable = errors.New("recipe dataset unavailable")

// RecipeRepository persists an imported catalogue
type RecipeRepository interface {
	ReplaceAll(recipes []models.Recipe) error
	All() ([]models.Recipe, error)
}

// Loader builds the corpus once at startup
type Loader struct {
	Path     string
	ImageExt string
	// Repository is optional. When set, a freshly read dataset is imported
	// into it and it serves as the source when the dataset file is missing.
	Repository RecipeRepository

	logger *logger.Logger
}

// NewLoader creates a loader for the dataset at path
func NewLoader(path, imageExt string, repo RecipeRepository) *Loader {
	return &Loader{
		Path:       path,
		ImageExt:   imageExt,
		Repository: repo,
		logger:     logger.New("corpus"),
	}
}

// Load returns a non-empty corpus. Any failure along the way degrades to the
// next source and finally to the built-in fallback set; it is never fatal.
func (l *Loader) Load() *Corpus {
	log := l.log()

	log.Info("Looking for dataset at: %s", l.Path)
	recipes, stats, err := l.readDataset()
	switch {
	case err == nil && len(recipes) > 0:
		log.Info("Dataset loaded: %d recipes, %d of %d rows skipped", len(recipes), stats.Skipped, stats.Rows)
		l.importRecipes(recipes)
		return newWithSource(recipes, SourceDataset)
	case err == nil:
		log.Warn("Dataset had no usable recipes (%d rows skipped)", stats.Skipped)
	default:
		log.Warn("Dataset not loaded: %v", err)
	}

	if l.Repository != nil {
		stored, err := l.Repository.All()
		if err != nil {
			log.Warn("Stored recipes not available: %v", err)
		} else if len(stored) > 0 {
			log.Info("Using %d previously imported recipes", len(stored))
			return newWithSource(stored, SourceStore)
		}
	}

	log.Warn("Switching to built-in fallback recipes")
	return newWithSource(Fallback(l.ImageExt), SourceFallback)
}

func (l *Loader) readDataset() ([]models.Recipe, Stats, error) {
	if l.Path == "" {
		return nil, Stats{}, errors.Wrap(ErrSourceUnavailable, "no dataset path configured")
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, Stats{}, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	defer f.Close()

	return ReadCSV(f, l.ImageExt, func(row int, title string, err error) {
		l.log().Debug("Skipping row %d (%q): %v", row, title, err)
	})
}

func (l *Loader) importRecipes(recipes []models.Recipe) {
	if l.Repository == nil {
		return
	}
	if err := l.Repository.ReplaceAll(recipes); err != nil {
		l.log().Error("Failed to import recipes into store: %v", err)
		return
	}
	l.log().Info("Imported %d recipes into store", len(recipes))
}

func (l *Loader) log() *logger.Logger {
	if l.logger == nil {
		l.logger = logger.New("corpus")
	}
	return l.logger
}
