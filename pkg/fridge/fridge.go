package fridge

import (
	"sync"
	"time"

	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/pkg/errors"
)

// Service keeps the ingredients each chat has collected
type Service struct {
	pantries *storage.PantryStore
	logger   *logger.Logger
	mu       sync.Mutex
}

// New creates a new fridge service
func New(pantries *storage.PantryStore) *Service {
	return &Service{
		pantries: pantries,
		logger:   logger.New("fridge"),
	}
}

// Query returns the collected ingredients of a chat as a matcher query
func (s *Service) Query(channelID int64) (*ingredient.Query, error) {
	pantry, err := s.pantries.Load(channelID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load pantry %d", channelID)
	}
	return ingredient.FromItems(toItems(pantry.Items)), nil
}

// AddDetected stores labels found on a photo and returns how many were new
func (s *Service) AddDetected(channelID int64, labels []string) (int, error) {
	return s.update(channelID, func(q *ingredient.Query) int {
		before := q.Len()
		q.AddDetected(labels...)
		return q.Len() - before
	})
}

// AddManual stores a comma separated list typed by the user and returns how
// many items were new
func (s *Service) AddManual(channelID int64, text string) (int, error) {
	return s.update(channelID, func(q *ingredient.Query) int {
		return q.AddManualList(text)
	})
}

// RemoveIngredient drops one item, reporting whether it was present
func (s *Service) RemoveIngredient(channelID int64, name string) (bool, error) {
	removed := 0
	_, err := s.update(channelID, func(q *ingredient.Query) int {
		if q.Remove(name) {
			removed = 1
		}
		return removed
	})
	return removed == 1, err
}

// ListIngredients returns the raw items of a chat in the order they were added
func (s *Service) ListIngredients(channelID int64) ([]string, error) {
	q, err := s.Query(channelID)
	if err != nil {
		return nil, err
	}
	return q.Raw(), nil
}

// ResetFridge empties the pantry of a chat
func (s *Service) ResetFridge(channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pantries.Reset(channelID); err != nil {
		return errors.Wrapf(err, "failed to reset pantry %d", channelID)
	}
	s.logger.Info("Pantry %d reset", channelID)
	return nil
}

func (s *Service) update(channelID int64, fn func(q *ingredient.Query) int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pantry, err := s.pantries.Load(channelID)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to load pantry %d", channelID)
	}

	q := ingredient.FromItems(toItems(pantry.Items))
	changed := fn(q)
	if changed == 0 {
		return 0, nil
	}

	added := make(map[string]time.Time, len(pantry.Items))
	for _, it := range pantry.Items {
		added[ingredient.Normalize(it.Name)] = it.AddedAt
	}
	now := time.Now()
	items := q.Items()
	pantry.Items = make([]models.PantryItem, len(items))
	for i, it := range items {
		at, ok := added[ingredient.Normalize(it.Raw)]
		if !ok {
			at = now
		}
		pantry.Items[i] = models.PantryItem{Name: it.Raw, Source: string(it.Source), AddedAt: at}
	}

	if err := s.pantries.Save(pantry); err != nil {
		return 0, errors.Wrapf(err, "failed to save pantry %d", channelID)
	}
	s.logger.Debug("Pantry %d now has %d item(s)", channelID, len(pantry.Items))
	return changed, nil
}

func toItems(stored []models.PantryItem) []ingredient.Item {
	items := make([]ingredient.Item, len(stored))
	for i, it := range stored {
		items[i] = ingredient.Item{Raw: it.Name, Source: ingredient.Source(it.Source)}
	}
	return items
}
