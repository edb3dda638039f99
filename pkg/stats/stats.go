package stats

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Service provides statistics functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
	mu     sync.Mutex
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
	}
}

func statsKey(channelID int64) string {
	return fmt.Sprintf("stats:%d", channelID)
}

// GetStatistics retrieves the statistics for a channel
func (s *Service) GetStatistics(channelID int64) (*models.Statistics, error) {
	var st models.Statistics
	err := s.store.Get(statsKey(channelID), &st)
	if err != nil {
		if !storage.IsNotFound(err) {
			return nil, fmt.Errorf("failed to read statistics: %w", err)
		}
		st = models.Statistics{ChannelID: channelID}
	}
	if st.RecipeStats == nil {
		st.RecipeStats = make(map[string]models.RecipeStat)
	}
	return &st, nil
}

// Record counts one served suggestion. Empty requests are not counted.
func (s *Service) Record(channelID int64, sug chef.Suggestion) error {
	if sug.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.GetStatistics(channelID)
	if err != nil {
		return err
	}

	st.Suggestions++
	st.LastSuggestedAt = time.Now()
	switch {
	case sug.UsedDatabase:
		st.DatabaseHits++
		top := sug.Matches[0]
		rs := st.RecipeStats[top.RecipeTitle]
		rs.Title = top.RecipeTitle
		rs.TopCount++
		if top.Score > rs.BestScore {
			rs.BestScore = top.Score
		}
		st.RecipeStats[top.RecipeTitle] = rs
	case sug.GenerationFailed:
		st.GenerationFailures++
	default:
		st.Generated++
	}

	return s.store.Set(statsKey(channelID), st)
}

// GetTopRecipes returns the recipes suggested most often, best score first on ties
func (s *Service) GetTopRecipes(channelID int64, limit int) ([]models.RecipeStat, error) {
	st, err := s.GetStatistics(channelID)
	if err != nil {
		return nil, err
	}

	recipes := make([]models.RecipeStat, 0, len(st.RecipeStats))
	for _, rs := range st.RecipeStats {
		recipes = append(recipes, rs)
	}

	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].TopCount != recipes[j].TopCount {
			return recipes[i].TopCount > recipes[j].TopCount
		}
		if recipes[i].BestScore != recipes[j].BestScore {
			return recipes[i].BestScore > recipes[j].BestScore
		}
		return recipes[i].Title < recipes[j].Title
	})

	if len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}
