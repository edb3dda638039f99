package stats

import (
	"testing"

	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func dbSuggestion(title string, score float64) chef.Suggestion {
	return chef.Suggestion{
		Query:        []string{"egg"},
		UsedDatabase: true,
		Matches:      []chef.MatchView{{MatchResult: models.MatchResult{RecipeTitle: title, Score: score}}},
	}
}

func TestService_Record(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.Record(1, dbSuggestion("Eggs", 0.75)))
	require.NoError(t, s.Record(1, dbSuggestion("Eggs", 0.5)))
	require.NoError(t, s.Record(1, dbSuggestion("Potatoes", 0.6)))
	require.NoError(t, s.Record(1, chef.Suggestion{Query: []string{"rice"}, Generated: "Title: Rice"}))
	require.NoError(t, s.Record(1, chef.Suggestion{Query: []string{"rice"}, GenerationFailed: true}))
	require.NoError(t, s.Record(1, chef.Suggestion{}))

	st, err := s.GetStatistics(1)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Suggestions)
	assert.Equal(t, 3, st.DatabaseHits)
	assert.Equal(t, 1, st.Generated)
	assert.Equal(t, 1, st.GenerationFailures)

	top, err := s.GetTopRecipes(1, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, models.RecipeStat{Title: "Eggs", TopCount: 2, BestScore: 0.75}, top[0])
}

func TestService_EmptyChat(t *testing.T) {
	s := newService(t)

	st, err := s.GetStatistics(42)
	require.NoError(t, err)
	assert.Zero(t, st.Suggestions)

	top, err := s.GetTopRecipes(42, 3)
	require.NoError(t, err)
	assert.Empty(t, top)
}
