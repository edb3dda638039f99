package match

import "github.com/korjavin/fridgechef/pkg/models"

// Policy decides between showing database matches and asking for a
// generated recipe. Each surface configures its own threshold.
type Policy struct {
	Threshold float64
}

// ShouldUseDatabaseMatches reports whether the top result scores strictly
// above the threshold. Results must be ranked, as FindMatches returns them.
func (p Policy) ShouldUseDatabaseMatches(results []models.MatchResult) bool {
	return len(results) > 0 && results[0].Score > p.Threshold
}

// Scored is anything carrying a match score
type Scored interface {
	MatchScore() float64
}

// DisplayFilter keeps the results scoring strictly above minScore, in order
func DisplayFilter[T Scored](results []T, minScore float64) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.MatchScore() > minScore {
			out = append(out, r)
		}
	}
	return out
}
