// Package rank orders scored candidates for the final response.
package rank

import (
	"sort"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
)

// Rank sorts by score descending, breaking ties by presence of an
// evaluation (evaluated candidates rank above unevaluated at equal score)
// and then by candidate id for full determinism, and truncates to topK. A
// topK larger than the set returns everything.
func Rank(candidates []model.ScoredCandidate, topK int) []model.ScoredCandidate {
	out := make([]model.ScoredCandidate, len(candidates))
	copy(out, candidates)

	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		if out[i].HasEvaluation != out[j].HasEvaluation {
			return out[i].HasEvaluation
		}
		return out[i].CandidateID < out[j].CandidateID
	})

	if topK > 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}
