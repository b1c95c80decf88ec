package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
)

func TestRankOrdering(t *testing.T) {
	in := []model.ScoredCandidate{
		{CandidateID: "c1", MatchScore: 55},
		{CandidateID: "c2", MatchScore: 85},
		{CandidateID: "c3", MatchScore: 70},
	}

	out := Rank(in, 10)

	assert.Equal(t, []string{"c2", "c3", "c1"}, ids(out))
}

func TestRankTieBreakEvaluatedFirst(t *testing.T) {
	in := []model.ScoredCandidate{
		{CandidateID: "c1", MatchScore: 70, HasEvaluation: false},
		{CandidateID: "c2", MatchScore: 70, HasEvaluation: true},
	}

	out := Rank(in, 10)
	assert.Equal(t, []string{"c2", "c1"}, ids(out))
}

func TestRankTieBreakByID(t *testing.T) {
	in := []model.ScoredCandidate{
		{CandidateID: "zz", MatchScore: 70, HasEvaluation: true},
		{CandidateID: "aa", MatchScore: 70, HasEvaluation: true},
	}

	out := Rank(in, 10)
	assert.Equal(t, []string{"aa", "zz"}, ids(out))
}

func TestRankTruncatesToTopK(t *testing.T) {
	in := []model.ScoredCandidate{
		{CandidateID: "c1", MatchScore: 90},
		{CandidateID: "c2", MatchScore: 80},
		{CandidateID: "c3", MatchScore: 70},
	}

	out := Rank(in, 2)
	assert.Equal(t, []string{"c1", "c2"}, ids(out))
}

func TestRankTopKLargerThanSet(t *testing.T) {
	in := []model.ScoredCandidate{{CandidateID: "c1", MatchScore: 50}}
	out := Rank(in, 100)
	assert.Len(t, out, 1)
}

func TestRankIsPermutation(t *testing.T) {
	in := []model.ScoredCandidate{
		{CandidateID: "c1", MatchScore: 10},
		{CandidateID: "c2", MatchScore: 99},
		{CandidateID: "c3", MatchScore: 45},
		{CandidateID: "c4", MatchScore: 45, HasEvaluation: true},
	}

	out := Rank(in, len(in))
	assert.ElementsMatch(t, ids(in), ids(out))
	// Input order untouched.
	assert.Equal(t, "c1", in[0].CandidateID)
}

func ids(cands []model.ScoredCandidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.CandidateID
	}
	return out
}
