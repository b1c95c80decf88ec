// Package score converts an evidence bundle into a 0-100 match score with
// explanation. The algorithm is deterministic: the same bundle and
// requirement set always produce the same ScoredCandidate.
package score

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
)

// Weights are the per-source trust multipliers for skill evidence. Interview
// evaluations count 2.5x a CV-only claim for the same competency; the values
// are passed explicitly so tests can substitute them.
type Weights struct {
	CV         float64
	Evaluation float64
}

func DefaultWeights() Weights {
	return Weights{CV: 1.0, Evaluation: 2.5}
}

// Point budget per component. Nice-to-have stays a bounded bonus (at most
// 20% of the total) and never compensates for a missing must-have.
const (
	coveragePoints   = 70.0
	nicePoints       = 20.0
	recencyPoints    = 5.0
	adjustmentPoints = 25.0

	// minEvaluationSignal keeps an evaluation from cancelling out: when the
	// technical score nearly offsets the verdict, the blended signal snaps
	// to this magnitude in the verdict's direction.
	minEvaluationSignal = 0.1

	// neutralCoverage replaces the coverage term when the requirement set
	// has no must-have skills (pure-similarity matching); candidates are
	// then separated by evaluations alone.
	neutralCoverage = 35.0

	// strongBandFloor caps candidates missing any must-have skill below the
	// strong band, regardless of other evidence.
	strongBandFloor = 80

	// maxDisplayedConcerns bounds the concern pass-through in the summary
	// view; the stored evaluation keeps the full list.
	maxDisplayedConcerns = 3
)

// recommendationBase maps the interviewer verdict to a signed adjustment in
// [-1, 1]. Evaluations always move the score once present.
var recommendationBase = map[model.Recommendation]float64{
	model.StrongHire: 1.0,
	model.Hire:       0.6,
	model.WeakHire:   -0.2,
	model.NoHire:     -1.0,
}

type Scorer struct {
	weights Weights
	year    int
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w, year: time.Now().UTC().Year()}
}

// Score reconciles the bundle's skill claims against the requirement set
// and combines skill coverage, experience recency and the evaluation
// adjustment into one integer score plus the derived label, confidence
// band, strengths and risks.
func (s *Scorer) Score(bundle model.EvidenceBundle, reqs model.RequirementSet) model.ScoredCandidate {
	type counts struct{ cv, eval int }
	claims := make(map[string]counts, len(bundle.Claims))
	for _, c := range bundle.Claims {
		cnt := claims[c.Skill]
		if c.Source == model.SourceEvaluation {
			cnt.eval++
		} else {
			cnt.cv++
		}
		claims[c.Skill] = cnt
	}

	// Skill coverage: contributions from both sources are summed, then the
	// reconciled weight saturates at full credit per skill.
	credit := func(skill string) float64 {
		cnt := claims[skill]
		raw := float64(cnt.cv)*s.weights.CV + float64(cnt.eval)*s.weights.Evaluation
		return math.Min(1.0, raw)
	}

	var coverage float64
	var matchedMust, missingMust []string
	if len(reqs.MustHave) > 0 {
		var sum float64
		for _, skill := range reqs.MustHave {
			c := credit(skill)
			sum += c
			if c > 0 {
				matchedMust = append(matchedMust, skill)
			} else {
				missingMust = append(missingMust, skill)
			}
		}
		coverage = sum / float64(len(reqs.MustHave)) * coveragePoints
	} else {
		coverage = neutralCoverage
	}

	var niceBonus float64
	if len(reqs.NiceToHave) > 0 {
		var sum float64
		for _, skill := range reqs.NiceToHave {
			sum += credit(skill)
		}
		niceBonus = sum / float64(len(reqs.NiceToHave)) * nicePoints
	}

	var recency float64
	if bundle.HasExperience {
		recency = s.recencyCredit(bundle.LatestExperience.Duration) * recencyPoints
	}

	adjustment := s.evaluationAdjustment(bundle.Evaluations)

	raw := coverage + niceBonus + recency + adjustment
	matchScore := int(math.Round(math.Max(0, math.Min(100, raw))))
	if len(missingMust) > 0 && matchScore >= strongBandFloor {
		matchScore = strongBandFloor - 1
	}

	label, confidence := Band(matchScore)

	return model.ScoredCandidate{
		CandidateID:   bundle.CandidateID,
		Name:          bundle.Name,
		MatchScore:    matchScore,
		Label:         label,
		Confidence:    confidence,
		Strengths:     s.strengths(matchedMust, bundle.Evaluations),
		Risks:         s.risks(missingMust, bundle.Evaluations),
		HasEvaluation: len(bundle.Evaluations) > 0,
	}
}

// evaluationAdjustment derives the signed adjustment from every evaluation
// on record, modulated by the technical score when assessed, scaled by the
// evaluation weight relative to the combined signal.
func (s *Scorer) evaluationAdjustment(evaluations []model.Evaluation) float64 {
	if len(evaluations) == 0 {
		return 0
	}

	var sum float64
	for _, ev := range evaluations {
		base := recommendationBase[ev.Recommendation]
		blended := base
		if ev.Technical.Score > 0 {
			blended = 0.7*base + 0.3*(ev.Technical.Score-5)/5
			// A near-cancelling technical score resolves toward the
			// verdict instead of muting the evaluation.
			if math.Abs(blended) < minEvaluationSignal {
				blended = math.Copysign(minEvaluationSignal, base)
			}
		}
		sum += blended
	}
	avg := sum / float64(len(evaluations))

	factor := s.weights.Evaluation / (s.weights.CV + s.weights.Evaluation)
	return avg * adjustmentPoints * factor
}

var (
	currentRoleMarkers = []string{"present", "now", "current", "today"}
	yearPattern        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// recencyCredit maps the latest experience duration to [0, 1]. Duration is
// free text; a malformed one contributes zero, never an error.
func (s *Scorer) recencyCredit(duration string) float64 {
	lower := strings.ToLower(duration)
	for _, marker := range currentRoleMarkers {
		if strings.Contains(lower, marker) {
			return 1.0
		}
	}

	years := yearPattern.FindAllString(duration, -1)
	if len(years) == 0 {
		return 0
	}
	end, err := strconv.Atoi(years[len(years)-1])
	if err != nil {
		return 0
	}

	switch gap := s.year - end; {
	case gap <= 1:
		return 1.0
	case gap <= 3:
		return 0.6
	case gap <= 5:
		return 0.2
	default:
		return 0
	}
}

func (s *Scorer) strengths(matchedMust []string, evaluations []model.Evaluation) []string {
	var out []string
	for _, skill := range matchedMust {
		out = append(out, fmt.Sprintf("has must-have skill: %s", skill))
	}
	for _, ev := range evaluations {
		if ev.Recommendation == model.StrongHire || ev.Recommendation == model.Hire {
			out = append(out, fmt.Sprintf("interview recommendation: %s", ev.Recommendation))
		}
		if ev.Technical.Score >= 8 {
			out = append(out, fmt.Sprintf("strong technical interview: %.1f/10", ev.Technical.Score))
		}
	}
	return dedupe(out)
}

func (s *Scorer) risks(missingMust []string, evaluations []model.Evaluation) []string {
	var out []string
	for _, skill := range missingMust {
		out = append(out, fmt.Sprintf("missing must-have skill: %s", skill))
	}
	for _, ev := range evaluations {
		if ev.Recommendation == model.WeakHire || ev.Recommendation == model.NoHire {
			out = append(out, fmt.Sprintf("interview recommendation: %s", ev.Recommendation))
		}
	}

	// Interviewer concerns pass through verbatim, capped for the summary
	// view only.
	concerns := 0
	for _, ev := range evaluations {
		for _, c := range ev.KeyConcerns {
			if concerns >= maxDisplayedConcerns {
				break
			}
			out = append(out, c)
			concerns++
		}
	}
	return dedupe(out)
}

// Band maps a score onto the user-facing legend.
func Band(score int) (label, confidence string) {
	switch {
	case score >= 80:
		return model.LabelStrongMatch, model.ConfidenceHigh
	case score >= 60:
		return model.LabelGoodMatch, model.ConfidenceMedium
	default:
		return model.LabelPartialMatch, model.ConfidenceLow
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
