package model

import "fmt"

// Recommendation is the interviewer's overall verdict. Anything outside the
// four values is rejected at the ingestion boundary.
type Recommendation string

const (
	StrongHire Recommendation = "strong_hire"
	Hire       Recommendation = "hire"
	WeakHire   Recommendation = "weak_hire"
	NoHire     Recommendation = "no_hire"
)

func ParseRecommendation(s string) (Recommendation, error) {
	switch Recommendation(s) {
	case StrongHire, Hire, WeakHire, NoHire:
		return Recommendation(s), nil
	}
	return "", fmt.Errorf("invalid recommendation %q", s)
}

type Interviewer struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type TechnicalAssessment struct {
	Score      float64  `json:"score" validate:"gte=0,lte=10"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Notes      string   `json:"notes"`
}

// SoftSkills holds the 0-10 sub-scores. A zero value means the interviewer
// did not assess that dimension.
type SoftSkills struct {
	Communication  float64 `json:"communication" validate:"gte=0,lte=10"`
	Teamwork       float64 `json:"teamwork" validate:"gte=0,lte=10"`
	ProblemSolving float64 `json:"problem_solving" validate:"gte=0,lte=10"`
	Leadership     float64 `json:"leadership" validate:"gte=0,lte=10"`
	Adaptability   float64 `json:"adaptability" validate:"gte=0,lte=10"`
	Notes          string  `json:"notes"`
}

// Scores returns the assessed sub-scores, skipping unset dimensions.
func (s SoftSkills) Scores() []float64 {
	var out []float64
	for _, v := range []float64{s.Communication, s.Teamwork, s.ProblemSolving, s.Leadership, s.Adaptability} {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

type CulturalFit struct {
	Score float64 `json:"score" validate:"gte=0,lte=10"`
	Notes string  `json:"notes"`
}

// Evaluation is one submitted interview assessment. Evaluations are
// immutable; a correction is a new Evaluation with a later timestamp.
type Evaluation struct {
	ID               string              `json:"id"`
	CandidateID      string              `json:"candidate_id"`
	Interviewer      Interviewer         `json:"interviewer"`
	Technical        TechnicalAssessment `json:"technical_assessment"`
	SoftSkills       SoftSkills          `json:"soft_skills_assessment"`
	CulturalFit      CulturalFit         `json:"cultural_fit"`
	Recommendation   Recommendation      `json:"overall_recommendation" validate:"required,oneof=strong_hire hire weak_hire no_hire"`
	RecommendedLevel string              `json:"recommended_level"`
	KeyConcerns      []string            `json:"key_concerns"`
	EvaluatedAt      string              `json:"evaluated_at"`
}

// WeightedScore averages the assessed components (technical, soft skill
// mean, cultural fit) and scales to 0-100 with one decimal.
func (e *Evaluation) WeightedScore() float64 {
	var scores []float64

	if e.Technical.Score > 0 {
		scores = append(scores, e.Technical.Score)
	}

	if soft := e.SoftSkills.Scores(); len(soft) > 0 {
		var sum float64
		for _, v := range soft {
			sum += v
		}
		scores = append(scores, sum/float64(len(soft)))
	}

	if e.CulturalFit.Score > 0 {
		scores = append(scores, e.CulturalFit.Score)
	}

	if len(scores) == 0 {
		return 0
	}

	var sum float64
	for _, v := range scores {
		sum += v
	}
	avg := sum / float64(len(scores)) * 10
	return float64(int(avg*10+0.5)) / 10
}
