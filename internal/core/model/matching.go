package model

// RequirementSet is the structured output of job-description analysis.
// MustHave and NiceToHave are normalized, disjoint skill lists; zero
// requirements is a valid set and degrades matching to pure similarity.
type RequirementSet struct {
	JobTitle   string   `json:"job_title,omitempty"`
	Level      string   `json:"level,omitempty"`
	MustHave   []string `json:"must_have"`
	NiceToHave []string `json:"nice_to_have"`
	MinYears   int      `json:"min_years,omitempty"`
}

func (r RequirementSet) Empty() bool {
	return len(r.MustHave) == 0 && len(r.NiceToHave) == 0
}

// Terms returns every requirement skill, must-haves first.
func (r RequirementSet) Terms() []string {
	out := make([]string, 0, len(r.MustHave)+len(r.NiceToHave))
	out = append(out, r.MustHave...)
	out = append(out, r.NiceToHave...)
	return out
}

// ClaimSource tags where a skill claim came from. Evaluation-sourced claims
// carry the higher trust weight.
type ClaimSource string

const (
	SourceCV         ClaimSource = "cv"
	SourceEvaluation ClaimSource = "evaluation"
)

// SkillClaim is one piece of evidence that a candidate has a skill. Claims
// for the same skill from different sources are reconciled by the scorer,
// never deduplicated away.
type SkillClaim struct {
	Skill  string      `json:"skill"`
	Source ClaimSource `json:"source"`
}

// EvidenceBundle is everything the scorer sees for one candidate. Empty
// collections mean absent evidence; fields are never nil maps of surprises.
type EvidenceBundle struct {
	CandidateID      string
	Name             string
	Claims           []SkillClaim
	LatestExperience ExperienceEntry
	HasExperience    bool
	Evaluations      []Evaluation
}

// Match labels and confidence bands. The score thresholds are the
// user-facing legend: >=80 strong/high, 60-79 good/medium, <60 partial/low.
const (
	LabelStrongMatch  = "strong_match"
	LabelGoodMatch    = "good_match"
	LabelPartialMatch = "partial_match"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScoredCandidate is the per-query scoring result. Never persisted.
type ScoredCandidate struct {
	CandidateID   string   `json:"candidate_id"`
	Name          string   `json:"name"`
	MatchScore    int      `json:"match_score"`
	Label         string   `json:"recommendation"`
	Confidence    string   `json:"hiring_confidence"`
	Strengths     []string `json:"strengths"`
	Risks         []string `json:"risks"`
	HasEvaluation bool     `json:"has_evaluation"`
}

// SkillSearchResult is the response of a skill query.
type SkillSearchResult struct {
	Skill           string            `json:"skill"`
	Candidates      []ScoredCandidate `json:"candidates"`
	TotalConsidered int               `json:"total_considered"`
	Partial         bool              `json:"partial"`
}

// JobMatchResult is the response of a job-description query, carrying the
// requirement summary shown to the caller.
type JobMatchResult struct {
	JobTitle        string            `json:"job_title,omitempty"`
	Level           string            `json:"level,omitempty"`
	Requirements    RequirementSet    `json:"requirements"`
	Candidates      []ScoredCandidate `json:"candidates"`
	TotalConsidered int               `json:"total_considered"`
	Partial         bool              `json:"partial"`
}
