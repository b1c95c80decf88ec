// Package core wires the HR matching engine together: ingestion, graph
// indexing, hybrid retrieval, evidence aggregation, scoring and ranking.
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trongvanphan/pocHR-LightRAG/internal/config"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/evidence"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/ingest"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/rank"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/requirements"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/retrieval"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/score"
	"github.com/trongvanphan/pocHR-LightRAG/internal/driver"
	"github.com/trongvanphan/pocHR-LightRAG/internal/llm"
)

// RecordStore is the persistence boundary the service needs. *store.Store
// satisfies it.
type RecordStore interface {
	PutCandidate(c *model.Candidate) error
	GetCandidate(id string) (*model.Candidate, error)
	ListCandidates() ([]model.Candidate, error)
	DeleteCandidate(id string) error
	AppendEvaluation(e *model.Evaluation) error
	ListEvaluations(candidateID string) ([]model.Evaluation, error)
	EvaluationCounts() (map[string]int, error)
	AllSkills() ([]string, error)
}

type Service struct {
	Driver       driver.GraphDriver
	LLM          llm.LLMClient
	Embedder     llm.EmbedderClient
	Store        RecordStore
	Extractor    *ingest.Extractor
	Requirements requirements.Extractor
	Retriever    *retrieval.Retriever
	Scorer       *score.Scorer
	Logger       *zap.Logger

	defaultTopK    int
	scoringWorkers int
}

func NewService(d driver.GraphDriver, llmClient llm.LLMClient, embedder llm.EmbedderClient, st RecordStore, logger *zap.Logger, cfg *config.Config) *Service {
	var reqExtractor requirements.Extractor
	if llmClient != nil {
		reqExtractor = requirements.NewLLMExtractor(llmClient)
	} else {
		reqExtractor = requirements.NewKeywordExtractor()
	}

	return &Service{
		Driver:       d,
		LLM:          llmClient,
		Embedder:     embedder,
		Store:        st,
		Extractor:    ingest.NewExtractor(llmClient),
		Requirements: reqExtractor,
		Retriever:    retrieval.New(d, embedder, logger),
		Scorer: score.NewScorer(score.Weights{
			CV:         cfg.Matching.CVWeight,
			Evaluation: cfg.Matching.EvaluationWeight,
		}),
		Logger:         logger,
		defaultTopK:    cfg.Matching.DefaultTopK,
		scoringWorkers: cfg.Concurrency.ScoringWorkers,
	}
}

func (s *Service) BuildIndices(ctx context.Context) error {
	return s.Driver.BuildIndices(ctx)
}

// IngestCandidate extracts a structured record from CV text, persists it
// and indexes it into the graph. Indexing failure does not block the
// ingest; the record store remains authoritative.
func (s *Service) IngestCandidate(ctx context.Context, cvText, sourceFile string) (*model.Candidate, error) {
	candidate, err := s.Extractor.ExtractCandidate(ctx, cvText, sourceFile)
	if err != nil {
		return nil, err
	}

	if err := s.Store.PutCandidate(candidate); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}

	if err := s.indexCandidate(ctx, candidate); err != nil {
		s.Logger.Warn("failed to index candidate to graph",
			zap.String("candidate_id", candidate.ID), zap.Error(err))
	}

	s.Logger.Info("candidate ingested",
		zap.String("candidate_id", candidate.ID),
		zap.String("name", candidate.PersonalInfo.Name))
	return candidate, nil
}

// AddEvaluation parses interview notes into a structured evaluation for an
// existing candidate and appends it. Evaluations are immutable once
// stored.
func (s *Service) AddEvaluation(ctx context.Context, candidateID, notes string) (*model.Evaluation, error) {
	if _, err := s.Store.GetCandidate(candidateID); err != nil {
		return nil, err
	}

	eval, err := s.Extractor.ParseEvaluation(ctx, candidateID, notes)
	if err != nil {
		return nil, err
	}

	if err := s.Store.AppendEvaluation(eval); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	if err := s.indexEvaluation(ctx, eval); err != nil {
		s.Logger.Warn("failed to index evaluation to graph",
			zap.String("evaluation_id", eval.ID), zap.Error(err))
	}

	s.Logger.Info("evaluation added",
		zap.String("candidate_id", candidateID),
		zap.String("evaluation_id", eval.ID),
		zap.String("recommendation", string(eval.Recommendation)))
	return eval, nil
}

// CandidateDetail returns the stored record with all its evaluations.
func (s *Service) CandidateDetail(id string) (*model.Candidate, []model.Evaluation, error) {
	candidate, err := s.Store.GetCandidate(id)
	if err != nil {
		return nil, nil, err
	}
	evals, err := s.Store.ListEvaluations(id)
	if err != nil {
		return nil, nil, err
	}
	return candidate, evals, nil
}

func (s *Service) ListCandidates() ([]model.Candidate, error) {
	return s.Store.ListCandidates()
}

func (s *Service) EvaluationCounts() (map[string]int, error) {
	return s.Store.EvaluationCounts()
}

// DeleteCandidate removes the record from both stores. The record store is
// authoritative; a failed graph cleanup is logged and the delete stands.
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	if err := s.Store.DeleteCandidate(id); err != nil {
		return err
	}

	params := map[string]interface{}{"uuid": id}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.DeleteCandidateQuery, params); err != nil {
		s.Logger.Warn("failed to remove candidate from graph",
			zap.String("candidate_id", id), zap.Error(err))
	}

	s.Logger.Info("candidate deleted", zap.String("candidate_id", id))
	return nil
}

// AllSkills unions the record store's CV skills with the graph's skill
// nodes, which also carry interview-validated skills. A graph failure
// degrades to the store list.
func (s *Service) AllSkills(ctx context.Context) ([]string, error) {
	skills, err := s.Store.AllSkills()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(skills))
	for _, k := range skills {
		set[k] = struct{}{}
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.AllSkillsQuery, nil)
	if err != nil {
		s.Logger.Warn("graph skill listing failed, serving store skills only", zap.Error(err))
	} else {
		for _, rec := range result.Records {
			name, ok := rec.Get("name")
			if !ok {
				continue
			}
			str, ok := name.(string)
			if !ok {
				continue
			}
			if key := normalize.Key(str); key != "" {
				set[key] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// SearchBySkill ranks candidates for a single skill query. The skill acts
// as an implicit one-element must-have set.
func (s *Service) SearchBySkill(ctx context.Context, skill string, topK int) (*model.SkillSearchResult, error) {
	key := normalize.Key(skill)
	if key == "" {
		return nil, fmt.Errorf("%w: skill must not be empty", model.ErrInvalidQuery)
	}
	topK = s.clampTopK(topK)

	reqs := model.RequirementSet{MustHave: []string{key}}
	queryText := fmt.Sprintf("Candidates with %s skill and related experience", key)

	retrieved, err := s.Retriever.Retrieve(ctx, reqs.MustHave, queryText, topK)
	if err != nil {
		return nil, err
	}

	scored := s.scoreAll(ctx, retrieved.IDs, reqs)

	return &model.SkillSearchResult{
		Skill:           key,
		Candidates:      rank.Rank(scored, topK),
		TotalConsidered: len(retrieved.IDs),
		Partial:         retrieved.Partial,
	}, nil
}

// MatchJob analyzes a job description and ranks candidates against the
// extracted requirement set. Requirement extraction failure degrades to
// keyword spotting and then to an empty set; only invalid queries and
// total retrieval unavailability abort the match.
func (s *Service) MatchJob(ctx context.Context, jobDescription string, topK int) (*model.JobMatchResult, error) {
	if err := requirements.ValidateQuery(jobDescription); err != nil {
		return nil, err
	}
	topK = s.clampTopK(topK)

	reqs, err := s.Requirements.Extract(ctx, jobDescription)
	if err != nil {
		s.Logger.Warn("requirement extraction failed, degrading to keyword spotting", zap.Error(err))
		reqs, err = requirements.NewKeywordExtractor().Extract(ctx, jobDescription)
		if err != nil {
			s.Logger.Warn("keyword extraction failed, matching by similarity only", zap.Error(err))
			reqs = model.RequirementSet{}
		}
	}

	retrieved, err := s.Retriever.Retrieve(ctx, reqs.Terms(), jobDescription, topK)
	if err != nil {
		return nil, err
	}

	scored := s.scoreAll(ctx, retrieved.IDs, reqs)

	return &model.JobMatchResult{
		JobTitle:        reqs.JobTitle,
		Level:           reqs.Level,
		Requirements:    reqs,
		Candidates:      rank.Rank(scored, topK),
		TotalConsidered: len(retrieved.IDs),
		Partial:         retrieved.Partial,
	}, nil
}

// scoreAll aggregates evidence and scores the retrieved candidates
// concurrently. Scoring is a pure function per candidate, so the only
// synchronization point is the join before ranking. Candidates whose
// records cannot be loaded are skipped, not fatal.
func (s *Service) scoreAll(ctx context.Context, ids []string, reqs model.RequirementSet) []model.ScoredCandidate {
	results := make([]*model.ScoredCandidate, len(ids))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.scoringWorkers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			candidate, err := s.Store.GetCandidate(id)
			if err != nil {
				s.Logger.Warn("skipping candidate missing from store",
					zap.String("candidate_id", id), zap.Error(err))
				return nil
			}
			evals, err := s.Store.ListEvaluations(id)
			if err != nil {
				s.Logger.Warn("failed to load evaluations",
					zap.String("candidate_id", id), zap.Error(err))
				evals = nil
			}

			bundle := evidence.Collect(candidate, evals, reqs)
			scored := s.Scorer.Score(bundle, reqs)
			results[i] = &scored
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.ScoredCandidate, 0, len(ids))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (s *Service) clampTopK(topK int) int {
	if topK <= 0 {
		return s.defaultTopK
	}
	return topK
}

// BuildCandidateSummary renders the text that gets embedded for similarity
// search, mirroring the document layout used for graph indexing.
func BuildCandidateSummary(c *model.Candidate) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Candidate: %s", c.PersonalInfo.Name))
	if c.Summary != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", c.Summary))
	}
	if len(c.Skills.Technical) > 0 {
		parts = append(parts, fmt.Sprintf("Technical Skills: %s", strings.Join(c.Skills.Technical, ", ")))
	}
	if len(c.Skills.Soft) > 0 {
		parts = append(parts, fmt.Sprintf("Soft Skills: %s", strings.Join(c.Skills.Soft, ", ")))
	}
	for _, exp := range c.Experience {
		parts = append(parts, fmt.Sprintf("Experience at %s: %s (%s)", exp.Company, exp.Role, exp.Duration))
	}
	for _, edu := range c.Education {
		parts = append(parts, fmt.Sprintf("Education: %s in %s from %s", edu.Degree, edu.Field, edu.Institution))
	}
	for _, cert := range c.Certifications {
		parts = append(parts, fmt.Sprintf("Certification: %s by %s", cert.Name, cert.Issuer))
	}
	return strings.Join(parts, "\n")
}
