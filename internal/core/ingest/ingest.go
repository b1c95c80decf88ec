// Package ingest turns raw CV text and interview notes into validated
// domain records via LLM extraction. Shape validation happens here, at the
// boundary, so the scorer never sees malformed evidence.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/common"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
	"github.com/trongvanphan/pocHR-LightRAG/internal/llm"
)

// MinCVLength rejects CV text too short to carry a profile.
const MinCVLength = 50

// MinEvaluationLength rejects interview notes too short to parse.
const MinEvaluationLength = 10

type Extractor struct {
	LLM      llm.LLMClient
	validate *validator.Validate
}

func NewExtractor(client llm.LLMClient) *Extractor {
	return &Extractor{
		LLM:      client,
		validate: validator.New(),
	}
}

// ExtractCandidate parses CV markdown into a Candidate record. Every
// collection field is non-nil after extraction, and skills are deduplicated
// case-insensitively.
func (e *Extractor) ExtractCandidate(ctx context.Context, cvText, sourceFile string) (*model.Candidate, error) {
	if len(strings.TrimSpace(cvText)) < MinCVLength {
		return nil, fmt.Errorf("%w: cv text must be at least %d characters", model.ErrInvalidQuery, MinCVLength)
	}

	response, err := e.LLM.Generate(ctx, fmt.Sprintf(cvExtractionPrompt, cvText))
	if err != nil {
		return nil, fmt.Errorf("failed to extract candidate: %w", err)
	}

	candidate, err := common.ParseJSON[model.Candidate](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse candidate extraction: %w", err)
	}

	if err := e.validate.Struct(candidate.PersonalInfo); err != nil {
		return nil, fmt.Errorf("extracted candidate failed validation: %w", err)
	}

	candidate.ID = uuid.New().String()[:8]
	candidate.SourceFile = sourceFile
	candidate.ExtractedAt = time.Now().UTC().Format(time.RFC3339)
	sanitizeCandidate(&candidate)

	return &candidate, nil
}

// ParseEvaluation parses free-text interview notes into an Evaluation. An
// out-of-enum recommendation is a validation error here, never something
// the scorer has to handle.
func (e *Extractor) ParseEvaluation(ctx context.Context, candidateID, notes string) (*model.Evaluation, error) {
	if len(strings.TrimSpace(notes)) < MinEvaluationLength {
		return nil, fmt.Errorf("%w: evaluation notes must be at least %d characters", model.ErrInvalidQuery, MinEvaluationLength)
	}

	response, err := e.LLM.Generate(ctx, fmt.Sprintf(evaluationPrompt, notes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}

	eval, err := common.ParseJSON[model.Evaluation](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse evaluation extraction: %w", err)
	}

	if _, err := model.ParseRecommendation(string(eval.Recommendation)); err != nil {
		return nil, fmt.Errorf("evaluation failed validation: %w", err)
	}
	if err := e.validate.Struct(eval); err != nil {
		return nil, fmt.Errorf("evaluation failed validation: %w", err)
	}

	eval.ID = uuid.New().String()[:8]
	eval.CandidateID = candidateID
	eval.EvaluatedAt = time.Now().UTC().Format(time.RFC3339)
	if eval.KeyConcerns == nil {
		eval.KeyConcerns = []string{}
	}

	return &eval, nil
}

// sanitizeCandidate enforces the empty-never-nil contract and deduplicates
// skill lists case-insensitively while keeping the CV's own casing.
func sanitizeCandidate(c *model.Candidate) {
	c.Skills.Technical = dedupeSkills(c.Skills.Technical)
	c.Skills.Soft = dedupeSkills(c.Skills.Soft)
	if c.Skills.Languages == nil {
		c.Skills.Languages = []string{}
	}
	if c.Experience == nil {
		c.Experience = []model.ExperienceEntry{}
	}
	for i := range c.Experience {
		if c.Experience[i].Responsibilities == nil {
			c.Experience[i].Responsibilities = []string{}
		}
		if c.Experience[i].Achievements == nil {
			c.Experience[i].Achievements = []string{}
		}
	}
	if c.Education == nil {
		c.Education = []model.Education{}
	}
	if c.Certifications == nil {
		c.Certifications = []model.Certification{}
	}
	if c.Projects == nil {
		c.Projects = []model.Project{}
	}
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := normalize.Key(s)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
