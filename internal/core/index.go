package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
	"github.com/trongvanphan/pocHR-LightRAG/internal/driver"
)

// indexCandidate mirrors the candidate into the graph: a Candidate node
// with its summary embedding, plus Skill/Company/Role entity nodes keyed by
// normalized name for the entity retrieval path.
func (s *Service) indexCandidate(ctx context.Context, c *model.Candidate) error {
	now := time.Now().UTC().Format(time.RFC3339)

	var summaryEmbedding []float32
	if s.Embedder != nil {
		vec, err := s.Embedder.Embed(ctx, BuildCandidateSummary(c))
		if err != nil {
			s.Logger.Warn("failed to embed candidate summary",
				zap.String("candidate_id", c.ID), zap.Error(err))
		} else {
			summaryEmbedding = vec
		}
	}

	params := map[string]interface{}{
		"uuid":              c.ID,
		"name":              c.PersonalInfo.Name,
		"summary":           c.Summary,
		"extracted_at":      c.ExtractedAt,
		"summary_embedding": summaryEmbedding,
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveCandidateNodeQuery, params); err != nil {
		return fmt.Errorf("failed to save candidate node: %w", err)
	}

	for _, skill := range c.AllSkills() {
		key := normalize.Key(skill)
		if key == "" {
			continue
		}
		edgeParams := map[string]interface{}{
			"candidate_uuid": c.ID,
			"key":            key,
			"name":           skill,
			"source":         string(model.SourceCV),
			"created_at":     now,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveSkillEdgeQuery, edgeParams); err != nil {
			s.Logger.Warn("failed to link skill",
				zap.String("candidate_id", c.ID), zap.String("skill", key), zap.Error(err))
		}
	}

	for i, exp := range c.Experience {
		if key := normalize.Key(exp.Company); key != "" {
			edgeParams := map[string]interface{}{
				"candidate_uuid": c.ID,
				"key":            key,
				"name":           exp.Company,
				"role":           exp.Role,
				"duration":       exp.Duration,
				"position":       i,
				"created_at":     now,
			}
			if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveCompanyEdgeQuery, edgeParams); err != nil {
				s.Logger.Warn("failed to link company",
					zap.String("candidate_id", c.ID), zap.String("company", key), zap.Error(err))
			}
		}

		if key := normalize.Key(exp.Role); key != "" {
			edgeParams := map[string]interface{}{
				"candidate_uuid": c.ID,
				"key":            key,
				"name":           exp.Role,
				"position":       i,
				"created_at":     now,
			}
			if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveRoleEdgeQuery, edgeParams); err != nil {
				s.Logger.Warn("failed to link role",
					zap.String("candidate_id", c.ID), zap.String("role", key), zap.Error(err))
			}
		}
	}

	return nil
}

// indexEvaluation records the evaluation node and upgrades validated
// skills with evaluation-sourced edges.
func (s *Service) indexEvaluation(ctx context.Context, e *model.Evaluation) error {
	now := time.Now().UTC().Format(time.RFC3339)

	params := map[string]interface{}{
		"uuid":            e.ID,
		"candidate_uuid":  e.CandidateID,
		"recommendation":  string(e.Recommendation),
		"technical_score": e.Technical.Score,
		"weighted_score":  e.WeightedScore(),
		"created_at":      e.EvaluatedAt,
	}
	if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveEvaluationNodeQuery, params); err != nil {
		return fmt.Errorf("failed to save evaluation node: %w", err)
	}

	for _, skill := range e.Technical.Strengths {
		key := normalize.Key(skill)
		if key == "" {
			continue
		}
		edgeParams := map[string]interface{}{
			"candidate_uuid": e.CandidateID,
			"key":            key,
			"name":           skill,
			"source":         string(model.SourceEvaluation),
			"created_at":     now,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, driver.SaveSkillEdgeQuery, edgeParams); err != nil {
			s.Logger.Warn("failed to link evaluated skill",
				zap.String("candidate_id", e.CandidateID), zap.String("skill", key), zap.Error(err))
		}
	}

	return nil
}
