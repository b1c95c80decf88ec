// Package server exposes the HR matching engine over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
)

type Server struct {
	HR     *core.Service
	Logger *zap.Logger
}

func NewServer(svc *core.Service, logger *zap.Logger) *Server {
	return &Server{HR: svc, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	hr := r.Group("/hr")
	{
		hr.POST("/candidates", s.UploadCandidate)
		hr.GET("/candidates", s.ListCandidates)
		hr.GET("/candidates/:id", s.GetCandidate)
		hr.DELETE("/candidates/:id", s.DeleteCandidate)
		hr.POST("/candidates/:id/evaluations", s.AddEvaluation)
		hr.GET("/skills", s.ListSkills)
		hr.GET("/skills/search", s.SearchBySkill)
		hr.POST("/jobs/match", s.MatchJob)
	}

	return r
}

// statusFor maps domain errors to HTTP status codes. Anything unmapped is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrBackendUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type UploadCandidateRequest struct {
	CVText     string `json:"cv_text" binding:"required,min=50"`
	SourceFile string `json:"source_file"`
}

func (s *Server) UploadCandidate(c *gin.Context) {
	var req UploadCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cv_text is required and must be at least 50 characters"})
		return
	}

	candidate, err := s.HR.IngestCandidate(c.Request.Context(), req.CVText, req.SourceFile)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"candidate_id": candidate.ID,
		"name":         candidate.PersonalInfo.Name,
		"skills":       candidate.AllSkills(),
	})
}

type candidateSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	SkillCount    int    `json:"skill_count"`
	Experience    int    `json:"experience_entries"`
	HasEvaluation bool   `json:"has_evaluation"`
}

func (s *Server) ListCandidates(c *gin.Context) {
	candidates, err := s.HR.ListCandidates()
	if err != nil {
		s.fail(c, err)
		return
	}

	counts, err := s.HR.EvaluationCounts()
	if err != nil {
		s.fail(c, err)
		return
	}

	summaries := make([]candidateSummary, 0, len(candidates))
	for _, cand := range candidates {
		summaries = append(summaries, candidateSummary{
			ID:            cand.ID,
			Name:          cand.PersonalInfo.Name,
			Email:         cand.PersonalInfo.Email,
			SkillCount:    len(cand.AllSkills()),
			Experience:    len(cand.Experience),
			HasEvaluation: counts[cand.ID] > 0,
		})
	}

	c.JSON(http.StatusOK, gin.H{"candidates": summaries, "total": len(summaries)})
}

func (s *Server) GetCandidate(c *gin.Context) {
	candidate, evaluations, err := s.HR.CandidateDetail(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidate":   candidate,
		"evaluations": evaluations,
	})
}

type AddEvaluationRequest struct {
	Content string `json:"content" binding:"required,min=10"`
}

func (s *Server) AddEvaluation(c *gin.Context) {
	var req AddEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required and must be at least 10 characters"})
		return
	}

	eval, err := s.HR.AddEvaluation(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"evaluation_id":  eval.ID,
		"candidate_id":   eval.CandidateID,
		"recommendation": eval.Recommendation,
		"weighted_score": eval.WeightedScore(),
	})
}

func (s *Server) DeleteCandidate(c *gin.Context) {
	id := c.Param("id")
	if err := s.HR.DeleteCandidate(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) ListSkills(c *gin.Context) {
	skills, err := s.HR.AllSkills(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills, "total": len(skills)})
}

type SkillSearchQuery struct {
	Skill string `form:"skill" binding:"required,min=1"`
	TopK  int    `form:"top_k" binding:"omitempty,min=1,max=50"`
}

func (s *Server) SearchBySkill(c *gin.Context) {
	var q SkillSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skill is required"})
		return
	}

	result, err := s.HR.SearchBySkill(c.Request.Context(), q.Skill, q.TopK)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type MatchJobRequest struct {
	JobDescription string `json:"job_description" binding:"required,min=50"`
	TopK           int    `json:"top_k" binding:"omitempty,min=1,max=50"`
}

func (s *Server) MatchJob(c *gin.Context) {
	var req MatchJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_description is required and must be at least 50 characters"})
		return
	}

	result, err := s.HR.MatchJob(c.Request.Context(), req.JobDescription, req.TopK)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
