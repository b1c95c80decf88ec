package requirements

import (
	"context"
	"fmt"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/common"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/llm"
)

// jobAnalysisResponse mirrors the JSON shape the job-analysis prompt asks
// for.
type jobAnalysisResponse struct {
	JobTitle       string `json:"job_title"`
	Level          string `json:"level"`
	RequiredSkills struct {
		MustHave   []string `json:"must_have"`
		NiceToHave []string `json:"nice_to_have"`
	} `json:"required_skills"`
	Experience struct {
		MinYears int `json:"min_years"`
	} `json:"experience"`
}

// LLMExtractor analyzes job descriptions with the configured model.
type LLMExtractor struct {
	LLM llm.LLMClient
}

func NewLLMExtractor(client llm.LLMClient) *LLMExtractor {
	return &LLMExtractor{LLM: client}
}

func (e *LLMExtractor) Extract(ctx context.Context, jobDescription string) (model.RequirementSet, error) {
	if err := ValidateQuery(jobDescription); err != nil {
		return model.RequirementSet{}, err
	}

	prompt := fmt.Sprintf(jobAnalysisPrompt, jobDescription)
	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.RequirementSet{}, fmt.Errorf("failed to analyze job description: %w", err)
	}

	parsed, err := common.ParseJSON[jobAnalysisResponse](response)
	if err != nil {
		return model.RequirementSet{}, fmt.Errorf("failed to parse job analysis: %w", err)
	}

	return Sanitize(model.RequirementSet{
		JobTitle:   parsed.JobTitle,
		Level:      parsed.Level,
		MustHave:   parsed.RequiredSkills.MustHave,
		NiceToHave: parsed.RequiredSkills.NiceToHave,
		MinYears:   parsed.Experience.MinYears,
	}), nil
}
