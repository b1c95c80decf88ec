package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/trongvanphan/pocHR-LightRAG/internal/config"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/driver"
)

func uuidRecords(ids ...string) neo4j.EagerResult {
	var records []*neo4j.Record
	for _, id := range ids {
		records = append(records, &neo4j.Record{
			Keys:   []string{"uuid"},
			Values: []interface{}{id},
		})
	}
	return neo4j.EagerResult{Records: records}
}

func seedStore() *MockStore {
	st := NewMockStore()

	st.Candidates["a"] = &model.Candidate{
		ID:           "a",
		PersonalInfo: model.PersonalInfo{Name: "Candidate A"},
		Skills:       model.SkillSet{Technical: []string{"python", "fastapi"}},
		Experience:   []model.ExperienceEntry{{Company: "Acme", Role: "Senior Engineer", Duration: "2022 - now"}},
	}
	st.Evaluations["a"] = []model.Evaluation{{
		ID:             "e1",
		CandidateID:    "a",
		Recommendation: model.StrongHire,
		Technical:      model.TechnicalAssessment{Score: 9, Strengths: []string{"python"}},
	}}

	st.Candidates["b"] = &model.Candidate{
		ID:           "b",
		PersonalInfo: model.PersonalInfo{Name: "Candidate B"},
		Skills:       model.SkillSet{Technical: []string{"python"}},
	}

	return st
}

func newTestService(d *MockDriver, llmClient *MockLLM, st *MockStore) *Service {
	embedder := &MockEmbedder{Vector: []float32{0.1, 0.2, 0.3}}
	return NewService(d, llmClient, embedder, st, zap.NewNop(), config.Default())
}

func TestSearchBySkillEmptySkillRejected(t *testing.T) {
	d := &MockDriver{}
	svc := newTestService(d, &MockLLM{}, seedStore())

	_, err := svc.SearchBySkill(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, model.ErrInvalidQuery)
	assert.Equal(t, 0, d.QueryCount(), "no retrieval for invalid queries")
}

func TestSearchBySkillRanksEvaluatedCandidateFirst(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			if strings.Contains(q, "vector_search") {
				return uuidRecords("b"), nil
			}
			return uuidRecords("a", "b"), nil
		},
	}
	svc := newTestService(d, &MockLLM{}, seedStore())

	res, err := svc.SearchBySkill(context.Background(), "Python", 10)

	assert.NoError(t, err)
	assert.False(t, res.Partial)
	assert.Equal(t, "python", res.Skill)
	assert.Equal(t, 2, res.TotalConsidered)
	assert.Len(t, res.Candidates, 2)
	assert.Equal(t, "a", res.Candidates[0].CandidateID)
	assert.True(t, res.Candidates[0].HasEvaluation)
	assert.Greater(t, res.Candidates[0].MatchScore, res.Candidates[1].MatchScore)
}

func TestSearchBySkillScoringIsDeterministic(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			return uuidRecords("a", "b"), nil
		},
	}
	svc := newTestService(d, &MockLLM{}, seedStore())

	first, err := svc.SearchBySkill(context.Background(), "python", 10)
	assert.NoError(t, err)
	second, err := svc.SearchBySkill(context.Background(), "python", 10)
	assert.NoError(t, err)
	assert.Equal(t, first.Candidates, second.Candidates)
}

func TestMatchJobShortDescriptionRejectedBeforeRetrieval(t *testing.T) {
	d := &MockDriver{}
	llmClient := &MockLLM{}
	svc := newTestService(d, llmClient, seedStore())

	_, err := svc.MatchJob(context.Background(), "30 characters, not enough", 10)

	assert.ErrorIs(t, err, model.ErrInvalidQuery)
	assert.Equal(t, 0, d.QueryCount())
	assert.Empty(t, llmClient.Prompts)
}

const jobDescription = `Senior Python Developer.
Requirements: 5+ years of Python, FastAPI, PostgreSQL.
Nice to have: Kubernetes.`

func TestMatchJobRanksCandidates(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			if strings.Contains(q, "vector_search") {
				return uuidRecords(), nil
			}
			return uuidRecords("a", "b"), nil
		},
	}
	llmClient := &MockLLM{Response: `{
		"job_title": "Senior Python Developer",
		"level": "Senior",
		"required_skills": {"must_have": ["python", "fastapi"], "nice_to_have": ["kubernetes"]},
		"experience": {"min_years": 5}
	}`}
	svc := newTestService(d, llmClient, seedStore())

	res, err := svc.MatchJob(context.Background(), jobDescription, 10)

	assert.NoError(t, err)
	assert.Equal(t, "Senior Python Developer", res.JobTitle)
	assert.Equal(t, []string{"python", "fastapi"}, res.Requirements.MustHave)
	assert.Len(t, res.Candidates, 2)

	a, b := res.Candidates[0], res.Candidates[1]
	assert.Equal(t, "a", a.CandidateID)
	assert.GreaterOrEqual(t, a.MatchScore, 80)
	assert.Equal(t, model.LabelStrongMatch, a.Label)
	assert.Less(t, b.MatchScore, a.MatchScore)
}

func TestMatchJobSimilarityPathDownIsPartial(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			if strings.Contains(q, "vector_search") {
				return neo4j.EagerResult{}, errors.New("vector index unavailable")
			}
			return uuidRecords("a", "b"), nil
		},
	}
	llmClient := &MockLLM{Response: `{"required_skills": {"must_have": ["python"]}}`}
	svc := newTestService(d, llmClient, seedStore())

	res, err := svc.MatchJob(context.Background(), jobDescription, 10)

	assert.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Len(t, res.Candidates, 2)
}

func TestMatchJobExtractionFailureDegradesToKeywords(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			return uuidRecords("a"), nil
		},
	}
	llmClient := &MockLLM{Err: errors.New("model unavailable")}
	svc := newTestService(d, llmClient, seedStore())

	res, err := svc.MatchJob(context.Background(), jobDescription, 10)

	assert.NoError(t, err)
	assert.Contains(t, res.Requirements.MustHave, "python")
	assert.Contains(t, res.Requirements.MustHave, "fastapi")
	assert.Len(t, res.Candidates, 1)
}

func TestMatchJobBothRetrievalPathsDown(t *testing.T) {
	d := &MockDriver{Err: errors.New("bolt: connection refused")}
	svc := NewService(d, &MockLLM{Response: `{"required_skills": {"must_have": ["python"]}}`},
		&MockEmbedder{Err: errors.New("embedder down")}, seedStore(), zap.NewNop(), config.Default())

	_, err := svc.MatchJob(context.Background(), jobDescription, 10)
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
}

func TestIngestCandidateIndexesGraph(t *testing.T) {
	d := &MockDriver{}
	llmClient := &MockLLM{Response: `{
		"personal_info": {"name": "Nguyen Van A"},
		"summary": "Backend engineer",
		"skills": {"technical": ["python", "fastapi"]},
		"experience": [{"company": "Acme", "role": "Engineer", "duration": "2021 - now"}]
	}`}
	st := NewMockStore()
	svc := newTestService(d, llmClient, st)

	cand, err := svc.IngestCandidate(context.Background(),
		"Nguyen Van A, backend engineer with Python and FastAPI experience since 2019.", "cv.md")

	assert.NoError(t, err)
	assert.Contains(t, st.Candidates, cand.ID)

	assert.Contains(t, d.Queries, driver.SaveCandidateNodeQuery)
	skillEdges := 0
	for _, q := range d.Queries {
		if q == driver.SaveSkillEdgeQuery {
			skillEdges++
		}
	}
	assert.Equal(t, 2, skillEdges)
}

func TestDeleteCandidateRemovesBothStores(t *testing.T) {
	d := &MockDriver{}
	st := seedStore()
	svc := newTestService(d, &MockLLM{}, st)

	assert.NoError(t, svc.DeleteCandidate(context.Background(), "a"))

	assert.NotContains(t, st.Candidates, "a")
	assert.NotContains(t, st.Evaluations, "a")
	assert.Contains(t, d.Queries, driver.DeleteCandidateQuery)
}

func TestDeleteCandidateUnknown(t *testing.T) {
	d := &MockDriver{}
	svc := newTestService(d, &MockLLM{}, NewMockStore())

	err := svc.DeleteCandidate(context.Background(), "ghost")

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 0, d.QueryCount(), "unknown candidate issues no graph delete")
}

func TestAllSkillsMergesGraphSkills(t *testing.T) {
	d := &MockDriver{
		ByQuery: func(q string, _ map[string]interface{}) (neo4j.EagerResult, error) {
			return neo4j.EagerResult{Records: []*neo4j.Record{{
				Keys:   []string{"name"},
				Values: []interface{}{"Kubernetes"},
			}}}, nil
		},
	}
	svc := newTestService(d, &MockLLM{}, seedStore())

	skills, err := svc.AllSkills(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"fastapi", "kubernetes", "python"}, skills)
	assert.Contains(t, d.Queries, driver.AllSkillsQuery)
}

func TestAllSkillsGraphDownServesStoreList(t *testing.T) {
	d := &MockDriver{Err: errors.New("bolt: connection refused")}
	svc := newTestService(d, &MockLLM{}, seedStore())

	skills, err := svc.AllSkills(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"fastapi", "python"}, skills)
}

func TestAddEvaluationUnknownCandidate(t *testing.T) {
	svc := newTestService(&MockDriver{}, &MockLLM{}, NewMockStore())
	_, err := svc.AddEvaluation(context.Background(), "ghost", "long enough interview notes here")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddEvaluationStoresAndIndexes(t *testing.T) {
	d := &MockDriver{}
	llmClient := &MockLLM{Response: `{
		"technical_assessment": {"score": 8, "strengths": ["python"]},
		"overall_recommendation": "hire",
		"key_concerns": ["limited kubernetes exposure"]
	}`}
	st := seedStore()
	svc := newTestService(d, llmClient, st)

	eval, err := svc.AddEvaluation(context.Background(), "b", "Solid technical round, good python depth. Hire.")

	assert.NoError(t, err)
	assert.Equal(t, model.Hire, eval.Recommendation)
	assert.Len(t, st.Evaluations["b"], 1)
	assert.Contains(t, d.Queries, driver.SaveEvaluationNodeQuery)
}
