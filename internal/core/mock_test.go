package core

import (
	"context"
	"sort"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/core/normalize"
)

type MockDriver struct {
	mu      sync.Mutex
	Queries []string
	Params  []map[string]interface{}
	ByQuery func(query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Err     error
}

func (m *MockDriver) ExecuteQuery(_ context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	m.mu.Unlock()

	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if m.ByQuery != nil {
		return m.ByQuery(query, params)
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

func (m *MockDriver) BuildIndices(context.Context) error { return nil }
func (m *MockDriver) Close(context.Context) error        { return nil }

type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(context.Context, string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

// MockLLM answers by routing on the prompt when Route is set, otherwise
// returns Response.
type MockLLM struct {
	Response string
	Err      error
	Route    func(prompt string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLM) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.Route != nil {
		return m.Route(prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockStore is an in-memory RecordStore.
type MockStore struct {
	mu          sync.Mutex
	Candidates  map[string]*model.Candidate
	Evaluations map[string][]model.Evaluation
}

func NewMockStore() *MockStore {
	return &MockStore{
		Candidates:  map[string]*model.Candidate{},
		Evaluations: map[string][]model.Evaluation{},
	}
}

func (m *MockStore) PutCandidate(c *model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Candidates[c.ID] = c
	return nil
}

func (m *MockStore) GetCandidate(id string) (*model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Candidates[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return c, nil
}

func (m *MockStore) ListCandidates() ([]model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Candidate
	for _, c := range m.Candidates {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockStore) AppendEvaluation(e *model.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Candidates[e.CandidateID]; !ok {
		return model.ErrNotFound
	}
	m.Evaluations[e.CandidateID] = append(m.Evaluations[e.CandidateID], *e)
	return nil
}

func (m *MockStore) ListEvaluations(candidateID string) ([]model.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Evaluations[candidateID], nil
}

func (m *MockStore) EvaluationCounts() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for id, evals := range m.Evaluations {
		if len(evals) > 0 {
			out[id] = len(evals)
		}
	}
	return out, nil
}

func (m *MockStore) DeleteCandidate(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Candidates[id]; !ok {
		return model.ErrNotFound
	}
	delete(m.Candidates, id)
	delete(m.Evaluations, id)
	return nil
}

func (m *MockStore) AllSkills() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := map[string]struct{}{}
	for _, c := range m.Candidates {
		for _, s := range c.AllSkills() {
			if key := normalize.Key(s); key != "" {
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
