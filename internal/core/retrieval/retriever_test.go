package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
)

type mockDriver struct {
	mu      sync.Mutex
	Queries []string
	Limits  []int
	ByQuery func(query string) (neo4j.EagerResult, error)
}

func (m *mockDriver) ExecuteQuery(_ context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	if l, ok := params["limit"].(int); ok {
		m.Limits = append(m.Limits, l)
	}
	m.mu.Unlock()
	if m.ByQuery != nil {
		return m.ByQuery(query)
	}
	return neo4j.EagerResult{}, nil
}

func (m *mockDriver) BuildIndices(context.Context) error { return nil }
func (m *mockDriver) Close(context.Context) error        { return nil }

type mockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *mockEmbedder) Embed(context.Context, string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

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

func isSimilarityQuery(q string) bool {
	return strings.Contains(q, "vector_search")
}

func TestRetrieveUnionsAndDeduplicates(t *testing.T) {
	d := &mockDriver{
		ByQuery: func(q string) (neo4j.EagerResult, error) {
			if isSimilarityQuery(q) {
				return uuidRecords("c2", "c3"), nil
			}
			return uuidRecords("c1", "c2"), nil
		},
	}
	r := New(d, &mockEmbedder{Vector: []float32{0.1, 0.2}}, zap.NewNop())

	res, err := r.Retrieve(context.Background(), []string{"python"}, "python engineers", 10)

	assert.NoError(t, err)
	assert.False(t, res.Partial)
	assert.Equal(t, []string{"c1", "c2", "c3"}, res.IDs)
}

func TestRetrieveOverFetches(t *testing.T) {
	d := &mockDriver{}
	r := New(d, &mockEmbedder{Vector: []float32{0.1}}, zap.NewNop())

	_, err := r.Retrieve(context.Background(), []string{"python"}, "query", 10)
	assert.NoError(t, err)

	for _, l := range d.Limits {
		assert.GreaterOrEqual(t, l, 15, "over-fetch must be at least 1.5x top-K")
	}
}

func TestRetrieveSimilarityFailureIsPartial(t *testing.T) {
	d := &mockDriver{
		ByQuery: func(q string) (neo4j.EagerResult, error) {
			if isSimilarityQuery(q) {
				return neo4j.EagerResult{}, errors.New("vector index down")
			}
			return uuidRecords("c1", "c2", "c3"), nil
		},
	}
	r := New(d, &mockEmbedder{Vector: []float32{0.1}}, zap.NewNop())

	res, err := r.Retrieve(context.Background(), []string{"python"}, "query", 10)

	assert.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Equal(t, []string{"c1", "c2", "c3"}, res.IDs)
}

func TestRetrieveEmbedderMissingIsPartial(t *testing.T) {
	d := &mockDriver{
		ByQuery: func(q string) (neo4j.EagerResult, error) {
			return uuidRecords("c1"), nil
		},
	}
	r := New(d, nil, zap.NewNop())

	res, err := r.Retrieve(context.Background(), []string{"python"}, "query", 5)
	assert.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Equal(t, []string{"c1"}, res.IDs)
}

func TestRetrieveBothPathsDown(t *testing.T) {
	d := &mockDriver{
		ByQuery: func(q string) (neo4j.EagerResult, error) {
			return neo4j.EagerResult{}, fmt.Errorf("bolt: connection refused")
		},
	}
	r := New(d, &mockEmbedder{Err: errors.New("embedder down")}, zap.NewNop())

	_, err := r.Retrieve(context.Background(), []string{"python"}, "query", 5)
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
}
