// Package retrieval implements hybrid candidate retrieval: a graph entity
// lookup and a vector similarity search issued concurrently, unioned and
// deduplicated by candidate id.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trongvanphan/pocHR-LightRAG/internal/core/model"
	"github.com/trongvanphan/pocHR-LightRAG/internal/driver"
	"github.com/trongvanphan/pocHR-LightRAG/internal/llm"
)

// overFetchFactor keeps the retrieved superset materially larger than the
// caller's top-K so the scorer has weak matches to discard.
const overFetchFactor = 2

// Result is the union of both retrieval paths. Partial is set when exactly
// one path failed and the query proceeded on the survivor.
type Result struct {
	IDs     []string
	Partial bool
}

type Retriever struct {
	Driver   driver.GraphDriver
	Embedder llm.EmbedderClient
	Logger   *zap.Logger
}

func New(d driver.GraphDriver, embedder llm.EmbedderClient, logger *zap.Logger) *Retriever {
	return &Retriever{Driver: d, Embedder: embedder, Logger: logger}
}

// Retrieve returns candidate ids matching the normalized terms or the query
// text, over-fetching relative to topK. Entity-path hits come first in the
// union. Both paths failing is the only fatal outcome.
func (r *Retriever) Retrieve(ctx context.Context, terms []string, queryText string, topK int) (Result, error) {
	limit := topK * overFetchFactor
	if limit < topK+5 {
		limit = topK + 5
	}

	var (
		entityIDs, similarityIDs []string
		entityErr, similarityErr error
	)

	// Both paths are independent I/O; run them concurrently and join. Path
	// errors are collected, not returned, so one failure cannot cancel the
	// survivor.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entityIDs, entityErr = r.byEntity(gctx, terms, limit)
		return nil
	})
	g.Go(func() error {
		similarityIDs, similarityErr = r.bySimilarity(gctx, queryText, limit)
		return nil
	})
	_ = g.Wait()

	if entityErr != nil && similarityErr != nil {
		return Result{}, fmt.Errorf("%w: entity path: %v; similarity path: %v",
			model.ErrBackendUnavailable, entityErr, similarityErr)
	}

	partial := entityErr != nil || similarityErr != nil
	if entityErr != nil {
		r.Logger.Warn("entity retrieval failed, degrading to similarity path", zap.Error(entityErr))
	}
	if similarityErr != nil {
		r.Logger.Warn("similarity retrieval failed, degrading to entity path", zap.Error(similarityErr))
	}

	seen := make(map[string]struct{}, len(entityIDs)+len(similarityIDs))
	ids := make([]string, 0, len(entityIDs)+len(similarityIDs))
	for _, id := range append(entityIDs, similarityIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return Result{IDs: ids, Partial: partial}, nil
}

func (r *Retriever) byEntity(ctx context.Context, terms []string, limit int) ([]string, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	params := map[string]interface{}{
		"terms": terms,
		"limit": limit,
	}
	result, err := r.Driver.ExecuteQuery(ctx, driver.CandidatesByTermsQuery, params)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, rec := range result.Records {
		if id, ok := rec.Get("uuid"); ok {
			if s, ok := id.(string); ok {
				ids = append(ids, s)
			}
		}
	}
	return ids, nil
}

func (r *Retriever) bySimilarity(ctx context.Context, queryText string, limit int) ([]string, error) {
	if queryText == "" {
		return nil, nil
	}
	if r.Embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}

	vec, err := r.Embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	params := map[string]interface{}{
		"embedding": vec,
		"limit":     limit,
	}
	result, err := r.Driver.ExecuteQuery(ctx, driver.CandidatesBySimilarityQuery, params)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, rec := range result.Records {
		if id, ok := rec.Get("uuid"); ok {
			if s, ok := id.(string); ok {
				ids = append(ids, s)
			}
		}
	}
	return ids, nil
}
