package llm

import (
	"context"
)

// LLMClient generates a completion for a single prompt. All structured
// extraction in the service goes through this interface.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient produces a vector representation of text for similarity
// search. A nil EmbedderClient means the provider has no embedding support
// and callers skip the similarity path.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
