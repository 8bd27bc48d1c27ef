package chat

import (
	"context"

	"github.com/medassist/medassist-backend/internal/entity"
)

// EmbeddingService computes the embedding vector for a piece of text.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchIndex exposes the two lookups of the external search index.
type SearchIndex interface {
	VectorSearch(ctx context.Context, vector []float32, k int) (map[string]entity.VectorHit, error)
	KeywordSearch(ctx context.Context, query string, k int) (map[string]entity.KeywordHit, error)
}

// ChatModel runs one chat completion.
type ChatModel interface {
	Complete(ctx context.Context, messages []entity.PromptMessage, temperature float32, maxTokens int) (string, error)
}
