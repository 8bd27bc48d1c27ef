package ingest

import (
	"context"

	"github.com/medassist/medassist-backend/internal/entity"
)

// EmbeddingService computes the embedding vector for a chunk of text.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentStore receives embedded chunks for indexing.
type DocumentStore interface {
	UploadDocuments(ctx context.Context, chunks []entity.Chunk) error
}
