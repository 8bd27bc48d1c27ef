package entity

import "errors"

// Domain errors
var (
	// Validation errors
	ErrEmptyQuery   = errors.New("query is empty")
	ErrQueryTooLong = errors.New("query exceeds maximum length")

	// External service errors
	ErrEmbeddingUnavailable  = errors.New("embedding service unavailable")
	ErrRetrievalUnavailable  = errors.New("retrieval unavailable")
	ErrGenerationUnavailable = errors.New("generation unavailable")
)
