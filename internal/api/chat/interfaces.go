package chat

import "context"

// ChatUsecase answers a user query through the retrieval pipeline.
type ChatUsecase interface {
	AnswerQuery(ctx context.Context, query string) (string, error)
}
