package chat

import (
	"context"
	"strings"

	"github.com/medassist/medassist-backend/internal/entity"
)

// fakeEmbedder returns a fixed vector or error.
type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeIndex serves pre-built hit maps.
type fakeIndex struct {
	vectorHits  map[string]entity.VectorHit
	keywordHits map[string]entity.KeywordHit
	vectorErr   error
	keywordErr  error
}

func (f *fakeIndex) VectorSearch(ctx context.Context, vector []float32, k int) (map[string]entity.VectorHit, error) {
	if f.vectorErr != nil {
		return nil, f.vectorErr
	}
	return f.vectorHits, nil
}

func (f *fakeIndex) KeywordSearch(ctx context.Context, query string, k int) (map[string]entity.KeywordHit, error) {
	if f.keywordErr != nil {
		return nil, f.keywordErr
	}
	return f.keywordHits, nil
}

// fakeChat dispatches on the prompt contents via respond.
type fakeChat struct {
	respond func(messages []entity.PromptMessage) (string, error)
}

func (f *fakeChat) Complete(ctx context.Context, messages []entity.PromptMessage, temperature float32, maxTokens int) (string, error) {
	return f.respond(messages)
}

// scoreByContent builds a fakeChat that answers rerank requests by matching
// known evidence content inside the user message.
func scoreByContent(scores map[string]string) *fakeChat {
	return &fakeChat{respond: func(messages []entity.PromptMessage) (string, error) {
		user := messages[len(messages)-1].Content
		for content, score := range scores {
			if strings.Contains(user, content) {
				return score, nil
			}
		}
		return "0", nil
	}}
}

func userMessage(messages []entity.PromptMessage) string {
	for _, msg := range messages {
		if msg.Role == entity.RoleUser {
			return msg.Content
		}
	}
	return ""
}

func systemMessage(messages []entity.PromptMessage) string {
	for _, msg := range messages {
		if msg.Role == entity.RoleSystem {
			return msg.Content
		}
	}
	return ""
}
