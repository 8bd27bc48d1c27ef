package chatmodel

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector answers chat requests without a deployment. It inspects the
// system message to tell classification, reranking and final generation
// apart, since all three flow through the same interface.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.PromptMessage, temperature float32, maxTokens int) (string, error) {
	var system string
	for _, msg := range messages {
		if msg.Role == entity.RoleSystem {
			system = msg.Content
			break
		}
	}

	switch {
	case strings.Contains(system, "relevance evaluator"):
		ctxzap.Info(ctx, "[MOCK] rerank scoring request")
		return "7", nil
	case strings.Contains(system, "query classifier"):
		ctxzap.Info(ctx, "[MOCK] classification request")
		return string(entity.FlagGeneralEducation), nil
	default:
		ctxzap.Info(ctx, "[MOCK] answer generation request")
		return "- Follow the dietary recommendations in the provided guidelines.\n- Maintain regular physical activity as advised.", nil
	}
}
