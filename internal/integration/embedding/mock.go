package embedding

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector produces a small deterministic vector derived from rune
// counts, enough to exercise the pipeline without an embedding deployment.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Info(ctx, "[MOCK] computing embedding", zap.Int("text_length", len(text)))

	var length, vowels, spaces float32
	for _, r := range text {
		length++
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			vowels++
		case ' ':
			spaces++
		}
	}
	return []float32{length, vowels, length - vowels - spaces, spaces}, nil
}
