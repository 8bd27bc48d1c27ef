package search

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector serves canned guideline chunks for local runs without an
// Azure AI Search instance.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

var mockChunks = []entity.Chunk{
	{
		ID:      "bW9jay1ndWlkZWxpbmUtMA==",
		Content: "Patients with type 2 diabetes should follow a balanced diet rich in vegetables and whole grains. Added sugars must be limited. Regular meals are recommended to stabilize blood glucose.",
		Source:  "WHO,CDC,NIH",
		Year:    2024,
	},
	{
		ID:      "bW9jay1ndWlkZWxpbmUtMQ==",
		Content: "Adults should engage in at least 150 minutes of moderate physical activity per week. Prolonged sitting should be avoided. Smoking cessation is recommended for all patients.",
		Source:  "WHO,CDC,NIH",
		Year:    2024,
	},
	{
		ID:      "bW9jay1ndWlkZWxpbmUtMg==",
		Content: "Patients with hypertension should reduce sodium intake. Alcohol consumption must be limited. Weight management is recommended as a first-line intervention.",
		Source:  "WHO,CDC,NIH",
		Year:    2024,
	},
}

func (m *MockConnector) VectorSearch(ctx context.Context, vector []float32, k int) (map[string]entity.VectorHit, error) {
	ctxzap.Info(ctx, "[MOCK] vector search", zap.Int("k", k))

	hits := make(map[string]entity.VectorHit)
	for i, chunk := range mockChunks {
		if i >= k {
			break
		}
		hits[chunk.ID] = entity.VectorHit{
			Text:   chunk.Content,
			Score:  0.9 - 0.1*float64(i),
			Source: chunk.Source,
			Year:   chunk.Year,
		}
	}
	return hits, nil
}

func (m *MockConnector) KeywordSearch(ctx context.Context, query string, k int) (map[string]entity.KeywordHit, error) {
	ctxzap.Info(ctx, "[MOCK] keyword search", zap.Int("k", k))

	hits := make(map[string]entity.KeywordHit)
	for i, chunk := range mockChunks {
		if i >= k {
			break
		}
		hits[chunk.ID] = entity.KeywordHit{
			Text:   chunk.Content,
			Score:  12.0 - float64(i),
			Source: chunk.Source,
			Year:   chunk.Year,
		}
	}
	return hits, nil
}

func (m *MockConnector) UploadDocuments(ctx context.Context, chunks []entity.Chunk) error {
	ctxzap.Info(ctx, "[MOCK] uploading documents", zap.Int("count", len(chunks)))
	return nil
}
