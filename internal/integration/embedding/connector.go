package embedding

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/config"
	"github.com/medassist/medassist-backend/internal/entity"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Connector computes embeddings through an Azure OpenAI deployment.
type Connector struct {
	client     *openai.Client
	config     config.EmbeddingConfig
	deployment string
	logger     *zap.Logger
}

func NewConnector(cfg config.EmbeddingConfig, logger *zap.Logger) *Connector {
	clientCfg := openai.DefaultAzureConfig(cfg.Key, cfg.Endpoint)
	clientCfg.APIVersion = cfg.APIVersion

	return &Connector{
		client:     openai.NewClientWithConfig(clientCfg),
		config:     cfg,
		deployment: cfg.Deployment,
		logger:     logger,
	}
}

// Embed returns the embedding vector for text. Fails with
// entity.ErrEmbeddingUnavailable once retries are exhausted.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
			defer cancel()

			resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
				Input: []string{text},
				Model: openai.EmbeddingModel(c.deployment),
			})
			if err != nil {
				return fmt.Errorf("create embeddings: %w", err)
			}
			if len(resp.Data) == 0 {
				return fmt.Errorf("no embeddings returned")
			}

			vector = resp.Data[0].Embedding
			return nil
		},
		append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...,
	)
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", entity.ErrEmbeddingUnavailable, err)
	}

	ctxzap.Debug(ctx, "embedding computed", zap.Int("dimensions", len(vector)))
	return vector, nil
}
