package chatmodel

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/config"
	"github.com/medassist/medassist-backend/internal/entity"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Connector runs chat completions through an Azure OpenAI deployment.
type Connector struct {
	client     *openai.Client
	config     config.ChatModelConfig
	deployment string
	logger     *zap.Logger
}

func NewConnector(cfg config.ChatModelConfig, logger *zap.Logger) *Connector {
	clientCfg := openai.DefaultAzureConfig(cfg.Key, cfg.Endpoint)
	clientCfg.APIVersion = cfg.APIVersion

	return &Connector{
		client:     openai.NewClientWithConfig(clientCfg),
		config:     cfg,
		deployment: cfg.Deployment,
		logger:     logger,
	}
}

// Complete sends the messages to the chat deployment and returns the trimmed
// completion text. Fails with entity.ErrGenerationUnavailable once retries
// are exhausted.
func (c *Connector) Complete(ctx context.Context, messages []entity.PromptMessage, temperature float32, maxTokens int) (string, error) {
	// The request marshals temperature with omitempty, so a literal 0 never
	// reaches the service and it falls back to its default of 1. Greedy
	// callers (reranking, classification) need temperature 0 on the wire;
	// the smallest nonzero float survives marshaling and is equivalent.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var answer string

	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
			defer cancel()

			resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
				Model:       c.deployment,
				Messages:    chatMessages,
				Temperature: temperature,
				MaxTokens:   maxTokens,
			})
			if err != nil {
				return fmt.Errorf("create chat completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("no completion choices returned")
			}

			answer = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
		},
		append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...,
	)
	if err != nil {
		ctxzap.Error(ctx, "chat completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: %s", entity.ErrGenerationUnavailable, err)
	}

	ctxzap.Debug(ctx, "chat completion received", zap.Int("answer_length", len(answer)))
	return answer, nil
}
