package chat

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
)

// Terms whose presence anywhere in a generated answer suppresses the whole
// answer. Matched case-insensitively as substrings.
var unsafeTerms = []string{
	"diagnose", "dosage", "mg",
	"operate", "inject", "treatment plan",
}

// RestrictedContentMessage replaces any answer that trips the safety gate.
const RestrictedContentMessage = "The response contained restricted medical content and cannot be displayed."

// AnswerGenerator invokes the chat model with the assembled prompt and
// applies the post-generation safety gate.
type AnswerGenerator struct {
	chat        ChatModel
	temperature float32
	maxTokens   int
}

func NewAnswerGenerator(chat ChatModel, temperature float32, maxTokens int) *AnswerGenerator {
	return &AnswerGenerator{
		chat:        chat,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate produces the final answer. A safety-gate substitution is a valid
// response, not an error; only a failed model call propagates.
func (g *AnswerGenerator) Generate(ctx context.Context, messages []entity.PromptMessage) (string, error) {
	answer, err := g.chat.Complete(ctx, messages, g.temperature, g.maxTokens)
	if err != nil {
		return "", err
	}

	if containsUnsafeTerms(answer) {
		ctxzap.Info(ctx, "unsafe content suppressed by safety gate")
		return RestrictedContentMessage, nil
	}

	return answer, nil
}

// containsUnsafeTerms is the all-or-nothing content gate: one hit anywhere
// suppresses the entire answer, no redaction.
func containsUnsafeTerms(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range unsafeTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
