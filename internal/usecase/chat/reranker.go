package chat

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const rerankSystemPrompt = "You are a strict medical relevance evaluator. Respond with only a number."

const rerankPromptTemplate = `You are a medical expert.

Rate how clinically relevant the following text is for answering the question.

Question:
%s

Text:
%s

Respond with ONLY a number from 0 to 10.`

// MedicalReranker asks the chat model to rate each evidence item's clinical
// relevance to the query on a 0-10 scale and keeps the top-k. One model call
// is issued per item; input size must be bounded upstream by the conditioner.
type MedicalReranker struct {
	chat    ChatModel
	workers int
}

func NewMedicalReranker(chat ChatModel, workers int) *MedicalReranker {
	if workers < 1 {
		workers = 1
	}
	return &MedicalReranker{chat: chat, workers: workers}
}

// Rerank scores every item over a bounded worker pool, then sorts by
// (score desc, input position asc) and truncates to topK. A response that
// does not parse as a number degrades to score 0 rather than failing the
// request; a failed model call fails the whole rerank.
func (r *MedicalReranker) Rerank(ctx context.Context, query string, items []entity.EvidenceItem, topK int) ([]entity.ScoredCandidate, error) {
	scored := make([]entity.ScoredCandidate, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			score, err := r.scoreItem(gctx, query, item)
			if err != nil {
				return err
			}
			scored[i] = entity.ScoredCandidate{
				ID:             item.Source,
				Text:           item.Content,
				RelevanceScore: score,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort keeps input order among equal scores, so the result is
	// deterministic regardless of worker completion order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

func (r *MedicalReranker) scoreItem(ctx context.Context, query string, item entity.EvidenceItem) (float64, error) {
	messages := []entity.PromptMessage{
		{Role: entity.RoleSystem, Content: rerankSystemPrompt},
		{Role: entity.RoleUser, Content: fmt.Sprintf(rerankPromptTemplate, query, item.Content)},
	}

	response, err := r.chat.Complete(ctx, messages, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("score evidence %s: %w", item.Source, err)
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
	if err != nil {
		// Lossy by design of the contract: an unparseable rating ranks the
		// item last instead of failing the request.
		ctxzap.Warn(ctx, "rerank response not numeric, scoring 0",
			zap.String("evidence", item.Source),
			zap.String("response", response),
		)
		return 0, nil
	}

	// Clamp rather than trust the model to stay on scale.
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, nil
}
