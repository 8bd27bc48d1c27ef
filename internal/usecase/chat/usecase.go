package chat

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/config"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

// Usecase sequences the per-query pipeline: classify, retrieve, condition,
// rerank, assemble, generate. All state is request-scoped; the only shared
// data is the read-only configuration injected at construction.
type Usecase struct {
	classifier  *QueryClassifier
	retriever   *HybridRetriever
	conditioner *EvidenceConditioner
	reranker    *MedicalReranker
	assembler   *PromptAssembler
	generator   *AnswerGenerator
	cfg         config.PipelineConfig
	logger      *zap.Logger
}

// NewUsecase wires the pipeline components around the three external
// collaborators.
func NewUsecase(
	embedder EmbeddingService,
	index SearchIndex,
	chat ChatModel,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		classifier:  NewQueryClassifier(chat),
		retriever:   NewHybridRetriever(embedder, index, cfg.SearchK),
		conditioner: NewEvidenceConditioner(cfg.MaxContextChars),
		reranker:    NewMedicalReranker(chat, cfg.RerankWorkers),
		assembler:   NewPromptAssembler(),
		generator:   NewAnswerGenerator(chat, cfg.Temperature, cfg.MaxTokens),
		cfg:         cfg,
		logger:      logger,
	}
}

// AnswerQuery runs the full pipeline for one query and returns the
// safety-gated answer.
func (uc *Usecase) AnswerQuery(ctx context.Context, query string) (string, error) {
	flag := uc.classifier.Classify(ctx, query)

	candidates, err := uc.retriever.Retrieve(ctx, query, uc.cfg.RetrieveTopK)
	if err != nil {
		return "", err
	}

	evidence := uc.conditioner.Condition(candidates)

	// Empty evidence is not an error: the system prompt instructs the model
	// to answer with the fixed insufficient-evidence phrase.
	ranked, err := uc.reranker.Rerank(ctx, query, evidence, uc.cfg.RerankTopK)
	if err != nil {
		return "", err
	}

	// The reranked evidence is bounded a second time for the generation
	// prompt, stopping before the first item that would exceed the budget.
	// The budget covers the blank-line separators between items as well.
	topEvidence := make([]entity.EvidenceItem, 0, len(ranked))
	totalChars := 0
	for _, candidate := range ranked {
		itemChars := len(candidate.Text)
		if len(topEvidence) > 0 {
			itemChars += len("\n\n")
		}
		if totalChars+itemChars > uc.cfg.AnswerContextChars {
			break
		}
		topEvidence = append(topEvidence, entity.EvidenceItem{
			Content: candidate.Text,
			Source:  candidate.ID,
		})
		totalChars += itemChars
	}

	messages := uc.assembler.Assemble(query, topEvidence, flag)

	answer, err := uc.generator.Generate(ctx, messages)
	if err != nil {
		return "", err
	}

	ctxzap.Info(ctx, "query answered",
		zap.String("flag", string(flag)),
		zap.Int("candidates", len(candidates)),
		zap.Int("evidence", len(evidence)),
		zap.Int("ranked", len(ranked)),
		zap.Int("answer_length", len(answer)),
	)

	return answer, nil
}
