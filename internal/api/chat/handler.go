package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"github.com/medassist/medassist-backend/internal/pkg/logger"
	"github.com/medassist/medassist-backend/internal/pkg/response"
	"github.com/medassist/medassist-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// AnswerQuery handles POST /chat - answer a clinical question
func (h *Handler) AnswerQuery(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AnswerQuery")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateChatRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.usecase.AnswerQuery(ctx, req.Query)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatResponse{Answer: answer})
}

// External-service failures surface as 502; anything else is a 500.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "failed to answer query", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrRetrievalUnavailable),
		errors.Is(err, entity.ErrEmbeddingUnavailable):
		response.Error(w, http.StatusBadGateway, "retrieval unavailable")
	case errors.Is(err, entity.ErrGenerationUnavailable):
		response.Error(w, http.StatusBadGateway, "generation unavailable")
	default:
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
