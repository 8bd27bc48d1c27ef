package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/medassist/medassist-backend/internal/api"
	chatapi "github.com/medassist/medassist-backend/internal/api/chat"
	"github.com/medassist/medassist-backend/internal/config"
	"github.com/medassist/medassist-backend/internal/integration/chatmodel"
	"github.com/medassist/medassist-backend/internal/integration/embedding"
	"github.com/medassist/medassist-backend/internal/integration/search"
	"github.com/medassist/medassist-backend/internal/pkg/validator"
	"github.com/medassist/medassist-backend/internal/usecase/chat"
	"github.com/medassist/medassist-backend/internal/usecase/ingest"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	embedder, index, model := setupConnectors(cfg, logger)

	// Initialize use case
	chatUC := chat.NewUsecase(embedder, index, model, cfg.PipelineCfg, logger)
	logger.Info("Use cases initialized")

	// Setup API handler
	queryValidator := validator.NewValidator(cfg.PipelineCfg.MaxQueryLength)
	chatHandler := chatapi.NewHandler(chatUC, queryValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(chatHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildIngestor creates the ingestion use case for the ingest CLI.
func BuildIngestor() (*ingest.Usecase, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	embedder, index, _ := setupConnectors(cfg, logger)

	return ingest.NewUsecase(embedder, index, logger), logger, nil
}

// searchIndex is the full surface of the search service: the two query-time
// lookups plus ingestion-time uploads.
type searchIndex interface {
	chat.SearchIndex
	ingest.DocumentStore
}

// setupConnectors wires the three external collaborators, substituting mocks
// when ENABLE_MOCKS is set.
func setupConnectors(cfg *config.Config, logger *zap.Logger) (chat.EmbeddingService, searchIndex, chat.ChatModel) {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		return embedding.NewMockConnector(logger),
			search.NewMockConnector(logger),
			chatmodel.NewMockConnector(logger)
	}

	logger.Info("Using real connectors for external services")
	return embedding.NewConnector(cfg.EmbeddingCfg, logger),
		search.NewConnector(cfg.SearchCfg, logger),
		chatmodel.NewConnector(cfg.ChatCfg, logger)
}
