package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

// Usecase ingests PDF guideline documents: extract, chunk, embed, upload.
type Usecase struct {
	embedder EmbeddingService
	store    DocumentStore
	logger   *zap.Logger
}

func NewUsecase(embedder EmbeddingService, store DocumentStore, logger *zap.Logger) *Usecase {
	return &Usecase{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Report summarizes one ingestion run.
type Report struct {
	Files          int
	ChunksUploaded int
	ChunksSkipped  int
}

// IngestDirectory processes every .pdf file in dir. A file that yields no
// text is skipped; a missing directory fails the run.
func (uc *Usecase) IngestDirectory(ctx context.Context, dir, source string, year int) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pdf directory: %w", err)
	}

	batchID := uuid.New().String()
	logger := uc.logger.With(zap.String("batch_id", batchID), zap.String("dir", dir))

	report := &Report{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		uploaded, skipped, err := uc.ingestPDF(ctx, logger, path, source, year)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", path, err)
		}

		report.Files++
		report.ChunksUploaded += uploaded
		report.ChunksSkipped += skipped
	}

	logger.Info("ingestion completed",
		zap.Int("files", report.Files),
		zap.Int("chunks_uploaded", report.ChunksUploaded),
		zap.Int("chunks_skipped", report.ChunksSkipped),
	)

	return report, nil
}

func (uc *Usecase) ingestPDF(ctx context.Context, logger *zap.Logger, path, source string, year int) (uploaded, skipped int, err error) {
	logger.Info("processing pdf", zap.String("path", path))

	text, err := ExtractText(path)
	if err != nil {
		return 0, 0, err
	}

	return uc.ingestText(ctx, logger, path, text, source, year)
}

// ingestText embeds and uploads one document's chunks. A chunk whose
// embedding call fails is logged and skipped; the batch proceeds with
// whatever succeeded.
func (uc *Usecase) ingestText(ctx context.Context, logger *zap.Logger, path, text, source string, year int) (uploaded, skipped int, err error) {
	if strings.TrimSpace(text) == "" {
		logger.Warn("no text extracted, skipping file", zap.String("path", path))
		return 0, 0, nil
	}

	chunks := ChunkText(text, DefaultChunkSize, DefaultOverlap)
	logger.Info("chunks created", zap.Int("count", len(chunks)))

	documents := make([]entity.Chunk, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := uc.embedder.Embed(ctx, chunk)
		if err != nil {
			logger.Error("failed to embed chunk, skipping",
				zap.Int("chunk", i),
				zap.Error(err),
			)
			skipped++
			continue
		}

		documents = append(documents, entity.Chunk{
			ID:        SafeID(path, i),
			Content:   chunk,
			Embedding: vector,
			Source:    source,
			Year:      year,
		})
	}

	if len(documents) == 0 {
		logger.Warn("no documents to upload", zap.String("path", path))
		return 0, skipped, nil
	}

	if err := uc.store.UploadDocuments(ctx, documents); err != nil {
		return 0, skipped, err
	}

	logger.Info("chunks uploaded", zap.Int("count", len(documents)))
	return len(documents), skipped, nil
}
