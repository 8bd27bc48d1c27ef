package main

import (
	"context"
	"flag"
	"log"

	"github.com/medassist/medassist-backend/internal/builder"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "./pdfs", "Directory containing guideline PDFs")
	source := flag.String("source", "WHO,CDC,NIH", "Provenance label attached to every chunk")
	year := flag.Int("year", 2024, "Publication year attached to every chunk")
	// builder.BuildIngestor parses the remaining flags (-env) via LoadConfig.

	ingestor, logger, err := builder.BuildIngestor()
	if err != nil {
		log.Fatal("Failed to build ingestor:", err)
	}

	report, err := ingestor.IngestDirectory(context.Background(), *dir, *source, *year)
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	logger.Info("Ingestion finished",
		zap.Int("files", report.Files),
		zap.Int("chunks_uploaded", report.ChunksUploaded),
		zap.Int("chunks_skipped", report.ChunksSkipped),
	)
}
