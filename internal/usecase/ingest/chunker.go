package ingest

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Chunking defaults: bounded windows with overlap so guideline statements
// split across a boundary still appear whole in one chunk.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// ChunkText slides a fixed-size window over text with the given overlap.
// Windows are trimmed and empty ones skipped.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultOverlap
	}

	var chunks []string
	length := len(text)

	for start := 0; start < length; start = start + chunkSize - overlap {
		end := start + chunkSize
		if end > length {
			end = length
		}
		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// SafeID derives the index document key for a chunk: URL-safe base64 over
// "<path>-<index>", since raw paths contain characters the index rejects
// in keys.
func SafeID(path string, index int) string {
	raw := fmt.Sprintf("%s-%d", path, index)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}
