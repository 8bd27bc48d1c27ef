package chat

import (
	"context"
	"fmt"
	"sort"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fusion weights for the vector and keyword components of the hybrid score.
// Fixed policy constants, not learned.
const (
	vectorWeight  = 0.6
	keywordWeight = 0.4
)

// HybridRetriever merges vector-similarity and keyword hits from the search
// index into one deterministically ranked candidate list.
type HybridRetriever struct {
	embedder EmbeddingService
	index    SearchIndex
	searchK  int
}

func NewHybridRetriever(embedder EmbeddingService, index SearchIndex, searchK int) *HybridRetriever {
	return &HybridRetriever{
		embedder: embedder,
		index:    index,
		searchK:  searchK,
	}
}

// Retrieve returns at most topK candidates ordered by hybrid score. Both
// sub-searches must succeed; any failure surfaces as
// entity.ErrRetrievalUnavailable with no partial result.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, topK int) ([]entity.ScoredCandidate, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrRetrievalUnavailable, err)
	}

	var (
		vectorHits  map[string]entity.VectorHit
		keywordHits map[string]entity.KeywordHit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vectorHits, err = r.index.VectorSearch(gctx, vector, r.searchK)
		return err
	})
	g.Go(func() error {
		var err error
		keywordHits, err = r.index.KeywordSearch(gctx, query, r.searchK)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrRetrievalUnavailable, err)
	}

	merged := fuse(vectorHits, keywordHits)

	ctxzap.Debug(ctx, "hybrid retrieval merged",
		zap.Int("vector_hits", len(vectorHits)),
		zap.Int("keyword_hits", len(keywordHits)),
		zap.Int("merged", len(merged)),
	)

	if topK < len(merged) {
		merged = merged[:topK]
	}
	return merged, nil
}

// fuse normalizes each hit set against its own observed maximum score,
// combines the two components per chunk id and sorts by (hybrid score desc,
// id asc). Sorting ids makes the ranking reproducible for a given pair of
// result sets; map iteration order alone would not be.
func fuse(vectorHits map[string]entity.VectorHit, keywordHits map[string]entity.KeywordHit) []entity.ScoredCandidate {
	// Normalization is batch-relative: the top hit of each component maps to
	// 1.0 regardless of the component's score scale. 1.0 is only the
	// fallback for an empty hit set.
	maxVector := 0.0
	for _, hit := range vectorHits {
		if hit.Score > maxVector {
			maxVector = hit.Score
		}
	}
	if len(vectorHits) == 0 {
		maxVector = 1.0
	}
	maxKeyword := 0.0
	for _, hit := range keywordHits {
		if hit.Score > maxKeyword {
			maxKeyword = hit.Score
		}
	}
	if len(keywordHits) == 0 {
		maxKeyword = 1.0
	}

	ids := make([]string, 0, len(vectorHits)+len(keywordHits))
	seen := make(map[string]struct{}, len(vectorHits)+len(keywordHits))
	for id := range vectorHits {
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	for id := range keywordHits {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	merged := make([]entity.ScoredCandidate, 0, len(ids))
	for _, id := range ids {
		v, inVector := vectorHits[id]
		k, inKeyword := keywordHits[id]

		var normVector, normKeyword float64
		if inVector && maxVector > 0 {
			normVector = v.Score / maxVector
		}
		if inKeyword && maxKeyword > 0 {
			normKeyword = k.Score / maxKeyword
		}

		candidate := entity.ScoredCandidate{
			ID:          id,
			HybridScore: vectorWeight*normVector + keywordWeight*normKeyword,
		}

		// Vector-provided fields win conflicts.
		if inVector {
			candidate.Text = v.Text
			candidate.Embedding = v.Embedding
			candidate.Source = v.Source
			candidate.Year = v.Year
		}
		if inKeyword {
			if candidate.Text == "" {
				candidate.Text = k.Text
			}
			if candidate.Source == "" {
				candidate.Source = k.Source
			}
			if candidate.Year == 0 {
				candidate.Year = k.Year
			}
		}

		merged = append(merged, candidate)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].HybridScore != merged[j].HybridScore {
			return merged[i].HybridScore > merged[j].HybridScore
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}
