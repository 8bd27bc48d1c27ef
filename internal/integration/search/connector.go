package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/config"
	"github.com/medassist/medassist-backend/internal/entity"
	pkghttp "github.com/medassist/medassist-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to an Azure AI Search index over its REST API.
type Connector struct {
	config    config.SearchConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.SearchConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Endpoint,
	}

	connector := pkghttp.NewConnector(
		connCfg,
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAPIKey("api-key", cfg.Key),
	)

	return &Connector{
		config:    cfg,
		connector: connector,
		logger:    logger,
	}
}

type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

type searchRequest struct {
	Search        string        `json:"search,omitempty"`
	Top           int           `json:"top,omitempty"`
	Select        string        `json:"select,omitempty"`
	VectorQueries []vectorQuery `json:"vectorQueries,omitempty"`
}

type searchDocument struct {
	Score         float64   `json:"@search.score"`
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	ContentVector []float32 `json:"contentVector,omitempty"`
	Source        string    `json:"source,omitempty"`
	Year          int       `json:"year,omitempty"`
}

type searchResponse struct {
	Value []searchDocument `json:"value"`
}

type uploadDocument struct {
	Action        string    `json:"@search.action"`
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	ContentVector []float32 `json:"contentVector"`
	Source        string    `json:"source,omitempty"`
	Year          int       `json:"year,omitempty"`
}

type uploadRequest struct {
	Value []uploadDocument `json:"value"`
}

func (c *Connector) searchEndpoint() string {
	return fmt.Sprintf("/indexes/%s/docs/search?api-version=%s", c.config.Index, c.config.APIVersion)
}

func (c *Connector) indexEndpoint() string {
	return fmt.Sprintf("/indexes/%s/docs/index?api-version=%s", c.config.Index, c.config.APIVersion)
}

// VectorSearch returns the top k chunks by embedding similarity, keyed by
// chunk id.
func (c *Connector) VectorSearch(ctx context.Context, vector []float32, k int) (map[string]entity.VectorHit, error) {
	req := &searchRequest{
		Select: "id,content,contentVector,source,year",
		VectorQueries: []vectorQuery{{
			Kind:   "vector",
			Vector: vector,
			Fields: "contentVector",
			K:      k,
		}},
	}

	resp, err := c.search(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "vector search failed", zap.Error(err))
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make(map[string]entity.VectorHit, len(resp.Value))
	for _, doc := range resp.Value {
		hits[doc.ID] = entity.VectorHit{
			Text:      doc.Content,
			Embedding: doc.ContentVector,
			Score:     doc.Score,
			Source:    doc.Source,
			Year:      doc.Year,
		}
	}

	ctxzap.Debug(ctx, "vector search completed", zap.Int("hits", len(hits)))
	return hits, nil
}

// KeywordSearch returns the top k chunks by lexical relevance, keyed by
// chunk id.
func (c *Connector) KeywordSearch(ctx context.Context, query string, k int) (map[string]entity.KeywordHit, error) {
	req := &searchRequest{
		Search: query,
		Top:    k,
		Select: "id,content,source,year",
	}

	resp, err := c.search(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "keyword search failed", zap.Error(err))
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	hits := make(map[string]entity.KeywordHit, len(resp.Value))
	for _, doc := range resp.Value {
		hits[doc.ID] = entity.KeywordHit{
			Text:   doc.Content,
			Score:  doc.Score,
			Source: doc.Source,
			Year:   doc.Year,
		}
	}

	ctxzap.Debug(ctx, "keyword search completed", zap.Int("hits", len(hits)))
	return hits, nil
}

func (c *Connector) search(ctx context.Context, req *searchRequest) (*searchResponse, error) {
	var resp searchResponse
	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, c.searchEndpoint(), req, &resp)
		},
		append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...,
	)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadDocuments uploads a batch of embedded chunks into the index.
func (c *Connector) UploadDocuments(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	req := &uploadRequest{Value: make([]uploadDocument, 0, len(chunks))}
	for _, chunk := range chunks {
		req.Value = append(req.Value, uploadDocument{
			Action:        "upload",
			ID:            chunk.ID,
			Content:       chunk.Content,
			ContentVector: chunk.Embedding,
			Source:        chunk.Source,
			Year:          chunk.Year,
		})
	}

	ctxzap.Info(ctx, "uploading documents to search index", zap.Int("count", len(chunks)))

	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, c.indexEndpoint(), req, nil)
		},
		append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...,
	)
	if err != nil {
		ctxzap.Error(ctx, "failed to upload documents", zap.Error(err))
		return fmt.Errorf("upload documents: %w", err)
	}

	ctxzap.Info(ctx, "documents uploaded successfully")
	return nil
}
