// Package service provides business logic for arxium operations.
package service

import (
	"context"
	"log/slog"

	"github.com/raphaelgruber/arxium/internal/arxiv"
	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
)

// PaperSearcher finds papers matching a query.
type PaperSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]arxiv.Paper, error)
}

// Embedder generates embedding vectors for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces an answer from a system prompt and a user prompt.
type Generator interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// SemanticIndex stores chunk vectors and answers nearest-neighbor queries.
type SemanticIndex interface {
	UpsertChunks(ctx context.Context, vectors []models.ChunkVector) error
	NearestChunks(ctx context.Context, embedding []float32, topK int) ([]models.ChunkMatch, error)
}

// HistoryStore persists per-session conversation history.
type HistoryStore interface {
	Messages(ctx context.Context, session string) ([]models.Message, error)
	Append(ctx context.Context, session string, msg models.Message) error
	Clear(ctx context.Context, session string) error
}

const (
	// historyWindow is how many trailing messages are included in the prompt.
	historyWindow = 6

	// fallbackTopK and fallbackMinScore govern the semantic index fallback
	// used when the live search returns nothing.
	fallbackTopK     = 3
	fallbackMinScore = 0.5
)

// Service orchestrates paper search, retrieval and answer generation.
type Service struct {
	searcher  PaperSearcher
	embedder  Embedder
	generator Generator

	// index is nil when the semantic index is not configured. The service
	// then runs in degraded mode: no fallback retrieval, no backfill.
	index SemanticIndex

	history HistoryStore
	tasks   *Runner
	stats   *metrics.Collector
	logger  *slog.Logger

	arxivMaxResults int
}

// New creates a Service. index may be nil when SurrealDB is not configured.
func New(
	searcher PaperSearcher,
	embedder Embedder,
	generator Generator,
	index SemanticIndex,
	history HistoryStore,
	tasks *Runner,
	stats *metrics.Collector,
	arxivMaxResults int,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if stats == nil {
		stats = metrics.NewCollector()
	}
	if arxivMaxResults <= 0 {
		arxivMaxResults = 10
	}
	return &Service{
		searcher:        searcher,
		embedder:        embedder,
		generator:       generator,
		index:           index,
		history:         history,
		tasks:           tasks,
		stats:           stats,
		logger:          logger,
		arxivMaxResults: arxivMaxResults,
	}
}

// IndexEnabled reports whether the semantic index is configured.
func (s *Service) IndexEnabled() bool {
	return s.index != nil
}

// Stats returns a snapshot of runtime metrics.
func (s *Service) Stats() metrics.Snapshot {
	return s.stats.Snapshot()
}

// History returns the full conversation history for a session.
func (s *Service) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	return s.history.Messages(ctx, sessionID)
}

// ClearHistory deletes all messages for a session.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	return s.history.Clear(ctx, sessionID)
}
