package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raphaelgruber/arxium/internal/arxiv"
	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
)

// ErrNoPapers indicates that neither the live search nor the semantic
// index produced any context for a query.
var ErrNoPapers = errors.New("no papers found")

// QueryResult is the outcome of answering a question.
type QueryResult struct {
	Answer    string
	Citations []models.Citation
	SessionID string
}

// Answer runs the full retrieval and generation pipeline for a question.
//
// Live paper search is the primary evidence source. The semantic index is
// consulted only when the search comes back empty, and freshly found
// papers are indexed in the background for future fallback queries. Search
// and history failures degrade the answer instead of failing the request;
// only generation failures and a fully empty context are returned as
// errors.
func (s *Service) Answer(ctx context.Context, query, sessionID string, length ResponseLength) (QueryResult, error) {
	history, err := s.history.Messages(ctx, sessionID)
	if err != nil {
		s.logger.Error("failed to fetch history", "session", sessionID, "error", err)
		history = nil
	}

	papers, err := s.searchPapers(ctx, query)
	if err != nil {
		s.logger.Error("paper search failed", "query", query, "error", err)
		papers = nil
	}

	chunks := make([]models.ContextChunk, 0, len(papers))
	for _, paper := range papers {
		chunks = append(chunks, models.ContextChunk{
			Text:    paper.Abstract,
			Title:   paper.Title,
			Section: "Abstract",
			PaperID: paper.ID,
			URL:     paper.URL,
		})
	}

	if s.index != nil {
		s.scheduleBackfill(papers)

		if len(papers) == 0 {
			chunks = append(chunks, s.fallbackChunks(ctx, query)...)
		}
	}

	if len(chunks) == 0 {
		return QueryResult{}, ErrNoPapers
	}

	systemPrompt := buildSystemPrompt(length)
	userPrompt := buildUserPrompt(chunks, history, query)
	_, maxTokens := lengthInstruction(length)

	start := time.Now()
	answer, err := s.generator.GenerateWithSystem(ctx, systemPrompt, userPrompt, maxTokens)
	if err != nil {
		s.stats.RecordError(metrics.OpLLMGenerate)
		return QueryResult{}, fmt.Errorf("generate answer: %w", err)
	}
	s.stats.RecordTiming(metrics.OpLLMGenerate, time.Since(start))

	s.saveExchange(ctx, sessionID, query, answer)

	return QueryResult{
		Answer:    answer,
		Citations: dedupeCitations(chunks),
		SessionID: sessionID,
	}, nil
}

// searchPapers runs the live search with timing.
func (s *Service) searchPapers(ctx context.Context, query string) ([]arxiv.Paper, error) {
	start := time.Now()
	papers, err := s.searcher.Search(ctx, query, s.arxivMaxResults)
	if err != nil {
		s.stats.RecordError(metrics.OpArxivSearch)
		return nil, err
	}
	s.stats.RecordTiming(metrics.OpArxivSearch, time.Since(start))

	s.logger.Info("paper search completed", "query", query, "found", len(papers))
	return papers, nil
}

// fallbackChunks queries the semantic index for previously indexed chunks
// scoring above the relevance threshold. Failures are logged and produce
// an empty result.
func (s *Service) fallbackChunks(ctx context.Context, query string) []models.ContextChunk {
	start := time.Now()
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.stats.RecordError(metrics.OpEmbedding)
		s.logger.Error("failed to embed query for fallback", "error", err)
		return nil
	}
	s.stats.RecordTiming(metrics.OpEmbedding, time.Since(start))

	start = time.Now()
	matches, err := s.index.NearestChunks(ctx, embedding, fallbackTopK)
	if err != nil {
		s.stats.RecordError(metrics.OpIndexQuery)
		s.logger.Error("semantic index query failed", "error", err)
		return nil
	}
	s.stats.RecordTiming(metrics.OpIndexQuery, time.Since(start))

	var chunks []models.ContextChunk
	for _, match := range matches {
		if match.Score > fallbackMinScore {
			chunks = append(chunks, match.Chunk())
		}
	}

	s.logger.Debug("semantic index fallback", "matches", len(matches), "kept", len(chunks))
	return chunks
}

// saveExchange appends the question and answer to the session history.
// Failures are logged, not returned.
func (s *Service) saveExchange(ctx context.Context, sessionID, query, answer string) {
	now := time.Now().UnixMilli()

	if err := s.history.Append(ctx, sessionID, models.Message{
		Role:      models.RoleUser,
		Content:   query,
		Timestamp: now,
	}); err != nil {
		s.logger.Error("failed to save user message", "session", sessionID, "error", err)
		return
	}

	if err := s.history.Append(ctx, sessionID, models.Message{
		Role:      models.RoleAssistant,
		Content:   answer,
		Timestamp: time.Now().UnixMilli(),
	}); err != nil {
		s.logger.Error("failed to save assistant message", "session", sessionID, "error", err)
	}
}
