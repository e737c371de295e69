package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
	"github.com/raphaelgruber/arxium/internal/papers"
)

// ErrIndexDisabled indicates an operation that requires the semantic index
// was called without one configured.
var ErrIndexDisabled = errors.New("semantic index not configured")

var vectorIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SeedResult reports what a corpus seeding run produced.
type SeedResult struct {
	PapersLoaded   int
	VectorsCreated int
}

// Seed embeds the built-in paper corpus and stores it in the semantic
// index. Unlike backfill this runs synchronously and fails on the first
// error.
func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	if s.index == nil {
		return SeedResult{}, ErrIndexDisabled
	}

	corpus := papers.Corpus()
	var vectors []models.ChunkVector

	for _, paper := range corpus {
		texts := make([]string, len(paper.Chunks))
		for i, chunk := range paper.Chunks {
			texts[i] = chunk.Text
		}

		start := time.Now()
		embedded, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			s.stats.RecordError(metrics.OpEmbedding)
			return SeedResult{}, fmt.Errorf("embed chunks of paper %s: %w", paper.ID, err)
		}
		s.stats.RecordTiming(metrics.OpEmbedding, time.Since(start))

		for i, chunk := range paper.Chunks {
			vectors = append(vectors, models.ChunkVector{
				ID:     fmt.Sprintf("%s-%s", paper.ID, vectorIDSanitizer.ReplaceAllString(chunk.Section, "-")),
				Values: embedded[i],
				Metadata: models.ChunkMetadata{
					PaperID: paper.ID,
					Title:   paper.Title,
					Section: chunk.Section,
					Text:    chunk.Text,
					URL:     paper.URL,
				},
			})
		}
	}

	start := time.Now()
	if err := s.index.UpsertChunks(ctx, vectors); err != nil {
		s.stats.RecordError(metrics.OpIndexUpsert)
		return SeedResult{}, fmt.Errorf("store seed vectors: %w", err)
	}
	s.stats.RecordTiming(metrics.OpIndexUpsert, time.Since(start))

	s.logger.Info("seeded paper corpus", "papers", len(corpus), "vectors", len(vectors))

	return SeedResult{
		PapersLoaded:   len(corpus),
		VectorsCreated: len(vectors),
	}, nil
}
