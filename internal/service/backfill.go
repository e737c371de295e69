package service

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/arxium/internal/arxiv"
	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
)

// scheduleBackfill enqueues a background task that chunks, embeds and
// indexes the abstracts of freshly found papers. No-op without an index
// or a runner.
func (s *Service) scheduleBackfill(papers []arxiv.Paper) {
	if s.index == nil || s.tasks == nil || len(papers) == 0 {
		return
	}

	s.tasks.Submit("backfill", func(ctx context.Context) {
		s.backfill(ctx, papers)
	})
}

// backfill indexes paper abstracts in 300-word chunks. Chunks that fail to
// embed are skipped so one bad chunk cannot sink the batch.
func (s *Service) backfill(ctx context.Context, papers []arxiv.Paper) {
	var vectors []models.ChunkVector

	for _, paper := range papers {
		chunks := arxiv.ChunkWords(paper.Abstract, arxiv.DefaultChunkWords)
		for i, chunk := range chunks {
			start := time.Now()
			embedding, err := s.embedder.Embed(ctx, chunk)
			if err != nil {
				s.stats.RecordError(metrics.OpEmbedding)
				s.logger.Error("failed to embed backfill chunk",
					"paper_id", paper.ID, "chunk", i, "error", err)
				continue
			}
			s.stats.RecordTiming(metrics.OpEmbedding, time.Since(start))

			vectors = append(vectors, models.ChunkVector{
				ID:     fmt.Sprintf("%s-chunk-%d", paper.ID, i),
				Values: embedding,
				Metadata: models.ChunkMetadata{
					PaperID: paper.ID,
					Title:   paper.Title,
					Section: fmt.Sprintf("Abstract (chunk %d)", i+1),
					Text:    chunk,
					URL:     paper.URL,
				},
			})
		}
	}

	if len(vectors) == 0 {
		return
	}

	start := time.Now()
	if err := s.index.UpsertChunks(ctx, vectors); err != nil {
		s.stats.RecordError(metrics.OpIndexUpsert)
		s.logger.Error("failed to upsert backfill vectors", "count", len(vectors), "error", err)
		return
	}
	s.stats.RecordTiming(metrics.OpIndexUpsert, time.Since(start))

	s.logger.Debug("backfilled paper chunks", "papers", len(papers), "vectors", len(vectors))
}
