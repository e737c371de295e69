// SurrealDB queries backing the semantic index.
package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/raphaelgruber/arxium/internal/models"
)

// knnEF is the HNSW search effort parameter; larger improves recall at the
// cost of latency.
const knnEF = 40

// storedChunk mirrors one paper_chunk row.
type storedChunk struct {
	PaperID string  `json:"paper_id"`
	Title   string  `json:"title"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
}

// UpsertChunks writes embedded chunks into the index, replacing any existing
// record with the same id.
func (c *Client) UpsertChunks(ctx context.Context, vectors []models.ChunkVector) error {
	for _, v := range vectors {
		_, err := surrealdb.Query[any](ctx, c.db, `
			UPSERT type::record("paper_chunk", $id) CONTENT {
				paper_id: $paper_id,
				title: $title,
				section: $section,
				text: $text,
				url: $url,
				embedding: $embedding
			}
		`, map[string]any{
			"id":        v.ID,
			"paper_id":  v.Metadata.PaperID,
			"title":     v.Metadata.Title,
			"section":   v.Metadata.Section,
			"text":      v.Metadata.Text,
			"url":       v.Metadata.URL,
			"embedding": v.Values,
		})
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", v.ID, err)
		}
	}
	return nil
}

// NearestChunks runs a KNN search over the HNSW index and returns the topK
// nearest chunks with cosine similarity scores, best first.
func (c *Client) NearestChunks(ctx context.Context, embedding []float32, topK int) ([]models.ChunkMatch, error) {
	if topK <= 0 {
		topK = 3
	}

	sql := fmt.Sprintf(`
		SELECT paper_id, title, section, text, url,
			vector::similarity::cosine(embedding, $emb) AS score
		FROM paper_chunk
		WHERE embedding <|%d,%d|> $emb
		ORDER BY score DESC
	`, topK, knnEF)

	results, err := surrealdb.Query[[]storedChunk](ctx, c.db, sql, map[string]any{"emb": embedding})
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	var matches []models.ChunkMatch
	if results != nil && len(*results) > 0 {
		for _, row := range (*results)[0].Result {
			matches = append(matches, models.ChunkMatch{
				Score: row.Score,
				Metadata: models.ChunkMetadata{
					PaperID: row.PaperID,
					Title:   row.Title,
					Section: row.Section,
					Text:    row.Text,
					URL:     row.URL,
				},
			})
		}
	}
	return matches, nil
}
