package service

import "github.com/raphaelgruber/arxium/internal/models"

// dedupeCitations keeps the first citation seen for each paper ID,
// preserving encounter order.
func dedupeCitations(chunks []models.ContextChunk) []models.Citation {
	seen := make(map[string]bool, len(chunks))
	citations := make([]models.Citation, 0, len(chunks))
	for _, chunk := range chunks {
		if seen[chunk.PaperID] {
			continue
		}
		seen[chunk.PaperID] = true
		citations = append(citations, chunk.Citation())
	}
	return citations
}
