package models

// ContextChunk is one unit of grounding evidence shown to the language
// model: a piece of paper text plus its provenance.
type ContextChunk struct {
	Text    string
	Title   string
	Section string
	PaperID string
	URL     string
}

// Citation is the response projection of a context chunk. Uniqueness key is
// PaperID.
type Citation struct {
	PaperID string `json:"paper_id"`
	Title   string `json:"title"`
	Section string `json:"section"`
	URL     string `json:"url"`
}

// Citation projects a chunk into its citation form.
func (c ContextChunk) Citation() Citation {
	return Citation{
		PaperID: c.PaperID,
		Title:   c.Title,
		Section: c.Section,
		URL:     c.URL,
	}
}

// ChunkMetadata carries provenance alongside a stored vector.
type ChunkMetadata struct {
	PaperID string `json:"paper_id"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Text    string `json:"text"`
	URL     string `json:"url"`
}

// ChunkVector is an embedded chunk destined for the semantic index.
type ChunkVector struct {
	ID       string
	Values   []float32
	Metadata ChunkMetadata
}

// ChunkMatch is a semantic index hit with its relevance score.
type ChunkMatch struct {
	ID       string
	Score    float64
	Metadata ChunkMetadata
}

// Chunk converts a match's stored metadata back into a context chunk.
func (m ChunkMatch) Chunk() ContextChunk {
	return ContextChunk{
		Text:    m.Metadata.Text,
		Title:   m.Metadata.Title,
		Section: m.Metadata.Section,
		PaperID: m.Metadata.PaperID,
		URL:     m.Metadata.URL,
	}
}
