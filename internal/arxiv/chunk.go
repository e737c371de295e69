package arxiv

import "strings"

// DefaultChunkWords is the fixed chunk size, in words, used when abstracts
// are split for embedding.
const DefaultChunkWords = 300

// ChunkWords splits text into fixed-size word chunks. The final chunk may be
// shorter. Empty or whitespace-only text yields no chunks.
func ChunkWords(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkWords
	}

	var chunks []string
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
