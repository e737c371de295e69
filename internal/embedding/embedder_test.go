package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/arxium/internal/config"
)

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(config.Config{
		EmbeddingProvider: config.Provider("cohere"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported embedding provider")
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := New(config.Config{
		EmbeddingProvider: config.ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestNewOllama(t *testing.T) {
	e, err := New(config.Config{
		EmbeddingProvider:  config.ProviderOllama,
		EmbeddingModel:     "nomic-embed-text",
		EmbeddingDimension: 768,
		OllamaHost:         "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", e.Model())
	assert.Equal(t, 768, e.Dimension())
}
