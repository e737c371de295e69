package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Provider identifies an LLM or embedding backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	ServerPort string

	// SurrealDB connection. An empty URL disables the semantic index and
	// switches session history to the in-memory store.
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// LLM generation
	LLMProvider     Provider
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Embeddings
	EmbeddingProvider  Provider
	EmbeddingModel     string
	EmbeddingDimension int

	// arXiv search
	ArxivMaxResults int
	ArxivUserAgent  string

	// Heuristic tables (researcher allowlist, term denylist, stop words).
	// Empty means embedded defaults.
	TablesFile string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		ServerPort: getEnv("ARXIUM_SERVER_PORT", "8787"),

		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "arxium"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "papers"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LLMProvider:     Provider(getEnv("ARXIUM_LLM_PROVIDER", string(ProviderOllama))),
		LLMModel:        getEnv("ARXIUM_LLM_MODEL", "llama3.3"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		EmbeddingProvider:  Provider(getEnv("ARXIUM_EMBEDDING_PROVIDER", string(ProviderOllama))),
		EmbeddingModel:     getEnv("ARXIUM_EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDimension: getEnvInt("ARXIUM_EMBEDDING_DIMENSION", 768),

		ArxivMaxResults: getEnvInt("ARXIUM_ARXIV_MAX_RESULTS", 10),
		ArxivUserAgent:  getEnv("ARXIUM_ARXIV_USER_AGENT", "arxium/1.0"),

		TablesFile: os.Getenv("ARXIUM_TABLES_FILE"),

		LogFile:  getEnv("ARXIUM_LOG_FILE", "/tmp/arxium.log"),
		LogLevel: parseLogLevel(getEnv("ARXIUM_LOG_LEVEL", "INFO")),
	}
}

// IndexEnabled reports whether the SurrealDB-backed semantic index is
// configured at all.
func (c Config) IndexEnabled() bool {
	return c.SurrealDBURL != "" && c.SurrealDBURL != "disabled"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
