package db

import "fmt"

// schemaSQL returns the schema initialization SQL. The HNSW index dimension
// must match the configured embedding model's output dimension.
func schemaSQL(dimension int) string {
	return fmt.Sprintf(`
    -- ==========================================================================
    -- PAPER_CHUNK TABLE (semantic index)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS paper_chunk SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS paper_id ON paper_chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON paper_chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS section ON paper_chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS text ON paper_chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS url ON paper_chunk TYPE string;
    DEFINE FIELD IF NOT EXISTS embedding ON paper_chunk TYPE array<float>;
    DEFINE FIELD IF NOT EXISTS created ON paper_chunk TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS paper_chunk_paper ON paper_chunk FIELDS paper_id;
    DEFINE INDEX IF NOT EXISTS paper_chunk_embedding ON paper_chunk FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;

    -- ==========================================================================
    -- MESSAGE TABLE (per-session chat history)
    -- ==========================================================================
    -- ULID record ids give insertion order within a session; timestamp is the
    -- client-visible unix-millisecond value.
    DEFINE TABLE IF NOT EXISTS message SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS session ON message TYPE string;
    DEFINE FIELD IF NOT EXISTS role ON message TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON message TYPE string;
    DEFINE FIELD IF NOT EXISTS timestamp ON message TYPE int;

    DEFINE INDEX IF NOT EXISTS message_session ON message FIELDS session;
`, dimension)
}
