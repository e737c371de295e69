package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables holds the heuristic word lists used by author-query detection and
// search expression cleanup. They are data, not code: queries evolve faster
// than releases.
type Tables struct {
	// Researchers is the known-author allowlist. Stored lowercased for
	// case-insensitive substring matching.
	Researchers []string `yaml:"researchers"`

	// Denylist contains two-word domain phrases that must never be treated
	// as author names by the short-name heuristic.
	Denylist []string `yaml:"denylist"`

	// StopWords are stripped from topical queries before building the
	// search expression.
	StopWords []string `yaml:"stop_words"`
}

// DefaultTables parses the embedded table file. It panics only on a corrupt
// embedded file, which is a build defect.
func DefaultTables() *Tables {
	t, err := parseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded tables.yaml: %v", err))
	}
	return t
}

// LoadTables reads tables from path, falling back to embedded defaults for
// any list the file leaves empty. An empty path returns the defaults.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}

	t, err := parseTables(data)
	if err != nil {
		return nil, fmt.Errorf("parse tables file %s: %w", path, err)
	}

	defaults := DefaultTables()
	if len(t.Researchers) == 0 {
		t.Researchers = defaults.Researchers
	}
	if len(t.Denylist) == 0 {
		t.Denylist = defaults.Denylist
	}
	if len(t.StopWords) == 0 {
		t.StopWords = defaults.StopWords
	}
	return t, nil
}

func parseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	for i, r := range t.Researchers {
		t.Researchers[i] = strings.ToLower(strings.TrimSpace(r))
	}
	for i, d := range t.Denylist {
		t.Denylist[i] = strings.ToLower(strings.TrimSpace(d))
	}
	for i, w := range t.StopWords {
		t.StopWords[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return &t, nil
}
