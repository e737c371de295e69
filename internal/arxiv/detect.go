package arxiv

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/raphaelgruber/arxium/internal/config"
)

// DetectionResult classifies a raw query as author-targeted or topical.
type DetectionResult struct {
	IsAuthorQuery bool
	AuthorName    string
}

// authorPatterns are tried in order; the first match wins regardless of
// specificity.
var authorPatterns = []*regexp.Regexp{
	// "papers by John Smith", "work by John Smith", ...
	regexp.MustCompile(`(?i)(?:papers?\s+by|work\s+by|research\s+by|authored\s+by|publications\s+by)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	// "John Smith from CMU", "John Smith recent"
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\s+from|\s+at|\s+@|\s+recent|\s+work)`),
	// Just a name, possibly with a trailing "from"/"at"
	regexp.MustCompile(`(?i)^([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\s+from|\s+at)?$`),
}

// shortNamePattern is deliberately case-sensitive: the trailing heuristic only
// fires on queries that already look like a capitalized name.
var shortNamePattern = regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z][a-z]+)(?:\s+.*)?$`)

// maxNameQueryTokens bounds the short-name heuristic to short queries.
const maxNameQueryTokens = 6

// Detect classifies query as an author query and extracts the candidate
// author name. Pure function; the heuristic tables are the only inputs
// besides the query itself.
//
// The denylist is necessarily incomplete, so false positives and negatives
// are an accepted tradeoff of the heuristic, not a defect.
func Detect(query string, tables *config.Tables) DetectionResult {
	queryLower := strings.ToLower(query)

	for _, pat := range authorPatterns {
		if m := pat.FindStringSubmatch(query); m != nil {
			return DetectionResult{IsAuthorQuery: true, AuthorName: strings.TrimSpace(m[1])}
		}
	}

	for _, researcher := range tables.Researchers {
		if researcher == "" || !strings.Contains(queryLower, researcher) {
			continue
		}
		if name := recoverName(query, researcher); name != "" {
			return DetectionResult{IsAuthorQuery: true, AuthorName: name}
		}
	}

	if m := shortNamePattern.FindStringSubmatch(query); m != nil && len(strings.Fields(query)) <= maxNameQueryTokens {
		for _, term := range tables.Denylist {
			if term != "" && strings.Contains(queryLower, term) {
				return DetectionResult{}
			}
		}
		return DetectionResult{IsAuthorQuery: true, AuthorName: strings.TrimSpace(m[1])}
	}

	return DetectionResult{}
}

// recoverName finds a known researcher's name as written in the query and
// normalizes each word to first-upper rest-lower.
func recoverName(query, researcher string) string {
	parts := strings.Fields(researcher)
	if len(parts) == 0 {
		return ""
	}

	pieces := make([]string, len(parts))
	for i, part := range parts {
		rest := ""
		if len(part) > 1 {
			rest = regexp.QuoteMeta(part[1:])
		}
		pieces[i] = `[A-Z][a-z]*` + rest
	}

	pat, err := regexp.Compile(`(?i)(` + strings.Join(pieces, `\s+`) + `)`)
	if err != nil {
		return ""
	}
	m := pat.FindStringSubmatch(query)
	if m == nil {
		return ""
	}

	words := strings.Fields(m[1])
	for i, w := range words {
		words[i] = capitalizeWord(w)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
