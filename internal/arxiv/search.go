// Package arxiv queries the arXiv API and classifies queries as
// author-targeted or topical.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/raphaelgruber/arxium/internal/config"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// overFetch is the minimum number of results requested upstream, even when
// fewer are needed, so the author post-filter has something to work with.
const overFetch = 10

// Paper is one normalized arXiv record.
type Paper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Abstract  string   `json:"abstract"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
}

// Client searches the arXiv API.
type Client struct {
	httpClient *http.Client
	userAgent  string
	tables     *config.Tables
	stopWords  *regexp.Regexp
	logger     *slog.Logger
}

// NewClient creates an arXiv search client using the given heuristic tables.
func NewClient(cfg config.Config, tables *config.Tables, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  cfg.ArxivUserAgent,
		tables:     tables,
		stopWords:  compileStopWords(tables.StopWords),
		logger:     logger,
	}
}

func compileStopWords(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Search runs query against arXiv and returns up to maxResults normalized
// papers, sorted by relevance descending. Author queries search the author
// field and post-filter by author match; topical queries search free text
// with stop words stripped. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	det := Detect(query, c.tables)

	var expr string
	if det.IsAuthorQuery && det.AuthorName != "" {
		expr = `au:"` + det.AuthorName + `"`
		c.logger.Debug("author query detected", "author", det.AuthorName)
	} else {
		expr = c.cleanQuery(query)
	}

	fetch := maxResults
	if fetch < overFetch {
		fetch = overFetch
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		apiBase, url.QueryEscape(expr), fetch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arxiv response: %w", err)
	}

	papers := papersFromFeed(feed)

	if det.IsAuthorQuery && det.AuthorName != "" {
		papers = filterByAuthor(papers, det.AuthorName)
		c.logger.Debug("filtered author results", "author", det.AuthorName, "kept", len(papers))
	}

	if maxResults > 0 && len(papers) > maxResults {
		papers = papers[:maxResults]
	}
	return papers, nil
}

// cleanQuery strips stop words for the free-text expression. If stripping
// empties the query, the original query is used instead.
func (c *Client) cleanQuery(query string) string {
	if c.stopWords == nil {
		return query
	}
	cleaned := strings.Join(strings.Fields(c.stopWords.ReplaceAllString(query, "")), " ")
	if cleaned == "" {
		return query
	}
	return cleaned
}

// filterByAuthor keeps papers where some author's full name contains the
// detected name, or the detected name contains that author's last token.
// The last-token fallback trades precision for recall on common surnames;
// that tradeoff is accepted.
func filterByAuthor(papers []Paper, name string) []Paper {
	nameLower := strings.ToLower(name)

	var kept []Paper
	for _, p := range papers {
		for _, author := range p.Authors {
			authorLower := strings.ToLower(author)
			if strings.Contains(authorLower, nameLower) {
				kept = append(kept, p)
				break
			}
			toks := strings.Fields(authorLower)
			if len(toks) > 0 && strings.Contains(nameLower, toks[len(toks)-1]) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// papersFromFeed normalizes feed entries. A record missing its identifier,
// title, or abstract is dropped, never an error.
func papersFromFeed(feed atomFeed) []Paper {
	var papers []Paper
	for _, entry := range feed.Entries {
		id := extractID(entry.ID)
		title := normalizeSpace(entry.Title)
		abstract := normalizeSpace(entry.Summary)
		if id == "" || title == "" || abstract == "" {
			continue
		}

		p := Paper{
			ID:        id,
			Title:     title,
			Abstract:  abstract,
			URL:       "https://arxiv.org/abs/" + id,
			Published: strings.TrimSpace(entry.Published),
		}
		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
		papers = append(papers, p)
	}
	return papers
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041v1").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}

// normalizeSpace collapses whitespace runs to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
