package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/arxium/internal/arxiv"
	"github.com/raphaelgruber/arxium/internal/history"
	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
	"github.com/raphaelgruber/arxium/internal/service"
)

type stubSearcher struct {
	papers []arxiv.Paper
	err    error
}

func (s *stubSearcher) Search(context.Context, string, int) ([]arxiv.Paper, error) {
	return s.papers, s.err
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{0.1, 0.2}
	}
	return vecs, nil
}

type stubGenerator struct {
	answer string
	err    error
}

func (s *stubGenerator) GenerateWithSystem(context.Context, string, string, int) (string, error) {
	return s.answer, s.err
}

type fakeIndex struct {
	upserted int
}

func (f *fakeIndex) UpsertChunks(_ context.Context, vectors []models.ChunkVector) error {
	f.upserted += len(vectors)
	return nil
}

func (f *fakeIndex) NearestChunks(context.Context, []float32, int) ([]models.ChunkMatch, error) {
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func newTestHandler(t *testing.T, searcher *stubSearcher, gen *stubGenerator, index service.SemanticIndex) http.Handler {
	t.Helper()

	runner := service.NewRunner(1, 8, discardLogger())
	t.Cleanup(runner.Close)

	svc := service.New(searcher, stubEmbedder{}, gen, index, history.NewMemory(),
		runner, metrics.NewCollector(), 10, discardLogger())

	return New(svc, ":0", discardLogger()).Handler()
}

var vaswani = arxiv.Paper{
	ID:       "1706.03762v7",
	Title:    "Attention Is All You Need",
	Authors:  []string{"Ashish Vaswani"},
	Abstract: "We propose the Transformer.",
	URL:      "https://arxiv.org/abs/1706.03762v7",
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{papers: []arxiv.Paper{vaswani}},
		&stubGenerator{answer: "Attention is a weighting mechanism."}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"What is attention?","session_id":"s1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp struct {
		Answer    string            `json:"answer"`
		Citations []models.Citation `json:"citations"`
		SessionID string            `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Attention is a weighting mechanism.", resp.Answer)
	assert.Equal(t, "s1", resp.SessionID)
	require.Len(t, resp.Citations, 1)
	assert.Equal(t, "1706.03762v7", resp.Citations[0].PaperID)
	assert.Equal(t, "Abstract", resp.Citations[0].Section)
}

func TestQueryMissingFields(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{answer: "ok"}, nil)

	for _, body := range []string{
		`{"session_id":"s1"}`,
		`{"query":"hello"}`,
		`{}`,
	} {
		rec := doJSON(t, h, http.MethodPost, "/api/query", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing query or session_id"}`, rec.Body.String())
	}
}

func TestQueryNoPapersFound(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{answer: "unused"}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"obscure","session_id":"s1"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"error":"No papers found","message":"Could not find any relevant papers. Please try a different query."}`,
		rec.Body.String())
}

func TestQueryGenerationFailure(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{papers: []arxiv.Paper{vaswani}},
		&stubGenerator{err: errors.New("model unavailable")}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"attention","session_id":"s1"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp["error"])
	assert.Contains(t, resp["message"], "model unavailable")
}

func TestHistoryRoundTrip(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{papers: []arxiv.Paper{vaswani}},
		&stubGenerator{answer: "answer"}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"attention","session_id":"s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/history/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "attention", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)

	// Unknown sessions return an empty array, not null.
	rec = doJSON(t, h, http.MethodGet, "/api/history/nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHistoryMissingSession(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/history/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing session_id"}`, rec.Body.String())
}

func TestClearEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{papers: []arxiv.Paper{vaswani}},
		&stubGenerator{answer: "answer"}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"attention","session_id":"s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/clear/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"History cleared","session_id":"s1"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/api/history/s1", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestClearMissingSession(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/clear/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing session_id"}`, rec.Body.String())
}

func TestSetupWithoutIndex(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/setup", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Semantic index not available", resp["error"])
}

func TestSetupSeedsCorpus(t *testing.T) {
	index := &fakeIndex{}
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, index)

	rec := doJSON(t, h, http.MethodPost, "/api/setup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Setup complete","papers_loaded":5,"vectors_created":16}`,
		rec.Body.String())
	assert.Equal(t, 16, index.upserted)
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{papers: []arxiv.Paper{vaswani}},
		&stubGenerator{answer: "ok"}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/query",
		`{"query":"attention","session_id":"s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Contains(t, snap, "uptime_seconds")
	assert.Contains(t, snap, "arxiv_search")
	assert.Contains(t, snap, "llm_generate")
}

func TestPreflight(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodOptions, "/api/query", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(t, &stubSearcher{}, &stubGenerator{}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", rec.Body.String())
}
