package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "Attention weighs values by query-key compatibility.",
			"citations": [{"paper_id":"1706.03762v7","title":"Attention Is All You Need","section":"Abstract","url":"https://arxiv.org/abs/1706.03762v7"}],
			"session_id": "s1"
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Query(context.Background(), "What is attention?", "s1", "short")
	require.NoError(t, err)

	assert.Equal(t, "Attention weighs values by query-key compatibility.", result.Answer)
	assert.Equal(t, "s1", result.SessionID)
	require.Len(t, result.Citations, 1)
	assert.Equal(t, "1706.03762v7", result.Citations[0].PaperID)
}

func TestQueryErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"No papers found","message":"Could not find any relevant papers. Please try a different query."}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Query(context.Background(), "nothing", "s1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No papers found")
	assert.Contains(t, err.Error(), "try a different query")
}

func TestHistoryAndClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/history/s1":
			w.Write([]byte(`[{"role":"user","content":"hi","timestamp":1},{"role":"assistant","content":"hello","timestamp":2}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/clear/s1":
			w.Write([]byte(`{"message":"History cleared","session_id":"s1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	msgs, err := c.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)

	require.NoError(t, c.Clear(context.Background(), "s1"))
}

func TestSetup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/setup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Setup complete","papers_loaded":5,"vectors_created":16}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Setup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.PapersLoaded)
	assert.Equal(t, 16, result.VectorsCreated)
}

func TestServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
