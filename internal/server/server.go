// Package server provides the HTTP API with lifecycle management.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/raphaelgruber/arxium/internal/models"
	"github.com/raphaelgruber/arxium/internal/service"
)

// Server wraps the HTTP server with dependencies and lifecycle management.
type Server struct {
	http   *http.Server
	svc    *service.Service
	logger *slog.Logger
}

// New creates the API server listening on addr.
func New(svc *service.Service, addr string, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the routing table wrapped in CORS and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/history/{session}", s.handleHistory)
	mux.HandleFunc("GET /api/history/", s.handleMissingSession)
	mux.HandleFunc("POST /api/clear/{session}", s.handleClear)
	mux.HandleFunc("POST /api/clear/", s.handleMissingSession)
	mux.HandleFunc("POST /api/setup", s.handleSetup)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("OPTIONS /", s.handlePreflight)
	mux.HandleFunc("/", s.handleNotFound)

	return withLogging(withCORS(mux), s.logger)
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")
	return s.http.Shutdown(shutdownCtx)
}

type queryRequest struct {
	Query          string `json:"query"`
	SessionID      string `json:"session_id"`
	ResponseLength string `json:"response_length"`
}

type queryResponse struct {
	Answer    string            `json:"answer"`
	Citations []models.Citation `json:"citations"`
	SessionID string            `json:"session_id"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	if req.Query == "" || req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing query or session_id",
		})
		return
	}

	result, err := s.svc.Answer(r.Context(), req.Query, req.SessionID, service.ResponseLength(req.ResponseLength))
	if err != nil {
		if errors.Is(err, service.ErrNoPapers) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "No papers found",
				"message": "Could not find any relevant papers. Please try a different query.",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:    result.Answer,
		Citations: result.Citations,
		SessionID: result.SessionID,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session")

	messages, err := s.svc.History(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch history",
			"message": err.Error(),
		})
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session")

	if err := s.svc.ClearHistory(r.Context(), sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to clear history",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "History cleared",
		"session_id": sessionID,
	})
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Seed(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrIndexDisabled) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Semantic index not available",
				"message": "SurrealDB is not configured. Set SURREALDB_URL and restart the server.",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to store vectors",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Setup complete",
		"papers_loaded":   result.PapersLoaded,
		"vectors_created": result.VectorsCreated,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleMissingSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": "Missing session_id",
	})
}

func (s *Server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not found"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
