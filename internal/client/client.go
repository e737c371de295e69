// Package client provides a REST client for the arxium server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/raphaelgruber/arxium/internal/metrics"
	"github.com/raphaelgruber/arxium/internal/models"
)

// Client talks to the arxium HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
// If baseURL is empty, uses ARXIUM_SERVER_URL env var or defaults to localhost:8787.
// Timeout can be configured via ARXIUM_CLIENT_TIMEOUT env var (default 5m, long
// queries hit the LLM).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("ARXIUM_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8787"
	}

	timeout := 5 * time.Minute
	if t := os.Getenv("ARXIUM_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiError is the server's error envelope.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends a request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, method, path string, reqBody, result any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s: %s", apiErr.Error, apiErr.Message)
			}
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// QueryResult is the answer to a question.
type QueryResult struct {
	Answer    string            `json:"answer"`
	Citations []models.Citation `json:"citations"`
	SessionID string            `json:"session_id"`
}

// Query asks a question within a session. responseLength is one of
// short, medium, long; empty means medium.
func (c *Client) Query(ctx context.Context, query, sessionID, responseLength string) (*QueryResult, error) {
	req := map[string]string{
		"query":      query,
		"session_id": sessionID,
	}
	if responseLength != "" {
		req["response_length"] = responseLength
	}

	var result QueryResult
	if err := c.do(ctx, http.MethodPost, "/api/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History returns the full conversation log for a session, oldest first.
func (c *Client) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, "/api/history/"+sessionID, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Clear deletes a session's conversation history.
func (c *Client) Clear(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/api/clear/"+sessionID, nil, nil)
}

// SetupResult reports what a setup run loaded.
type SetupResult struct {
	Message        string `json:"message"`
	PapersLoaded   int    `json:"papers_loaded"`
	VectorsCreated int    `json:"vectors_created"`
}

// Setup seeds the built-in paper corpus into the server's semantic index.
func (c *Client) Setup(ctx context.Context) (*SetupResult, error) {
	var result SetupResult
	if err := c.do(ctx, http.MethodPost, "/api/setup", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats returns the server's runtime metrics snapshot.
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
