// Package history provides the in-memory session store used when no
// database is configured, and by tests.
package history

import (
	"context"
	"slices"
	"sync"

	"github.com/raphaelgruber/arxium/internal/models"
)

// Memory is a process-local session history store. Sessions are independent
// keyed streams created lazily on first append.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]models.Message
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string][]models.Message)}
}

// Messages returns a copy of the session's log, oldest first.
func (m *Memory) Messages(_ context.Context, sessionID string) ([]models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sessions[sessionID]), nil
}

// Append adds one message to the session's log.
func (m *Memory) Append(_ context.Context, sessionID string, msg models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	return nil
}

// Clear removes the session's entire log.
func (m *Memory) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
