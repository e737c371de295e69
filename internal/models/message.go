// Package models defines the shared data types for arxium.
package models

// Message roles. The system role never reaches the history store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn in a session's history. Messages are append-only:
// created once, never mutated, only bulk-cleared with their session.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
