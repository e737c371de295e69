// SurrealDB queries backing the session history store.
package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/raphaelgruber/arxium/internal/models"
)

// Messages returns a session's messages in insertion order, oldest first.
// An unknown session yields an empty list, not an error.
func (c *Client) Messages(ctx context.Context, sessionID string) ([]models.Message, error) {
	results, err := surrealdb.Query[[]models.Message](ctx, c.db, `
		SELECT role, content, timestamp FROM message
		WHERE session = $session
		ORDER BY id ASC
	`, map[string]any{"session": sessionID})
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.Message{}, nil
	}
	msgs := (*results)[0].Result
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// Append adds one message to a session's log. The session stream is created
// lazily by its first append.
func (c *Client) Append(ctx context.Context, sessionID string, msg models.Message) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE message:ulid() SET
			session = $session,
			role = $role,
			content = $content,
			timestamp = $timestamp
	`, map[string]any{
		"session":   sessionID,
		"role":      msg.Role,
		"content":   msg.Content,
		"timestamp": msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Clear removes a session's entire message log.
func (c *Client) Clear(ctx context.Context, sessionID string) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		DELETE message WHERE session = $session
	`, map[string]any{"session": sessionID})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
