package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/arxium/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a session's conversation history",
	Long: `Show the full conversation history for a session, oldest first.

Examples:
  arxium history -s mythesis`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	messages, err := apiClient.History(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	if len(messages) == 0 {
		fmt.Printf("No messages in session %s.\n", sessionID)
		return nil
	}

	for _, msg := range messages {
		role := "Assistant"
		style := defaultTheme.statusStyle()
		if msg.Role == models.RoleUser {
			role = "You"
			style = defaultTheme.titleStyle()
		}

		ts := time.UnixMilli(msg.Timestamp).Format("15:04:05")
		fmt.Printf("%s %s\n%s\n\n",
			style.Render(role),
			defaultTheme.hintStyle().Render(ts),
			msg.Content)
	}
	return nil
}
