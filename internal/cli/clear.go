package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete a session's conversation history",
	Long: `Delete all messages in a session.

Examples:
  arxium clear -s mythesis`,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("session") {
		return fmt.Errorf("clear requires an explicit --session")
	}

	if err := apiClient.Clear(context.Background(), sessionID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Printf("History cleared for session %s.\n", sessionID)
	return nil
}
