package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/arxium/internal/client"
)

var askLength string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about ML research papers",
	Long: `Ask a question and get an answer grounded in research papers.

The server searches arXiv live, falls back to its semantic index of
previously seen papers, and synthesizes a cited answer. Use --session to
keep follow-up questions in the same conversation.

Examples:
  arxium ask "What is attention?"
  arxium ask "papers by Yann LeCun" --length short
  arxium ask -s mythesis "How does BERT pre-training work?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askLength, "length", "n", "medium", "response length: short, medium or long")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := args[0]

	result, err := runWithSpinner(query, func(ctx context.Context) (*client.QueryResult, error) {
		return apiClient.Query(ctx, query, sessionID, askLength)
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)

	if len(result.Citations) > 0 {
		fmt.Println()
		fmt.Println(defaultTheme.titleStyle().Render("Citations"))
		for _, c := range result.Citations {
			fmt.Printf("  • %s (%s)\n", c.Title, c.Section)
			fmt.Printf("    %s\n", defaultTheme.hintStyle().Render(c.URL))
		}
	}

	fmt.Println()
	fmt.Println(defaultTheme.hintStyle().Render(
		fmt.Sprintf("session %s - follow up with: arxium ask -s %s \"...\"", result.SessionID, result.SessionID)))
	return nil
}
