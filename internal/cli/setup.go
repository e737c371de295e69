package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Seed the built-in paper corpus into the semantic index",
	Long: `Embed the built-in corpus of famous ML papers and load it into the
server's semantic index. Requires the server to be configured with
SurrealDB. Safe to run repeatedly.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	result, err := apiClient.Setup(context.Background())
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	fmt.Println(defaultTheme.titleStyle().Render("✓ " + result.Message))
	fmt.Printf("  Papers loaded:   %d\n", result.PapersLoaded)
	fmt.Printf("  Vectors created: %d\n", result.VectorsCreated)
	return nil
}
