// Package cli provides the command-line interface for arxium.
package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/arxium/internal/client"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	serverURL string
	sessionID string

	// API client shared by all commands.
	apiClient *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "arxium",
	Short: "Q&A over ML research papers",
	Long: `Arxium answers questions about machine learning research papers.

Questions are grounded in live arXiv search results and a semantic index of
previously seen papers, with answers synthesized by an LLM and cited back
to the source papers. Conversations are grouped into sessions so follow-up
questions keep their context.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.New(serverURL)
		if sessionID == "" {
			sessionID = uuid.New().String()[:8]
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "arxium server URL (default $ARXIUM_SERVER_URL or http://localhost:8787)")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "session id (default: a fresh random session)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(statsCmd)
}
