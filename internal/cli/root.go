package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snippets",
		Short: "Server-rendered blogging application",
		Long: `snippets is a small server-rendered blogging application.

Users sign up, write entries, comment on each other's entries and
keep favourites. Configuration comes from the environment; see the
serve command for the variables it reads.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
