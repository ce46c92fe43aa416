// Package main implements the branchtitle CLI for Claude Code session
// naming: a SessionStart hook that renames new sessions after the
// current git branch, and a lister for existing session names.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath is an alternate config file location
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "branchtitle",
	Short: "Name Claude Code sessions after their git branch",
	Long: `branchtitle names Claude Code sessions after the git branch they were
started on, numbering repeat sessions on the same branch: the first
session on feature-x becomes "feature-x", the second "feature-x (2)".

It is installed as a SessionStart hook and also provides a session
lister for inspection.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/branchtitle/config.yaml)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sessionStartCmd)
}
