package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/branchtitle/internal/config"
	"github.com/fyrsmithlabs/branchtitle/internal/session"
)

// listCmd lists sessions with their IDs and display names
var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List sessions and their display names",
	Long: `List sessions under the projects root, one line per named session:
the session id, two spaces, and the display name truncated to 50
characters. The display name is the session's custom title if set,
else its summary; unnamed sessions are omitted.

The optional filter is a substring match on project directory names.

Examples:
  # List every session
  branchtitle list

  # List sessions for one project
  branchtitle list my-repo`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

// runList handles the list command
func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	store := session.NewStore(cfg.Sessions.Root, cfg.Sessions.AgentPrefix, nil)

	if _, err := os.Stat(store.Root()); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects directory found")
		return nil
	}

	infos, err := store.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found")
		return nil
	}

	for _, info := range infos {
		if line := session.FormatLine(info); line != "" {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	return nil
}
