package main

import (
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/branchtitle/internal/config"
	"github.com/fyrsmithlabs/branchtitle/internal/hook"
	"github.com/fyrsmithlabs/branchtitle/internal/logging"
)

// sessionStartCmd runs the SessionStart hook
var sessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Run the SessionStart hook: rename the new session after the git branch",
	Long: `Read the SessionStart hook payload from stdin, rename the new session
after the current git branch, and write the hook result to stdout.

Only fresh interactive sessions (source "startup") are renamed; resumed
sessions, sessions on the trunk branch, and working directories without
a resolvable git branch are skipped. The exit code is non-zero only
when the payload cannot be decoded.

Register in Claude Code settings:

  {"hooks": {"SessionStart": [{"hooks": [
    {"type": "command", "command": "branchtitle session-start"}
  ]}]}}`,
	Args: cobra.NoArgs,
	RunE: runSessionStart,
}

// runSessionStart handles the session-start command
func runSessionStart(cmd *cobra.Command, args []string) error {
	// Hook config and diagnostics are best-effort: the host should never
	// see a failure for anything but undecodable input.
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.Default()
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		logger = logging.NewNop()
	}
	defer logger.Sync()

	runner := hook.NewRunner(cfg, logger)
	return runner.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
