// Package hook implements the SessionStart rename orchestration.
//
// The host application invokes the hook once per new session with a
// JSON payload on stdin and reads a JSON result from stdout. The flow
// is a linear state machine with no retries: every external failure
// after input parsing degrades to a logged skip or a fallback value.
package hook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/branchtitle/internal/config"
	"github.com/fyrsmithlabs/branchtitle/internal/git"
	"github.com/fyrsmithlabs/branchtitle/internal/logging"
	"github.com/fyrsmithlabs/branchtitle/internal/naming"
	"github.com/fyrsmithlabs/branchtitle/internal/session"
)

// SourceStartup is the hook source value for a fresh interactive
// session. Resumed and background sessions carry other values and are
// never renamed.
const SourceStartup = "startup"

// Input is the hook payload read from stdin.
type Input struct {
	SessionID string `json:"session_id"`
	CWD       string `json:"cwd"`
	Source    string `json:"source"`
}

// Output is the hook result written to stdout.
type Output struct {
	Continue      bool   `json:"continue"`
	SystemMessage string `json:"systemMessage"`
}

// BranchFunc resolves the current branch for a working directory.
// ok is false when no branch could be determined.
type BranchFunc func(ctx context.Context, cwd string) (branch string, ok bool)

// Runner orchestrates one session rename.
type Runner struct {
	cfg    *config.Config
	logger *logging.Logger
	store  *session.Store
	branch BranchFunc
}

// NewRunner wires a Runner from config: a session store over the
// configured projects root and a git-backed branch query.
func NewRunner(cfg *config.Config, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		store:  session.NewStore(cfg.Sessions.Root, cfg.Sessions.AgentPrefix, logger),
		branch: func(ctx context.Context, cwd string) (string, bool) {
			return git.CurrentBranch(ctx, cwd, cfg.Git.Timeout.Duration())
		},
	}
}

// Run executes the rename flow: decode the payload, resolve the branch,
// gather existing session names, derive a unique name, and append the
// rename record. Only an undecodable payload returns an error; every
// other failure is logged and absorbed. The result object is written to
// out only when a rename was attempted.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	var input Input
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		r.logger.Error("hook input parse failed", zap.Error(err))
		return fmt.Errorf("decoding hook input: %w", err)
	}

	r.logger.Info("session start",
		zap.String("session_id", input.SessionID),
		zap.String("cwd", input.CWD),
		zap.String("source", input.Source))

	if input.Source != SourceStartup {
		r.logger.Info("skipping rename for source", zap.String("source", input.Source))
		return nil
	}

	branch, ok := r.branch(ctx, input.CWD)
	if !ok {
		r.logger.Info("no git branch found, skipping rename")
		return nil
	}

	if git.IsTrunk(branch, r.cfg.Naming.TrunkBranch) {
		r.logger.Info("skipping rename for trunk branch", zap.String("branch", branch))
		return nil
	}

	names := r.existingNames(ctx, input.CWD)
	r.logger.Info("found existing session names", zap.Int("count", len(names)))

	name := naming.Next(branch, names)
	r.logger.Info("renaming session", zap.String("name", name))

	var output Output
	if err := r.store.AppendTitle(input.CWD, input.SessionID, name); err != nil {
		r.logger.Error("rename failed", zap.Error(err))
		output = Output{Continue: true, SystemMessage: "Failed to rename session to: " + name}
	} else {
		r.logger.Info("rename succeeded", zap.String("name", name))
		output = Output{Continue: true, SystemMessage: "Session: " + name}
	}

	if err := json.NewEncoder(out).Encode(output); err != nil {
		return fmt.Errorf("encoding hook output: %w", err)
	}
	return nil
}

// existingNames lists the display names of sessions in the project,
// scoped to the last path segment of cwd, under the listing timeout.
// Any failure degrades to zero known names.
func (r *Runner) existingNames(ctx context.Context, cwd string) []string {
	listCtx, cancel := context.WithTimeout(ctx, r.cfg.Sessions.ListTimeout.Duration())
	defer cancel()

	infos, err := r.store.List(listCtx, filepath.Base(cwd))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			r.logger.Warn("session listing timed out")
		} else {
			r.logger.Warn("session listing failed", zap.Error(err))
		}
		return nil
	}
	return session.Names(infos)
}
