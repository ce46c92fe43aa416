// Package git resolves the current branch for a working directory.
//
// The branch query shells out to the git CLI with a bounded timeout.
// Absence of a branch — no repository, no git binary, timeout, detached
// state reported as an error — is an expected outcome, not an error:
// callers get a result-or-absent pair and decide what to skip.
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// CurrentBranch runs `git rev-parse --abbrev-ref HEAD` in cwd and
// returns the branch name. The second return is false when no branch
// could be resolved within timeout, for any reason.
func CurrentBranch(ctx context.Context, cwd string, timeout time.Duration) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = cwd
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}

	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", false
	}
	return branch, true
}

// IsTrunk reports whether branch is the configured trunk branch.
func IsTrunk(branch, trunk string) bool {
	return branch == trunk
}
