// Package naming derives unique display names for sessions on a branch.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// Next returns the display name for a new session on branch, given the
// display names of the sessions that already exist in the project.
//
//   - no prior session on the branch: the branch name itself
//   - N prior sessions: "branch (N+1)"
//
// A prior name counts iff it equals branch exactly or is branch followed
// by a parenthesized integer, e.g. "feature-x (3)". The branch is matched
// literally, never as a pattern.
func Next(branch string, existing []string) string {
	count := matchCount(branch, existing)
	if count == 0 {
		return branch
	}
	return fmt.Sprintf("%s (%d)", branch, count+1)
}

// matchCount counts names belonging to branch.
func matchCount(branch string, names []string) int {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(branch) + `(?: \(\d+\))?$`)
	count := 0
	for _, name := range names {
		if pattern.MatchString(name) {
			count++
		}
	}
	return count
}

// MaxSuffix returns the highest parenthesized suffix among names
// belonging to branch, with the bare branch name counting as 1.
// Returns 0 when no name matches.
//
// This is the robust alternative to the count-based policy in Next:
// Next("b", ["b", "b (3)"]) yields "b (3)" again after "b (2)" was
// renamed away, whereas MaxSuffix+1 would yield "b (4)". Next preserves
// the count-based behavior; callers wanting gap-safe numbering can
// switch to MaxSuffix.
func MaxSuffix(branch string, names []string) int {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(branch) + `(?: \((\d+)\))?$`)
	max := 0
	for _, name := range names {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n := 1
		if m[1] != "" {
			parsed, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			n = parsed
		}
		if n > max {
			max = n
		}
	}
	return max
}
