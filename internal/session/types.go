// Package session reads and appends to Claude Code session log files.
//
// A session is one append-only JSONL file under a project directory.
// Only two record types matter here: "custom-title" (an explicit
// display name) and "summary" (the automatic fallback). Later records
// override earlier ones. A rename never rewrites history; it appends
// one more custom-title record.
package session

// Record types consumed from session logs. All other types are ignored.
const (
	TypeCustomTitle = "custom-title"
	TypeSummary     = "summary"
)

// FileExt is the session log file extension.
const FileExt = ".jsonl"

// MaxDisplayLen is the display-name column width in listing output.
const MaxDisplayLen = 50

// Record is one line of a session log file.
type Record struct {
	Type        string `json:"type"`
	CustomTitle string `json:"customTitle,omitempty"`
	Summary     string `json:"summary,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
}

// Info describes one session log file after scanning.
type Info struct {
	Project    string
	SessionID  string
	CustomName string
	Summary    string
}

// DisplayName resolves the session's display name: the custom title if
// present, else the summary. Empty means the session is unnamed.
func (i Info) DisplayName() string {
	if i.CustomName != "" {
		return i.CustomName
	}
	return i.Summary
}

// Names returns the resolved non-empty display names, in scan order.
func Names(infos []Info) []string {
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if name := info.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
