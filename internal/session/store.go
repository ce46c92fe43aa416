package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/branchtitle/internal/logging"
)

// Store scans and appends to session logs under a projects root.
type Store struct {
	root        string
	agentPrefix string
	logger      *logging.Logger
}

// NewStore creates a store over the given projects root. Files whose
// stem starts with agentPrefix are invisible to it.
func NewStore(root, agentPrefix string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:        root,
		agentPrefix: agentPrefix,
		logger:      logger,
	}
}

// Root returns the projects root directory.
func (s *Store) Root() string {
	return s.root
}

// List scans every project directory under the root and returns one Info
// per session file, named or not. filter restricts results to project
// directories whose name contains it as a substring.
//
// A missing root yields an empty result and nil error. Unreadable files
// and malformed lines are skipped. The context deadline bounds the scan;
// on expiry the partial result is returned with the context error.
func (s *Store) List(ctx context.Context, filter string) ([]Info, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects root %s: %w", s.root, err)
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := entry.Name()
		if filter != "" && !strings.Contains(project, filter) {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.root, project))
		if err != nil {
			s.logger.Warn("skipping unreadable project directory",
				zap.String("project", project), zap.Error(err))
			continue
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return infos, err
			}
			if file.IsDir() || filepath.Ext(file.Name()) != FileExt {
				continue
			}
			sessionID := strings.TrimSuffix(file.Name(), FileExt)
			if strings.HasPrefix(sessionID, s.agentPrefix) {
				continue
			}
			info := s.scanFile(filepath.Join(s.root, project, file.Name()))
			info.Project = project
			info.SessionID = sessionID
			infos = append(infos, info)
		}
	}

	return infos, nil
}

// scanFile reads one session log and tracks the latest custom-title and
// summary records in file order. Open and parse failures degrade to an
// unnamed session.
func (s *Store) scanFile(path string) Info {
	var info Info

	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("skipping unreadable session file",
			zap.String("path", path), zap.Error(err))
		return info
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Session logs can carry large message records on a single line
	const maxScanTokenSize = 10 * 1024 * 1024 // 10MB
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}
		switch record.Type {
		case TypeCustomTitle:
			info.CustomName = record.CustomTitle
		case TypeSummary:
			info.Summary = record.Summary
		}
	}
	// Scanner errors leave whatever was read so far; a truncated tail
	// behaves like a shorter log.

	return info
}

// AppendTitle appends one custom-title record to the session log for
// sessionID in the project derived from cwd. The file must already
// exist; a rename never creates a session.
func (s *Store) AppendTitle(cwd, sessionID, title string) error {
	path := filepath.Join(s.root, ProjectDirName(cwd), sessionID+FileExt)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("session file not found: %s", path)
	}

	record := Record{
		Type:        TypeCustomTitle,
		CustomTitle: title,
		SessionID:   sessionID,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding rename record: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending rename record: %w", err)
	}
	return nil
}

// ProjectDirName maps a working directory to its project directory name:
// path separators become dashes.
func ProjectDirName(cwd string) string {
	return strings.ReplaceAll(cwd, string(filepath.Separator), "-")
}

// FormatLine renders one session as a two-column line: the session id,
// two spaces, and the display name truncated to MaxDisplayLen runes.
// Unnamed sessions render as the empty string.
func FormatLine(info Info) string {
	name := info.DisplayName()
	if name == "" {
		return ""
	}
	if runes := []rune(name); len(runes) > MaxDisplayLen {
		name = string(runes[:MaxDisplayLen])
	}
	return info.SessionID + "  " + name
}
