package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/branchtitle/internal/config"
	"github.com/fyrsmithlabs/branchtitle/internal/logging"
	"github.com/fyrsmithlabs/branchtitle/internal/session"
)

const testCWD = "/home/user/myrepo"

// fixture is a runner over a temp projects root with a scripted branch.
type fixture struct {
	runner     *Runner
	logs       *logging.TestLogger
	projectDir string
}

func newFixture(t *testing.T, branch string, branchOK bool) *fixture {
	t.Helper()

	cfg := config.Default()
	cfg.Sessions.Root = t.TempDir()

	projectDir := filepath.Join(cfg.Sessions.Root, session.ProjectDirName(testCWD))
	require.NoError(t, os.Mkdir(projectDir, 0755))

	logs := logging.NewTestLogger()
	return &fixture{
		runner: &Runner{
			cfg:    cfg,
			logger: logs.Logger,
			store:  session.NewStore(cfg.Sessions.Root, cfg.Sessions.AgentPrefix, logs.Logger),
			branch: func(ctx context.Context, cwd string) (string, bool) {
				return branch, branchOK
			},
		},
		logs:       logs,
		projectDir: projectDir,
	}
}

// addSession writes a session log into the fixture project and returns its id.
func (f *fixture) addSession(t *testing.T, lines ...string) string {
	t.Helper()
	id := uuid.NewString()
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(f.projectDir, id+session.FileExt), []byte(content), 0644))
	return id
}

func payload(sessionID, source string) string {
	b, _ := json.Marshal(Input{SessionID: sessionID, CWD: testCWD, Source: source})
	return string(b)
}

func decodeOutput(t *testing.T, out *bytes.Buffer) Output {
	t.Helper()
	var output Output
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	return output
}

func TestRunner_Run_FirstSessionOnBranch(t *testing.T) {
	f := newFixture(t, "feature-x", true)
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)

	output := decodeOutput(t, &out)
	assert.True(t, output.Continue)
	assert.Equal(t, "Session: feature-x", output.SystemMessage)

	infos, err := f.runner.store.List(context.Background(), "myrepo")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "feature-x", infos[0].DisplayName())
}

func TestRunner_Run_SecondSessionOnBranch(t *testing.T) {
	f := newFixture(t, "feature-x", true)
	f.addSession(t, `{"type":"custom-title","customTitle":"feature-x"}`)
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)

	assert.Equal(t, "Session: feature-x (2)", decodeOutput(t, &out).SystemMessage)

	content, err := os.ReadFile(filepath.Join(f.projectDir, id+session.FileExt))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"customTitle":"feature-x (2)"`)
}

func TestRunner_Run_TrunkBranchSkipped(t *testing.T) {
	f := newFixture(t, "main", true)
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)

	assert.Empty(t, out.Bytes())
	f.logs.AssertLogged(t, zapcore.InfoLevel, "skipping rename for trunk branch")

	// Nothing appended to the session log
	content, err := os.ReadFile(filepath.Join(f.projectDir, id+session.FileExt))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestRunner_Run_NoBranchSkipped(t *testing.T) {
	f := newFixture(t, "", false)
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)

	assert.Empty(t, out.Bytes())
	f.logs.AssertLogged(t, zapcore.InfoLevel, "no git branch found")
}

func TestRunner_Run_NonStartupSourceSkipped(t *testing.T) {
	f := newFixture(t, "feature-x", true)
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, "resume")), &out)
	require.NoError(t, err)

	assert.Empty(t, out.Bytes())
	f.logs.AssertLogged(t, zapcore.InfoLevel, "skipping rename for source")

	content, err := os.ReadFile(filepath.Join(f.projectDir, id+session.FileExt))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestRunner_Run_MalformedInput(t *testing.T) {
	f := newFixture(t, "feature-x", true)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader("not json"), &out)
	require.Error(t, err)
	assert.Empty(t, out.Bytes())
	f.logs.AssertLogged(t, zapcore.ErrorLevel, "hook input parse failed")
}

func TestRunner_Run_MissingSessionFile(t *testing.T) {
	f := newFixture(t, "feature-x", true)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(uuid.NewString(), SourceStartup)), &out)
	require.NoError(t, err)

	output := decodeOutput(t, &out)
	assert.True(t, output.Continue)
	assert.Equal(t, "Failed to rename session to: feature-x", output.SystemMessage)
	f.logs.AssertLogged(t, zapcore.ErrorLevel, "rename failed")
}

func TestRunner_Run_MissingProjectsRootDegradesToFirstSession(t *testing.T) {
	f := newFixture(t, "feature-x", true)
	id := f.addSession(t)
	// Point the store at a root that does not exist; the rename target
	// lookup then fails too, but naming still degrades to first-session.
	f.runner.store = session.NewStore(filepath.Join(t.TempDir(), "gone"), "agent-", f.logs.Logger)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)
	assert.Equal(t, "Failed to rename session to: feature-x", decodeOutput(t, &out).SystemMessage)
}

func TestRunner_Run_AgentSessionsNotCounted(t *testing.T) {
	f := newFixture(t, "feature-x", true)
	agent := `{"type":"custom-title","customTitle":"feature-x"}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(f.projectDir, "agent-"+uuid.NewString()+session.FileExt), []byte(agent), 0644))
	id := f.addSession(t)

	var out bytes.Buffer
	err := f.runner.Run(context.Background(), strings.NewReader(payload(id, SourceStartup)), &out)
	require.NoError(t, err)
	assert.Equal(t, "Session: feature-x", decodeOutput(t, &out).SystemMessage)
}

func TestNewRunner_Wiring(t *testing.T) {
	cfg := config.Default()
	cfg.Sessions.Root = t.TempDir()
	cfg.Git.Timeout = config.Duration(time.Second)

	runner := NewRunner(cfg, nil)
	require.NotNil(t, runner.store)
	require.NotNil(t, runner.branch)

	// The default branch func queries git; a temp dir is not a repo.
	_, ok := runner.branch(context.Background(), t.TempDir())
	assert.False(t, ok)
}
