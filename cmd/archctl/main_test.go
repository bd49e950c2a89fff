package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

// run executes archctl against a file backend rooted at dir.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--backend", "file", "--data-dir", dir}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, dir, args...)
	require.NoError(t, err, stderr)
	return out
}

func showProject(t *testing.T, dir string) domain.Project {
	t.Helper()
	var p domain.Project
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "show")), &p))
	return p
}

func TestShowDefaults(t *testing.T) {
	dir := t.TempDir()
	p := showProject(t, dir)
	assert.Equal(t, domain.DefaultTitle, p.Title)
	assert.Len(t, p.Microservices, 4)

	_, err := os.Stat(filepath.Join(dir, "archdesign-project.json"))
	assert.True(t, os.IsNotExist(err), "reading does not write")
}

func TestSetAndSections(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "set", "--title", "Ride Sharing", "--flow-step", "a", "--flow-step", "b")
	mustRun(t, dir, "section", "toggle", "c")
	mustRun(t, dir, "section", "toggle", "A")

	p := showProject(t, dir)
	assert.Equal(t, "Ride Sharing", p.Title)
	assert.Equal(t, []string{"a", "b"}, p.SequenceFlowSteps)
	assert.Equal(t, []string{"C", "A"}, p.CompletedSections)

	out := mustRun(t, dir, "section", "ls")
	assert.Contains(t, out, "[x] A  Architectural Style")
	assert.Contains(t, out, "[ ] B  System Architecture")

	_, _, err := run(t, dir, "section", "toggle", "Z")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)

	_, _, err = run(t, dir, "set")
	assert.Error(t, err)
}

func TestServiceCommands(t *testing.T) {
	dir := t.TempDir()

	id := strings.TrimSpace(mustRun(t, dir, "service", "add", "--name", "Auth", "--database", "PostgreSQL"))
	assert.True(t, strings.HasPrefix(id, "service-"), id)

	mustRun(t, dir, "service", "update", id, "--name", "AuthZ")
	p := showProject(t, dir)
	svc := p.Microservices[len(p.Microservices)-1]
	assert.Equal(t, "AuthZ", svc.Name)
	assert.Equal(t, "PostgreSQL", svc.DatabaseType)

	_, stderr, err := run(t, dir, "service", "rm", "nope")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"nope" not found`)

	mustRun(t, dir, "service", "rm", id)
	assert.Len(t, showProject(t, dir).Microservices, 4)

	assert.Contains(t, mustRun(t, dir, "service", "ls"), "auth-service")
}

func TestDiagramCommands(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "node", "add", "--id", "web", "--type", "client", "--label", "Web")
	mustRun(t, dir, "node", "add", "--id", "api", "--type", "gateway", "--x", "100")
	mustRun(t, dir, "conn", "add", "--id", "c1", "--from", "web", "--to", "api")

	_, _, err := run(t, dir, "node", "add", "--type", "mainframe")
	assert.ErrorIs(t, err, domain.ErrInvalidNodeType)

	mustRun(t, dir, "node", "rm", "api")
	out := mustRun(t, dir, "conn", "ls")
	assert.Contains(t, out, "c1")
	assert.Contains(t, out, "true")

	p := showProject(t, dir)
	require.Len(t, p.DiagramConnections, 1)
	assert.Equal(t, "HTTP/REST", p.DiagramConnections[0].Protocol)
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "--title", "Exported")

	md := mustRun(t, dir, "export", "--format", "markdown")
	assert.True(t, strings.HasPrefix(md, "# Exported\n"))

	file := filepath.Join(t.TempDir(), "project.yaml")
	mustRun(t, dir, "export", "-f", "yaml", "-o", file)

	other := t.TempDir()
	out := mustRun(t, other, "import", file)
	assert.Contains(t, out, `imported "Exported"`)
	assert.Equal(t, "Exported", showProject(t, other).Title)
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "--title", "Temp")

	_, _, err := run(t, dir, "reset")
	assert.Error(t, err)
	assert.Equal(t, "Temp", showProject(t, dir).Title)

	mustRun(t, dir, "reset", "--yes")
	assert.Equal(t, domain.DefaultTitle, showProject(t, dir).Title)
}

func TestSecurityAndBackup(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "jwt: true\n", mustRun(t, dir, "security", "toggle", "jwt"))
	assert.Contains(t, mustRun(t, dir, "security", "ls"), "jwt              true")

	backups := filepath.Join(t.TempDir(), "backups")
	path := strings.TrimSpace(mustRun(t, dir, "backup", "--dir", backups))
	_, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, path+"\n", mustRun(t, dir, "backup", "--dir", backups, "--list"))
}

func TestBackupDefaultsUnderDataDir(t *testing.T) {
	t.Setenv("BACKUP_DIR", "")
	dir := t.TempDir()

	path := strings.TrimSpace(mustRun(t, dir, "backup"))
	assert.Equal(t, filepath.Join(dir, "backups"), filepath.Dir(path))
	assert.FileExists(t, path)
}
