package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreadev-it/norgcap/internal/capture"
	"github.com/andreadev-it/norgcap/internal/config"
	"github.com/andreadev-it/norgcap/internal/journal"
	"github.com/andreadev-it/norgcap/internal/ops"
)

// setupTestApp builds an ops.App over temporary directories.
func setupTestApp(t *testing.T) (*ops.App, string) {
	t.Helper()

	baseDir := t.TempDir()
	root := t.TempDir()

	cfg := &config.Config{
		DefaultWorkspace: "notes",
		Workspaces:       map[string]string{"notes": root},
		Captures: map[string]capture.Definition{
			"inbox": {
				Path:    capture.String("inbox.norg"),
				Content: capture.String("* Inbox\n"),
			},
		},
	}

	db, err := journal.Init(baseDir)
	if err != nil {
		t.Fatalf("failed to init journal: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return ops.NewApp(baseDir, cfg, db), root
}

// runCLI runs the CLI with args and returns captured stdout.
func runCLI(t *testing.T, app *ops.App, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := newCLIApp(app).Run(append([]string{"norgcap"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestCLIRun(t *testing.T) {
	app, root := setupTestApp(t)

	out, err := runCLI(t, app, "run", "inbox")
	if err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	var output ops.RunOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Path != "inbox.norg" {
		t.Errorf("path = %q, want inbox.norg", output.Path)
	}
	if output.JournalID == "" {
		t.Errorf("expected a journal ID")
	}

	data, err := os.ReadFile(filepath.Join(root, "inbox.norg"))
	if err != nil {
		t.Fatalf("capture file missing: %v", err)
	}
	if string(data) != "* Inbox\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestCLIRunMissingName(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := runCLI(t, app, "run")
	if err == nil {
		t.Fatalf("expected error for missing capture name")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestCLIRunUnknownCapture(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := runCLI(t, app, "run", "nope")
	if err == nil {
		t.Fatalf("expected error for unknown capture")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestCLIList(t *testing.T) {
	app, _ := setupTestApp(t)

	out, err := runCLI(t, app, "list")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Captures) != 1 || output.Captures[0] != "inbox" {
		t.Errorf("captures = %v, want [inbox]", output.Captures)
	}
}

func TestCLIShow(t *testing.T) {
	app, _ := setupTestApp(t)

	out, err := runCLI(t, app, "show", "inbox")
	if err != nil {
		t.Fatalf("show command failed: %v", err)
	}

	var output capture.Resolved
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Kind != capture.KindNewFile {
		t.Errorf("kind = %q, want new_file", output.Kind)
	}
	if output.Position != capture.PositionBottom {
		t.Errorf("position = %q, want bottom", output.Position)
	}
}

func TestCLIWorkspace(t *testing.T) {
	app, _ := setupTestApp(t)

	out, err := runCLI(t, app, "workspace")
	if err != nil {
		t.Fatalf("workspace command failed: %v", err)
	}

	var output ops.WorkspaceOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Current != "notes" {
		t.Errorf("current = %q, want notes", output.Current)
	}

	_, err = runCLI(t, app, "workspace", "nope")
	if err == nil {
		t.Fatalf("expected error for unknown workspace")
	}
}

func TestCLIHistory(t *testing.T) {
	app, _ := setupTestApp(t)

	if _, err := runCLI(t, app, "run", "inbox"); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	out, err := runCLI(t, app, "history", "--capture=inbox")
	if err != nil {
		t.Fatalf("history command failed: %v", err)
	}

	var output ops.HistoryOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(output.Entries))
	}
	if output.Entries[0].Capture != "inbox" {
		t.Errorf("entry capture = %q, want inbox", output.Entries[0].Capture)
	}
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"norgcap"}, false},
		{"known subcommand", []string{"norgcap", "run"}, true},
		{"help flag", []string{"norgcap", "--help"}, true},
		{"unknown arg", []string{"norgcap", "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			os.Args = tt.args
			defer func() { os.Args = oldArgs }()

			if got := isCLIMode(); got != tt.expected {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.expected)
			}
		})
	}
}
