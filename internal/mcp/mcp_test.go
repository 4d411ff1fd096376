package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/andreadev-it/norgcap/internal/capture"
	"github.com/andreadev-it/norgcap/internal/config"
	"github.com/andreadev-it/norgcap/internal/journal"
	"github.com/andreadev-it/norgcap/internal/ops"
)

// testSetup builds an app over a temporary state dir, a temporary
// workspace root and a real journal database.
func testSetup(t *testing.T) (*ops.App, string) {
	t.Helper()

	baseDir := t.TempDir()
	root := t.TempDir()

	cfg := &config.Config{
		DefaultWorkspace: "notes",
		Workspaces: map[string]string{
			"notes": root,
			"diary": t.TempDir(),
		},
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

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultPayload unmarshals the JSON text of a success result.
func resultPayload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatalf("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not TextContent")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal result payload: %v", err)
	}
	return payload
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	payload := resultPayload(t, result)
	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in payload")
	}
	code, _ := errorObj["code"].(string)
	if code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

func TestHandleRun(t *testing.T) {
	app, root := testSetup(t)
	h := NewHandlers(app)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "run configured capture",
			args:      map[string]any{"name": "inbox"},
			wantError: false,
		},
		{
			name:      "run without name",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "run unknown capture",
			args:      map[string]any{"name": "nope"},
			wantError: true,
			errorCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleRun(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
				return
			}
			if result.IsError {
				t.Fatalf("unexpected error result: %v", result.Content)
			}
		})
	}

	// The successful run above created the file on disk.
	data, err := os.ReadFile(filepath.Join(root, "inbox.norg"))
	if err != nil {
		t.Fatalf("capture file missing: %v", err)
	}
	if string(data) != "* Inbox\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestHandleList(t *testing.T) {
	app, _ := testSetup(t)
	h := NewHandlers(app)

	result, err := h.HandleList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultPayload(t, result)
	captures, ok := payload["captures"].([]any)
	if !ok || len(captures) != 1 || captures[0] != "inbox" {
		t.Errorf("captures = %v, want [inbox]", payload["captures"])
	}
}

func TestHandleShow(t *testing.T) {
	app, _ := testSetup(t)
	h := NewHandlers(app)
	ctx := context.Background()

	result, err := h.HandleShow(ctx, makeRequest(map[string]any{"name": "inbox"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultPayload(t, result)
	if payload["kind"] != "new_file" {
		t.Errorf("kind = %v, want new_file", payload["kind"])
	}

	result, err = h.HandleShow(ctx, makeRequest(map[string]any{"name": "nope"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleWorkspace(t *testing.T) {
	app, _ := testSetup(t)
	h := NewHandlers(app)
	ctx := context.Background()

	result, err := h.HandleWorkspaceCurrent(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultPayload(t, result)
	if payload["current"] != "notes" {
		t.Errorf("current = %v, want notes", payload["current"])
	}

	result, err = h.HandleWorkspaceSwitch(ctx, makeRequest(map[string]any{"name": "diary"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload = resultPayload(t, result)
	if payload["current"] != "diary" {
		t.Errorf("current = %v, want diary", payload["current"])
	}

	result, err = h.HandleWorkspaceSwitch(ctx, makeRequest(map[string]any{"name": "nope"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleHistory(t *testing.T) {
	app, _ := testSetup(t)
	h := NewHandlers(app)
	ctx := context.Background()

	if _, err := h.HandleRun(ctx, makeRequest(map[string]any{"name": "inbox"})); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	result, err := h.HandleHistory(ctx, makeRequest(map[string]any{"capture": "inbox"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	payload := resultPayload(t, result)
	entries, ok := payload["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("entries = %v, want one entry", payload["entries"])
	}
	entry := entries[0].(map[string]any)
	if entry["capture"] != "inbox" {
		t.Errorf("entry capture = %v, want inbox", entry["capture"])
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Errorf("got %d names, want %d", len(names), len(toolRegistry))
	}
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			t.Errorf("unknown tool name %q", name)
		}
	}
}
