package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/andreadev-it/norgcap/internal/errors"
	"github.com/andreadev-it/norgcap/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	app *ops.App
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(app *ops.App) *Handlers {
	return &Handlers{app: app}
}

// Request types for each tool

// RunRequest represents the arguments for capture_run.
type RunRequest struct {
	Name string `json:"name"`
}

// ShowRequest represents the arguments for capture_show.
type ShowRequest struct {
	Name string `json:"name"`
}

// WorkspaceSwitchRequest represents the arguments for workspace_switch.
type WorkspaceSwitchRequest struct {
	Name string `json:"name"`
}

// HistoryRequest represents the arguments for capture_history.
type HistoryRequest struct {
	Capture string `json:"capture,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Handler implementations

// HandleRun handles the capture_run tool call.
func (h *Handlers) HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Name == "" {
		return errorResult(errors.NewInvalidRequest("capture name is required")), nil
	}

	result, err := h.app.RunCapture(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the capture_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.app.ListCaptures())
}

// HandleShow handles the capture_show tool call.
func (h *Handlers) HandleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Name == "" {
		return errorResult(errors.NewInvalidRequest("capture name is required")), nil
	}

	result, err := h.app.ShowCapture(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWorkspaceCurrent handles the workspace_current tool call.
func (h *Handlers) HandleWorkspaceCurrent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.app.CurrentWorkspace()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWorkspaceSwitch handles the workspace_switch tool call.
func (h *Handlers) HandleWorkspaceSwitch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WorkspaceSwitchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.app.SwitchWorkspace(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistory handles the capture_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	result, err := h.app.History(input.Capture, limit)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if capErr, ok := err.(*errors.CaptureError); ok {
		errorObj := map[string]any{
			"code":    capErr.Code,
			"message": capErr.Message,
		}
		if capErr.Code != errors.ErrInternal && capErr.Details != nil {
			errorObj["details"] = capErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
