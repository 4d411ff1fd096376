package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Captures themselves come from configuration; the
// tools only reference them by name.

var runToolDef = mcp.NewTool("capture_run",
	mcp.WithDescription("Execute a named capture: create or open its file in the active workspace and insert the rendered content."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Name of the configured capture to run."),
	),
)

var listToolDef = mcp.NewTool("capture_list",
	mcp.WithDescription("List the names of all configured captures."),
)

var showToolDef = mcp.NewTool("capture_show",
	mcp.WithDescription("Show a capture definition with defaults resolved."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Name of the configured capture to inspect."),
	),
)

var workspaceCurrentToolDef = mcp.NewTool("workspace_current",
	mcp.WithDescription("Report the active workspace and all configured workspace names."),
)

var workspaceSwitchToolDef = mcp.NewTool("workspace_switch",
	mcp.WithDescription("Activate a configured workspace. Subsequent captures resolve paths against its root."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Name of the workspace to activate."),
	),
)

var historyToolDef = mcp.NewTool("capture_history",
	mcp.WithDescription("List recent capture invocations, newest first."),
	mcp.WithString("capture",
		mcp.Description("Only show invocations of this capture."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 20)."),
	),
)
