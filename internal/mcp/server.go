// Package mcp exposes captures as MCP tools over stdio, so agent
// clients can file notes into the same workspaces the editor uses.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/andreadev-it/norgcap/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"capture_run": {
		def:     runToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRun },
	},
	"capture_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"capture_show": {
		def:     showToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleShow },
	},
	"workspace_current": {
		def:     workspaceCurrentToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWorkspaceCurrent },
	},
	"workspace_switch": {
		def:     workspaceSwitchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWorkspaceSwitch },
	},
	"capture_history": {
		def:     historyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with capture tools registered.
func NewServer(app *ops.App, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"norgcap",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(app)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server using stdio transport.
func Run(app *ops.App, version string) error {
	s := NewServer(app, version)
	return server.ServeStdio(s)
}
