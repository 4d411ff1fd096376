// Package nvimhost exposes captures inside Neovim as a remote plugin.
// The host process owns no buffers itself: every mutation goes through
// the editor, so captured text lands in real, undo-tracked buffers.
package nvimhost

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"

	"github.com/andreadev-it/norgcap/internal/capture"
	"github.com/andreadev-it/norgcap/internal/config"
	"github.com/andreadev-it/norgcap/internal/journal"
	"github.com/andreadev-it/norgcap/internal/outline"
	"github.com/andreadev-it/norgcap/internal/workspace"
)

// Host bridges capture execution to a running Neovim instance. State is
// initialized lazily on first use: Register runs during manifest
// generation too, where no configuration should be touched.
type Host struct {
	v *nvim.Nvim

	once    sync.Once
	initErr error

	cfg        *config.Config
	registry   *capture.Registry
	workspaces *workspace.Provider
	db         *sql.DB
}

// Register wires the plugin handlers. Called from plugin.Main.
func Register(p *plugin.Plugin) error {
	h := &Host{v: p.Nvim}

	p.HandleCommand(&plugin.CommandOptions{
		Name:     "NorgCapture",
		NArgs:    "1",
		Complete: "customlist,NorgcapComplete",
	}, h.handleCapture)

	p.HandleCommand(&plugin.CommandOptions{
		Name:  "NorgWorkspace",
		NArgs: "?",
	}, h.handleWorkspace)

	p.HandleFunction(&plugin.FunctionOptions{Name: "NorgcapComplete"}, h.handleComplete)

	return nil
}

func (h *Host) init() error {
	h.once.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			h.initErr = err
			return
		}
		baseDir := filepath.Join(homeDir, ".norgcap")

		cwd, err := os.Getwd()
		if err != nil {
			cwd = homeDir
		}
		cfg, err := config.LoadWithRepo(baseDir, cwd)
		if err != nil {
			h.initErr = err
			return
		}

		// A broken journal degrades to unrecorded captures.
		db, err := journal.Init(baseDir)
		if err != nil {
			db = nil
		}

		h.cfg = cfg
		h.registry = capture.NewRegistry(cfg.Captures)
		h.workspaces = workspace.NewProvider(baseDir, cfg.Workspaces, cfg.DefaultWorkspace)
		h.db = db
	})
	return h.initErr
}

// newExecutor assembles an executor over editor-backed collaborators.
// The snippet capability is probed once per invocation: vim.snippet
// ships with Neovim 0.10+, older editors fall back to plain insertion.
func (h *Host) newExecutor() *capture.Executor {
	var engine capture.SnippetEngine
	if h.cfg.SnippetEngineEnabled() && hasSnippetSupport(h.v) {
		engine = luaSnippetEngine{v: h.v}
	}
	ws := &nvimWorkspaces{Provider: h.workspaces, v: h.v}
	return capture.NewExecutor(capture.ExecutorOptions{
		Registry:   h.registry,
		Workspaces: ws,
		Files:      &nvimFiles{v: h.v, workspaces: ws},
		Outline:    outline.Provider{},
		Engine:     engine,
		AutoSwitch: h.cfg.AutoSwitchEnabled(),
	})
}

func (h *Host) handleCapture(args []string) error {
	if err := h.init(); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("capture name is required")
	}

	result, err := h.newExecutor().Run(args[0])
	if err != nil {
		return err
	}

	if h.db != nil {
		_, _ = journal.Record(h.db, &journal.Entry{
			Capture:   result.Capture,
			Workspace: result.Workspace,
			Path:      result.Path,
			Kind:      string(result.Kind),
			Line:      result.Line,
		})
	}

	msg := fmt.Sprintf("norgcap: %s -> %s", result.Capture, result.Path)
	if result.Switched {
		msg += " (workspace " + result.Workspace + ")"
	}
	return h.v.Command("echomsg " + quoteVimString(msg))
}

func (h *Host) handleWorkspace(args []string) error {
	if err := h.init(); err != nil {
		return err
	}

	ws := &nvimWorkspaces{Provider: h.workspaces, v: h.v}
	if len(args) == 0 {
		current, err := ws.CurrentWorkspace()
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("norgcap: workspace %s (%s)", current, strings.Join(ws.Names(), ", "))
		return h.v.Command("echomsg " + quoteVimString(msg))
	}

	ok, err := ws.SetWorkspace(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown workspace: %s", args[0])
	}
	return h.v.Command("echomsg " + quoteVimString("norgcap: workspace "+args[0]))
}

// handleComplete implements customlist completion for :NorgCapture.
// Vim calls it with (ArgLead, CmdLine, CursorPos).
func (h *Host) handleComplete(args []interface{}) ([]string, error) {
	if err := h.init(); err != nil {
		return nil, nil
	}
	prefix := ""
	if len(args) > 0 {
		prefix, _ = args[0].(string)
	}
	return matchPrefix(h.registry.ListNames(), prefix), nil
}

// matchPrefix filters names to those starting with prefix, keeping order.
func matchPrefix(names []string, prefix string) []string {
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matched = append(matched, name)
		}
	}
	return matched
}

// quoteVimString wraps s in single quotes for :echomsg, doubling
// embedded quotes per vimscript rules.
func quoteVimString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
