// Package ops wires the capture core to its filesystem collaborators and
// exposes the operations shared by the CLI and the MCP server.
package ops

import (
	"database/sql"

	"github.com/andreadev-it/norgcap/internal/capture"
	"github.com/andreadev-it/norgcap/internal/config"
	"github.com/andreadev-it/norgcap/internal/errors"
	"github.com/andreadev-it/norgcap/internal/journal"
	"github.com/andreadev-it/norgcap/internal/outline"
	"github.com/andreadev-it/norgcap/internal/snippet"
	"github.com/andreadev-it/norgcap/internal/workspace"
)

// App bundles the long-lived state behind every operation.
type App struct {
	Config     *config.Config
	Registry   *capture.Registry
	Workspaces *workspace.Provider
	DB         *sql.DB // capture journal; nil disables recording
}

// NewApp builds an App from loaded configuration. baseDir is the state
// directory (normally ~/.norgcap).
func NewApp(baseDir string, cfg *config.Config, db *sql.DB) *App {
	return &App{
		Config:     cfg,
		Registry:   capture.NewRegistry(cfg.Captures),
		Workspaces: workspace.NewProvider(baseDir, cfg.Workspaces, cfg.DefaultWorkspace),
		DB:         db,
	}
}

// newExecutor assembles a capture executor over the filesystem
// collaborators. The snippet capability is decided here, once, from
// configuration.
func (a *App) newExecutor() *capture.Executor {
	var engine capture.SnippetEngine
	if a.Config.SnippetEngineEnabled() {
		engine = flattenEngine{}
	}
	return capture.NewExecutor(capture.ExecutorOptions{
		Registry:   a.Registry,
		Workspaces: a.Workspaces,
		Files:      workspace.NewFiles(a.Workspaces),
		Outline:    outline.Provider{},
		Engine:     engine,
		AutoSwitch: a.Config.AutoSwitchEnabled(),
	})
}

// flattenEngine is the snippet engine used outside an editor: it inserts
// the snippet body with tab-stop markers stripped and records the cursor
// at the first stop.
type flattenEngine struct{}

func (flattenEngine) Expand(buf capture.Buffer, snip snippet.Snippet, atLine, atCol int) error {
	lines, row, col := snip.Flatten()
	if err := buf.InsertLines(atLine, lines); err != nil {
		return err
	}
	return buf.SetCursor(atLine+row, atCol+col)
}

// RunOutput is the result of RunCapture.
type RunOutput struct {
	*capture.Result
	JournalID string `json:"journal_id,omitempty"`
}

// RunCapture executes the named capture and records it in the journal.
// Journal recording is best-effort after a successful capture; the
// capture itself is never rolled back.
func (a *App) RunCapture(name string) (*RunOutput, error) {
	result, err := a.newExecutor().Run(name)
	if err != nil {
		return nil, err
	}

	out := &RunOutput{Result: result}
	if a.DB != nil {
		id, err := journal.Record(a.DB, &journal.Entry{
			Capture:   result.Capture,
			Workspace: result.Workspace,
			Path:      result.Path,
			Kind:      string(result.Kind),
			Line:      result.Line,
		})
		if err != nil {
			return nil, err
		}
		out.JournalID = id
	}
	return out, nil
}

// ListOutput is the result of ListCaptures.
type ListOutput struct {
	Captures []string `json:"captures"`
}

// ListCaptures returns all configured capture names.
func (a *App) ListCaptures() ListOutput {
	return ListOutput{Captures: a.Registry.ListNames()}
}

// ShowCapture resolves a definition with defaults filled, for config
// debugging.
func (a *App) ShowCapture(name string) (*capture.Resolved, error) {
	return a.Registry.Resolve(name)
}

// WorkspaceOutput is the result of workspace operations.
type WorkspaceOutput struct {
	Current    string   `json:"current"`
	Workspaces []string `json:"workspaces"`
}

// CurrentWorkspace reports the active workspace and all configured ones.
func (a *App) CurrentWorkspace() (*WorkspaceOutput, error) {
	current, err := a.Workspaces.CurrentWorkspace()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &WorkspaceOutput{Current: current, Workspaces: a.Workspaces.Names()}, nil
}

// SwitchWorkspace activates the named workspace.
func (a *App) SwitchWorkspace(name string) (*WorkspaceOutput, error) {
	if name == "" {
		return nil, errors.NewInvalidRequest("workspace name is required")
	}
	ok, err := a.Workspaces.SetWorkspace(name)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !ok {
		return nil, errors.NewInvalidRequest("unknown workspace: " + name)
	}
	return &WorkspaceOutput{Current: name, Workspaces: a.Workspaces.Names()}, nil
}

// HistoryOutput is the result of History.
type HistoryOutput struct {
	Entries []journal.Entry `json:"entries"`
}

// History lists recent journal entries, optionally filtered by capture.
func (a *App) History(captureName string, limit int) (*HistoryOutput, error) {
	if a.DB == nil {
		return &HistoryOutput{}, nil
	}
	entries, err := journal.Recent(a.DB, captureName, limit)
	if err != nil {
		return nil, err
	}
	return &HistoryOutput{Entries: entries}, nil
}
