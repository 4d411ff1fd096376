// Package workspace provides the filesystem implementations of the
// workspace and file-creation collaborators: named workspace roots from
// configuration, with the active workspace persisted in the state dir.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andreadev-it/norgcap/internal/buffer"
	"github.com/andreadev-it/norgcap/internal/capture"
)

// stateFile is the name of the current-workspace marker in the base dir.
const stateFile = "workspace"

// Provider resolves and switches named workspaces on disk.
type Provider struct {
	baseDir     string
	roots       map[string]string
	defaultName string
}

// NewProvider creates a Provider. roots maps workspace names to root
// directories; defaultName is used when no switch has been recorded.
func NewProvider(baseDir string, roots map[string]string, defaultName string) *Provider {
	if defaultName == "" {
		defaultName = "default"
	}
	return &Provider{baseDir: baseDir, roots: roots, defaultName: defaultName}
}

// CurrentWorkspace returns the active workspace name. Falls back to the
// default when no switch has been recorded or the recorded name is no
// longer configured.
func (p *Provider) CurrentWorkspace() (string, error) {
	data, err := os.ReadFile(filepath.Join(p.baseDir, stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return p.defaultName, nil
		}
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return p.defaultName, nil
	}
	if _, ok := p.roots[name]; !ok && name != p.defaultName {
		return p.defaultName, nil
	}
	return name, nil
}

// SetWorkspace activates the named workspace. Returns false without
// error when the name is not configured.
func (p *Provider) SetWorkspace(name string) (bool, error) {
	if _, ok := p.roots[name]; !ok {
		return false, nil
	}
	if err := os.MkdirAll(p.baseDir, 0700); err != nil {
		return false, err
	}
	if err := os.WriteFile(filepath.Join(p.baseDir, stateFile), []byte(name+"\n"), 0600); err != nil {
		return false, err
	}
	return true, nil
}

// Root returns the root directory of a named workspace. The default
// workspace falls back to the working directory when it has no
// configured root, so captures work without any workspace setup.
func (p *Provider) Root(name string) (string, error) {
	root, ok := p.roots[name]
	if !ok {
		if name == p.defaultName {
			return os.Getwd()
		}
		return "", fmt.Errorf("unknown workspace: %s", name)
	}
	return expandHome(root), nil
}

// Names returns all configured workspace names, sorted.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.roots))
	for name := range p.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Files creates capture files inside the current workspace root.
type Files struct {
	provider *Provider
}

// NewFiles creates a FileCreator over the provider's current workspace.
func NewFiles(provider *Provider) *Files {
	return &Files{provider: provider}
}

// CreateFile creates (or opens) path relative to the current workspace
// root and returns a write-through file buffer over it.
func (f *Files) CreateFile(path string) (capture.Buffer, error) {
	current, err := f.provider.CurrentWorkspace()
	if err != nil {
		return nil, err
	}
	root, err := f.provider.Root(current)
	if err != nil {
		return nil, err
	}
	return buffer.Create(filepath.Join(root, path))
}

// expandHome rewrites a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
