package nvimhost

import (
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"

	"github.com/andreadev-it/norgcap/internal/capture"
	"github.com/andreadev-it/norgcap/internal/snippet"
	"github.com/andreadev-it/norgcap/internal/workspace"
)

// nvimWorkspaces decorates the workspace provider so a switch also
// changes the editor's working directory.
type nvimWorkspaces struct {
	*workspace.Provider
	v *nvim.Nvim
}

func (w *nvimWorkspaces) SetWorkspace(name string) (bool, error) {
	ok, err := w.Provider.SetWorkspace(name)
	if err != nil || !ok {
		return ok, err
	}
	root, err := w.Provider.Root(name)
	if err != nil {
		return true, nil
	}
	var escaped string
	if err := w.v.Call("fnameescape", &escaped, root); err != nil {
		return true, nil
	}
	_ = w.v.Command("cd " + escaped)
	return true, nil
}

// nvimFiles opens capture files as editor buffers.
type nvimFiles struct {
	v          *nvim.Nvim
	workspaces *nvimWorkspaces
}

func (f *nvimFiles) CreateFile(path string) (capture.Buffer, error) {
	current, err := f.workspaces.CurrentWorkspace()
	if err != nil {
		return nil, err
	}
	root, err := f.workspaces.Root(current)
	if err != nil {
		return nil, err
	}

	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, err
	}

	var escaped string
	if err := f.v.Call("fnameescape", &escaped, full); err != nil {
		return nil, err
	}
	if err := f.v.Command("edit " + escaped); err != nil {
		return nil, err
	}

	buf, err := f.v.CurrentBuffer()
	if err != nil {
		return nil, err
	}
	return &nvimBuffer{v: f.v, buf: buf, name: full}, nil
}

// nvimBuffer adapts a live editor buffer to the capture.Buffer
// interface. A fresh buffer holds one empty line; the capture planner
// treats that as an empty document, so Lines reports it as such.
type nvimBuffer struct {
	v    *nvim.Nvim
	buf  nvim.Buffer
	name string
}

func (b *nvimBuffer) Name() string {
	return b.name
}

func (b *nvimBuffer) LineCount() (int, error) {
	lines, err := b.Lines()
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

func (b *nvimBuffer) Lines() ([]string, error) {
	raw, err := b.v.BufferLines(b.buf, 0, -1, true)
	if err != nil {
		return nil, err
	}
	if len(raw) == 1 && len(raw[0]) == 0 {
		return nil, nil
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = string(l)
	}
	return lines, nil
}

func (b *nvimBuffer) InsertLines(at int, lines []string) error {
	count, err := b.LineCount()
	if err != nil {
		return err
	}
	if at < 0 {
		at = 0
	}
	if at > count {
		at = count
	}

	replacement := make([][]byte, len(lines))
	for i, l := range lines {
		replacement[i] = []byte(l)
	}

	// Appending into an untouched buffer replaces its single empty line
	// instead of leaving it behind.
	if count == 0 {
		return b.v.SetBufferLines(b.buf, 0, -1, false, replacement)
	}
	return b.v.SetBufferLines(b.buf, at, at, true, replacement)
}

func (b *nvimBuffer) SetCursor(line, col int) error {
	win, err := b.v.CurrentWindow()
	if err != nil {
		return err
	}
	// Window cursor lines are 1-based.
	return b.v.SetWindowCursor(win, [2]int{line + 1, col})
}

// luaSnippetEngine delegates expansion to vim.snippet, so tab stops
// behave exactly like native editor snippets.
type luaSnippetEngine struct {
	v *nvim.Nvim
}

func (e luaSnippetEngine) Expand(buf capture.Buffer, snip snippet.Snippet, atLine, atCol int) error {
	nb, ok := buf.(*nvimBuffer)
	if !ok {
		lines, row, col := snip.Flatten()
		if err := buf.InsertLines(atLine, lines); err != nil {
			return err
		}
		return buf.SetCursor(atLine+row, atCol+col)
	}
	if err := nb.SetCursor(atLine, atCol); err != nil {
		return err
	}
	return e.v.ExecLua("vim.snippet.expand(...)", nil, snip.Body)
}

// hasSnippetSupport probes for vim.snippet, present since Neovim 0.10.
func hasSnippetSupport(v *nvim.Nvim) bool {
	var has bool
	if err := v.ExecLua("return vim.snippet ~= nil and vim.snippet.expand ~= nil", &has); err != nil {
		return false
	}
	return has
}
