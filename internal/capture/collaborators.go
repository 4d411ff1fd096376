package capture

import (
	"github.com/andreadev-it/norgcap/internal/outline"
	"github.com/andreadev-it/norgcap/internal/snippet"
)

// Collaborator interfaces consumed by the Executor. The filesystem
// implementations live in internal/workspace and internal/buffer; the
// Neovim host supplies its own set backed by live editor buffers.

// WorkspaceProvider reports and switches the active workspace.
type WorkspaceProvider interface {
	CurrentWorkspace() (string, error)
	// SetWorkspace activates the named workspace and reports whether the
	// switch succeeded.
	SetWorkspace(name string) (bool, error)
}

// Buffer is a mutable view of one open document.
type Buffer interface {
	Name() string
	LineCount() (int, error)
	Lines() ([]string, error)
	// InsertLines inserts lines before the 0-based index at. It never
	// overwrites existing lines.
	InsertLines(at int, lines []string) error
	SetCursor(line, col int) error
}

// FileCreator creates (or opens) a file relative to the workspace root
// and returns a buffer over it.
type FileCreator interface {
	CreateFile(path string) (Buffer, error)
}

// OutlineProvider reports raw heading nodes for a named document. The
// heading locator owns interpretation; providers only enumerate nodes.
type OutlineProvider interface {
	HeadingNodes(name string, lines []string) ([]outline.Node, error)
}

// SnippetEngine expands a snippet into a buffer at a position.
type SnippetEngine interface {
	Expand(buf Buffer, snip snippet.Snippet, atLine, atCol int) error
}
