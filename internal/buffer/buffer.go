// Package buffer provides a file-backed implementation of the capture
// buffer collaborator. Each mutation is written through to disk
// immediately: effects are ordered and never rolled back.
package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBuffer is a line-oriented view of a file on disk.
type FileBuffer struct {
	path       string
	lines      []string
	cursorLine int
	cursorCol  int
}

// Create opens path as a buffer, creating the file (and any missing
// parent directories) when it does not exist.
func Create(path string) (*FileBuffer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directories: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, err
		}
		data = nil
	}

	return &FileBuffer{path: path, lines: splitFile(data)}, nil
}

// Name returns the buffer's file path.
func (b *FileBuffer) Name() string {
	return b.path
}

// LineCount returns the number of lines in the buffer.
func (b *FileBuffer) LineCount() (int, error) {
	return len(b.lines), nil
}

// Lines returns a copy of the buffer's lines.
func (b *FileBuffer) Lines() ([]string, error) {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out, nil
}

// InsertLines inserts lines before the 0-based index at and writes the
// buffer back to disk. An index past the end appends.
func (b *FileBuffer) InsertLines(at int, lines []string) error {
	if at < 0 {
		at = 0
	}
	if at > len(b.lines) {
		at = len(b.lines)
	}

	updated := make([]string, 0, len(b.lines)+len(lines))
	updated = append(updated, b.lines[:at]...)
	updated = append(updated, lines...)
	updated = append(updated, b.lines[at:]...)
	b.lines = updated

	return b.save()
}

// SetCursor records the cursor position. Plain files have no real
// cursor; the position is kept so callers can report it.
func (b *FileBuffer) SetCursor(line, col int) error {
	b.cursorLine = line
	b.cursorCol = col
	return nil
}

// Cursor returns the recorded cursor position.
func (b *FileBuffer) Cursor() (line, col int) {
	return b.cursorLine, b.cursorCol
}

func (b *FileBuffer) save() error {
	content := strings.Join(b.lines, "\n")
	if len(b.lines) > 0 {
		content += "\n"
	}
	return os.WriteFile(b.path, []byte(content), 0644)
}

// splitFile splits file content into lines, treating the trailing
// newline as a terminator rather than an extra empty line.
func splitFile(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n")
}
