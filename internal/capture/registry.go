package capture

import (
	"fmt"
	"sort"

	"github.com/andreadev-it/norgcap/internal/errors"
)

// Registry holds named capture definitions.
type Registry struct {
	captures map[string]Definition
}

// NewRegistry creates a registry from a definition map (typically the
// captures section of the configuration).
func NewRegistry(defs map[string]Definition) *Registry {
	captures := make(map[string]Definition, len(defs))
	for name, def := range defs {
		captures[name] = def
	}
	return &Registry{captures: captures}
}

// Add registers or replaces a definition under name.
func (r *Registry) Add(name string, def Definition) {
	r.captures[name] = def
}

// ListNames returns all capture names, sorted, for completion surfaces.
func (r *Registry) ListNames() []string {
	names := make([]string, 0, len(r.captures))
	for name := range r.captures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a capture, validates it, resolves computed fields and
// fills defaults into an immutable copy. The stored definition is never
// mutated. Validation failures are configuration errors; an unknown name
// is not-found.
func (r *Registry) Resolve(name string) (*Resolved, error) {
	def, ok := r.captures[name]
	if !ok {
		return nil, errors.NewCaptureNotFound(name)
	}

	if !def.Path.IsSet() {
		return nil, errors.NewConfiguration(fmt.Sprintf("capture %q: path is required", name))
	}
	hasContent := def.Content.IsSet()
	hasSnippet := def.Snippet != ""
	if hasContent == hasSnippet {
		return nil, errors.NewConfiguration(fmt.Sprintf("capture %q: exactly one of content or snippet must be set", name))
	}

	kind := def.Kind
	if kind == "" {
		kind = KindNewFile
	}
	if kind != KindNewFile && kind != KindAppend {
		return nil, errors.NewConfiguration(fmt.Sprintf("capture %q: kind must be one of: new_file, append", name))
	}

	pos := def.Position
	if pos == "" {
		pos = PositionBottom
	}
	if pos != PositionTop && pos != PositionBottom {
		return nil, errors.NewConfiguration(fmt.Sprintf("capture %q: position must be one of: top, bottom", name))
	}

	path, err := def.Path.Resolve()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.NewConfiguration(fmt.Sprintf("capture %q: path resolved to empty", name))
	}
	content, err := def.Content.Resolve()
	if err != nil {
		return nil, err
	}
	target, err := def.Target.Resolve()
	if err != nil {
		return nil, err
	}
	data, err := def.Data.Resolve()
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Name:       name,
		Path:       path,
		Content:    content,
		Snippet:    def.Snippet,
		Workspace:  def.Workspace,
		Kind:       kind,
		Target:     target,
		Position:   pos,
		Data:       data,
		hasContent: hasContent,
	}, nil
}
