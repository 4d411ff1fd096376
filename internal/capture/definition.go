package capture

// Kind selects what a capture produces.
type Kind string

const (
	KindNewFile Kind = "new_file" // default
	KindAppend  Kind = "append"   // insert into an existing document
)

// Position is the insert-position preference inside the target range.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom" // default
)

// Definition is a user-authored capture template. Definitions are
// authored once in configuration and read-only at capture time; Resolve
// fills defaults into an immutable copy and never mutates the stored
// definition.
type Definition struct {
	// Path of the file to create or append to, relative to the workspace
	// root. Always required. May contain placeholder tokens.
	Path StringValue `json:"path"`

	// Content is the text to insert. Mutually exclusive with Snippet:
	// exactly one of the two must be set.
	Content StringValue `json:"content,omitempty"`

	// Snippet is an opaque snippet body handed to the snippet engine
	// without placeholder substitution.
	Snippet string `json:"snippet,omitempty"`

	// Workspace constrains the capture to a named workspace.
	Workspace string `json:"workspace,omitempty"`

	// Kind defaults to new_file.
	Kind Kind `json:"kind,omitempty"`

	// Target is a heading reference for append captures, e.g. "** Inbox"
	// or "# Inbox" to match the title at any level.
	Target StringValue `json:"target,omitempty"`

	// Position defaults to bottom.
	Position Position `json:"position,omitempty"`

	// Data supplies extra placeholder tokens; on key collision with the
	// built-ins, data wins.
	Data DataValue `json:"data,omitempty"`
}

// Resolved is a capture definition with computed fields resolved and
// defaults filled, valid for a single invocation.
type Resolved struct {
	Name      string            `json:"name"`
	Path      string            `json:"path"`
	Content   string            `json:"content,omitempty"`
	Snippet   string            `json:"snippet,omitempty"`
	Workspace string            `json:"workspace,omitempty"`
	Kind      Kind              `json:"kind"`
	Target    string            `json:"target,omitempty"`
	Position  Position          `json:"position"`
	Data      map[string]string `json:"data"`

	hasContent bool
}

// HasContent reports whether the capture carries inline content rather
// than a raw snippet.
func (r *Resolved) HasContent() bool {
	return r.hasContent
}
