package capture

import (
	"time"

	"github.com/andreadev-it/norgcap/internal/errors"
	"github.com/andreadev-it/norgcap/internal/outline"
	"github.com/andreadev-it/norgcap/internal/snippet"
)

// Executor orchestrates a capture invocation over its collaborators.
// Execution is synchronous and runs to completion; effects are applied
// once, in order, with no rollback. A capture that fails after file
// creation leaves the file behind.
type Executor struct {
	registry   *Registry
	workspaces WorkspaceProvider
	files      FileCreator
	outline    OutlineProvider
	engine     SnippetEngine
	clock      Clock
	identity   string
	autoSwitch bool
}

// ExecutorOptions configures an Executor. Engine may be nil: the
// executor then inserts plain text instead of delegating to a snippet
// engine. This is a construction-time capability, not a runtime probe.
type ExecutorOptions struct {
	Registry   *Registry
	Workspaces WorkspaceProvider
	Files      FileCreator
	Outline    OutlineProvider
	Engine     SnippetEngine
	Clock      Clock
	Identity   string
	AutoSwitch bool
}

// NewExecutor creates an Executor. Clock defaults to time.Now and
// Identity to the environment lookup.
func NewExecutor(opts ExecutorOptions) *Executor {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	identity := opts.Identity
	if identity == "" {
		identity = Identity()
	}
	return &Executor{
		registry:   opts.Registry,
		workspaces: opts.Workspaces,
		files:      opts.Files,
		outline:    opts.Outline,
		engine:     opts.Engine,
		clock:      clock,
		identity:   identity,
		autoSwitch: opts.AutoSwitch,
	}
}

// Result describes a completed capture.
type Result struct {
	Capture     string `json:"capture"`
	Workspace   string `json:"workspace"`
	Path        string `json:"path"`
	Kind        Kind   `json:"kind"`
	Line        int    `json:"line"`
	UsedSnippet bool   `json:"used_snippet"`
	Switched    bool   `json:"switched,omitempty"`
}

// Run executes the named capture. All validation that can fail -
// definition shape, workspace constraint, target syntax - happens before
// the first mutation; heading resolution aborts before any insertion.
func (e *Executor) Run(name string) (*Result, error) {
	rc, err := e.registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	current, err := e.workspaces.CurrentWorkspace()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	workspace := current
	switched := false
	if rc.Workspace != "" && rc.Workspace != current {
		if !e.autoSwitch {
			return nil, errors.NewWorkspaceMismatch(rc.Workspace, current)
		}
		ok, err := e.workspaces.SetWorkspace(rc.Workspace)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if !ok {
			return nil, errors.NewWorkspaceMismatch(rc.Workspace, current)
		}
		workspace = rc.Workspace
		switched = true
	}

	set := ResolvePlaceholders(rc, e.clock, e.identity)

	// Malformed target syntax must abort before any mutation.
	var ref *outline.TargetRef
	if rc.Kind == KindAppend && rc.Target != "" {
		parsed, err := outline.ParseTargetRef(Substitute(rc.Target, set))
		if err != nil {
			return nil, err
		}
		ref = &parsed
	}

	path := Substitute(rc.Path, set)

	buf, err := e.files.CreateFile(path)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var plan outline.InsertionPlan
	if rc.Kind == KindAppend {
		plan, err = e.planAppend(buf, rc, ref)
		if err != nil {
			return nil, err
		}
		if len(plan.Fences) > 0 {
			if err := buf.InsertLines(plan.FenceLine(), plan.Fences); err != nil {
				return nil, errors.NewInternal(err)
			}
		}
	}

	useSnippet := e.engine != nil
	if err := e.insertContent(buf, rc, set, plan, useSnippet); err != nil {
		return nil, err
	}

	return &Result{
		Capture:     rc.Name,
		Workspace:   workspace,
		Path:        path,
		Kind:        rc.Kind,
		Line:        plan.Line,
		UsedSnippet: useSnippet,
		Switched:    switched,
	}, nil
}

// planAppend scans the live document and resolves the insertion plan.
// The outline is recomputed on every invocation; the scan never mutates
// the buffer.
func (e *Executor) planAppend(buf Buffer, rc *Resolved, ref *outline.TargetRef) (outline.InsertionPlan, error) {
	var none outline.InsertionPlan

	lines, err := buf.Lines()
	if err != nil {
		return none, errors.NewInternal(err)
	}
	nodes, err := e.outline.HeadingNodes(buf.Name(), lines)
	if err != nil {
		return none, errors.NewInternal(err)
	}
	headings := outline.Extract(nodes, lines)

	var target *outline.Heading
	if ref != nil {
		target, err = outline.FindHeading(*ref, headings)
		if err != nil {
			return none, err
		}
	}

	pos := outline.Bottom
	if rc.Position == PositionTop {
		pos = outline.Top
	}
	return outline.PlanInsertion(headings, target, pos, len(lines)), nil
}

// insertContent performs the final insertion. Effect order when
// delegating to the snippet engine: closing fences were already placed,
// then the blank preparation line, then the snippet anchors on it.
func (e *Executor) insertContent(buf Buffer, rc *Resolved, set PlaceholderSet, plan outline.InsertionPlan, useSnippet bool) error {
	line := plan.Line

	if useSnippet {
		if rc.Kind == KindAppend && plan.NeedsBlankLine {
			if err := buf.InsertLines(line, []string{""}); err != nil {
				return errors.NewInternal(err)
			}
		}
		var snip snippet.Snippet
		if rc.HasContent() {
			snip = snippet.Build(Substitute(rc.Content, set))
		} else {
			// Raw snippets are opaque: the engine owns their semantics.
			snip = snippet.Snippet{Body: rc.Snippet}
		}
		if err := e.engine.Expand(buf, snip, line, 0); err != nil {
			return errors.NewInternal(err)
		}
		return nil
	}

	text := rc.Snippet
	if rc.HasContent() {
		text = Substitute(rc.Content, set)
	}
	contentLines := snippet.SplitLines(text)
	if err := buf.InsertLines(line, contentLines); err != nil {
		return errors.NewInternal(err)
	}
	if err := buf.SetCursor(line, 0); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
