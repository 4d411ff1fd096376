package outline

// Position is an insert-position preference for a capture.
type Position int

const (
	Top Position = iota
	Bottom
)

// Fence is the literal closing-fence line inserted by the level-exit fixup.
const Fence = "---"

// InsertionPlan is the resolved placement for appended content.
// Fences must be inserted first, at FenceLine; content follows at Line.
// NeedsBlankLine asks the executor to insert one empty line at Line before
// anchoring a snippet expansion there (fences, then blank line, then
// snippet anchor).
type InsertionPlan struct {
	Line           int
	Fences         []string
	NeedsBlankLine bool
}

// FenceLine is the insert-before index for the plan's fence lines.
func (p InsertionPlan) FenceLine() int {
	return p.Line - len(p.Fences)
}

// PlanInsertion computes the exact 0-based insert-before line for a capture.
//
// Without a target the document edges are used: line 0 for Top, lineCount
// for Bottom. With a target heading the candidate range is the heading's
// body; Top inserts right after the heading line, Bottom at the range end.
//
// Level-exit fixup (target + Bottom only): when the deepest heading whose
// range ends exactly at the candidate line is deeper than the target, the
// candidate sits inside nested headings that must be closed. One closing
// fence per exited level is emitted so the appended content becomes a
// sibling of the target heading rather than a child of whatever heading
// occupies the last line of its range.
func PlanInsertion(headings []Heading, target *Heading, pos Position, lineCount int) InsertionPlan {
	if target == nil {
		if pos == Top {
			return InsertionPlan{Line: 0, NeedsBlankLine: true}
		}
		return InsertionPlan{Line: lineCount, NeedsBlankLine: true}
	}

	line := target.Range.Start + 1
	if pos == Bottom {
		line = target.Range.End
	}
	plan := InsertionPlan{Line: line, NeedsBlankLine: true}

	if pos != Bottom {
		return plan
	}

	enclosing := 0
	for _, h := range headings {
		if h.Range.End == line && h.Level > enclosing {
			enclosing = h.Level
		}
	}
	if enclosing > target.Level {
		for i := 0; i < enclosing-target.Level; i++ {
			plan.Fences = append(plan.Fences, Fence)
		}
		plan.Line += len(plan.Fences)
	}
	return plan
}
