package outline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/andreadev-it/norgcap/internal/errors"
)

// Node is one raw heading node reported by an outline provider.
// StartLine is the 0-based line of the heading itself; EndLine is
// exclusive: one past the last line belonging to the heading's region.
type Node struct {
	Level     int
	StartLine int
	EndLine   int
}

// Range is a line interval with an exclusive end. End doubles as the
// insert-before index for bottom insertion under the heading.
type Range struct {
	Start int
	End   int
}

// Heading is one extracted outline entry. Headings form an implicit tree
// via level and range containment but are kept as a flat ordered sequence;
// they are recomputed on every capture and never cached.
type Heading struct {
	Range Range
	Title string
	Level int
}

// WildcardLevel marks a target reference that matches a title at any level.
const WildcardLevel = -1

// TargetRef identifies a heading to insert under.
type TargetRef struct {
	Level int
	Title string
}

// closingFence matches an explicit region-closing marker line: three or
// more dashes, optionally indented.
var closingFence = regexp.MustCompile(`^[ \t]*-{3,}[ \t]*$`)

// IsClosingFence reports whether line is a region-closing marker.
func IsClosingFence(line string) bool {
	return closingFence.MatchString(line)
}

// Extract maps provider nodes to headings in document order.
// When the last line inside a node's range is a closing fence, the range
// end retreats before it so content is never inserted past the marker.
func Extract(nodes []Node, lines []string) []Heading {
	if len(nodes) == 0 {
		return nil
	}

	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartLine < sorted[j].StartLine
	})

	headings := make([]Heading, 0, len(sorted))
	for _, n := range sorted {
		if n.Level < 1 || n.Level > 6 {
			continue
		}
		if n.StartLine < 0 || n.StartLine >= len(lines) {
			continue
		}

		end := n.EndLine
		if end > len(lines) {
			end = len(lines)
		}
		if end <= n.StartLine {
			end = n.StartLine + 1
		}
		if last := end - 1; last > n.StartLine && IsClosingFence(lines[last]) {
			end = last
		}

		headings = append(headings, Heading{
			Range: Range{Start: n.StartLine, End: end},
			Title: StripMarkers(lines[n.StartLine]),
			Level: n.Level,
		})
	}
	return headings
}

// StripMarkers removes leading heading marker glyphs and the whitespace
// that follows them from a heading line.
func StripMarkers(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimLeft(trimmed, "*#")
	return strings.TrimSpace(trimmed)
}

// targetPattern matches "<markers> <title>" where markers are 1-6 heading
// glyphs. A single "#" means any level.
var targetPattern = regexp.MustCompile(`^(\*{1,6}|#) (.+)$`)

// ParseTargetRef parses a user-supplied target reference.
// Syntax: repeated "*" markers (count = level) followed by a space and the
// title, or "# <title>" to match the title at any level. Anything else is
// a configuration error, never a silent fallback.
func ParseTargetRef(s string) (TargetRef, error) {
	m := targetPattern.FindStringSubmatch(s)
	if m == nil {
		return TargetRef{}, errors.NewConfiguration("malformed target reference: " + s)
	}
	level := WildcardLevel
	if m[1] != "#" {
		level = len(m[1])
	}
	return TargetRef{Level: level, Title: strings.TrimSpace(m[2])}, nil
}

// FindHeading returns the first heading in document order whose title
// equals the reference title and whose level matches (a wildcard reference
// matches any level). No match is a hard error: the capture must abort
// with no partial insertion.
func FindHeading(ref TargetRef, headings []Heading) (*Heading, error) {
	for i := range headings {
		h := &headings[i]
		if h.Title != ref.Title {
			continue
		}
		if ref.Level == WildcardLevel || h.Level == ref.Level {
			return h, nil
		}
	}
	return nil, errors.NewHeadingNotFound(ref.Title)
}
