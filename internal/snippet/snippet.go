// Package snippet materializes capture text into snippet bodies with
// numbered tab stops. Actual expansion semantics belong to whichever
// engine the host wires in; the fallback here only strips the markers
// and reports where the cursor should land.
package snippet

import (
	"fmt"
	"regexp"
	"strings"
)

// Snippet is a snippet body using ${n} tab-stop markers.
type Snippet struct {
	Body  string
	Stops int
}

// stopMarker matches a materialized ${n} tab stop.
var stopMarker = regexp.MustCompile(`\$\{\d+\}`)

// Build converts every empty {} occurrence in body into successive ${n}
// tab stops, numbered from 1. Named placeholder tokens must already be
// substituted away; any that remain are left untouched. A single
// trailing newline is dropped, mirroring SplitLines, so engines do not
// expand an extra empty line that plain insertion would not produce.
func Build(body string) Snippet {
	body = strings.TrimSuffix(body, "\n")
	stops := 0
	converted := strings.Builder{}
	for {
		idx := strings.Index(body, "{}")
		if idx < 0 {
			converted.WriteString(body)
			break
		}
		stops++
		converted.WriteString(body[:idx])
		converted.WriteString(fmt.Sprintf("${%d}", stops))
		body = body[idx+2:]
	}
	return Snippet{Body: converted.String(), Stops: stops}
}

// Flatten renders the snippet as plain lines with all tab-stop markers
// removed, and returns the 0-based (row, col) of the first stop relative
// to the snippet body. With no stops the cursor position is (0, 0).
func (s Snippet) Flatten() (lines []string, row, col int) {
	first := stopMarker.FindStringIndex(s.Body)
	if first != nil {
		before := s.Body[:first[0]]
		row = strings.Count(before, "\n")
		if nl := strings.LastIndex(before, "\n"); nl >= 0 {
			before = before[nl+1:]
		}
		col = len(stopMarker.ReplaceAllString(before, ""))
	}
	plain := stopMarker.ReplaceAllString(s.Body, "")
	return SplitLines(plain), row, col
}

// SplitLines splits text on newlines, dropping a single trailing newline
// so "a\n" inserts one line, not one line plus an empty one.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
