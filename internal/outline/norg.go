package outline

import "regexp"

// norgHeading matches a Neorg heading line: 1-6 star markers followed by
// whitespace and title text.
var norgHeading = regexp.MustCompile(`^(\*{1,6})[ \t]+\S`)

// NorgNodes scans Neorg document lines and returns raw heading nodes.
// A heading's region runs until the next heading of equal or shallower
// level. A strong delimiting modifier line ("---") closes every open
// heading; the fence line is included in the closed ranges so that
// Extract can retreat the range end before it.
func NorgNodes(lines []string) []Node {
	type open struct {
		level int
		start int
	}

	var nodes []Node
	var stack []open

	closeDownTo := func(level, end int) {
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nodes = append(nodes, Node{Level: top.level, StartLine: top.start, EndLine: end})
		}
	}

	for i, line := range lines {
		if m := norgHeading.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			closeDownTo(level, i)
			stack = append(stack, open{level: level, start: i})
			continue
		}
		if IsClosingFence(line) {
			// Strong delimiter: close all open headings, fence included.
			closeDownTo(1, i+1)
		}
	}
	closeDownTo(1, len(lines))

	return nodes
}
