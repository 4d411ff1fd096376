package outline

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownNodes parses markdown lines with goldmark and returns raw
// heading nodes. A heading's region runs until the next heading of equal
// or shallower level, or end of document. Headings inside fenced code
// blocks are ignored by the parser itself.
func MarkdownNodes(lines []string) []Node {
	source := []byte(strings.Join(lines, "\n"))

	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	type found struct {
		level int
		line  int
	}
	var headings []found

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := h.Lines().At(0)
		line := sort.Search(len(starts), func(i int) bool { return starts[i] > seg.Start }) - 1
		if line >= 0 {
			headings = append(headings, found{level: h.Level, line: line})
		}
		return ast.WalkContinue, nil
	})

	nodes := make([]Node, 0, len(headings))
	for i, h := range headings {
		end := len(lines)
		for _, later := range headings[i+1:] {
			if later.level <= h.level {
				end = later.line
				break
			}
		}
		nodes = append(nodes, Node{Level: h.level, StartLine: h.line, EndLine: end})
	}
	return nodes
}

// Provider is the default outline provider: it selects the document
// dialect by file extension. Hosts with their own structure engine (e.g.
// a treesitter-backed editor) substitute their own implementation.
type Provider struct{}

// HeadingNodes returns raw heading nodes for the named document.
func (Provider) HeadingNodes(name string, lines []string) ([]Node, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return MarkdownNodes(lines), nil
	default:
		return NorgNodes(lines), nil
	}
}
