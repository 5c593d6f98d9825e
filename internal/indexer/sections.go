package indexer

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is a heading-delimited slice of a document.
type Section struct {
	Heading string // Heading text, "" for the headingless/preamble section
	Body    string // Body text between this heading and the next, trimmed
	Start   int    // Body start offset in the original text (before trimming)
	End     int    // Body end offset in the original text
}

// SectionSplitter splits markdown into sections at ATX headings of level 2-6.
// Level-1 headings and headings inside fenced code blocks are not boundaries.
type SectionSplitter struct {
	parser goldmark.Markdown
}

// NewSectionSplitter creates a new section splitter.
func NewSectionSplitter() *SectionSplitter {
	return &SectionSplitter{
		parser: goldmark.New(),
	}
}

type headingMark struct {
	text      string
	lineStart int // Offset of the heading line's first byte
	bodyStart int // Offset just past the heading line's newline
}

// Split returns the document's sections in order. Text before the first
// heading becomes a heading-less section when non-blank, so concatenating
// the sections (with heading lines reinserted) reconstructs the document up
// to whitespace trimming. A document without headings yields one section.
func (s *SectionSplitter) Split(docText string) []Section {
	src := []byte(docText)
	doc := s.parser.Parser().Parse(text.NewReader(src))

	var marks []headingMark
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level < 2 || heading.Level > 6 {
			return ast.WalkSkipChildren, nil
		}

		lines := heading.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		first := lines.At(0)
		lineStart := lineStartBefore(src, first.Start)

		// Only ATX headings ("## Title") delimit sections; setext underlined
		// headings stay inside the surrounding body.
		if !bytes.HasPrefix(bytes.TrimLeft(src[lineStart:], " "), []byte("#")) {
			return ast.WalkSkipChildren, nil
		}

		last := lines.At(lines.Len() - 1)
		marks = append(marks, headingMark{
			text:      extractTextFromNode(heading, src),
			lineStart: lineStart,
			bodyStart: lineEndAfter(src, last.Stop),
		})
		return ast.WalkSkipChildren, nil
	})

	if len(marks) == 0 {
		return []Section{{Body: strings.TrimSpace(docText), Start: 0, End: len(docText)}}
	}

	var sections []Section
	if preamble := docText[:marks[0].lineStart]; strings.TrimSpace(preamble) != "" {
		sections = append(sections, Section{
			Body:  strings.TrimSpace(preamble),
			Start: 0,
			End:   marks[0].lineStart,
		})
	}

	for i, mark := range marks {
		end := len(docText)
		if i+1 < len(marks) {
			end = marks[i+1].lineStart
		}
		sections = append(sections, Section{
			Heading: mark.text,
			Body:    strings.TrimSpace(docText[mark.bodyStart:end]),
			Start:   mark.bodyStart,
			End:     end,
		})
	}

	return sections
}

// lineStartBefore returns the offset of the first byte of the line containing pos.
func lineStartBefore(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEndAfter returns the offset just past the newline that ends the line
// containing pos, or len(src) when the line is unterminated.
func lineEndAfter(src []byte, pos int) int {
	idx := bytes.IndexByte(src[pos:], '\n')
	if idx < 0 {
		return len(src)
	}
	return pos + idx + 1
}

// extractTextFromNode extracts text content from a node and its children.
func extractTextFromNode(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			textBuilder.Write(v.Segment.Value(content))
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}
