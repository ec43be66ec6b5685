package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type headingSpan struct {
	lineStart    int // start of the first heading line
	titleStart   int
	titleEnd     int
	contentStart int // first byte after the heading block
}

// splitCommonMark finds headings with goldmark and slices the original bytes
// between them. Offsets stay relative to content, not to the parsed body.
func splitCommonMark(content []byte, start int) Sections {
	body := content[start:]
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	spans := make([]headingSpan, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		// Empty headings carry no segment; they do not split the document.
		lines := h.Lines()
		if lines.Len() == 0 {
			return gmast.WalkSkipChildren, nil
		}
		first, last := lines.At(0), lines.At(lines.Len()-1)
		span := headingSpan{
			lineStart:  lineStartAt(body, first.Start),
			titleStart: first.Start,
			titleEnd:   last.Stop,
		}
		// Segment stops may or may not include the trailing newline, so anchor
		// on the line holding the last title byte.
		lastLine := lineStartAt(body, max(last.Stop-1, last.Start))
		span.contentStart = lineEndAt(body, lastLine)
		if isSetext(body, span.lineStart) {
			span.contentStart = lineEndAt(body, span.contentStart)
		}
		spans = append(spans, span)
		return gmast.WalkSkipChildren, nil
	})

	out := make(Sections, 0, len(spans))
	for i, sp := range spans {
		end := len(body)
		if i+1 < len(spans) {
			end = spans[i+1].lineStart
		}
		raw := string(body[sp.titleStart:sp.titleEnd])
		title, lead := headingTitle(raw)
		if title == "" {
			continue
		}
		contentStart := min(sp.contentStart, end)
		out = append(out, Section{
			Title:       title,
			Content:     string(body[contentStart:end]),
			Line:        1 + bytes.Count(content[:start+sp.lineStart], []byte{'\n'}),
			Offset:      start + sp.lineStart,
			TitleOffset: start + sp.titleStart + lead,
		})
	}
	return out
}

func lineStartAt(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEndAt returns the offset just past the newline that ends the line containing pos.
func lineEndAt(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if nl := bytes.IndexByte(src[pos:], '\n'); nl >= 0 {
		return pos + nl + 1
	}
	return len(src)
}

// isSetext reports whether the heading starting at lineStart is underlined
// rather than introduced by '#'.
func isSetext(src []byte, lineStart int) bool {
	line := src[lineStart:lineEndAt(src, lineStart)]
	return !strings.HasPrefix(strings.TrimLeft(string(line), " "), "#")
}
