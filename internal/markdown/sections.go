package markdown

import (
	"bytes"
	"strings"
	"unicode"
)

func splitLines(content []byte, start int) Sections {
	out := make(Sections, 0)

	var (
		cur  *Section
		body strings.Builder
	)
	flush := func() {
		// Headings with an empty title never form a section; their content is dropped.
		if cur != nil && cur.Title != "" {
			cur.Content = body.String()
			out = append(out, *cur)
		}
	}

	lineNo := 1 + bytes.Count(content[:start], []byte{'\n'})
	for pos := start; pos < len(content); lineNo++ {
		next := len(content)
		if nl := bytes.IndexByte(content[pos:], '\n'); nl >= 0 {
			next = pos + nl + 1
		}
		line := content[pos:next]

		if line[0] == '#' {
			flush()
			title, lead := headingTitle(string(line))
			cur = &Section{Title: title, Line: lineNo, Offset: pos, TitleOffset: pos + lead}
			body.Reset()
		} else if cur != nil {
			body.Write(line)
		}
		pos = next
	}
	flush()

	return out
}

// headingTitle strips '#' markers and whitespace from both ends of a heading
// line. lead is the number of bytes removed from the front.
func headingTitle(line string) (title string, lead int) {
	left := strings.TrimLeftFunc(line, isHeadingTrim)
	lead = len(line) - len(left)
	return strings.TrimRightFunc(left, isHeadingTrim), lead
}

func isHeadingTrim(r rune) bool {
	return r == '#' || unicode.IsSpace(r)
}
