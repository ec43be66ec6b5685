// Package markdown splits API mapping documents into titled sections and locates
// the link embedded in a section's heading.
//
// All offsets are byte offsets into the original file content so callers can
// rewrite a single link span with ApplyEdits instead of re-rendering Markdown.
package markdown

// SplitMode selects how heading lines are recognized.
type SplitMode string

const (
	// SplitLines treats every line beginning with '#' as a heading, including
	// lines inside fenced code blocks.
	SplitLines SplitMode = "lines"
	// SplitCommonMark uses a CommonMark parser, so only real headings split.
	SplitCommonMark SplitMode = "commonmark"
)

// Section is one heading and the text that follows it up to the next heading.
type Section struct {
	Title   string // heading text with '#' markers and surrounding whitespace removed
	Content string // lines after the heading, up to the next heading
	Line    int    // 1-based line number of the heading
	Offset  int    // byte offset of the heading line

	// TitleOffset is the byte offset of Title[0] within the document.
	TitleOffset int
}

// Sections is an ordered list of sections in document order.
type Sections []Section

// At returns the section at position i. ok is false when the document has
// fewer sections than i+1.
func (s Sections) At(i int) (Section, bool) {
	if i < 0 || i >= len(s) {
		return Section{}, false
	}
	return s[i], true
}

// SplitSections splits content into sections. A leading YAML frontmatter block
// is skipped, and text before the first heading is discarded.
func SplitSections(content []byte, mode SplitMode) Sections {
	start := bodyOffset(content)
	if mode == SplitCommonMark {
		return splitCommonMark(content, start)
	}
	return splitLines(content, start)
}
