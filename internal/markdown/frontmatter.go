package markdown

import "bytes"

// bodyOffset returns the offset where the Markdown body starts, skipping a
// leading `---` delimited YAML frontmatter block. An unterminated block is not
// treated as frontmatter.
func bodyOffset(content []byte) int {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return 0
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return 2 * len(open)
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// Closing delimiter may be the last line without a trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return len(content)
		}
		return 0
	}
	return len(open) + idx + len(closeSeq)
}
