package markdown

import "regexp"

var (
	linkNamePattern = regexp.MustCompile(`\[(.*?)\]`)
	linkURLPattern  = regexp.MustCompile(`\((.*?)\)`)
)

// LinkOutcome describes what ExtractHeadingLink found in a heading title.
type LinkOutcome int

const (
	LinkFound LinkOutcome = iota
	// LinkNoName means the title has no bracketed text; there is nothing to check.
	LinkNoName
	// LinkNoURL means the title has a name but no parenthesized URL.
	LinkNoURL
)

func (o LinkOutcome) String() string {
	switch o {
	case LinkFound:
		return "found"
	case LinkNoName:
		return "no name"
	case LinkNoURL:
		return "no url"
	default:
		return "unknown"
	}
}

// HeadingLink is the `[name](url)` pair taken from a heading title.
//
// URLStart and URLEnd delimit URL in whatever string the link was extracted
// from: the title for ExtractHeadingLink, the whole document for Section.Link.
type HeadingLink struct {
	Name     string
	URL      string
	URLStart int
	URLEnd   int
}

// ExtractHeadingLink applies the name and URL patterns independently and uses
// the first match of each.
func ExtractHeadingLink(title string) (HeadingLink, LinkOutcome) {
	name := linkNamePattern.FindStringSubmatch(title)
	if name == nil {
		return HeadingLink{}, LinkNoName
	}
	loc := linkURLPattern.FindStringSubmatchIndex(title)
	if loc == nil {
		return HeadingLink{Name: name[1]}, LinkNoURL
	}
	return HeadingLink{
		Name:     name[1],
		URL:      title[loc[2]:loc[3]],
		URLStart: loc[2],
		URLEnd:   loc[3],
	}, LinkFound
}

// Link extracts the heading link of s with offsets into the source document.
func (s Section) Link() (HeadingLink, LinkOutcome) {
	link, outcome := ExtractHeadingLink(s.Title)
	if outcome == LinkFound {
		link.URLStart += s.TitleOffset
		link.URLEnd += s.TitleOffset
	}
	return link, outcome
}

// ReplaceURL returns the edit that swaps the link's URL span for newURL.
func (l HeadingLink) ReplaceURL(newURL string) Edit {
	return Edit{Start: l.URLStart, End: l.URLEnd, Replacement: []byte(newURL)}
}
