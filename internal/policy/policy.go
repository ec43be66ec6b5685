// Package policy holds the URL correction rules applied to API reference links.
//
// A rule only computes strings. Reachability and marker checks happen in the
// checker so rules stay pure and easy to test.
package policy

import "errors"

var (
	// ErrSplitKeyMissing is returned when a non-canonical URL does not contain
	// the rule's split key, so no correction can be derived.
	ErrSplitKeyMissing = errors.New("url does not contain split key")
	// ErrEmptyVersion is returned when the version segment after the split key is empty.
	ErrEmptyVersion = errors.New("url has an empty version segment")
)

// Kind names a rule family.
type Kind string

const (
	KindPrefix  Kind = "prefix"
	KindVersion Kind = "version"
)

// Rule computes the corrected form of a URL. The result equals the input when
// the URL already satisfies the rule.
type Rule interface {
	Kind() Kind
	Correct(rawURL string) (string, error)
}

// Locator selects the heading that carries a policy's link.
//
// When Keyword is set, the first section whose link name starts with Keyword
// is used. If none matches and HasIndex is set, the section at Index is used
// instead. Without a Keyword the section at Index is always used.
type Locator struct {
	Keyword  string
	Index    int
	HasIndex bool
}

// Policy binds a rule to the section it applies to.
type Policy struct {
	Name    string
	Section Locator
	Rule    Rule
	// Marker, when set, must appear in the body of the final URL's page.
	Marker string
}
