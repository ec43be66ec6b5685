package policy

import "strings"

// PrefixRule requires URLs to live under TargetURL.
//
// A URL is cut at the first SplitKey. If the part before it equals TargetURL
// the URL is canonical. Otherwise it is rebuilt as TargetURL + Segment + the
// part after the split key, keeping the trailing path verbatim.
type PrefixRule struct {
	SplitKey  string
	TargetURL string
	Segment   string
}

func (PrefixRule) Kind() Kind { return KindPrefix }

func (r PrefixRule) Correct(rawURL string) (string, error) {
	before, after, found := strings.Cut(rawURL, r.SplitKey)
	if before == r.TargetURL {
		return rawURL, nil
	}
	if !found {
		return "", ErrSplitKeyMissing
	}
	return r.TargetURL + r.Segment + after, nil
}
