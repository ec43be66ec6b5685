package policy

import "strings"

// VersionRule requires the first path segment after SplitKey to equal TargetVersion.
//
// A mismatching token is replaced by TargetVersion at its first occurrence
// anywhere in the URL, which is not necessarily the version segment itself.
type VersionRule struct {
	SplitKey      string
	TargetVersion string
}

func (VersionRule) Kind() Kind { return KindVersion }

func (r VersionRule) Correct(rawURL string) (string, error) {
	token, err := r.Version(rawURL)
	if err != nil {
		return "", err
	}
	if token == r.TargetVersion {
		return rawURL, nil
	}
	return strings.Replace(rawURL, token, r.TargetVersion, 1), nil
}

// Version returns the version token of rawURL.
func (r VersionRule) Version(rawURL string) (string, error) {
	_, after, found := strings.Cut(rawURL, r.SplitKey)
	if !found {
		return "", ErrSplitKeyMissing
	}
	token, _, _ := strings.Cut(after, "/")
	if token == "" {
		return "", ErrEmptyVersion
	}
	return token, nil
}
