package checker

// Status is the outcome of checking one policy against one file.
type Status int

const (
	// StatusOK means the link is valid, or the heading carries nothing to check.
	StatusOK Status = iota
	// StatusUnavailable means the link could not be checked: the file was
	// unreadable, the policy's section was missing, no correction could be
	// derived from the URL, or the corrected file could not be written.
	StatusUnavailable
	// StatusUnreachable means the original URL did not answer 200.
	StatusUnreachable
	// StatusCorrectedUnreachable means the corrected URL did not answer 200.
	StatusCorrectedUnreachable
	// StatusMarkerMissing means the final page lacks the policy's content marker.
	StatusMarkerMissing
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusUnreachable:
		return "unreachable"
	case StatusCorrectedUnreachable:
		return "corrected_unreachable"
	case StatusMarkerMissing:
		return "marker_missing"
	default:
		return "unknown"
	}
}

// Failed reports whether the status counts against the file.
func (s Status) Failed() bool { return s != StatusOK }
