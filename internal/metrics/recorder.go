package metrics

import "time"

// Recorder defines the observability hooks used by the checker.
type Recorder interface {
	// IncLinkStatus counts one checked (policy, file) pair by its status name.
	IncLinkStatus(policy, status string)
	// IncRewrite counts a corrected link. dryRun marks corrections that were
	// reported but not written.
	IncRewrite(policy string, dryRun bool)
	ObserveCheckDuration(policy string, d time.Duration)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkStatus(string, string)                {}
func (NoopRecorder) IncRewrite(string, bool)                     {}
func (NoopRecorder) ObserveCheckDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)            {}
