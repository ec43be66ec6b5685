package checker

import (
	"context"
	"time"
)

// Report collects results per policy, in the order policies were run.
type Report struct {
	Policies []string
	Results  map[string][]Result
	Files    int
	Duration time.Duration
	// Canceled is set when the context ended before every check ran.
	Canceled bool
}

func newReport(c *Checker, files int) *Report {
	r := &Report{
		Results: make(map[string][]Result, len(c.policies)),
		Files:   files,
	}
	for _, p := range c.policies {
		r.Policies = append(r.Policies, p.Name)
	}
	return r
}

// Failed returns the paths whose check failed for the named policy.
func (r *Report) Failed(policy string) []string {
	var paths []string
	for _, res := range r.Results[policy] {
		if res.Status.Failed() {
			paths = append(paths, res.Path)
		}
	}
	return paths
}

// FailedResults returns the failing results for the named policy.
func (r *Report) FailedResults(policy string) []Result {
	var out []Result
	for _, res := range r.Results[policy] {
		if res.Status.Failed() {
			out = append(out, res)
		}
	}
	return out
}

// Corrected returns the results for the named policy whose URL was corrected
// and passed every check.
func (r *Report) Corrected(policy string) []Result {
	var out []Result
	for _, res := range r.Results[policy] {
		if res.Status == StatusOK && res.Corrected() {
			out = append(out, res)
		}
	}
	return out
}

// FailureCount counts failing (policy, file) pairs across all policies.
func (r *Report) FailureCount() int {
	n := 0
	for _, name := range r.Policies {
		n += len(r.Failed(name))
	}
	return n
}

// HasFailures reports whether any check failed.
func (r *Report) HasFailures() bool { return r.FailureCount() > 0 }

// Run checks every file against every policy. All files are checked for the
// first policy before the next policy starts. A file's failure never stops
// the run; a canceled context does, leaving the report partial.
func (c *Checker) Run(ctx context.Context, files []string) *Report {
	start := time.Now()
	report := newReport(c, len(files))

	for _, p := range c.policies {
		for _, path := range files {
			if ctx.Err() != nil {
				report.Canceled = true
				report.Duration = time.Since(start)
				c.recorder.ObserveRunDuration(report.Duration)
				return report
			}
			report.Results[p.Name] = append(report.Results[p.Name], c.CheckFile(ctx, path, p))
		}
	}

	report.Duration = time.Since(start)
	c.recorder.ObserveRunDuration(report.Duration)
	return report
}
