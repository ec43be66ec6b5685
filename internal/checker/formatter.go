package checker

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TextFormatter prints a report as one list of failing paths per policy,
// followed by a summary.
type TextFormatter struct {
	DryRun bool
}

// Format writes report to w.
func (f TextFormatter) Format(w io.Writer, report *Report) error {
	for _, name := range report.Policies {
		failed := report.FailedResults(name)
		if _, err := fmt.Fprintf(w, "%s: %d failing file%s\n", name, len(failed), pluralize(len(failed))); err != nil {
			return err
		}
		for _, res := range failed {
			if _, err := fmt.Fprintf(w, "  ✗ %s (%s)\n", res.Path, res.Status); err != nil {
				return err
			}
		}
		for _, res := range report.Corrected(name) {
			verb := "corrected"
			if !res.Rewritten {
				verb = "would correct"
			}
			if _, err := fmt.Fprintf(w, "  ✎ %s %s: %s -> %s\n", res.Path, verb, res.OriginalURL, res.URL); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	policies := "policies"
	if len(report.Policies) == 1 {
		policies = "policy"
	}
	if _, err := fmt.Fprintf(w, "  %d file%s checked against %d %s in %s\n",
		report.Files, pluralize(report.Files), len(report.Policies), policies,
		report.Duration.Round(time.Millisecond)); err != nil {
		return err
	}
	if report.Canceled {
		if _, err := fmt.Fprintln(w, "  run canceled before all checks completed"); err != nil {
			return err
		}
	}

	if report.HasFailures() {
		_, err := fmt.Fprintf(w, "  %d failing check%s\n", report.FailureCount(), pluralize(report.FailureCount()))
		return err
	}
	msg := "  all links valid"
	if f.DryRun {
		msg += " (dry run, no files written)"
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
