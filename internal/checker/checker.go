// Package checker validates the API reference link in each mapping document
// and rewrites it in place when a policy can correct it.
package checker

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/apilinks/internal/logfields"
	"git.home.luguber.info/inful/apilinks/internal/markdown"
	"git.home.luguber.info/inful/apilinks/internal/metrics"
	"git.home.luguber.info/inful/apilinks/internal/policy"
)

// Prober answers the two network questions a check needs.
type Prober interface {
	Reachable(ctx context.Context, url string) bool
	ContainsMarker(ctx context.Context, url, marker string) bool
}

// Checker applies a fixed list of policies to markdown files.
type Checker struct {
	prober    Prober
	policies  []policy.Policy
	splitMode markdown.SplitMode
	dryRun    bool
	logger    *slog.Logger
	recorder  metrics.Recorder
}

// Option configures a Checker.
type Option func(*Checker)

// WithSplitMode selects how documents are split into sections.
func WithSplitMode(mode markdown.SplitMode) Option {
	return func(c *Checker) { c.splitMode = mode }
}

// WithDryRun reports corrections without writing them.
func WithDryRun(dryRun bool) Option {
	return func(c *Checker) { c.dryRun = dryRun }
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Checker) { c.recorder = r }
}

// New creates a Checker for the given policies, applied in order.
func New(prober Prober, policies []policy.Policy, opts ...Option) *Checker {
	c := &Checker{
		prober:    prober,
		policies:  policies,
		splitMode: markdown.SplitLines,
		logger:    slog.Default(),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policies returns the configured policies in run order.
func (c *Checker) Policies() []policy.Policy { return c.policies }

// Result is the outcome of one (policy, file) check.
type Result struct {
	Path   string
	Policy string
	Status Status

	// Name and OriginalURL come from the heading link, when one was found.
	Name        string
	OriginalURL string
	// URL is the final URL after correction. It equals OriginalURL when the
	// link was already valid.
	URL string
	// Rewritten is set when the corrected URL was written back to the file.
	Rewritten bool

	// Err explains StatusUnavailable results.
	Err error
}

// Corrected reports whether the policy produced a different URL.
func (r Result) Corrected() bool {
	return r.URL != "" && r.URL != r.OriginalURL
}

// CheckFile runs one policy against one file.
//
// The original URL must answer 200. When the policy corrects it, the
// corrected URL must answer 200 too. When the policy has a marker, the final
// page must contain it. Only then is a changed URL written back, replacing
// the link span in the heading and nothing else.
func (c *Checker) CheckFile(ctx context.Context, path string, p policy.Policy) Result {
	start := time.Now()
	res := c.checkFile(ctx, path, p)
	c.recorder.ObserveCheckDuration(p.Name, time.Since(start))
	c.recorder.IncLinkStatus(p.Name, res.Status.String())
	if res.Corrected() && res.Status == StatusOK {
		c.recorder.IncRewrite(p.Name, !res.Rewritten)
	}

	attrs := []any{
		logfields.File(path),
		logfields.Policy(p.Name),
		logfields.Status(int(res.Status)),
		logfields.DurationMS(float64(time.Since(start).Microseconds()) / 1000),
	}
	if res.OriginalURL != "" {
		attrs = append(attrs, logfields.URL(res.OriginalURL))
	}
	if res.Corrected() {
		attrs = append(attrs, logfields.CorrectedURL(res.URL))
	}
	if res.Err != nil {
		attrs = append(attrs, logfields.Error(res.Err))
	}
	if res.Status.Failed() {
		c.logger.Info("Link check failed: "+res.Status.String(), attrs...)
	} else {
		c.logger.Debug("Link check passed", attrs...)
	}
	return res
}

func (c *Checker) checkFile(ctx context.Context, path string, p policy.Policy) Result {
	res := Result{Path: path, Policy: p.Name}

	content, err := os.ReadFile(path)
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = errors.WrapError(err, errors.CategoryFileSystem, "failed to read markdown file").
			WithContext("path", path).
			Build()
		return res
	}

	section, ok := c.locate(markdown.SplitSections(content, c.splitMode), p.Section)
	if !ok {
		res.Status = StatusUnavailable
		res.Err = errors.MarkdownError("policy section not found").
			WithContext("path", path).
			WithContext("keyword", p.Section.Keyword).
			WithContext("index", p.Section.Index).
			Build()
		return res
	}

	link, outcome := section.Link()
	if outcome != markdown.LinkFound {
		c.logger.Debug("Heading has nothing to check",
			logfields.File(path),
			logfields.Policy(p.Name),
			logfields.Section(section.Title),
			slog.String("outcome", outcome.String()))
		res.Name = link.Name
		return res
	}
	res.Name = link.Name
	res.OriginalURL = link.URL

	if !c.prober.Reachable(ctx, link.URL) {
		res.Status = StatusUnreachable
		return res
	}

	corrected, err := p.Rule.Correct(link.URL)
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = errors.ValidationError("no correction derivable from url").
			WithContext("url", link.URL).
			WithContext("reason", err.Error()).
			Build()
		return res
	}
	res.URL = corrected

	if corrected != link.URL && !c.prober.Reachable(ctx, corrected) {
		res.Status = StatusCorrectedUnreachable
		return res
	}

	if p.Marker != "" && !c.prober.ContainsMarker(ctx, corrected, p.Marker) {
		res.Status = StatusMarkerMissing
		return res
	}

	if corrected == link.URL || c.dryRun {
		return res
	}

	updated, err := markdown.ApplyEdits(content, []markdown.Edit{link.ReplaceURL(corrected)})
	if err != nil {
		res.Status = StatusUnavailable
		res.Err = errors.WrapError(err, errors.CategoryInternal, "failed to apply link edit").
			WithContext("path", path).
			Build()
		return res
	}
	if err := writeFileAtomic(path, updated); err != nil {
		res.Status = StatusUnavailable
		res.Err = err
		return res
	}
	res.Rewritten = true
	return res
}

// locate finds the section carrying a policy's link. A keyword selects the
// first section whose link name starts with it. When nothing matches, or no
// keyword is set, the positional index is used, so a heading without a link
// still reaches Link() and counts as nothing to check.
func (c *Checker) locate(sections markdown.Sections, loc policy.Locator) (markdown.Section, bool) {
	if loc.Keyword == "" {
		return sections.At(loc.Index)
	}
	for _, s := range sections {
		link, outcome := markdown.ExtractHeadingLink(s.Title)
		if outcome != markdown.LinkNoName && strings.HasPrefix(link.Name, loc.Keyword) {
			return s, true
		}
	}
	if loc.HasIndex {
		return sections.At(loc.Index)
	}
	return markdown.Section{}, false
}
