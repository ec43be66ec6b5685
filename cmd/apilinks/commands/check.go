package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/apilinks/internal/checker"
	"git.home.luguber.info/inful/apilinks/internal/config"
	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/apilinks/internal/logfields"
	"git.home.luguber.info/inful/apilinks/internal/markdown"
	"git.home.luguber.info/inful/apilinks/internal/metrics"
	"git.home.luguber.info/inful/apilinks/internal/policy"
	"git.home.luguber.info/inful/apilinks/internal/probe"
	"git.home.luguber.info/inful/apilinks/internal/version"
	"git.home.luguber.info/inful/apilinks/internal/watch"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Path        string        `arg:"" optional:"" help:"Markdown file or directory to check (defaults to input.dir)"`
	DryRun      bool          `help:"Report corrections without writing files"`
	Watch       bool          `short:"w" help:"Keep running and re-check files when they change"`
	MetricsFile string        `help:"Write Prometheus metrics to this textfile after each run (overrides metrics.file)"`
	Timeout     time.Duration `help:"Per-request HTTP timeout (overrides http.timeout)"`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, g)
}

func (c *CheckCmd) run(ctx context.Context, g *Global) error {
	cfg := g.Config
	policies, err := policy.AllFromConfig(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid policy").Build()
	}

	timeout := cfg.HTTP.Timeout.Std()
	if c.Timeout > 0 {
		timeout = c.Timeout
	}
	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}
	prober := probe.New(timeout, probe.WithUserAgent(userAgent), probe.WithLogger(g.Logger))

	metricsFile := cfg.Metrics.File
	if c.MetricsFile != "" {
		metricsFile = c.MetricsFile
	}
	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		prom     *metrics.PrometheusRecorder
	)
	if metricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	chk := checker.New(prober, policies,
		checker.WithSplitMode(markdown.SplitMode(cfg.Markdown.SplitMode)),
		checker.WithDryRun(c.DryRun),
		checker.WithLogger(g.Logger),
		checker.WithRecorder(recorder),
	)
	formatter := checker.TextFormatter{DryRun: c.DryRun}

	input, files, err := c.resolveInput(cfg.Input)
	if err != nil {
		return err
	}
	g.Logger.Info("Starting link check",
		logfields.File(input.Dir),
		"files", len(files),
		"policies", len(policies),
		"dry_run", c.DryRun)

	// runOnce checks files and reports the outcome; its error is only fatal
	// outside watch mode.
	runOnce := func(ctx context.Context, files []string) error {
		report := chk.Run(ctx, files)
		if err := formatter.Format(g.Stdout, report); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to print report").Build()
		}
		g.Logger.Info("Link check finished",
			"files", report.Files,
			"failures", report.FailureCount(),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
		if prom != nil {
			if err := prom.WriteTextfile(metricsFile); err != nil {
				return err
			}
		}
		if report.HasFailures() {
			return errors.ValidationError("link check failed").
				WithContext("failures", report.FailureCount()).
				Build()
		}
		return nil
	}

	err = runOnce(ctx, files)
	if !c.Watch {
		return err
	}
	if err != nil {
		g.Logger.Warn("Initial run reported failures; watching for changes", logfields.Error(err))
	}

	w, err := watch.New(input.Dir, input.Recursive,
		watch.WithLogger(g.Logger),
		watch.WithFilter(func(path string) bool {
			return checker.Matches(input.Dir, input.Pattern, input.Recursive, path)
		}),
	)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	g.Logger.Info("Watching for changes", logfields.File(input.Dir))
	return w.Run(ctx, func(ctx context.Context, paths []string) {
		if err := runOnce(ctx, paths); err != nil {
			g.Logger.Warn("Re-check reported failures", logfields.Error(err))
		}
	})
}

// resolveInput applies the positional path to the configured input. A file
// argument is checked on its own and watched through its directory.
func (c *CheckCmd) resolveInput(input config.InputConfig) (config.InputConfig, []string, error) {
	if c.Path != "" {
		info, err := os.Stat(c.Path)
		if err != nil {
			return input, nil, errors.WrapError(err, errors.CategoryFileSystem, "path not accessible").
				WithContext("path", c.Path).
				Build()
		}
		if !info.IsDir() {
			single := config.InputConfig{Dir: filepath.Dir(c.Path), Pattern: filepath.Base(c.Path)}
			return single, []string{c.Path}, nil
		}
		input.Dir = c.Path
	}

	files, err := checker.Discover(input.Dir, input.Pattern, input.Recursive)
	if err != nil {
		return input, nil, err
	}
	return input, files, nil
}
