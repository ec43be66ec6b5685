package commands

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/apilinks/internal/config"
	"git.home.luguber.info/inful/apilinks/internal/logfields"
)

// Global carries state shared by every command once flags are parsed.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
	RunID  string

	Stdout io.Writer
	Stderr io.Writer

	closers []io.Closer
}

// NewGlobal returns a Global writing to the process's standard streams.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Close releases the log file, if one was opened.
func (g *Global) Close() error {
	var errs []error
	for _, c := range g.closers {
		errs = append(errs, c.Close())
	}
	g.closers = nil
	return stderrors.Join(errs...)
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"apilinks.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging (also logs to stderr)"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" default:"withargs" help:"Check API links in markdown files and correct them in place"`
	Init  InitCmd  `cmd:"" help:"Write the default configuration file"`
}

// AfterApply runs after flag parsing: it loads the configuration and sets up
// logging once for every command.
func (c *CLI) AfterApply(kctx *kong.Context, g *Global) error {
	if kctx.Command() == "init" {
		// init must work without a valid configuration and leaves no log file behind.
		g.Config = config.Default()
		g.Config.Logging.File = config.LogFileDisabled
	} else {
		cfg, err := config.LoadOrDefault(c.Config)
		if err != nil {
			return err
		}
		g.Config = cfg
	}

	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}

	logger, closer, err := newLogger(g.Config.Logging, c.Verbose, g.Stderr)
	if err != nil {
		return err
	}
	if closer != nil {
		g.closers = append(g.closers, closer)
	}

	g.RunID = uuid.NewString()
	g.Logger = logger.With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	return nil
}
