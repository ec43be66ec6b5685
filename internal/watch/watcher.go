// Package watch re-runs link checks when mapping documents change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/apilinks/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a directory and reports changed files in batches.
type Watcher struct {
	dir       string
	recursive bool
	filter    func(path string) bool
	debounce  time.Duration
	logger    *slog.Logger
	fsw       *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithFilter restricts reported paths. Without a filter every file is reported.
func WithFilter(filter func(path string) bool) Option {
	return func(w *Watcher) { w.filter = filter }
}

// WithLogger sets the watcher's logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New starts watching dir, and its subdirectories when recursive is set.
// Events are only delivered once Run is called.
func New(dir string, recursive bool, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}

	w := &Watcher{
		dir:       dir,
		recursive: recursive,
		filter:    func(string) bool { return true },
		debounce:  DefaultDebounce,
		logger:    slog.Default(),
		fsw:       fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	if !w.recursive {
		return w.add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.add(path)
		}
		return nil
	})
}

func (w *Watcher) add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext("path", dir).
			Build()
	}
	w.logger.Debug("Watching directory", logfields.File(dir))
	return nil
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers changed paths to onChange until ctx is done. Paths are
// collected until no event arrives for the debounce interval, then passed
// sorted and deduplicated. onChange runs on the watcher goroutine, so
// events arriving meanwhile are batched for the next call.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	pending := make(map[string]struct{})
	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event, pending) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logfields.Error(err))

		case <-settle:
			settle = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			w.logger.Info("Detected changed files", slog.Int("count", len(paths)))
			onChange(ctx, paths)
		}
	}
}

// handle records a relevant event and reports whether it was one.
func (w *Watcher) handle(event fsnotify.Event, pending map[string]struct{}) bool {
	if w.recursive && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", logfields.File(event.Name), logfields.Error(err))
			}
			return false
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if !w.filter(event.Name) {
		return false
	}
	w.logger.Debug("File change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
	pending[event.Name] = struct{}{}
	return true
}
