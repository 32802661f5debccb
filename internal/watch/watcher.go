package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/asciicanvas/internal/session"
)

// DefaultDebounce collapses the burst of events one save produces.
const DefaultDebounce = 50 * time.Millisecond

// Errors returned by the watcher.
var (
	// ErrPathNotExist indicates the watched file does not exist.
	ErrPathNotExist = errors.New("path does not exist")
)

// Handler receives each replay outcome.
type Handler func(Result, error)

// Watcher replays a command file whenever it is written.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration
	sessOpts []session.Option
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long to wait for further events before replaying.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithSessionOptions configures the session each replay runs in.
func WithSessionOptions(opts ...session.Option) Option {
	return func(w *Watcher) {
		w.sessOpts = append(w.sessOpts, opts...)
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a watcher for path. handler is called from Run's goroutine.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		handler:  handler,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run replays the file once, then again after every change, until ctx is
// done. The parent directory is watched so that editors which replace the
// file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.replay(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file changed", slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.replay(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) replay(ctx context.Context) {
	res, err := ReplayFile(ctx, w.path, w.sessOpts...)
	if ctx.Err() != nil {
		return
	}
	w.logger.Debug("replayed", slog.Int("errors", len(res.Errors)))
	if w.handler != nil {
		w.handler(res, err)
	}
}
