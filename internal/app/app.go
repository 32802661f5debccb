// Package app runs the asciicanvas read-eval-render loop.
package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/dshills/asciicanvas/internal/config"
	"github.com/dshills/asciicanvas/internal/console"
	"github.com/dshills/asciicanvas/internal/session"
)

// Application reads commands from an input, executes them against a
// session and prints the results to a console.
type Application struct {
	session *session.Session
	console console.Console
	input   io.Reader
	logger  *slog.Logger

	interactive bool
	prompt      string

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// Config supplies limits, history size and the prompt.
	Config config.Config

	// Input is read line by line. Required.
	Input io.Reader

	// Interactive shows the prompt before each line.
	Interactive bool

	// Console receives output. Defaults to a system console.
	Console console.Console

	// Logger receives diagnostics. Defaults to discarding.
	Logger *slog.Logger
}

// New creates an Application and its session.
func New(opts Options) *Application {
	if opts.Console == nil {
		opts.Console = console.NewSystem()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := opts.Config

	sess := session.New(
		session.WithMaxSize(cfg.Canvas.MaxWidth, cfg.Canvas.MaxHeight),
		session.WithHistorySize(cfg.History.Capacity),
		session.WithLogger(opts.Logger),
	)

	return &Application{
		session:     sess,
		console:     opts.Console,
		input:       opts.Input,
		logger:      opts.Logger.With(slog.String("session", sess.ID())),
		interactive: opts.Interactive,
		prompt:      cfg.REPL.Prompt,
	}
}

// Session returns the session commands run against.
func (app *Application) Session() *session.Session {
	return app.session
}

// Run processes lines until the input ends, a Q command is read or ctx
// is canceled. Quitting and end of input return nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go app.readLines(ctx, lines, readErr)

	for {
		if app.interactive {
			app.console.Print(app.prompt)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				return err
			}
			app.logger.Debug("input exhausted")
			return nil
		}

		err := app.Step(ctx, line)
		if errors.Is(err, ErrQuit) {
			app.logger.Debug("quit")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Step executes one input line and prints its outcome. Command errors are
// reported on the console and do not end the loop; ErrQuit and context
// errors are returned.
func (app *Application) Step(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	res, err := app.session.ExecuteLine(ctx, line)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		app.console.PrintError(err.Error())
		return nil
	}

	if res.Quit {
		return ErrQuit
	}
	if res.Message != "" {
		if strings.HasSuffix(res.Message, "\n") {
			app.console.Print(res.Message)
		} else {
			app.console.Println(res.Message)
		}
	}
	if res.Render {
		app.console.Print(app.session.Render())
	}
	return nil
}

// readLines feeds lines from the input until it ends or ctx is done.
// A Scan blocked on a terminal does not observe ctx; Run does not wait for
// this goroutine, and it exits once the caller closes the input.
func (app *Application) readLines(ctx context.Context, lines chan<- string, errc chan<- error) {
	defer close(lines)

	sc := bufio.NewScanner(app.input)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			errc <- nil
			return
		}
	}
	errc <- sc.Err()
}
