// Package session executes drawing commands against a canvas and its
// undo/redo history.
//
// A Session owns the active canvas (nil until the first C command) and a
// History. Every mutating command is wrapped in a history transaction: the
// pre-command state is saved, and discarded again if the command fails, so
// failed commands never appear in history.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dshills/asciicanvas/internal/command"
	"github.com/dshills/asciicanvas/internal/engine/canvas"
	"github.com/dshills/asciicanvas/internal/engine/history"
	"github.com/dshills/asciicanvas/internal/renderer"
)

// Default canvas size limits.
const (
	DefaultMaxWidth  = 1000
	DefaultMaxHeight = 1000
)

// Result describes the outcome of a successful command.
type Result struct {
	// Message is text to show the user, if any (help text, save notice).
	// It is printed before the canvas.
	Message string

	// Render is true when the canvas should be echoed after the command.
	Render bool

	// Quit is true for the Q command.
	Quit bool
}

// Session holds the state of one drawing session.
type Session struct {
	id        string
	canvas    *canvas.Canvas
	history   *history.History
	maxWidth  int
	maxHeight int
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithMaxSize sets the largest canvas a C command may create.
func WithMaxSize(width, height int) Option {
	return func(s *Session) {
		if width > 0 {
			s.maxWidth = width
		}
		if height > 0 {
			s.maxHeight = height
		}
	}
}

// WithHistorySize sets the capacity of the undo and redo stacks.
func WithHistorySize(n int) Option {
	return func(s *Session) {
		s.history.SetMaxEntries(n)
	}
}

// WithLogger sets the logger. The session id is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session with no canvas and empty history.
func New(opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		history:   history.New(history.DefaultMaxEntries),
		maxWidth:  DefaultMaxWidth,
		maxHeight: DefaultMaxHeight,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Canvas returns the active canvas, or nil if none exists.
func (s *Session) Canvas() *canvas.Canvas {
	return s.canvas
}

// History returns the session's undo/redo history.
func (s *Session) History() *history.History {
	return s.history
}

// RequireCanvas returns the active canvas or ErrNoCanvas.
func (s *Session) RequireCanvas() (*canvas.Canvas, error) {
	if s.canvas == nil {
		return nil, ErrNoCanvas
	}
	return s.canvas, nil
}

// Render returns the bordered text of the active canvas, or "" if none.
func (s *Session) Render() string {
	if s.canvas == nil {
		return ""
	}
	return renderer.Render(s.canvas)
}

// ExecuteLine parses and executes one line of input.
func (s *Session) ExecuteLine(ctx context.Context, line string) (Result, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return Result{}, err
	}
	return s.Execute(ctx, cmd)
}

// Execute runs cmd. Mutating commands are saved to history first and
// rolled back on failure.
func (s *Session) Execute(ctx context.Context, cmd command.Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res, err := s.dispatch(cmd)
	if err != nil {
		s.logger.Info("command failed",
			slog.String("command", cmd.String()),
			slog.String("error", err.Error()),
		)
		return Result{}, err
	}

	attrs := []any{
		slog.String("command", cmd.String()),
		slog.Int("undo", s.history.UndoCount()),
		slog.Int("redo", s.history.RedoCount()),
	}
	if ts, ok := s.history.LastSaved(); ok {
		attrs = append(attrs, slog.Time("last_saved", ts))
	}
	s.logger.Debug("command executed", attrs...)
	return res, nil
}

func (s *Session) dispatch(cmd command.Command) (Result, error) {
	if !cmd.Mutating() {
		return s.control(cmd)
	}

	err := s.history.Transaction(s.canvas, func() error {
		return s.mutate(cmd)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Render: s.canvas != nil}, nil
}

// mutate applies a mutating command to the canvas.
func (s *Session) mutate(cmd command.Command) error {
	switch c := cmd.(type) {
	case command.CreateCanvas:
		return s.createCanvas(c)

	case command.DrawLine:
		cv, err := s.RequireCanvas()
		if err != nil {
			return err
		}
		if err := cv.ValidateBounds(c.From, c.To); err != nil {
			return err
		}
		if c.IsDiagonal() {
			return ErrInvalidGeometry
		}
		cv.DrawLine(c.From, c.To)
		return nil

	case command.DrawRectangle:
		cv, err := s.RequireCanvas()
		if err != nil {
			return err
		}
		if err := cv.ValidateBounds(c.Corner1, c.Corner2); err != nil {
			return err
		}
		cv.DrawRectangle(c.Corner1, c.Corner2)
		return nil

	case command.BucketFill:
		cv, err := s.RequireCanvas()
		if err != nil {
			return err
		}
		if c.Color == canvas.Line {
			return fmt.Errorf("%w: %q is used for lines", ErrReservedColor, c.Color)
		}
		if err := cv.ValidateBounds(c.At); err != nil {
			return err
		}
		painted := cv.Fill(c.At, c.Color)
		s.logger.Debug("fill", slog.Int("painted", painted))
		return nil

	default:
		return fmt.Errorf("command %s is not a canvas mutation", cmd.Name())
	}
}

func (s *Session) createCanvas(c command.CreateCanvas) error {
	if c.Width > s.maxWidth || c.Height > s.maxHeight {
		return fmt.Errorf("%w: %dx%d (max %dx%d)",
			ErrSizeLimitExceeded, c.Width, c.Height, s.maxWidth, s.maxHeight)
	}
	cv, err := canvas.New(c.Width, c.Height)
	if err != nil {
		return err
	}
	s.canvas = cv
	return nil
}

// control runs the commands that do not go through a history transaction.
func (s *Session) control(cmd command.Command) (Result, error) {
	switch c := cmd.(type) {
	case command.Undo:
		snap, err := s.history.Undo(s.canvas)
		if err != nil {
			return Result{}, err
		}
		s.canvas = snap.Restore()
		return Result{Render: s.canvas != nil}, nil

	case command.Redo:
		snap, err := s.history.Redo(s.canvas)
		if err != nil {
			return Result{}, err
		}
		s.canvas = snap.Restore()
		return Result{Render: s.canvas != nil}, nil

	case command.Save:
		if err := s.save(c.Path); err != nil {
			return Result{}, err
		}
		return Result{Message: "canvas saved to: " + c.Path, Render: true}, nil

	case command.Help:
		return Result{Message: command.HelpText, Render: s.canvas != nil}, nil

	case command.Quit:
		return Result{Quit: true}, nil

	default:
		return Result{}, fmt.Errorf("unsupported command %s", cmd.Name())
	}
}

func (s *Session) save(path string) error {
	cv, err := s.RequireCanvas()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}
	if _, err := renderer.WriteTo(f, cv); err != nil {
		_ = f.Close()
		return NewOperationError("save", path, err)
	}
	if err := f.Close(); err != nil {
		return NewOperationError("save", path, err)
	}
	return nil
}
