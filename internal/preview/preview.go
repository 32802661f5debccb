// Package preview is a full-screen canvas editor on a terminal backend.
//
// Normal mode keys:
//
//	arrows, h j k l   move the cursor
//	m                 set the anchor at the cursor
//	L / R             line or rectangle from the anchor to the cursor
//	f <c>             bucket fill at the cursor with color c
//	u / z             undo / redo
//	:                 type a REPL command, Enter to run, Esc to cancel
//	Esc               clear the anchor
//	q, Ctrl-C         quit
//
// Every edit goes through the session, so the history behaves exactly as
// it does in the REPL.
package preview

import (
	"context"
	"io"
	"log/slog"

	"github.com/dshills/asciicanvas/internal/command"
	"github.com/dshills/asciicanvas/internal/engine/canvas"
	"github.com/dshills/asciicanvas/internal/renderer"
	"github.com/dshills/asciicanvas/internal/renderer/backend"
	"github.com/dshills/asciicanvas/internal/session"
)

// Mode is the editor's input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeFillColor
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFillColor:
		return "FILL"
	default:
		return "NORMAL"
	}
}

const noCanvasHint = "no canvas: press : and type C <width> <height>"

// Editor is an interactive canvas view.
type Editor struct {
	session *session.Session
	backend backend.Backend
	logger  *slog.Logger

	cursor canvas.Point
	anchor *canvas.Point
	mode   Mode
	input  []rune

	status    string
	statusErr bool
	quit      bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New creates an editor drawing sess on b. The backend must already be
// initialized.
func New(sess *session.Session, b backend.Backend, opts ...Option) *Editor {
	e := &Editor{
		session: sess,
		backend: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		cursor:  canvas.Pt(1, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cursor returns the cursor position in canvas coordinates.
func (e *Editor) Cursor() canvas.Point { return e.cursor }

// Anchor returns the anchor, if one is set.
func (e *Editor) Anchor() (canvas.Point, bool) {
	if e.anchor == nil {
		return canvas.Point{}, false
	}
	return *e.anchor, true
}

// Mode returns the current input mode.
func (e *Editor) Mode() Mode { return e.mode }

// Status returns the status line message and whether it is an error.
func (e *Editor) Status() (string, bool) { return e.status, e.statusErr }

// Done reports whether the user asked to quit.
func (e *Editor) Done() bool { return e.quit }

// Run draws the editor and handles events until the user quits or ctx is
// done.
func (e *Editor) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		e.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
	defer stop()

	e.Draw()
	for !e.quit {
		ev := e.backend.PollEvent()
		if ev.Type == backend.EventInterrupt && ctx.Err() != nil {
			return ctx.Err()
		}
		e.HandleEvent(ctx, ev)
		e.Draw()
	}
	return nil
}

// HandleEvent applies one event.
func (e *Editor) HandleEvent(ctx context.Context, ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		switch e.mode {
		case ModeCommand:
			e.commandKey(ctx, ev)
		case ModeFillColor:
			e.fillKey(ctx, ev)
		default:
			e.normalKey(ctx, ev)
		}
	case backend.EventResize:
		e.backend.Clear()
	}
}

func (e *Editor) normalKey(ctx context.Context, ev backend.Event) {
	switch ev.Key {
	case backend.KeyCtrlC:
		e.quit = true
		return
	case backend.KeyEscape:
		e.anchor = nil
		e.setStatus("", false)
		return
	case backend.KeyUp:
		e.move(0, -1)
		return
	case backend.KeyDown:
		e.move(0, 1)
		return
	case backend.KeyLeft:
		e.move(-1, 0)
		return
	case backend.KeyRight:
		e.move(1, 0)
		return
	case backend.KeyRune:
	default:
		return
	}

	switch ev.Rune {
	case 'h':
		e.move(-1, 0)
	case 'j':
		e.move(0, 1)
	case 'k':
		e.move(0, -1)
	case 'l':
		e.move(1, 0)
	case 'q':
		e.quit = true
	case 'm':
		if e.session.Canvas() == nil {
			e.setStatus(noCanvasHint, true)
			return
		}
		p := e.cursor
		e.anchor = &p
		e.setStatus("anchor "+p.String(), false)
	case 'L', 'R':
		e.shape(ctx, ev.Rune)
	case 'f':
		e.mode = ModeFillColor
		e.setStatus("fill color?", false)
	case 'u':
		e.execute(ctx, command.Undo{})
	case 'z':
		e.execute(ctx, command.Redo{})
	case ':':
		e.mode = ModeCommand
		e.input = e.input[:0]
	}
}

func (e *Editor) shape(ctx context.Context, r rune) {
	if e.anchor == nil {
		e.setStatus("set an anchor with m first", true)
		return
	}
	from := *e.anchor
	var cmd command.Command = command.DrawLine{From: from, To: e.cursor}
	if r == 'R' {
		cmd = command.DrawRectangle{Corner1: from, Corner2: e.cursor}
	}
	if e.execute(ctx, cmd) {
		e.anchor = nil
	}
}

func (e *Editor) fillKey(ctx context.Context, ev backend.Event) {
	e.mode = ModeNormal
	if ev.Key != backend.KeyRune {
		e.setStatus("", false)
		return
	}
	e.execute(ctx, command.BucketFill{At: e.cursor, Color: ev.Rune})
}

func (e *Editor) commandKey(ctx context.Context, ev backend.Event) {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		e.mode = ModeNormal
		e.input = e.input[:0]
	case backend.KeyBackspace:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case backend.KeyEnter:
		line := string(e.input)
		e.mode = ModeNormal
		e.input = e.input[:0]
		cmd, err := command.Parse(line)
		if err != nil {
			e.setStatus(err.Error(), true)
			return
		}
		e.execute(ctx, cmd)
	case backend.KeyRune:
		e.input = append(e.input, ev.Rune)
	}
}

// execute runs cmd on the session and reports the outcome on the status
// line. It returns true on success.
func (e *Editor) execute(ctx context.Context, cmd command.Command) bool {
	res, err := e.session.Execute(ctx, cmd)
	if err != nil {
		e.logger.Debug("preview command failed", slog.String("command", cmd.String()), slog.String("error", err.Error()))
		e.setStatus(err.Error(), true)
		return false
	}
	if res.Quit {
		e.quit = true
		return true
	}
	e.setStatus(res.Message, false)
	if _, ok := cmd.(command.CreateCanvas); ok {
		e.cursor = canvas.Pt(1, 1)
		e.anchor = nil
	}
	e.clamp()
	return true
}

func (e *Editor) setStatus(msg string, isErr bool) {
	e.status = msg
	e.statusErr = isErr
}

func (e *Editor) move(dx, dy int) {
	e.cursor = e.cursor.MoveX(dx).MoveY(dy)
	e.clamp()
}

// clamp keeps the cursor and anchor on the canvas after moves or size
// changes.
func (e *Editor) clamp() {
	cv := e.session.Canvas()
	if cv == nil {
		e.cursor = canvas.Pt(1, 1)
		e.anchor = nil
		return
	}
	e.cursor = canvas.Pt(
		min(max(e.cursor.X, 1), cv.Width()),
		min(max(e.cursor.Y, 1), cv.Height()),
	)
	if e.anchor != nil && !cv.Contains(*e.anchor) {
		e.anchor = nil
	}
}

// Draw repaints the whole screen.
func (e *Editor) Draw() {
	b := e.backend
	b.Clear()
	_, height := b.Size()

	cv := e.session.Canvas()
	if cv != nil {
		renderer.Draw(b, cv, 0, 0)
		if e.anchor != nil {
			a := *e.anchor
			b.SetCell(a.X, a.Y, backend.Cell{Rune: cv.Get(a), Attr: backend.AttrReverse})
		}
	}

	statusY := height - 1
	switch e.mode {
	case ModeCommand:
		x := renderer.DrawText(b, 0, statusY, ":"+string(e.input), backend.AttrNone)
		b.ShowCursor(x, statusY)
	default:
		msg := e.status
		if msg == "" && cv == nil {
			msg = noCanvasHint
		}
		attr := backend.AttrNone
		if e.statusErr {
			attr = backend.AttrBold
		}
		x := renderer.DrawText(b, 0, statusY, e.mode.String()+" "+e.cursor.String()+" ", backend.AttrReverse)
		renderer.DrawText(b, x+1, statusY, msg, attr)
		if cv != nil {
			b.ShowCursor(e.cursor.X, e.cursor.Y)
		} else {
			b.HideCursor()
		}
	}
	b.Show()
}
