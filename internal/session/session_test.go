package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/asciicanvas/internal/command"
	"github.com/dshills/asciicanvas/internal/engine/canvas"
	"github.com/dshills/asciicanvas/internal/engine/history"
)

func run(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := s.ExecuteLine(context.Background(), line); err != nil {
			t.Fatalf("ExecuteLine(%q) error = %v", line, err)
		}
	}
}

func expectErr(t *testing.T, s *Session, line string, target error) {
	t.Helper()
	_, err := s.ExecuteLine(context.Background(), line)
	if !errors.Is(err, target) {
		t.Fatalf("ExecuteLine(%q) error = %v, want %v", line, err, target)
	}
}

func TestRequirementsExample(t *testing.T) {
	s := New()
	run(t, s, "C 20 4", "L 1 2 6 2")

	cv := s.Canvas()
	for x := 1; x <= 6; x++ {
		if cv.Get(canvas.Pt(x, 2)) != canvas.Line {
			t.Errorf("pixel (%d,2) not painted", x)
		}
	}
	if cv.Get(canvas.Pt(1, 1)) != canvas.Blank {
		t.Error("pixel (1,1) should be blank")
	}

	run(t, s, "L 6 3 6 4", "R 14 1 18 3", "B 10 3 o")
	cv = s.Canvas()
	if cv.Get(canvas.Pt(10, 3)) != 'o' || cv.Get(canvas.Pt(1, 1)) != 'o' {
		t.Error("fill did not reach the open region")
	}
	if cv.Get(canvas.Pt(16, 2)) != canvas.Blank {
		t.Error("fill leaked into the rectangle")
	}
}

func TestNoCanvas(t *testing.T) {
	s := New()
	for _, line := range []string{"L 1 1 2 1", "R 1 1 2 2", "B 1 1 o", "S out.txt"} {
		expectErr(t, s, line, ErrNoCanvas)
	}
	if s.History().CanUndo() {
		t.Error("failed commands should not leave history entries")
	}
}

func TestSizeLimit(t *testing.T) {
	s := New()
	expectErr(t, s, "C 1001 5", ErrSizeLimitExceeded)
	expectErr(t, s, "C 5 1001", ErrSizeLimitExceeded)
	run(t, s, "C 1000 1000")

	small := New(WithMaxSize(10, 10))
	expectErr(t, small, "C 11 2", ErrSizeLimitExceeded)
	if small.Canvas() != nil {
		t.Error("failed C should not create a canvas")
	}
}

func TestDiagonalRejected(t *testing.T) {
	s := New()
	run(t, s, "C 5 5")
	before := s.History().UndoCount()

	expectErr(t, s, "L 1 1 3 3", ErrInvalidGeometry)

	if s.History().UndoCount() != before {
		t.Error("failed line left an undo entry")
	}
	if s.Canvas().Get(canvas.Pt(1, 1)) != canvas.Blank {
		t.Error("diagonal line painted pixels")
	}
}

func TestOutOfBounds(t *testing.T) {
	s := New()
	run(t, s, "C 5 5")
	expectErr(t, s, "L 1 1 6 1", canvas.ErrOutOfBounds)
	expectErr(t, s, "R 1 1 5 9", canvas.ErrOutOfBounds)
	expectErr(t, s, "B 6 6 o", canvas.ErrOutOfBounds)

	_, err := s.ExecuteLine(context.Background(), "L 1 1 6 1")
	if err.Error() != "point (6,1) out of bounds (canvas: 5x5)" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestBoundsCheckedBeforeGeometry(t *testing.T) {
	s := New()
	run(t, s, "C 5 5")
	expectErr(t, s, "L 1 1 9 9", canvas.ErrOutOfBounds)
}

func TestReservedColor(t *testing.T) {
	s := New()
	run(t, s, "C 5 5")
	expectErr(t, s, "B 1 1 x", ErrReservedColor)
	if s.History().UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", s.History().UndoCount())
	}
}

func TestUndoRedoFlow(t *testing.T) {
	s := New()
	run(t, s, "C 5 4", "L 1 1 3 1")

	run(t, s, "U")
	if s.Canvas().Get(canvas.Pt(2, 1)) != canvas.Blank {
		t.Error("undo did not remove the line")
	}

	run(t, s, "Z")
	if s.Canvas().Get(canvas.Pt(2, 1)) != canvas.Line {
		t.Error("redo did not restore the line")
	}
}

func TestUndoThenEditInvalidatesRedo(t *testing.T) {
	s := New()
	run(t, s, "C 5 4", "L 1 1 3 1", "L 1 2 3 2", "U", "L 1 4 3 4")
	expectErr(t, s, "Z", history.ErrNothingToRedo)

	cv := s.Canvas()
	if cv.Get(canvas.Pt(1, 2)) != canvas.Blank || cv.Get(canvas.Pt(1, 4)) != canvas.Line {
		t.Error("canvas does not reflect undo followed by a new edit")
	}
}

func TestUndoToNoCanvas(t *testing.T) {
	s := New()
	run(t, s, "C 5 4")

	res, err := s.ExecuteLine(context.Background(), "U")
	if err != nil {
		t.Fatalf("U error = %v", err)
	}
	if s.Canvas() != nil {
		t.Error("undoing the first C should clear the canvas")
	}
	if res.Render {
		t.Error("nothing should be rendered without a canvas")
	}
	expectErr(t, s, "U", history.ErrNothingToUndo)

	run(t, s, "Z")
	if s.Canvas() == nil || s.Canvas().Width() != 5 {
		t.Error("redo should restore the created canvas")
	}
}

func TestCreateReplacesCanvas(t *testing.T) {
	s := New()
	run(t, s, "C 5 4", "B 1 1 o", "C 3 2")
	if s.Canvas().Width() != 3 || s.Canvas().Get(canvas.Pt(1, 1)) != canvas.Blank {
		t.Error("C should replace the canvas with a blank one")
	}
	run(t, s, "U")
	if s.Canvas().Width() != 5 || s.Canvas().Get(canvas.Pt(1, 1)) != 'o' {
		t.Error("undo should bring back the previous canvas")
	}
}

func TestNUndosReturnToStart(t *testing.T) {
	s := New()
	lines := []string{"C 10 6", "L 1 1 5 1", "R 7 2 9 4", "B 1 3 o"}
	run(t, s, lines...)
	for range lines {
		run(t, s, "U")
	}
	if s.Canvas() != nil {
		t.Error("undoing every command should return to no canvas")
	}
}

func TestFailedCommandsKeepHistory(t *testing.T) {
	s := New()
	run(t, s, "C 5 5", "L 1 1 5 1", "U")
	undo, redo := s.History().UndoCount(), s.History().RedoCount()

	for _, line := range []string{"L 1 1 2 2", "B 9 9 o", "B 1 1 x", "C 2000 1"} {
		_, _ = s.ExecuteLine(context.Background(), line)
	}

	if s.History().UndoCount() != undo || s.History().RedoCount() != redo {
		t.Error("failed commands changed history depth")
	}
	run(t, s, "Z")
	if s.Canvas().Get(canvas.Pt(1, 1)) != canvas.Line {
		t.Error("redo lost after failed commands")
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New()
	run(t, s, "C 4 4")
	for i := 0; i < 59; i++ {
		run(t, s, "L 1 1 1 1")
	}
	for i := 0; i < 50; i++ {
		run(t, s, "U")
	}
	expectErr(t, s, "U", history.ErrNothingToUndo)
}

func TestWithHistorySize(t *testing.T) {
	s := New(WithHistorySize(2))
	run(t, s, "C 2 2", "L 1 1 1 1", "L 2 2 2 2", "U", "U")
	expectErr(t, s, "U", history.ErrNothingToUndo)
}

func TestSave(t *testing.T) {
	s := New()
	run(t, s, "C 4 2", "L 1 1 4 1")

	path := filepath.Join(t.TempDir(), "out.txt")
	res, err := s.Execute(context.Background(), command.Save{Path: path})
	if err != nil {
		t.Fatalf("Save error = %v", err)
	}
	if !res.Render {
		t.Error("save should request a render")
	}
	if !strings.Contains(res.Message, path) {
		t.Errorf("message = %q", res.Message)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	if string(data) != s.Render() {
		t.Errorf("saved file differs from rendered canvas:\n%s", data)
	}
	if s.History().UndoCount() != 2 {
		t.Error("save should not touch history")
	}
}

func TestSaveFailure(t *testing.T) {
	s := New()
	run(t, s, "C 2 2")

	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	_, err := s.Execute(context.Background(), command.Save{Path: path})

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("error = %v, want *OperationError", err)
	}
	if opErr.Op != "save" || opErr.Target != path {
		t.Errorf("OperationError = %+v", opErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("OperationError should unwrap to the I/O error")
	}
}

func TestHelpAndQuit(t *testing.T) {
	s := New()
	res, err := s.ExecuteLine(context.Background(), "H")
	if err != nil || res.Message != command.HelpText {
		t.Errorf("H result = %+v, %v", res, err)
	}
	if res.Render {
		t.Error("help without a canvas should not request a render")
	}
	run(t, s, "C 2 2")
	res, err = s.ExecuteLine(context.Background(), "H")
	if err != nil || !res.Render {
		t.Errorf("H with a canvas = %+v, %v; want Render", res, err)
	}
	res, err = s.ExecuteLine(context.Background(), "Q")
	if err != nil || !res.Quit {
		t.Errorf("Q result = %+v, %v", res, err)
	}
}

func TestHistorySizeAndDebugLog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(WithHistorySize(2), WithLogger(logger))
	if s.History().MaxEntries() != 2 {
		t.Fatalf("MaxEntries = %d, want 2", s.History().MaxEntries())
	}
	run(t, s, "C 3 3", "L 1 1 3 1", "L 1 2 3 2")
	if s.History().UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", s.History().UndoCount())
	}
	if !strings.Contains(logs.String(), "last_saved=") {
		t.Errorf("debug log missing last_saved: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "session="+s.ID()) {
		t.Errorf("debug log missing session id: %s", logs.String())
	}
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ExecuteLine(ctx, "C 2 2"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if s.History().CanUndo() {
		t.Error("canceled command recorded history")
	}
}

func TestSessionID(t *testing.T) {
	a, b := New(), New()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session ids %q and %q should be unique", a.ID(), b.ID())
	}
}
