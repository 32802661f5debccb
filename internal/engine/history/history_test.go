package history

import (
	"errors"
	"testing"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

func newCanvas(t *testing.T, w, h int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(w, h)
	if err != nil {
		t.Fatalf("canvas.New error = %v", err)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	if got := New(0).MaxEntries(); got != DefaultMaxEntries {
		t.Errorf("New(0).MaxEntries() = %d, want %d", got, DefaultMaxEntries)
	}
	if got := New(7).MaxEntries(); got != 7 {
		t.Errorf("New(7).MaxEntries() = %d", got)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New(10)
	if _, err := h.Undo(nil); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty history error = %v, want ErrNothingToUndo", err)
	}
	if _, err := h.Redo(nil); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty history error = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoToNoCanvas(t *testing.T) {
	h := New(10)

	h.SaveState(nil)
	current := newCanvas(t, 5, 4)

	snap, err := h.Undo(current)
	if err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	if !snap.IsEmpty() {
		t.Error("undoing canvas creation should return NoCanvas")
	}

	snap, err = h.Redo(nil)
	if err != nil {
		t.Fatalf("Redo error = %v", err)
	}
	if restored := snap.Restore(); !restored.Equal(current) {
		t.Error("redo should bring back the created canvas")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 5, 4)

	h.SaveState(c)
	c.DrawLine(canvas.Pt(1, 1), canvas.Pt(3, 1))
	drawn := c.Clone()

	snap, err := h.Undo(c)
	if err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	c = snap.Restore()
	if c.Get(canvas.Pt(2, 1)) != canvas.Blank {
		t.Error("undo did not remove the line")
	}

	snap, err = h.Redo(c)
	if err != nil {
		t.Fatalf("Redo error = %v", err)
	}
	c = snap.Restore()
	if !c.Equal(drawn) {
		t.Error("redo did not restore the line")
	}
}

func TestSaveClearsRedo(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 3, 3)

	h.SaveState(c)
	if _, err := h.Undo(c); err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	h.SaveState(c)
	if h.CanRedo() {
		t.Error("SaveState should clear the redo stack")
	}
	if _, err := h.Redo(c); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo after new edit error = %v, want ErrNothingToRedo", err)
	}
}

func TestDiscardLastState(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 3, 3)

	h.SaveState(nil)
	h.SaveState(c)
	depth := h.UndoCount()

	h.SaveState(c)
	h.DiscardLastState()

	if h.UndoCount() != depth {
		t.Errorf("UndoCount after save+discard = %d, want %d", h.UndoCount(), depth)
	}

	empty := New(10)
	empty.DiscardLastState()
	if empty.UndoCount() != 0 {
		t.Error("DiscardLastState on empty history should be a no-op")
	}
}

func TestDiscardRestoresPreviousTop(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 3, 3)

	h.SaveState(c)
	c.Set(canvas.Pt(1, 1), 'a')
	h.SaveState(c)
	h.DiscardLastState()

	snap, err := h.Undo(c)
	if err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	if snap.Restore().Get(canvas.Pt(1, 1)) != canvas.Blank {
		t.Error("undo after discard returned the discarded state")
	}
}

func TestCapacityBound(t *testing.T) {
	h := New(50)
	c := newCanvas(t, 2, 2)

	for i := 0; i < 60; i++ {
		h.SaveState(c)
	}
	if h.UndoCount() != 50 {
		t.Fatalf("UndoCount = %d, want 50", h.UndoCount())
	}

	undos := 0
	for {
		if _, err := h.Undo(c); err != nil {
			if !errors.Is(err, ErrNothingToUndo) {
				t.Fatalf("unexpected error = %v", err)
			}
			break
		}
		undos++
	}
	if undos != 50 {
		t.Errorf("successful undos = %d, want 50", undos)
	}
	if h.RedoCount() != 50 {
		t.Errorf("RedoCount = %d, want 50", h.RedoCount())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(2)

	for _, r := range []rune{'a', 'b', 'c'} {
		c := newCanvas(t, 1, 1)
		c.Set(canvas.Pt(1, 1), r)
		h.SaveState(c)
	}

	var got []rune
	for h.CanUndo() {
		snap, _ := h.Undo(nil)
		got = append(got, snap.Restore().Get(canvas.Pt(1, 1)))
	}
	if string(got) != "cb" {
		t.Errorf("undo order = %q, want %q", string(got), "cb")
	}
}

func TestNUndosRestoreInitialState(t *testing.T) {
	h := New(DefaultMaxEntries)
	var current *canvas.Canvas

	mutations := []func(){
		func() { current = newCanvas(t, 8, 5) },
		func() { current.DrawLine(canvas.Pt(1, 1), canvas.Pt(8, 1)) },
		func() { current.DrawRectangle(canvas.Pt(2, 2), canvas.Pt(6, 5)) },
		func() { current.Fill(canvas.Pt(3, 3), 'o') },
	}
	for _, m := range mutations {
		h.SaveState(current)
		m()
	}

	for range mutations {
		snap, err := h.Undo(current)
		if err != nil {
			t.Fatalf("Undo error = %v", err)
		}
		current = snap.Restore()
	}
	if current != nil {
		t.Error("undoing every mutation should return to no canvas")
	}
}

func TestTransaction(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 3, 3)

	if err := h.Transaction(c, func() error { return nil }); err != nil {
		t.Fatalf("Transaction error = %v", err)
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}

	boom := errors.New("boom")
	if err := h.Transaction(c, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Transaction error = %v, want boom", err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("failed transaction changed UndoCount to %d", h.UndoCount())
	}
}

func TestSetMaxEntriesTrims(t *testing.T) {
	h := New(10)
	for i := 0; i < 8; i++ {
		h.SaveState(nil)
	}
	h.SetMaxEntries(3)
	if h.UndoCount() != 3 {
		t.Errorf("UndoCount after SetMaxEntries(3) = %d", h.UndoCount())
	}
	h.SetMaxEntries(-1)
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("SetMaxEntries(-1) should select the default, got %d", h.MaxEntries())
	}
}

func TestLastSaved(t *testing.T) {
	h := New(10)
	if _, ok := h.LastSaved(); ok {
		t.Error("LastSaved on empty history should report false")
	}
	h.SaveState(nil)
	if ts, ok := h.LastSaved(); !ok || ts.IsZero() {
		t.Error("LastSaved should report the save time")
	}
	if _, err := h.Undo(nil); err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	if _, ok := h.LastSaved(); ok {
		t.Error("LastSaved after undoing the only entry should report false")
	}
}

func TestDiscardRestoresRedo(t *testing.T) {
	h := New(10)
	c := newCanvas(t, 3, 3)

	h.SaveState(c)
	if _, err := h.Undo(c); err != nil {
		t.Fatalf("Undo error = %v", err)
	}

	h.SaveState(c)
	if h.CanRedo() {
		t.Fatal("SaveState should clear redo")
	}
	h.DiscardLastState()

	if h.RedoCount() != 1 {
		t.Errorf("RedoCount after save+discard = %d, want 1", h.RedoCount())
	}
	if h.UndoCount() != 0 {
		t.Errorf("UndoCount after save+discard = %d, want 0", h.UndoCount())
	}
}

func TestDiscardRestoresEvicted(t *testing.T) {
	h := New(2)
	for _, r := range []rune{'a', 'b'} {
		c := newCanvas(t, 1, 1)
		c.Set(canvas.Pt(1, 1), r)
		h.SaveState(c)
	}

	h.SaveState(nil)
	h.DiscardLastState()

	var got []rune
	for h.CanUndo() {
		snap, _ := h.Undo(nil)
		got = append(got, snap.Restore().Get(canvas.Pt(1, 1)))
	}
	if string(got) != "ba" {
		t.Errorf("undo order after discard = %q, want %q", string(got), "ba")
	}
}

func TestDiscardAfterUndoOnlyPops(t *testing.T) {
	h := New(10)
	h.SaveState(nil)
	h.SaveState(nil)
	if _, err := h.Undo(nil); err != nil {
		t.Fatalf("Undo error = %v", err)
	}

	h.DiscardLastState()
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("undo=%d redo=%d, want 0 and 1", h.UndoCount(), h.RedoCount())
	}
}
