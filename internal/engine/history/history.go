package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

// DefaultMaxEntries is the default capacity of each stack.
const DefaultMaxEntries = 50

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry wraps a snapshot with the time it was taken.
type entry struct {
	snapshot  canvas.Snapshot
	timestamp time.Time
}

// History manages the undo/redo stacks for a drawing session.
type History struct {
	mu sync.Mutex

	undoStack []entry
	redoStack []entry

	// State replaced by the most recent SaveState, kept so that an
	// immediately following DiscardLastState can put it back.
	lastSave *savedState

	maxEntries int
}

// savedState is what SaveState dropped: the redo stack and any undo
// entries evicted for capacity.
type savedState struct {
	redo    []entry
	evicted []entry
}

// New creates a history whose stacks hold at most maxEntries snapshots.
// A non-positive value selects DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// SaveState records the state before a mutation. A nil canvas is recorded
// as canvas.NoCanvas. The redo stack is cleared.
func (h *History) SaveState(current *canvas.Canvas) {
	snap := canvas.Capture(current)

	h.mu.Lock()
	defer h.mu.Unlock()

	saved := &savedState{redo: h.redoStack}
	h.undoStack = append(h.undoStack, entry{snapshot: snap, timestamp: time.Now()})
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		saved.evicted = append([]entry(nil), h.undoStack[:excess]...)
		h.undoStack = append(h.undoStack[:0:0], h.undoStack[excess:]...)
	}
	h.redoStack = nil
	h.lastSave = saved
}

// DiscardLastState drops the newest undo entry. It is used when the
// mutation that followed SaveState failed. When called right after
// SaveState it also puts back the redo stack and any evicted entries, so
// the save has no lasting effect. No-op on an empty stack.
func (h *History) DiscardLastState() {
	h.mu.Lock()
	defer h.mu.Unlock()

	saved := h.lastSave
	h.lastSave = nil

	n := len(h.undoStack)
	if n == 0 {
		return
	}
	h.undoStack = h.undoStack[:n-1]

	if saved != nil {
		h.undoStack = append(saved.evicted, h.undoStack...)
		h.redoStack = saved.redo
	}
}

// Undo moves current onto the redo stack and returns the previous state.
func (h *History) Undo(current *canvas.Canvas) (canvas.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return canvas.NoCanvas, ErrNothingToUndo
	}
	h.lastSave = nil

	h.redoStack = h.push(h.redoStack, canvas.Capture(current))

	n := len(h.undoStack)
	e := h.undoStack[n-1]
	h.undoStack = h.undoStack[:n-1]
	return e.snapshot, nil
}

// Redo moves current onto the undo stack and returns the most recently
// undone state.
func (h *History) Redo(current *canvas.Canvas) (canvas.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return canvas.NoCanvas, ErrNothingToRedo
	}
	h.lastSave = nil

	h.undoStack = h.push(h.undoStack, canvas.Capture(current))

	n := len(h.redoStack)
	e := h.redoStack[n-1]
	h.redoStack = h.redoStack[:n-1]
	return e.snapshot, nil
}

// push appends a snapshot and drops the oldest entries past capacity.
// Must be called with h.mu held.
func (h *History) push(stack []entry, snap canvas.Snapshot) []entry {
	stack = append(stack, entry{snapshot: snap, timestamp: time.Now()})
	if len(stack) > h.maxEntries {
		excess := len(stack) - h.maxEntries
		stack = append(stack[:0:0], stack[excess:]...)
	}
	return stack
}

// Transaction saves current, runs fn, and discards the saved state if fn
// fails. The error from fn is returned unchanged.
func (h *History) Transaction(current *canvas.Canvas, fn func() error) error {
	h.SaveState(current)
	if err := fn(); err != nil {
		h.DiscardLastState()
		return err
	}
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// LastSaved returns when the newest undo entry was recorded.
func (h *History) LastSaved() (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return time.Time{}, false
	}
	return h.undoStack[len(h.undoStack)-1].timestamp, true
}

// SetMaxEntries changes the capacity of both stacks.
// If a stack is larger, its oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.lastSave = nil
	if len(h.undoStack) > max {
		h.undoStack = h.undoStack[len(h.undoStack)-max:]
	}
	if len(h.redoStack) > max {
		h.redoStack = h.redoStack[len(h.redoStack)-max:]
	}
}

// MaxEntries returns the capacity of each stack.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
