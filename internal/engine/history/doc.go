// Package history provides snapshot-based undo/redo for the drawing engine.
//
// History keeps two bounded stacks of canvas snapshots. Callers follow a
// save-before-mutate discipline:
//
//	h := history.New(50)
//
//	h.SaveState(current)      // before every mutating command
//	if err := mutate(); err != nil {
//	    h.DiscardLastState()  // roll back the failed attempt
//	}
//
//	prev, err := h.Undo(current) // NoCanvas means "clear the canvas"
//	next, err := h.Redo(current)
//
// Transaction wraps the save/discard pair around a callback.
//
// Any new SaveState clears the redo stack. When a stack exceeds its
// capacity the oldest snapshot is dropped.
//
// History never looks inside a snapshot; it only captures and returns them.
package history
