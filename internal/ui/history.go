package ui

import "github.com/piwi3910/TilePlan/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the project state at a point in time.
type Snapshot struct {
	Project model.Project
	Label   string // Human-readable description (e.g. "Edit Tile")
}

// History manages undo/redo stacks of project snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// copyWalls returns a deep copy of a wall list, doors included.
func copyWalls(walls []model.Wall) []model.Wall {
	if walls == nil {
		return nil
	}
	cp := make([]model.Wall, len(walls))
	for i, w := range walls {
		cp[i] = w
		if w.Door != nil {
			d := *w.Door
			cp[i].Door = &d
		}
	}
	return cp
}

// MakeSnapshot creates a snapshot of p that shares no memory with it.
func MakeSnapshot(p model.Project, label string) Snapshot {
	p.Walls = copyWalls(p.Walls)
	return Snapshot{Project: p, Label: label}
}
