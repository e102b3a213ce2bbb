package annotation

// Store owns the committed annotation sequence and its linear undo/redo
// history. It is exclusively mutated by the host's single control thread, so
// it carries no locking.
//
// History is kept as full snapshots of the sequence rather than inverse
// operations. Annotation counts are small in practice and snapshots keep the
// undo/redo contract trivially correct.
type Store struct {
	annotations []Annotation
	undoStack   [][]Annotation
	redoStack   [][]Annotation
	nextNumber  int
}

// NewStore returns an empty store with the dot counter at 1.
func NewStore() *Store {
	return &Store{nextNumber: 1}
}

// Add appends a to the sequence. The previous sequence is pushed onto the
// undo stack and any redo entries become unreachable. Add cannot fail.
func (s *Store) Add(a Annotation) {
	s.saveState()
	s.annotations = append(s.annotations, a)
}

// NextNumber returns the counter value for the next dot annotation and
// advances it. The counter survives undo so that redone dots keep their
// original numbering; only Clear resets it.
func (s *Store) NextNumber() int {
	n := s.nextNumber
	s.nextNumber++
	return n
}

// PeekNumber returns the value the next dot would receive without advancing.
func (s *Store) PeekNumber() int { return s.nextNumber }

// Undo reverts the most recent operation. It reports whether anything
// changed; with an empty history it is a no-op.
func (s *Store) Undo() bool {
	if len(s.undoStack) == 0 {
		return false
	}
	s.redoStack = append(s.redoStack, cloneSeq(s.annotations))
	last := len(s.undoStack) - 1
	s.annotations = s.undoStack[last]
	s.undoStack = s.undoStack[:last]
	return true
}

// Redo reapplies the most recently undone operation, if any.
func (s *Store) Redo() bool {
	if len(s.redoStack) == 0 {
		return false
	}
	s.undoStack = append(s.undoStack, cloneSeq(s.annotations))
	last := len(s.redoStack) - 1
	s.annotations = s.redoStack[last]
	s.redoStack = s.redoStack[:last]
	return true
}

// CanUndo reports whether an undo would change the sequence.
func (s *Store) CanUndo() bool { return len(s.undoStack) > 0 }

// CanRedo reports whether a redo would change the sequence.
func (s *Store) CanRedo() bool { return len(s.redoStack) > 0 }

// Clear empties the sequence, discards all history and resets the dot
// counter.
func (s *Store) Clear() {
	s.annotations = nil
	s.undoStack = nil
	s.redoStack = nil
	s.nextNumber = 1
}

// Len returns the number of committed annotations.
func (s *Store) Len() int { return len(s.annotations) }

// Snapshot returns a copy of the current sequence in paint order (later
// entries draw on top). The copy never aliases internal storage.
func (s *Store) Snapshot() []Annotation {
	return cloneSeq(s.annotations)
}

func (s *Store) saveState() {
	s.undoStack = append(s.undoStack, cloneSeq(s.annotations))
	s.redoStack = nil
}

func cloneSeq(in []Annotation) []Annotation {
	if len(in) == 0 {
		return nil
	}
	out := make([]Annotation, len(in))
	copy(out, in)
	return out
}
