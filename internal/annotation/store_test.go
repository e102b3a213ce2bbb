package annotation

import (
	"testing"

	"github.com/example/imagemark/internal/geometry"
)

func arrowAt(x1, y1, x2, y2 float64) Annotation {
	return Annotation{
		Kind:      KindArrow,
		P1:        geometry.Pt(x1, y1),
		P2:        geometry.Pt(x2, y2),
		Color:     DefaultColor,
		LineWidth: DefaultLineWidth,
	}
}

func dotAt(s *Store, x, y float64) Annotation {
	return Annotation{
		Kind:      KindDot,
		P1:        geometry.Pt(x, y),
		Color:     DefaultColor,
		LineWidth: DefaultLineWidth,
		Number:    s.NextNumber(),
	}
}

func TestUndoRedoInverse(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.Add(arrowAt(float64(i), 0, float64(i)+10, 10))
	}
	want := s.Snapshot()

	const n = 3
	for i := 0; i < n; i++ {
		if !s.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	if s.Len() != 2 {
		t.Fatalf("after %d undos got %d annotations, want 2", n, s.Len())
	}
	for i := 0; i < n; i++ {
		if !s.Redo() {
			t.Fatalf("redo %d failed", i)
		}
	}
	got := s.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("got %d annotations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("annotation %d changed across undo/redo: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := NewStore()
	if s.Undo() {
		t.Error("undo on empty history reported a change")
	}
	if s.Redo() {
		t.Error("redo on empty history reported a change")
	}
}

func TestAddDiscardsRedo(t *testing.T) {
	s := NewStore()
	s.Add(arrowAt(0, 0, 1, 1))
	s.Add(arrowAt(2, 2, 3, 3))
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if !s.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}
	s.Add(arrowAt(4, 4, 5, 5))
	if s.CanRedo() {
		t.Error("redo should be unavailable after add")
	}
	if s.Redo() {
		t.Error("redo after add should be a no-op")
	}
	if s.Len() != 2 {
		t.Errorf("got %d annotations, want 2", s.Len())
	}
}

func TestClearResetsCounter(t *testing.T) {
	s := NewStore()
	s.Add(dotAt(s, 1, 1))
	s.Add(dotAt(s, 2, 2))
	if s.PeekNumber() != 3 {
		t.Fatalf("counter = %d, want 3", s.PeekNumber())
	}
	s.Clear()
	if s.Len() != 0 || s.CanUndo() || s.CanRedo() {
		t.Fatal("clear left sequence or history behind")
	}
	d := dotAt(s, 3, 3)
	if d.Number != 1 {
		t.Errorf("first dot after clear numbered %d, want 1", d.Number)
	}
}

func TestDotNumberStableAcrossUndoRedo(t *testing.T) {
	s := NewStore()
	s.Add(arrowAt(10, 10, 50, 50))
	s.Add(dotAt(s, 20, 20))

	snap := s.Snapshot()
	if len(snap) != 2 || snap[1].Number != 1 {
		t.Fatalf("expected arrow then dot #1, got %+v", snap)
	}

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	snap = s.Snapshot()
	if len(snap) != 1 || snap[0].Kind != KindArrow {
		t.Fatalf("after undo expected only the arrow, got %+v", snap)
	}

	if !s.Redo() {
		t.Fatal("redo failed")
	}
	snap = s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("after redo expected 2 annotations, got %d", len(snap))
	}
	if snap[0].Kind != KindArrow || snap[1].Kind != KindDot {
		t.Fatalf("order changed across undo/redo: %+v", snap)
	}
	if snap[1].Number != 1 {
		t.Errorf("dot renumbered to %d across undo/redo, want 1", snap[1].Number)
	}
}

func TestSnapshotDoesNotAliasStore(t *testing.T) {
	s := NewStore()
	s.Add(arrowAt(0, 0, 1, 1))
	snap := s.Snapshot()
	snap[0].P1 = geometry.Pt(99, 99)
	if got := s.Snapshot()[0].P1; got != geometry.Pt(0, 0) {
		t.Errorf("mutating a snapshot reached the store: %v", got)
	}
}

func TestDegenerate(t *testing.T) {
	rect := Annotation{Kind: KindRect, P1: geometry.Pt(0, 0), P2: geometry.Pt(30, 0)}
	if !rect.Degenerate() {
		t.Error("zero-height rect should be degenerate")
	}
	circle := Annotation{Kind: KindCircle, P1: geometry.Pt(5, 5), P2: geometry.Pt(5, 5)}
	if !circle.Degenerate() {
		t.Error("zero-radius circle should be degenerate")
	}
	dot := Annotation{Kind: KindDot, P1: geometry.Pt(5, 5)}
	if dot.Degenerate() {
		t.Error("dots are never degenerate")
	}
}
