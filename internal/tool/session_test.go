package tool

import (
	"testing"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
)

func TestArrowTwoClickCommit(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindArrow)

	if committed := s.Click(geometry.Pt(10, 10)); committed {
		t.Fatal("first click should not commit")
	}
	if !s.Gesturing() {
		t.Fatal("expected session to be awaiting the second point")
	}
	if committed := s.Click(geometry.Pt(50, 50)); !committed {
		t.Fatal("second click should commit")
	}
	snap := store.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("store has %d annotations, want 1", len(snap))
	}
	a := snap[0]
	if a.Kind != annotation.KindArrow || a.P1 != geometry.Pt(10, 10) || a.P2 != geometry.Pt(50, 50) {
		t.Errorf("unexpected commit %+v", a)
	}
	if s.Gesturing() {
		t.Error("gesture should reset after commit")
	}
}

func TestPreviewTracksPointer(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindRect)
	s.Click(geometry.Pt(0, 0))
	s.Move(geometry.Pt(30, 0))

	p, ok := s.Preview()
	if !ok {
		t.Fatal("expected a preview while gesturing")
	}
	if p.Kind != annotation.KindRect || p.P2 != geometry.Pt(30, 0) {
		t.Errorf("preview = %+v, want rect ending at (30,0)", p)
	}
	if !p.Degenerate() {
		t.Error("zero-height preview should be degenerate")
	}
	if store.Len() != 0 {
		t.Error("preview must not commit")
	}
}

func TestDegenerateRectStillCommits(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindRect)
	s.Click(geometry.Pt(0, 0))
	s.Move(geometry.Pt(30, 0))
	if !s.Click(geometry.Pt(30, 0)) {
		t.Fatal("degenerate rect should still commit")
	}
	snap := store.Snapshot()
	if len(snap) != 1 || !snap[0].Degenerate() {
		t.Fatalf("expected one degenerate rect, got %+v", snap)
	}
}

func TestToolChangeDiscardsGesture(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindCircle)
	s.Click(geometry.Pt(5, 5))
	s.SelectTool(annotation.KindArrow)
	if s.Gesturing() {
		t.Error("tool change should discard the pending point")
	}
	// The next click starts a fresh gesture; nothing was committed.
	if store.Len() != 0 {
		t.Errorf("store has %d annotations, want 0", store.Len())
	}
	if s.Click(geometry.Pt(1, 1)) {
		t.Error("fresh first click must not commit")
	}
}

func TestCancelGestureKeepsTool(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindCircle)
	s.Click(geometry.Pt(10, 10))

	s.CancelGesture()
	if s.Gesturing() {
		t.Fatal("gesture should be dropped")
	}
	if kind, ok := s.ActiveTool(); !ok || kind != annotation.KindCircle {
		t.Fatalf("active tool = %v selected=%v, want circle still selected", kind, ok)
	}
	if store.Len() != 0 {
		t.Errorf("cancelled gesture committed %d annotations", store.Len())
	}
}

func TestDotNumbering(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	s.SelectTool(annotation.KindDot)
	s.Click(geometry.Pt(1, 1))
	s.Click(geometry.Pt(2, 2))
	snap := store.Snapshot()
	if len(snap) != 2 || snap[0].Number != 1 || snap[1].Number != 2 {
		t.Fatalf("unexpected dot numbering: %+v", snap)
	}
}

func TestTextPromptConfirmAndCancel(t *testing.T) {
	store := annotation.NewStore()
	answer := TextInput{Content: "note", Bold: true, Size: 20}
	accept := true
	var seenDefaults TextInput
	s := NewSession(store, PrompterFunc(func(defaults TextInput) (TextInput, bool) {
		seenDefaults = defaults
		return answer, accept
	}))
	s.SelectTool(annotation.KindText)

	if !s.Click(geometry.Pt(7, 9)) {
		t.Fatal("confirmed prompt should commit")
	}
	a := store.Snapshot()[0]
	if a.Text != "note" || !a.Bold || a.Italic || a.TextSize != 20 {
		t.Errorf("unexpected text annotation %+v", a)
	}

	// The confirmed formatting becomes the next prompt's defaults.
	accept = false
	if s.Click(geometry.Pt(8, 8)) {
		t.Fatal("cancelled prompt must not commit")
	}
	if seenDefaults.Bold != true || seenDefaults.Size != 20 {
		t.Errorf("defaults not remembered: %+v", seenDefaults)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d annotations, want 1", store.Len())
	}
}

func TestClickWithoutToolIsNoop(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, nil)
	if s.Click(geometry.Pt(1, 1)) {
		t.Error("click without a tool should be ignored")
	}
	if store.Len() != 0 {
		t.Error("store should be untouched")
	}
}

func TestTextSizeClamped(t *testing.T) {
	store := annotation.NewStore()
	s := NewSession(store, PrompterFunc(func(TextInput) (TextInput, bool) {
		return TextInput{Content: "big", Size: 500}, true
	}))
	s.SelectTool(annotation.KindText)
	s.Click(geometry.Pt(0, 0))
	if got := store.Snapshot()[0].TextSize; got != annotation.MaxTextSize {
		t.Errorf("text size = %v, want %v", got, annotation.MaxTextSize)
	}
}
