package engine

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
	"github.com/example/imagemark/internal/tool"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	return New(src, filepath.Join(t.TempDir(), "shot.png"), nil)
}

func TestPointerDownMapsThroughViewport(t *testing.T) {
	e := newTestEngine(t)
	e.SetViewport(2, geometry.Pt(10, 20))
	e.SelectTool(annotation.KindDot)

	// Screen (110, 60) maps to image ((110-10)/2, (60-20)/2) = (50, 20).
	if !e.PointerDown(geometry.Pt(110, 60)) {
		t.Fatal("expected dot commit")
	}
	snap := e.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("got %d annotations, want 1", len(snap))
	}
	if snap[0].P1 != geometry.Pt(50, 20) {
		t.Errorf("dot at %+v, want (50,20)", snap[0].P1)
	}
}

func TestPointerDownOutsideImageIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindDot)

	if e.PointerDown(geometry.Pt(500, 500)) {
		t.Fatal("click outside image must not commit")
	}
	if e.Len() != 0 {
		t.Errorf("store has %d annotations after invalid gesture, want 0", e.Len())
	}
}

func TestSecondClickOutsideImageCommits(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindArrow)

	if e.PointerDown(geometry.Pt(50, 50)) {
		t.Fatal("first click must not commit")
	}
	if !e.PointerDown(geometry.Pt(250, 50)) {
		t.Fatal("second click past the image edge must still commit")
	}
	if e.Session().Gesturing() {
		t.Error("gesture still armed after commit")
	}
	snap := e.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("got %d annotations, want 1", len(snap))
	}
	if snap[0].P2 != geometry.Pt(250, 50) {
		t.Errorf("arrow head at %+v, want the raw out-of-bounds point (250,50)", snap[0].P2)
	}
}

func TestPreviewFollowsPointerPastEdge(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindRect)
	e.PointerDown(geometry.Pt(50, 50))
	e.PointerMove(geometry.Pt(250, 150))

	preview, ok := e.Session().Preview()
	if !ok {
		t.Fatal("expected a live preview")
	}
	if preview.P2 != geometry.Pt(250, 150) {
		t.Errorf("preview endpoint %+v, want the unclamped pointer (250,150)", preview.P2)
	}
}

func TestTwoClickGestureThroughEngine(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindRect)
	e.SetColor(color.RGBA{R: 255, A: 255})
	e.SetLineWidth(3)

	if e.PointerDown(geometry.Pt(10, 10)) {
		t.Fatal("first click must not commit")
	}
	if !e.PointerDown(geometry.Pt(60, 40)) {
		t.Fatal("second click must commit")
	}
	snap := e.Snapshot()
	if snap[0].LineWidth != 3 {
		t.Errorf("line width %d, want 3", snap[0].LineWidth)
	}
}

func TestDotNumbersSurviveUndoRedo(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindDot)
	e.PointerDown(geometry.Pt(10, 10))
	e.PointerDown(geometry.Pt(20, 20))
	e.PointerDown(geometry.Pt(30, 30))

	e.Undo()
	e.Undo()
	e.Redo()
	e.Redo()

	snap := e.Snapshot()
	for i, a := range snap {
		if a.Number != i+1 {
			t.Errorf("annotation %d numbered %d, want %d", i, a.Number, i+1)
		}
	}

	// A fresh dot continues the original count.
	e.PointerDown(geometry.Pt(40, 40))
	snap = e.Snapshot()
	if got := snap[len(snap)-1].Number; got != 4 {
		t.Errorf("new dot numbered %d, want 4", got)
	}
}

func TestToolbarVisibility(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		zoom       float64
		fullscreen bool
		want       bool
	}{
		{1.0, false, true},
		{1.005, false, true},
		{1.02, false, false},
		{0.5, false, false},
		{1.0, true, false},
	}
	for _, c := range cases {
		e.SetViewport(c.zoom, geometry.Pt(0, 0))
		e.SetFullscreen(c.fullscreen)
		if got := e.ToolbarVisible(); got != c.want {
			t.Errorf("zoom=%g fullscreen=%v: visible=%v, want %v", c.zoom, c.fullscreen, got, c.want)
		}
	}
}

func TestClearDropsHistory(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindDot)
	e.PointerDown(geometry.Pt(10, 10))
	e.Undo()

	e.Clear()
	if e.CanUndo() || e.CanRedo() {
		t.Error("history must be empty after Clear")
	}
	e.SelectTool(annotation.KindDot)
	e.PointerDown(geometry.Pt(10, 10))
	if got := e.Snapshot()[0].Number; got != 1 {
		t.Errorf("first dot after Clear numbered %d, want 1", got)
	}
}

func TestClearKeepsToolSelected(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindRect)
	e.PointerDown(geometry.Pt(10, 10))

	e.Clear()
	if e.Session().Gesturing() {
		t.Error("pending gesture survived Clear")
	}
	if kind, ok := e.Session().ActiveTool(); !ok || kind != annotation.KindRect {
		t.Fatalf("active tool after Clear = %v selected=%v, want rect still selected", kind, ok)
	}
	e.PointerDown(geometry.Pt(10, 10))
	if !e.PointerDown(geometry.Pt(60, 40)) {
		t.Fatal("rect gesture must work without reselecting the tool after Clear")
	}
}

func TestExportFailureLeavesStateUntouched(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	e := New(src, filepath.Join(dir, "shot.png"), nil)
	e.SelectTool(annotation.KindDot)
	e.PointerDown(geometry.Pt(25, 25))

	if _, err := e.ExportFile(); err == nil {
		t.Fatal("expected export failure")
	}
	if e.Len() != 1 {
		t.Errorf("store has %d annotations after failed export, want 1", e.Len())
	}
	if !e.CanUndo() {
		t.Error("undo history lost after failed export")
	}
}

func TestTextToolThroughEngine(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	prompter := tool.PrompterFunc(func(defaults tool.TextInput) (tool.TextInput, bool) {
		defaults.Content = "note"
		return defaults, true
	})
	e := New(src, "shot.png", prompter)
	e.SelectTool(annotation.KindText)

	if !e.PointerDown(geometry.Pt(40, 40)) {
		t.Fatal("expected text commit")
	}
	snap := e.Snapshot()
	if snap[0].Text != "note" {
		t.Errorf("text = %q, want %q", snap[0].Text, "note")
	}
}

func TestFrameDrawsPreview(t *testing.T) {
	e := newTestEngine(t)
	e.SelectTool(annotation.KindRect)
	e.SetColor(color.RGBA{R: 255, A: 255})
	e.PointerDown(geometry.Pt(10, 10))
	e.PointerMove(geometry.Pt(50, 40))

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	e.Frame(dst)
	if got := dst.RGBAAt(30, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("preview edge pixel = %v, want red", got)
	}
}
