// Package engine ties the annotation store, tool session, renderer and
// exporter together behind a single facade. Hosts feed it normalized pointer
// events in screen coordinates and ask it to draw frames; everything else is
// internal.
package engine

import (
	"errors"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/clipboard"
	"github.com/example/imagemark/internal/export"
	"github.com/example/imagemark/internal/geometry"
	"github.com/example/imagemark/internal/render"
	"github.com/example/imagemark/internal/tool"
)

// ErrInvalidGesture marks pointer events that cannot start or extend a
// gesture, such as a click outside the image. They are logged and dropped.
var ErrInvalidGesture = errors.New("invalid gesture")

// Editing is only offered at (near) 1:1 zoom; past this the toolbar hides.
const zoomEpsilon = 0.01

// Engine owns the annotation state for one image.
type Engine struct {
	src     image.Image
	srcPath string
	store   *annotation.Store
	session *tool.Session

	transform  geometry.Transform
	fullscreen bool
}

// New creates an engine for the image loaded from srcPath. prompter supplies
// text input when the text tool commits; it may be nil for hosts that never
// enable that tool.
func New(src image.Image, srcPath string, prompter tool.Prompter) *Engine {
	store := annotation.NewStore()
	return &Engine{
		src:       src,
		srcPath:   srcPath,
		store:     store,
		session:   tool.NewSession(store, prompter),
		transform: geometry.Identity(),
	}
}

// Session exposes the tool session for hosts that need to adjust drawing
// defaults (color, width, arrow style) directly.
func (e *Engine) Session() *tool.Session { return e.session }

// SetViewport records the host's current zoom factor and pan offset so
// pointer events can be mapped back into image coordinates.
func (e *Engine) SetViewport(zoom float64, offset geometry.Point) {
	e.transform = geometry.Transform{Zoom: zoom, Offset: offset}
}

// SetFullscreen records whether the host window is fullscreen.
func (e *Engine) SetFullscreen(on bool) { e.fullscreen = on }

// ToolbarVisible reports whether editing controls should be shown: only at
// 1:1 zoom and never in fullscreen.
func (e *Engine) ToolbarVisible() bool {
	return math.Abs(e.transform.Zoom-1) < zoomEpsilon && !e.fullscreen
}

// SelectTool arms the given tool, discarding any gesture in progress.
func (e *Engine) SelectTool(kind annotation.Kind) { e.session.SelectTool(kind) }

// Deselect disarms the active tool.
func (e *Engine) Deselect() { e.session.Deselect() }

// SetColor sets the color applied to subsequently committed annotations.
func (e *Engine) SetColor(c color.RGBA) { e.session.SetColor(c) }

// SetLineWidth sets the stroke width for subsequent annotations.
func (e *Engine) SetLineWidth(w int) { e.session.SetLineWidth(w) }

// SetArrowStyle sets the head style for subsequent arrows.
func (e *Engine) SetArrowStyle(s annotation.ArrowStyle) { e.session.SetArrowStyle(s) }

// PointerDown handles a primary-button press at screen coordinates. It
// returns true when the event committed an annotation. A press that would
// start a gesture outside the image is a logged no-op; once a gesture is
// armed, any point closes it, so shapes may extend past the image edge and
// render clipped.
func (e *Engine) PointerDown(screen geometry.Point) bool {
	p := e.transform.ScreenToImage(screen)
	if !e.session.Gesturing() && !geometry.InBounds(p, e.src.Bounds()) {
		log.Printf("engine: %v: pointer down at %+v outside image", ErrInvalidGesture, p)
		return false
	}
	return e.session.Click(p)
}

// PointerMove updates the live preview while a gesture is in progress. The
// point is passed through unclamped so previews can extend past the edge.
func (e *Engine) PointerMove(screen geometry.Point) {
	e.session.Move(e.transform.ScreenToImage(screen))
}

// Undo reverts the most recent commit. Returns false when there is nothing
// to undo.
func (e *Engine) Undo() bool { return e.store.Undo() }

// Redo reapplies the most recently undone commit.
func (e *Engine) Redo() bool { return e.store.Redo() }

// CanUndo reports whether Undo would change state.
func (e *Engine) CanUndo() bool { return e.store.CanUndo() }

// CanRedo reports whether Redo would change state.
func (e *Engine) CanRedo() bool { return e.store.CanRedo() }

// Clear removes all annotations and both history stacks, and resets dot
// numbering. It cannot be undone. The active tool stays selected; only a
// half-finished gesture is dropped.
func (e *Engine) Clear() {
	e.session.CancelGesture()
	e.store.Clear()
}

// Len returns the number of committed annotations.
func (e *Engine) Len() int { return e.store.Len() }

// Snapshot returns a copy of the committed annotation sequence.
func (e *Engine) Snapshot() []annotation.Annotation { return e.store.Snapshot() }

// Frame draws the committed annotations and any live preview onto dst using
// the current viewport transform. dst is the host's screen-space surface;
// the source image itself is drawn by the host.
func (e *Engine) Frame(dst *image.RGBA) {
	var preview *annotation.Annotation
	if a, ok := e.session.Preview(); ok {
		preview = &a
	}
	render.Render(dst, e.store.Snapshot(), preview, e.transform)
}

// ExportFile flattens the annotations onto a copy of the source image and
// writes it beside the original with an "-annotated" suffix. On failure the
// annotation state is untouched and no partial file remains.
func (e *Engine) ExportFile() (string, error) {
	return export.SaveFile(e.srcPath, e.src, e.store.Snapshot())
}

// ExportClipboard flattens the annotations and places the result on the
// system clipboard as PNG.
func (e *Engine) ExportClipboard() error {
	return clipboard.WriteImage(export.Compose(e.src, e.store.Snapshot()))
}
