package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func newCanvas(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestRenderRectOutline(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:      annotation.KindRect,
		P1:        geometry.Pt(10, 10),
		P2:        geometry.Pt(40, 30),
		Color:     red,
		LineWidth: 1,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	if got := img.RGBAAt(25, 10); got != red {
		t.Errorf("top edge pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(10, 20); got != red {
		t.Errorf("left edge pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(25, 20); got.A != 0 {
		t.Errorf("interior pixel = %v, want transparent", got)
	}
}

func TestRenderRectNormalizesCorners(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:      annotation.KindRect,
		P1:        geometry.Pt(40, 30),
		P2:        geometry.Pt(10, 10),
		Color:     red,
		LineWidth: 1,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())
	if got := img.RGBAAt(25, 10); got != red {
		t.Errorf("top edge pixel = %v, want %v", got, red)
	}
}

func TestRenderDotFilled(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:   annotation.KindDot,
		P1:     geometry.Pt(50, 50),
		Color:  blue,
		Number: 1,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	// Away from the centered number glyph but inside the disc.
	if got := img.RGBAAt(50+12, 50); got != blue {
		t.Errorf("disc pixel = %v, want %v", got, blue)
	}
	if got := img.RGBAAt(50+20, 50); got.A != 0 {
		t.Errorf("pixel outside disc = %v, want transparent", got)
	}
}

func TestRenderDotZoomScalesRadius(t *testing.T) {
	img := newCanvas(300, 300)
	a := annotation.Annotation{
		Kind:   annotation.KindDot,
		P1:     geometry.Pt(50, 50),
		Color:  blue,
		Number: 3,
	}
	tr := geometry.Transform{Zoom: 2}
	Render(img, []annotation.Annotation{a}, nil, tr)

	// Center maps to (100,100), radius doubles to 30.
	if got := img.RGBAAt(100+25, 100); got != blue {
		t.Errorf("zoomed disc pixel = %v, want %v", got, blue)
	}
	if got := img.RGBAAt(100+35, 100); got.A != 0 {
		t.Errorf("pixel outside zoomed disc = %v, want transparent", got)
	}
}

func TestRenderArrowShaft(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:       annotation.KindArrow,
		P1:         geometry.Pt(10, 50),
		P2:         geometry.Pt(90, 50),
		Color:      red,
		LineWidth:  1,
		ArrowStyle: annotation.ArrowStandard,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	if got := img.RGBAAt(50, 50); got != red {
		t.Errorf("shaft pixel = %v, want %v", got, red)
	}
	// The standard head is a filled triangle behind the tip.
	if got := img.RGBAAt(85, 50); got != red {
		t.Errorf("head pixel = %v, want %v", got, red)
	}
}

func TestRenderCircleOutline(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:      annotation.KindCircle,
		P1:        geometry.Pt(50, 50),
		P2:        geometry.Pt(70, 50), // radius 20
		Color:     red,
		LineWidth: 1,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	if got := img.RGBAAt(70, 50); got != red {
		t.Errorf("rim pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(50, 50); got.A != 0 {
		t.Errorf("center pixel = %v, want transparent", got)
	}
}

func TestRenderPreviewOnTop(t *testing.T) {
	img := newCanvas(100, 100)
	committed := annotation.Annotation{
		Kind:      annotation.KindRect,
		P1:        geometry.Pt(10, 10),
		P2:        geometry.Pt(40, 40),
		Color:     blue,
		LineWidth: 1,
	}
	preview := annotation.Annotation{
		Kind:      annotation.KindRect,
		P1:        geometry.Pt(10, 10),
		P2:        geometry.Pt(40, 40),
		Color:     red,
		LineWidth: 1,
	}
	Render(img, []annotation.Annotation{committed}, &preview, geometry.Identity())

	if got := img.RGBAAt(25, 10); got != red {
		t.Errorf("overlapping pixel = %v, want preview color %v", got, red)
	}
}

func TestRenderSkipsDegenerate(t *testing.T) {
	img := newCanvas(100, 100)
	a := annotation.Annotation{
		Kind:      annotation.KindRect,
		P1:        geometry.Pt(10, 10),
		P2:        geometry.Pt(40, 10),
		Color:     red,
		LineWidth: 1,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	for x := 10; x <= 40; x++ {
		if got := img.RGBAAt(x, 10); got.A != 0 {
			t.Fatalf("pixel (%d,10) = %v, want nothing drawn", x, got)
		}
	}
}

func TestRenderTextBackingBox(t *testing.T) {
	img := newCanvas(200, 100)
	a := annotation.Annotation{
		Kind:     annotation.KindText,
		P1:       geometry.Pt(50, 50),
		Color:    blue,
		Text:     "hello",
		TextSize: annotation.DefaultTextSize,
	}
	Render(img, []annotation.Annotation{a}, nil, geometry.Identity())

	// Backing box extends left of the baseline origin by its padding.
	if got := img.RGBAAt(47, 50); got.A == 0 {
		t.Errorf("backing box pixel = %v, want translucent white", got)
	}
}

func TestFaceCacheReturnsSameFace(t *testing.T) {
	f1, err := Face(true, false, 14)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	f2, err := Face(true, false, 14)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if f1 != f2 {
		t.Error("expected cached face to be reused")
	}
}
