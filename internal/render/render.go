// Package render rasterises annotation sequences onto an RGBA surface. It is
// a pure consumer: it reads store snapshots and session previews and never
// mutates either.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/imagemark/internal/annotation"
	"github.com/example/imagemark/internal/geometry"
)

// Arrow head dimensions per style, matching the classic plugin look.
type headSpec struct {
	length float64
	angle  float64
	filled bool
}

var headSpecs = map[annotation.ArrowStyle]headSpec{
	annotation.ArrowStandard: {length: 15, angle: math.Pi / 6, filled: true},
	annotation.ArrowOpen:     {length: 15, angle: math.Pi / 6, filled: false},
	annotation.ArrowBarbed:   {length: 12, angle: math.Pi / 5, filled: false},
	annotation.ArrowSmall:    {length: 10, angle: math.Pi / 4, filled: true},
	annotation.ArrowLarge:    {length: 20, angle: math.Pi / 7, filled: true},
}

const textBoxPadding = 5

var textBoxFill = color.NRGBA{255, 255, 255, 204}

var (
	regularFont    *opentype.Font
	boldFont       *opentype.Font
	italicFont     *opentype.Font
	boldItalicFont *opentype.Font
	faceCache      sync.Map // map[faceKey]font.Face
)

type faceKey struct {
	bold, italic bool
	size         float64
}

func init() {
	var err error
	if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
		log.Fatalf("parse regular font: %v", err)
	}
	if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
		log.Fatalf("parse bold font: %v", err)
	}
	if italicFont, err = opentype.Parse(goitalic.TTF); err != nil {
		log.Fatalf("parse italic font: %v", err)
	}
	if boldItalicFont, err = opentype.Parse(gobolditalic.TTF); err != nil {
		log.Fatalf("parse bold italic font: %v", err)
	}
}

// Face returns a cached font face for the requested style and point size.
func Face(bold, italic bool, size float64) (font.Face, error) {
	size = annotation.ClampTextSize(size)
	key := faceKey{bold: bold, italic: italic, size: size}
	if face, ok := faceCache.Load(key); ok {
		return face.(font.Face), nil
	}
	src := regularFont
	switch {
	case bold && italic:
		src = boldItalicFont
	case bold:
		src = boldFont
	case italic:
		src = italicFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %gpt: %w", size, err)
	}
	faceCache.Store(key, face)
	return face, nil
}

// Render draws the snapshot strictly in sequence order onto dst through tr,
// then the preview (if any) on top of everything.
func Render(dst *image.RGBA, snapshot []annotation.Annotation, preview *annotation.Annotation, tr geometry.Transform) {
	for _, a := range snapshot {
		renderOne(dst, a, tr)
	}
	if preview != nil {
		renderOne(dst, *preview, tr)
	}
}

func renderOne(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	if a.Degenerate() {
		return
	}
	switch a.Kind {
	case annotation.KindArrow:
		renderArrow(dst, a, tr)
	case annotation.KindDot:
		renderDot(dst, a, tr)
	case annotation.KindRect:
		renderRect(dst, a, tr)
	case annotation.KindCircle:
		renderCircle(dst, a, tr)
	case annotation.KindText:
		renderText(dst, a, tr)
	}
}

func scaled(tr geometry.Transform, v float64) float64 {
	z := tr.Zoom
	if z <= 0 {
		z = 1
	}
	return v * z
}

func strokeWidth(tr geometry.Transform, w int) int {
	s := int(math.Round(scaled(tr, float64(w))))
	if s < 1 {
		s = 1
	}
	return s
}

func devicePoint(tr geometry.Transform, p geometry.Point) (int, int) {
	d := tr.ImageToScreen(p)
	return int(math.Round(d.X)), int(math.Round(d.Y))
}

func renderArrow(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	x0, y0 := devicePoint(tr, a.P1)
	x1, y1 := devicePoint(tr, a.P2)
	w := strokeWidth(tr, a.LineWidth)
	drawLine(dst, x0, y0, x1, y1, a.Color, w)

	spec, ok := headSpecs[a.ArrowStyle]
	if !ok {
		spec = headSpecs[annotation.ArrowStandard]
	}
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	length := scaled(tr, spec.length)
	lx := float64(x1) - length*math.Cos(angle-spec.angle)
	ly := float64(y1) - length*math.Sin(angle-spec.angle)
	rx := float64(x1) - length*math.Cos(angle+spec.angle)
	ry := float64(y1) - length*math.Sin(angle+spec.angle)

	switch {
	case spec.filled:
		fillTriangle(dst, float64(x1), float64(y1), lx, ly, rx, ry, a.Color)
	case a.ArrowStyle == annotation.ArrowOpen:
		drawLine(dst, int(math.Round(lx)), int(math.Round(ly)), x1, y1, a.Color, w)
		drawLine(dst, x1, y1, int(math.Round(rx)), int(math.Round(ry)), a.Color, w)
	default: // barbed
		drawLine(dst, x1, y1, int(math.Round(lx)), int(math.Round(ly)), a.Color, w)
		drawLine(dst, x1, y1, int(math.Round(rx)), int(math.Round(ry)), a.Color, w)
	}
}

func renderDot(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	cx, cy := devicePoint(tr, a.P1)
	r := int(math.Round(scaled(tr, annotation.DotRadius)))
	if r < 1 {
		r = 1
	}
	drawFilledCircle(dst, cx, cy, r, a.Color)

	// Number color follows fill brightness so it stays legible on any
	// palette entry.
	luma := 0.299*float64(a.Color.R) + 0.587*float64(a.Color.G) + 0.114*float64(a.Color.B)
	numCol := color.Color(color.Black)
	if luma < 128 {
		numCol = color.White
	}
	face, err := Face(true, false, scaled(tr, annotation.DefaultTextSize))
	if err != nil {
		log.Printf("render: dot number face: %v", err)
		return
	}
	text := fmt.Sprintf("%d", a.Number)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(numCol), Face: face}
	w := d.MeasureString(text).Ceil()
	m := face.Metrics()
	baseline := cy + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(cx-w/2, baseline)
	d.DrawString(text)
}

func renderRect(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	x0, y0 := devicePoint(tr, a.P1)
	x1, y1 := devicePoint(tr, a.P2)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	drawRectOutline(dst, image.Rect(x0, y0, x1+1, y1+1), a.Color, strokeWidth(tr, a.LineWidth))
}

func renderCircle(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	cx, cy := devicePoint(tr, a.P1)
	ex, ey := devicePoint(tr, a.P2)
	dx := float64(ex - cx)
	dy := float64(ey - cy)
	r := int(math.Round(math.Hypot(dx, dy)))
	if r < 1 {
		return
	}
	drawCircleOutline(dst, cx, cy, r, a.Color, strokeWidth(tr, a.LineWidth))
}

func renderText(dst *image.RGBA, a annotation.Annotation, tr geometry.Transform) {
	if a.Text == "" {
		return
	}
	face, err := Face(a.Bold, a.Italic, scaled(tr, a.TextSize))
	if err != nil {
		log.Printf("render: text face: %v", err)
		return
	}
	x, y := devicePoint(tr, a.P1) // baseline origin

	d := &font.Drawer{Face: face}
	width := d.MeasureString(a.Text).Ceil()
	m := face.Metrics()
	box := image.Rect(
		x-textBoxPadding,
		y-m.Ascent.Ceil()-textBoxPadding,
		x+width+textBoxPadding,
		y+m.Descent.Ceil()+textBoxPadding,
	)
	draw.Draw(dst, box, image.NewUniform(textBoxFill), image.Point{}, draw.Over)

	d.Dst = dst
	d.Src = image.NewUniform(a.Color)
	d.Dot = fixed.P(x, y)
	d.DrawString(a.Text)
}
