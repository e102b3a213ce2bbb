package host

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/imagemark/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive toolbar element. Activate performs the button's
// action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states. The cache
// is invalidated when the rectangle changes or Invalidate is called.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// Invalidate discards cached renders, forcing a redraw on next Draw.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// LabelButton is a rectangular button with a text label. When active returns
// true the button is drawn highlighted, marking the selected tool or option.
type LabelButton struct {
	label  string
	theme  *theme.Theme
	rect   image.Rectangle
	active func() bool
	action func()
}

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	c := b.theme.ButtonBackground
	switch state {
	case StateHover:
		c = b.theme.ButtonBackgroundHover
	case StatePressed:
		c = b.theme.ButtonBackgroundPress
	}
	if b.active != nil && b.active() {
		c = b.theme.ButtonActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	outlineRect(dst, b.rect, b.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(b.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *LabelButton) Rect() image.Rectangle { return b.rect }

func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.action != nil {
		b.action()
	}
}

// Swatch is a palette entry button.
type Swatch struct {
	color  color.RGBA
	theme  *theme.Theme
	rect   image.Rectangle
	active func() bool
	action func()
}

func (s *Swatch) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{s.color}, image.Point{}, draw.Src)
	border := s.theme.SwatchBorder
	if s.active != nil && s.active() {
		border = s.theme.ButtonActive
		outlineRect(dst, s.rect.Inset(1), border)
	}
	outlineRect(dst, s.rect, border)
}

func (s *Swatch) Rect() image.Rectangle { return s.rect }

func (s *Swatch) SetRect(r image.Rectangle) { s.rect = r }

func (s *Swatch) Activate() {
	if s.action != nil {
		s.action()
	}
}

func outlineRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}
