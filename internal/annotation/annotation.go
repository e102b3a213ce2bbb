// Package annotation holds the vector markings placed over an image and the
// undo/redo history that manages them.
package annotation

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/imagemark/internal/geometry"
)

// Kind identifies the shape of an annotation.
type Kind int

const (
	KindArrow Kind = iota
	KindDot
	KindRect
	KindCircle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindArrow:
		return "arrow"
	case KindDot:
		return "dot"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// TwoPoint reports whether the kind is completed by a second click.
func (k Kind) TwoPoint() bool {
	switch k {
	case KindArrow, KindRect, KindCircle:
		return true
	default:
		return false
	}
}

// ArrowStyle selects one of the supported arrow head shapes.
type ArrowStyle int

const (
	ArrowStandard ArrowStyle = iota // filled triangle, 15px at 30 degrees
	ArrowOpen                       // outlined triangle
	ArrowBarbed                     // two bare lines, 12px at 36 degrees
	ArrowSmall                      // filled, 10px at 45 degrees
	ArrowLarge                      // filled, 20px at ~25.7 degrees
)

// ArrowStyleNames lists the arrow styles in selector order.
var ArrowStyleNames = []string{"Standard", "Open", "Barbed", "Small", "Large"}

func (s ArrowStyle) String() string {
	if s < 0 || int(s) >= len(ArrowStyleNames) {
		return "unknown"
	}
	return ArrowStyleNames[s]
}

// ParseArrowStyle resolves a style by its selector name, case-insensitively.
func ParseArrowStyle(name string) (ArrowStyle, error) {
	for i, n := range ArrowStyleNames {
		if strings.EqualFold(n, name) {
			return ArrowStyle(i), nil
		}
	}
	return ArrowStandard, fmt.Errorf("unknown arrow style %q", name)
}

// LineWidths is the fixed set of selectable stroke widths in pixels.
var LineWidths = []int{1, 2, 3, 5, 8}

const (
	// DefaultLineWidth matches the selector's initial position.
	DefaultLineWidth = 2
	// DotRadius is the radius of a numbered dot at 1:1 scale.
	DotRadius = 15.0
	// MinTextSize and MaxTextSize bound the text annotation font size.
	MinTextSize = 8.0
	MaxTextSize = 72.0
	// DefaultTextSize is the initial text annotation font size in points.
	DefaultTextSize = 14.0
)

// DefaultColor is the initial annotation color (blue).
var DefaultColor = color.RGBA{B: 255, A: 255}

// Annotation is one committed marking. Geometry is stored in image-native
// coordinates. Values are immutable once added to a Store; edits happen by
// replacing the whole record.
type Annotation struct {
	Kind Kind
	// P1 is the anchor: arrow tail, rect corner, circle centre, dot centre,
	// or text baseline origin. P2 is the arrow tip, opposite rect corner, or
	// a point on the circle's edge. P2 is unused for dots and text.
	P1, P2 geometry.Point

	Color     color.RGBA
	LineWidth int

	ArrowStyle ArrowStyle

	// Number is the dot's sequence value, assigned by the store at creation.
	Number int

	Text     string
	Bold     bool
	Italic   bool
	TextSize float64
}

// ClampTextSize forces size into the supported range, substituting the
// default for non-positive input.
func ClampTextSize(size float64) float64 {
	if size <= 0 {
		return DefaultTextSize
	}
	if size < MinTextSize {
		return MinTextSize
	}
	if size > MaxTextSize {
		return MaxTextSize
	}
	return size
}

// Degenerate reports whether the annotation has zero-size geometry. Such
// annotations are stored like any other; renderers may skip drawing them.
func (a Annotation) Degenerate() bool {
	switch a.Kind {
	case KindRect:
		return a.P1.X == a.P2.X || a.P1.Y == a.P2.Y
	case KindArrow, KindCircle:
		return a.P1 == a.P2
	default:
		return false
	}
}
