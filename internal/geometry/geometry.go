// Package geometry maps between widget (screen) pixel coordinates and
// image-native pixel coordinates for a zoomed, panned viewport.
package geometry

import "image"

// Point is a position in either screen or image space, depending on context.
// Image-native coordinates are kept as float64 so that annotations placed at
// high zoom keep sub-pixel precision when exported at 1:1.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns the vector sum p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector difference p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Transform describes how the host currently presents the image: the image is
// scaled by Zoom and its top-left corner sits at Offset in screen pixels.
type Transform struct {
	Zoom   float64
	Offset Point
}

// Identity returns the 1:1 transform used for export compositing.
func Identity() Transform { return Transform{Zoom: 1} }

// ScreenToImage converts a screen-space point to image-native coordinates.
func (t Transform) ScreenToImage(p Point) Point {
	z := t.zoom()
	return Point{
		X: (p.X - t.Offset.X) / z,
		Y: (p.Y - t.Offset.Y) / z,
	}
}

// ImageToScreen is the exact inverse of ScreenToImage.
func (t Transform) ImageToScreen(p Point) Point {
	z := t.zoom()
	return Point{
		X: p.X*z + t.Offset.X,
		Y: p.Y*z + t.Offset.Y,
	}
}

func (t Transform) zoom() float64 {
	if t.Zoom <= 0 {
		return 1
	}
	return t.Zoom
}

// ClampToBounds forces p into the image bounds rect. Interactive drawing
// accepts out-of-bounds points; export paths that need exactness clamp
// first. Points are continuous coordinates, not pixel indices: the image
// occupies the closed extent [Min, Max], so x == Max.X is the right edge of
// the last pixel column and stays a valid annotation coordinate.
func ClampToBounds(p Point, bounds image.Rectangle) Point {
	if p.X < float64(bounds.Min.X) {
		p.X = float64(bounds.Min.X)
	}
	if p.X > float64(bounds.Max.X) {
		p.X = float64(bounds.Max.X)
	}
	if p.Y < float64(bounds.Min.Y) {
		p.Y = float64(bounds.Min.Y)
	}
	if p.Y > float64(bounds.Max.Y) {
		p.Y = float64(bounds.Max.Y)
	}
	return p
}

// InBounds reports whether p lies within the closed extent of the image
// bounds rect. Both edges are inclusive for the same reason ClampToBounds
// keeps Max: these are continuous coordinates, not pixel indices.
func InBounds(p Point, bounds image.Rectangle) bool {
	return p.X >= float64(bounds.Min.X) && p.X <= float64(bounds.Max.X) &&
		p.Y >= float64(bounds.Min.Y) && p.Y <= float64(bounds.Max.Y)
}
