package geometry

import (
	"image"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	zooms := []float64{0.5, 1.0, 2.0}
	offsets := []Point{{0, 0}, {48, 24}, {-17.5, 300.25}}
	points := []Point{{0, 0}, {10, 10}, {123.75, 86.5}, {1919, 1079}}
	for _, z := range zooms {
		for _, off := range offsets {
			tr := Transform{Zoom: z, Offset: off}
			for _, p := range points {
				got := tr.ImageToScreen(tr.ScreenToImage(p))
				if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
					t.Errorf("zoom=%v offset=%v: round trip of %v gave %v", z, off, p, got)
				}
			}
		}
	}
}

func TestScreenToImageAtZoom(t *testing.T) {
	tr := Transform{Zoom: 2, Offset: Pt(100, 50)}
	got := tr.ScreenToImage(Pt(120, 70))
	if got.X != 10 || got.Y != 10 {
		t.Fatalf("got %v, want (10,10)", got)
	}
}

func TestZeroZoomTreatedAsIdentityScale(t *testing.T) {
	tr := Transform{}
	p := Pt(33, 44)
	if got := tr.ScreenToImage(p); got != p {
		t.Fatalf("got %v, want %v", got, p)
	}
}

func TestClampToBounds(t *testing.T) {
	b := image.Rect(0, 0, 100, 80)
	cases := []struct {
		in, want Point
	}{
		{Pt(-5, 10), Pt(0, 10)},
		{Pt(120, 90), Pt(100, 80)},
		{Pt(50, 40), Pt(50, 40)},
	}
	for _, c := range cases {
		if got := ClampToBounds(c.in, b); got != c.want {
			t.Errorf("ClampToBounds(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if InBounds(Pt(-1, 0), b) {
		t.Error("expected (-1,0) out of bounds")
	}
	if !InBounds(Pt(100, 80), b) {
		t.Error("expected (100,80) in bounds")
	}
}
