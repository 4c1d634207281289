package mapview

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

func almostEqual(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPixelFromCoordinate(t *testing.T) {
	v := New(geometry.NewCoordinate(100, 200), 0.5, 800, 600)

	tests := []struct {
		name  string
		coord geometry.Coordinate
		want  r2.Point
	}{
		{"center", geometry.NewCoordinate(100, 200), r2.Point{X: 400, Y: 300}},
		{"right", geometry.NewCoordinate(110, 200), r2.Point{X: 420, Y: 300}},
		{"up is screen up", geometry.NewCoordinate(100, 210), r2.Point{X: 400, Y: 280}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.PixelFromCoordinate(tt.coord)
			if !almostEqual(got, tt.want) {
				t.Errorf("PixelFromCoordinate failed: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPixelRoundTrip(t *testing.T) {
	for _, rotation := range []float64{0, 0.3, math.Pi / 2, -2} {
		v := New(geometry.NewCoordinate(-5, 7), 0.25, 640, 480)
		v.SetRotation(rotation)

		for _, c := range []geometry.Coordinate{
			geometry.NewCoordinate(-5, 7),
			geometry.NewCoordinate(12.5, -3),
			geometry.NewCoordinate(1000, 1000),
		} {
			got := v.CoordinateFromPixel(v.PixelFromCoordinate(c))
			if !almostEqual(got, c) {
				t.Errorf("rotation %v: round trip of %v gave %v", rotation, c, got)
			}
		}
	}
}

func TestExtent(t *testing.T) {
	v := New(geometry.NewCoordinate(0, 0), 1, 200, 100)
	e := v.Extent()

	want := geometry.NewExtent(-100, -50, 100, 50)
	if !almostEqual(e.Lo(), want.Lo()) || !almostEqual(e.Hi(), want.Hi()) {
		t.Errorf("Extent failed: expected %v, got %v", want, e)
	}

	// A rotated view covers a larger bounding box
	v.SetRotation(math.Pi / 4)
	rotated := v.Extent()
	if !rotated.ContainsPoint(e.Lo()) || !rotated.ContainsPoint(e.Hi()) {
		t.Errorf("rotated extent %v should contain %v", rotated, e)
	}
}

func TestPan(t *testing.T) {
	v := New(geometry.NewCoordinate(0, 0), 2, 100, 100)
	v.Pan(10, 0)

	// Content moved right, so the center is now left of the origin
	want := geometry.NewCoordinate(-20, 0)
	if !almostEqual(v.Center, want) {
		t.Errorf("Pan failed: expected %v, got %v", want, v.Center)
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	v := New(geometry.NewCoordinate(0, 0), 1, 100, 100)
	anchor := r2.Point{X: 80, Y: 20}
	before := v.CoordinateFromPixel(anchor)

	v.Zoom(2, anchor)

	if math.Abs(v.Resolution-0.5) > 1e-12 {
		t.Errorf("Zoom failed: expected resolution 0.5, got %v", v.Resolution)
	}
	if after := v.CoordinateFromPixel(anchor); !almostEqual(before, after) {
		t.Errorf("Zoom moved anchor from %v to %v", before, after)
	}
}

func TestFit(t *testing.T) {
	extent := geometry.NewExtent(10, 10, 30, 20)
	v := Fit(extent, 220, 220, 10)

	if !almostEqual(v.Center, geometry.NewCoordinate(20, 15)) {
		t.Errorf("Fit center failed: got %v", v.Center)
	}
	if math.Abs(v.Resolution-0.1) > 1e-12 {
		t.Errorf("Fit resolution failed: expected 0.1, got %v", v.Resolution)
	}
	visible := v.Extent()
	if !visible.Contains(extent) {
		t.Errorf("visible extent %v does not contain %v", visible, extent)
	}
}
