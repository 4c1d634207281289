// Package mapview provides a 2D map view that converts between model
// coordinates and screen pixels. Pixels grow right and down from the top left
// corner of the viewport.
package mapview

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// Resolution limits in model units per pixel
const (
	MinResolution = 1e-6
	MaxResolution = 1e6
)

// View represents the visible part of the map
type View struct {
	Center     geometry.Coordinate
	Resolution float64 // Model units per pixel
	Angle      float64 // Rotation in radians, counter-clockwise
	Width      float64 // Viewport width in pixels
	Height     float64 // Viewport height in pixels
}

// New creates a view centered on center
func New(center geometry.Coordinate, resolution, width, height float64) *View {
	v := &View{
		Center: center,
		Width:  width,
		Height: height,
	}
	v.SetResolution(resolution)
	return v
}

// Fit creates a view of the given size that shows the whole extent, leaving
// padding pixels on every side
func Fit(extent geometry.Extent, width, height, padding float64) *View {
	v := &View{Width: width, Height: height}
	v.FitExtent(extent, padding)
	return v
}

// FitExtent centers the view on extent and zooms so that it is fully visible
func (v *View) FitExtent(extent geometry.Extent, padding float64) {
	v.Center = extent.Center()

	w := math.Max(v.Width-2*padding, 1)
	h := math.Max(v.Height-2*padding, 1)
	size := extent.Size()
	resolution := math.Max(size.X/w, size.Y/h)
	if resolution <= 0 {
		resolution = 1
	}
	v.SetResolution(resolution)
}

// Rotation returns the view rotation in radians
func (v *View) Rotation() float64 {
	return v.Angle
}

// SetRotation sets the view rotation in radians
func (v *View) SetRotation(radians float64) {
	v.Angle = math.Mod(radians, 2*math.Pi)
}

// Rotate rotates the view around its center
func (v *View) Rotate(delta float64) {
	v.SetRotation(v.Angle + delta)
}

// SetResolution sets the model units per pixel, clamped to the supported
// range
func (v *View) SetResolution(resolution float64) {
	v.Resolution = math.Max(MinResolution, math.Min(MaxResolution, resolution))
}

// Resize changes the viewport size keeping the center
func (v *View) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// PixelFromCoordinate returns the screen pixel of a model coordinate
func (v *View) PixelFromCoordinate(c geometry.Coordinate) r2.Point {
	d := rotate(c.Sub(v.Center), -v.Angle)
	return r2.Point{
		X: v.Width/2 + d.X/v.Resolution,
		Y: v.Height/2 - d.Y/v.Resolution,
	}
}

// CoordinateFromPixel returns the model coordinate of a screen pixel
func (v *View) CoordinateFromPixel(px r2.Point) geometry.Coordinate {
	d := r2.Point{
		X: (px.X - v.Width/2) * v.Resolution,
		Y: (v.Height/2 - px.Y) * v.Resolution,
	}
	return v.Center.Add(rotate(d, v.Angle))
}

// Extent returns the bounding box of the visible area in model coordinates
func (v *View) Extent() geometry.Extent {
	corners := []r2.Point{
		{X: 0, Y: 0},
		{X: v.Width, Y: 0},
		{X: v.Width, Y: v.Height},
		{X: 0, Y: v.Height},
	}
	extent := r2.RectFromPoints(v.CoordinateFromPixel(corners[0]))
	for _, px := range corners[1:] {
		extent = extent.AddPoint(v.CoordinateFromPixel(px))
	}
	return extent
}

// Pan moves the map content by the given pixel delta
func (v *View) Pan(dx, dy float64) {
	from := v.CoordinateFromPixel(r2.Point{X: 0, Y: 0})
	to := v.CoordinateFromPixel(r2.Point{X: dx, Y: dy})
	v.Center = v.Center.Sub(to.Sub(from))
}

// Zoom scales the view by factor keeping the model coordinate under anchor
// in place. A factor above one zooms in.
func (v *View) Zoom(factor float64, anchor r2.Point) {
	if factor <= 0 {
		return
	}
	before := v.CoordinateFromPixel(anchor)
	v.SetResolution(v.Resolution / factor)
	after := v.CoordinateFromPixel(anchor)
	v.Center = v.Center.Add(before.Sub(after))
}

func rotate(p r2.Point, angle float64) r2.Point {
	if angle == 0 {
		return p
	}
	sin, cos := math.Sincos(angle)
	return r2.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}
