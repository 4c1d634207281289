package geometry

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Extent is an axis-aligned rectangle in map-projection units
type Extent = r2.Rect

// NewExtent creates an extent from its min and max corners
func NewExtent(minX, minY, maxX, maxY float64) Extent {
	return Extent{
		X: r1.Interval{Lo: math.Min(minX, maxX), Hi: math.Max(minX, maxX)},
		Y: r1.Interval{Lo: math.Min(minY, maxY), Hi: math.Max(minY, maxY)},
	}
}

// ExtentDiagonal returns the length of the extent's diagonal
func ExtentDiagonal(e Extent) float64 {
	if e.IsEmpty() {
		return 0
	}
	return PlanarDistance(e.Lo(), e.Hi())
}

// BufferPoint returns the square extent reaching d units from center in
// every axis direction.
func BufferPoint(center Coordinate, d float64) Extent {
	return NewExtent(center.X-d, center.Y-d, center.X+d, center.Y+d)
}

// ExtentCorners returns the corners of e counter-clockwise, starting at the
// bottom-left one.
func ExtentCorners(e Extent) [4]Coordinate {
	return e.Vertices()
}

// Segment is an ordered pair of coordinates
type Segment [2]Coordinate

// NewSegment creates a new segment from p0 to p1
func NewSegment(p0, p1 Coordinate) Segment {
	return Segment{p0, p1}
}

// Midpoint returns the center of the segment
func (s Segment) Midpoint() Coordinate {
	return Midpoint(s[0], s[1])
}

// Length returns the length of the segment
func (s Segment) Length() float64 {
	return PlanarDistance(s[0], s[1])
}

// Extent returns the bounding box of the segment
func (s Segment) Extent() Extent {
	return NewExtent(s[0].X, s[0].Y, s[1].X, s[1].Y)
}

// Reverse returns the segment with its endpoints swapped
func (s Segment) Reverse() Segment {
	return Segment{s[1], s[0]}
}

// IsDegenerate reports whether both endpoints coincide
func (s Segment) IsDegenerate() bool {
	return s[0] == s[1]
}
