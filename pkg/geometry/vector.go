// Package geometry provides the planar types and vector math used by the
// drawing interaction. Coordinates, vectors and extents are the r2 types from
// github.com/golang/geo so they carry the usual Add/Sub/Mul/Dot helpers.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Coordinate is a point in map-projection units
type Coordinate = r2.Point

// Vector is a displacement in map-projection units
type Vector = r2.Point

// NewCoordinate creates a new coordinate
func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// ScaleVector multiplies both components of v by c
func ScaleVector(v Vector, c float64) Vector {
	return Vector{X: v.X * c, Y: v.Y * c}
}

// SubtractVectors returns a - b
func SubtractVectors(a, b Vector) Vector {
	return Vector{X: a.X - b.X, Y: a.Y - b.Y}
}

// AddVectors returns a + b
func AddVectors(a, b Vector) Vector {
	return Vector{X: a.X + b.X, Y: a.Y + b.Y}
}

// PlanarDistance returns the Euclidean distance between two coordinates
func PlanarDistance(p0, p1 Coordinate) float64 {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between p0 and p1
func Midpoint(p0, p1 Coordinate) Coordinate {
	return Coordinate{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2}
}

// IsFiniteVector reports whether both components are finite numbers
func IsFiniteVector(v Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
