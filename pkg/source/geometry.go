package source

import (
	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// WalkPositions calls fn for every position of g, descending into multi
// geometries and collections.
func WalkPositions(g *geojson.Geometry, fn func(position []float64)) {
	if g == nil {
		return
	}

	switch g.Type {
	case geojson.GeometryPoint:
		if len(g.Point) > 0 {
			fn(g.Point)
		}
	case geojson.GeometryMultiPoint:
		for _, p := range g.MultiPoint {
			fn(p)
		}
	case geojson.GeometryLineString:
		for _, p := range g.LineString {
			fn(p)
		}
	case geojson.GeometryMultiLineString:
		for _, line := range g.MultiLineString {
			for _, p := range line {
				fn(p)
			}
		}
	case geojson.GeometryPolygon:
		for _, ring := range g.Polygon {
			for _, p := range ring {
				fn(p)
			}
		}
	case geojson.GeometryMultiPolygon:
		for _, polygon := range g.MultiPolygon {
			for _, ring := range polygon {
				for _, p := range ring {
					fn(p)
				}
			}
		}
	case geojson.GeometryCollection:
		for _, child := range g.Geometries {
			WalkPositions(child, fn)
		}
	}
}

// GeometryExtent returns the bounding box of g. Returns false for geometries
// without any usable position.
func GeometryExtent(g *geojson.Geometry) (geometry.Extent, bool) {
	var extent geometry.Extent
	found := false

	WalkPositions(g, func(p []float64) {
		if len(p) < 2 {
			return
		}
		c := geometry.NewCoordinate(p[0], p[1])
		if !found {
			extent = geometry.NewExtent(c.X, c.Y, c.X, c.Y)
			found = true
			return
		}
		extent = extent.AddPoint(c)
	})

	return extent, found
}

// IsXY reports whether every position of g has exactly two ordinates
func IsXY(g *geojson.Geometry) bool {
	xy := true
	count := 0
	WalkPositions(g, func(p []float64) {
		count++
		if len(p) != 2 {
			xy = false
		}
	})
	return xy && count > 0
}

// Coordinates converts GeoJSON positions into coordinates. Positions with
// fewer than two ordinates are dropped.
func Coordinates(positions [][]float64) []geometry.Coordinate {
	coords := make([]geometry.Coordinate, 0, len(positions))
	for _, p := range positions {
		if len(p) < 2 {
			continue
		}
		coords = append(coords, geometry.NewCoordinate(p[0], p[1]))
	}
	return coords
}

// Positions converts coordinates into GeoJSON positions
func Positions(coords []geometry.Coordinate) [][]float64 {
	positions := make([][]float64, len(coords))
	for i, c := range coords {
		positions[i] = []float64{c.X, c.Y}
	}
	return positions
}

// Lines splits a geometry into coordinate lines: line strings as they are,
// polygon rings closed when their first and last positions differ. Points
// yield nothing.
func Lines(g *geojson.Geometry) [][]geometry.Coordinate {
	if g == nil {
		return nil
	}

	var lines [][]geometry.Coordinate
	switch g.Type {
	case geojson.GeometryLineString:
		lines = append(lines, Coordinates(g.LineString))
	case geojson.GeometryMultiLineString:
		for _, line := range g.MultiLineString {
			lines = append(lines, Coordinates(line))
		}
	case geojson.GeometryPolygon:
		for _, ring := range g.Polygon {
			lines = append(lines, CloseRing(Coordinates(ring)))
		}
	case geojson.GeometryMultiPolygon:
		for _, polygon := range g.MultiPolygon {
			for _, ring := range polygon {
				lines = append(lines, CloseRing(Coordinates(ring)))
			}
		}
	case geojson.GeometryCollection:
		for _, child := range g.Geometries {
			lines = append(lines, Lines(child)...)
		}
	}
	return lines
}

// CloseRing repeats the first coordinate at the end unless the ring is
// already closed
func CloseRing(ring []geometry.Coordinate) []geometry.Coordinate {
	if len(ring) > 1 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
