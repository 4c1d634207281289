package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/source"
)

// SegmentInfo contains information about a segment of a feature
type SegmentInfo struct {
	Segment   geometry.Segment
	Length    float64
	FeatureID int
}

// MeasurementResult contains various measurements of a feature collection
type MeasurementResult struct {
	Extent       geometry.Extent
	HasExtent    bool
	Dimensions   geometry.Vector
	FeatureCount int
	TypeCounts   map[geojson.GeometryType]int
	NonXYCount   int // Features skipped by the candidate search
	PolygonArea  float64
	SegmentCount int
	MinSegment   float64
	MaxSegment   float64
	AvgSegment   float64
	TotalLength  float64
	AllSegments  []SegmentInfo
}

// AnalyzeFeatures measures every line and ring segment of features
func AnalyzeFeatures(features []*geojson.Feature) *MeasurementResult {
	result := &MeasurementResult{
		FeatureCount: len(features),
		TypeCounts:   make(map[geojson.GeometryType]int),
		AllSegments:  make([]SegmentInfo, 0),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0

	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		result.TypeCounts[f.Geometry.Type]++

		if extent, ok := source.GeometryExtent(f.Geometry); ok {
			if result.HasExtent {
				result.Extent = result.Extent.Union(extent)
			} else {
				result.Extent = extent
				result.HasExtent = true
			}
		}

		if !source.IsXY(f.Geometry) {
			result.NonXYCount++
			continue
		}

		result.PolygonArea += polygonArea(f.Geometry)

		for _, line := range source.Lines(f.Geometry) {
			for j := 0; j+1 < len(line); j++ {
				seg := geometry.NewSegment(line[j], line[j+1])
				length := seg.Length()

				result.AllSegments = append(result.AllSegments, SegmentInfo{
					Segment:   seg,
					Length:    length,
					FeatureID: i,
				})

				result.TotalLength += length
				if length < minLength {
					minLength = length
				}
				if length > maxLength {
					maxLength = length
				}
			}
		}
	}

	if result.HasExtent {
		result.Dimensions = result.Extent.Size()
	}

	result.SegmentCount = len(result.AllSegments)
	if result.SegmentCount > 0 {
		result.MinSegment = minLength
		result.MaxSegment = maxLength
		result.AvgSegment = result.TotalLength / float64(result.SegmentCount)
	}

	return result
}

// polygonArea sums the shoelace area of polygon shells minus their holes
func polygonArea(g *geojson.Geometry) float64 {
	switch g.Type {
	case geojson.GeometryPolygon:
		return ringsArea(g.Polygon)
	case geojson.GeometryMultiPolygon:
		area := 0.0
		for _, polygon := range g.MultiPolygon {
			area += ringsArea(polygon)
		}
		return area
	case geojson.GeometryCollection:
		area := 0.0
		for _, child := range g.Geometries {
			area += polygonArea(child)
		}
		return area
	}
	return 0
}

func ringsArea(rings [][][]float64) float64 {
	area := 0.0
	for i, ring := range rings {
		a := RingArea(source.CloseRing(source.Coordinates(ring)))
		if i == 0 {
			area += a
		} else {
			area -= a
		}
	}
	return area
}

// RingArea returns the unsigned area of a closed ring
func RingArea(ring []geometry.Coordinate) float64 {
	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].Cross(ring[i+1])
	}
	return math.Abs(sum) / 2
}

// FindSegmentsByLength finds all segments within a length range
func FindSegmentsByLength(result *MeasurementResult, minLength, maxLength float64) []SegmentInfo {
	var segments []SegmentInfo
	for _, seg := range result.AllSegments {
		if seg.Length >= minLength && seg.Length <= maxLength {
			segments = append(segments, seg)
		}
	}
	return segments
}

// FindLongestSegments returns the N longest segments
func FindLongestSegments(result *MeasurementResult, count int) []SegmentInfo {
	segments := make([]SegmentInfo, len(result.AllSegments))
	copy(segments, result.AllSegments)

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Length > segments[j].Length
	})

	if count > len(segments) {
		count = len(segments)
	}

	return segments[:count]
}

// FormatMeasurement formats a length given in meters in the named unit
func FormatMeasurement(meters, metersPerUnit float64, unit string) string {
	if unit == "" || metersPerUnit <= 0 {
		return fmt.Sprintf("%.3f units", meters)
	}
	return fmt.Sprintf("%.3f %s", meters/metersPerUnit, unit)
}

// FormatCoordinate formats a 2D coordinate
func FormatCoordinate(c geometry.Coordinate) string {
	return fmt.Sprintf("(%.3f, %.3f)", c.X, c.Y)
}
