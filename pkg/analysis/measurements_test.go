package analysis

import (
	"math"
	"testing"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

func TestAnalyzeFeatures(t *testing.T) {
	features := []*geojson.Feature{
		geojson.NewLineStringFeature([][]float64{{0, 0}, {3, 4}, {3, 10}}),
		// Open ring, closed during analysis
		geojson.NewPolygonFeature([][][]float64{{{0, 0}, {4, 0}, {4, 2}, {0, 2}}}),
		geojson.NewPointFeature([]float64{-1, -1}),
		geojson.NewLineStringFeature([][]float64{{0, 0, 1}, {1, 1, 1}}),
	}

	result := AnalyzeFeatures(features)

	if result.FeatureCount != 4 {
		t.Errorf("FeatureCount failed: expected 4, got %d", result.FeatureCount)
	}
	if result.TypeCounts[geojson.GeometryLineString] != 2 {
		t.Errorf("TypeCounts failed: expected 2 line strings, got %d", result.TypeCounts[geojson.GeometryLineString])
	}
	if result.NonXYCount != 1 {
		t.Errorf("NonXYCount failed: expected 1, got %d", result.NonXYCount)
	}
	if result.SegmentCount != 6 {
		t.Errorf("SegmentCount failed: expected 6, got %d", result.SegmentCount)
	}
	if math.Abs(result.MinSegment-2) > 1e-10 {
		t.Errorf("MinSegment failed: expected 2, got %v", result.MinSegment)
	}
	if math.Abs(result.MaxSegment-6) > 1e-10 {
		t.Errorf("MaxSegment failed: expected 6, got %v", result.MaxSegment)
	}
	if math.Abs(result.TotalLength-23) > 1e-10 {
		t.Errorf("TotalLength failed: expected 23, got %v", result.TotalLength)
	}
	if math.Abs(result.PolygonArea-8) > 1e-10 {
		t.Errorf("PolygonArea failed: expected 8, got %v", result.PolygonArea)
	}

	want := geometry.NewExtent(-1, -1, 4, 10)
	if !result.HasExtent || result.Extent != want {
		t.Errorf("Extent failed: expected %v, got %v", want, result.Extent)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	result := AnalyzeFeatures(nil)
	if result.HasExtent || result.SegmentCount != 0 || result.MinSegment != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestPolygonAreaWithHole(t *testing.T) {
	g := geojson.NewPolygonGeometry([][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}},
	})
	if got := polygonArea(g); math.Abs(got-96) > 1e-10 {
		t.Errorf("polygonArea failed: expected 96, got %v", got)
	}
}

func TestFindLongestSegments(t *testing.T) {
	result := AnalyzeFeatures([]*geojson.Feature{
		geojson.NewLineStringFeature([][]float64{{0, 0}, {1, 0}, {1, 5}, {3, 5}}),
	})

	longest := FindLongestSegments(result, 2)
	if len(longest) != 2 || longest[0].Length != 5 || longest[1].Length != 2 {
		t.Errorf("FindLongestSegments failed: got %+v", longest)
	}
	if len(FindLongestSegments(result, 10)) != 3 {
		t.Error("FindLongestSegments must cap the count")
	}

	inRange := FindSegmentsByLength(result, 1.5, 2.5)
	if len(inRange) != 1 || inRange[0].Length != 2 {
		t.Errorf("FindSegmentsByLength failed: got %+v", inRange)
	}
}

func TestFormatMeasurement(t *testing.T) {
	if got := FormatMeasurement(0.3048, 0.3048, "ft"); got != "1.000 ft" {
		t.Errorf("FormatMeasurement failed: got %q", got)
	}
	if got := FormatMeasurement(2, 0, ""); got != "2.000 units" {
		t.Errorf("FormatMeasurement failed: got %q", got)
	}
}
