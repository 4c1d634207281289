package geometry

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// LineIntersection computes the intersection point of segment p0-p1 with
// segment p2-p3. Returns false for parallel segments and for segments whose
// supporting lines cross outside of either segment.
func LineIntersection(p0, p1, p2, p3 Coordinate) (Coordinate, bool) {
	s1 := p1.Sub(p0)
	s2 := p3.Sub(p2)

	denom := -s2.X*s1.Y + s1.X*s2.Y
	if denom == 0 {
		return Coordinate{}, false
	}

	s := (-s1.Y*(p0.X-p2.X) + s1.X*(p0.Y-p2.Y)) / denom
	t := (s2.X*(p0.Y-p2.Y) - s2.Y*(p0.X-p2.X)) / denom

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Coordinate{}, false
	}

	return Coordinate{X: p0.X + t*s1.X, Y: p0.Y + t*s1.Y}, true
}

// CropSegmentByExtent returns the part of seg that lies inside e.
//
// A segment fully inside e is returned unchanged. A segment with one endpoint
// inside is cropped to [inside endpoint, first edge crossing]; note that this
// puts the inside endpoint first even when it was seg[1]. An inside endpoint
// on the boundary does not count as a crossing. A segment with both
// endpoints outside is cropped to its first two edge crossings, with a
// crossing through a corner counted once. Returns false when nothing of seg
// lies inside e.
func CropSegmentByExtent(seg Segment, e Extent) (Segment, bool) {
	in0 := e.ContainsPoint(seg[0])
	in1 := e.ContainsPoint(seg[1])

	if in0 && in1 {
		return seg, true
	}

	crossings := edgeCrossings(seg, e)

	switch {
	case in0:
		return cropFrom(seg[0], crossings)
	case in1:
		return cropFrom(seg[1], crossings)
	}

	if len(crossings) < 2 {
		return Segment{}, false
	}
	return Segment{crossings[0], crossings[1]}, true
}

// cropFrom pairs an inside endpoint with the first crossing that differs
// from it. An endpoint on the boundary of the extent crosses there itself.
func cropFrom(inside Coordinate, crossings []Coordinate) (Segment, bool) {
	for _, c := range crossings {
		if c != inside {
			return Segment{inside, c}, true
		}
	}
	return Segment{}, false
}

// edgeCrossings intersects seg with the bottom, right, top and left edges of e
func edgeCrossings(seg Segment, e Extent) []Coordinate {
	corners := ExtentCorners(e)
	crossings := make([]Coordinate, 0, 2)

	for i := range corners {
		p, ok := LineIntersection(seg[0], seg[1], corners[i], corners[(i+1)%len(corners)])
		if !ok {
			continue
		}
		duplicate := false
		for _, c := range crossings {
			if c == p {
				duplicate = true
				break
			}
		}
		if !duplicate {
			crossings = append(crossings, p)
		}
	}

	return crossings
}

// PointOnSegment reports whether p lies on seg within tol
func PointOnSegment(p Coordinate, seg Segment, tol float64) bool {
	length := seg.Length()
	if length == 0 {
		return scalar.EqualWithinAbs(p.X, seg[0].X, tol) && scalar.EqualWithinAbs(p.Y, seg[0].Y, tol)
	}

	dir := seg[1].Sub(seg[0])
	rel := p.Sub(seg[0])

	offset := dir.Cross(rel) / length
	along := dir.Dot(rel) / length

	return scalar.EqualWithinAbs(offset, 0, tol) && along >= -tol && along <= length+tol
}
