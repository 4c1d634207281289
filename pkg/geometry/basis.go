package geometry

// OrthogonalBasisVector returns a unit vector perpendicular to the segment
// p0->p1.
//
// The vector is built from the right triangle spanned by p0, p1 and the two
// corner points (p0.X, p1.Y) and (p1.X, p0.Y):
//
//	rise = |p0 - (p0.X, p1.Y)|
//	run  = |p0 - (p1.X, p0.Y)|
//	v    = (-rise/len, run/len)
//
// with the second component negated when the segment runs "downhill"
// ((p1.X-p0.X)*(p1.Y-p0.Y) < 0). A zero-length segment yields NaN components;
// use IsFiniteVector to detect it.
func OrthogonalBasisVector(p0, p1 Coordinate) Vector {
	rise := PlanarDistance(p0, Coordinate{X: p0.X, Y: p1.Y})
	run := PlanarDistance(p0, Coordinate{X: p1.X, Y: p0.Y})
	length := PlanarDistance(p0, p1)

	v := Vector{X: -rise / length, Y: run / length}
	if (p1.X-p0.X)*(p1.Y-p0.Y) < 0 {
		v.Y = -v.Y
	}
	return v
}
