package render

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/image/vector"
)

// fill rasterizes the paths added by build and composites them in col
func fill(img *image.RGBA, col color.RGBA, build func(r *vector.Rasterizer)) {
	bounds := img.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	build(r)
	r.Draw(img, bounds, image.NewUniform(col), image.Point{})
}

// strokeSegment adds a rectangle of the given width around a-b
func strokeSegment(r *vector.Rasterizer, a, b r2.Point, width float64) {
	d := b.Sub(a)
	length := d.Norm()
	if length == 0 {
		return
	}
	n := d.Ortho().Mul(width / 2 / length)

	moveTo(r, a.Add(n))
	lineTo(r, b.Add(n))
	lineTo(r, b.Sub(n))
	lineTo(r, a.Sub(n))
	r.ClosePath()
}

// polygon adds a closed path through points
func polygon(r *vector.Rasterizer, points []r2.Point) {
	if len(points) < 3 {
		return
	}
	moveTo(r, points[0])
	for _, p := range points[1:] {
		lineTo(r, p)
	}
	r.ClosePath()
}

// disc adds a filled circle approximated by a regular polygon
func disc(r *vector.Rasterizer, center r2.Point, radius float64) {
	const steps = 24
	points := make([]r2.Point, steps)
	for i := range points {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / steps)
		points[i] = r2.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	polygon(r, points)
}

func moveTo(r *vector.Rasterizer, p r2.Point) {
	r.MoveTo(float32(p.X), float32(p.Y))
}

func lineTo(r *vector.Rasterizer, p r2.Point) {
	r.LineTo(float32(p.X), float32(p.Y))
}

// drawDashedLine draws a one pixel line using Bresenham's algorithm, leaving
// out every other run of dash pixels
func drawDashedLine(img *image.RGBA, x1, y1, x2, y2, dash int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for step := 0; ; step++ {
		visible := dash <= 0 || (step/dash)%2 == 0
		if visible && x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
