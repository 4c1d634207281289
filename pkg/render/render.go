// Package render draws reference features, destination features and the
// state of a drawing interaction into an image without a window.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r2"
	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Style holds the colors and sizes used for drawing
type Style struct {
	Background   color.RGBA
	Reference    color.RGBA
	Destination  color.RGBA
	Highlight    color.RGBA
	Candidate    color.RGBA
	DraftFill    color.RGBA
	DraftEdge    color.RGBA
	Handle       color.RGBA
	Guide        color.RGBA
	Label        color.RGBA
	LabelBack    color.RGBA
	Invalid      color.RGBA
	LineWidth    float64
	HandleRadius float64
	DashLength   int
	FontSize     float64 // Label size in points at 72 DPI
}

// DefaultStyle returns the style used by the CLI
func DefaultStyle() Style {
	return Style{
		Background:   color.RGBA{R: 245, G: 245, B: 240, A: 255},
		Reference:    color.RGBA{R: 90, G: 90, B: 100, A: 255},
		Destination:  color.RGBA{R: 30, G: 110, B: 200, A: 255},
		Highlight:    color.RGBA{R: 255, G: 170, B: 0, A: 255},
		Candidate:    color.RGBA{R: 255, G: 120, B: 0, A: 255},
		DraftFill:    color.RGBA{R: 40, G: 160, B: 80, A: 90},
		DraftEdge:    color.RGBA{R: 20, G: 120, B: 50, A: 255},
		Handle:       color.RGBA{R: 20, G: 120, B: 50, A: 255},
		Guide:        color.RGBA{R: 60, G: 60, B: 60, A: 255},
		Label:        color.RGBA{R: 0, G: 0, B: 0, A: 255},
		LabelBack:    color.RGBA{R: 255, G: 255, B: 255, A: 220},
		Invalid:      color.RGBA{R: 200, G: 30, B: 30, A: 255},
		LineWidth:    2,
		HandleRadius: 7,
		DashLength:   6,
		FontSize:     12,
	}
}

// Scene is what gets drawn. Interaction may be nil.
type Scene struct {
	Reference   []*geojson.Feature
	Destination []*geojson.Feature
	Interaction *touchdraw.Interaction
}

// Renderer draws scenes into RGBA images
type Renderer struct {
	Style Style
	face  font.Face
}

// NewRenderer creates a renderer with the given style. Labels use Go
// Regular, or the built-in bitmap font when it cannot be loaded.
func NewRenderer(style Style) *Renderer {
	return &Renderer{
		Style: style,
		face:  labelFace(style.FontSize),
	}
}

func labelFace(size float64) font.Face {
	if size <= 0 {
		return basicfont.Face7x13
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the scene as seen through view
func (r *Renderer) Render(view *mapview.View, scene Scene) *image.RGBA {
	width := int(math.Ceil(view.Width))
	height := int(math.Ceil(view.Height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Style.Background), image.Point{}, draw.Src)

	r.drawFeatures(img, view, scene.Reference, r.Style.Reference)
	r.drawFeatures(img, view, scene.Destination, r.Style.Destination)

	if scene.Interaction != nil {
		r.drawInteraction(img, view, scene.Interaction)
	}
	return img
}

func (r *Renderer) drawFeatures(img *image.RGBA, view *mapview.View, features []*geojson.Feature, col color.RGBA) {
	fillColor := col
	fillColor.A = 40

	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}

		if isAreal(f.Geometry) {
			fill(img, fillColor, func(z *vector.Rasterizer) {
				for _, ring := range source.Lines(f.Geometry) {
					polygon(z, pixels(view, ring))
				}
			})
		}

		fill(img, col, func(z *vector.Rasterizer) {
			for _, line := range source.Lines(f.Geometry) {
				px := pixels(view, line)
				for i := 0; i+1 < len(px); i++ {
					strokeSegment(z, px[i], px[i+1], r.Style.LineWidth)
				}
			}
		})

		source.WalkPositions(f.Geometry, func(p []float64) {
			if f.Geometry.Type != geojson.GeometryPoint && f.Geometry.Type != geojson.GeometryMultiPoint {
				return
			}
			if len(p) < 2 {
				return
			}
			center := view.PixelFromCoordinate(geometry.NewCoordinate(p[0], p[1]))
			fill(img, col, func(z *vector.Rasterizer) {
				disc(z, center, r.Style.LineWidth*2)
			})
		})
	}
}

func (r *Renderer) drawInteraction(img *image.RGBA, view *mapview.View, interaction *touchdraw.Interaction) {
	if highlighted := interaction.Highlighted(); len(highlighted) > 0 {
		fill(img, r.Style.Highlight, func(z *vector.Rasterizer) {
			for _, seg := range highlighted {
				strokeSegment(z, view.PixelFromCoordinate(seg[0]), view.PixelFromCoordinate(seg[1]), r.Style.LineWidth*2)
			}
		})
	}
	for _, h := range interaction.Candidates() {
		r.drawHandle(img, view, h, r.Style.Candidate)
	}

	if d := interaction.Draft(); d != nil {
		r.DrawDraft(img, view, d)
	}
}

// DrawDraft draws the quad, guide lines, handles and dimension labels of d
func (r *Renderer) DrawDraft(img *image.RGBA, view *mapview.View, d *touchdraw.Draft) {
	quad := d.Quad()
	corners := pixels(view, quad[:4])

	fill(img, r.Style.DraftFill, func(z *vector.Rasterizer) {
		polygon(z, corners)
	})
	fill(img, r.Style.DraftEdge, func(z *vector.Rasterizer) {
		for i := range corners {
			strokeSegment(z, corners[i], corners[(i+1)%len(corners)], r.Style.LineWidth)
		}
	})

	for _, guide := range d.GuideLines() {
		a := view.PixelFromCoordinate(guide[0])
		b := view.PixelFromCoordinate(guide[1])
		drawDashedLine(img, round(a.X), round(a.Y), round(b.X), round(b.Y), r.Style.DashLength, r.Style.Guide)
	}

	for _, h := range d.Handles() {
		r.drawHandle(img, view, h, r.Style.Handle)
	}

	for _, o := range d.Overlays() {
		if !o.Visible() {
			continue
		}
		col := r.Style.Label
		if o.Invalid() {
			col = r.Style.Invalid
		}
		r.drawLabel(img, view.PixelFromCoordinate(o.Anchor()), o.Rotation(view), fmt.Sprintf("%s %s", o.Text(), d.Unit()), col)
	}
}

func (r *Renderer) drawHandle(img *image.RGBA, view *mapview.View, h *touchdraw.Handle, col color.RGBA) {
	center := view.PixelFromCoordinate(h.Geometry())
	fill(img, r.Style.LabelBack, func(z *vector.Rasterizer) {
		disc(z, center, r.Style.HandleRadius+2)
	})
	fill(img, col, func(z *vector.Rasterizer) {
		disc(z, center, r.Style.HandleRadius)
	})
}

// drawLabel renders text centered on anchor, rotated by degrees clockwise
func (r *Renderer) drawLabel(img *image.RGBA, anchor r2.Point, degrees float64, text string, col color.RGBA) {
	const padding = 3

	drawer := &font.Drawer{Face: r.face}
	textWidth := drawer.MeasureString(text).Ceil()
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textHeight := ascent + metrics.Descent.Ceil()

	label := image.NewRGBA(image.Rect(0, 0, textWidth+2*padding, textHeight+2*padding))
	draw.Draw(label, label.Bounds(), image.NewUniform(r.Style.LabelBack), image.Point{}, draw.Src)

	drawer.Dst = label
	drawer.Src = image.NewUniform(col)
	drawer.Dot = fixed.P(padding, padding+ascent)
	drawer.DrawString(text)

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	cx := float64(label.Bounds().Dx()) / 2
	cy := float64(label.Bounds().Dy()) / 2

	// Maps label pixels onto the image: rotate around the label center, then
	// move the center onto the anchor
	transform := f64.Aff3{
		cos, -sin, anchor.X - (cos*cx - sin*cy),
		sin, cos, anchor.Y - (sin*cx + cos*cy),
	}
	xdraw.BiLinear.Transform(img, transform, label, label.Bounds(), xdraw.Over, nil)
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to a PNG file
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := WritePNG(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

func pixels(view *mapview.View, coords []geometry.Coordinate) []r2.Point {
	px := make([]r2.Point, len(coords))
	for i, c := range coords {
		px[i] = view.PixelFromCoordinate(c)
	}
	return px
}

func isAreal(g *geojson.Geometry) bool {
	return g.Type == geojson.GeometryPolygon || g.Type == geojson.GeometryMultiPolygon
}

func round(v float64) int {
	return int(math.Round(v))
}
