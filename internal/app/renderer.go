package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

var (
	referenceColor   = rl.NewColor(150, 160, 180, 255)
	destinationColor = rl.NewColor(80, 160, 255, 255)
	highlightColor   = rl.NewColor(255, 170, 0, 255)
	candidateColor   = rl.NewColor(255, 120, 0, 255)
	draftFillColor   = rl.NewColor(60, 200, 110, 70)
	draftEdgeColor   = rl.NewColor(60, 200, 110, 255)
	guideColor       = rl.NewColor(220, 220, 220, 255)
)

const (
	lineThickness = 2
	handleRadius  = 8
	dashLength    = 8
	labelFontSize = 16
	labelPadding  = 4
	controlSize   = 26
)

func (app *App) screen(c geometry.Coordinate) rl.Vector2 {
	return toVector2(app.View.view.PixelFromCoordinate(c))
}

func (app *App) screenPoints(coords []geometry.Coordinate) []rl.Vector2 {
	points := make([]rl.Vector2, len(coords))
	for i, c := range coords {
		points[i] = app.screen(c)
	}
	return points
}

// drawFeatures draws lines and polygon outlines in screen space
func (app *App) drawFeatures(features []*geojson.Feature, color rl.Color) {
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}

		for _, line := range source.Lines(f.Geometry) {
			points := app.screenPoints(line)
			for i := 0; i+1 < len(points); i++ {
				rl.DrawLineEx(points[i], points[i+1], lineThickness, color)
			}
		}

		if f.Geometry.Type == geojson.GeometryPoint || f.Geometry.Type == geojson.GeometryMultiPoint {
			source.WalkPositions(f.Geometry, func(p []float64) {
				if len(p) >= 2 {
					rl.DrawCircleV(app.screen(geometry.NewCoordinate(p[0], p[1])), 3, color)
				}
			})
		}
	}
}

// drawCandidates draws the highlighted segments and their proposed handles
func (app *App) drawCandidates() {
	for _, seg := range app.Interaction.Highlighted() {
		rl.DrawLineEx(app.screen(seg[0]), app.screen(seg[1]), lineThickness*2, highlightColor)
	}
	for _, h := range app.Interaction.Candidates() {
		drawHandle(app.screen(h.Geometry()), candidateColor, false)
	}
}

// drawDraft draws the draft quad, guide lines, handles, dimension labels and
// the confirm/cancel controls
func (app *App) drawDraft() {
	for role := range app.Edit.labels {
		delete(app.Edit.labels, role)
	}
	app.Edit.confirm = rl.Rectangle{}
	app.Edit.cancel = rl.Rectangle{}

	d := app.Interaction.Draft()
	if d == nil {
		return
	}

	quad := d.Quad()
	corners := app.screenPoints(quad.Corners())
	fillQuad(corners, draftFillColor)
	for i := range corners {
		rl.DrawLineEx(corners[i], corners[(i+1)%len(corners)], lineThickness, draftEdgeColor)
	}

	for _, guide := range d.GuideLines() {
		drawDashedLine(app.screen(guide[0]), app.screen(guide[1]), guideColor)
	}

	for _, h := range d.Handles() {
		drawHandle(app.screen(h.Geometry()), draftEdgeColor, h.Dragging())
	}

	for _, o := range d.Overlays() {
		role := o.Handle().Role()
		editing := app.Edit.active && app.Edit.role == role
		if !o.Visible() && !editing {
			continue
		}

		text := o.Text()
		if editing {
			text = app.Edit.buffer
		}
		label := Label{
			Text:      fmt.Sprintf("%s %s", text, d.Unit()),
			ScreenPos: app.screen(o.Anchor()),
			Rotation:  float32(o.Rotation(app.View.view)),
			BaseColor: rl.White,
			IsEditing: editing,
			IsInvalid: o.Invalid(),
		}
		app.Edit.labels[role] = label.Draw(app.UI.font, labelFontSize, labelPadding)
	}

	app.drawControls(app.screen(d.Controls()))
}

// drawControls draws the confirm and cancel buttons side by side around center
func (app *App) drawControls(center rl.Vector2) {
	const gap = 6
	app.Edit.confirm = rl.Rectangle{X: center.X - controlSize - gap/2, Y: center.Y - controlSize/2, Width: controlSize, Height: controlSize}
	app.Edit.cancel = rl.Rectangle{X: center.X + gap/2, Y: center.Y - controlSize/2, Width: controlSize, Height: controlSize}

	mouse := rl.GetMousePosition()
	for _, c := range []struct {
		rect  rl.Rectangle
		color rl.Color
		glyph string
	}{
		{app.Edit.confirm, rl.NewColor(40, 170, 80, 255), "OK"},
		{app.Edit.cancel, rl.NewColor(200, 60, 60, 255), "X"},
	} {
		bg := rl.NewColor(20, 20, 20, 220)
		if rl.CheckCollisionPointRec(mouse, c.rect) {
			bg = rl.NewColor(50, 50, 50, 240)
		}
		rl.DrawRectangleRec(c.rect, bg)
		rl.DrawRectangleLinesEx(c.rect, 2, c.color)

		size := rl.MeasureTextEx(app.UI.font, c.glyph, labelFontSize, 1)
		pos := rl.Vector2{X: c.rect.X + (c.rect.Width-size.X)/2, Y: c.rect.Y + (c.rect.Height-size.Y)/2}
		rl.DrawTextEx(app.UI.font, c.glyph, pos, labelFontSize, 1, c.color)
	}
}

func drawHandle(center rl.Vector2, color rl.Color, active bool) {
	radius := float32(handleRadius)
	if active {
		radius += 2
	}
	rl.DrawCircleV(center, radius+2, rl.White)
	rl.DrawCircleV(center, radius, color)
}

// fillQuad fills a convex polygon. Triangles are drawn in both windings since
// only counter-clockwise ones are visible and the quad can be mirrored.
func fillQuad(points []rl.Vector2, color rl.Color) {
	for i := 1; i+1 < len(points); i++ {
		rl.DrawTriangle(points[0], points[i], points[i+1], color)
		rl.DrawTriangle(points[0], points[i+1], points[i], color)
	}
}

// drawDashedLine draws alternating dashes of dashLength pixels
func drawDashedLine(from, to rl.Vector2, color rl.Color) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	ux, uy := dx/length, dy/length
	for start := 0.0; start < length; start += 2 * dashLength {
		end := math.Min(start+dashLength, length)
		a := rl.Vector2{X: from.X + float32(ux*start), Y: from.Y + float32(uy*start)}
		b := rl.Vector2{X: from.X + float32(ux*end), Y: from.Y + float32(uy*end)}
		rl.DrawLineEx(a, b, lineThickness, color)
	}
}

// roleName is the label used for a draft handle in the UI
func roleName(role touchdraw.Role) string {
	switch role {
	case touchdraw.RoleScale:
		return "Width"
	case touchdraw.RoleMoveX:
		return "Offset across"
	case touchdraw.RoleMoveY:
		return "Offset along"
	default:
		return role.String()
	}
}
