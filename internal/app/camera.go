package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
)

const (
	zoomStep   = 1.15         // Zoom factor per wheel notch
	rotateStep = math.Pi / 36 // 5 degrees per key press
)

// resetView restores the center and zoom the window opened with
func (app *App) resetView() {
	app.View.view.Center = app.View.defaultCenter
	app.View.view.SetResolution(app.View.defaultRes)
	app.View.view.SetRotation(0)
}

// fitReference zooms to the current reference content
func (app *App) fitReference() {
	extent, ok := app.Sources.reference.Extent()
	if !ok {
		return
	}
	app.View.view.FitExtent(extent, fitPadding)
}

// doPan moves the map content by the mouse delta
func (app *App) doPan(delta rl.Vector2) {
	app.View.view.Pan(float64(delta.X), float64(delta.Y))
}

// doZoom zooms by wheel notches, keeping the map point under the mouse fixed
func (app *App) doZoom(wheel float32, mouse rl.Vector2) {
	factor := math.Pow(zoomStep, float64(wheel))
	app.View.view.Zoom(factor, toPoint(mouse))
}

// doRotate rotates the view around its center
func (app *App) doRotate(steps float64) {
	app.View.view.Rotate(steps * rotateStep)
}

func toPoint(v rl.Vector2) r2.Point {
	return r2.Point{X: float64(v.X), Y: float64(v.Y)}
}

func toVector2(p r2.Point) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}
