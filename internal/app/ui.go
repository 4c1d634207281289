package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/version"
)

const statusDuration = 4 * time.Second

var helpLines = []string{
	"Drag a handle: start / shape a draft",
	"Enter / OK: confirm draft",
	"Esc / X: discard draft",
	"Tab or click label: type a dimension",
	"U: next unit",
	"A: toggle drawing",
	"Wheel: zoom, Shift/Middle drag: pan",
	"Q / E: rotate view",
	"F: fit reference, Home: reset view",
	"Ctrl+S: save, Ctrl+Q: quit",
	"I: info, H: help",
}

// drawUI draws the user interface
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === REFERENCE ===
	if app.View.showInfo && app.Sources.analysis != nil {
		y = app.drawInfo(app.Sources.analysis, y, lineHeight, fontSize16, fontSize14)
	}

	// === DRAFT ===
	if d := app.Interaction.Draft(); d != nil {
		rl.DrawTextEx(app.UI.font, "Draft:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		for _, o := range d.Overlays() {
			text := fmt.Sprintf("  %s: %s %s", roleName(o.Handle().Role()), o.Text(), d.Unit())
			color := rl.Green
			if o.Invalid() {
				color = rl.Red
			}
			rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: 10, Y: y}, fontSize14, 1, color)
			y += lineHeight
		}
		y += lineHeight
	}

	// === HELP ===
	if app.View.showHelp {
		rl.DrawTextEx(app.UI.font, "Keys:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		for _, line := range helpLines {
			rl.DrawTextEx(app.UI.font, "  "+line, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
			y += lineHeight
		}
	}

	// Status box in the bottom-right corner
	if app.UI.status != "" && time.Since(app.UI.statusAt) < statusDuration {
		boxPadding := float32(10)
		textSize := rl.MeasureTextEx(app.UI.font, app.UI.status, fontSize16, 1)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := screenWidth - boxWidth - 20
		boxY := screenHeight - boxHeight - 20

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		rl.DrawTextEx(app.UI.font, app.UI.status, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, rl.Yellow)
	}

	// Version, FPS, state and unit in the bottom-left corner
	bottomY := screenHeight - 30
	x := float32(10)
	for _, part := range []struct {
		text  string
		color rl.Color
	}{
		{fmt.Sprintf("v%s", version.GetVersion()), rl.Gray},
		{fmt.Sprintf("FPS: %d", rl.GetFPS()), rl.Lime},
		{app.stateText(), rl.LightGray},
		{fmt.Sprintf("Unit: %s", app.Interaction.Unit()), rl.LightGray},
	} {
		rl.DrawTextEx(app.UI.font, part.text, rl.Vector2{X: x, Y: bottomY}, fontSize12, 1, part.color)
		x += rl.MeasureTextEx(app.UI.font, part.text, fontSize12, 1).X + 15
	}
}

func (app *App) drawInfo(result *analysis.MeasurementResult, y, lineHeight, titleSize, textSize float32) float32 {
	rl.DrawTextEx(app.UI.font, "Reference:", rl.Vector2{X: 10, Y: y}, titleSize, 1, rl.Yellow)
	y += lineHeight

	lines := []string{
		fmt.Sprintf("  Features: %d", result.FeatureCount),
		fmt.Sprintf("  Segments: %d", result.SegmentCount),
	}
	if result.HasExtent {
		lines = append(lines, fmt.Sprintf("  Size: %.2f x %.2f", result.Dimensions.X, result.Dimensions.Y))
	}
	if result.NonXYCount > 0 {
		lines = append(lines, fmt.Sprintf("  Skipped (not 2D): %d", result.NonXYCount))
	}
	lines = append(lines,
		fmt.Sprintf("  Candidates: %d", len(app.Interaction.Candidates())),
		fmt.Sprintf("  Drawn: %d", app.Sources.destination.Len()),
	)
	if app.FileWatch.watcher != nil {
		switch {
		case app.FileWatch.reloadErr != nil:
			lines = append(lines, "  Reload failed, keeping last content")
		case !app.FileWatch.lastReload.IsZero():
			lines = append(lines, fmt.Sprintf("  Reloaded %s", app.FileWatch.lastReload.Format("15:04:05")))
		default:
			lines = append(lines, "  Watching for changes")
		}
	}
	if app.Sources.outPath != "" {
		switch {
		case app.FileWatch.saveErr != nil:
			lines = append(lines, "  Save failed")
		case !app.FileWatch.lastSave.IsZero():
			lines = append(lines, fmt.Sprintf("  Saved %s", app.FileWatch.lastSave.Format("15:04:05")))
		}
	}

	for _, line := range lines {
		rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: y}, textSize, 1, rl.White)
		y += lineHeight
	}
	return y + lineHeight
}

func (app *App) stateText() string {
	if !app.Interaction.Active() {
		return "inactive"
	}
	return app.Interaction.State().String()
}
