package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

// editRoles is the order Tab cycles through the dimension overlays
var editRoles = []touchdraw.Role{touchdraw.RoleScale, touchdraw.RoleMoveX, touchdraw.RoleMoveY}

// handleInput processes user input
func (app *App) handleInput() {
	mouse := rl.GetMousePosition()

	if app.Edit.active {
		app.handleTextInput()
	} else {
		app.handleShortcuts()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel, mouse)
	}

	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Pointer.lastMousePos = mouse
		app.Pointer.consumed = false
		app.Pointer.isPanning = false

		switch {
		case shiftPressed:
			app.Pointer.isPanning = true
		case app.clickControls(mouse):
		default:
			app.Pointer.consumed = app.Interaction.PointerDown(app.pointerEvent(mouse))
			// Pressing on empty map pans
			app.Pointer.isPanning = !app.Pointer.consumed
		}
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.Vector2Subtract(mouse, app.Pointer.lastMousePos)
		if delta.X != 0 || delta.Y != 0 {
			if app.Pointer.consumed {
				app.Interaction.PointerDrag(app.pointerEvent(mouse))
			} else if app.Pointer.isPanning {
				app.doPan(delta)
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if app.Pointer.consumed {
			app.Interaction.PointerUp(app.pointerEvent(mouse))
		}
		app.Pointer.consumed = false
		app.Pointer.isPanning = false
	}

	// Middle mouse button pans in any state
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}

	app.Pointer.lastMousePos = mouse
}

func (app *App) handleShortcuts() {
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetView()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.fitReference()
	}
	if rl.IsKeyPressed(rl.KeyQ) && !rl.IsKeyDown(rl.KeyLeftControl) && !rl.IsKeyDown(rl.KeyRightControl) {
		app.doRotate(1)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		app.doRotate(-1)
	}
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showInfo = !app.View.showInfo
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyU) {
		app.cycleUnit()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		app.Interaction.SetActive(!app.Interaction.Active())
		if app.Interaction.Active() {
			app.setStatus("Drawing enabled")
		} else {
			app.setStatus("Drawing disabled")
		}
	}

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyS) {
		if err := app.saveDestination(); err != nil {
			app.setStatus(fmt.Sprintf("Save failed: %v", err))
		} else if app.Sources.outPath != "" {
			app.setStatus(fmt.Sprintf("Saved %s", app.Sources.outPath))
		}
	}

	if app.Interaction.Draft() == nil {
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		app.Interaction.Confirm()
		return
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.Interaction.Cancel()
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		app.startEditing(app.nextEditRole(-1))
	}
}

// handleTextInput feeds typed characters into the overlay being edited
func (app *App) handleTextInput() {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' {
			app.Edit.buffer += string(rune(ch))
		}
	}

	if rl.IsKeyPressed(rl.KeyBackspace) && len(app.Edit.buffer) > 0 {
		app.Edit.buffer = app.Edit.buffer[:len(app.Edit.buffer)-1]
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		app.applyEdit()
	case rl.IsKeyPressed(rl.KeyEscape):
		app.stopEditing()
	case rl.IsKeyPressed(rl.KeyTab):
		next := app.nextEditRole(app.roleIndex(app.Edit.role))
		app.applyEdit()
		app.startEditing(next)
	}
}

// clickControls handles presses on the confirm and cancel controls and on
// dimension labels. Returns true when the press hit one of them.
func (app *App) clickControls(mouse rl.Vector2) bool {
	if app.Interaction.Draft() == nil {
		return false
	}
	if rl.CheckCollisionPointRec(mouse, app.Edit.confirm) {
		app.Interaction.Confirm()
		return true
	}
	if rl.CheckCollisionPointRec(mouse, app.Edit.cancel) {
		app.Interaction.Cancel()
		return true
	}
	for role, rect := range app.Edit.labels {
		if rl.CheckCollisionPointRec(mouse, rect) {
			app.startEditing(role)
			return true
		}
	}
	if app.Edit.active {
		app.applyEdit()
	}
	return false
}

func (app *App) pointerEvent(mouse rl.Vector2) touchdraw.PointerEvent {
	px := toPoint(mouse)
	return touchdraw.PointerEvent{
		Coordinate: app.View.view.CoordinateFromPixel(px),
		Pixel:      px,
	}
}

func (app *App) startEditing(role touchdraw.Role) {
	d := app.Interaction.Draft()
	if d == nil {
		return
	}
	o := d.Overlay(role)
	if o == nil {
		return
	}
	app.Edit.active = true
	app.Edit.role = role
	app.Edit.buffer = o.Text()
}

// applyEdit writes the typed text into the overlay. Invalid text stays in
// the overlay, flagged, and editing continues.
func (app *App) applyEdit() {
	d := app.Interaction.Draft()
	if d == nil {
		app.stopEditing()
		return
	}
	o := d.Overlay(app.Edit.role)
	if o == nil {
		app.stopEditing()
		return
	}
	if !o.SetText(app.Edit.buffer) {
		app.setStatus(fmt.Sprintf("%q is not a number", app.Edit.buffer))
		return
	}
	app.stopEditing()
}

func (app *App) stopEditing() {
	app.Edit.active = false
	app.Edit.buffer = ""
}

// nextEditRole returns the role after index in editRoles
func (app *App) nextEditRole(index int) touchdraw.Role {
	return editRoles[(index+1)%len(editRoles)]
}

func (app *App) roleIndex(role touchdraw.Role) int {
	for i, r := range editRoles {
		if r == role {
			return i
		}
	}
	return -1
}

// cycleUnit switches to the next unit of the table
func (app *App) cycleUnit() {
	names := app.Interaction.Units().Names()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == app.Interaction.Unit() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := app.Interaction.SetUnit(next); err != nil {
		app.setStatus(err.Error())
		return
	}
	app.setStatus(fmt.Sprintf("Unit: %s", next))
}
