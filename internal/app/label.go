package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Label is a boxed text centered on a screen position, optionally rotated
type Label struct {
	Text      string
	ScreenPos rl.Vector2
	Rotation  float32 // Degrees, clockwise
	BaseColor rl.Color
	IsEditing bool
	IsInvalid bool
}

// Draw renders the label and returns the axis-aligned bounds of its rotated
// box
func (l *Label) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	color := l.BaseColor
	if l.IsInvalid {
		color = rl.Red
	}

	text := l.Text
	if l.IsEditing {
		text += "_"
	}
	textSize := rl.MeasureTextEx(font, text, fontSize, 1)

	width := textSize.X + 2*padding
	height := textSize.Y + 2*padding

	// DrawRectanglePro places origin at the rectangle position and rotates
	// around it
	if l.IsEditing {
		const border = 2
		frame := rl.Rectangle{X: l.ScreenPos.X, Y: l.ScreenPos.Y, Width: width + 2*border, Height: height + 2*border}
		rl.DrawRectanglePro(frame, rl.Vector2{X: frame.Width / 2, Y: frame.Height / 2}, l.Rotation, color)
	}
	box := rl.Rectangle{X: l.ScreenPos.X, Y: l.ScreenPos.Y, Width: width, Height: height}
	rl.DrawRectanglePro(box, rl.Vector2{X: width / 2, Y: height / 2}, l.Rotation, rl.NewColor(20, 20, 20, 220))

	textOrigin := rl.Vector2{X: textSize.X / 2, Y: textSize.Y / 2}
	rl.DrawTextPro(font, text, l.ScreenPos, textOrigin, l.Rotation, fontSize, 1, color)

	sin, cos := math.Sincos(float64(l.Rotation) * math.Pi / 180)
	boundsW := float32(math.Abs(float64(width)*cos) + math.Abs(float64(height)*sin))
	boundsH := float32(math.Abs(float64(width)*sin) + math.Abs(float64(height)*cos))
	return rl.Rectangle{
		X:      l.ScreenPos.X - boundsW/2,
		Y:      l.ScreenPos.Y - boundsH/2,
		Width:  boundsW,
		Height: boundsH,
	}
}
