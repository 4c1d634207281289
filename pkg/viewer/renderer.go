// Package viewer provides a fyne widget that shows reference and drawn
// features and forwards pointer input to a drawing interaction.
package viewer

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/golang/geo/r2"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/render"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

const fitPadding = 40

// MapRenderer draws the map into an image and routes mouse input to the
// interaction. Pressing outside a handle pans, scrolling zooms.
type MapRenderer struct {
	widget.BaseWidget
	interaction *touchdraw.Interaction
	reference   *source.Store
	destination *source.Store
	view        *mapview.View
	painter     *render.Renderer
	image       *canvas.Image
	consumed    bool          // The current press was taken by the interaction
	lastPos     fyne.Position // Last pointer position of the current press
	onChange    func()
}

// NewMapRenderer creates a widget showing reference and destination and
// driving interaction
func NewMapRenderer(interaction *touchdraw.Interaction, reference, destination *source.Store) *MapRenderer {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillStretch

	r := &MapRenderer{
		interaction: interaction,
		reference:   reference,
		destination: destination,
		painter:     render.NewRenderer(render.DefaultStyle()),
		image:       img,
	}
	r.ExtendBaseWidget(r)
	return r
}

// SetOnChange sets the callback run after every redraw
func (r *MapRenderer) SetOnChange(callback func()) {
	r.onChange = callback
}

// View returns the current view, nil before the first layout
func (r *MapRenderer) View() *mapview.View {
	return r.view
}

// FitReference zooms to the reference content
func (r *MapRenderer) FitReference() {
	if r.view == nil {
		return
	}
	if extent, ok := r.reference.Extent(); ok {
		r.view.FitExtent(extent, fitPadding)
	}
	r.Redraw()
}

// Rotate rotates the view by degrees, counter-clockwise
func (r *MapRenderer) Rotate(degrees float64) {
	if r.view == nil {
		return
	}
	r.view.Rotate(degrees * math.Pi / 180)
	r.Redraw()
}

// Render resizes the view and draws a frame
func (r *MapRenderer) Render(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.view == nil {
		extent, ok := r.reference.Extent()
		if !ok {
			extent = geometry.NewExtent(-1, -1, 1, 1)
		}
		r.view = mapview.Fit(extent, width, height, fitPadding)
	} else {
		r.view.Resize(width, height)
	}
	r.Redraw()
}

// Redraw draws a frame with the current view
func (r *MapRenderer) Redraw() {
	if r.view == nil {
		return
	}

	r.interaction.Render(r.view)
	r.image.Image = r.painter.Render(r.view, render.Scene{
		Reference:   r.reference.Features(),
		Destination: r.destination.Features(),
		Interaction: r.interaction,
	})
	r.image.Refresh()

	if r.onChange != nil {
		r.onChange()
	}
}

func (r *MapRenderer) pointer(pos fyne.Position) touchdraw.PointerEvent {
	px := r2.Point{X: float64(pos.X), Y: float64(pos.Y)}
	return touchdraw.PointerEvent{Coordinate: r.view.CoordinateFromPixel(px), Pixel: px}
}

// MouseDown grabs the handle under the pointer
func (r *MapRenderer) MouseDown(event *desktop.MouseEvent) {
	if r.view == nil || event.Button != desktop.MouseButtonPrimary {
		return
	}
	r.lastPos = event.Position
	r.consumed = r.interaction.PointerDown(r.pointer(event.Position))
	r.Redraw()
}

// MouseUp releases the grabbed handle
func (r *MapRenderer) MouseUp(event *desktop.MouseEvent) {
	r.release(event.Position)
}

// Dragged moves the grabbed handle, or pans when nothing was grabbed
func (r *MapRenderer) Dragged(event *fyne.DragEvent) {
	if r.view == nil {
		return
	}
	if r.consumed {
		r.interaction.PointerDrag(r.pointer(event.Position))
	} else {
		r.view.Pan(float64(event.Dragged.DX), float64(event.Dragged.DY))
	}
	r.lastPos = event.Position
	r.Redraw()
}

// DragEnd handles the end of a drag event
func (r *MapRenderer) DragEnd() {
	r.release(r.lastPos)
}

func (r *MapRenderer) release(pos fyne.Position) {
	if !r.consumed {
		return
	}
	r.consumed = false
	r.interaction.PointerUp(r.pointer(pos))
	r.Redraw()
}

// Scrolled zooms around the pointer
func (r *MapRenderer) Scrolled(event *fyne.ScrollEvent) {
	if r.view == nil {
		return
	}
	factor := math.Exp(float64(event.Scrolled.DY) * 0.01)
	r.view.Zoom(factor, r2.Point{X: float64(event.Position.X), Y: float64(event.Position.Y)})
	r.Redraw()
}

// CreateRenderer creates the renderer for the widget
func (r *MapRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &mapWidgetRenderer{
		renderer: r,
		objects:  []fyne.CanvasObject{r.image},
	}
}

// mapWidgetRenderer implements fyne.WidgetRenderer
type mapWidgetRenderer struct {
	renderer *MapRenderer
	objects  []fyne.CanvasObject
}

func (m *mapWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.image.Resize(size)
	m.renderer.Render(float64(size.Width), float64(size.Height))
}

func (m *mapWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *mapWidgetRenderer) Refresh() {
	canvas.Refresh(m.renderer)
}

func (m *mapWidgetRenderer) Objects() []fyne.CanvasObject {
	return m.objects
}

func (m *mapWidgetRenderer) Destroy() {}
