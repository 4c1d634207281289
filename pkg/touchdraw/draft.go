package touchdraw

import (
	"errors"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/source"
)

// ErrDegenerateSpine is returned by NewDraft for a spine without length
var ErrDegenerateSpine = errors.New("touchdraw: spine has zero length")

// Quad is the closed ring of a draft: corners 0 and 1 are the spine, 2 and 3
// the far edge, and the last coordinate repeats the first.
type Quad [5]geometry.Coordinate

// Corners returns the four distinct corners
func (q Quad) Corners() []geometry.Coordinate {
	return q[:4]
}

// Centroid returns the average of the four corners
func (q Quad) Centroid() geometry.Coordinate {
	var c geometry.Coordinate
	for _, p := range q[:4] {
		c = geometry.AddVectors(c, p)
	}
	return geometry.ScaleVector(c, 0.25)
}

// Draft is a quadrilateral under construction. It is anchored to a spine and
// shaped by three handles: the scale handle moves the far edge away from the
// spine, the move handles translate the whole shape across and along it.
type Draft struct {
	spine geometry.Segment
	quad  Quad

	scale *Handle
	xMove *Handle
	yMove *Handle

	overlays []*DimensionOverlay
	feature  *geojson.Feature

	units  UnitTable
	unit   string
	factor float64

	recomputing bool
	pending     bool
	closed      bool

	disconnect []func()
	committed  signal[*geojson.Feature]
	aborted    signal[struct{}]
}

// NewDraft creates a draft on spine driven by the already grabbed scale
// handle. unit selects the unit dimension overlays display.
func NewDraft(spine geometry.Segment, scale *Handle, units UnitTable, unit string) (*Draft, error) {
	if spine.IsDegenerate() {
		return nil, ErrDegenerateSpine
	}
	if units == nil {
		units = DefaultUnits
	}
	factor, err := units.Factor(unit)
	if err != nil {
		return nil, err
	}

	p0, p1 := spine[0], spine[1]
	xBasis := geometry.OrthogonalBasisVector(p0, p1)
	if !geometry.IsFiniteVector(xBasis) {
		return nil, ErrDegenerateSpine
	}
	yBasis := geometry.OrthogonalBasisVector(geometry.NewCoordinate(0, 0), xBasis)

	scale.role = RoleScale
	d := &Draft{
		spine:  spine,
		quad:   Quad{p0, p1, p1, p0, p0},
		scale:  scale,
		xMove:  NewHandle(RoleMoveX, geometry.Midpoint(p1, p0), xBasis, 0),
		yMove:  NewHandle(RoleMoveY, geometry.Midpoint(p0, p1), yBasis, 0),
		units:  units,
		unit:   unit,
		factor: factor,
	}
	d.feature = geojson.NewPolygonFeature([][][]float64{d.ring()})
	d.overlays = []*DimensionOverlay{
		newDimensionOverlay(d, d.scale),
		newDimensionOverlay(d, d.xMove),
		newDimensionOverlay(d, d.yMove),
	}

	for _, h := range d.Handles() {
		d.disconnect = append(d.disconnect, h.OnMovementChange(d.handleMoved))
	}

	d.recompute(nil)
	return d, nil
}

// Spine returns the segment the draft is anchored to
func (d *Draft) Spine() geometry.Segment { return d.spine }

// Quad returns the current ring
func (d *Draft) Quad() Quad { return d.quad }

// Feature returns the live polygon feature; its ring follows the quad
func (d *Draft) Feature() *geojson.Feature { return d.feature }

// ScaleHandle returns the handle moving the far edge
func (d *Draft) ScaleHandle() *Handle { return d.scale }

// XMoveHandle returns the handle translating the draft across the spine
func (d *Draft) XMoveHandle() *Handle { return d.xMove }

// YMoveHandle returns the handle translating the draft along the spine
func (d *Draft) YMoveHandle() *Handle { return d.yMove }

// Handles returns the scale, x-move and y-move handles in that order
func (d *Draft) Handles() []*Handle {
	return []*Handle{d.scale, d.xMove, d.yMove}
}

// Overlays returns the dimension overlays in handle order. Empty once the
// draft was torn down.
func (d *Draft) Overlays() []*DimensionOverlay { return d.overlays }

// Overlay returns the dimension overlay of the handle with the given role
func (d *Draft) Overlay(role Role) *DimensionOverlay {
	for _, o := range d.overlays {
		if o.handle.Role() == role {
			return o
		}
	}
	return nil
}

// GuideLines returns the from-to lines of move handles that are displaced
func (d *Draft) GuideLines() []geometry.Segment {
	var lines []geometry.Segment
	for _, h := range []*Handle{d.xMove, d.yMove} {
		if h.Magnitude() != 0 {
			lines = append(lines, guideLine(h))
		}
	}
	return lines
}

// Controls returns where the confirm and cancel controls are placed
func (d *Draft) Controls() geometry.Coordinate {
	return d.quad.Centroid()
}

// Unit returns the selected display unit
func (d *Draft) Unit() string { return d.unit }

// Units returns the unit table
func (d *Draft) Units() UnitTable { return d.units }

// SetUnit switches the unit dimension overlays display
func (d *Draft) SetUnit(name string) error {
	factor, err := d.units.Factor(name)
	if err != nil {
		return err
	}
	d.unit = name
	d.factor = factor
	for _, o := range d.overlays {
		o.reset()
	}
	return nil
}

// Closed reports whether the draft was torn down
func (d *Draft) Closed() bool { return d.closed }

// OnCommit registers fn to receive the feature on Confirm
func (d *Draft) OnCommit(fn func(*geojson.Feature)) func() {
	return d.committed.connect(fn)
}

// OnAbort registers fn to be called on Cancel
func (d *Draft) OnAbort(fn func()) func() {
	return d.aborted.connect(func(struct{}) { fn() })
}

// Confirm fires the commit event with the current shape
func (d *Draft) Confirm() {
	if d.closed {
		return
	}
	d.committed.emit(d.feature)
}

// Cancel fires the abort event
func (d *Draft) Cancel() {
	if d.closed {
		return
	}
	d.aborted.emit(struct{}{})
}

// CancelDraft disconnects the draft from its handles and removes its
// overlays. Safe to call more than once.
func (d *Draft) CancelDraft() {
	if d.closed {
		return
	}
	d.closed = true
	for _, disconnect := range d.disconnect {
		disconnect()
	}
	d.disconnect = nil
	d.overlays = nil
	d.committed.clear()
	d.aborted.clear()
	for _, h := range d.Handles() {
		h.dragging = false
	}
}

// handleMoved applies a movement change. A change arriving while the quad is
// being recomputed is queued and processed once the current pass finished.
func (d *Draft) handleMoved(h *Handle) {
	if d.closed {
		return
	}
	if o := d.Overlay(h.Role()); o != nil {
		o.reset()
	}
	if d.recomputing {
		d.pending = true
		return
	}

	d.recomputing = true
	d.recompute(h)
	for d.pending {
		d.pending = false
		d.recompute(nil)
	}
	d.recomputing = false
}

// recompute rebuilds the quad from the spine and the three movement vectors
// and re-anchors every handle except moved. A nil moved re-anchors all.
// Scale sits on the far edge, x-move on the side edge through p0 and y-move
// on the spine, so the three never share a position once the draft has a
// width.
func (d *Draft) recompute(moved *Handle) {
	p0, p1 := d.spine[0], d.spine[1]
	shift := geometry.AddVectors(d.xMove.MovementVector(), d.yMove.MovementVector())
	far := geometry.AddVectors(shift, d.scale.MovementVector())

	d.quad = Quad{
		geometry.AddVectors(p0, shift),
		geometry.AddVectors(p1, shift),
		geometry.AddVectors(p1, far),
		geometry.AddVectors(p0, far),
		geometry.AddVectors(p0, shift),
	}

	if moved != d.scale {
		d.scale.UpdateLocation(geometry.Midpoint(d.quad[2], d.quad[3]))
	}
	if moved != d.xMove {
		d.xMove.UpdateLocation(geometry.Midpoint(d.quad[3], d.quad[0]))
	}
	if moved != d.yMove {
		d.yMove.UpdateLocation(geometry.Midpoint(d.quad[0], d.quad[1]))
	}

	d.feature.Geometry.Polygon = [][][]float64{d.ring()}
	d.placeOverlays()
}

func (d *Draft) placeOverlays() {
	for _, o := range d.overlays {
		if o.handle == d.scale {
			o.edge = geometry.NewSegment(d.quad[1], d.quad[2])
		} else {
			o.edge = guideLine(o.handle)
		}
	}
}

func (d *Draft) ring() [][]float64 {
	return source.Positions(d.quad[:])
}

// guideLine runs from where the handle would be without movement to where it
// is now
func guideLine(h *Handle) geometry.Segment {
	return geometry.NewSegment(h.Origin(), h.Geometry())
}
