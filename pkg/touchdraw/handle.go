package touchdraw

import (
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// Role identifies what a handle controls
type Role int

const (
	RoleCandidate Role = iota // Proposed handle next to reference geometry
	RoleScale                 // Moves the far edge of a draft
	RoleMoveX                 // Translates a draft across its spine
	RoleMoveY                 // Translates a draft along its spine
)

func (r Role) String() string {
	switch r {
	case RoleCandidate:
		return "candidate"
	case RoleScale:
		return "scale"
	case RoleMoveX:
		return "move-x"
	case RoleMoveY:
		return "move-y"
	default:
		return "unknown"
	}
}

// Handle is a draggable point constrained to a single axis. Its position is
// always origin + basis*magnitude; there is no way to set it directly.
type Handle struct {
	role      Role
	origin    geometry.Coordinate
	basis     geometry.Vector
	magnitude float64
	movement  geometry.Vector
	position  geometry.Coordinate

	// segment is the uncropped reference segment of a candidate handle
	segment geometry.Segment

	dragging bool
	last     geometry.Coordinate

	movementChanged signal[*Handle]
	geometryChanged signal[*Handle]
}

// NewHandle creates a handle at origin that moves along basis. basis is
// expected to be a unit vector and never changes afterwards.
func NewHandle(role Role, origin geometry.Coordinate, basis geometry.Vector, magnitude float64) *Handle {
	h := &Handle{
		role:      role,
		origin:    origin,
		basis:     basis,
		magnitude: magnitude,
	}
	h.movement = geometry.ScaleVector(basis, magnitude)
	h.position = geometry.AddVectors(origin, h.movement)
	return h
}

// Role returns what the handle controls
func (h *Handle) Role() Role { return h.role }

// Origin returns the position the movement is measured from
func (h *Handle) Origin() geometry.Coordinate { return h.origin }

// Basis returns the unit drag axis
func (h *Handle) Basis() geometry.Vector { return h.basis }

// Magnitude returns the signed distance along the basis
func (h *Handle) Magnitude() float64 { return h.magnitude }

// MovementVector returns basis * magnitude
func (h *Handle) MovementVector() geometry.Vector { return h.movement }

// Geometry returns the current position of the handle
func (h *Handle) Geometry() geometry.Coordinate { return h.position }

// Segment returns the reference segment a candidate handle was proposed for
func (h *Handle) Segment() geometry.Segment { return h.segment }

// Length returns the distance between origin and position
func (h *Handle) Length() float64 { return h.movement.Norm() }

// Dragging reports whether a drag is in progress
func (h *Handle) Dragging() bool { return h.dragging }

// SetMagnitude moves the handle to magnitude units along its basis
func (h *Handle) SetMagnitude(m float64) {
	h.magnitude = m
	movement := geometry.ScaleVector(h.basis, m)
	changed := movement != h.movement
	h.movement = movement
	h.position = geometry.AddVectors(h.origin, h.movement)

	if changed {
		h.movementChanged.emit(h)
	}
	h.geometryChanged.emit(h)
}

// UpdateLocation re-anchors the handle so that it sits at c without changing
// its movement: the origin becomes c - movement.
func (h *Handle) UpdateLocation(c geometry.Coordinate) {
	h.origin = geometry.SubtractVectors(c, h.movement)
	h.position = geometry.AddVectors(h.origin, h.movement)
	h.geometryChanged.emit(h)
}

// OnMovementChange registers fn to be called whenever the movement vector
// changes. Returns a function that removes the registration.
func (h *Handle) OnMovementChange(fn func(*Handle)) func() {
	return h.movementChanged.connect(fn)
}

// OnGeometryChange registers fn to be called whenever the position changes.
// Returns a function that removes the registration.
func (h *Handle) OnGeometryChange(fn func(*Handle)) func() {
	return h.geometryChanged.connect(fn)
}

// HandleDown starts a drag at the event's model coordinate
func (h *Handle) HandleDown(ev PointerEvent) {
	h.dragging = true
	h.last = ev.Coordinate
}

// HandleDrag adds the pointer delta since the previous event to the
// magnitude. Each delta component is negated when the matching basis
// component is negative and the two are summed; this approximates a
// projection onto the basis and is exact only for axis-aligned bases.
func (h *Handle) HandleDrag(ev PointerEvent) {
	if !h.dragging {
		return
	}

	deltaX := ev.Coordinate.X - h.last.X
	deltaY := ev.Coordinate.Y - h.last.Y
	h.last = ev.Coordinate

	if h.basis.X < 0 {
		deltaX = -deltaX
	}
	if h.basis.Y < 0 {
		deltaY = -deltaY
	}

	h.SetMagnitude(h.magnitude + deltaX + deltaY)
}

// HandleUp ends the drag
func (h *Handle) HandleUp(ev PointerEvent) {
	h.dragging = false
}
