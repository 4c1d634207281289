package touchdraw

import (
	"math"
	"testing"

	"github.com/philipparndt/touchdraw/pkg/geometry"
)

func coordinatesEqual(a, b geometry.Coordinate) bool {
	return math.Abs(a.X-b.X) < 1e-10 && math.Abs(a.Y-b.Y) < 1e-10
}

func TestHandleGeometry(t *testing.T) {
	h := NewHandle(RoleCandidate, geometry.NewCoordinate(1, 1), geometry.NewCoordinate(0, 1), 2)

	if !coordinatesEqual(h.Geometry(), geometry.NewCoordinate(1, 3)) {
		t.Errorf("Geometry failed: expected (1, 3), got %v", h.Geometry())
	}
	if math.Abs(h.Length()-2) > 1e-10 {
		t.Errorf("Length failed: expected 2, got %v", h.Length())
	}

	h.SetMagnitude(-4)
	if !coordinatesEqual(h.MovementVector(), geometry.NewCoordinate(0, -4)) {
		t.Errorf("MovementVector failed: expected (0, -4), got %v", h.MovementVector())
	}
	if !coordinatesEqual(h.Geometry(), geometry.NewCoordinate(1, -3)) {
		t.Errorf("Geometry failed: expected (1, -3), got %v", h.Geometry())
	}
}

func TestHandleSignals(t *testing.T) {
	h := NewHandle(RoleScale, geometry.NewCoordinate(0, 0), geometry.NewCoordinate(1, 0), 0)

	movements, geometries := 0, 0
	h.OnMovementChange(func(*Handle) { movements++ })
	h.OnGeometryChange(func(*Handle) { geometries++ })

	h.SetMagnitude(1)
	if movements != 1 || geometries != 1 {
		t.Errorf("SetMagnitude: expected 1/1 notifications, got %d/%d", movements, geometries)
	}

	// Same magnitude leaves the movement vector as it is
	h.SetMagnitude(1)
	if movements != 1 || geometries != 2 {
		t.Errorf("SetMagnitude unchanged: expected 1/2 notifications, got %d/%d", movements, geometries)
	}

	h.UpdateLocation(geometry.NewCoordinate(5, 5))
	if movements != 1 || geometries != 3 {
		t.Errorf("UpdateLocation: expected 1/3 notifications, got %d/%d", movements, geometries)
	}
	if !coordinatesEqual(h.Origin(), geometry.NewCoordinate(4, 5)) {
		t.Errorf("UpdateLocation origin failed: expected (4, 5), got %v", h.Origin())
	}
	if !coordinatesEqual(h.Geometry(), geometry.NewCoordinate(5, 5)) {
		t.Errorf("UpdateLocation geometry failed: expected (5, 5), got %v", h.Geometry())
	}
	if h.Magnitude() != 1 {
		t.Errorf("UpdateLocation changed magnitude to %v", h.Magnitude())
	}
}

func TestHandleDrag(t *testing.T) {
	tests := []struct {
		name  string
		basis geometry.Vector
		to    geometry.Coordinate
		want  float64
	}{
		{"positive x axis", geometry.NewCoordinate(1, 0), geometry.NewCoordinate(3, 0), 3},
		{"negative x axis", geometry.NewCoordinate(-1, 0), geometry.NewCoordinate(3, 0), -3},
		{"negative y axis", geometry.NewCoordinate(0, -1), geometry.NewCoordinate(0, 2), -2},
		// Both components are summed, the drag is not a projection
		{"diagonal", geometry.NewCoordinate(math.Sqrt2 / 2, -math.Sqrt2 / 2), geometry.NewCoordinate(1, 2), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandle(RoleScale, geometry.NewCoordinate(0, 0), tt.basis, 0)
			h.HandleDown(PointerEvent{Coordinate: geometry.NewCoordinate(0, 0)})
			if !h.Dragging() {
				t.Fatal("expected handle to be dragging")
			}

			// Split the drag into two steps; deltas accumulate
			half := geometry.ScaleVector(tt.to, 0.5)
			h.HandleDrag(PointerEvent{Coordinate: half})
			h.HandleDrag(PointerEvent{Coordinate: tt.to})
			h.HandleUp(PointerEvent{Coordinate: tt.to})

			if math.Abs(h.Magnitude()-tt.want) > 1e-10 {
				t.Errorf("expected magnitude %v, got %v", tt.want, h.Magnitude())
			}
			if h.Dragging() {
				t.Error("expected drag to end")
			}
		})
	}
}

func TestHandleDragWithoutDown(t *testing.T) {
	h := NewHandle(RoleScale, geometry.NewCoordinate(0, 0), geometry.NewCoordinate(1, 0), 0)
	h.HandleDrag(PointerEvent{Coordinate: geometry.NewCoordinate(10, 0)})

	if h.Magnitude() != 0 {
		t.Errorf("drag without down changed magnitude to %v", h.Magnitude())
	}
}

func TestSignalDisconnect(t *testing.T) {
	var s signal[int]
	var got []int

	first := s.connect(func(v int) { got = append(got, v) })
	s.connect(func(v int) { got = append(got, v*10) })

	s.emit(1)
	first()
	first()
	s.emit(2)

	want := []int{1, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
	if s.count() != 1 {
		t.Errorf("expected 1 listener, got %d", s.count())
	}
}

func TestSignalDisconnectDuringEmit(t *testing.T) {
	var s signal[int]
	calls := 0

	var disconnect func()
	disconnect = s.connect(func(int) {
		calls++
		disconnect()
	})
	s.connect(func(int) { calls++ })

	s.emit(0)
	if calls != 2 {
		t.Errorf("expected both listeners of the snapshot to run, got %d calls", calls)
	}
	s.emit(0)
	if calls != 3 {
		t.Errorf("expected only the remaining listener to run, got %d calls", calls)
	}
}

func TestUnitTable(t *testing.T) {
	factor, err := DefaultUnits.Factor("ft")
	if err != nil {
		t.Fatalf("Factor failed: %v", err)
	}
	if factor != 0.3048 {
		t.Errorf("expected 0.3048, got %v", factor)
	}

	if _, err := DefaultUnits.Factor("furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}

	names := DefaultUnits.Names()
	if names[0] != "cm" || names[len(names)-1] != "m" {
		t.Errorf("expected names sorted by factor, got %v", names)
	}

	if err := (UnitTable{"m": 1, "bad": 0}).Validate(); err == nil {
		t.Error("expected validation error for zero factor")
	}
}
