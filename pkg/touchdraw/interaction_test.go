package touchdraw

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/source"
)

type interactionFixture struct {
	interaction *Interaction
	reference   *source.Store
	destination *source.Store
	view        *mapview.View
	events      []DrawEvent
}

func newInteractionFixture(t *testing.T) *interactionFixture {
	t.Helper()
	fx := &interactionFixture{
		reference:   source.NewStore("reference"),
		destination: source.NewStore("destination"),
		view:        testView(),
	}
	fx.reference.AddFeature(line([]float64{0, -10}, []float64{0, 10}))

	interaction, err := New(Options{
		ReferenceSource:   fx.reference,
		DestinationSource: fx.destination,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	interaction.On(func(ev DrawEvent) { fx.events = append(fx.events, ev) })
	interaction.Render(fx.view)

	fx.interaction = interaction
	return fx
}

// pointer builds an event for a model coordinate
func (fx *interactionFixture) pointer(x, y float64) PointerEvent {
	c := geometry.NewCoordinate(x, y)
	return PointerEvent{Coordinate: c, Pixel: fx.view.PixelFromCoordinate(c)}
}

func (fx *interactionFixture) eventTypes() []EventType {
	types := make([]EventType, len(fx.events))
	for i, ev := range fx.events {
		types[i] = ev.Type
	}
	return types
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
	if _, err := New(Options{ReferenceSource: source.NewStore("reference")}); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource without destination, got %v", err)
	}

	if _, err := New(Options{Source: source.NewStore("combined"), Unit: "furlong"}); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}

	combined := source.NewStore("combined")
	interaction, err := New(Options{Source: combined})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if interaction.State() != StateProposingHandles || !interaction.Active() {
		t.Errorf("expected active interaction proposing handles, got %v", interaction.State())
	}
	if interaction.Reference() != combined || interaction.Destination() != combined {
		t.Error("expected combined source to serve as reference and destination")
	}
}

func TestInteractionProposesCandidates(t *testing.T) {
	fx := newInteractionFixture(t)

	if len(fx.interaction.Candidates()) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(fx.interaction.Candidates()))
	}
	if len(fx.interaction.Highlighted()) != 1 {
		t.Errorf("expected 1 highlighted segment, got %d", len(fx.interaction.Highlighted()))
	}

	if fx.interaction.PointerDown(fx.pointer(10, 10)) {
		t.Error("expected pointer down away from candidates to be ignored")
	}
	if fx.interaction.State() != StateProposingHandles {
		t.Errorf("expected to keep proposing, got %v", fx.interaction.State())
	}
}

func TestInteractionDrawEndToEnd(t *testing.T) {
	fx := newInteractionFixture(t)

	if !fx.interaction.PointerDown(fx.pointer(0, 0)) {
		t.Fatal("expected pointer down on the candidate to start drawing")
	}
	if fx.interaction.State() != StateDrawing || fx.interaction.Draft() == nil {
		t.Fatalf("expected drawing state with a draft, got %v", fx.interaction.State())
	}
	if len(fx.interaction.Candidates()) != 0 {
		t.Error("expected no candidates while drawing")
	}

	fx.interaction.PointerDrag(fx.pointer(1.5, 0))
	fx.interaction.PointerDrag(fx.pointer(3, 0))
	fx.interaction.PointerUp(fx.pointer(3, 0))

	feature := fx.interaction.Draft().Feature()
	fx.interaction.Confirm()

	if fx.interaction.State() != StateProposingHandles || fx.interaction.Draft() != nil {
		t.Fatalf("expected to return to proposing, got %v", fx.interaction.State())
	}
	if types := fx.eventTypes(); len(types) != 2 || types[0] != DrawStart || types[1] != DrawEnd {
		t.Fatalf("expected drawstart and drawend, got %v", types)
	}
	if fx.events[0].Feature != feature || fx.events[1].Feature != feature {
		t.Error("expected events to carry the draft feature")
	}

	features := fx.destination.Features()
	if len(features) != 1 {
		t.Fatalf("expected 1 feature in the destination, got %d", len(features))
	}
	if fx.reference.Len() != 1 {
		t.Errorf("reference store changed to %d features", fx.reference.Len())
	}

	g := features[0].Geometry
	if g.Type != geojson.GeometryPolygon || len(g.Polygon) != 1 || len(g.Polygon[0]) != 5 {
		t.Fatalf("expected polygon with one closed 4-vertex ring, got %v", g)
	}
	ring := source.Coordinates(g.Polygon[0])
	if ring[0] != ring[4] {
		t.Errorf("expected closed ring, got %v", ring)
	}

	near := geometry.NewSegment(ring[0], ring[1])
	far := geometry.NewSegment(ring[3], ring[2])
	shift := geometry.NewCoordinate(3, 0)
	if !coordinatesEqual(far[0], near[0].Add(shift)) || !coordinatesEqual(far[1], near[1].Add(shift)) {
		t.Errorf("expected far edge %v to be near edge %v moved by %v", far, near, shift)
	}
}

func TestInteractionDragsDraftHandles(t *testing.T) {
	fx := newInteractionFixture(t)

	fx.interaction.PointerDown(fx.pointer(0, 0))
	fx.interaction.PointerDrag(fx.pointer(3, 0))
	fx.interaction.PointerUp(fx.pointer(3, 0))

	if fx.interaction.PointerDrag(fx.pointer(4, 0)) {
		t.Error("expected drag without a grabbed handle to be ignored")
	}

	// Grab the scale handle again on the far edge and widen the draft
	if !fx.interaction.PointerDown(fx.pointer(3, 0)) {
		t.Fatal("expected to grab the scale handle")
	}
	fx.interaction.PointerDrag(fx.pointer(5, 0))
	fx.interaction.PointerUp(fx.pointer(5, 0))

	d := fx.interaction.Draft()
	if got := d.ScaleHandle().Length(); got < 5-1e-10 || got > 5+1e-10 {
		t.Errorf("expected draft width 5, got %v", got)
	}

	if fx.interaction.PointerDown(fx.pointer(-15, 15)) {
		t.Error("expected pointer down away from the draft handles to be ignored")
	}
}

func TestInteractionGrabsEveryDraftHandle(t *testing.T) {
	fx := newInteractionFixture(t)

	fx.interaction.PointerDown(fx.pointer(0, 0))
	fx.interaction.PointerDrag(fx.pointer(3, 0))
	fx.interaction.PointerUp(fx.pointer(3, 0))
	d := fx.interaction.Draft()

	drag := func(h *Handle, dx, dy float64) {
		t.Helper()
		from := h.Geometry()
		if !fx.interaction.PointerDown(fx.pointer(from.X, from.Y)) {
			t.Fatalf("expected to grab the %v handle at %v", h.Role(), from)
		}
		if fx.interaction.handle != h {
			t.Fatalf("expected the %v handle to be grabbed, got %v", h.Role(), fx.interaction.handle.Role())
		}
		fx.interaction.PointerDrag(fx.pointer(from.X+dx, from.Y+dy))
		fx.interaction.PointerUp(fx.pointer(from.X+dx, from.Y+dy))
	}

	drag(d.XMoveHandle(), -2, 0)
	if got := d.XMoveHandle().MovementVector(); !coordinatesEqual(got, geometry.NewCoordinate(-2, 0)) {
		t.Errorf("expected x-move movement (-2, 0), got %v", got)
	}

	drag(d.YMoveHandle(), 0, 4)
	if got := d.YMoveHandle().MovementVector(); !coordinatesEqual(got, geometry.NewCoordinate(0, 4)) {
		t.Errorf("expected y-move movement (0, 4), got %v", got)
	}
	if got := d.XMoveHandle().MovementVector(); !coordinatesEqual(got, geometry.NewCoordinate(-2, 0)) {
		t.Errorf("x-move movement changed to %v", got)
	}

	drag(d.ScaleHandle(), 1, 0)
	if got := d.ScaleHandle().Length(); got < 4-1e-10 || got > 4+1e-10 {
		t.Errorf("expected draft width 4, got %v", got)
	}

	spine := d.Spine()
	q := d.Quad()
	shift := geometry.NewCoordinate(-2, 4)
	if !coordinatesEqual(q[0], spine[0].Add(shift)) || !coordinatesEqual(q[1], spine[1].Add(shift)) {
		t.Errorf("expected spine edge moved by %v, got %v", shift, q)
	}
	if fx.interaction.State() != StateDrawing {
		t.Errorf("expected to keep drawing, got %v", fx.interaction.State())
	}
}

func TestAbortDrawing(t *testing.T) {
	fx := newInteractionFixture(t)

	fx.interaction.AbortDrawing()
	if len(fx.events) != 0 || fx.interaction.State() != StateProposingHandles {
		t.Fatalf("expected AbortDrawing without a draft to do nothing, got %v", fx.eventTypes())
	}

	fx.interaction.PointerDown(fx.pointer(0, 0))
	fx.interaction.PointerDrag(fx.pointer(3, 0))
	d := fx.interaction.Draft()

	fx.interaction.AbortDrawing()
	fx.interaction.AbortDrawing()

	if fx.interaction.State() != StateProposingHandles || fx.interaction.Draft() != nil {
		t.Errorf("expected to return to proposing, got %v", fx.interaction.State())
	}
	if types := fx.eventTypes(); len(types) != 2 || types[1] != DrawAbort {
		t.Errorf("expected drawstart and one drawabort, got %v", types)
	}
	if fx.destination.Len() != 0 {
		t.Errorf("expected nothing committed, got %d features", fx.destination.Len())
	}
	if !d.Closed() {
		t.Error("expected the draft to be torn down")
	}

	// The candidate set is rebuilt on the next frame
	fx.interaction.Render(fx.view)
	if len(fx.interaction.Candidates()) != 1 {
		t.Errorf("expected candidates again, got %d", len(fx.interaction.Candidates()))
	}
	if fx.interaction.Candidates()[0].Role() != RoleCandidate {
		t.Error("expected a fresh candidate handle")
	}
}

func TestInteractionCancelControl(t *testing.T) {
	fx := newInteractionFixture(t)
	fx.interaction.PointerDown(fx.pointer(0, 0))
	fx.interaction.PointerUp(fx.pointer(0, 0))

	fx.interaction.Cancel()
	if types := fx.eventTypes(); len(types) != 2 || types[1] != DrawAbort {
		t.Errorf("expected drawabort, got %v", types)
	}
	if fx.interaction.State() != StateProposingHandles {
		t.Errorf("expected proposing, got %v", fx.interaction.State())
	}
}

func TestSetActive(t *testing.T) {
	fx := newInteractionFixture(t)
	fx.interaction.PointerDown(fx.pointer(0, 0))

	fx.interaction.SetActive(false)
	if types := fx.eventTypes(); len(types) != 2 || types[1] != DrawAbort {
		t.Errorf("expected deactivation to abort the draft, got %v", types)
	}
	if fx.interaction.PointerDown(fx.pointer(0, 0)) {
		t.Error("expected inactive interaction to ignore input")
	}
	fx.interaction.Render(fx.view)
	if len(fx.interaction.Candidates()) != 0 {
		t.Error("expected no candidates while inactive")
	}

	fx.interaction.SetActive(true)
	fx.interaction.Render(fx.view)
	if len(fx.interaction.Candidates()) != 1 {
		t.Errorf("expected candidates after reactivation, got %d", len(fx.interaction.Candidates()))
	}
}

func TestInteractionCombinedSource(t *testing.T) {
	store := source.NewStore("combined")
	store.AddFeature(line([]float64{0, -10}, []float64{0, 10}))

	var logs bytes.Buffer
	interaction, err := New(Options{Source: store, Unit: "ft", Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	view := testView()
	interaction.Render(view)

	c := geometry.NewCoordinate(0, 0)
	interaction.PointerDown(PointerEvent{Coordinate: c, Pixel: view.PixelFromCoordinate(c)})
	if interaction.Draft().Unit() != "ft" {
		t.Errorf("expected draft in ft, got %q", interaction.Draft().Unit())
	}
	interaction.Draft().Overlay(RoleScale).SetText("10")
	interaction.Confirm()

	if store.Len() != 2 {
		t.Fatalf("expected the committed draft in the combined store, got %d features", store.Len())
	}

	// The committed polygon is reference geometry now
	interaction.Render(view)
	if len(interaction.Candidates()) < 2 {
		t.Errorf("expected candidates on the new polygon, got %d", len(interaction.Candidates()))
	}

	if !strings.Contains(logs.String(), "drawend") {
		t.Errorf("expected state transitions to be logged, got %q", logs.String())
	}
}

func TestInteractionSetUnit(t *testing.T) {
	fx := newInteractionFixture(t)
	if err := fx.interaction.SetUnit("furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}

	fx.interaction.PointerDown(fx.pointer(0, 0))
	if err := fx.interaction.SetUnit("cm"); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}
	if fx.interaction.Draft().Unit() != "cm" || fx.interaction.Unit() != "cm" {
		t.Error("expected the unit to apply to the interaction and the draft")
	}
}
