package touchdraw

import (
	"log"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// State is the interaction state
type State int

const (
	StateProposingHandles State = iota // Candidate handles are offered
	StateDrawing                       // A draft is being shaped
)

func (s State) String() string {
	switch s {
	case StateProposingHandles:
		return "proposing-handles"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// EventType identifies a DrawEvent
type EventType int

const (
	DrawStart EventType = iota
	DrawEnd
	DrawAbort
)

func (t EventType) String() string {
	switch t {
	case DrawStart:
		return "drawstart"
	case DrawEnd:
		return "drawend"
	case DrawAbort:
		return "drawabort"
	default:
		return "unknown"
	}
}

// DrawEvent is emitted when a draft starts, is committed or is aborted. The
// feature is the draft's live feature.
type DrawEvent struct {
	Type    EventType
	Feature *geojson.Feature
}

// Interaction turns pointer input into new features. While proposing it
// offers candidate handles next to the reference geometry around the view
// center; grabbing one starts a draft, and committing the draft adds it to the
// destination.
type Interaction struct {
	reference   ReferenceSource
	destination DestinationSource
	finder      *CandidateFinder

	units        UnitTable
	unit         string
	hitTolerance float64
	logger       *log.Logger

	active bool
	state  State
	view   MapView
	draft  *Draft
	handle *Handle

	events signal[DrawEvent]
}

// New creates an active interaction in the proposing state
func New(opts Options) (*Interaction, error) {
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	return &Interaction{
		reference:   opts.ReferenceSource,
		destination: opts.DestinationSource,
		finder: NewCandidateFinder(opts.ReferenceSource, FinderConfig{
			BucketSize:         opts.BucketSize,
			FocusFraction:      opts.FocusFraction,
			MinSegmentFraction: opts.MinSegmentFraction,
		}),
		units:        opts.Units,
		unit:         opts.Unit,
		hitTolerance: opts.HitTolerance,
		logger:       opts.Logger,
		active:       true,
		state:        StateProposingHandles,
	}, nil
}

// State returns the current state
func (i *Interaction) State() State { return i.state }

// Draft returns the active draft, nil while proposing
func (i *Interaction) Draft() *Draft { return i.draft }

// Active reports whether the interaction reacts to input
func (i *Interaction) Active() bool { return i.active }

// Finder returns the candidate finder
func (i *Interaction) Finder() *CandidateFinder { return i.finder }

// Reference returns the source candidates are proposed from
func (i *Interaction) Reference() ReferenceSource { return i.reference }

// Destination returns the source committed drafts are added to
func (i *Interaction) Destination() DestinationSource { return i.destination }

// Candidates returns the proposed handles. Empty while drawing or inactive.
func (i *Interaction) Candidates() []*Handle {
	if !i.active || i.state != StateProposingHandles {
		return nil
	}
	return i.finder.Candidates()
}

// Highlighted returns the segments with a proposed handle. Empty while
// drawing or inactive.
func (i *Interaction) Highlighted() []geometry.Segment {
	if !i.active || i.state != StateProposingHandles {
		return nil
	}
	return i.finder.Highlighted()
}

// Unit returns the unit new drafts display
func (i *Interaction) Unit() string { return i.unit }

// Units returns the unit table
func (i *Interaction) Units() UnitTable { return i.units }

// SetUnit selects the display unit for new drafts and the active one
func (i *Interaction) SetUnit(name string) error {
	if _, err := i.units.Factor(name); err != nil {
		return err
	}
	i.unit = name
	if i.draft != nil {
		return i.draft.SetUnit(name)
	}
	return nil
}

// On subscribes fn to draw events. Returns a function removing the
// subscription.
func (i *Interaction) On(fn func(DrawEvent)) func() {
	return i.events.connect(fn)
}

// Render is called once per frame with the current view. It refreshes the
// candidate handles when the view or the reference content changed.
func (i *Interaction) Render(view MapView) {
	i.view = view
	if !i.active || i.state != StateProposingHandles {
		return
	}
	if i.finder.Update(view) {
		i.logger.Printf("proposing %d handles", len(i.finder.Candidates()))
	}
}

// SetActive enables or disables the interaction. Deactivating aborts an
// active draft.
func (i *Interaction) SetActive(active bool) {
	if i.active == active {
		return
	}
	if !active {
		i.AbortDrawing()
	}
	i.active = active
	i.finder.Invalidate()
}

// AbortDrawing discards the active draft. Does nothing while proposing.
func (i *Interaction) AbortDrawing() {
	if i.state != StateDrawing {
		return
	}
	i.finish(DrawAbort, i.draft.Feature())
}

// PointerDown grabs the handle under the pointer. While proposing a grab
// starts a draft around the candidate. Returns true when the event was
// consumed.
func (i *Interaction) PointerDown(ev PointerEvent) bool {
	if !i.active || i.view == nil {
		return false
	}

	switch i.state {
	case StateProposingHandles:
		h := i.finder.HandleAtPixel(i.view, ev.Pixel, i.hitTolerance)
		if h == nil {
			return false
		}
		h.HandleDown(ev)

		draft, err := NewDraft(h.Segment(), h, i.units, i.unit)
		if err != nil {
			i.logger.Printf("cannot start draft: %v", err)
			h.HandleUp(ev)
			return false
		}
		i.start(draft, h)
		return true

	case StateDrawing:
		h := closestHandle(i.view, i.draft.Handles(), ev.Pixel, i.hitTolerance)
		if h == nil {
			return false
		}
		h.HandleDown(ev)
		i.handle = h
		return true
	}
	return false
}

// PointerDrag forwards the event to the grabbed handle
func (i *Interaction) PointerDrag(ev PointerEvent) bool {
	if !i.active || i.state != StateDrawing || i.handle == nil {
		return false
	}
	i.handle.HandleDrag(ev)
	return true
}

// PointerUp releases the grabbed handle
func (i *Interaction) PointerUp(ev PointerEvent) bool {
	if !i.active || i.state != StateDrawing || i.handle == nil {
		return false
	}
	i.handle.HandleUp(ev)
	i.handle = nil
	return true
}

// Confirm commits the active draft
func (i *Interaction) Confirm() {
	if i.draft != nil {
		i.draft.Confirm()
	}
}

// Cancel aborts the active draft through its cancel control
func (i *Interaction) Cancel() {
	if i.draft != nil {
		i.draft.Cancel()
	}
}

func (i *Interaction) start(draft *Draft, h *Handle) {
	i.draft = draft
	i.handle = h
	i.state = StateDrawing
	i.finder.Invalidate()

	draft.OnCommit(i.commit)
	draft.OnAbort(func() {
		i.finish(DrawAbort, draft.Feature())
	})

	i.logger.Printf("%v: draft on spine %v", StateDrawing, draft.Spine())
	i.events.emit(DrawEvent{Type: DrawStart, Feature: draft.Feature()})
}

func (i *Interaction) commit(f *geojson.Feature) {
	i.destination.AddFeature(f)
	i.finish(DrawEnd, f)
}

func (i *Interaction) finish(t EventType, f *geojson.Feature) {
	i.draft.CancelDraft()
	i.draft = nil
	i.handle = nil
	i.state = StateProposingHandles
	i.finder.Invalidate()

	i.logger.Printf("%v: %v", StateProposingHandles, t)
	i.events.emit(DrawEvent{Type: t, Feature: f})
}
