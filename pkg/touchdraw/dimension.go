package touchdraw

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/philipparndt/touchdraw/pkg/geometry"
)

var decimalPattern = regexp.MustCompile(`^-?\d*\.?\d+$`)

// ErrInvalidDimension is returned by ParseDimension for text that is not a
// signed decimal
var ErrInvalidDimension = errors.New("touchdraw: not a signed decimal")

// DimensionOverlay is the editable length label of one draft handle. It sits
// on the edge the handle controls: the side edge for the scale handle and the
// guide line for the move handles.
type DimensionOverlay struct {
	draft  *Draft
	handle *Handle
	edge   geometry.Segment

	text    string
	invalid bool
}

func newDimensionOverlay(draft *Draft, handle *Handle) *DimensionOverlay {
	return &DimensionOverlay{
		draft:  draft,
		handle: handle,
	}
}

// Handle returns the handle the overlay measures
func (o *DimensionOverlay) Handle() *Handle { return o.handle }

// Edge returns the segment the overlay is placed on
func (o *DimensionOverlay) Edge() geometry.Segment { return o.edge }

// Anchor returns the model coordinate the overlay is centered on
func (o *DimensionOverlay) Anchor() geometry.Coordinate { return o.edge.Midpoint() }

// Visible reports whether the host should show the overlay. Move overlays are
// hidden together with their guide line while the handle is at rest.
func (o *DimensionOverlay) Visible() bool {
	if o.handle.Role() == RoleScale {
		return true
	}
	return o.handle.Magnitude() != 0
}

// Rotation returns the on-screen angle of the overlay edge in degrees, folded
// into [0, 90) so the text never renders upside down.
func (o *DimensionOverlay) Rotation(view MapView) float64 {
	a := view.PixelFromCoordinate(o.edge[0])
	b := view.PixelFromCoordinate(o.edge[1])
	if a == b {
		return 0
	}
	deg := math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
	return foldAngle(deg)
}

func foldAngle(deg float64) float64 {
	return math.Mod(math.Mod(deg, 90)+90, 90)
}

// Value returns the handle length in the selected unit
func (o *DimensionOverlay) Value() float64 {
	return o.handle.Length() / o.draft.factor
}

// Text returns the label content. Rejected input is shown as typed until it
// is corrected or the handle moves.
func (o *DimensionOverlay) Text() string {
	if o.invalid {
		return o.text
	}
	return fmt.Sprintf("%.2f", o.Value())
}

// Invalid reports whether the last SetText was rejected
func (o *DimensionOverlay) Invalid() bool { return o.invalid }

// SetText parses s as a length in the selected unit and moves the handle so
// that it has that length. Returns false and flags the overlay when s is not a
// signed decimal; the handle is left alone in that case.
func (o *DimensionOverlay) SetText(s string) bool {
	if o.draft.closed {
		return false
	}
	desired, err := ParseDimension(s)
	if err != nil {
		o.text = s
		o.invalid = true
		return false
	}

	o.text = ""
	o.invalid = false

	magnitude := o.handle.Magnitude()
	length := o.handle.Length()
	if length == 0 {
		o.handle.SetMagnitude(desired * o.draft.factor)
	} else {
		o.handle.SetMagnitude(magnitude / length * desired * o.draft.factor)
	}
	return true
}

// ParseDimension parses a signed decimal such as "-1.5" or ".5". Exponents,
// thousands separators and trailing dots are rejected.
func ParseDimension(s string) (float64, error) {
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, s)
	}
	return strconv.ParseFloat(s, 64)
}

func (o *DimensionOverlay) reset() {
	o.text = ""
	o.invalid = false
}
