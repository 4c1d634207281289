package touchdraw

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// ErrNoSource is returned by New when neither a combined source nor a
// reference/destination pair is configured
var ErrNoSource = errors.New("touchdraw: a source or a reference and destination source pair is required")

// Defaults for the candidate search
const (
	DefaultBucketSize         = 100.0   // Screen pixels per deduplication bucket
	DefaultFocusFraction      = 1.0 / 8 // Focus region half-size relative to the view diagonal
	DefaultMinSegmentFraction = 0.1     // Minimum focus-cropped diagonal relative to the view diagonal
	DefaultHitTolerance       = 16.0    // Screen pixels around a handle that count as a hit
)

// Options configures an Interaction
type Options struct {
	// Source is used both as reference and destination. Ignored when
	// ReferenceSource and DestinationSource are set.
	Source Source

	ReferenceSource   ReferenceSource
	DestinationSource DestinationSource

	// Units maps unit names to meters per unit; DefaultUnits when nil.
	Units UnitTable

	// Unit is the unit selected for dimension overlays; DefaultUnit when
	// empty.
	Unit string

	BucketSize         float64
	FocusFraction      float64
	MinSegmentFraction float64
	HitTolerance       float64

	// Logger receives state transitions; discarded when nil.
	Logger *log.Logger
}

// resolve fills in defaults and validates the options
func (o Options) resolve() (Options, error) {
	if o.ReferenceSource == nil || o.DestinationSource == nil {
		if o.Source == nil {
			return o, ErrNoSource
		}
		o.ReferenceSource = o.Source
		o.DestinationSource = o.Source
	}

	if o.Units == nil {
		o.Units = DefaultUnits
	}
	if err := o.Units.Validate(); err != nil {
		return o, fmt.Errorf("touchdraw: %w", err)
	}
	if o.Unit == "" {
		o.Unit = DefaultUnit
	}
	if _, err := o.Units.Factor(o.Unit); err != nil {
		return o, fmt.Errorf("touchdraw: default unit: %w", err)
	}

	if o.BucketSize <= 0 {
		o.BucketSize = DefaultBucketSize
	}
	if o.FocusFraction <= 0 {
		o.FocusFraction = DefaultFocusFraction
	}
	if o.MinSegmentFraction <= 0 {
		o.MinSegmentFraction = DefaultMinSegmentFraction
	}
	if o.HitTolerance <= 0 {
		o.HitTolerance = DefaultHitTolerance
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o, nil
}
