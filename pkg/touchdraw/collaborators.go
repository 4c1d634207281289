// Package touchdraw implements a touch-oriented drawing interaction that
// creates quadrilateral features by dragging handles proposed next to
// existing reference geometry.
//
// The package is host agnostic: map view, feature stores and pointer input are
// consumed through the interfaces in this file, and everything the host has to
// draw (candidate handles, the live draft, dimension overlays) is exposed as
// plain values to be rendered each frame.
package touchdraw

import (
	"github.com/golang/geo/r2"
	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// ReferenceSource provides the features candidate handles snap to
type ReferenceSource interface {
	// FeaturesInExtent returns all features intersecting the extent.
	FeaturesInExtent(extent geometry.Extent) []*geojson.Feature

	// Revision returns a counter that changes whenever the content changes.
	Revision() uint64
}

// DestinationSource receives committed drafts
type DestinationSource interface {
	AddFeature(f *geojson.Feature)
	RemoveFeature(f *geojson.Feature) bool
}

// Source is a store used both as reference and as destination
type Source interface {
	ReferenceSource
	DestinationSource
}

// MapView converts between model coordinates and screen pixels
type MapView interface {
	// Extent returns the visible extent in model coordinates.
	Extent() geometry.Extent

	// PixelFromCoordinate returns the screen pixel of a model coordinate.
	PixelFromCoordinate(c geometry.Coordinate) r2.Point

	// CoordinateFromPixel returns the model coordinate of a screen pixel.
	CoordinateFromPixel(px r2.Point) geometry.Coordinate

	// Rotation returns the view rotation in radians.
	Rotation() float64
}

// PointerEvent is a pointer down, drag or up event
type PointerEvent struct {
	Coordinate geometry.Coordinate // Model coordinate of the pointer
	Pixel      r2.Point            // Screen position of the pointer
}
