package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/touchdraw/internal/config"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
	"github.com/spf13/cobra"
)

// viewportFlags describe a headless view. Without a resolution the view is
// fitted to the reference content.
type viewportFlags struct {
	centerX    float64
	centerY    float64
	resolution float64
	width      float64
	height     float64
	rotation   float64
}

func (v *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&v.centerX, "center-x", 0, "View center X (requires --resolution)")
	cmd.Flags().Float64Var(&v.centerY, "center-y", 0, "View center Y (requires --resolution)")
	cmd.Flags().Float64Var(&v.resolution, "resolution", 0, "Map units per pixel (default: fit the reference)")
	cmd.Flags().Float64Var(&v.width, "width", 800, "Viewport width in pixels")
	cmd.Flags().Float64Var(&v.height, "height", 600, "Viewport height in pixels")
	cmd.Flags().Float64Var(&v.rotation, "rotation", 0, "View rotation in degrees, counter-clockwise")
}

func (v *viewportFlags) view(store *source.Store) (*mapview.View, error) {
	if v.width <= 0 || v.height <= 0 {
		return nil, fmt.Errorf("invalid viewport size %vx%v", v.width, v.height)
	}

	var view *mapview.View
	if v.resolution > 0 {
		view = mapview.New(geometry.NewCoordinate(v.centerX, v.centerY), v.resolution, v.width, v.height)
	} else {
		extent, ok := store.Extent()
		if !ok {
			return nil, fmt.Errorf("%s has no geometry to fit the view to, set --resolution", store.Name())
		}
		view = mapview.Fit(extent, v.width, v.height, 0)
	}
	view.SetRotation(v.rotation * math.Pi / 180)
	return view, nil
}

// session is a reference file loaded into an interaction that has rendered
// one frame of a headless view
type session struct {
	cfg         config.Config
	reference   *source.Store
	destination *source.Store
	view        *mapview.View
	interaction *touchdraw.Interaction
}

func openSession(path string, viewport *viewportFlags) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	reference := source.NewStore(path)
	if err := reference.LoadFile(path); err != nil {
		return nil, err
	}
	destination := source.NewStore("destination")

	view, err := viewport.view(reference)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	opts.ReferenceSource = reference
	opts.DestinationSource = destination
	opts.Logger = newLogger()

	interaction, err := touchdraw.New(opts)
	if err != nil {
		return nil, err
	}
	interaction.Render(view)

	return &session{
		cfg:         cfg,
		reference:   reference,
		destination: destination,
		view:        view,
		interaction: interaction,
	}, nil
}

// pointer builds a pointer event for a map coordinate
func (s *session) pointer(c geometry.Coordinate) touchdraw.PointerEvent {
	return touchdraw.PointerEvent{Coordinate: c, Pixel: s.view.PixelFromCoordinate(c)}
}

// nearestCandidate returns the proposed handle closest to c
func (s *session) nearestCandidate(c geometry.Coordinate) *touchdraw.Handle {
	var nearest *touchdraw.Handle
	best := math.Inf(1)
	for _, h := range s.interaction.Candidates() {
		if d := geometry.PlanarDistance(h.Geometry(), c); d < best {
			best = d
			nearest = h
		}
	}
	return nearest
}

// formatLength formats a length in map units, taken as meters, in the
// selected unit
func formatLength(s *session, meters float64) string {
	unit := s.interaction.Unit()
	return analysis.FormatMeasurement(meters, s.cfg.Units[unit], unit)
}
