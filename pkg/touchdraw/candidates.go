package touchdraw

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/source"
)

// FinderConfig tunes the candidate search. Zero values select the defaults.
type FinderConfig struct {
	BucketSize         float64 // Screen pixels per deduplication bucket
	FocusFraction      float64 // Focus region half-size relative to the view diagonal
	MinSegmentFraction float64 // Minimum focus-cropped diagonal relative to the view diagonal
}

// CandidateFinder proposes handles next to reference segments that cross the
// center of the view. The proposal set is rebuilt from scratch whenever the
// visible extent or the reference revision changes.
type CandidateFinder struct {
	source ReferenceSource
	config FinderConfig

	valid        bool
	lastExtent   geometry.Extent
	lastRevision uint64

	handles     []*Handle
	highlighted []geometry.Segment
}

// NewCandidateFinder creates a finder reading from src
func NewCandidateFinder(src ReferenceSource, config FinderConfig) *CandidateFinder {
	if config.BucketSize <= 0 {
		config.BucketSize = DefaultBucketSize
	}
	if config.FocusFraction <= 0 {
		config.FocusFraction = DefaultFocusFraction
	}
	if config.MinSegmentFraction <= 0 {
		config.MinSegmentFraction = DefaultMinSegmentFraction
	}
	return &CandidateFinder{
		source: src,
		config: config,
	}
}

// Config returns the effective configuration
func (f *CandidateFinder) Config() FinderConfig {
	return f.config
}

// Invalidate forces a rebuild on the next Update
func (f *CandidateFinder) Invalidate() {
	f.valid = false
}

// Candidates returns the current proposals
func (f *CandidateFinder) Candidates() []*Handle {
	return f.handles
}

// Highlighted returns the visible part of every segment that got a proposal
func (f *CandidateFinder) Highlighted() []geometry.Segment {
	return f.highlighted
}

// HighlightFeature returns the highlighted segments as one MultiLineString
// feature, or nil when there are none.
func (f *CandidateFinder) HighlightFeature() *geojson.Feature {
	if len(f.highlighted) == 0 {
		return nil
	}
	lines := make([][][]float64, len(f.highlighted))
	for i, seg := range f.highlighted {
		lines[i] = source.Positions(seg[:])
	}
	return geojson.NewMultiLineStringFeature(lines...)
}

// Update rebuilds the proposals when the view extent or the reference
// revision changed since the last call. Returns true when it rebuilt. Cheap
// enough to be called every frame.
func (f *CandidateFinder) Update(view MapView) bool {
	extent := view.Extent()
	revision := f.source.Revision()

	if f.valid && extent == f.lastExtent && revision == f.lastRevision {
		return false
	}

	f.valid = true
	f.lastExtent = extent
	f.lastRevision = revision
	f.rebuild(view, extent)
	return true
}

func (f *CandidateFinder) rebuild(view MapView, extent geometry.Extent) {
	diagonal := geometry.ExtentDiagonal(extent)
	focus := geometry.BufferPoint(extent.Center(), diagonal*f.config.FocusFraction)
	minDiagonal := diagonal * f.config.MinSegmentFraction

	buckets := make(map[[2]int]bool)
	handles := make([]*Handle, 0)
	highlighted := make([]geometry.Segment, 0)

	for _, feature := range f.source.FeaturesInExtent(extent) {
		if feature == nil || !source.IsXY(feature.Geometry) {
			continue
		}

		for _, line := range source.Lines(feature.Geometry) {
			for i := 0; i+1 < len(line); i++ {
				seg := geometry.NewSegment(line[i], line[i+1])

				focused, ok := geometry.CropSegmentByExtent(seg, focus)
				if !ok {
					continue
				}
				// Segments that only graze the focus region are left out
				if geometry.ExtentDiagonal(focused.Extent()) < minDiagonal {
					continue
				}

				visible, ok := geometry.CropSegmentByExtent(seg, extent)
				if !ok {
					continue
				}

				midpoint := visible.Midpoint()
				key := bucketKey(view.PixelFromCoordinate(midpoint), f.config.BucketSize)
				if buckets[key] {
					continue
				}

				basis := geometry.OrthogonalBasisVector(midpoint, visible[1])
				if !geometry.IsFiniteVector(basis) {
					continue
				}

				buckets[key] = true
				h := NewHandle(RoleCandidate, midpoint, basis, 0)
				h.segment = seg
				handles = append(handles, h)
				highlighted = append(highlighted, visible)
			}
		}
	}

	f.handles = handles
	f.highlighted = highlighted
}

// HandleAtPixel returns the proposal closest to px within tolerance pixels
func (f *CandidateFinder) HandleAtPixel(view MapView, px r2.Point, tolerance float64) *Handle {
	return closestHandle(view, f.handles, px, tolerance)
}

func bucketKey(px r2.Point, size float64) [2]int {
	return [2]int{int(math.Floor(px.X / size)), int(math.Floor(px.Y / size))}
}

func closestHandle(view MapView, handles []*Handle, px r2.Point, tolerance float64) *Handle {
	var closest *Handle
	best := math.Inf(1)
	for _, h := range handles {
		d := view.PixelFromCoordinate(h.Geometry()).Sub(px).Norm()
		if d <= tolerance && d < best {
			best = d
			closest = h
		}
	}
	return closest
}
