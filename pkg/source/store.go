// Package source provides an in-memory, revisioned GeoJSON feature store used
// both as the reference layer that candidate handles snap to and as the
// destination for committed drafts.
package source

import (
	"sync"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

// Store holds a set of features. Every mutation bumps the revision counter so
// consumers can detect changes with a single integer comparison.
type Store struct {
	mu       sync.RWMutex
	name     string
	features []*geojson.Feature
	extents  map[*geojson.Feature]geometry.Extent
	revision uint64
}

// NewStore creates a new empty store
func NewStore(name string) *Store {
	return &Store{
		name:     name,
		features: make([]*geojson.Feature, 0),
		extents:  make(map[*geojson.Feature]geometry.Extent),
	}
}

// Name returns the store name
func (s *Store) Name() string {
	return s.name
}

// AddFeature adds a feature to the store
func (s *Store) AddFeature(f *geojson.Feature) {
	if f == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(f)
	s.revision++
}

// AddFeatures adds multiple features with a single revision bump
func (s *Store) AddFeatures(features []*geojson.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range features {
		if f != nil {
			s.addLocked(f)
		}
	}
	s.revision++
}

func (s *Store) addLocked(f *geojson.Feature) {
	s.features = append(s.features, f)
	if extent, ok := GeometryExtent(f.Geometry); ok {
		s.extents[f] = extent
	}
}

// RemoveFeature removes one occurrence of a feature. Returns false if it was
// not in the store.
func (s *Store) RemoveFeature(f *geojson.Feature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.features {
		if existing == f {
			s.features = append(s.features[:i], s.features[i+1:]...)
			if !s.containsLocked(f) {
				delete(s.extents, f)
			}
			s.revision++
			return true
		}
	}
	return false
}

func (s *Store) containsLocked(f *geojson.Feature) bool {
	for _, existing := range s.features {
		if existing == f {
			return true
		}
	}
	return false
}

// Replace swaps the whole content of the store
func (s *Store) Replace(features []*geojson.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = make([]*geojson.Feature, 0, len(features))
	s.extents = make(map[*geojson.Feature]geometry.Extent, len(features))
	for _, f := range features {
		if f != nil {
			s.addLocked(f)
		}
	}
	s.revision++
}

// Clear removes all features
func (s *Store) Clear() {
	s.Replace(nil)
}

// Revision returns a counter that changes whenever the content changes
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Len returns the number of features
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

// Features returns a copy of the feature list
func (s *Store) Features() []*geojson.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*geojson.Feature, len(s.features))
	copy(result, s.features)
	return result
}

// FeaturesInExtent returns the features whose bounding box intersects e.
// Features without coordinates are never returned.
func (s *Store) FeaturesInExtent(e geometry.Extent) []*geojson.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*geojson.Feature, 0)
	for _, f := range s.features {
		extent, ok := s.extents[f]
		if !ok {
			continue
		}
		if extent.Intersects(e) {
			result = append(result, f)
		}
	}
	return result
}

// Extent returns the bounding box of all features
func (s *Store) Extent() (geometry.Extent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total geometry.Extent
	found := false
	for _, extent := range s.extents {
		if !found {
			total = extent
			found = true
			continue
		}
		total = total.Union(extent)
	}
	return total, found
}
