package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/geometry"
)

func lineFeature(coords ...[]float64) *geojson.Feature {
	return geojson.NewLineStringFeature(coords)
}

func TestStoreRevision(t *testing.T) {
	store := NewStore("reference")
	if store.Revision() != 0 {
		t.Fatalf("expected revision 0, got %d", store.Revision())
	}

	f := lineFeature([]float64{0, 0}, []float64{10, 0})
	store.AddFeature(f)
	if store.Revision() != 1 {
		t.Errorf("expected revision 1 after add, got %d", store.Revision())
	}

	if !store.RemoveFeature(f) {
		t.Fatal("expected feature to be removed")
	}
	if store.Revision() != 2 {
		t.Errorf("expected revision 2 after remove, got %d", store.Revision())
	}

	if store.RemoveFeature(f) {
		t.Error("expected second remove to report false")
	}
	if store.Revision() != 2 {
		t.Errorf("failed remove must not bump revision, got %d", store.Revision())
	}
}

func TestStoreFeaturesInExtent(t *testing.T) {
	store := NewStore("reference")
	inside := lineFeature([]float64{1, 1}, []float64{2, 2})
	crossing := lineFeature([]float64{-5, 5}, []float64{5, 5})
	outside := lineFeature([]float64{20, 20}, []float64{30, 30})
	empty := geojson.NewFeature(nil)
	store.AddFeatures([]*geojson.Feature{inside, crossing, outside, empty})

	if store.Revision() != 1 {
		t.Errorf("expected a single revision bump, got %d", store.Revision())
	}

	got := store.FeaturesInExtent(geometry.NewExtent(0, 0, 10, 10))
	if len(got) != 2 {
		t.Fatalf("expected 2 features, got %d", len(got))
	}
	if got[0] != inside || got[1] != crossing {
		t.Errorf("unexpected features returned: %v", got)
	}
}

func TestStoreRemoveDuplicateKeepsOtherCopy(t *testing.T) {
	store := NewStore("destination")
	f := lineFeature([]float64{1, 1}, []float64{2, 2})
	store.AddFeature(f)
	store.AddFeature(f)

	if !store.RemoveFeature(f) {
		t.Fatal("expected feature to be removed")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining feature, got %d", store.Len())
	}
	if got := store.FeaturesInExtent(geometry.NewExtent(0, 0, 10, 10)); len(got) != 1 || got[0] != f {
		t.Errorf("expected the remaining copy in the extent query, got %v", got)
	}
	if _, ok := store.Extent(); !ok {
		t.Error("expected the remaining copy to have an extent")
	}

	store.RemoveFeature(f)
	if got := store.FeaturesInExtent(geometry.NewExtent(0, 0, 10, 10)); len(got) != 0 {
		t.Errorf("expected no features after removing both copies, got %v", got)
	}
}

func TestStoreExtent(t *testing.T) {
	store := NewStore("reference")
	if _, ok := store.Extent(); ok {
		t.Error("expected no extent for an empty store")
	}

	store.AddFeature(lineFeature([]float64{1, 2}, []float64{3, 4}))
	store.AddFeature(geojson.NewPolygonFeature([][][]float64{{{-1, 0}, {0, 5}, {2, 0}, {-1, 0}}}))

	extent, ok := store.Extent()
	if !ok {
		t.Fatal("expected an extent")
	}
	expected := geometry.NewExtent(-1, 0, 3, 5)
	if extent != expected {
		t.Errorf("expected %v, got %v", expected, extent)
	}
}

func TestIsXY(t *testing.T) {
	tests := []struct {
		name     string
		geometry *geojson.Geometry
		expected bool
	}{
		{"nil", nil, false},
		{"line", geojson.NewLineStringGeometry([][]float64{{0, 0}, {1, 1}}), true},
		{"line with z", geojson.NewLineStringGeometry([][]float64{{0, 0, 1}, {1, 1, 1}}), false},
		{"mixed collection", geojson.NewCollectionGeometry(
			geojson.NewPointGeometry([]float64{0, 0}),
			geojson.NewPointGeometry([]float64{0, 0, 3}),
		), false},
		{"empty line", geojson.NewLineStringGeometry([][]float64{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsXY(tt.geometry); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.geojson")

	store := NewStore("destination")
	f := geojson.NewPolygonFeature([][][]float64{{{0, 0}, {4, 0}, {4, 3}, {0, 3}, {0, 0}}})
	f.SetProperty("name", "shed")
	store.AddFeature(f)

	if err := store.SaveFile(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewStore("loaded")
	if err := loaded.LoadFile(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	features := loaded.Features()
	if len(features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(features))
	}
	if features[0].Geometry.Type != geojson.GeometryPolygon {
		t.Errorf("expected polygon, got %s", features[0].Geometry.Type)
	}
	if len(features[0].Geometry.Polygon[0]) != 5 {
		t.Errorf("expected 5 ring positions, got %d", len(features[0].Geometry.Polygon[0]))
	}
	if name, _ := features[0].PropertyString("name"); name != "shed" {
		t.Errorf("expected property to survive, got %q", name)
	}
}

func TestDecodeSingleFeatureAndErrors(t *testing.T) {
	features, err := Decode([]byte(`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(features))
	}

	features, err = Decode([]byte(`{"type":"LineString","coordinates":[[0,0],[2,1]]}`))
	if err != nil {
		t.Fatalf("unexpected error for bare geometry: %v", err)
	}
	if len(features) != 1 || features[0].Geometry.Type != geojson.GeometryLineString {
		t.Errorf("expected one line feature, got %v", features)
	}
	if _, err := Decode([]byte(`{"type":"Topology","objects":{}}`)); err == nil {
		t.Error("expected error for unsupported type")
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestWatchFileReloadsStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.geojson")
	if err := WriteFile(path, []*geojson.Feature{lineFeature([]float64{0, 0}, []float64{1, 0})}); err != nil {
		t.Fatal(err)
	}

	store := NewStore("reference")
	if err := store.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan error, 4)
	w, err := WatchFile(store, path, 10*time.Millisecond, func(err error) {
		select {
		case reloaded <- err:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer w.Close()

	features := []*geojson.Feature{
		lineFeature([]float64{0, 0}, []float64{1, 0}),
		lineFeature([]float64{0, 1}, []float64{1, 1}),
	}
	if err := WriteFile(path, features); err != nil {
		t.Fatal(err)
	}

	// A reload can observe the truncated file first; wait for the one that
	// sees the complete content.
	deadline := time.After(5 * time.Second)
	for store.Len() != 2 {
		select {
		case <-reloaded:
		case <-deadline:
			t.Fatalf("timed out waiting for reload, store has %d features", store.Len())
		}
	}
}

func TestWatchFileMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "reference.geojson")
	if _, err := os.Stat(filepath.Dir(missing)); err == nil {
		t.Fatal("expected directory to be missing")
	}
	if _, err := WatchFile(NewStore("reference"), missing, time.Millisecond, nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
