package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/go.geojson"
)

// ReadFile reads a GeoJSON file. Feature collections, single features and
// bare geometries are accepted.
func ReadFile(path string) ([]*geojson.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses GeoJSON data into a list of features. A bare geometry becomes
// a single feature without properties.
func Decode(data []byte) ([]*geojson.Feature, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature collection: %w", err)
		}
		return fc.Features, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature: %w", err)
		}
		return []*geojson.Feature{f}, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("invalid geometry: %w", err)
		}
		return []*geojson.Feature{geojson.NewFeature(g)}, nil
	default:
		return nil, fmt.Errorf("unsupported GeoJSON type %q (expected FeatureCollection, Feature or a geometry)", probe.Type)
	}
}

// Encode formats features as an indented GeoJSON feature collection
func Encode(features []*geojson.Feature) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.AddFeature(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}
	return data, nil
}

// WriteFile writes features as a GeoJSON feature collection
func WriteFile(path string, features []*geojson.Feature) error {
	data, err := Encode(features)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadFile replaces the content of the store with the features of a GeoJSON
// file.
func (s *Store) LoadFile(path string) error {
	features, err := ReadFile(path)
	if err != nil {
		return err
	}
	s.Replace(features)
	return nil
}

// SaveFile writes the content of the store to a GeoJSON file
func (s *Store) SaveFile(path string) error {
	return WriteFile(path, s.Features())
}
