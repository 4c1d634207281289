package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultUnit != touchdraw.DefaultUnit || cfg.BucketSize != touchdraw.DefaultBucketSize {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if _, err := Load(path, true); err == nil {
		t.Error("expected error for a required missing file")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
default_unit = "ft"
bucket_size = 64
focus_fraction = 0.25

[units]
chain = 20.1168
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultUnit != "ft" {
		t.Errorf("expected default unit ft, got %q", cfg.DefaultUnit)
	}
	if cfg.BucketSize != 64 || cfg.FocusFraction != 0.25 {
		t.Errorf("expected overrides, got %+v", cfg)
	}
	if cfg.MinSegmentFraction != touchdraw.DefaultMinSegmentFraction {
		t.Errorf("expected default min segment fraction, got %v", cfg.MinSegmentFraction)
	}
	if cfg.Units["chain"] != 20.1168 || cfg.Units["m"] != 1 {
		t.Errorf("expected custom unit added to the defaults, got %v", cfg.Units)
	}

	opts := cfg.Options()
	if opts.Unit != "ft" || opts.BucketSize != 64 {
		t.Errorf("Options failed: got %+v", opts)
	}
	if _, err := touchdraw.New(opts); !errors.Is(err, touchdraw.ErrNoSource) {
		t.Errorf("expected options without a source to be rejected, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `bucket_size = `},
		{"unknown default unit", `default_unit = "furlong"`},
		{"zero factor", "[units]\nbroken = 0"},
		{"negative size", `hit_tolerance = -1`},
		{"focus too large", `focus_fraction = 0.75`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content), true); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.DefaultUnit = "cm"
	cfg.HitTolerance = 24

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultUnit != "cm" || loaded.HitTolerance != 24 {
		t.Errorf("expected saved settings, got %+v", loaded)
	}
}
