// Package config loads the TouchDraw settings file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

// FileName is the settings file looked up in the user config directory
const FileName = "touchdraw.toml"

// Config holds the settings of the candidate search and dimension overlays
type Config struct {
	Units              map[string]float64 `toml:"units"`
	DefaultUnit        string             `toml:"default_unit"`
	BucketSize         float64            `toml:"bucket_size"`
	FocusFraction      float64            `toml:"focus_fraction"`
	MinSegmentFraction float64            `toml:"min_segment_fraction"`
	HitTolerance       float64            `toml:"hit_tolerance"`
}

// Default returns the built-in settings
func Default() Config {
	units := make(map[string]float64, len(touchdraw.DefaultUnits))
	for name, factor := range touchdraw.DefaultUnits {
		units[name] = factor
	}
	return Config{
		Units:              units,
		DefaultUnit:        touchdraw.DefaultUnit,
		BucketSize:         touchdraw.DefaultBucketSize,
		FocusFraction:      touchdraw.DefaultFocusFraction,
		MinSegmentFraction: touchdraw.DefaultMinSegmentFraction,
		HitTolerance:       touchdraw.DefaultHitTolerance,
	}
}

// DefaultPath returns the settings file in the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "touchdraw", FileName), nil
}

// Load reads path on top of the defaults. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the unit table and the numeric settings
func (c Config) Validate() error {
	units := touchdraw.UnitTable(c.Units)
	if err := units.Validate(); err != nil {
		return err
	}
	if _, err := units.Factor(c.DefaultUnit); err != nil {
		return fmt.Errorf("default_unit: %w", err)
	}
	if c.BucketSize < 0 || c.FocusFraction < 0 || c.MinSegmentFraction < 0 || c.HitTolerance < 0 {
		return errors.New("sizes and fractions must not be negative")
	}
	if c.FocusFraction > 0.5 {
		return fmt.Errorf("focus_fraction %v reaches beyond the view", c.FocusFraction)
	}
	return nil
}

// Options converts the settings into interaction options
func (c Config) Options() touchdraw.Options {
	return touchdraw.Options{
		Units:              touchdraw.UnitTable(c.Units),
		Unit:               c.DefaultUnit,
		BucketSize:         c.BucketSize,
		FocusFraction:      c.FocusFraction,
		MinSegmentFraction: c.MinSegmentFraction,
		HitTolerance:       c.HitTolerance,
	}
}

// Save writes c to path, creating the directory if needed
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
