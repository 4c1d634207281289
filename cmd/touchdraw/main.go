package main

import (
	"fmt"
	"log"
	"os"

	"github.com/philipparndt/touchdraw/internal/config"
	"github.com/philipparndt/touchdraw/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	unitFlag   string
	bucketSize float64
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "touchdraw",
	Short: "Draw rectangles along the lines of a GeoJSON file",
	Long: `touchdraw proposes drag handles next to the reference lines around the
center of the view. Dragging a handle opens a rectangle on that line that can
be widened, moved and sized by typing dimensions, then saved as GeoJSON.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: touchdraw.toml in the user config directory)")
	rootCmd.PersistentFlags().StringVarP(&unitFlag, "unit", "u", "", "Display unit for dimensions")
	rootCmd.PersistentFlags().Float64Var(&bucketSize, "bucket-size", 0, "Screen pixels per candidate bucket")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log state transitions to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the settings file and applies the flag overrides
func loadConfig() (config.Config, error) {
	path := configPath
	required := path != ""
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}

	if unitFlag != "" {
		cfg.DefaultUnit = unitFlag
	}
	if bucketSize > 0 {
		cfg.BucketSize = bucketSize
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger returns a stderr logger when --verbose is set, nil otherwise
func newLogger() *log.Logger {
	if !verbose {
		return nil
	}
	return log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
}
