package main

import (
	"fmt"
	"os"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/spf13/cobra"
)

var (
	candidatesViewport viewportFlags
	candidatesGeoJSON  bool
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates [file]",
	Short: "List the handles proposed for a view",
	Long: `Load the reference file, render one frame of the given view and list the
handles that would be offered for dragging, together with the reference
segment each one sits on.`,
	Args: cobra.ExactArgs(1),
	RunE: runCandidates,
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesViewport.register(candidatesCmd)
	candidatesCmd.Flags().BoolVar(&candidatesGeoJSON, "geojson", false, "Print the highlighted segments as GeoJSON instead")
}

func runCandidates(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0], &candidatesViewport)
	if err != nil {
		return err
	}

	if candidatesGeoJSON {
		var features []*geojson.Feature
		if highlight := s.interaction.Finder().HighlightFeature(); highlight != nil {
			features = append(features, highlight)
		}
		data, err := source.Encode(features)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	extent := s.view.Extent()
	fmt.Printf("View: %s - %s (%.6f units/px)\n", analysis.FormatCoordinate(extent.Lo()), analysis.FormatCoordinate(extent.Hi()), s.view.Resolution)

	candidates := s.interaction.Candidates()
	fmt.Printf("Proposed handles: %d\n\n", len(candidates))
	for i, h := range candidates {
		px := s.view.PixelFromCoordinate(h.Geometry())
		seg := h.Segment()
		fmt.Printf("  %3d. at %s  pixel (%.0f, %.0f)  basis %s\n", i+1,
			analysis.FormatCoordinate(h.Geometry()), px.X, px.Y, analysis.FormatCoordinate(h.Basis()))
		fmt.Printf("       segment %s -> %s  length %s\n",
			analysis.FormatCoordinate(seg[0]), analysis.FormatCoordinate(seg[1]),
			formatLength(s, seg.Length()))
	}
	return nil
}
