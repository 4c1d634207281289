package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/go.geojson"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/spf13/cobra"
)

var infoLongest int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a GeoJSON file",
	Long:  "Show feature counts per geometry type, extent, polygon area and segment length statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoLongest, "longest", "n", 0, "Also list the N longest segments")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	features, err := source.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading GeoJSON file: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeFeatures(features)

	fmt.Println("GeoJSON File Information")
	fmt.Println("========================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Features:")
	fmt.Printf("  Total: %d\n", result.FeatureCount)
	types := make([]geojson.GeometryType, 0, len(result.TypeCounts))
	for t := range result.TypeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, result.TypeCounts[t])
	}
	if result.NonXYCount > 0 {
		fmt.Printf("  Not 2D (ignored for drawing): %d\n", result.NonXYCount)
	}
	fmt.Println()

	if result.HasExtent {
		fmt.Println("Extent:")
		fmt.Printf("  Min: %s\n", analysis.FormatCoordinate(result.Extent.Lo()))
		fmt.Printf("  Max: %s\n", analysis.FormatCoordinate(result.Extent.Hi()))
		fmt.Printf("  Center: %s\n", analysis.FormatCoordinate(result.Extent.Center()))
		fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Printf("  Height (Y): %.6f units\n\n", result.Dimensions.Y)
	}

	if result.PolygonArea > 0 {
		fmt.Printf("Polygon Area: %.6f square units\n\n", result.PolygonArea)
	}

	fmt.Println("Segment Lengths:")
	fmt.Printf("  Count: %d\n", result.SegmentCount)
	fmt.Printf("  Minimum: %.6f units\n", result.MinSegment)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxSegment)
	fmt.Printf("  Average: %.6f units\n", result.AvgSegment)
	fmt.Printf("  Total: %.6f units\n", result.TotalLength)

	if infoLongest > 0 {
		segments := analysis.FindLongestSegments(result, infoLongest)
		fmt.Printf("\nTop %d Longest Segments:\n", len(segments))
		for i, seg := range segments {
			fmt.Printf("  %3d. %.6f units  %s -> %s  (feature %d)\n", i+1, seg.Length,
				analysis.FormatCoordinate(seg.Segment[0]), analysis.FormatCoordinate(seg.Segment[1]), seg.FeatureID)
		}
	}
}
