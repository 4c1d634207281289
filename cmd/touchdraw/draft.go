package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
	"github.com/spf13/cobra"
)

var (
	draftViewport viewportFlags
	draftAtX      float64
	draftAtY      float64
	draftScale    float64
	draftMoveX    float64
	draftMoveY    float64
	draftOut      string
)

var draftCmd = &cobra.Command{
	Use:   "draft [file]",
	Short: "Draw one rectangle without a window",
	Long: `Grab the proposed handle closest to --at-x/--at-y (default: the view
center), type the given dimensions into the draft and confirm it. Dimensions
are in the selected unit; their sign picks the side. The new polygon is
appended to --out, or printed as GeoJSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftViewport.register(draftCmd)
	draftCmd.Flags().Float64Var(&draftAtX, "at-x", 0, "X of the point to grab the nearest handle at")
	draftCmd.Flags().Float64Var(&draftAtY, "at-y", 0, "Y of the point to grab the nearest handle at")
	draftCmd.Flags().Float64VarP(&draftScale, "scale", "s", 0, "Width of the rectangle across its spine")
	draftCmd.Flags().Float64Var(&draftMoveX, "move-x", 0, "Offset across the spine")
	draftCmd.Flags().Float64Var(&draftMoveY, "move-y", 0, "Offset along the spine")
	draftCmd.Flags().StringVarP(&draftOut, "out", "o", "", "GeoJSON file to append the rectangle to")

	draftCmd.MarkFlagsRequiredTogether("at-x", "at-y")
}

func runDraft(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0], &draftViewport)
	if err != nil {
		return err
	}

	at := s.view.Center
	if cmd.Flags().Changed("at-x") {
		at = geometry.NewCoordinate(draftAtX, draftAtY)
	}

	h := s.nearestCandidate(at)
	if h == nil {
		return errors.New("no handle is proposed in this view")
	}
	ev := s.pointer(h.Geometry())
	if !s.interaction.PointerDown(ev) {
		return fmt.Errorf("could not grab the handle at %s", analysis.FormatCoordinate(h.Geometry()))
	}
	s.interaction.PointerUp(ev)

	d := s.interaction.Draft()
	for _, dim := range []struct {
		flag  string
		role  touchdraw.Role
		value float64
	}{
		{"scale", touchdraw.RoleScale, draftScale},
		{"move-x", touchdraw.RoleMoveX, draftMoveX},
		{"move-y", touchdraw.RoleMoveY, draftMoveY},
	} {
		if !cmd.Flags().Changed(dim.flag) {
			continue
		}
		text := strconv.FormatFloat(dim.value, 'f', -1, 64)
		if !d.Overlay(dim.role).SetText(text) {
			return fmt.Errorf("invalid --%s %s", dim.flag, text)
		}
	}

	spine := d.Spine()
	quad := d.Quad()
	s.interaction.Confirm()

	created := s.destination.Features()
	if len(created) != 1 {
		return errors.New("the draft was not committed")
	}

	if draftOut == "" {
		data, err := source.Encode(created)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	out := source.NewStore(draftOut)
	if _, err := os.Stat(draftOut); err == nil {
		if err := out.LoadFile(draftOut); err != nil {
			return err
		}
	}
	out.AddFeatures(created)
	if err := out.SaveFile(draftOut); err != nil {
		return err
	}

	fmt.Printf("Spine: %s -> %s\n", analysis.FormatCoordinate(spine[0]), analysis.FormatCoordinate(spine[1]))
	fmt.Println("Rectangle:")
	for i, c := range quad.Corners() {
		fmt.Printf("  %d. %s\n", i+1, analysis.FormatCoordinate(c))
	}
	fmt.Printf("Width: %s\n", formatLength(s, geometry.PlanarDistance(quad[1], quad[2])))
	fmt.Printf("Saved to %s (%d features)\n", draftOut, out.Len())
	return nil
}
