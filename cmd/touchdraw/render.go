package main

import (
	"fmt"

	"github.com/philipparndt/touchdraw/pkg/render"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/spf13/cobra"
)

var (
	renderViewport viewportFlags
	renderOut      string
	renderDrawn    string
	renderNoHints  bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a view of a GeoJSON file to PNG",
	Long: `Render the reference file as seen through the given view, together with
the handles proposed for that view and, optionally, previously drawn features.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderViewport.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "touchdraw.png", "PNG file to write")
	renderCmd.Flags().StringVar(&renderDrawn, "drawn", "", "GeoJSON file with drawn features to overlay")
	renderCmd.Flags().BoolVar(&renderNoHints, "no-handles", false, "Leave out the proposed handles")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := openSession(args[0], &renderViewport)
	if err != nil {
		return err
	}

	scene := render.Scene{
		Reference:   s.reference.Features(),
		Interaction: s.interaction,
	}
	if renderNoHints {
		scene.Interaction = nil
	}
	if renderDrawn != "" {
		drawn, err := source.ReadFile(renderDrawn)
		if err != nil {
			return err
		}
		scene.Destination = drawn
	}

	img := render.NewRenderer(render.DefaultStyle()).Render(s.view, scene)
	if err := render.SavePNG(renderOut, img); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%dx%d, %d handles)\n", renderOut, img.Bounds().Dx(), img.Bounds().Dy(), len(s.interaction.Candidates()))
	return nil
}
