package main

import (
	"time"

	"github.com/philipparndt/touchdraw/internal/app"
	"github.com/spf13/cobra"
)

var (
	viewOut      string
	viewWatch    bool
	viewDebounce int
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open the interactive drawing window",
	Long: `Open a window showing the reference file. Handles are proposed next to the
lines around the center of the view; drag one to start a rectangle, then
confirm it with Enter. Press H in the window for all keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewOut, "out", "o", "", "GeoJSON file drawn rectangles are saved to")
	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "Reload the reference file when it changes")
	viewCmd.Flags().IntVar(&viewDebounce, "debounce", 500, "Milliseconds to wait after a change before reloading")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		ReferencePath: args[0],
		OutPath:       viewOut,
		Watch:         viewWatch,
		Debounce:      time.Duration(viewDebounce) * time.Millisecond,
		Config:        cfg,
		Logger:        newLogger(),
	})
}
