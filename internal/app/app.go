// Package app is the interactive raylib host for drawing rectangles along
// reference geometry.
package app

import (
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/touchdraw/internal/config"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	windowWidth  = 1400
	windowHeight = 900
	fitPadding   = 40
)

// Options configures Run
type Options struct {
	ReferencePath string        // GeoJSON file offering the reference geometry
	OutPath       string        // GeoJSON file committed drafts are saved to; empty keeps them in memory
	Watch         bool          // Reload the reference file when it changes
	Debounce      time.Duration // Delay between a file change and the reload
	Config        config.Config
	Logger        *log.Logger
}

// App holds the complete application state
type App struct {
	View        ViewState
	Sources     SourceData
	Pointer     PointerState
	Edit        EditState
	FileWatch   FileWatchState
	UI          UIState
	Interaction *touchdraw.Interaction

	logger *log.Logger
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	app, err := newApp(opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		if err := app.setupFileWatcher(opts.Debounce); err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.FileWatch.watcher.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "TouchDraw")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	// Escape cancels drafts instead of closing the window
	rl.SetExitKey(0)

	// Loaded large so labels stay crisp when scaled down on high DPI displays
	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 64, nil)
	rl.SetTextureFilter(app.UI.font.Texture, rl.FilterBilinear)
	defer rl.UnloadFont(app.UI.font)

	app.fitView(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		if rl.IsWindowResized() {
			app.View.view.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
		}

		app.applyReloadResults()

		// Update
		app.handleInput()
		app.Interaction.Render(app.View.view)
		app.updateAnalysis()

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		app.drawFeatures(app.Sources.reference.Features(), referenceColor)
		app.drawFeatures(app.Sources.destination.Features(), destinationColor)
		app.drawCandidates()
		app.drawDraft()
		app.drawUI()

		rl.EndDrawing()
	}

	return app.saveDestination()
}

func newApp(opts Options) (*App, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	reference := source.NewStore("reference")
	if err := reference.LoadFile(opts.ReferencePath); err != nil {
		return nil, err
	}

	destination := source.NewStore("destination")
	if opts.OutPath != "" {
		if _, err := os.Stat(opts.OutPath); err == nil {
			if err := destination.LoadFile(opts.OutPath); err != nil {
				return nil, err
			}
		}
	}

	touchOpts := opts.Config.Options()
	touchOpts.ReferenceSource = reference
	touchOpts.DestinationSource = destination
	touchOpts.Logger = opts.Logger

	interaction, err := touchdraw.New(touchOpts)
	if err != nil {
		return nil, err
	}

	app := &App{
		Sources: SourceData{
			reference:     reference,
			destination:   destination,
			referencePath: opts.ReferencePath,
			outPath:       opts.OutPath,
		},
		Edit:        EditState{labels: make(map[touchdraw.Role]rl.Rectangle)},
		Interaction: interaction,
		logger:      opts.Logger,
	}
	app.View.showInfo = true

	interaction.On(app.onDrawEvent)

	fmt.Printf("Loaded %d reference features from %s\n", reference.Len(), opts.ReferencePath)
	return app, nil
}

// fitView zooms to the reference content, or to the unit square around the
// origin when the reference is empty
func (app *App) fitView(width, height float64) {
	extent, ok := app.Sources.reference.Extent()
	if !ok || extent.IsEmpty() {
		extent = geometry.NewExtent(-1, -1, 1, 1)
	}
	app.View.view = mapview.Fit(extent, width, height, fitPadding)
	app.View.defaultCenter = app.View.view.Center
	app.View.defaultRes = app.View.view.Resolution
}

func (app *App) onDrawEvent(ev touchdraw.DrawEvent) {
	app.stopEditing()

	switch ev.Type {
	case touchdraw.DrawStart:
		app.setStatus("Drawing: drag the handles, type dimensions, Enter to confirm")
	case touchdraw.DrawEnd:
		app.setStatus(fmt.Sprintf("Added feature %d", app.Sources.destination.Len()))
		if err := app.saveDestination(); err != nil {
			app.setStatus(fmt.Sprintf("Save failed: %v", err))
		}
	case touchdraw.DrawAbort:
		app.setStatus("Draft discarded")
	}
}

func (app *App) setStatus(s string) {
	app.UI.status = s
	app.UI.statusAt = time.Now()
}
