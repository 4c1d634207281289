package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/geometry"
	"github.com/philipparndt/touchdraw/pkg/mapview"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
)

// ViewState holds the map view and the navigation defaults
type ViewState struct {
	view          *mapview.View
	defaultCenter geometry.Coordinate // Center restored by Home
	defaultRes    float64             // Resolution restored by Home
	showInfo      bool
	showHelp      bool
}

// SourceData holds the reference and destination stores
type SourceData struct {
	reference     *source.Store
	destination   *source.Store
	referencePath string
	outPath       string
	analysis      *analysis.MeasurementResult
	analyzedRev   uint64 // Reference revision the analysis belongs to
}

// PointerState tracks the mouse between frames
type PointerState struct {
	lastMousePos rl.Vector2
	isPanning    bool // Dragging the view instead of a handle
	consumed     bool // The current press was taken by the interaction
}

// EditState holds the dimension overlay being typed into
type EditState struct {
	role    touchdraw.Role
	active  bool
	buffer  string
	labels  map[touchdraw.Role]rl.Rectangle // Label bounds from the last frame
	confirm rl.Rectangle                     // Confirm control bounds from the last frame
	cancel  rl.Rectangle                     // Cancel control bounds from the last frame
}

// FileWatchState holds file watching and save state
type FileWatchState struct {
	watcher      *source.Watcher
	lastReload   time.Time
	reloadErr    error
	lastSave     time.Time
	saveErr      error
	pendingError chan error // Reload results reported from the watcher goroutine
}

// UIState holds UI-related state
type UIState struct {
	font     rl.Font
	status   string
	statusAt time.Time
}
