package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/source"
)

// setupFileWatcher reloads the reference store whenever its file changes.
// The store bumps its revision on reload, so the next frame proposes handles
// for the new content.
func (app *App) setupFileWatcher(debounce time.Duration) error {
	app.FileWatch.pendingError = make(chan error, 1)

	w, err := source.WatchFile(app.Sources.reference, app.Sources.referencePath, debounce, func(err error) {
		// Keep only the latest result when the UI falls behind
		select {
		case <-app.FileWatch.pendingError:
		default:
		}
		app.FileWatch.pendingError <- err
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	app.FileWatch.watcher = w
	fmt.Printf("Watching %s for changes...\n", w.Path())
	return nil
}

// applyReloadResults reports reloads finished by the watcher goroutine. Must
// run on the main thread.
func (app *App) applyReloadResults() {
	if app.FileWatch.pendingError == nil {
		return
	}

	select {
	case err := <-app.FileWatch.pendingError:
		app.FileWatch.lastReload = time.Now()
		app.FileWatch.reloadErr = err
		if err != nil {
			app.logger.Printf("reload failed: %v", err)
			app.setStatus(fmt.Sprintf("Reload failed: %v", err))
			return
		}
		app.setStatus(fmt.Sprintf("Reloaded %d reference features", app.Sources.reference.Len()))
	default:
	}
}

// saveDestination writes the destination store to the output file. Without
// an output file committed features stay in memory.
func (app *App) saveDestination() error {
	if app.Sources.outPath == "" {
		return nil
	}

	err := app.Sources.destination.SaveFile(app.Sources.outPath)
	app.FileWatch.lastSave = time.Now()
	app.FileWatch.saveErr = err
	if err != nil {
		return err
	}
	app.logger.Printf("saved %d features to %s", app.Sources.destination.Len(), app.Sources.outPath)
	return nil
}

// updateAnalysis refreshes the reference statistics after a reload
func (app *App) updateAnalysis() {
	rev := app.Sources.reference.Revision()
	if app.Sources.analysis != nil && rev == app.Sources.analyzedRev {
		return
	}
	app.Sources.analysis = analysis.AnalyzeFeatures(app.Sources.reference.Features())
	app.Sources.analyzedRev = rev
}
