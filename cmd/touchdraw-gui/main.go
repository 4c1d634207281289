package main

import (
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/touchdraw/internal/config"
	"github.com/philipparndt/touchdraw/pkg/analysis"
	"github.com/philipparndt/touchdraw/pkg/source"
	"github.com/philipparndt/touchdraw/pkg/touchdraw"
	"github.com/philipparndt/touchdraw/pkg/viewer"
)

type App struct {
	window      fyne.Window
	cfg         config.Config
	logger      *log.Logger
	reference   *source.Store
	destination *source.Store
	interaction *touchdraw.Interaction
	renderer    *viewer.MapRenderer
	draftInfo   *DraftInfo
}

// DraftInfo holds the side panel widgets that follow the active draft
type DraftInfo struct {
	stateLabel *widget.Label
	entries    map[touchdraw.Role]*widget.Entry
	applyBtn   *widget.Button
	confirmBtn *widget.Button
	cancelBtn  *widget.Button
	countLabel *widget.Label
}

var dimensionRoles = []struct {
	role  touchdraw.Role
	label string
}{
	{touchdraw.RoleScale, "Width"},
	{touchdraw.RoleMoveX, "Offset across"},
	{touchdraw.RoleMoveY, "Offset along"},
}

func main() {
	a := app.New()
	w := a.NewWindow("TouchDraw")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appInstance := &App{
		window: w,
		cfg:    cfg,
		logger: log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile),
	}

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func loadConfig() (config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path, false)
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to TouchDraw")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open GeoJSON File' to load reference geometry")

	openButton := widget.NewButton("Open GeoJSON File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) showSaveDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		data, err := source.Encode(a.destination.Features())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if _, err := writer.Write(data); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save: %w", err), a.window)
		}
	}, a.window)
}

func (a *App) loadFile(filename string) {
	reference := source.NewStore(filename)
	if err := reference.LoadFile(filename); err != nil {
		dialog.ShowError(fmt.Errorf("failed to load GeoJSON file: %w", err), a.window)
		return
	}

	destination := source.NewStore("drawn")
	opts := a.cfg.Options()
	opts.ReferenceSource = reference
	opts.DestinationSource = destination
	opts.Logger = a.logger

	interaction, err := touchdraw.New(opts)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	if a.interaction != nil {
		a.interaction.SetActive(false)
	}
	a.reference = reference
	a.destination = destination
	a.interaction = interaction
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.draftInfo = &DraftInfo{
		stateLabel: widget.NewLabel(""),
		entries:    make(map[touchdraw.Role]*widget.Entry),
		countLabel: widget.NewLabel(""),
	}
	a.draftInfo.stateLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.renderer = viewer.NewMapRenderer(a.interaction, a.reference, a.destination)
	a.renderer.SetOnChange(a.updateDraftInfo)

	a.interaction.On(func(ev touchdraw.DrawEvent) {
		if ev.Type == touchdraw.DrawEnd {
			a.logger.Printf("committed feature %d", a.destination.Len())
		}
	})

	// Dimension entries reject anything that is not a signed decimal
	form := widget.NewForm()
	for _, dim := range dimensionRoles {
		entry := widget.NewEntry()
		entry.Validator = func(s string) error {
			_, err := touchdraw.ParseDimension(s)
			return err
		}
		entry.OnSubmitted = func(string) { a.applyDimensions() }
		a.draftInfo.entries[dim.role] = entry
		form.Append(dim.label, entry)
	}

	a.draftInfo.applyBtn = widget.NewButton("Apply Dimensions", a.applyDimensions)
	a.draftInfo.confirmBtn = widget.NewButton("Confirm", func() {
		a.interaction.Confirm()
		a.renderer.Redraw()
	})
	a.draftInfo.cancelBtn = widget.NewButton("Cancel", func() {
		a.interaction.Cancel()
		a.renderer.Redraw()
	})

	unitSelect := widget.NewSelect(a.interaction.Units().Names(), func(unit string) {
		if err := a.interaction.SetUnit(unit); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.updateDraftInfo()
	})
	unitSelect.SetSelected(a.interaction.Unit())

	activeCheck := widget.NewCheck("Drawing enabled", func(checked bool) {
		a.interaction.SetActive(checked)
		a.renderer.Redraw()
	})
	activeCheck.SetChecked(true)

	// Reference info
	result := analysis.AnalyzeFeatures(a.reference.Features())
	referenceInfo := widget.NewLabel(fmt.Sprintf(
		"Features: %d\nSegments: %d\nSize: %.2f x %.2f\nNot 2D: %d",
		result.FeatureCount,
		result.SegmentCount,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.NonXYCount,
	))

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag an orange handle to start a rectangle\n" +
			"• Drag the green handles to widen or move it\n" +
			"• Type dimensions and press Enter to apply\n" +
			"• Drag the map to pan, scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Reference:"),
		widget.NewSeparator(),
		referenceInfo,
		widget.NewSeparator(),
		widget.NewLabel("Draft:"),
		widget.NewSeparator(),
		a.draftInfo.stateLabel,
		form,
		a.draftInfo.applyBtn,
		container.NewGridWithColumns(2, a.draftInfo.confirmBtn, a.draftInfo.cancelBtn),
		widget.NewSeparator(),
		widget.NewLabel("Options:"),
		unitSelect,
		activeCheck,
		widget.NewSeparator(),
		a.draftInfo.countLabel,
		instructions,
		widget.NewSeparator(),
		widget.NewButton("Fit View", a.renderer.FitReference),
		container.NewGridWithColumns(2,
			widget.NewButton("Rotate Left", func() { a.renderer.Rotate(15) }),
			widget.NewButton("Rotate Right", func() { a.renderer.Rotate(-15) }),
		),
		widget.NewButton("Open File", a.showFileDialog),
		widget.NewButton("Save Drawn Features", a.showSaveDialog),
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)
	a.updateDraftInfo()
}

// applyDimensions types the entry values into the draft overlays
func (a *App) applyDimensions() {
	d := a.interaction.Draft()
	if d == nil {
		return
	}
	for _, dim := range dimensionRoles {
		entry := a.draftInfo.entries[dim.role]
		if entry.Text == "" || entry.Validate() != nil {
			continue
		}
		d.Overlay(dim.role).SetText(entry.Text)
	}
	a.renderer.Redraw()
}

func (a *App) updateDraftInfo() {
	info := a.draftInfo
	if info == nil {
		return
	}
	info.countLabel.SetText(fmt.Sprintf("Drawn features: %d", a.destination.Len()))

	d := a.interaction.Draft()
	if d == nil {
		if a.interaction.Active() {
			info.stateLabel.SetText(fmt.Sprintf("%d handles proposed", len(a.interaction.Candidates())))
		} else {
			info.stateLabel.SetText("Drawing disabled")
		}
		for _, entry := range info.entries {
			entry.SetText("")
			entry.Disable()
		}
		info.applyBtn.Disable()
		info.confirmBtn.Disable()
		info.cancelBtn.Disable()
		return
	}

	info.stateLabel.SetText(fmt.Sprintf("Drawing (%s)", d.Unit()))
	for _, dim := range dimensionRoles {
		entry := info.entries[dim.role]
		entry.Enable()
		entry.SetText(d.Overlay(dim.role).Text())
	}
	info.applyBtn.Enable()
	info.confirmBtn.Enable()
	info.cancelBtn.Enable()
}
