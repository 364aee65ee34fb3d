package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/TilePlan/internal/engine"
	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/importer"
	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
	"github.com/piwi3910/TilePlan/internal/ui/widgets"
)

const maxRecentProjects = 8

const (
	tabRoom = iota
	tabTile
	tabPlan
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	plan    *model.Plan
	path    string // file the project was last saved to or opened from
	config  model.AppConfig
	presets model.PresetStore
	history *History
	tabs    *container.AppTabs

	// UI references for dynamic updates
	roomContainer   *fyne.Container
	tileContainer   *fyne.Container
	resultContainer *fyne.Container
	undoBtn         *ttwidget.Button
	redoBtn         *ttwidget.Button
}

func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn("Using default settings", "err", err)
		cfg = model.DefaultAppConfig()
	}
	presets, err := project.LoadDefaultPresets()
	if err != nil {
		log.Warn("Ignoring tile presets", "err", err)
		presets = model.NewPresetStore()
	}

	a := &App{
		app:     application,
		window:  window,
		config:  cfg,
		presets: presets,
		history: NewHistory(),
	}
	a.project = a.newProject()
	a.applyTheme()
	return a
}

// newProject creates a project carrying the saved defaults.
func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToProject(&p)
	return p
}

func (a *App) applyTheme() {
	a.app.Settings().SetTheme(NewTilePlanTheme(themeVariant(a.config.Theme, a.app.Settings().ThemeVariant())))
}

func (a *App) planner() *engine.Planner {
	return engine.New(engine.Config{Canvas: a.config.CanvasSize()})
}

func (a *App) exportOptions() export.Options {
	return export.Options{WatermarkText: a.config.WatermarkText}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recentMenu := fyne.NewMenuItem("Open Recent", nil)
	recentMenu.ChildMenu = a.buildRecentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.pushHistory("New Project")
			a.setProject(a.newProject(), "")
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		recentMenu,
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Walls from CSV...", func() {
			a.importWalls(importer.ImportCSV)
		}),
		fyne.NewMenuItem("Import Walls from Excel...", func() {
			a.importWalls(importer.ImportExcel)
		}),
		fyne.NewMenuItem("Import Floor from DXF...", func() {
			a.importFloorDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() { a.exportPlan(export.FormatPNG) }),
		fyne.NewMenuItem("Export PDF...", func() { a.exportPlan(export.FormatPDF) }),
		fyne.NewMenuItem("Export DXF...", func() { a.exportPlan(export.FormatDXF) }),
		fyne.NewMenuItem("Export Estimate (Excel)...", func() { a.exportPlan(export.FormatXLSX) }),
		fyne.NewMenuItem("Export Cut Labels...", func() {
			a.exportCutLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { a.undo() }),
		fyne.NewMenuItem("Redo", func() { a.redo() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Walls", func() {
			a.pushHistory("Clear Walls")
			a.project.Walls = nil
			a.refreshRoom()
		}),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Plan", func() {
			a.runPlan()
		}),
		fyne.NewMenuItem("Compare Methods...", func() {
			a.showCompareDialog()
		}),
		fyne.NewMenuItem("Generate Room Walls...", func() {
			a.showRoomGeneratorDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (a *App) buildRecentMenu() *fyne.Menu {
	if len(a.config.RecentProjects) == 0 {
		item := fyne.NewMenuItem("No recent projects", nil)
		item.Disabled = true
		return fyne.NewMenu("", item)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentProjects))
	for _, path := range a.config.RecentProjects {
		path := path
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() {
			a.openProject(path)
		}))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About TilePlan",
		"TilePlan - Tile Layout Planner\n\n"+
			"Plans floor and wall tiling, marks the tiles that need\n"+
			"cutting and estimates how many tiles to buy.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.roomContainer = container.NewStack()
	a.tileContainer = container.NewStack()
	a.resultContainer = container.NewStack()
	a.refreshRoom()
	a.refreshTile()
	a.refreshResults()

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Room", a.roomContainer),
		container.NewTabItem("Tile", a.tileContainer),
		container.NewTabItem("Plan", a.resultContainer),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return container.NewBorder(a.buildToolbar(), nil, nil, nil, a.tabs)
}

func (a *App) buildToolbar() fyne.CanvasObject {
	a.undoBtn = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo)
	a.redoBtn = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo)
	a.updateHistoryButtons()

	planBtn := widget.NewButtonWithIcon("Plan", theme.MediaPlayIcon(), a.runPlan)
	planBtn.Importance = widget.HighImportance

	return container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open project", a.loadProject),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save project", a.saveProject),
		widget.NewSeparator(),
		a.undoBtn,
		a.redoBtn,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.GridIcon(), "Compare laying methods", a.showCompareDialog),
		newIconButtonWithTooltip(theme.DownloadIcon(), "Export PNG", func() { a.exportPlan(export.FormatPNG) }),
		layout.NewSpacer(),
		planBtn,
	)
}

// ─── History ───────────────────────────────────────────────

// pushHistory records the current project before a modification.
func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.project, label))
	a.updateHistoryButtons()
}

func (a *App) undo() {
	s, ok := a.history.Undo(MakeSnapshot(a.project, "Undo"))
	if !ok {
		return
	}
	a.restore(s)
}

func (a *App) redo() {
	s, ok := a.history.Redo(MakeSnapshot(a.project, "Redo"))
	if !ok {
		return
	}
	a.restore(s)
}

func (a *App) restore(s Snapshot) {
	a.project = s.Project
	a.plan = nil
	a.refreshAll()
	a.updateHistoryButtons()
}

func (a *App) updateHistoryButtons() {
	if a.undoBtn == nil {
		return
	}
	if a.history.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.history.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

// ─── Refresh ───────────────────────────────────────────────

func (a *App) setProject(p model.Project, path string) {
	a.project = p
	a.path = path
	a.plan = nil
	a.refreshAll()
}

func (a *App) refreshAll() {
	a.refreshRoom()
	a.refreshTile()
	a.refreshResults()
}

func (a *App) refreshRoom() {
	if a.roomContainer == nil {
		return
	}
	a.roomContainer.Objects = []fyne.CanvasObject{a.buildRoomPanel()}
	a.roomContainer.Refresh()
}

func (a *App) refreshTile() {
	if a.tileContainer == nil {
		return
	}
	a.tileContainer.Objects = []fyne.CanvasObject{a.buildTilePanel()}
	a.tileContainer.Refresh()
}

func (a *App) refreshResults() {
	if a.resultContainer == nil {
		return
	}
	a.resultContainer.Objects = []fyne.CanvasObject{widgets.RenderPlanResults(a.plan)}
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runPlan() {
	plan, err := a.planner().Plan(a.project)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	log.Debug("Planned", "scheme", plan.Scheme, "surfaces", len(plan.Surfaces), "tiles", plan.TilesUsed())
	a.plan = &plan
	a.refreshResults()
	if a.tabs != nil {
		a.tabs.SelectIndex(tabPlan)
	}
}

func (a *App) showCompareDialog() {
	results := a.planner().CompareMethods(a.project)

	grid := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Laid", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Whole", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cut", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Buy", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		if r.Err != nil {
			grid.Add(widget.NewLabel(r.Scenario.Name))
			errLabel := widget.NewLabel(r.Err.Error())
			errLabel.Importance = widget.DangerImportance
			grid.Add(errLabel)
			for i := 0; i < 4; i++ {
				grid.Add(widget.NewLabel(""))
			}
			continue
		}
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.TilesUsed)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.WholeTiles)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.CutTiles)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.Purchase)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.2f", r.Cost)))
	}

	d := dialog.NewCustom("Compare Laying Methods", "Close", container.NewVScroll(grid), a.window)
	d.Resize(fyne.NewSize(700, 300))
	d.Show()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.HasSuffix(path, project.FileExt) {
			path += project.FileExt
		}
		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.path = path
		a.rememberRecent(path)
	}, a.window)
	name := a.project.Name
	if name == "" {
		name = "project"
	}
	d.SetFileName(name + project.FileExt)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openProject(path)
	}, a.window)
	d.Show()
}

func (a *App) openProject(path string) {
	proj, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.history.Clear()
	a.updateHistoryButtons()
	a.setProject(proj, path)
	a.rememberRecent(path)
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecent(path, maxRecentProjects)
	if err := a.saveConfig(); err != nil {
		log.Warn("Could not save recent projects", "err", err)
	}
	a.SetupMenus()
}

// exportPlan writes the current plan, planning first when needed.
func (a *App) exportPlan(format export.Format) {
	if a.plan == nil {
		a.runPlan()
		if a.plan == nil {
			return
		}
	}
	plan := *a.plan
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportFile(path, format, plan, a.exportOptions()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Plan saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.exportName() + format.Ext())
	d.Show()
}

func (a *App) exportCutLabels() {
	if a.plan == nil {
		a.runPlan()
		if a.plan == nil {
			return
		}
	}
	plan := *a.plan
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportCutLabels(path, plan); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Cut labels saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(a.exportName() + "-labels.pdf")
	d.Show()
}

func (a *App) exportName() string {
	if a.project.Name != "" {
		return a.project.Name
	}
	return "tileplan"
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importWalls(load func(path string) importer.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(load(path))
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		log.Warn("Import", "warning", w)
	}

	if len(result.Walls) > 0 {
		a.pushHistory("Import Walls")
		a.project.Scheme = model.SchemeWalls
		a.project.Walls = append(a.project.Walls, result.Walls...)
		a.plan = nil
		a.refreshRoom()

		msg := fmt.Sprintf("Successfully imported %d walls.", len(result.Walls))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) importFloorDXF() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := importer.ImportFloorDXF(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		for _, w := range result.Warnings {
			log.Warn("DXF import", "warning", w)
		}

		a.pushHistory("Import Floor")
		a.project.Scheme = model.SchemeFloor
		a.project.Floor = result.Floor
		a.plan = nil
		a.refreshRoom()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Floor set to %s mm.", result.Floor), a.window)
	}, a.window)
}
