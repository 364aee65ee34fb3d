package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	methodSelect := widget.NewSelect(methodNames(), func(selected string) {
		if m, ok := model.ParseLayingMethod(selected); ok {
			cfg.DefaultMethod = m
		}
	})
	methodSelect.SetSelected(cfg.DefaultMethod.String())

	groutSelect := widget.NewSelect(groutFormulas, func(selected string) {
		cfg.GroutFormula = model.GroutFormula(selected)
	})
	groutSelect.SetSelected(string(cfg.GroutFormula))

	watermarkEntry := widget.NewEntry()
	watermarkEntry.SetText(cfg.WatermarkText)
	watermarkEntry.OnChanged = func(text string) { cfg.WatermarkText = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Tile Width (mm)", floatEntry(&cfg.DefaultTileWidth)),
		widget.NewFormItem("Default Tile Length (mm)", floatEntry(&cfg.DefaultTileHeight)),
		widget.NewFormItem("Default Grout Joint (mm)", floatEntry(&cfg.DefaultDelimiter)),
		widget.NewFormItem("Default Laying Method", methodSelect),
		widget.NewFormItem("Default Price per Tile", floatEntry(&cfg.DefaultPricePerTile)),
		widget.NewFormItem("Default Waste (%)", floatEntry(&cfg.DefaultWastePercent)),
		widget.NewFormItem("Grout Formula", groutSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Canvas Width (px)", intEntry(&cfg.CanvasWidth)),
		widget.NewFormItem("Canvas Height (px)", intEntry(&cfg.CanvasHeight)),
		widget.NewFormItem("Watermark", watermarkEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
				dialog.ShowError(fmt.Errorf("canvas size must be > 0"), a.window)
				return
			}
			a.config = cfg
			a.applyTheme()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 600))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("tileplan-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and tile presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.savePresets()
					a.applyTheme()
					a.refreshTile()
					a.SetupMenus()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, tile presets) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
