package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/piwi3910/TilePlan/internal/project"
)

func methodNames() []string {
	names := make([]string, len(model.LayingMethods))
	for i, m := range model.LayingMethods {
		names[i] = m.String()
	}
	return names
}

var groutFormulas = []string{string(model.GroutBetweenTiles), string(model.GroutLegacy)}

// ─── Tile Panel ────────────────────────────────────────────

func (a *App) buildTilePanel() fyne.CanvasObject {
	t := &a.project.Tile

	methodSelect := widget.NewSelect(methodNames(), nil)
	methodSelect.SetSelected(a.project.Method.String())
	methodSelect.OnChanged = func(selected string) {
		m, ok := model.ParseLayingMethod(selected)
		if !ok || m == a.project.Method {
			return
		}
		a.pushHistory("Change Method")
		a.project.Method = m
	}

	tileSection := widget.NewCard("Tile", "", container.NewGridWithColumns(2,
		widget.NewLabel("Tile Width (mm)"), floatEntry(&t.Width),
		widget.NewLabel("Tile Length (mm)"), floatEntry(&t.Height),
		widget.NewLabel("Grout Joint (mm)"), floatEntry(&t.Delimiter),
		widget.NewLabel("Floor Laying Method"), methodSelect,
	))

	groutSelect := widget.NewSelect(groutFormulas, func(selected string) {
		a.project.GroutFormula = model.GroutFormula(selected)
	})
	groutSelect.SetSelected(string(a.project.GroutFormula))

	pricingSection := widget.NewCard("Estimate", "", container.NewGridWithColumns(2,
		widget.NewLabel("Price per Tile"), floatEntry(&a.project.PricePerTile),
		widget.NewLabel("Waste (%)"), floatEntry(&a.project.WastePercent),
		widget.NewLabel("Grout Formula"), groutSelect,
	))

	return container.NewVScroll(container.NewVBox(
		tileSection,
		pricingSection,
		a.buildPresetSection(),
	))
}

// ─── Presets ───────────────────────────────────────────────

func (a *App) buildPresetSection() fyne.CanvasObject {
	presetSelect := widget.NewSelect(a.presets.Names(), nil)
	presetSelect.PlaceHolder = "Select a tile preset..."

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		preset := a.presets.FindByName(presetSelect.Selected)
		if preset == nil {
			return
		}
		a.pushHistory("Apply Preset")
		preset.ApplyTo(&a.project)
		a.plan = nil
		a.refreshTile()
	})
	saveBtn := widget.NewButtonWithIcon("Save Current...", theme.DocumentSaveIcon(), func() {
		a.showSavePresetDialog()
	})
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		preset := a.presets.FindByName(presetSelect.Selected)
		if preset == nil {
			return
		}
		dialog.ShowConfirm("Delete Preset",
			fmt.Sprintf("Delete the tile preset %q?", preset.Name),
			func(ok bool) {
				if !ok {
					return
				}
				a.presets.Remove(preset.ID)
				a.savePresets()
				a.refreshTile()
			},
			a.window,
		)
	})

	return widget.NewCard("Tile Presets", "", container.NewVBox(
		presetSelect,
		container.NewHBox(applyBtn, saveBtn, deleteBtn),
	))
}

func (a *App) showSavePresetDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fmt.Sprintf("%gx%g", a.project.Tile.Width, a.project.Tile.Height))
	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save Tile Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("preset name must not be empty"), a.window)
				return
			}
			if existing := a.presets.FindByName(nameEntry.Text); existing != nil {
				a.presets.Remove(existing.ID)
			}
			a.presets.Add(model.NewTilePreset(nameEntry.Text, descEntry.Text, a.project))
			a.savePresets()
			a.refreshTile()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

func (a *App) savePresets() {
	if err := project.SaveDefaultPresets(a.presets); err != nil {
		log.Error("Could not save tile presets", "err", err)
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
	}
}
