package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TilePlan/internal/engine"
	"github.com/piwi3910/TilePlan/internal/model"
)

// floatEntry creates an entry bound to val. Unparsable input leaves val
// unchanged.
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

// parseMM parses a positive millimetre value typed into a form.
func parseMM(name, text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a number > 0", name)
	}
	return v, nil
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// ─── Room Panel ────────────────────────────────────────────

func (a *App) buildRoomPanel() fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)
	nameEntry.SetPlaceHolder("Project name")
	nameEntry.OnChanged = func(text string) { a.project.Name = text }

	schemeSelect := widget.NewSelect([]string{string(model.SchemeFloor), string(model.SchemeWalls)}, nil)
	schemeSelect.SetSelected(string(a.project.Scheme))
	schemeSelect.OnChanged = func(selected string) {
		if model.Scheme(selected) == a.project.Scheme {
			return
		}
		a.pushHistory("Change Scheme")
		a.project.Scheme = model.Scheme(selected)
		a.plan = nil
		a.refreshRoom()
	}

	header := widget.NewCard("Project", "", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Scheme"), schemeSelect,
	))

	var body fyne.CanvasObject
	if a.project.Scheme == model.SchemeWalls {
		body = a.buildWallsPanel()
	} else {
		body = widget.NewCard("Floor", "Room length runs left to right", container.NewGridWithColumns(2,
			widget.NewLabel("Room Length (mm)"), floatEntry(&a.project.Floor.Width),
			widget.NewLabel("Room Width (mm)"), floatEntry(&a.project.Floor.Height),
		))
	}

	return container.NewBorder(header, nil, nil, nil, body)
}

func (a *App) buildWallsPanel() fyne.CanvasObject {
	list := container.NewVBox()

	if len(a.project.Walls) == 0 {
		list.Add(widget.NewLabel("No walls added yet. Click 'Add Wall' or generate a room."))
	} else {
		list.Add(container.NewGridWithColumns(6,
			boldLabel("Label"),
			boldLabel("Width (mm)"),
			boldLabel("Height (mm)"),
			boldLabel("Door"),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		list.Add(widget.NewSeparator())

		for i := range a.project.Walls {
			idx := i
			w := a.project.Walls[idx]
			door := "-"
			if w.Door != nil {
				door = fmt.Sprintf("%gx%g", w.Door.Width, w.Door.Height)
			}
			list.Add(container.NewGridWithColumns(6,
				widget.NewLabel(w.Label),
				widget.NewLabel(fmt.Sprintf("%.1f", w.Width)),
				widget.NewLabel(fmt.Sprintf("%.1f", w.Height)),
				widget.NewLabel(door),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showWallDialog(idx)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.pushHistory("Delete Wall")
					a.project.Walls = append(a.project.Walls[:idx], a.project.Walls[idx+1:]...)
					a.plan = nil
					a.refreshRoom()
				}),
			))
		}
	}

	addBtn := widget.NewButtonWithIcon("Add Wall", theme.ContentAddIcon(), func() {
		a.showWallDialog(-1)
	})
	roomBtn := widget.NewButtonWithIcon("Generate Room", theme.ViewFullScreenIcon(), func() {
		a.showRoomGeneratorDialog()
	})

	return container.NewBorder(
		container.NewHBox(boldLabel("Walls (laid left to right)"), layout.NewSpacer(), roomBtn, addBtn),
		nil, nil, nil,
		container.NewVScroll(list),
	)
}

// doorFields holds the form inputs for an optional door.
type doorFields struct {
	enabled *widget.Check
	width   *widget.Entry
	height  *widget.Entry
}

func newDoorFields(door *model.Door) doorFields {
	f := doorFields{
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
	}
	f.width.SetText("800")
	f.height.SetText("2000")
	if door != nil {
		f.width.SetText(strconv.FormatFloat(door.Width, 'f', -1, 64))
		f.height.SetText(strconv.FormatFloat(door.Height, 'f', -1, 64))
	}
	f.enabled = widget.NewCheck("", func(on bool) {
		if on {
			f.width.Enable()
			f.height.Enable()
		} else {
			f.width.Disable()
			f.height.Disable()
		}
	})
	f.enabled.SetChecked(door != nil)
	f.enabled.OnChanged(door != nil)
	return f
}

func (f doorFields) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Door", f.enabled),
		widget.NewFormItem("Door Width (mm)", f.width),
		widget.NewFormItem("Door Height (mm)", f.height),
	}
}

// door returns the entered door checked against a panel of the given size,
// or nil when the door is disabled.
func (f doorFields) door(panel model.Size) (*model.Door, error) {
	if !f.enabled.Checked {
		return nil, nil
	}
	w, err := parseMM("door width", f.width.Text)
	if err != nil {
		return nil, err
	}
	h, err := parseMM("door height", f.height.Text)
	if err != nil {
		return nil, err
	}
	door := &model.Door{Width: w, Height: h}
	if err := engine.ValidateDoor(door, panel); err != nil {
		return nil, err
	}
	return door, nil
}

// showWallDialog edits the wall at idx, or adds a new wall when idx < 0.
func (a *App) showWallDialog(idx int) {
	wall := model.Wall{
		Label:  fmt.Sprintf("Wall %d", len(a.project.Walls)+1),
		Width:  3000,
		Height: 2500,
	}
	title, confirm := "Add Wall", "Add"
	if idx >= 0 {
		wall = a.project.Walls[idx]
		title, confirm = "Edit Wall", "Save"
	}

	labelEntry := widget.NewEntry()
	labelEntry.SetText(wall.Label)
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(wall.Width, 'f', -1, 64))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.FormatFloat(wall.Height, 'f', -1, 64))
	door := newDoorFields(wall.Door)

	items := append([]*widget.FormItem{
		widget.NewFormItem("Label", labelEntry),
		widget.NewFormItem("Width (mm)", widthEntry),
		widget.NewFormItem("Height (mm)", heightEntry),
	}, door.items()...)

	form := dialog.NewForm(title, confirm, "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			w, err := parseMM("width", widthEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			h, err := parseMM("height", heightEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			d, err := door.door(model.Size{Width: w, Height: h})
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.pushHistory(title)
			updated := model.Wall{Label: labelEntry.Text, Width: w, Height: h, Door: d}
			if idx >= 0 {
				a.project.Walls[idx] = updated
			} else {
				a.project.Walls = append(a.project.Walls, updated)
			}
			a.plan = nil
			a.refreshRoom()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 380))
	form.Show()
}

// showRoomGeneratorDialog replaces the walls with the four walls of a
// rectangular room.
func (a *App) showRoomGeneratorDialog() {
	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(strconv.FormatFloat(a.project.Floor.Width, 'f', -1, 64))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(a.project.Floor.Height, 'f', -1, 64))
	heightEntry := widget.NewEntry()
	heightEntry.SetText("2500")
	door := newDoorFields(&model.Door{Width: 800, Height: 2000})

	items := append([]*widget.FormItem{
		widget.NewFormItem("Room Length (mm)", lengthEntry),
		widget.NewFormItem("Room Width (mm)", widthEntry),
		widget.NewFormItem("Wall Height (mm)", heightEntry),
	}, door.items()...)

	form := dialog.NewForm("Generate Room Walls", "Generate", "Cancel", items,
		func(ok bool) {
			if !ok {
				return
			}
			l, err := parseMM("length", lengthEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			w, err := parseMM("width", widthEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			h, err := parseMM("height", heightEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			// The door goes on the third wall, which spans the room length.
			d, err := door.door(model.Size{Width: l, Height: h})
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}

			a.pushHistory("Generate Room")
			a.project.Scheme = model.SchemeWalls
			a.project.Floor = model.Size{Width: l, Height: w}
			a.project.Walls = model.RoomWalls(l, w, h, d)
			a.plan = nil
			a.refreshRoom()
			if a.tabs != nil {
				a.tabs.SelectIndex(tabRoom)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 400))
	form.Show()
}
