// TilePlan - Tile Layout Planner
//
// A cross-platform desktop application for planning floor and wall
// tiling, marking cut tiles and estimating the tiles to buy.
//
// Build:
//   go build -o tileplan ./cmd/tileplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o tileplan.exe ./cmd/tileplan
//   GOOS=darwin  GOARCH=amd64 go build -o tileplan-darwin ./cmd/tileplan
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/TilePlan/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.tileplan")
	window := application.NewWindow("TilePlan - Tile Layout Planner")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
