package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TilePlan/internal/model"
)

var (
	colorBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorTile       = color.NRGBA{R: 0xb9, G: 0xcb, B: 0xda, A: 255}
	colorEdge       = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	colorCut        = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	colorOutline    = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	colorGuide      = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
)

// PlanCanvas renders a computed plan: every surface with its tiles, cut
// edges, door opening and diagonal guides.
type PlanCanvas struct {
	widget.BaseWidget
	plan      model.Plan
	maxWidth  float32
	maxHeight float32
}

func NewPlanCanvas(plan model.Plan, maxW, maxH float32) *PlanCanvas {
	pc := &PlanCanvas{
		plan:      plan,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPlan replaces the displayed plan.
func (pc *PlanCanvas) SetPlan(plan model.Plan) {
	pc.plan = plan
	pc.Refresh()
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &planCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

// fitScale returns the factor that fits a canvas of w x h pixels inside
// maxW x maxH.
func fitScale(w, h float64, maxW, maxH float32) float32 {
	if w <= 0 || h <= 0 {
		return 0
	}
	scale := maxW / float32(w)
	if s := maxH / float32(h); s < scale {
		scale = s
	}
	return scale
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	objects []fyne.CanvasObject
}

func (r *planCanvasRenderer) scale() float32 {
	return fitScale(r.pc.plan.Canvas.Width, r.pc.plan.Canvas.Height, r.pc.maxWidth, r.pc.maxHeight)
}

func (r *planCanvasRenderer) rebuild() {
	r.objects = planObjects(r.pc.plan, r.scale())
}

// planObjects builds the canvas objects for plan, scaling canvas pixels by
// scale.
func planObjects(plan model.Plan, scale float32) []fyne.CanvasObject {
	if scale <= 0 {
		return nil
	}
	px := func(v int) float32 { return float32(v) * scale }

	bg := canvas.NewRectangle(colorBackground)
	bg.Resize(fyne.NewSize(float32(plan.Canvas.Width)*scale, float32(plan.Canvas.Height)*scale))
	objects := []fyne.CanvasObject{bg}

	rect := func(r model.Rect, off model.Position, fill, stroke color.Color, width float32) {
		rc := canvas.NewRectangle(fill)
		rc.StrokeColor = stroke
		rc.StrokeWidth = width
		rc.Resize(fyne.NewSize(px(r.Width), px(r.Height)))
		rc.Move(fyne.NewPos(px(off.X+r.X), px(off.Y+r.Y)))
		objects = append(objects, rc)
	}
	line := func(x1, y1, x2, y2 float32, c color.Color, width float32) {
		l := canvas.NewLine(c)
		l.StrokeWidth = width
		l.Position1 = fyne.NewPos(x1, y1)
		l.Position2 = fyne.NewPos(x2, y2)
		objects = append(objects, l)
	}

	for _, s := range plan.Surfaces {
		off := s.Offset
		if s.Layout.PerimeterCut {
			rect(s.SizePx, off, colorTile, color.Transparent, 0)
		}
		for _, p := range s.Layout.Placements {
			rect(p.Px, off, colorTile, colorEdge, 1)
			r := p.Px.Translate(off)
			x0, y0, x1, y1 := px(r.X), px(r.Y), px(r.Right()), px(r.Bottom())
			if p.CutY.Leading > 0 {
				line(x0, y0, x1, y0, colorCut, 2)
			}
			if p.CutX.Leading > 0 {
				line(x0, y0, x0, y1, colorCut, 2)
			}
			if p.CutX.Trailing > 0 {
				line(x1, y0, x1, y1, colorCut, 2)
			}
			if p.CutY.Trailing > 0 {
				line(x0, y1, x1, y1, colorCut, 2)
			}
		}
		for _, g := range s.Layout.GuidesPx {
			line(float32(float64(off.X)+g.X1)*scale, float32(float64(off.Y)+g.Y1)*scale,
				float32(float64(off.X)+g.X2)*scale, float32(float64(off.Y)+g.Y2)*scale, colorGuide, 1)
		}
		if s.DoorPx != nil {
			rect(*s.DoorPx, off, colorBackground, colorCut, 2)
		}
		outline := colorOutline
		if s.Layout.PerimeterCut {
			outline = colorCut
		}
		rect(s.SizePx, off, color.Transparent, outline, 2)

		if s.Label != "" {
			label := canvas.NewText(s.Label, color.Black)
			label.TextSize = 10
			label.TextStyle = fyne.TextStyle{Bold: true}
			label.Move(fyne.NewPos(px(off.X)+3, px(off.Y)+2))
			objects = append(objects, label)
		}
	}
	return objects
}

func (r *planCanvasRenderer) Layout(size fyne.Size)        {}
func (r *planCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *planCanvasRenderer) Destroy()                     {}
func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) MinSize() fyne.Size {
	scale := r.scale()
	return fyne.NewSize(float32(r.pc.plan.Canvas.Width)*scale, float32(r.pc.plan.Canvas.Height)*scale)
}

// RenderPlanResults creates a scrollable view of a plan with its per-surface
// breakdown and the material estimate.
func RenderPlanResults(plan *model.Plan) fyne.CanvasObject {
	if plan == nil || len(plan.Surfaces) == 0 {
		return widget.NewLabel("No plan yet. Enter the room and tile, then click Plan.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%s: %s, tile %s, grout %.1f mm",
		planName(plan), plan.Scheme, plan.Tile.Size(), plan.Tile.Delimiter,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{header, NewPlanCanvas(*plan, 900, 520), widget.NewSeparator()}

	breakdown := widget.NewLabel("Surface Breakdown:")
	breakdown.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, breakdown)
	for _, line := range surfaceBreakdown(*plan) {
		items = append(items, widget.NewLabel(line))
	}

	est := plan.Estimate
	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d tiles laid (%d whole), estimate %d, buy %d with %.0f%% waste | Estimated cost: %.2f",
		plan.TilesUsed(), plan.WholeTiles(), est.TotalTiles, est.TilesWithWaste, est.WastePercent, est.EstimatedCost,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, widget.NewSeparator(), summary)

	if off := plan.Offcuts; off.CutPieces > 0 {
		items = append(items, widget.NewLabel(fmt.Sprintf(
			"Offcuts: %d of %d cut pieces can be cut from other offcuts, %d tiles cover all cuts",
			off.FromOffcuts, off.CutPieces, off.TilesForCuts,
		)))
	}

	return container.NewVScroll(container.NewVBox(items...))
}

func planName(plan *model.Plan) string {
	if plan.Name != "" {
		return plan.Name
	}
	return "Plan"
}

// surfaceBreakdown generates one statistics line per surface.
func surfaceBreakdown(plan model.Plan) []string {
	lines := make([]string, 0, len(plan.Surfaces))
	for i, s := range plan.Surfaces {
		label := s.Label
		if label == "" {
			label = fmt.Sprintf("Surface %d", i+1)
		}
		line := fmt.Sprintf("  %s (%s, %s): %d tiles, %d whole, %d cut",
			label, s.Layout.Panel, s.Layout.Method, s.Layout.TilesUsed, s.Layout.WholeTiles, s.Layout.CutTiles())
		if i < len(plan.Estimate.Surfaces) {
			line += fmt.Sprintf(", estimate %d", plan.Estimate.Surfaces[i].Tiles)
		}
		lines = append(lines, line)
	}
	return lines
}
