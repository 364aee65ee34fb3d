package export

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerPanel = "PANEL"
	LayerTile  = "TILE"
	LayerCut   = "CUT"
	LayerDoor  = "DOOR"
	LayerGuide = "GUIDE"
)

var dxfLayers = []struct {
	name  string
	color dxfcolor.ColorNumber
}{
	{LayerPanel, dxfcolor.White},
	{LayerTile, dxfcolor.ColorNumber(8)},
	{LayerCut, dxfcolor.Red},
	{LayerDoor, dxfcolor.Magenta},
	{LayerGuide, dxfcolor.Blue},
}

// dxfWriter draws plan geometry in millimetres. Surfaces keep their relative
// canvas positions and Y grows upwards.
type dxfWriter struct {
	d     *drawing.Drawing
	scale float64
	err   error
}

func (w *dxfWriter) layer(name string) {
	if w.err != nil {
		return
	}
	w.err = w.d.ChangeLayer(name)
}

func (w *dxfWriter) line(ox, oy, x1, y1, x2, y2 float64) {
	if w.err != nil {
		return
	}
	_, w.err = w.d.Line(ox+x1, -(oy + y1), 0, ox+x2, -(oy + y2), 0)
}

func (w *dxfWriter) rect(ox, oy float64, r model.RectF) {
	w.line(ox, oy, r.X, r.Y, r.Right(), r.Y)
	w.line(ox, oy, r.Right(), r.Y, r.Right(), r.Bottom())
	w.line(ox, oy, r.Right(), r.Bottom(), r.X, r.Bottom())
	w.line(ox, oy, r.X, r.Bottom(), r.X, r.Y)
}

// ExportDXF writes the plan outlines to a DXF file with one layer per kind
// of geometry: panels, tile edges, cut edges, doors and diagonal guides.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Surfaces) == 0 {
		return fmt.Errorf("no surfaces to export")
	}
	if plan.Scale <= 0 {
		return fmt.Errorf("invalid plan scale %g", plan.Scale)
	}

	w := &dxfWriter{d: dxf.NewDrawing(), scale: plan.Scale}
	for _, l := range dxfLayers {
		if _, err := w.d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	for _, s := range plan.Surfaces {
		w.surface(s)
	}
	if w.err != nil {
		return fmt.Errorf("failed to draw plan: %w", w.err)
	}

	if err := w.d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func (w *dxfWriter) surface(s model.Surface) {
	ox := float64(s.Offset.X) / w.scale
	oy := float64(s.Offset.Y) / w.scale

	w.layer(LayerPanel)
	w.rect(ox, oy, model.RectF{Width: s.Layout.Panel.Width, Height: s.Layout.Panel.Height})

	for _, p := range s.Layout.Placements {
		b := p.Bounds
		sides := []struct {
			cut            bool
			x1, y1, x2, y2 float64
		}{
			{p.CutY.Leading > 0, b.X, b.Y, b.Right(), b.Y},
			{p.CutX.Leading > 0, b.X, b.Y, b.X, b.Bottom()},
			{p.CutX.Trailing > 0, b.Right(), b.Y, b.Right(), b.Bottom()},
			{p.CutY.Trailing > 0, b.X, b.Bottom(), b.Right(), b.Bottom()},
		}
		for _, e := range sides {
			if e.cut {
				w.layer(LayerCut)
			} else {
				w.layer(LayerTile)
			}
			w.line(ox, oy, e.x1, e.y1, e.x2, e.y2)
		}
	}

	if len(s.Layout.Guides) > 0 {
		w.layer(LayerGuide)
		for _, g := range s.Layout.Guides {
			w.line(ox, oy, g.X1, g.Y1, g.X2, g.Y2)
		}
	}

	if s.DoorPx != nil {
		d := *s.DoorPx
		w.layer(LayerDoor)
		w.rect(ox, oy, model.RectF{
			X:      float64(d.X) / w.scale,
			Y:      float64(d.Y) / w.scale,
			Width:  float64(d.Width) / w.scale,
			Height: float64(d.Height) / w.scale,
		})
	}
}
