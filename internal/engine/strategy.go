package engine

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/model"
)

// Strategy lays tiles over one rectangular panel. Layouts are computed in
// millimetres; Project converts them to canvas pixels.
type Strategy interface {
	Method() model.LayingMethod
	Layout(panel model.Size, tile model.TileOptions, dir model.Direction) (model.Layout, error)
}

// ForMethod returns the strategy implementing m.
func ForMethod(m model.LayingMethod) (Strategy, error) {
	switch m {
	case model.MethodDirect:
		return Direct{}, nil
	case model.MethodCentered:
		return Centered{}, nil
	case model.MethodDiagonal:
		return Diagonal{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
}

func validateLayout(panel model.Size, tile model.TileOptions) error {
	if err := ValidatePanel(panel); err != nil {
		return err
	}
	return ValidateTile(tile)
}

// grid combines per-axis segments into placements. With columnsFirst the
// outer loop runs over columns, otherwise over rows.
func grid(xs, ys []segment, columnsFirst bool) []model.Placement {
	out := make([]model.Placement, 0, len(xs)*len(ys))
	if columnsFirst {
		for _, x := range xs {
			for _, y := range ys {
				out = append(out, placement(x, y))
			}
		}
		return out
	}
	for _, y := range ys {
		for _, x := range xs {
			out = append(out, placement(x, y))
		}
	}
	return out
}

func placement(x, y segment) model.Placement {
	p := model.Placement{
		Bounds:  model.RectF{X: x.pos, Y: y.pos, Width: x.size, Height: y.size},
		CutX:    model.EdgeCut{Leading: x.cut.leading, Trailing: x.cut.trailing},
		CutY:    model.EdgeCut{Leading: y.cut.leading, Trailing: y.cut.trailing},
		Carried: x.carried || y.carried,
	}
	p.Whole = p.CutX.IsZero() && p.CutY.IsZero()
	return p
}

// Recount refreshes the whole and consumed tile counters from the placements.
func Recount(l *model.Layout) {
	l.WholeTiles, l.TilesUsed = 0, 0
	for _, p := range l.Placements {
		if p.Whole {
			l.WholeTiles++
		}
		if !p.Carried {
			l.TilesUsed++
		}
	}
}

// Project fills the pixel rectangles and guides of a millimetre layout.
func Project(l model.Layout, sf Scale) model.Layout {
	placements := make([]model.Placement, len(l.Placements))
	for i, p := range l.Placements {
		p.Px = sf.Rect(p.Bounds)
		placements[i] = p
	}
	l.Placements = placements

	l.GuidesPx = nil
	for _, g := range l.Guides {
		l.GuidesPx = append(l.GuidesPx, sf.Line(g))
	}
	return l
}
