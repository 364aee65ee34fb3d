package engine

import "github.com/piwi3910/TilePlan/internal/model"

// Centered starts from a tile centred on the panel and works outwards, so
// the cut tiles on opposite edges are the same width.
type Centered struct{}

func (Centered) Method() model.LayingMethod { return model.MethodCentered }

// Layout ignores carried offsets and direction: the layout is anchored on
// the panel centre. Placements are emitted strip by strip (columns), centre
// strip first, then the strips forward and backward of it.
func (Centered) Layout(panel model.Size, tile model.TileOptions, dir model.Direction) (model.Layout, error) {
	if err := validateLayout(panel, tile); err != nil {
		return model.Layout{}, err
	}

	xs := centeredAxis(panel.Width, tile.Width, tile.Delimiter)
	ys := centeredAxis(panel.Height, tile.Height, tile.Delimiter)

	l := model.Layout{
		Method:     model.MethodCentered,
		Panel:      panel,
		Direction:  dir,
		Placements: grid(xs, ys, true),
		Carry: model.Carry{
			TrailingCutX: farCut(xs, tile.Width, panel.Width),
			TrailingCutY: farCut(ys, tile.Height, panel.Height),
		},
	}
	Recount(&l)
	return l, nil
}

// farCut returns the part of the far-edge tile that stays on the panel,
// measured from its nominal start, or zero when that tile is whole.
func farCut(segs []segment, t, extent float64) float64 {
	for _, s := range segs {
		if s.cut.trailing > 0 && s.pos+s.size >= extent-eps {
			return t - s.cut.trailing
		}
	}
	return 0
}
