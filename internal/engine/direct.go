package engine

import "github.com/piwi3910/TilePlan/internal/model"

// Direct lays rows of tiles from one corner. The first column continues a
// carried cut; the last row and column are cut flush with the panel edges.
type Direct struct{}

func (Direct) Method() model.LayingMethod { return model.MethodDirect }

func (Direct) Layout(panel model.Size, tile model.TileOptions, dir model.Direction) (model.Layout, error) {
	if err := validateLayout(panel, tile); err != nil {
		return model.Layout{}, err
	}

	xs, carryX := directAxis(panel.Width, tile.Width, tile.Delimiter, tile.LeadingOffsetX, dir.Has(model.ReverseX))
	ys, carryY := directAxis(panel.Height, tile.Height, tile.Delimiter, tile.LeadingOffsetY, dir.Has(model.ReverseY))

	l := model.Layout{
		Method:     model.MethodDirect,
		Panel:      panel,
		Direction:  dir,
		Placements: grid(xs, ys, false),
		Carry:      model.Carry{TrailingCutX: carryX, TrailingCutY: carryY},
	}
	Recount(&l)
	return l, nil
}
