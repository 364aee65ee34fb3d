package engine

import (
	"math"

	"github.com/piwi3910/TilePlan/internal/model"
)

// Diagonal produces the 45° setting-out lines for a tile laid on its corner.
// No placements are generated; every tile touching the perimeter is cut.
type Diagonal struct{}

func (Diagonal) Method() model.LayingMethod { return model.MethodDiagonal }

// Layout spaces the line pairs one tile diagonal apart, symmetric about the
// panel centre. Grout is not included in the spacing.
func (Diagonal) Layout(panel model.Size, tile model.TileOptions, dir model.Direction) (model.Layout, error) {
	if err := validateLayout(panel, tile); err != nil {
		return model.Layout{}, err
	}

	d := math.Hypot(tile.Width, tile.Height)
	if tile.Width == tile.Height {
		d = math.Sqrt2 * tile.Width
	}
	a := panel.Height / 2 * math.Tan(math.Pi/4)
	cx := panel.Width / 2

	box := model.RectF{Width: panel.Width, Height: panel.Height}
	first := cx - d/2
	start := first - math.Ceil((first+a)/d)*d

	var guides []model.Line
	for pos := start; pos-a < panel.Width; pos += d {
		for _, l := range []model.Line{
			{X1: pos - a, Y1: 0, X2: pos + a, Y2: panel.Height},
			{X1: pos + a, Y1: 0, X2: pos - a, Y2: panel.Height},
		} {
			if clipped, ok := l.ClipTo(box); ok {
				guides = append(guides, clipped)
			}
		}
	}

	return model.Layout{
		Method:       model.MethodDiagonal,
		Panel:        panel,
		Direction:    dir,
		Guides:       guides,
		PerimeterCut: true,
	}, nil
}
