package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/TilePlan/internal/model"
)

// MaxPlacements caps the tiles one plan may lay across all its surfaces.
const MaxPlacements = 1_000_000

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ValidatePanel rejects panels with a non-positive or non-finite side.
func ValidatePanel(panel model.Size) error {
	if !positive(panel.Width) || !positive(panel.Height) {
		return fmt.Errorf("%w: size %s must be positive", ErrInvalidPanel, panel)
	}
	return nil
}

// ValidateTile checks the tile size, the grout and any carried offsets.
func ValidateTile(tile model.TileOptions) error {
	if !positive(tile.Width) || !positive(tile.Height) {
		return fmt.Errorf("%w: size %s must be positive", ErrInvalidTile, tile.Size())
	}
	if tile.Delimiter < 0 || math.IsNaN(tile.Delimiter) || math.IsInf(tile.Delimiter, 0) {
		return fmt.Errorf("%w: delimiter %g must not be negative", ErrInvalidTile, tile.Delimiter)
	}
	if tile.LeadingOffsetX < 0 || tile.LeadingOffsetX >= tile.Width {
		return fmt.Errorf("%w: leading offset x %g outside [0, %g)", ErrInvalidTile, tile.LeadingOffsetX, tile.Width)
	}
	if tile.LeadingOffsetY < 0 || tile.LeadingOffsetY >= tile.Height {
		return fmt.Errorf("%w: leading offset y %g outside [0, %g)", ErrInvalidTile, tile.LeadingOffsetY, tile.Height)
	}
	return nil
}

// ValidateDoor checks that a door fits on its panel.
func ValidateDoor(door *model.Door, panel model.Size) error {
	if door == nil {
		return nil
	}
	if !positive(door.Width) || !positive(door.Height) {
		return fmt.Errorf("%w: door %gx%g must be positive", ErrInvalidExclusion, door.Width, door.Height)
	}
	if door.Width > panel.Width || door.Height > panel.Height {
		return fmt.Errorf("%w: door %gx%g larger than panel %s", ErrInvalidExclusion, door.Width, door.Height, panel)
	}
	return nil
}

// ValidateProject checks everything Plan needs before any layout work.
func ValidateProject(p model.Project) error {
	if err := ValidateTile(p.Tile); err != nil {
		return err
	}
	switch p.Scheme {
	case model.SchemeFloor:
		if !p.Method.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownMethod, int(p.Method))
		}
		if err := ValidatePanel(p.Floor); err != nil {
			return err
		}
		return checkPlacements(p.Tile, p.Floor)
	case model.SchemeWalls:
		if len(p.Walls) == 0 {
			return fmt.Errorf("%w: no walls", ErrInvalidPanel)
		}
		panels := make([]model.Size, len(p.Walls))
		for i, w := range p.Walls {
			size := model.Size{Width: w.Width, Height: w.Height}
			if err := ValidatePanel(size); err != nil {
				return fmt.Errorf("wall %d (%s): %w", i+1, w.Label, err)
			}
			if err := ValidateDoor(w.Door, size); err != nil {
				return fmt.Errorf("wall %d (%s): %w", i+1, w.Label, err)
			}
			panels[i] = size
		}
		return checkPlacements(p.Tile, panels...)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScheme, p.Scheme)
	}
}

// EstimatePlacements returns an upper bound on the tiles a grid of tile
// needs to cover panel, counting one extra column and row for the cut
// tiles at both edges.
func EstimatePlacements(tile model.TileOptions, panel model.Size) float64 {
	cols := math.Ceil(panel.Width/(tile.Width+tile.Delimiter)) + 1
	rows := math.Ceil(panel.Height/(tile.Height+tile.Delimiter)) + 1
	return cols * rows
}

func checkPlacements(tile model.TileOptions, panels ...model.Size) error {
	var total float64
	for _, panel := range panels {
		total += EstimatePlacements(tile, panel)
	}
	if total > MaxPlacements {
		return fmt.Errorf("%w: about %.0f tiles needed, limit is %d", ErrTooManyTiles, total, MaxPlacements)
	}
	return nil
}
