package engine

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/model"
)

// LayoutPanel lays one panel, projects it and removes the placements
// swallowed by its door. The returned door rectangle is nil when the panel
// has no door.
func LayoutPanel(panel model.PanelState, strategy Strategy, dir model.Direction, sf Scale) (model.Layout, *model.Rect, error) {
	size := panel.Size()
	if err := ValidateDoor(panel.Door, size); err != nil {
		return model.Layout{}, nil, err
	}

	l, err := strategy.Layout(size, panel.Tile, dir)
	if err != nil {
		return model.Layout{}, nil, err
	}
	l = Project(l, sf)

	if panel.Door == nil {
		return l, nil, nil
	}
	door := DoorRect(sf.Size(size), *panel.Door, sf)
	l.Placements = FilterExcluded(l.Placements, door)
	Recount(&l)
	return l, &door, nil
}

// LayoutPanels lays adjoining panels in order. Each panel after the first
// continues the cut tile left at the far edge of the one before it.
func LayoutPanels(panels []model.PanelState, strategy Strategy, dir model.Direction, sf Scale) ([]model.Layout, []*model.Rect, error) {
	layouts := make([]model.Layout, 0, len(panels))
	doors := make([]*model.Rect, 0, len(panels))

	var carry model.Carry
	for i, p := range panels {
		if i > 0 {
			p = p.WithCarry(carry)
		}
		l, door, err := LayoutPanel(p, strategy, dir, sf)
		if err != nil {
			return nil, nil, fmt.Errorf("panel %d (%s): %w", i+1, p.Label, err)
		}
		layouts = append(layouts, l)
		doors = append(doors, door)
		carry = l.Carry
	}
	return layouts, doors, nil
}
