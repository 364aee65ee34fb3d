package engine

import "github.com/piwi3910/TilePlan/internal/model"

// FilterExcluded drops the placements whose pixel box lies strictly inside
// zone. Placements that touch or cross its boundary are kept unchanged.
func FilterExcluded(placements []model.Placement, zone model.Rect) []model.Placement {
	kept := make([]model.Placement, 0, len(placements))
	for _, p := range placements {
		if p.Px.StrictlyInside(zone) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// DoorRect places a door bottom-centred on a panel of panelPx pixels.
func DoorRect(panelPx model.Size, door model.Door, sf Scale) model.Rect {
	w := sf.ToPixels(door.Width)
	h := sf.ToPixels(door.Height)
	return model.Rect{
		X:      int(panelPx.Width)/2 - w/2,
		Y:      int(panelPx.Height) - h,
		Width:  w,
		Height: h,
	}
}
