package model

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// Offcut represents a usable rectangular remnant of a cut tile.
type Offcut struct {
	Surface string  `json:"surface"` // Surface whose cut started the tile
	Width   float64 `json:"width"`   // mm
	Height  float64 `json:"height"`  // mm
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// Usable reports whether the remnant is large enough to cut from.
func (o Offcut) Usable() bool {
	return o.Width >= MinOffcutDimension && o.Height >= MinOffcutDimension
}

// OffcutReport describes how the cut pieces of a plan can share tiles.
type OffcutReport struct {
	CutPieces    int      `json:"cut_pieces"`     // cut placements needing a piece of tile
	FromOffcuts  int      `json:"from_offcuts"`   // pieces cut from the remnant of another piece's tile
	TilesForCuts int      `json:"tiles_for_cuts"` // tiles started to supply cut pieces
	Offcuts      []Offcut `json:"offcuts"`        // usable remnants left at the end
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
