package model

import "math"

// GroutFormula selects how the tile-count refinement accounts for grout.
type GroutFormula string

const (
	// GroutBetweenTiles counts one joint between each pair of tiles: g*(c-1).
	GroutBetweenTiles GroutFormula = "between"
	// GroutLegacy reproduces the historic g*c-1 term, kept for comparing
	// against estimates produced by the earlier calculator.
	GroutLegacy GroutFormula = "legacy"
)

// groutLength returns the total grout along a run of c tiles.
func (f GroutFormula) groutLength(g float64, c int) float64 {
	if f == GroutLegacy {
		return g*float64(c) - 1
	}
	return g * float64(c-1)
}

// RefineCount adjusts a raw ceil-based tile count c for a run of length l
// covered by tiles of length t separated by grout g. When the run of c tiles
// and their joints overshoots l by at least one tile plus one joint, the last
// tile is not needed.
func RefineCount(l, t, g float64, c int, formula GroutFormula) int {
	if c <= 0 {
		return c
	}
	if float64(c)*t+formula.groutLength(g, c)-l >= t+g {
		c--
	}
	return c
}

// TilesAlong returns the refined number of tiles needed to cover length l.
func TilesAlong(l, t, g float64, formula GroutFormula) int {
	if l <= 0 || t <= 0 {
		return 0
	}
	return RefineCount(l, t, g, int(math.Ceil(l/t)), formula)
}

// Cost multiplies a tile count by the unit price, rounded to cents.
func Cost(count int, price float64) float64 {
	return math.Round(float64(count)*price*100) / 100
}

// SurfaceEstimate is the tile requirement for one panel.
type SurfaceEstimate struct {
	Label  string `json:"label"`
	Along  int    `json:"along"`  // tiles along the panel width
	Across int    `json:"across"` // tiles along the panel height
	Tiles  int    `json:"tiles"`
	Laid   int    `json:"laid"` // tiles actually consumed by the layout
}

// MaterialEstimate holds the results of a tile purchasing calculation.
type MaterialEstimate struct {
	Surfaces       []SurfaceEstimate `json:"surfaces"`
	TotalTiles     int               `json:"total_tiles"`      // Sum of refined per-surface counts
	LaidTiles      int               `json:"laid_tiles"`       // Sum of tiles consumed by the layouts
	WastePercent   float64           `json:"waste_percent"`    // Waste factor applied (e.g., 10 for 10%)
	TilesWithWaste int               `json:"tiles_with_waste"` // Recommended purchase including waste
	PricePerTile   float64           `json:"price_per_tile"`
	EstimatedCost  float64           `json:"estimated_cost"`
	GroutFormula   GroutFormula      `json:"grout_formula"`
}

// EstimateSurface computes the refined grid count for one panel.
func EstimateSurface(label string, panel Size, tile TileOptions, formula GroutFormula) SurfaceEstimate {
	along := TilesAlong(panel.Width, tile.Width, tile.Delimiter, formula)
	across := TilesAlong(panel.Height, tile.Height, tile.Delimiter, formula)
	return SurfaceEstimate{
		Label:  label,
		Along:  along,
		Across: across,
		Tiles:  along * across,
	}
}

// EstimateMaterial totals the surface estimates and applies the waste factor
// and unit price.
func EstimateMaterial(surfaces []SurfaceEstimate, wastePercent, pricePerTile float64, formula GroutFormula) MaterialEstimate {
	est := MaterialEstimate{
		Surfaces:     surfaces,
		WastePercent: wastePercent,
		PricePerTile: pricePerTile,
		GroutFormula: formula,
	}
	for _, s := range surfaces {
		est.TotalTiles += s.Tiles
		est.LaidTiles += s.Laid
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.TilesWithWaste = int(math.Ceil(float64(est.TotalTiles)*wasteFactor - 1e-9))
	if est.TilesWithWaste < est.TotalTiles {
		est.TilesWithWaste = est.TotalTiles
	}
	est.EstimatedCost = Cost(est.TilesWithWaste, pricePerTile)
	return est
}
