package model

import (
	"math"
	"testing"
)

func TestRefineCountNoDecrement(t *testing.T) {
	// 4*300 + 10*3 - 1000 = 230 < 310
	if got := RefineCount(1000, 300, 10, 4, GroutBetweenTiles); got != 4 {
		t.Errorf("expected 4 tiles, got %d", got)
	}
	if got := TilesAlong(1000, 300, 10, GroutBetweenTiles); got != 4 {
		t.Errorf("expected 4 tiles along 1000mm, got %d", got)
	}
}

func TestRefineCountExactRun(t *testing.T) {
	// ceil(900/300) = 3; 900 + 20 - 900 = 20 < 310, nothing to remove
	if got := TilesAlong(900, 300, 10, GroutBetweenTiles); got != 3 {
		t.Errorf("expected 3 tiles along 900mm, got %d", got)
	}
}

func TestRefineCountDecrement(t *testing.T) {
	// 4*300 + 100*3 - 1000 = 500 >= 400: three tiles and their joints already cover 1100mm
	if got := TilesAlong(1000, 300, 100, GroutBetweenTiles); got != 3 {
		t.Errorf("expected 3 tiles with wide grout, got %d", got)
	}
}

func TestRefineCountLegacyFormulaDiffers(t *testing.T) {
	// between: 1200 + 300 - 1150 = 350 < 400, keep 4
	// legacy:  1200 + 399 - 1150 = 449 >= 400, drop to 3
	if got := TilesAlong(1150, 300, 100, GroutBetweenTiles); got != 4 {
		t.Errorf("between formula: expected 4, got %d", got)
	}
	if got := TilesAlong(1150, 300, 100, GroutLegacy); got != 3 {
		t.Errorf("legacy formula: expected 3, got %d", got)
	}
}

func TestRefineCountZero(t *testing.T) {
	if got := RefineCount(0, 300, 10, 0, GroutBetweenTiles); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := TilesAlong(-5, 300, 10, GroutBetweenTiles); got != 0 {
		t.Errorf("expected 0 for negative length, got %d", got)
	}
}

func TestCostRounding(t *testing.T) {
	if got := Cost(3, 1.333); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("expected 4.00, got %f", got)
	}
	if got := Cost(12, 2.5); got != 30 {
		t.Errorf("expected 30, got %f", got)
	}
}

func TestEstimateSurface(t *testing.T) {
	est := EstimateSurface("Floor", Size{Width: 1000, Height: 900}, NewTileOptions(300, 300, 10), GroutBetweenTiles)
	if est.Along != 4 || est.Across != 3 {
		t.Errorf("expected 4x3, got %dx%d", est.Along, est.Across)
	}
	if est.Tiles != 12 {
		t.Errorf("expected 12 tiles, got %d", est.Tiles)
	}
}

func TestEstimateMaterialWasteAndCost(t *testing.T) {
	surfaces := []SurfaceEstimate{
		{Label: "A", Tiles: 12, Laid: 11},
		{Label: "B", Tiles: 8, Laid: 8},
	}
	est := EstimateMaterial(surfaces, 10, 2.5, GroutBetweenTiles)

	if est.TotalTiles != 20 {
		t.Errorf("expected 20 tiles, got %d", est.TotalTiles)
	}
	if est.LaidTiles != 19 {
		t.Errorf("expected 19 laid tiles, got %d", est.LaidTiles)
	}
	if est.TilesWithWaste != 22 {
		t.Errorf("expected 22 tiles with 10%% waste, got %d", est.TilesWithWaste)
	}
	if est.EstimatedCost != 55 {
		t.Errorf("expected cost 55, got %.2f", est.EstimatedCost)
	}
}

func TestEstimateMaterialNoWaste(t *testing.T) {
	est := EstimateMaterial([]SurfaceEstimate{{Tiles: 7}}, 0, 0, GroutBetweenTiles)
	if est.TilesWithWaste != 7 {
		t.Errorf("expected 7 tiles with 0%% waste, got %d", est.TilesWithWaste)
	}
	if est.EstimatedCost != 0 {
		t.Errorf("expected zero cost without pricing, got %.2f", est.EstimatedCost)
	}
}
