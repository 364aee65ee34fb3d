package engine

import (
	"testing"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorProject() model.Project {
	p := model.NewProject()
	p.Scheme = model.SchemeFloor
	p.Floor = model.Size{Width: 5000, Height: 4000}
	p.Tile = model.NewTileOptions(500, 500, 2)
	p.PricePerTile = 3.5
	return p
}

func wallsProject() model.Project {
	p := floorProject()
	p.Scheme = model.SchemeWalls
	p.Walls = model.RoomWalls(5000, 4000, 2500, &model.Door{Width: 800, Height: 2000})
	return p
}

func TestPlan_Floor(t *testing.T) {
	plan, err := New(DefaultConfig()).Plan(floorProject())
	require.NoError(t, err)

	require.Len(t, plan.Surfaces, 1)
	s := plan.Surfaces[0]
	assert.Equal(t, "Floor", s.Label)
	assert.Nil(t, s.DoorPx)

	// 10 columns x 8 rows; the last column and last row are cut.
	assert.Len(t, s.Layout.Placements, 80)
	assert.Equal(t, 63, s.Layout.WholeTiles)
	assert.Equal(t, 80, plan.TilesUsed())

	sf := Scale(plan.Scale)
	assert.LessOrEqual(t, 4100*plan.Scale, 720.0)
	assert.Equal(t, sf.ToPixels(50), plan.ContourPx)
	assert.GreaterOrEqual(t, s.Offset.X, plan.ContourPx)
	assert.LessOrEqual(t, s.Offset.X+s.SizePx.Width, 1280)
	assert.LessOrEqual(t, s.Offset.Y+s.SizePx.Height, 720)

	assert.Equal(t, 80, plan.Estimate.TotalTiles)
	assert.Equal(t, 80, plan.Estimate.LaidTiles)
	assert.Equal(t, 88, plan.Estimate.TilesWithWaste)
	assert.InDelta(t, 308.0, plan.Estimate.EstimatedCost, 1e-9)
}

func TestPlan_FloorUsesProjectMethod(t *testing.T) {
	p := floorProject()
	p.Method = model.MethodDiagonal

	plan, err := New(DefaultConfig()).Plan(p)
	require.NoError(t, err)
	l := plan.Surfaces[0].Layout
	assert.Equal(t, model.MethodDiagonal, l.Method)
	assert.NotEmpty(t, l.GuidesPx)
	assert.Empty(t, l.Placements)
}

func TestPlan_Walls(t *testing.T) {
	plan, err := New(DefaultConfig()).Plan(wallsProject())
	require.NoError(t, err)
	require.Len(t, plan.Surfaces, 4)

	for i := 1; i < len(plan.Surfaces); i++ {
		prev, cur := plan.Surfaces[i-1], plan.Surfaces[i]
		assert.Greater(t, cur.Offset.X, prev.Offset.X+prev.SizePx.Width, "walls %d and %d overlap", i, i+1)
		assert.Equal(t, prev.Offset.Y, cur.Offset.Y)
		assert.Equal(t, model.MethodDirect, cur.Layout.Method)
		assert.Equal(t, model.ReverseY, cur.Layout.Direction)
	}

	last := plan.Surfaces[3]
	assert.LessOrEqual(t, last.Offset.X+last.SizePx.Width, 1280)

	for i, s := range plan.Surfaces {
		assert.Equal(t, i == 2, s.DoorPx != nil, "door on wall %d", i+1)
	}

	// Wall 1 ends with a 480 mm cut; wall 2 starts with the remaining 20 mm.
	assert.InDelta(t, 480, plan.Surfaces[0].Layout.Carry.TrailingCutX, tol)
	carried := 0
	for _, p := range plan.Surfaces[1].Layout.Placements {
		if p.Carried {
			carried++
			assert.InDelta(t, 480, p.CutX.Leading, tol)
			assert.InDelta(t, 20, p.Bounds.Width, tol)
		}
	}
	assert.Greater(t, carried, 0)

	// The bottom row sits on the floor.
	for _, s := range plan.Surfaces {
		maxBottom := 0.0
		for _, p := range s.Layout.Placements {
			if p.Bounds.Bottom() > maxBottom {
				maxBottom = p.Bounds.Bottom()
			}
		}
		assert.InDelta(t, 2500-2, maxBottom, tol, s.Label)
	}
}

func TestPlan_WallsDoorRemovesTiles(t *testing.T) {
	p := wallsProject()
	p.Tile = model.NewTileOptions(200, 200, 2)
	withDoor, err := New(DefaultConfig()).Plan(p)
	require.NoError(t, err)

	p.Walls[2].Door = nil
	without, err := New(DefaultConfig()).Plan(p)
	require.NoError(t, err)

	assert.Less(t, len(withDoor.Surfaces[2].Layout.Placements), len(without.Surfaces[2].Layout.Placements))
	assert.Equal(t, len(withDoor.Surfaces[0].Layout.Placements), len(without.Surfaces[0].Layout.Placements))
}

func TestPlan_Validation(t *testing.T) {
	planner := New(DefaultConfig())

	p := floorProject()
	p.Scheme = "roof"
	_, err := planner.Plan(p)
	assert.ErrorIs(t, err, ErrInvalidScheme)

	p = floorProject()
	p.Method = 9
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrUnknownMethod)

	p = floorProject()
	p.Floor.Height = 0
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrInvalidPanel)

	p = floorProject()
	p.Tile.Delimiter = -1
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrInvalidTile)

	p = wallsProject()
	p.Walls[2].Door = &model.Door{Width: 800, Height: 3000}
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrInvalidExclusion)
	assert.True(t, IsValidation(err))

	p = wallsProject()
	p.Walls = nil
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrInvalidPanel)
}

func TestPlan_TooManyTiles(t *testing.T) {
	planner := New(DefaultConfig())

	p := floorProject()
	p.Tile = model.NewTileOptions(1, 1, 0)
	_, err := planner.Plan(p)
	require.ErrorIs(t, err, ErrTooManyTiles)
	assert.True(t, IsValidation(err))

	// Four walls that each fit under the cap still count together.
	p = wallsProject()
	p.Tile = model.NewTileOptions(5, 5, 0)
	p.Walls = model.RoomWalls(3000, 3000, 2500, nil)
	_, err = planner.Plan(p)
	assert.ErrorIs(t, err, ErrTooManyTiles)

	p = floorProject()
	p.Tile = model.NewTileOptions(10, 10, 0)
	p.Floor = model.Size{Width: 5000, Height: 1500}
	_, err = planner.Plan(p)
	assert.NoError(t, err)
}

func TestEstimatePlacements(t *testing.T) {
	tile := model.NewTileOptions(300, 300, 10)
	assert.Equal(t, 5.0*5.0, EstimatePlacements(tile, model.Size{Width: 1000, Height: 1000}))

	plan, err := New(DefaultConfig()).Plan(floorProject())
	require.NoError(t, err)
	bound := EstimatePlacements(floorProject().Tile, floorProject().Floor)
	assert.LessOrEqual(t, float64(len(plan.Surfaces[0].Layout.Placements)), bound)
}

func TestNew_DefaultsCanvas(t *testing.T) {
	p := New(Config{})
	assert.Equal(t, DefaultConfig(), p.Config)
}

func TestCompareMethods(t *testing.T) {
	p := floorProject()
	p.Tile = model.NewTileOptions(600, 300, 2)

	results := New(DefaultConfig()).CompareMethods(p)
	require.Len(t, results, len(model.LayingMethods)+1)

	assert.Equal(t, "Direct (current)", results[0].Scenario.Name)
	for _, r := range results {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, r.Plan.Estimate.TilesWithWaste, r.Purchase)
	}
	assert.Zero(t, results[2].WholeTiles, "diagonal has no placements")

	rotated := results[3].Scenario.Project
	assert.Equal(t, 300.0, rotated.Tile.Width)
	assert.Equal(t, 600.0, rotated.Tile.Height)
}

func TestCompareScenarios_KeepsErrors(t *testing.T) {
	bad := floorProject()
	bad.Floor.Width = -1

	results := New(DefaultConfig()).CompareScenarios([]ComparisonScenario{
		{Name: "ok", Project: floorProject()},
		{Name: "bad", Project: bad},
	})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Greater(t, results[0].TilesUsed, 0)
	assert.ErrorIs(t, results[1].Err, ErrInvalidPanel)
}
