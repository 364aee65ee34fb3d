package engine

import (
	"testing"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(x, y, w, h int) model.Placement {
	return model.Placement{Px: model.Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestFilterExcluded(t *testing.T) {
	zone := model.Rect{X: 100, Y: 100, Width: 200, Height: 200}
	placements := []model.Placement{
		px(150, 150, 10, 10), // inside
		px(100, 150, 10, 10), // touches left edge
		px(290, 290, 10, 10), // touches bottom-right corner
		px(250, 250, 100, 100),
		px(0, 0, 10, 10),
	}

	kept := FilterExcluded(placements, zone)
	require.Len(t, kept, 4)
	for _, p := range kept {
		assert.NotEqual(t, 150, p.Px.X)
	}
	assert.Equal(t, placements[3], kept[2], "partial overlap is kept unchanged")
}

func TestDoorRect_BottomCentred(t *testing.T) {
	door := DoorRect(model.Size{Width: 500, Height: 250}, model.Door{Width: 800, Height: 2000}, Scale(0.1))
	assert.Equal(t, model.Rect{X: 210, Y: 50, Width: 80, Height: 200}, door)
}

func TestLayoutPanel_DoorRemovesContainedTiles(t *testing.T) {
	panel := model.PanelState{
		Label:  "Wall",
		Width:  1000,
		Height: 1000,
		Tile:   model.NewTileOptions(100, 100, 0),
		Door:   &model.Door{Width: 300, Height: 400},
	}

	l, door, err := LayoutPanel(panel, Direct{}, model.Forward, Scale(1))
	require.NoError(t, err)
	require.NotNil(t, door)
	assert.Equal(t, model.Rect{X: 350, Y: 600, Width: 300, Height: 400}, *door)

	assert.Len(t, l.Placements, 96)
	assert.Equal(t, 96, l.TilesUsed)
	assert.Equal(t, 96, l.WholeTiles)
	for _, p := range l.Placements {
		assert.False(t, p.Px.StrictlyInside(*door))
	}
}

func TestLayoutPanel_DoorTooLarge(t *testing.T) {
	panel := model.PanelState{
		Width:  1000,
		Height: 1000,
		Tile:   model.NewTileOptions(100, 100, 0),
		Door:   &model.Door{Width: 1200, Height: 400},
	}
	_, _, err := LayoutPanel(panel, Direct{}, model.Forward, Scale(1))
	assert.ErrorIs(t, err, ErrInvalidExclusion)
}

func TestLayoutPanels_Continuity(t *testing.T) {
	tile := model.NewTileOptions(300, 300, 10)
	panels := []model.PanelState{
		{Label: "A", Width: 1000, Height: 320, Tile: tile},
		{Label: "B", Width: 1000, Height: 320, Tile: tile},
		{Label: "C", Width: 700, Height: 320, Tile: tile},
	}

	layouts, doors, err := LayoutPanels(panels, Direct{}, model.Forward, Scale(1))
	require.NoError(t, err)
	require.Len(t, layouts, 3)
	require.Len(t, doors, 3)
	assert.Nil(t, doors[0])

	assert.InDelta(t, 60, layouts[0].Carry.TrailingCutX, tol)
	assert.False(t, layouts[0].Placements[0].Carried)

	// The first tile of B is the rest of the tile cut at the edge of A.
	first := layouts[1].Placements[0]
	assert.True(t, first.Carried)
	assert.InDelta(t, 60, first.CutX.Leading, tol)
	assert.InDelta(t, 240, first.Bounds.Width, tol)
	assert.InDelta(t, 120, layouts[1].Carry.TrailingCutX, tol)
	assert.Equal(t, len(layouts[1].Placements)-1, layouts[1].TilesUsed)

	assert.InDelta(t, 120, layouts[2].Placements[0].CutX.Leading, tol)
}

func TestLayoutPanels_ErrorNamesPanel(t *testing.T) {
	panels := []model.PanelState{
		{Label: "A", Width: 1000, Height: 320, Tile: model.NewTileOptions(300, 300, 10)},
		{Label: "B", Width: 0, Height: 320, Tile: model.NewTileOptions(300, 300, 10)},
	}
	_, _, err := LayoutPanels(panels, Direct{}, model.Forward, Scale(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPanel)
	assert.Contains(t, err.Error(), "panel 2 (B)")
}
