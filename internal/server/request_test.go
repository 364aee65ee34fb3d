package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/model"
)

func decodeRequest(t *testing.T, body string) drawRequest {
	t.Helper()
	var req drawRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestToProject_Floor(t *testing.T) {
	req := decodeRequest(t, `{"scheme":"floor","name":"Hall","tile":{"width":600,"length":300,"delimiter":3},
		"width":4000,"length":5000,"options":{"method":2},"format":"DXF","price_per_tile":1.5,"waste_percent":5}`)

	p, format, err := req.toProject(model.NewProject())
	require.NoError(t, err)

	assert.Equal(t, model.SchemeFloor, p.Scheme)
	assert.Equal(t, "Hall", p.Name)
	assert.Equal(t, model.MethodCentered, p.Method)
	assert.Equal(t, model.Size{Width: 5000, Height: 4000}, p.Floor, "room length runs along X")
	assert.Equal(t, model.NewTileOptions(600, 300, 3), p.Tile)
	assert.Equal(t, 1.5, p.PricePerTile)
	assert.Equal(t, 5.0, p.WastePercent)
	assert.Equal(t, export.FormatDXF, format)
}

func TestToProject_Walls(t *testing.T) {
	req := decodeRequest(t, `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},
		"width":4000,"length":5000,"options":{"height":2500,"door":{"width":800,"height":2000}},"grout_formula":"legacy"}`)

	p, format, err := req.toProject(model.NewProject())
	require.NoError(t, err)

	assert.Equal(t, model.SchemeWalls, p.Scheme)
	assert.Equal(t, export.FormatPNG, format)
	assert.Equal(t, model.GroutLegacy, p.GroutFormula)
	require.Len(t, p.Walls, 4)
	assert.Equal(t, 5000.0, p.Walls[0].Width)
	assert.Equal(t, 4000.0, p.Walls[1].Width)
	assert.Equal(t, 2500.0, p.Walls[3].Height)
	require.NotNil(t, p.Walls[2].Door)
	assert.Equal(t, model.Door{Width: 800, Height: 2000}, *p.Walls[2].Door)
}

func TestToProject_WallsWithoutDoor(t *testing.T) {
	req := decodeRequest(t, `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},
		"width":4000,"length":5000,"options":{"height":2500}}`)

	p, _, err := req.toProject(model.NewProject())
	require.NoError(t, err)
	for _, w := range p.Walls {
		assert.Nil(t, w.Door)
	}
}

func TestToProject_BadGroutFormula(t *testing.T) {
	req := decodeRequest(t, `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},
		"width":4000,"length":5000,"options":{"height":2500},"grout_formula":"other"}`)

	_, _, err := req.toProject(model.NewProject())
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
}
