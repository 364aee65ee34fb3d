package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TilePlan/internal/model"
)

func TestCollectCutLabels(t *testing.T) {
	plan := buildFloorPlan(t, model.MethodDirect)
	labels := CollectCutLabels(plan)

	s := plan.Surfaces[0]
	require.Len(t, labels, s.Layout.CutTiles())
	for _, l := range labels {
		assert.Equal(t, s.Label, l.Surface)
		p := s.Layout.Placements[l.Index-1]
		assert.False(t, p.Whole, "label %d points at a whole tile", l.Index)
		assert.False(t, l.CutWidth == 0 && l.CutHeight == 0, "label %d has no cut recorded", l.Index)
		assert.Equal(t, p.Bounds.Width, l.Width, "label %d width", l.Index)
		assert.Equal(t, p.Bounds.Height, l.Height, "label %d height", l.Index)
	}
}

func TestCollectCutLabels_CarriedAcrossWalls(t *testing.T) {
	plan := buildWallsPlan(t)
	carried := 0
	for _, l := range CollectCutLabels(plan) {
		if l.Carried {
			carried++
			assert.NotEqual(t, plan.Surfaces[0].Label, l.Surface, "the first wall cannot carry a tile")
		}
	}
	assert.Positive(t, carried, "expected carried cut tiles on later walls")
}

func TestExportCutLabels(t *testing.T) {
	plan := buildWallsPlan(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportCutLabels(path, plan))
	assertFile(t, path, 1000)
}

func TestExportCutLabels_NoCuts(t *testing.T) {
	plan := model.Plan{Surfaces: []model.Surface{{
		Label:  "Floor",
		Layout: model.Layout{Placements: []model.Placement{{Whole: true}}, WholeTiles: 1},
	}}}
	path := filepath.Join(t.TempDir(), "labels.pdf")

	assert.Error(t, ExportCutLabels(path, plan))
}
