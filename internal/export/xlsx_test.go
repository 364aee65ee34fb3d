package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TilePlan/internal/model"
)

func TestExportXLSX(t *testing.T) {
	plan := buildWallsPlan(t)
	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	require.NoError(t, ExportXLSX(path, plan))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(sheetEstimate, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Bathroom", name)

	toBuy, err := f.GetCellValue(sheetEstimate, "B10")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(plan.Estimate.TilesWithWaste), toBuy)

	rows, err := f.GetRows(sheetPlacements)
	require.NoError(t, err)
	placements := 0
	for _, s := range plan.Surfaces {
		placements += len(s.Layout.Placements)
	}
	assert.Len(t, rows, placements+1, "placement rows plus header")
}

func TestExportXLSX_NoSurfaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.Error(t, ExportXLSX(path, model.Plan{}))
}
