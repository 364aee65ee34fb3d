package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	sheetEstimate   = "Estimate"
	sheetPlacements = "Placements"
)

// ExportXLSX writes the material estimate and the placement list to an
// Excel workbook at path.
func ExportXLSX(path string, plan model.Plan) error {
	f, err := buildWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// RenderXLSX writes the same workbook as ExportXLSX to w.
func RenderXLSX(w io.Writer, plan model.Plan) error {
	f, err := buildWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func buildWorkbook(plan model.Plan) (*excelize.File, error) {
	if len(plan.Surfaces) == 0 {
		return nil, fmt.Errorf("no surfaces to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetEstimate); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(sheetPlacements); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeEstimateSheet(f, plan, header); err != nil {
		f.Close()
		return nil, fmt.Errorf("estimate sheet: %w", err)
	}
	if err := writePlacementsSheet(f, plan, header); err != nil {
		f.Close()
		return nil, fmt.Errorf("placements sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

// setRow writes values into consecutive cells starting at column A of row.
func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func writeEstimateSheet(f *excelize.File, plan model.Plan, header int) error {
	est := plan.Estimate
	rows := [][]any{
		{"Project", plan.Name},
		{"Scheme", string(plan.Scheme)},
		{"Tile width (mm)", plan.Tile.Width},
		{"Tile height (mm)", plan.Tile.Height},
		{"Grout (mm)", plan.Tile.Delimiter},
		{"Grout formula", string(est.GroutFormula)},
		{"Tiles required", est.TotalTiles},
		{"Tiles laid", est.LaidTiles},
		{"Waste (%)", est.WastePercent},
		{"Tiles to buy", est.TilesWithWaste},
		{"Price per tile", est.PricePerTile},
		{"Estimated cost", est.EstimatedCost},
	}
	row := 1
	for _, r := range rows {
		if err := setRow(f, sheetEstimate, row, r...); err != nil {
			return err
		}
		row++
	}

	row++
	headers := []any{"Surface", "Width (mm)", "Height (mm)", "Along", "Across", "Required", "Laid"}
	if err := setRow(f, sheetEstimate, row, headers...); err != nil {
		return err
	}
	if err := styleRow(f, sheetEstimate, row, len(headers), header); err != nil {
		return err
	}
	row++

	for i, se := range est.Surfaces {
		var panel model.Size
		if i < len(plan.Surfaces) {
			panel = plan.Surfaces[i].Layout.Panel
		}
		if err := setRow(f, sheetEstimate, row, se.Label, panel.Width, panel.Height, se.Along, se.Across, se.Tiles, se.Laid); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(sheetEstimate, "A", "A", 20)
}

func writePlacementsSheet(f *excelize.File, plan model.Plan, header int) error {
	headers := []any{"Surface", "#", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)",
		"Cut left", "Cut right", "Cut top", "Cut bottom", "Whole", "Carried"}
	if err := setRow(f, sheetPlacements, 1, headers...); err != nil {
		return err
	}
	if err := styleRow(f, sheetPlacements, 1, len(headers), header); err != nil {
		return err
	}

	row := 2
	for _, s := range plan.Surfaces {
		for i, p := range s.Layout.Placements {
			b := p.Bounds
			if err := setRow(f, sheetPlacements, row,
				s.Label, i+1, b.X, b.Y, b.Width, b.Height,
				p.CutX.Leading, p.CutX.Trailing, p.CutY.Leading, p.CutY.Trailing,
				p.Whole, p.Carried); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
