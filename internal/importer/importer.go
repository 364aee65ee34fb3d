// Package importer reads room geometry from files: wall lists from CSV or
// Excel sheets and floor outlines from DXF drawings. It supports automatic
// delimiter detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/TilePlan/internal/engine"
	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the walls read from a list together with any problems.
type ImportResult struct {
	Walls    []model.Wall
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label      int
	Width      int
	Height     int
	DoorWidth  int
	DoorHeight int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":       {"label", "name", "wall", "panel", "description"},
	"width":       {"width", "w", "length", "len"},
	"height":      {"height", "h"},
	"door width":  {"door width", "door_width", "doorwidth", "door w"},
	"door height": {"door height", "door_height", "doorheight", "door h"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		cols := len(records[0])
		score := 0
		for _, row := range records {
			if len(row) == cols {
				score++
			}
		}
		if weighted := score*10 + cols; weighted > bestScore {
			best, bestScore = delim, weighted
		}
	}
	return best
}

func readCSV(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// reports false and a positional mapping (label, width, height, door width,
// door height) when the row is not a header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Label: -1, Width: -1, Height: -1, DoorWidth: -1, DoorHeight: -1}
	roles := map[string]*int{
		"label":       &m.Label,
		"width":       &m.Width,
		"height":      &m.Height,
		"door width":  &m.DoorWidth,
		"door height": &m.DoorHeight,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *roles[role] == -1 {
					*roles[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, DoorWidth: 3, DoorHeight: 4}, false
	}
	return m, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseLength(row []string, idx int, rowLabel, name string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, name)
	}
	return v, ""
}

// parseRow extracts a Wall from a row. It returns the wall, any error
// message and any warning message.
func parseRow(row []string, m ColumnMapping, rowLabel string, wallCount int) (model.Wall, string, string) {
	label := getCell(row, m.Label)
	if label == "" {
		label = fmt.Sprintf("Wall %d", wallCount+1)
	}

	width, errMsg := parseLength(row, m.Width, rowLabel, "width")
	if errMsg != "" {
		return model.Wall{}, errMsg, ""
	}
	height, errMsg := parseLength(row, m.Height, rowLabel, "height")
	if errMsg != "" {
		return model.Wall{}, errMsg, ""
	}
	wall := model.Wall{Label: label, Width: width, Height: height}

	dw, dh := getCell(row, m.DoorWidth), getCell(row, m.DoorHeight)
	switch {
	case dw == "" && dh == "":
		return wall, "", ""
	case dw == "" || dh == "":
		return wall, "", fmt.Sprintf("%s: Door needs both width and height, ignoring door", rowLabel)
	}

	doorW, errMsg := parseLength(row, m.DoorWidth, rowLabel, "door width")
	if errMsg != "" {
		return model.Wall{}, errMsg, ""
	}
	doorH, errMsg := parseLength(row, m.DoorHeight, rowLabel, "door height")
	if errMsg != "" {
		return model.Wall{}, errMsg, ""
	}
	door := &model.Door{Width: doorW, Height: doorH}
	if err := engine.ValidateDoor(door, model.Size{Width: width, Height: height}); err != nil {
		return model.Wall{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	wall.Door = door
	return wall, "", ""
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports walls from a CSV file, detecting the delimiter and
// mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports walls from a CSV reader with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports walls from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognised header still has a non-numeric width column.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		wall, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Walls))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Walls = append(result.Walls, wall)
	}

	if len(result.Walls) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No valid walls found in file")
	}
	return result
}
