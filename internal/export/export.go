// Package export renders computed tile plans to raster images, PDF, DXF and
// spreadsheet files.
package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/piwi3910/TilePlan/internal/model"
)

// Plan colours, shared by every renderer.
var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorTile       = color.RGBA{R: 0xb9, G: 0xcb, B: 0xda, A: 255}
	colorEdge       = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorCut        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorOutline    = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	colorGuide      = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	colorWatermark  = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
)

const (
	watermarkStartSize = 60.0
	watermarkStep      = 2.0
	watermarkMargin    = 10.0
)

// Options controls the decorations added to rendered plans.
type Options struct {
	WatermarkText string
}

// Format is an output file type.
type Format string

const (
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatDXF  Format = "dxf"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatPNG, FormatPDF, FormatDXF, FormatXLSX}

// ParseFormat accepts a format name or file extension, case-insensitively.
// An empty name selects PNG.
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "" {
		return FormatPNG, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", name)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ExportFile writes plan to path in the given format.
func ExportFile(path string, format Format, plan model.Plan, opts Options) error {
	switch format {
	case FormatPNG:
		return ExportPNG(path, plan, opts)
	case FormatPDF:
		return ExportPDF(path, plan, opts)
	case FormatDXF:
		return ExportDXF(path, plan)
	case FormatXLSX:
		return ExportXLSX(path, plan)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// edge is one side of a placement in canvas pixels; cut marks a side
// produced by cutting the tile.
type edge struct {
	x1, y1, x2, y2 int
	cut            bool
}

// placementEdges returns the top, left, right and bottom sides of p.
func placementEdges(p model.Placement, off model.Position) [4]edge {
	r := p.Px.Translate(off)
	return [4]edge{
		{r.X, r.Y, r.Right(), r.Y, p.CutY.Leading > 0},
		{r.X, r.Y, r.X, r.Bottom(), p.CutX.Leading > 0},
		{r.Right(), r.Y, r.Right(), r.Bottom(), p.CutX.Trailing > 0},
		{r.X, r.Bottom(), r.Right(), r.Bottom(), p.CutY.Trailing > 0},
	}
}

// contourTicks returns the extension lines drawn outward from each corner of
// a surface, length px long.
func contourTicks(s model.Surface, length int) [][4]int {
	if length <= 0 {
		return nil
	}
	x0, y0 := s.Offset.X, s.Offset.Y
	x1, y1 := x0+s.SizePx.Width, y0+s.SizePx.Height
	return [][4]int{
		{x0, y0, x0 - length, y0},
		{x0, y0, x0, y0 - length},
		{x1, y0, x1 + length, y0},
		{x1, y0, x1, y0 - length},
		{x0, y1, x0 - length, y1},
		{x0, y1, x0, y1 + length},
		{x1, y1, x1 + length, y1},
		{x1, y1, x1, y1 + length},
	}
}

// fitWatermark shrinks the font size from 60 in steps of 2 until the text,
// as measured by measure, fits in w×h with a 10 unit margin. It reports false
// when no positive size fits.
func fitWatermark(measure func(size float64) (tw, th float64), w, h float64) (float64, bool) {
	for size := watermarkStartSize; size > 0; size -= watermarkStep {
		tw, th := measure(size)
		if tw+watermarkMargin < w && th+watermarkMargin < h {
			return size, true
		}
	}
	return 0, false
}
