package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/TilePlan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the plan drawing followed by a summary page to path.
func ExportPDF(path string, plan model.Plan, opts Options) error {
	pdf, err := buildPDF(plan, opts)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// RenderPDF writes the same document as ExportPDF to w.
func RenderPDF(w io.Writer, plan model.Plan, opts Options) error {
	pdf, err := buildPDF(plan, opts)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(plan model.Plan, opts Options) (*fpdf.Fpdf, error) {
	if len(plan.Surfaces) == 0 {
		return nil, fmt.Errorf("no surfaces to export")
	}
	if plan.Canvas.Width <= 0 || plan.Canvas.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas %s", plan.Canvas)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(plan.Name, true)

	pdf.AddPage()
	renderPlanPage(pdf, plan, opts)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, plan); err != nil {
		return nil, err
	}
	return pdf, pdf.Error()
}

// pageMapper converts canvas pixels to page millimetres.
type pageMapper struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func (m pageMapper) x(px float64) float64 { return m.offsetX + px*m.scale }
func (m pageMapper) y(px float64) float64 { return m.offsetY + px*m.scale }

func (m pageMapper) rect(pdf *fpdf.Fpdf, r model.Rect, off model.Position, style string) {
	pdf.Rect(m.x(float64(r.X+off.X)), m.y(float64(r.Y+off.Y)),
		float64(r.Width)*m.scale, float64(r.Height)*m.scale, style)
}

func (m pageMapper) line(pdf *fpdf.Fpdf, x1, y1, x2, y2 float64) {
	pdf.Line(m.x(x1), m.y(y1), m.x(x2), m.y(y2))
}

func setDraw(pdf *fpdf.Fpdf, c color.RGBA) { pdf.SetDrawColor(int(c.R), int(c.G), int(c.B)) }
func setFill(pdf *fpdf.Fpdf, c color.RGBA) { pdf.SetFillColor(int(c.R), int(c.G), int(c.B)) }

// renderPlanPage draws the whole canvas scaled into the page drawing area.
func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan, opts Options) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s, tile %s mm, grout %g mm", planTitle(plan), plan.Scheme, plan.Tile.Size(), plan.Tile.Delimiter)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Surfaces: %d | Tiles used: %d | Whole: %d | To buy: %d | Cost: %.2f",
		len(plan.Surfaces), plan.TilesUsed(), plan.WholeTiles(), plan.Estimate.TilesWithWaste, plan.Estimate.EstimatedCost)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/plan.Canvas.Width, drawHeight/plan.Canvas.Height)
	m := pageMapper{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-plan.Canvas.Width*scale)/2,
		offsetY: drawAreaTop,
	}

	// Canvas frame
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(m.offsetX, m.offsetY, plan.Canvas.Width*scale, plan.Canvas.Height*scale, "D")

	for _, s := range plan.Surfaces {
		renderSurface(pdf, m, s, plan.ContourPx)
	}

	if opts.WatermarkText != "" {
		drawPDFWatermark(pdf, opts.WatermarkText, m.offsetX, m.offsetY, plan.Canvas.Width*scale, plan.Canvas.Height*scale)
	}

	drawLegend(pdf, m.offsetY+plan.Canvas.Height*scale+4)
}

func renderSurface(pdf *fpdf.Fpdf, m pageMapper, s model.Surface, contourPx int) {
	pdf.SetLineWidth(0.15)

	if s.Layout.PerimeterCut {
		setFill(pdf, colorTile)
		setDraw(pdf, colorCut)
		m.rect(pdf, s.SizePx, s.Offset, "FD")
		setDraw(pdf, colorGuide)
		for _, g := range s.Layout.GuidesPx {
			m.line(pdf, g.X1+float64(s.Offset.X), g.Y1+float64(s.Offset.Y), g.X2+float64(s.Offset.X), g.Y2+float64(s.Offset.Y))
		}
	} else {
		setDraw(pdf, colorOutline)
		m.rect(pdf, s.SizePx, s.Offset, "D")
	}

	setFill(pdf, colorTile)
	for _, p := range s.Layout.Placements {
		m.rect(pdf, p.Px, s.Offset, "F")
		for _, e := range placementEdges(p, s.Offset) {
			if e.cut {
				setDraw(pdf, colorCut)
			} else {
				setDraw(pdf, colorEdge)
			}
			m.line(pdf, float64(e.x1), float64(e.y1), float64(e.x2), float64(e.y2))
		}
	}

	if s.DoorPx != nil {
		door := *s.DoorPx
		setFill(pdf, colorBackground)
		m.rect(pdf, door, s.Offset, "F")
		setDraw(pdf, colorCut)
		d := door.Translate(s.Offset)
		m.line(pdf, float64(d.X), float64(d.Bottom()), float64(d.X), float64(d.Y))
		m.line(pdf, float64(d.X), float64(d.Y), float64(d.Right()), float64(d.Y))
		m.line(pdf, float64(d.Right()), float64(d.Y), float64(d.Right()), float64(d.Bottom()))
	}

	setDraw(pdf, colorOutline)
	for _, t := range contourTicks(s, contourPx) {
		m.line(pdf, float64(t[0]), float64(t[1]), float64(t[2]), float64(t[3]))
	}

	// Surface label above the panel
	if s.Label != "" {
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(m.x(float64(s.Offset.X)), m.y(float64(s.Offset.Y))-4)
		pdf.CellFormat(pdf.GetStringWidth(s.Label)+1, 3, s.Label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// drawPDFWatermark centres semi-transparent text over the drawing at the
// largest size that fits.
func drawPDFWatermark(pdf *fpdf.Fpdf, text string, x, y, w, h float64) {
	measure := func(size float64) (float64, float64) {
		pdf.SetFont("Helvetica", "B", size)
		return pdf.GetStringWidth(text), pointsToMM(size)
	}
	size, ok := fitWatermark(measure, w, h)
	if !ok {
		return
	}

	pdf.SetFont("Helvetica", "B", size)
	tw := pdf.GetStringWidth(text)
	th := pointsToMM(size)
	pdf.SetAlpha(0.5, "Normal")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x+w/2-tw/2, y+h/2-th/2)
	pdf.CellFormat(tw, th, text, "", 0, "C", false, 0, "")
	pdf.SetAlpha(1, "Normal")
}

func pointsToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

// drawLegend explains the edge colours.
func drawLegend(pdf *fpdf.Fpdf, y float64) {
	items := []struct {
		c     color.RGBA
		label string
	}{
		{colorEdge, "Whole edge"},
		{colorCut, "Cut edge"},
		{colorGuide, "Diagonal guide"},
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetLineWidth(0.6)
	x := marginLeft
	for _, it := range items {
		setDraw(pdf, it.c)
		pdf.Line(x, y+2, x+6, y+2)
		pdf.SetXY(x+7, y)
		w := pdf.GetStringWidth(it.label) + 2
		pdf.CellFormat(w, 4, it.label, "", 0, "L", false, 0, "")
		x += w + 12
	}
	pdf.SetLineWidth(0.2)
}

// renderSummaryPage draws the estimate and per-surface statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan) error {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Tile Plan Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	if err := renderPlanQR(pdf, plan, pageWidth-marginRight-qrSize, marginTop+16); err != nil {
		return err
	}

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Material Estimate", "", 0, "L", false, 0, "")
	y += 9

	est := plan.Estimate
	summaryItems := []struct {
		label string
		value string
	}{
		{"Tile", fmt.Sprintf("%s mm, grout %g mm", plan.Tile.Size(), plan.Tile.Delimiter)},
		{"Tiles Required", fmt.Sprintf("%d", est.TotalTiles)},
		{"Tiles Laid", fmt.Sprintf("%d", plan.TilesUsed())},
		{"Whole Tiles", fmt.Sprintf("%d", plan.WholeTiles())},
		{"Waste Allowance", fmt.Sprintf("%.0f%%", est.WastePercent)},
		{"Tiles To Buy", fmt.Sprintf("%d", est.TilesWithWaste)},
		{"Price Per Tile", fmt.Sprintf("%.2f", est.PricePerTile)},
		{"Estimated Cost", fmt.Sprintf("%.2f", est.EstimatedCost)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-surface breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Surface Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 45, 35, 30, 30, 30, 30}
	headers := []string{"Surface", "Size (mm)", "Grid", "Required", "Laid", "Whole", "Cut"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, s := range plan.Surfaces {
		var se model.SurfaceEstimate
		if i < len(est.Surfaces) {
			se = est.Surfaces[i]
		}
		rowData := []string{
			s.Label,
			s.Layout.Panel.String(),
			fmt.Sprintf("%d x %d", se.Along, se.Across),
			fmt.Sprintf("%d", se.Tiles),
			fmt.Sprintf("%d", s.Layout.TilesUsed),
			fmt.Sprintf("%d", s.Layout.WholeTiles),
			fmt.Sprintf("%d", s.Layout.CutTiles()),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by TilePlan", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

func planTitle(plan model.Plan) string {
	if plan.Name != "" {
		return plan.Name
	}
	return "Tile plan"
}
