package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/TilePlan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// CutLabel holds the data encoded into each cut tile label's QR code.
type CutLabel struct {
	Surface   string  `json:"surface"`
	Index     int     `json:"index"` // 1-based placement number on the surface
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	Width     float64 `json:"width_mm"` // visible size after cutting
	Height    float64 `json:"height_mm"`
	CutWidth  float64 `json:"cut_x_mm,omitempty"` // removed along X
	CutHeight float64 `json:"cut_y_mm,omitempty"` // removed along Y
	Carried   bool    `json:"carried,omitempty"`
}

// PlanSummary is encoded into the QR code on the summary page.
type PlanSummary struct {
	ProjectID string       `json:"id"`
	Name      string       `json:"name"`
	Scheme    model.Scheme `json:"scheme"`
	TileW     float64      `json:"tile_w"`
	TileH     float64      `json:"tile_h"`
	Grout     float64      `json:"grout"`
	Tiles     int          `json:"tiles"`
	ToBuy     int          `json:"to_buy"`
	Cost      float64      `json:"cost"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectCutLabels lists every cut placement of the plan in surface order.
func CollectCutLabels(plan model.Plan) []CutLabel {
	var labels []CutLabel
	for _, s := range plan.Surfaces {
		for i, p := range s.Layout.Placements {
			if p.Whole {
				continue
			}
			labels = append(labels, CutLabel{
				Surface:   s.Label,
				Index:     i + 1,
				X:         p.Bounds.X,
				Y:         p.Bounds.Y,
				Width:     p.Bounds.Width,
				Height:    p.Bounds.Height,
				CutWidth:  p.CutX.Leading + p.CutX.Trailing,
				CutHeight: p.CutY.Leading + p.CutY.Trailing,
				Carried:   p.Carried,
			})
		}
	}
	return labels
}

// ExportCutLabels generates a PDF of QR-coded labels, one per cut tile, so
// each piece can be marked before it is laid. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportCutLabels(path string, plan model.Plan) error {
	labels := CollectCutLabels(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no cut tiles to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %s #%d: %w", label.Surface, label.Index, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// placeQR encodes data as a QR code and draws it at x, y.
func placeQR(pdf *fpdf.Fpdf, name string, data any, x, y float64) error {
	qrData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal qr payload: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderPlanQR places a QR code with the plan summary at x, y.
func renderPlanQR(pdf *fpdf.Fpdf, plan model.Plan, x, y float64) error {
	summary := PlanSummary{
		ProjectID: plan.ProjectID,
		Name:      plan.Name,
		Scheme:    plan.Scheme,
		TileW:     plan.Tile.Width,
		TileH:     plan.Tile.Height,
		Grout:     plan.Tile.Delimiter,
		Tiles:     plan.TilesUsed(),
		ToBuy:     plan.Estimate.TilesWithWaste,
		Cost:      plan.Estimate.EstimatedCost,
	}
	return placeQR(pdf, "qr_plan", summary, x, y)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info CutLabel) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	if err := placeQR(pdf, fmt.Sprintf("qr_label_%d", n), info, qrX, qrY); err != nil {
		return err
	}

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Surface and number (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%s #%d", info.Surface, info.Index)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Visible size
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("@ (%.0f, %.0f)", info.X, info.Y)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	// Offcut continued from the previous surface
	if info.Carried {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Continues previous wall", "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}
