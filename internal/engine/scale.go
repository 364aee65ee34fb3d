package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/TilePlan/internal/model"
)

const (
	scaleShrink = 0.9
	scaleGrow   = 1.0625

	// maxScaleIterations bounds AutoFitScale. A 1e12 mm surface on an HD
	// canvas needs under 200 shrink steps.
	maxScaleIterations = 4096
)

// Scale is a pixels-per-millimetre factor.
type Scale float64

// ToPixels converts a length in millimetres to whole pixels, truncating.
func (s Scale) ToPixels(mm float64) int {
	return int(math.Floor(mm * float64(s)))
}

// Size projects a millimetre size onto the canvas.
func (s Scale) Size(mm model.Size) model.Size {
	return model.Size{
		Width:  float64(s.ToPixels(mm.Width)),
		Height: float64(s.ToPixels(mm.Height)),
	}
}

// Rect projects a millimetre rectangle. The start and end edges are
// converted separately so rectangles that share an edge in millimetres share
// it in pixels too.
func (s Scale) Rect(r model.RectF) model.Rect {
	x0, y0 := s.ToPixels(r.X), s.ToPixels(r.Y)
	return model.Rect{
		X:      x0,
		Y:      y0,
		Width:  s.ToPixels(r.Right()) - x0,
		Height: s.ToPixels(r.Bottom()) - y0,
	}
}

// Line projects a millimetre segment without rounding.
func (s Scale) Line(l model.Line) model.Line {
	f := float64(s)
	return model.Line{X1: l.X1 * f, Y1: l.Y1 * f, X2: l.X2 * f, Y2: l.Y2 * f}
}

// AutoFitScale finds the factor at which maxReal just fits canvasPx: shrink
// by 0.9 while either axis overflows, otherwise grow by 1.0625 while the grown
// size still fits.
func AutoFitScale(maxReal, canvasPx model.Size) (Scale, error) {
	for _, v := range []float64{maxReal.Width, maxReal.Height, canvasPx.Width, canvasPx.Height} {
		if !positive(v) {
			return 0, fmt.Errorf("%w: real %s on canvas %s", ErrScaleNotFound, maxReal, canvasPx)
		}
	}

	fits := func(sf float64) bool {
		return maxReal.Width*sf <= canvasPx.Width && maxReal.Height*sf <= canvasPx.Height
	}

	sf := 1.0
	for i := 0; i < maxScaleIterations; i++ {
		switch {
		case !fits(sf):
			sf *= scaleShrink
		case fits(sf * scaleGrow):
			sf *= scaleGrow
		default:
			return Scale(sf), nil
		}
		if sf == 0 || math.IsInf(sf, 0) {
			break
		}
	}
	return 0, fmt.Errorf("%w: real %s on canvas %s after %d steps", ErrScaleNotFound, maxReal, canvasPx, maxScaleIterations)
}

// Canvas is a drawing area with the scale that fits a surface onto it.
type Canvas struct {
	Width  int
	Height int
	Scale  Scale
}

// NewCanvas auto-fits maxReal onto a w×h pixel canvas.
func NewCanvas(w, h int, maxReal model.Size) (Canvas, error) {
	sf, err := AutoFitScale(maxReal, model.Size{Width: float64(w), Height: float64(h)})
	if err != nil {
		return Canvas{}, err
	}
	return Canvas{Width: w, Height: h, Scale: sf}, nil
}

// Size returns the canvas dimensions in pixels.
func (c Canvas) Size() model.Size {
	return model.Size{Width: float64(c.Width), Height: float64(c.Height)}
}
