package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"sync"

	"github.com/piwi3910/TilePlan/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var watermarkFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// ExportPNG renders the plan as a PNG image at path.
func ExportPNG(path string, plan model.Plan, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderPNG(f, plan, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPNG writes the plan canvas as a PNG image to w.
func RenderPNG(w io.Writer, plan model.Plan, opts Options) error {
	img, err := RenderImage(plan, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// RenderImage draws the plan onto a canvas-sized RGBA image.
func RenderImage(plan model.Plan, opts Options) (*image.RGBA, error) {
	cw, ch := int(plan.Canvas.Width), int(plan.Canvas.Height)
	if cw <= 0 || ch <= 0 {
		return nil, fmt.Errorf("invalid canvas %s", plan.Canvas)
	}
	img := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	for _, s := range plan.Surfaces {
		drawSurface(img, s, plan.ContourPx)
	}

	if opts.WatermarkText != "" {
		if err := drawWatermark(img, opts.WatermarkText); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func drawSurface(img *image.RGBA, s model.Surface, contourPx int) {
	panel := s.SizePx.Translate(s.Offset)

	if s.Layout.PerimeterCut {
		fillRect(img, panel, colorTile)
		for _, g := range s.Layout.GuidesPx {
			drawGuide(img, g, s.Offset)
		}
		strokeRect(img, panel, colorCut)
	} else {
		strokeRect(img, panel, colorOutline)
	}

	for _, p := range s.Layout.Placements {
		fillRect(img, p.Px.Translate(s.Offset), colorTile)
		for _, e := range placementEdges(p, s.Offset) {
			c := colorEdge
			if e.cut {
				c = colorCut
			}
			line(img, e.x1, e.y1, e.x2, e.y2, c)
		}
	}

	if s.DoorPx != nil {
		door := s.DoorPx.Translate(s.Offset)
		fillRect(img, door, colorBackground)
		line(img, door.X, door.Bottom(), door.X, door.Y, colorCut)
		line(img, door.X, door.Y, door.Right(), door.Y, colorCut)
		line(img, door.Right(), door.Y, door.Right(), door.Bottom(), colorCut)
	}

	for _, t := range contourTicks(s, contourPx) {
		line(img, t[0], t[1], t[2], t[3], colorOutline)
	}
}

func fillRect(img *image.RGBA, r model.Rect, c color.Color) {
	rect := image.Rect(r.X, r.Y, r.Right(), r.Bottom())
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, r model.Rect, c color.Color) {
	line(img, r.X, r.Y, r.Right(), r.Y, c)
	line(img, r.X, r.Y, r.X, r.Bottom(), c)
	line(img, r.Right(), r.Y, r.Right(), r.Bottom(), c)
	line(img, r.X, r.Bottom(), r.Right(), r.Bottom(), c)
}

// line draws a one pixel horizontal or vertical line, inclusive of both ends.
func line(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	rect := image.Rect(x1, y1, x2+1, y2+1)
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawGuide rasterises an arbitrary segment as an anti-aliased one pixel
// wide quad.
func drawGuide(img *image.RGBA, g model.Line, off model.Position) {
	x1, y1 := g.X1+float64(off.X), g.Y1+float64(off.Y)
	x2, y2 := g.X2+float64(off.X), g.Y2+float64(off.Y)
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	nx, ny := -(y2-y1)/length*0.5, (x2-x1)/length*0.5

	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(x1+nx), float32(y1+ny))
	r.LineTo(float32(x2+nx), float32(y2+ny))
	r.LineTo(float32(x2-nx), float32(y2-ny))
	r.LineTo(float32(x1-nx), float32(y1-ny))
	r.ClosePath()
	r.Draw(img, b, image.NewUniform(colorGuide), image.Point{})
}

// drawWatermark centres text on the image at the largest size that fits.
// Nothing is drawn when the image is too small for any size.
func drawWatermark(img *image.RGBA, text string) error {
	f, err := watermarkFont()
	if err != nil {
		return fmt.Errorf("failed to load watermark font: %w", err)
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	measure := func(size float64) (float64, float64) {
		face, err := newFace(size)
		if err != nil {
			return math.Inf(1), math.Inf(1)
		}
		defer face.Close()
		m := face.Metrics()
		return float64(font.MeasureString(face, text).Ceil()), float64((m.Ascent + m.Descent).Ceil())
	}

	b := img.Bounds()
	size, ok := fitWatermark(measure, float64(b.Dx()), float64(b.Dy()))
	if !ok {
		return nil
	}

	face, err := newFace(size)
	if err != nil {
		return fmt.Errorf("failed to create watermark face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	tw := font.MeasureString(face, text).Ceil()
	th := (m.Ascent + m.Descent).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorWatermark),
		Face: face,
		Dot:  fixed.P(b.Dx()/2-tw/2, b.Dy()/2-th/2+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}
