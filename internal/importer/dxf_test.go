package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

func saveDrawing(t *testing.T, build func(d *drawing.Drawing) error) string {
	t.Helper()
	d := dxf.NewDrawing()
	if err := build(d); err != nil {
		t.Fatalf("failed to build drawing: %v", err)
	}
	path := filepath.Join(t.TempDir(), "room.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save drawing: %v", err)
	}
	return path
}

func TestImportFloorDXF_Polyline(t *testing.T) {
	path := saveDrawing(t, func(d *drawing.Drawing) error {
		_, err := d.LwPolyline(true,
			[]float64{100, 200}, []float64{5100, 200}, []float64{5100, 4200}, []float64{100, 4200})
		return err
	})

	result := ImportFloorDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Floor.Width != 5000 || result.Floor.Height != 4000 {
		t.Errorf("expected 5000x4000 floor, got %s", result.Floor)
	}
}

func TestImportFloorDXF_ChainedLinesPickLargest(t *testing.T) {
	path := saveDrawing(t, func(d *drawing.Drawing) error {
		// Small column outline drawn as a polyline.
		if _, err := d.LwPolyline(true,
			[]float64{0, 0}, []float64{300, 0}, []float64{300, 300}, []float64{0, 300}); err != nil {
			return err
		}
		// Room drawn as four loose lines in mixed directions.
		lines := [][4]float64{
			{0, 0, 3600, 0},
			{3600, 2800, 3600, 0},
			{3600, 2800, 0, 2800},
			{0, 0, 0, 2800},
		}
		for _, l := range lines {
			if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
				return err
			}
		}
		return nil
	})

	result := ImportFloorDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Outlines != 2 {
		t.Errorf("expected 2 outlines, got %d", result.Outlines)
	}
	if result.Floor.Width != 3600 || result.Floor.Height != 2800 {
		t.Errorf("expected 3600x2800 floor, got %s", result.Floor)
	}
	if !strings.Contains(strings.Join(result.Warnings, " "), "largest") {
		t.Errorf("expected a warning about multiple outlines, got %v", result.Warnings)
	}
}

func TestImportFloorDXF_OpenLinesOnly(t *testing.T) {
	path := saveDrawing(t, func(d *drawing.Drawing) error {
		_, err := d.Line(0, 0, 0, 1000, 0, 0)
		return err
	})

	result := ImportFloorDXF(path)
	if len(result.Errors) == 0 {
		t.Error("expected an error when no closed shape exists")
	}
}

func TestImportFloorDXF_FileNotFound(t *testing.T) {
	result := ImportFloorDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{point{0, 0}, point{10, 0}},
		{point{10, 10}, point{10, 0}},
		{point{0, 10}, point{10, 10.005}},
		{point{0, 10}, point{0, 0}},
		{point{50, 50}, point{60, 50}},
	}
	outlines := chainSegments(segs, chainTolerance)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 closed outline, got %d", len(outlines))
	}
	if got := outlines[0].area(); got < 99.9 || got > 100.1 {
		t.Errorf("expected area ~100, got %f", got)
	}
}
