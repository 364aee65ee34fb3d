package widgets

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/TilePlan/internal/model"
)

func TestFitScale(t *testing.T) {
	if got := fitScale(1280, 720, 640, 720); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}
	if got := fitScale(1000, 1000, 900, 300); got != 0.3 {
		t.Errorf("expected height-bound 0.3, got %f", got)
	}
	if got := fitScale(0, 720, 640, 480); got != 0 {
		t.Errorf("expected 0 for an empty canvas, got %f", got)
	}
}

func samplePlan() model.Plan {
	return model.Plan{
		Canvas: model.Size{Width: 400, Height: 200},
		Surfaces: []model.Surface{{
			Label:  "Wall 1",
			Offset: model.Position{X: 10, Y: 10},
			SizePx: model.Rect{Width: 200, Height: 100},
			DoorPx: &model.Rect{X: 50, Y: 40, Width: 30, Height: 60},
			Layout: model.Layout{
				Placements: []model.Placement{
					{Px: model.Rect{Width: 100, Height: 100}, Whole: true},
					{Px: model.Rect{X: 100, Width: 100, Height: 100}, CutX: model.EdgeCut{Trailing: 40}},
				},
			},
		}},
	}
}

func TestPlanObjects(t *testing.T) {
	test.NewTempApp(t)
	objects := planObjects(samplePlan(), 2)

	// background, two tiles, one cut edge, door, outline, label
	if len(objects) != 7 {
		t.Fatalf("expected 7 objects, got %d", len(objects))
	}

	bg := objects[0].(*canvas.Rectangle)
	if bg.Size().Width != 800 || bg.Size().Height != 400 {
		t.Errorf("expected background 800x400, got %v", bg.Size())
	}

	tile := objects[2].(*canvas.Rectangle)
	if tile.Position().X != 220 || tile.Position().Y != 20 {
		t.Errorf("expected second tile at (220,20), got %v", tile.Position())
	}

	cut := objects[3].(*canvas.Line)
	if cut.StrokeColor != colorCut {
		t.Error("expected the trailing edge to be drawn as a cut")
	}
	if cut.Position1.X != 420 || cut.Position2.X != 420 {
		t.Errorf("expected the cut line at x=420, got %v-%v", cut.Position1, cut.Position2)
	}

	door := objects[4].(*canvas.Rectangle)
	if door.Position().X != 120 || door.Size().Height != 120 {
		t.Errorf("unexpected door rectangle %v %v", door.Position(), door.Size())
	}

	if _, ok := objects[6].(*canvas.Text); !ok {
		t.Error("expected the surface label last")
	}
}

func TestPlanObjectsZeroScale(t *testing.T) {
	if objects := planObjects(samplePlan(), 0); objects != nil {
		t.Errorf("expected no objects, got %d", len(objects))
	}
}

func TestSurfaceBreakdown(t *testing.T) {
	plan := samplePlan()
	plan.Surfaces = append(plan.Surfaces, model.Surface{})
	plan.Estimate.Surfaces = []model.SurfaceEstimate{{Tiles: 6}}

	lines := surfaceBreakdown(plan)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if want := "estimate 6"; !strings.Contains(lines[0], want) {
		t.Errorf("expected %q in %q", want, lines[0])
	}
	if !strings.Contains(lines[1], "Surface 2") {
		t.Errorf("expected a default label, got %q", lines[1])
	}
}
