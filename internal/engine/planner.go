package engine

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/model"
)

const (
	floorContourPercent = 1.0
	wallContourPercent  = 3.0
	wallPaddingPercent  = 8.0
	wallSpacingContours = 3.0
)

// Config controls how plans are drawn.
type Config struct {
	Canvas model.Size // px
}

// DefaultConfig returns an HD canvas.
func DefaultConfig() Config {
	return Config{Canvas: model.Size{Width: 1280, Height: 720}}
}

// Planner turns a project into a positioned plan of laid surfaces.
type Planner struct {
	Config Config
}

func New(cfg Config) *Planner {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		cfg = DefaultConfig()
	}
	return &Planner{Config: cfg}
}

// Plan validates the project, picks a scale for the canvas, lays every
// surface and attaches the material estimate.
func (p *Planner) Plan(project model.Project) (model.Plan, error) {
	if err := ValidateProject(project); err != nil {
		return model.Plan{}, err
	}

	var (
		plan model.Plan
		err  error
	)
	switch project.Scheme {
	case model.SchemeFloor:
		plan, err = p.planFloor(project)
	case model.SchemeWalls:
		plan, err = p.planWalls(project)
	}
	if err != nil {
		return model.Plan{}, err
	}

	plan.ProjectID = project.ID
	plan.Name = project.Name
	plan.Scheme = project.Scheme
	plan.Canvas = p.Config.Canvas
	plan.Tile = project.Tile
	plan.Estimate = estimatePlan(plan, project)
	plan.Offcuts = ReuseOffcuts(plan)
	return plan, nil
}

// planFloor lays the floor with the room length along X, centred on the
// canvas inside a contour margin of 1% of the length.
func (p *Planner) planFloor(project model.Project) (model.Plan, error) {
	floor := project.Floor
	contour := floor.Width / 100 * floorContourPercent

	maxReal := model.Size{Width: floor.Width + contour*2, Height: floor.Height + contour*2}
	sf, err := AutoFitScale(maxReal, p.Config.Canvas)
	if err != nil {
		return model.Plan{}, err
	}

	strategy, err := ForMethod(project.Method)
	if err != nil {
		return model.Plan{}, err
	}

	contourPx := sf.ToPixels(contour)
	panel := model.PanelState{
		Label:           "Floor",
		Width:           floor.Width,
		Height:          floor.Height,
		Tile:            project.Tile,
		ContourMarginPx: contourPx,
	}
	layout, door, err := LayoutPanel(panel, strategy, model.Forward, sf)
	if err != nil {
		return model.Plan{}, fmt.Errorf("floor: %w", err)
	}

	sizePx := sf.Size(floor)
	usedW := int(sizePx.Width) + sf.ToPixels(contour*2)
	usedH := int(sizePx.Height) + sf.ToPixels(contour*2)
	offset := model.Position{
		X: (int(p.Config.Canvas.Width)-usedW)/2 + contourPx,
		Y: (int(p.Config.Canvas.Height)-usedH)/2 + contourPx,
	}

	return model.Plan{
		Scale:     float64(sf),
		ContourPx: contourPx,
		Surfaces: []model.Surface{{
			Label:  panel.Label,
			Offset: offset,
			SizePx: model.Rect{Width: int(sizePx.Width), Height: int(sizePx.Height)},
			Layout: layout,
			DoorPx: door,
		}},
	}, nil
}

// planWalls unrolls the walls left to right. Margins derive from the first
// wall: contour 3%, padding 8%, and three contours between walls. Walls are
// always laid directly from the floor up, each continuing the cut tile of
// the previous wall.
func (p *Planner) planWalls(project model.Project) (model.Plan, error) {
	walls := project.Walls
	first := walls[0].Width
	contour := first / 100 * wallContourPercent
	spacing := contour * wallSpacingContours
	padding := first / 100 * wallPaddingPercent

	var sumW, maxH float64
	for _, w := range walls {
		sumW += w.Width
		if w.Height > maxH {
			maxH = w.Height
		}
	}
	maxReal := model.Size{
		Width:  sumW + spacing*float64(len(walls)-1) + padding*2,
		Height: maxH + contour*2,
	}
	sf, err := AutoFitScale(maxReal, p.Config.Canvas)
	if err != nil {
		return model.Plan{}, err
	}

	contourPx := sf.ToPixels(contour)
	panels := make([]model.PanelState, len(walls))
	for i, w := range walls {
		panels[i] = model.PanelState{
			Label:           w.Label,
			Width:           w.Width,
			Height:          w.Height,
			Tile:            project.Tile,
			Door:            w.Door,
			ContourMarginPx: contourPx,
		}
	}

	layouts, doors, err := LayoutPanels(panels, Direct{}, model.ReverseY, sf)
	if err != nil {
		return model.Plan{}, err
	}

	spacingPx := sf.ToPixels(spacing)
	offset := model.Position{
		X: sf.ToPixels(padding),
		Y: int(p.Config.Canvas.Height)/2 - sf.ToPixels(maxReal.Height)/2,
	}

	surfaces := make([]model.Surface, len(walls))
	for i, w := range walls {
		sizePx := sf.Size(model.Size{Width: w.Width, Height: w.Height})
		surfaces[i] = model.Surface{
			Label:  w.Label,
			Offset: offset,
			SizePx: model.Rect{Width: int(sizePx.Width), Height: int(sizePx.Height)},
			Layout: layouts[i],
			DoorPx: doors[i],
		}
		offset.X += int(sizePx.Width) + spacingPx
	}

	return model.Plan{
		Scale:     float64(sf),
		ContourPx: contourPx,
		Surfaces:  surfaces,
	}, nil
}

func estimatePlan(plan model.Plan, project model.Project) model.MaterialEstimate {
	formula := project.GroutFormula
	if formula == "" {
		formula = model.GroutBetweenTiles
	}
	surfaces := make([]model.SurfaceEstimate, len(plan.Surfaces))
	for i, s := range plan.Surfaces {
		est := model.EstimateSurface(s.Label, s.Layout.Panel, project.Tile, formula)
		est.Laid = s.Layout.TilesUsed
		surfaces[i] = est
	}
	return model.EstimateMaterial(surfaces, project.WastePercent, project.PricePerTile, formula)
}
