package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Size is a width/height pair. Millimetres for real-world surfaces and tiles,
// pixels once projected onto a canvas.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Position is a pixel offset from the canvas origin.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the X coordinate of the far edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the Y coordinate of the far edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Translate shifts the rectangle by the given offset.
func (r Rect) Translate(p Position) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// StrictlyInside reports whether r lies inside outer without touching any of
// its four edges.
func (r Rect) StrictlyInside(outer Rect) bool {
	return r.X > outer.X &&
		r.Right() < outer.Right() &&
		r.Y > outer.Y &&
		r.Bottom() < outer.Bottom()
}

// RectF is an axis-aligned rectangle in millimetres.
type RectF struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the X coordinate of the far edge.
func (r RectF) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the far edge.
func (r RectF) Bottom() float64 { return r.Y + r.Height }

// Line is a straight segment. Units follow the owning structure.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// ClipTo clips the segment against r (Liang-Barsky). The second result is
// false when no part of the segment lies inside r.
func (l Line) ClipTo(r RectF) (Line, bool) {
	dx := l.X2 - l.X1
	dy := l.Y2 - l.Y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{l.X1 - r.X, r.Right() - l.X1, l.Y1 - r.Y, r.Bottom() - l.Y1}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return Line{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return Line{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Line{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	if t0 >= t1 {
		return Line{}, false
	}
	return Line{
		X1: l.X1 + t0*dx,
		Y1: l.Y1 + t0*dy,
		X2: l.X1 + t1*dx,
		Y2: l.Y1 + t1*dy,
	}, true
}

// LayingMethod selects the layout strategy. The numeric codes match the
// wire format accepted by the draw API.
type LayingMethod int

const (
	MethodDirect   LayingMethod = 1 // Rows from one corner
	MethodCentered LayingMethod = 2 // Start from a tile centred on the surface
	MethodDiagonal LayingMethod = 3 // 45° guide lines
)

// LayingMethods lists every supported method in code order.
var LayingMethods = []LayingMethod{MethodDirect, MethodCentered, MethodDiagonal}

func (m LayingMethod) String() string {
	switch m {
	case MethodDirect:
		return "Direct"
	case MethodCentered:
		return "Centered"
	case MethodDiagonal:
		return "Diagonal"
	default:
		return fmt.Sprintf("LayingMethod(%d)", int(m))
	}
}

// Valid reports whether m is one of the known methods.
func (m LayingMethod) Valid() bool {
	switch m {
	case MethodDirect, MethodCentered, MethodDiagonal:
		return true
	}
	return false
}

// ParseLayingMethod maps a method name (as returned by String) back to its value.
func ParseLayingMethod(name string) (LayingMethod, bool) {
	for _, m := range LayingMethods {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// Direction tells the layout from which edge each axis is laid. A reversed
// axis starts at its far edge, so the remainder cut lands on the near edge as
// a leading cut instead of a trailing one.
type Direction uint8

const (
	ReverseX Direction = 1 << iota // Columns from the right edge
	ReverseY                       // Rows from the bottom edge

	Forward Direction = 0
)

// Has reports whether all bits of f are set.
func (d Direction) Has(f Direction) bool { return d&f == f }

// TileOptions describes the tile and grout used on a panel, in millimetres.
//
// LeadingOffset* truncates the first tile of each row/column at its start
// edge because it continues a cut begun on an adjoining panel. TrailingCut*
// is the visible width of the last tile when a whole tile does not fit the
// remaining span. Zero means "not set" for all four.
type TileOptions struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Delimiter      float64 `json:"delimiter"`
	LeadingOffsetX float64 `json:"leading_offset_x,omitempty"`
	LeadingOffsetY float64 `json:"leading_offset_y,omitempty"`
	TrailingCutX   float64 `json:"trailing_cut_x,omitempty"`
	TrailingCutY   float64 `json:"trailing_cut_y,omitempty"`
}

// NewTileOptions returns options for a plain tile with no carried offsets.
func NewTileOptions(w, h, delimiter float64) TileOptions {
	return TileOptions{Width: w, Height: h, Delimiter: delimiter}
}

// Size returns the nominal tile size.
func (t TileOptions) Size() Size {
	return Size{Width: t.Width, Height: t.Height}
}

// EdgeCut records how much of a tile was removed along one axis (mm).
type EdgeCut struct {
	Leading  float64 `json:"leading,omitempty"`  // removed at the start edge
	Trailing float64 `json:"trailing,omitempty"` // removed at the far edge
}

// IsZero reports whether the axis is uncut.
func (c EdgeCut) IsZero() bool { return c.Leading == 0 && c.Trailing == 0 }

// Placement is one laid tile. Bounds is the visible part of the tile in
// panel millimetres; Px is the same box projected onto the canvas.
type Placement struct {
	Bounds  RectF   `json:"bounds"`
	Px      Rect    `json:"px"`
	CutX    EdgeCut `json:"cut_x"`
	CutY    EdgeCut `json:"cut_y"`
	Whole   bool    `json:"whole"`
	Carried bool    `json:"carried"` // continues a tile begun on the previous panel
}

// Carry is the continuity hand-off from one panel to the next: the visible
// width of the tile cut at the far edge of each axis (mm, zero when the last
// tile fit whole).
type Carry struct {
	TrailingCutX float64 `json:"trailing_cut_x"`
	TrailingCutY float64 `json:"trailing_cut_y"`
}

// Door is an opening cut into a wall. It sits bottom-centred on its panel.
type Door struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PanelState is one surface being tiled: a wall face or a floor.
type PanelState struct {
	Label           string      `json:"label"`
	Width           float64     `json:"width"`  // mm
	Height          float64     `json:"height"` // mm
	Tile            TileOptions `json:"tile"`
	Door            *Door       `json:"door,omitempty"`
	ContourMarginPx int         `json:"contour_margin_px,omitempty"`
}

// Size returns the panel size in millimetres.
func (p PanelState) Size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// WithCarry returns a copy of the panel whose first column continues the
// tile cut at the far edge of the previous panel.
func (p PanelState) WithCarry(c Carry) PanelState {
	p.Tile.LeadingOffsetX = c.TrailingCutX
	p.Tile.TrailingCutX = 0
	p.Tile.TrailingCutY = 0
	return p
}

// Layout is the result of one layout pass over a single panel.
type Layout struct {
	Method       LayingMethod `json:"method"`
	Panel        Size         `json:"panel"`
	Direction    Direction    `json:"direction"`
	Placements   []Placement  `json:"placements"`
	Guides       []Line       `json:"guides,omitempty"`    // mm, diagonal only
	GuidesPx     []Line       `json:"guides_px,omitempty"` // canvas px
	WholeTiles   int          `json:"whole_tiles"`
	TilesUsed    int          `json:"tiles_used"`
	Carry        Carry        `json:"carry"`
	PerimeterCut bool         `json:"perimeter_cut"` // every boundary tile is cut
}

// CutTiles returns the number of placements that are not whole.
func (l Layout) CutTiles() int {
	return len(l.Placements) - l.WholeTiles
}

// Scheme is the kind of surface a project covers.
type Scheme string

const (
	SchemeFloor Scheme = "floor"
	SchemeWalls Scheme = "walls"
)

// Schemes lists the accepted schemes.
var Schemes = []Scheme{SchemeFloor, SchemeWalls}

// Wall is one panel of an unrolled room.
type Wall struct {
	Label  string  `json:"label"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
	Door   *Door   `json:"door,omitempty"`
}

// RoomWalls unrolls a rectangular room into its four walls in the order
// length, width, length, width. The door, if any, goes on the third wall.
func RoomWalls(length, width, height float64, door *Door) []Wall {
	walls := []Wall{
		{Label: "Wall 1", Width: length, Height: height},
		{Label: "Wall 2", Width: width, Height: height},
		{Label: "Wall 3", Width: length, Height: height},
		{Label: "Wall 4", Width: width, Height: height},
	}
	if door != nil {
		d := *door
		walls[2].Door = &d
	}
	return walls
}

// Project ties everything together for save/load.
type Project struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Scheme       Scheme       `json:"scheme"`
	Tile         TileOptions  `json:"tile"`
	Method       LayingMethod `json:"method"`
	Floor        Size         `json:"floor"` // Width = room length (X), Height = room width (Y)
	Walls        []Wall       `json:"walls"`
	PricePerTile float64      `json:"price_per_tile"`
	WastePercent float64      `json:"waste_percent"`
	GroutFormula GroutFormula `json:"grout_formula"`
}

func NewProject() Project {
	return Project{
		ID:           uuid.New().String()[:8],
		Name:         "Untitled",
		Scheme:       SchemeFloor,
		Tile:         NewTileOptions(500, 500, 2),
		Method:       MethodDirect,
		Floor:        Size{Width: 5000, Height: 4000},
		Walls:        RoomWalls(5000, 4000, 2500, &Door{Width: 800, Height: 2000}),
		WastePercent: 10,
		GroutFormula: GroutBetweenTiles,
	}
}

// Surface is one panel positioned on the plan canvas.
type Surface struct {
	Label  string   `json:"label"`
	Offset Position `json:"offset"`  // px, top-left of the panel on the canvas
	SizePx Rect     `json:"size_px"` // px, panel box relative to Offset (X = Y = 0)
	Layout Layout   `json:"layout"`
	DoorPx *Rect    `json:"door_px,omitempty"` // px, relative to Offset
}

// Plan is a fully computed tiling plan for a project.
type Plan struct {
	ProjectID string           `json:"project_id"`
	Name      string           `json:"name"`
	Scheme    Scheme           `json:"scheme"`
	Scale     float64          `json:"scale"` // px per mm
	Canvas    Size             `json:"canvas"`
	ContourPx int              `json:"contour_px"`
	Tile      TileOptions      `json:"tile"`
	Surfaces  []Surface        `json:"surfaces"`
	Estimate  MaterialEstimate `json:"estimate"`
	Offcuts   OffcutReport     `json:"offcuts"`
}

// TilesUsed returns the number of tiles consumed across all surfaces.
func (p Plan) TilesUsed() int {
	total := 0
	for _, s := range p.Surfaces {
		total += s.Layout.TilesUsed
	}
	return total
}

// WholeTiles returns the number of uncut placements across all surfaces.
func (p Plan) WholeTiles() int {
	total := 0
	for _, s := range p.Surfaces {
		total += s.Layout.WholeTiles
	}
	return total
}
