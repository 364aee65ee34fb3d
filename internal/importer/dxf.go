package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/TilePlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// chainTolerance is the largest gap (mm) between two LINE end points that
// still joins them into one outline.
const chainTolerance = 0.01

// FloorResult holds the floor size read from a drawing.
type FloorResult struct {
	Floor    model.Size
	Outlines int // closed outlines found in the drawing
	Errors   []string
	Warnings []string
}

type point struct{ x, y float64 }

type segment struct{ start, end point }

// outline is a closed polygon. The last vertex connects back to the first.
type outline []point

// bounds returns the bounding box of the outline.
func (o outline) bounds() model.RectF {
	if len(o) == 0 {
		return model.RectF{}
	}
	minX, minY := o[0].x, o[0].y
	maxX, maxY := minX, minY
	for _, p := range o[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return model.RectF{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// area computes the absolute polygon area with the shoelace formula.
func (o outline) area() float64 {
	if len(o) < 3 {
		return 0
	}
	var a float64
	for i := range o {
		j := (i + 1) % len(o)
		a += o[i].x*o[j].y - o[j].x*o[i].y
	}
	return math.Abs(a) / 2
}

// ImportFloorDXF reads a room outline from a DXF file. The floor is the
// bounding box of the largest closed shape, built from LWPOLYLINEs or from
// chains of connected LINE and ARC entities. Width is the X extent and
// Height the Y extent of the drawing.
func ImportFloorDXF(path string) FloorResult {
	result := FloorResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := make(outline, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				o = append(o, point{v[0], v[1]})
			}
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		case *entity.Arc:
			segments = append(segments, arcSegments(e, 16)...)
		}
	}
	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}
	result.Outlines = len(outlines)
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d outlines, using the largest", len(outlines)))
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].area() > outlines[j].area()
	})
	b := outlines[0].bounds()
	if b.Width < chainTolerance || b.Height < chainTolerance {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Outline is degenerate (%.2f x %.2f mm)", b.Width, b.Height))
		return result
	}
	result.Floor = model.Size{Width: b.Width, Height: b.Height}
	return result
}

// arcSegments approximates a DXF ARC with n straight segments.
func arcSegments(a *entity.Arc, n int) []segment {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	at := func(i int) point {
		angle := start + float64(i)/float64(n)*(end-start)
		return point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	segs := make([]segment, n)
	for i := range segs {
		segs[i] = segment{at(i), at(i + 1)}
	}
	return segs
}

// chainSegments joins segments whose end points lie within tolerance and
// returns the chains that close on themselves.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	var outlines []outline

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := outline{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				var next point
				switch {
				case pointsClose(tail, s.start, tolerance):
					next = s.end
				case pointsClose(tail, s.end, tolerance):
					next = s.start
				default:
					continue
				}
				chain = append(chain, next)
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
