package engine

import (
	"sort"

	"github.com/piwi3910/TilePlan/internal/model"
)

// tileStock is a started tile: the free remnants left after the pieces cut
// from it. Free rects may overlap; each is maximal.
type tileStock struct {
	surface   string
	freeRects []rect
}

type rect struct {
	x, y, w, h float64
}

// piece is a cut placement that needs material.
type piece struct {
	surface string
	w, h    float64
}

func newTileStock(surface string, width, height float64) *tileStock {
	return &tileStock{
		surface:   surface,
		freeRects: []rect{{0, 0, width, height}},
	}
}

// bestFit returns the area waste for cutting a piece of size w x h
// without modifying the stock. Returns -1 if it doesn't fit. Pieces are
// never rotated so the tile pattern keeps its direction.
func (ts *tileStock) bestFit(w, h float64) float64 {
	best := float64(-1)
	for _, r := range ts.freeRects {
		if w <= r.w+0.001 && h <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if best < 0 || areaFit < best {
				best = areaFit
			}
		}
	}
	return best
}

// cut removes a w x h piece from the best fitting free rect. Returns false
// when no free rect can hold it.
func (ts *tileStock) cut(w, h float64) bool {
	bestIdx := -1
	bestAreaFit := float64(-1)
	for i, r := range ts.freeRects {
		if w <= r.w+0.001 && h <= r.h+0.001 {
			areaFit := (r.w * r.h) - (w * h)
			if bestIdx < 0 || areaFit < bestAreaFit {
				bestIdx = i
				bestAreaFit = areaFit
			}
		}
	}
	if bestIdx < 0 {
		return false
	}

	chosen := ts.freeRects[bestIdx]
	ts.splitAround(rect{x: chosen.x, y: chosen.y, w: w, h: h})
	return true
}

// splitAround removes all free rects that overlap with the placed rect
// and keeps the maximal strips around it.
func (ts *tileStock) splitAround(placed rect) {
	var next []rect
	for _, r := range ts.freeRects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}
		if placed.x > r.x+0.001 {
			next = append(next, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-0.001 {
			next = append(next, rect{x: placed.x + placed.w, y: r.y, w: (r.x + r.w) - (placed.x + placed.w), h: r.h})
		}
		if placed.y > r.y+0.001 {
			next = append(next, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-0.001 {
			next = append(next, rect{x: r.x, y: placed.y + placed.h, w: r.w, h: (r.y + r.h) - (placed.y + placed.h)})
		}
	}
	ts.freeRects = pruneContained(next)
}

// largest returns the biggest free remnant, if any is usable.
func (ts *tileStock) largest() (model.Offcut, bool) {
	var best model.Offcut
	found := false
	for _, r := range ts.freeRects {
		o := model.Offcut{Surface: ts.surface, Width: r.w, Height: r.h}
		if o.Usable() && (!found || o.Area() > best.Area()) {
			best, found = o, true
		}
	}
	return best, found
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-0.001 && a.x+a.w > b.x+0.001 &&
		a.y < b.y+b.h-0.001 && a.y+a.h > b.y+0.001
}

// pruneContained removes any rect that is fully contained within another.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) && (!containsRect(a, b) || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+0.001 && outer.y <= inner.y+0.001 &&
		outer.x+outer.w >= inner.x+inner.w-0.001 &&
		outer.y+outer.h >= inner.y+inner.h-0.001
}

// cutPieces collects the cut placements of a plan. Carried placements finish
// a tile started on the previous panel and need no new material.
func cutPieces(plan model.Plan) []piece {
	var pieces []piece
	for _, s := range plan.Surfaces {
		for _, p := range s.Layout.Placements {
			if p.Whole || p.Carried {
				continue
			}
			pieces = append(pieces, piece{surface: s.Label, w: p.Bounds.Width, h: p.Bounds.Height})
		}
	}
	return pieces
}

// ReuseOffcuts works out how many cut pieces of plan can be taken from the
// remnants of tiles already cut for other pieces. Pieces are assigned
// largest first, each to the best fitting remnant, falling back to a fresh
// tile.
func ReuseOffcuts(plan model.Plan) model.OffcutReport {
	pieces := cutPieces(plan)
	report := model.OffcutReport{CutPieces: len(pieces), Offcuts: []model.Offcut{}}
	if len(pieces) == 0 || plan.Tile.Width <= 0 || plan.Tile.Height <= 0 {
		return report
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].w*pieces[i].h > pieces[j].w*pieces[j].h
	})

	var stocks []*tileStock
	for _, pc := range pieces {
		bestIdx := -1
		bestFit := float64(-1)
		for i, ts := range stocks {
			if fit := ts.bestFit(pc.w, pc.h); fit >= 0 && (bestIdx < 0 || fit < bestFit) {
				bestIdx, bestFit = i, fit
			}
		}
		if bestIdx >= 0 {
			stocks[bestIdx].cut(pc.w, pc.h)
			report.FromOffcuts++
			continue
		}

		ts := newTileStock(pc.surface, plan.Tile.Width, plan.Tile.Height)
		ts.cut(pc.w, pc.h)
		stocks = append(stocks, ts)
	}

	report.TilesForCuts = len(stocks)
	for _, ts := range stocks {
		if o, ok := ts.largest(); ok {
			report.Offcuts = append(report.Offcuts, o)
		}
	}
	return report
}
