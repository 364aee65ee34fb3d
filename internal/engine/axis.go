package engine

const eps = 1e-9

// segment is the visible span of one tile along a single axis, in mm.
type segment struct {
	pos     float64
	size    float64
	cut     edgeCut
	carried bool
}

type edgeCut struct {
	leading  float64
	trailing float64
}

// directAxis lays tiles of length t from 0 towards extent with a grout gap g
// before each tile. The first tile loses lead mm at its start edge. The tile
// that does not fit is cut flush with the far edge; carry is the part of it
// that stays on this panel measured from the tile's nominal start, zero when
// the last tile fit whole.
func directAxis(extent, t, g, lead float64, reverse bool) (segs []segment, carry float64) {
	cursor := 0.0
	for {
		cursor += g
		if cursor >= extent-eps {
			break
		}
		s := segment{pos: cursor, size: t}
		if len(segs) == 0 && lead > 0 {
			s.cut.leading = lead
			s.size = t - lead
			s.carried = true
		}
		if room := extent - cursor; s.size > room+eps {
			s.cut.trailing = s.size - room
			s.size = room
		}
		segs = append(segs, s)
		cursor += s.size
		if cursor >= extent-eps {
			break
		}
	}
	if n := len(segs); n > 0 && segs[n-1].cut.trailing > 0 {
		carry = t - segs[n-1].cut.trailing
	}
	if reverse {
		for i := range segs {
			segs[i].pos = extent - segs[i].pos - segs[i].size
			segs[i].cut.leading, segs[i].cut.trailing = segs[i].cut.trailing, segs[i].cut.leading
		}
	}
	return segs, carry
}

// centeredAxis places one tile centred on the extent and repeats it every
// t+g in both directions, clamping the outermost tiles to the panel. The
// order is centre, forward, backward.
func centeredAxis(extent, t, g float64) []segment {
	step := t + g
	c := (extent - t) / 2

	segs := []segment{clampSegment(c, t, extent)}
	for pos := c + step; pos < extent-eps; pos += step {
		segs = append(segs, clampSegment(pos, t, extent))
	}
	for pos := c - step; pos+t > eps; pos -= step {
		segs = append(segs, clampSegment(pos, t, extent))
	}
	return segs
}

func clampSegment(pos, t, extent float64) segment {
	s := segment{pos: pos, size: t}
	if s.pos < 0 {
		s.cut.leading = -s.pos
		s.size += s.pos
		s.pos = 0
	}
	if over := s.pos + s.size - extent; over > eps {
		s.cut.trailing = over
		s.size -= over
	}
	return s
}
