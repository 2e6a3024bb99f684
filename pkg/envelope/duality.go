package envelope

import "github.com/matzehuels/due/pkg/geom"

// Duality builds the envelope of slope-sorted, slope-unique lines over
// [lo, hi] from the lower hull of their dual points. Hull vertices are
// exactly the lines on the real upper envelope; vertex v owns the integers
// after the floor of its left breakpoint up to the floor of its right one.
// Preconditions are not checked.
func (ws *Workspace) Duality(lines []geom.Line, lo, hi int64) []Cell {
	cells := ws.cells[ws.cur][:0]
	if len(lines) == 0 {
		return ws.store(ws.cur, cells)
	}

	pts := ws.points[:0]
	for _, l := range lines {
		pts = append(pts, geom.Dual(l))
	}
	ws.points = pts
	ws.hull = geom.LowerHull(pts, ws.hull)

	left := lo
	for v, idx := range ws.hull {
		l := lines[idx]
		right := hi
		if v+1 < len(ws.hull) {
			bp := geom.Breakpoint(l, lines[ws.hull[v+1]])
			right = min(bp, hi)
			if left <= right {
				cells = append(cells, Cell{Line: l, Left: left, Right: right})
			}
			if bp >= hi {
				break
			}
			left = max(left, bp+1)
			continue
		}
		if left <= right {
			cells = append(cells, Cell{Line: l, Left: left, Right: right})
		}
	}
	return ws.store(ws.cur, cells)
}
