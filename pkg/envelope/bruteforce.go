package envelope

import "github.com/matzehuels/due/pkg/geom"

// BruteForce evaluates every line at every integer of [lo, hi] and merges
// runs of the same winner into cells. Lines need not be sorted or unique.
// It is the reference the faster algorithms are checked against.
func (ws *Workspace) BruteForce(lines []geom.Line, lo, hi int64) []Cell {
	cells := ws.cells[ws.cur][:0]
	last := -1
	for x := lo; x <= hi; x++ {
		best := 0
		for i := 1; i < len(lines); i++ {
			if geom.Beats(lines[i], lines[best], x) {
				best = i
			}
		}
		if best == last {
			cells[len(cells)-1].Right = x
		} else {
			cells = append(cells, Cell{Line: lines[best], Left: x, Right: x})
			last = best
		}
		if x == hi {
			break
		}
	}
	return ws.store(ws.cur, cells)
}
