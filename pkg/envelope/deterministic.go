package envelope

import (
	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
)

// Deterministic builds the envelope of a slope-sorted, slope-unique stream
// over [lo, hi]. Preconditions are not checked.
func (ws *Workspace) Deterministic(src Source, lo, hi int64) []Cell {
	cells := build(ws.cells[ws.cur][:0], src, lo, hi)
	return ws.store(ws.cur, cells)
}

// build appends the envelope of src to cells. Every line has a larger slope
// than the lines before it, so it can only take over a suffix of the domain.
func build(cells []Cell, src Source, lo, hi int64) []Cell {
	for src.Reset(); !src.Empty(); {
		cells = insert(cells, src.Next(), lo, hi)
	}
	return cells
}

// insert adds l to an envelope whose lines all have smaller slopes. Cells l
// dominates are popped; the first cell it does not dominate decides where l
// starts.
func insert(cells []Cell, l geom.Line, lo, hi int64) []Cell {
	for len(cells) > 0 {
		last := len(cells) - 1
		c := cells[last]

		switch rel := geom.Classify(l, c.Line, c.Left, c.Right); rel {
		case geom.Below, geom.TouchRight, geom.TouchBoth:
			if c.Right >= hi {
				return cells
			}
			return append(cells, Cell{Line: l, Left: c.Right + 1, Right: hi})
		case geom.TouchLeft:
			cells[last].Right = c.Left
			return append(cells, Cell{Line: l, Left: c.Left + 1, Right: hi})
		case geom.Crossing:
			t := geom.Crossover(l, c.Line, c.Left, c.Right)
			cells[last].Right = t - 1
			return append(cells, Cell{Line: l, Left: t, Right: hi})
		case geom.Dominates:
			cells = cells[:last]
		default:
			errors.Unreachable("line %s against cell %s: %s", l, c, rel)
		}
	}
	return append(cells, Cell{Line: l, Left: lo, Right: hi})
}
