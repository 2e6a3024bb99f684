package envelope

import (
	"github.com/matzehuels/due/pkg/geom"
	"github.com/matzehuels/due/pkg/perm"
)

// Randomized builds the envelope of slope-sorted, slope-unique lines over
// [lo, hi] by randomized incremental construction. Preconditions are not
// checked.
//
// Lines are ranked by a random permutation. Round r inserts the lines ranked
// in [s, 2s) into the envelope of the first s. Each batch line is hung on
// the slot between the two envelope cells whose slopes bracket its own, and
// is dropped unless it beats the envelope at the boundary of that slot. A
// dropped line can never win, because the envelope of any superset is at
// least as high there. Survivors and cell lines are merged per slot into a
// single slope-ordered chain, and the deterministic builder turns it into
// the next envelope.
func (ws *Workspace) Randomized(lines []geom.Line, lo, hi int64) []Cell {
	n := len(lines)
	ws.Reserve(n)
	if n == 0 {
		return ws.store(ws.cur, ws.cells[ws.cur][:0])
	}

	order := ws.order[:n]
	rank := ws.rank[:n]
	perm.Shuffle(order, ws.rng)
	for r, i := range order {
		rank[i] = int32(r)
	}

	first := append(ws.cells[ws.cur][:0], Cell{Line: lines[order[0]], Left: lo, Right: hi})
	ws.store(ws.cur, first)

	for s := 1; s < n; {
		e := min(2*s, n)
		ws.round(lines, int32(s), int32(e), lo, hi)
		s = e
	}
	return ws.current()
}

// round inserts the lines ranked in [s, e) into the current envelope.
func (ws *Workspace) round(lines []geom.Line, s, e int32, lo, hi int64) {
	cur := ws.current()
	k := len(cur)
	head := ws.head[:k+1]
	tail := ws.tail[:k+1]
	link := ws.link[:len(lines)]
	for j := range head {
		head[j], tail[j] = -1, -1
	}

	// Slot j lies between cur[j-1] and cur[j]; slots 0 and k are open-ended.
	slot := 0
	for i, l := range lines {
		if r := ws.rank[i]; r < s || r >= e {
			continue
		}
		for slot < k && cur[slot].Line.M < l.M {
			slot++
		}
		if !conflicts(cur, slot, l, lo, hi) {
			continue
		}
		link[i] = -1
		if tail[slot] < 0 {
			head[slot] = int32(i)
		} else {
			link[tail[slot]] = int32(i)
		}
		tail[slot] = int32(i)
	}

	ch := ws.chain
	ch.Clear()
	for j := 0; j <= k; j++ {
		for i := head[j]; i >= 0; i = link[i] {
			ch.Push(lines[i])
		}
		if j < k {
			ch.Push(cur[j].Line)
		}
	}

	next := 1 - ws.cur
	ws.store(next, build(ws.cells[next][:0], ch, lo, hi))
}

// conflicts reports whether l, hung on slot j of cur, wins at some integer.
// Lines hung between cells p and q can only win next to the boundary
// between them: at p's last integer or at q's first.
func conflicts(cur []Cell, j int, l geom.Line, lo, hi int64) bool {
	k := len(cur)
	switch j {
	case 0:
		return l.Eval(lo) >= cur[0].Line.Eval(lo)
	case k:
		return l.Eval(hi) > cur[k-1].Line.Eval(hi)
	}
	p, q := cur[j-1], cur[j]
	r := p.Right
	return l.Eval(r) > p.Line.Eval(r) || l.Eval(r+1) >= q.Line.Eval(r+1)
}
