// Package geom provides the integer line and point primitives used by the
// envelope engine: slope-intercept lines, a two-point cell classifier, dual
// points with an orientation predicate, and a lower-hull builder.
package geom

import "fmt"

// Line is the integer line y = M*x + B. ID identifies the line to callers and
// is ignored by Equal.
type Line struct {
	M  int64
	B  int64
	ID int
}

// Eval returns M*x + B.
func (l Line) Eval(x int64) int64 {
	return l.M*x + l.B
}

// Equal reports whether l and o describe the same line, ignoring IDs.
func (l Line) Equal(o Line) bool {
	return l.M == o.M && l.B == o.B
}

// String renders the line as "id:(m,b)".
func (l Line) String() string {
	return fmt.Sprintf("%d:(%d,%d)", l.ID, l.M, l.B)
}

// CompareSlope orders lines by slope. It returns -1, 0 or +1.
func CompareSlope(a, b Line) int {
	switch {
	case a.M < b.M:
		return -1
	case a.M > b.M:
		return 1
	}
	return 0
}

// Beats reports whether l wins over o at x under the envelope tie policy:
// the larger value wins, equal values go to the smaller slope, and identical
// lines keep the incumbent o.
func Beats(l, o Line, x int64) bool {
	lv, ov := l.Eval(x), o.Eval(x)
	if lv != ov {
		return lv > ov
	}
	return l.M < o.M
}

func sign(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
