package geom

// Relation describes how a line of larger slope meets a cell line over an
// integer interval [left, right]. Ties at an integer go to the smaller slope,
// so a touching point never belongs to the new line.
type Relation int

const (
	// Unordered means the boundary signs contradict the slope order; it
	// only occurs when the new line does not have the larger slope.
	Unordered Relation = iota
	// Below: the new line stays strictly under the cell line at right.
	Below
	// TouchRight: the lines meet exactly at right.
	TouchRight
	// TouchBoth: single-point cell where the lines meet.
	TouchBoth
	// TouchLeft: the lines meet exactly at left; the new line wins from left+1.
	TouchLeft
	// Crossing: the lines cross strictly inside (left, right].
	Crossing
	// Dominates: the new line wins on the whole interval.
	Dominates
)

var relationNames = [...]string{
	Unordered:  "unordered",
	Below:      "below",
	TouchRight: "touch-right",
	TouchBoth:  "touch-both",
	TouchLeft:  "touch-left",
	Crossing:   "crossing",
	Dominates:  "dominates",
}

func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return "invalid"
	}
	return relationNames[r]
}

// Classify compares l against the cell line p at the integer boundaries left
// and right. It uses exactly two evaluations of each line and no division.
// The caller guarantees l.M > p.M and left <= right.
func Classify(l, p Line, left, right int64) Relation {
	sl := sign(l.Eval(left) - p.Eval(left))
	sr := sign(l.Eval(right) - p.Eval(right))

	if sr <= 0 {
		switch {
		case sl > 0:
			return Unordered
		case left == right && sr == 0:
			return TouchBoth
		case sr == 0:
			return TouchRight
		}
		return Below
	}

	switch {
	case sl > 0:
		return Dominates
	case sl == 0:
		return TouchLeft
	}
	return Crossing
}

// Crossover returns the first integer in (left, right] at which l strictly
// exceeds p. The caller guarantees Classify returned Crossing, so l loses at
// left and wins at right.
func Crossover(l, p Line, left, right int64) int64 {
	lo, hi := left, right
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if l.Eval(mid) > p.Eval(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
