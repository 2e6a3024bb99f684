package geom

import "math"

// Point is an integer point in the dual plane.
type Point struct {
	X, Y int64
}

// Dual maps the line y = m*x + b to the point (m, -b). The upper envelope of
// a set of lines corresponds to the lower convex hull of their duals.
func Dual(l Line) Point {
	return Point{X: l.M, Y: -l.B}
}

// Orient returns the sign of the cross product (b-a) x (c-a): +1 for a
// counter-clockwise turn, -1 for clockwise, 0 for collinear points.
func Orient(a, b, c Point) int {
	return sign((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X))
}

// LowerHull computes the lower convex hull of pts, which must be sorted by
// strictly increasing X. Indices of the hull vertices are appended to
// dst[:0] from left to right; collinear interior points are dropped.
//
// This is the incremental monotone chain: each new point pops chain
// vertices until the last two and the new point make a left turn.
func LowerHull(pts []Point, dst []int) []int {
	dst = dst[:0]
	for i := range pts {
		for len(dst) >= 2 && Orient(pts[dst[len(dst)-2]], pts[dst[len(dst)-1]], pts[i]) <= 0 {
			dst = dst[:len(dst)-1]
		}
		dst = append(dst, i)
	}
	return dst
}

// FloorDiv returns floor(a/b) for b > 0. The quotient is estimated with a
// floating-point division and then corrected so the result is exact.
func FloorDiv(a, b int64) int64 {
	q := int64(math.Floor(float64(a) / float64(b)))
	for q*b > a {
		q--
	}
	for (q+1)*b <= a {
		q++
	}
	return q
}

// Breakpoint returns the last integer x at which p still wins over l, where
// p.M < l.M. Beyond it l is strictly greater.
func Breakpoint(p, l Line) int64 {
	// p(x) >= l(x)  <=>  x <= (p.B - l.B) / (l.M - p.M)
	return FloorDiv(p.B-l.B, l.M-p.M)
}
