package postoffice

import "fmt"

// Site is a grid point that queries resolve to.
type Site struct {
	X, Y int64
	ID   int
}

func (s Site) String() string {
	return fmt.Sprintf("%d:(%d,%d)", s.ID, s.X, s.Y)
}

// closer reports whether a is strictly preferred over b as the nearest site
// to (x, y): smaller squared distance, then smaller X, then smaller Y.
func closer(a, b Site, x, y int64) bool {
	da, db := dist2(a, x, y), dist2(b, x, y)
	if da != db {
		return da < db
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func dist2(s Site, x, y int64) int64 {
	dx, dy := s.X-x, s.Y-y
	return dx*dx + dy*dy
}

// node is one site in a column chain. The site owns the rows up to end.
type node struct {
	site int32
	end  int64
	next int32
}

// columns holds the per-column chains of a site set.
type columns struct {
	nodes []node
	heads []int32 // first node of each non-empty column, by increasing X
}

// sortSites returns site indices ordered by (X, Y), stable in input order,
// using one counting sort by Y followed by one by X.
func sortSites(sites []Site, u int64) []int32 {
	n := len(sites)
	byY := make([]int32, n)
	order := make([]int32, n)
	count := make([]int, u+2)

	for _, s := range sites {
		count[s.Y+1]++
	}
	for k := 1; k < len(count); k++ {
		count[k] += count[k-1]
	}
	for i, s := range sites {
		byY[count[s.Y]] = int32(i)
		count[s.Y]++
	}

	clear(count)
	for _, s := range sites {
		count[s.X+1]++
	}
	for k := 1; k < len(count); k++ {
		count[k] += count[k-1]
	}
	for _, i := range byY {
		x := sites[i].X
		order[count[x]] = i
		count[x]++
	}
	return order
}

// identity returns the indices of sites already sorted by (X, Y).
func identity(n int) []int32 {
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	return order
}

// sortedByXY reports whether sites are in (X, Y) order.
func sortedByXY(sites []Site) bool {
	for i := 1; i < len(sites); i++ {
		a, b := sites[i-1], sites[i]
		if a.X > b.X || (a.X == b.X && a.Y > b.Y) {
			return false
		}
	}
	return true
}

// buildColumns links the (X, Y)-ordered sites into column chains. Each site
// owns the rows up to the floor of the midpoint with the next site of its
// column; the last site owns the rest of the grid. Coincident sites keep
// only the first.
func buildColumns(sites []Site, order []int32, u int64) columns {
	cols := columns{nodes: make([]node, 0, len(order))}
	prev := int32(-1)
	for _, i := range order {
		s := sites[i]
		if prev >= 0 {
			p := sites[cols.nodes[prev].site]
			if p.X == s.X {
				if p.Y == s.Y {
					continue
				}
				cols.nodes[prev].end = (p.Y + s.Y) / 2
				cols.nodes[prev].next = int32(len(cols.nodes))
			} else {
				prev = -1
			}
		}
		if prev < 0 {
			cols.heads = append(cols.heads, int32(len(cols.nodes)))
		}
		prev = int32(len(cols.nodes))
		cols.nodes = append(cols.nodes, node{site: i, end: u, next: -1})
	}
	return cols
}
