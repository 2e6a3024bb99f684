// Package postoffice solves the discrete post-office problem on an integer
// grid: for every point of [1,U]x[1,U] it finds the nearest of a set of
// sites (the nearest-neighbor transform) and its distance.
//
// # How It Works
//
// For a fixed row y, the squared distance from (x, y) to a site (i, j) is
//
//	x² + y² - (2i·x + 2j·y - i² - j²)
//
// so the nearest site is the one maximizing the line 2i·x + (2j·y - i² - j²)
// in x. Each row is therefore one discrete upper envelope over [1, U],
// built by the [envelope] engine.
//
// Only one site per column can be nearest within a row: the one closest to
// the row. Sites are bucketed by column with two stable counting sorts, and
// each column keeps a chain of its sites with the last row each one owns.
// The sweep holds one active site per non-empty column and advances a chain
// by a single step when the row passes the active site's last row. The
// per-row input is thus bounded by the number of non-empty columns, and it
// is already sorted by slope, so the engine's unchecked fast paths are used
// with a workspace reserved once for the whole sweep.
//
// # Ties
//
// Equal distances go to the site with the smaller X, then the smaller Y.
// Coincident sites resolve to the first in input order.
//
// # Usage
//
//	sites := []postoffice.Site{{X: 2, Y: 2, ID: 1}, {X: 4, Y: 4, ID: 2}}
//	tr, err := postoffice.Build(sites, 5, postoffice.WithAlgorithm(envelope.Deterministic))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tr.Query(5, 1), tr.Distance(5, 1))
package postoffice
