package io

import (
	"math/rand/v2"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/geom"
	"github.com/matzehuels/due/pkg/postoffice"
)

// RandomOptions bounds generated line coefficients.
type RandomOptions struct {
	MaxSlope     int64 // slopes are drawn from [-MaxSlope, MaxSlope]
	MaxIntercept int64 // intercepts are drawn from [-MaxIntercept, MaxIntercept]
}

var defaultRandomOpts = RandomOptions{
	MaxSlope:     1000,
	MaxIntercept: 1_000_000,
}

// RandomLines generates n lines over [envelope.DefaultLower, upper]. Line i
// gets ID i. The same seed always produces the same set.
func RandomLines(n int, upper int64, seed uint64, opts *RandomOptions) LineSet {
	if opts == nil {
		opts = &defaultRandomOpts
	}
	slopes := max(opts.MaxSlope, 1)
	intercepts := max(opts.MaxIntercept, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	set := LineSet{Lower: envelope.DefaultLower, Upper: upper, Lines: make([]geom.Line, n)}
	for i := range set.Lines {
		set.Lines[i] = geom.Line{
			M:  rng.Int64N(2*slopes+1) - slopes,
			B:  rng.Int64N(2*intercepts+1) - intercepts,
			ID: i,
		}
	}
	return set
}

// RandomSites generates n sites uniformly on the [1,u]x[1,u] grid. Site i
// gets ID i.
func RandomSites(n int, u int64, seed uint64) SiteSet {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	set := SiteSet{U: u, Sites: make([]postoffice.Site, n)}
	for i := range set.Sites {
		set.Sites[i] = postoffice.Site{X: 1 + rng.Int64N(u), Y: 1 + rng.Int64N(u), ID: i}
	}
	return set
}
