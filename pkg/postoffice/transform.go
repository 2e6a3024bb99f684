package postoffice

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
)

// MaxGrid bounds U so the grids stay addressable in memory.
const MaxGrid int64 = 4096

// Transform is the nearest-site transform of a site set over [1,U]x[1,U].
type Transform struct {
	u         int64
	algorithm envelope.Algorithm
	sites     []Site
	nearest   []int32 // site index per grid point, row-major from (1,1)
	distance  []float64
	stats     Stats
	logger    *log.Logger
}

// Stats describes a completed transform.
type Stats struct {
	Sites   int           // sites given
	Unique  int           // sites left after dropping coincident ones
	Columns int           // non-empty columns
	Cells   int           // envelope cells summed over all rows
	Elapsed time.Duration // construction time
}

// Option configures [Build].
type Option func(*config)

type config struct {
	algorithm envelope.Algorithm
	sorted    bool
	seed      *uint64
	logger    *log.Logger
}

// WithAlgorithm selects the per-row envelope algorithm.
func WithAlgorithm(a envelope.Algorithm) Option {
	return func(c *config) { c.algorithm = a }
}

// WithSorted declares that sites are already sorted by (X, Y), which skips
// the counting sort. Build rejects input that is not.
func WithSorted() Option {
	return func(c *config) { c.sorted = true }
}

// WithSeed seeds the randomized per-row construction.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithLogger sets the logger for sweep diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	cfg := config{algorithm: envelope.DefaultAlgorithm}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}

func validate(sites []Site, u int64) error {
	if err := errors.ValidateGrid(u); err != nil {
		return err
	}
	if u > MaxGrid {
		return errors.New(errors.ErrCodeInvalidDomain, "grid bound %d exceeds maximum %d", u, MaxGrid)
	}
	if len(sites) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one site is required")
	}
	for _, s := range sites {
		if err := errors.ValidateSite(s.X, s.Y, u); err != nil {
			return err
		}
	}
	return nil
}

// Build computes the nearest-site transform of sites over [1,u]x[1,u] by
// sweeping rows and building one discrete upper envelope per row. The
// transform keeps two u*u grids, so u must lie in [2, MaxGrid]; larger grids
// fail with errors.ErrCodeInvalidDomain.
func Build(sites []Site, u int64, opts ...Option) (*Transform, error) {
	cfg := newConfig(opts)
	if err := validate(sites, u); err != nil {
		return nil, err
	}
	switch cfg.algorithm {
	case envelope.Randomized, envelope.Deterministic, envelope.Duality, envelope.BruteForce:
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown algorithm %d", int(cfg.algorithm))
	}

	start := time.Now()
	var order []int32
	if cfg.sorted {
		if !sortedByXY(sites) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sites are not sorted by (x, y)")
		}
		order = identity(len(sites))
	} else {
		order = sortSites(sites, u)
	}
	cols := buildColumns(sites, order, u)

	t := newTransform(sites, u, cfg)
	t.stats.Unique = len(cols.nodes)
	t.stats.Columns = len(cols.heads)
	t.sweep(cols, cfg)
	t.fillDistances()
	t.stats.Elapsed = time.Since(start)

	t.logger.Debug("built transform",
		"algorithm", t.algorithm,
		"sites", t.stats.Sites,
		"columns", t.stats.Columns,
		"cells", t.stats.Cells,
		"elapsed", t.stats.Elapsed)
	return t, nil
}

func newTransform(sites []Site, u int64, cfg config) *Transform {
	return &Transform{
		u:         u,
		algorithm: cfg.algorithm,
		sites:     append([]Site(nil), sites...),
		nearest:   make([]int32, u*u),
		distance:  make([]float64, u*u),
		stats:     Stats{Sites: len(sites)},
		logger:    cfg.logger,
	}
}

// sweep fills the nearest grid row by row.
func (t *Transform) sweep(cols columns, cfg config) {
	k := len(cols.heads)
	ws := envelope.NewWorkspace(k)
	if cfg.seed != nil {
		ws.Seed(*cfg.seed)
	}
	active := make([]int32, k)
	copy(active, cols.heads)
	lines := make([]geom.Line, k)
	src := envelope.NewSliceSource(lines)

	for y := int64(1); y <= t.u; y++ {
		for c, a := range active {
			if y > cols.nodes[a].end {
				a = cols.nodes[a].next
				active[c] = a
			}
			i := cols.nodes[a].site
			s := t.sites[i]
			lines[c] = geom.Line{M: 2 * s.X, B: 2*s.Y*y - s.X*s.X - s.Y*s.Y, ID: int(i)}
		}

		var cells []envelope.Cell
		switch t.algorithm {
		case envelope.Deterministic:
			src.Load(lines)
			cells = ws.Deterministic(src, 1, t.u)
		case envelope.Randomized:
			cells = ws.Randomized(lines, 1, t.u)
		case envelope.Duality:
			cells = ws.Duality(lines, 1, t.u)
		case envelope.BruteForce:
			cells = ws.BruteForce(lines, 1, t.u)
		}
		t.stats.Cells += len(cells)

		row := t.nearest[(y-1)*t.u : y*t.u]
		for _, c := range cells {
			idx := int32(c.Line.ID)
			for x := c.Left; x <= c.Right; x++ {
				row[x-1] = idx
			}
		}
	}
}

func (t *Transform) fillDistances() {
	for y := int64(1); y <= t.u; y++ {
		for x := int64(1); x <= t.u; x++ {
			k := (y-1)*t.u + x - 1
			t.distance[k] = math.Sqrt(float64(dist2(t.sites[t.nearest[k]], x, y)))
		}
	}
}

func (t *Transform) index(x, y int64) (int64, bool) {
	if x < 1 || x > t.u || y < 1 || y > t.u {
		return 0, false
	}
	return (y-1)*t.u + x - 1, true
}

// Query returns the ID of the site nearest to (x, y), or -1 outside the grid.
func (t *Transform) Query(x, y int64) int {
	k, ok := t.index(x, y)
	if !ok {
		return -1
	}
	return t.sites[t.nearest[k]].ID
}

// Site returns the site nearest to (x, y) and whether (x, y) is on the grid.
func (t *Transform) Site(x, y int64) (Site, bool) {
	k, ok := t.index(x, y)
	if !ok {
		return Site{}, false
	}
	return t.sites[t.nearest[k]], true
}

// Distance returns the Euclidean distance from (x, y) to its nearest site,
// or NaN outside the grid.
func (t *Transform) Distance(x, y int64) float64 {
	k, ok := t.index(x, y)
	if !ok {
		return math.NaN()
	}
	return t.distance[k]
}

// U returns the grid bound.
func (t *Transform) U() int64 { return t.u }

// Algorithm returns the per-row envelope algorithm used.
func (t *Transform) Algorithm() envelope.Algorithm { return t.algorithm }

// Stats returns construction statistics.
func (t *Transform) Stats() Stats { return t.stats }

// Check compares the transform against a brute-force transform of sites
// over the same grid and returns a *errors.MismatchError at the first grid
// point whose nearest site differs.
func (t *Transform) Check(sites []Site, u int64) error {
	ref, err := BruteForce(sites, u, WithLogger(t.logger))
	if err != nil {
		return err
	}
	if ref.u != t.u {
		return errors.New(errors.ErrCodeMismatch, "grid bound %d differs from %d", u, t.u)
	}
	for k := range ref.nearest {
		if ref.nearest[k] != t.nearest[k] {
			x, y := int64(k)%t.u+1, int64(k)/t.u+1
			return &errors.MismatchError{
				Index: k,
				Want:  fmt.Sprintf("(%d,%d)->%s", x, y, ref.sites[ref.nearest[k]]),
				Got:   fmt.Sprintf("(%d,%d)->%s", x, y, t.sites[t.nearest[k]]),
			}
		}
	}
	return nil
}

// Verify reports whether the transform agrees with brute force everywhere.
// The first difference is logged at warn level.
func (t *Transform) Verify(sites []Site, u int64) bool {
	err := t.Check(sites, u)
	if err != nil {
		t.logger.Warn("transform verification failed", "err", err)
	}
	return err == nil
}

// BruteForce computes the transform by comparing every site against every
// grid point. Options other than WithLogger are ignored.
func BruteForce(sites []Site, u int64, opts ...Option) (*Transform, error) {
	cfg := newConfig(opts)
	cfg.algorithm = envelope.BruteForce
	if err := validate(sites, u); err != nil {
		return nil, err
	}

	start := time.Now()
	t := newTransform(sites, u, cfg)
	t.stats.Unique = len(sites)
	for y := int64(1); y <= u; y++ {
		for x := int64(1); x <= u; x++ {
			best := 0
			for i := 1; i < len(sites); i++ {
				if closer(sites[i], sites[best], x, y) {
					best = i
				}
			}
			t.nearest[(y-1)*u+x-1] = int32(best)
		}
	}
	t.fillDistances()
	t.stats.Elapsed = time.Since(start)
	return t, nil
}
