package envelope

import (
	"fmt"
	"io"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
)

// DefaultLower is the lower domain bound used by [Envelope.Build].
const DefaultLower int64 = 1

// Cell is a maximal integer interval [Left, Right] on which Line wins.
type Cell struct {
	Line  geom.Line
	Left  int64
	Right int64
}

// String renders the cell as "(id,left,right)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Line.ID, c.Left, c.Right)
}

// Same reports whether two cells name the same line ID over the same interval.
func (c Cell) Same(o Cell) bool {
	return c.Line.ID == o.Line.ID && c.Left == o.Left && c.Right == o.Right
}

// Envelope is a discrete upper envelope over an integer domain. The zero
// value is not usable; create envelopes with [New].
type Envelope struct {
	ws        *Workspace
	algorithm Algorithm
	logger    *log.Logger

	lo, hi int64
	cells  []Cell
}

// Option configures an [Envelope].
type Option func(*config)

type config struct {
	ws        *Workspace
	seed      *uint64
	algorithm Algorithm
	logger    *log.Logger
}

// WithWorkspace shares a caller-owned workspace. The envelope's cells then
// alias the workspace and are overwritten by its next build.
func WithWorkspace(ws *Workspace) Option {
	return func(c *config) { c.ws = ws }
}

// WithSeed seeds the randomized construction.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithAlgorithm selects the algorithm used by [Envelope.Build].
func WithAlgorithm(a Algorithm) Option {
	return func(c *config) { c.algorithm = a }
}

// WithLogger sets the logger for build diagnostics. Envelopes log nothing by
// default.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New creates an empty envelope.
func New(opts ...Option) *Envelope {
	cfg := config{algorithm: DefaultAlgorithm}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ws == nil {
		cfg.ws = NewWorkspace(0)
	}
	if cfg.seed != nil {
		cfg.ws.Seed(*cfg.seed)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return &Envelope{ws: cfg.ws, algorithm: cfg.algorithm, logger: cfg.logger}
}

// Build computes the envelope of lines over [DefaultLower, upper] with the
// configured algorithm.
func (e *Envelope) Build(lines []geom.Line, upper int64) error {
	return e.BuildWith(e.algorithm, lines, DefaultLower, upper)
}

// BuildBruteForce computes the envelope by evaluating every line everywhere.
func (e *Envelope) BuildBruteForce(lines []geom.Line, lo, hi int64) error {
	return e.BuildWith(BruteForce, lines, lo, hi)
}

// BuildDeterministic computes the envelope by slope-order insertion.
func (e *Envelope) BuildDeterministic(lines []geom.Line, lo, hi int64) error {
	return e.BuildWith(Deterministic, lines, lo, hi)
}

// BuildRandomized computes the envelope by randomized incremental construction.
func (e *Envelope) BuildRandomized(lines []geom.Line, lo, hi int64) error {
	return e.BuildWith(Randomized, lines, lo, hi)
}

// BuildDuality computes the envelope from the lower hull of the dual points.
func (e *Envelope) BuildDuality(lines []geom.Line, lo, hi int64) error {
	return e.BuildWith(Duality, lines, lo, hi)
}

// BuildWith validates the input and computes the envelope of lines over
// [lo, hi] with alg. Lines may be in any order and may repeat slopes. On
// error the previous envelope is left unchanged.
func (e *Envelope) BuildWith(alg Algorithm, lines []geom.Line, lo, hi int64) error {
	if err := errors.ValidateLineCount(len(lines)); err != nil {
		return err
	}
	if err := errors.ValidateDomain(lo, hi); err != nil {
		return err
	}

	start := time.Now()
	var cells []Cell
	switch alg {
	case BruteForce:
		cells = e.ws.BruteForce(lines, lo, hi)
	case Deterministic:
		src := &e.ws.slice
		src.Load(e.ws.Dedup(lines))
		cells = e.ws.Deterministic(src, lo, hi)
	case Randomized:
		cells = e.ws.Randomized(e.ws.Dedup(lines), lo, hi)
	case Duality:
		cells = e.ws.Duality(e.ws.Dedup(lines), lo, hi)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown algorithm %d", int(alg))
	}

	e.lo, e.hi, e.cells = lo, hi, cells
	e.logger.Debug("built envelope",
		"algorithm", alg,
		"lines", len(lines),
		"cells", len(cells),
		"domain", fmt.Sprintf("[%d,%d]", lo, hi),
		"elapsed", time.Since(start))
	return nil
}

// Cells returns the envelope's cells in domain order. The slice aliases the
// envelope's workspace.
func (e *Envelope) Cells() []Cell { return e.cells }

// Len returns the number of cells.
func (e *Envelope) Len() int { return len(e.cells) }

// Lower returns the domain's lower bound.
func (e *Envelope) Lower() int64 { return e.lo }

// Upper returns the domain's upper bound.
func (e *Envelope) Upper() int64 { return e.hi }

// At returns the cell containing x, or false if x is outside the domain.
func (e *Envelope) At(x int64) (Cell, bool) {
	if len(e.cells) == 0 || x < e.lo || x > e.hi {
		return Cell{}, false
	}
	i := sort.Search(len(e.cells), func(i int) bool { return e.cells[i].Right >= x })
	return e.cells[i], true
}

// All iterates over the cells with their indices.
func (e *Envelope) All() iter.Seq2[int, Cell] {
	return func(yield func(int, Cell) bool) {
		for i, c := range e.cells {
			if !yield(i, c) {
				return
			}
		}
	}
}

// String renders the cells as "[(id,left,right) ...]".
func (e *Envelope) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range e.cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}
