package envelope

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/matzehuels/due/pkg/geom"
	"github.com/matzehuels/due/pkg/perm"
)

// DefaultSeed seeds workspaces until SetDefaultSeed is called.
const DefaultSeed uint64 = 42

var defaultSeed atomic.Uint64

func init() {
	defaultSeed.Store(DefaultSeed)
}

// SetDefaultSeed changes the seed used by workspaces created afterwards.
// Existing workspaces keep their generators.
func SetDefaultSeed(seed uint64) {
	defaultSeed.Store(seed)
}

// Workspace holds every scratch buffer used by envelope construction.
// Buffers grow when a build needs more room than was reserved and are never
// shrunk, so a workspace reserved for the largest input performs no
// allocation on later builds.
//
// Slices returned by workspace methods alias its buffers and stay valid only
// until the next call on the same workspace.
type Workspace struct {
	sorted []geom.Line
	tmp    []geom.Line

	// cells[cur] holds the latest envelope; the other buffer is where the
	// next randomized round is built.
	cells [2][]Cell
	cur   int

	order []int32
	rank  []int32
	link  []int32
	head  []int32
	tail  []int32
	chain *ChainSource

	points []geom.Point
	hull   []int

	slice SliceSource
	rng   *rand.Rand
}

// NewWorkspace returns a workspace reserved for capacity lines and seeded
// with the current default seed.
func NewWorkspace(capacity int) *Workspace {
	ws := &Workspace{
		chain: NewChainSource(0),
		rng:   perm.NewRand(defaultSeed.Load()),
	}
	ws.Reserve(capacity)
	return ws
}

// Seed reseeds the workspace's generator. The randomized construction only
// uses randomness for its insertion order, so the seed never changes the
// resulting cells.
func (ws *Workspace) Seed(seed uint64) {
	ws.rng = perm.NewRand(seed)
}

// Reserve grows the buffers so a build over n lines does not allocate.
func (ws *Workspace) Reserve(n int) {
	if n <= 0 || n <= cap(ws.sorted) {
		return
	}
	ws.sorted = make([]geom.Line, 0, n)
	ws.tmp = make([]geom.Line, 0, n)
	ws.cells[0] = make([]Cell, 0, n)
	ws.cells[1] = make([]Cell, 0, n)
	ws.order = make([]int32, n)
	ws.rank = make([]int32, n)
	ws.link = make([]int32, n)
	ws.head = make([]int32, n+1)
	ws.tail = make([]int32, n+1)
	ws.chain = NewChainSource(n)
	ws.points = make([]geom.Point, 0, n)
	ws.hull = make([]int, 0, n)
}

// Capacity returns the number of lines the workspace is reserved for.
func (ws *Workspace) Capacity() int {
	return cap(ws.sorted)
}

// current returns the latest envelope.
func (ws *Workspace) current() []Cell {
	return ws.cells[ws.cur]
}

// store records cells as the latest envelope in buffer idx.
func (ws *Workspace) store(idx int, cells []Cell) []Cell {
	ws.cells[idx] = cells
	ws.cur = idx
	return cells
}
