package envelope

import "github.com/matzehuels/due/pkg/geom"

// Source streams lines in increasing slope order. The deterministic builder
// consumes a Source; which variant backs it is chosen by the caller.
type Source interface {
	// Reset rewinds the stream to its least-sloped line.
	Reset()
	// Next returns the least-sloped line not yet returned. The caller must
	// check Empty first.
	Next() geom.Line
	// Empty reports whether the stream is exhausted.
	Empty() bool
}

// SliceSource streams a flat slope-sorted slice.
type SliceSource struct {
	lines []geom.Line
	pos   int
}

// NewSliceSource returns a source over lines, which must be sorted by
// strictly increasing slope.
func NewSliceSource(lines []geom.Line) *SliceSource {
	return &SliceSource{lines: lines}
}

// Load replaces the underlying slice and rewinds. It does not copy lines.
func (s *SliceSource) Load(lines []geom.Line) {
	s.lines = lines
	s.pos = 0
}

func (s *SliceSource) Reset()      { s.pos = 0 }
func (s *SliceSource) Empty() bool { return s.pos >= len(s.lines) }

func (s *SliceSource) Next() geom.Line {
	l := s.lines[s.pos]
	s.pos++
	return l
}

// ChainSource streams an index-linked chain of lines stored in an arena.
// Links are indices, so the arena can be reused across rounds without
// leaving stale references behind.
type ChainSource struct {
	lines []geom.Line
	next  []int32
	head  int32
	tail  int32
	cur   int32
}

// NewChainSource returns an empty chain with room for capacity lines.
func NewChainSource(capacity int) *ChainSource {
	c := &ChainSource{
		lines: make([]geom.Line, 0, capacity),
		next:  make([]int32, 0, capacity),
	}
	c.Clear()
	return c
}

// Clear empties the chain, keeping the arena's capacity.
func (c *ChainSource) Clear() {
	c.lines = c.lines[:0]
	c.next = c.next[:0]
	c.head, c.tail, c.cur = -1, -1, -1
}

// Push appends l to the end of the chain. Lines must be pushed in
// increasing slope order.
func (c *ChainSource) Push(l geom.Line) {
	i := int32(len(c.lines))
	c.lines = append(c.lines, l)
	c.next = append(c.next, -1)
	if c.tail < 0 {
		c.head = i
	} else {
		c.next[c.tail] = i
	}
	c.tail = i
}

// Len returns the number of lines in the chain.
func (c *ChainSource) Len() int { return len(c.lines) }

func (c *ChainSource) Reset()      { c.cur = c.head }
func (c *ChainSource) Empty() bool { return c.cur < 0 }

func (c *ChainSource) Next() geom.Line {
	l := c.lines[c.cur]
	c.cur = c.next[c.cur]
	return l
}

var (
	_ Source = (*SliceSource)(nil)
	_ Source = (*ChainSource)(nil)
)
