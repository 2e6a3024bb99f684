package envelope

import (
	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
)

// Check rebuilds the envelope of original by brute force over the same
// domain and compares it cell by cell. It returns a *errors.MismatchError
// naming the first differing cell, or the brute-force build's error.
func (e *Envelope) Check(original []geom.Line) error {
	ref := New(WithLogger(e.logger))
	if err := ref.BuildBruteForce(original, e.lo, e.hi); err != nil {
		return err
	}
	if i := FirstDifference(ref.cells, e.cells); i >= 0 {
		return &errors.MismatchError{Index: i, Want: cellAt(ref.cells, i), Got: cellAt(e.cells, i)}
	}
	return nil
}

// Verify reports whether the envelope equals the brute-force envelope of
// original. Differences are logged at warn level.
func (e *Envelope) Verify(original []geom.Line) bool {
	err := e.Check(original)
	if err != nil {
		e.logger.Warn("envelope verification failed", "err", err)
	}
	return err == nil
}

// Mismatch returns the index of the first cell that differs from the
// brute-force envelope of original, or -1 if there is none.
func (e *Envelope) Mismatch(original []geom.Line) int {
	ref := New(WithLogger(e.logger))
	if err := ref.BuildBruteForce(original, e.lo, e.hi); err != nil {
		return 0
	}
	return FirstDifference(ref.cells, e.cells)
}

// FirstDifference returns the first index at which want and got disagree on
// line ID or interval, or -1 if they are identical. A length difference
// counts as a disagreement at the shorter length.
func FirstDifference(want, got []Cell) int {
	n := min(len(want), len(got))
	for i := range n {
		if !want[i].Same(got[i]) {
			return i
		}
	}
	if len(want) != len(got) {
		return n
	}
	return -1
}

func cellAt(cells []Cell, i int) string {
	if i < len(cells) {
		return cells[i].String()
	}
	return "<none>"
}
