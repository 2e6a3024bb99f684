// Package envelope computes discrete upper envelopes (DUE): the pointwise
// maximum of a set of integer lines restricted to the integers of a domain
// [lo, hi], represented as contiguous dominance cells.
//
// # Overview
//
// An [Envelope] is an ordered sequence of [Cell] values. Each cell names the
// line that wins on its integer interval. Cells are contiguous, cover the
// domain exactly, and their lines have strictly increasing slopes.
//
// The winner at an integer x is the line with the greatest value. Equal
// values go to the line with the smaller slope, and identical lines go to the
// one that appears first in the input. Every algorithm follows this rule, so
// all of them return the same cells for the same input.
//
// # Algorithms
//
// Four construction algorithms trade running time against the degree of the
// geometric predicate they rely on:
//
//   - [BruteForce]: evaluates every line at every integer. O(n·U). This is
//     the reference oracle and is deliberately left unoptimized.
//   - [Deterministic]: inserts lines in slope order; each new line replaces a
//     suffix of the envelope, located with two integer evaluations per cell
//     and a binary search for the breakpoint. O(n log U), no division.
//   - [Randomized]: randomized incremental construction over doubling
//     rounds with per-slot conflict chains. Expected O(n log n) apart from
//     breakpoint searches.
//   - [Duality]: maps lines to dual points (m, -b) and reads the envelope off
//     their lower convex hull. Uses a degree-2 orientation predicate and one
//     real division per breakpoint.
//
// # Basic Usage
//
//	lines := []geom.Line{{M: 2, B: 98, ID: 0}, {M: 4, B: 95, ID: 1}, {M: 20, B: 0, ID: 6}}
//	env := envelope.New()
//	if err := env.BuildDeterministic(lines, 1, 10); err != nil {
//	    return err
//	}
//	for _, c := range env.All() {
//	    fmt.Println(c.Line.ID, c.Left, c.Right)
//	}
//
// [Envelope.Verify] rebuilds the envelope by brute force and compares cell by
// cell. It is a testing tool, not a runtime guard.
//
// # Workspaces
//
// All scratch memory lives in a [Workspace]: slope-sort buffers, the random
// order, conflict chains and two alternating building buffers. A caller that
// builds many envelopes (such as the post-office row driver, which builds one
// per grid row) reserves a workspace once and calls the unchecked fast paths
// [Workspace.Deterministic], [Workspace.Randomized] and [Workspace.Duality]
// directly with slope-sorted, slope-unique input.
//
// # Concurrency
//
// Envelopes and workspaces are not safe for concurrent use. Each goroutine
// should own its own instance. The only shared state is the default seed read
// by [NewWorkspace]; see [SetDefaultSeed].
package envelope
