// Package io reads and writes line sets and site sets as TOML, and generates
// random ones for benchmarks and cross-checks.
//
// # Line Sets
//
// A line set names a domain and the lines of an envelope problem:
//
//	lower = 1
//	upper = 10
//
//	[[lines]]
//	m = 2
//	b = 98
//	id = 0
//
//	[[lines]]
//	m = 4
//	b = 95
//	id = 1
//
// lower defaults to 1. A line without an id gets its position in the file.
//
// # Site Sets
//
// A site set names the grid bound of a post-office transform and its sites:
//
//	u = 5
//
//	[[sites]]
//	x = 2
//	y = 2
//	id = 1
//
// # Reading and Writing
//
// Use [ImportLines] and [ImportSites] to read from a file path, or
// [ReadLines] and [ReadSites] for any io.Reader. Unknown keys are rejected so
// that typos do not silently change a problem. [ExportLines] and
// [ExportSites] write files that read back identically.
//
// Decoding only checks structure. Domain and site bounds are validated by
// the envelope and postoffice packages when the data is built.
package io
