// Package pkg holds the libraries behind the due command.
//
// # Overview
//
// due computes discrete upper envelopes: for a set of lines y = m*x + b with
// integer coefficients and an integer domain [lo, hi], it partitions the
// domain into maximal runs of consecutive integers on which one line is
// highest. On top of that it builds the post-office transform of a grid, the
// nearest-site label of every point of [1,u]x[1,u], by solving one envelope
// per grid row.
//
// The packages are layered bottom-up:
//
//  1. [geom] - exact integer predicates on lines and points
//  2. [perm] - permutations for order-independence tests and shuffling
//  3. [envelope] - the four envelope constructions and their workspace
//  4. [postoffice] - the row sweep that builds the nearest-site grid
//  5. [io] - TOML line and site sets, and seeded random inputs
//  6. [pipeline] - load, build, verify runs with observability hooks
//
// [errors], [observability] and [buildinfo] support all layers.
//
// # Quick Start
//
//	env := envelope.New(envelope.WithAlgorithm(envelope.Duality))
//	if err := env.Build(lines, 1000); err != nil {
//	    return err
//	}
//	for i, c := range env.All() {
//	    fmt.Println(i, c)
//	}
//
//	tr, err := postoffice.Build(sites, 512)
//	if err != nil {
//	    return err
//	}
//	id := tr.Query(17, 42)
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/due/pkg/geom
// [perm]: https://pkg.go.dev/github.com/matzehuels/due/pkg/perm
// [envelope]: https://pkg.go.dev/github.com/matzehuels/due/pkg/envelope
// [postoffice]: https://pkg.go.dev/github.com/matzehuels/due/pkg/postoffice
// [io]: https://pkg.go.dev/github.com/matzehuels/due/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/due/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/due/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/due/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/due/pkg/buildinfo
package pkg
