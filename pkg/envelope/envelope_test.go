package envelope

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/due/pkg/errors"
	"github.com/matzehuels/due/pkg/geom"
	"github.com/matzehuels/due/pkg/perm"
)

func referenceLines() []geom.Line {
	return []geom.Line{
		{M: 2, B: 98, ID: 0},
		{M: 4, B: 95, ID: 1},
		{M: 4, B: 1, ID: 11},
		{M: 8, B: 79, ID: 2},
		{M: 8, B: 3, ID: 22},
		{M: 10, B: 59, ID: 3},
		{M: 12, B: 63, ID: 4},
		{M: 14, B: 35, ID: 5},
		{M: 20, B: 0, ID: 6},
	}
}

func cellTriples(cells []Cell) [][3]int64 {
	out := make([][3]int64, len(cells))
	for i, c := range cells {
		out[i] = [3]int64{int64(c.Line.ID), c.Left, c.Right}
	}
	return out
}

func randomLines(rng *rand.Rand, n int, slopes, intercepts int64) []geom.Line {
	lines := make([]geom.Line, n)
	for i := range lines {
		lines[i] = geom.Line{M: rng.Int64N(2*slopes+1) - slopes, B: rng.Int64N(2*intercepts+1) - intercepts, ID: i}
	}
	return lines
}

func TestBuild_ReferenceExample(t *testing.T) {
	want := [][3]int64{{0, 1, 1}, {1, 2, 4}, {4, 5, 7}, {6, 8, 10}}

	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			env := New(WithAlgorithm(alg))
			require.NoError(t, env.Build(referenceLines(), 10))
			assert.Equal(t, want, cellTriples(env.Cells()))
			assert.Equal(t, "[(0,1,1) (1,2,4) (4,5,7) (6,8,10)]", env.String())
			assert.True(t, env.Verify(referenceLines()))
		})
	}
}

func TestBuild_EqualIntercepts(t *testing.T) {
	lines := []geom.Line{{M: 2, B: 76, ID: 9}, {M: 4, B: 76, ID: 3}}
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			env := New()
			require.NoError(t, env.BuildWith(alg, lines, 1, 100))
			assert.Equal(t, [][3]int64{{3, 1, 100}}, cellTriples(env.Cells()))
			assert.NoError(t, env.Check(lines))
		})
	}
}

func TestBuild_Validation(t *testing.T) {
	env := New()

	err := env.Build(nil, 10)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	err = env.BuildDeterministic(referenceLines(), 5, 5)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDomain), "got %v", err)

	err = env.BuildWith(Algorithm(42), referenceLines(), 1, 10)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported), "got %v", err)
	assert.Zero(t, env.Len(), "failed builds leave the envelope untouched")
}

func TestBuild_SingleLine(t *testing.T) {
	for _, alg := range Algorithms() {
		env := New()
		require.NoError(t, env.BuildWith(alg, []geom.Line{{M: -3, B: 7, ID: 5}}, -4, 9))
		assert.Equal(t, [][3]int64{{5, -4, 9}}, cellTriples(env.Cells()), alg.String())
	}
}

func TestBuild_IdenticalLinesKeepFirst(t *testing.T) {
	lines := []geom.Line{{M: 1, B: 0, ID: 10}, {M: 1, B: 0, ID: 20}, {M: 0, B: 3, ID: 30}}
	for _, alg := range Algorithms() {
		env := New()
		require.NoError(t, env.BuildWith(alg, lines, 1, 6))
		// 0x+3 wins through x = 3 (tie at 3 goes to the smaller slope)
		assert.Equal(t, [][3]int64{{30, 1, 3}, {10, 4, 6}}, cellTriples(env.Cells()), alg.String())
	}
}

func TestBuild_RandomAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	ws := NewWorkspace(256)

	for trial := range 300 {
		n := 1 + rng.IntN(200)
		lines := randomLines(rng, n, 1+rng.Int64N(60), 1+rng.Int64N(5000))
		lo := rng.Int64N(100) - 50
		hi := lo + 1 + rng.Int64N(300)

		ref := New()
		require.NoError(t, ref.BuildBruteForce(lines, lo, hi))
		want := slices.Clone(ref.Cells())

		for _, alg := range []Algorithm{Randomized, Deterministic, Duality} {
			env := New(WithWorkspace(ws), WithSeed(uint64(trial)))
			require.NoError(t, env.BuildWith(alg, lines, lo, hi))
			if i := FirstDifference(want, env.Cells()); i >= 0 {
				t.Fatalf("trial %d %s: first difference at cell %d\nwant %v\ngot  %v", trial, alg, i, want, env.Cells())
			}
		}
	}
}

func TestBuild_Partition(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	lines := randomLines(rng, 500, 100, 10000)
	env := New()
	require.NoError(t, env.BuildRandomized(lines, 1, 1000))

	cells := env.Cells()
	require.NotEmpty(t, cells)
	assert.Equal(t, int64(1), cells[0].Left)
	assert.Equal(t, int64(1000), cells[len(cells)-1].Right)
	for i, c := range cells {
		assert.LessOrEqual(t, c.Left, c.Right)
		if i > 0 {
			assert.Equal(t, cells[i-1].Right+1, c.Left, "cells %d and %d are not contiguous", i-1, i)
			assert.Less(t, cells[i-1].Line.M, c.Line.M, "slopes must strictly increase")
		}
		for _, x := range []int64{c.Left, c.Right} {
			for _, l := range lines {
				assert.False(t, geom.Beats(l, c.Line, x), "%s beats cell %s at %d", l, c, x)
			}
		}
	}
}

func TestBuild_PermutationInvariance(t *testing.T) {
	base := referenceLines()[:7]
	want := [][3]int64{{0, 1, 1}, {1, 2, 4}, {4, 5, 10}}

	for _, p := range perm.Generate(len(base), 0) {
		lines := perm.Apply(base, p)
		for _, alg := range Algorithms() {
			env := New()
			require.NoError(t, env.BuildWith(alg, lines, 1, 10))
			require.Equal(t, want, cellTriples(env.Cells()), "%s order %v", alg, p)
		}
	}
}

func TestBuild_SeedIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 19))
	lines := randomLines(rng, 400, 80, 20000)

	var want [][3]int64
	for seed := range uint64(20) {
		env := New(WithSeed(seed))
		require.NoError(t, env.BuildRandomized(lines, -200, 200))
		got := cellTriples(env.Cells())
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "seed %d", seed)
	}
}

func TestSetDefaultSeed(t *testing.T) {
	SetDefaultSeed(7)
	t.Cleanup(func() { SetDefaultSeed(DefaultSeed) })

	rng := rand.New(rand.NewPCG(3, 4))
	lines := randomLines(rng, 300, 1000, 50000)

	insertionOrder := func(ws *Workspace) []int32 {
		sorted := slices.Clone(ws.Dedup(lines))
		ws.Randomized(sorted, -100, 100)
		return slices.Clone(ws.order[:len(sorted)])
	}

	first := insertionOrder(NewWorkspace(len(lines)))
	second := insertionOrder(NewWorkspace(len(lines)))
	assert.Equal(t, first, second)

	reseeded := NewWorkspace(len(lines))
	reseeded.Seed(7)
	assert.Equal(t, first, insertionOrder(reseeded))

	other := NewWorkspace(len(lines))
	other.Seed(8)
	assert.NotEqual(t, first, insertionOrder(other))

	// Restoring the default seed restores the default order.
	SetDefaultSeed(DefaultSeed)
	assert.NotEqual(t, first, insertionOrder(NewWorkspace(len(lines))))
}

func TestWorkspace_Reuse(t *testing.T) {
	ws := NewWorkspace(8)
	assert.Equal(t, 8, ws.Capacity())

	env := New(WithWorkspace(ws))
	require.NoError(t, env.BuildRandomized(referenceLines(), 1, 10))
	assert.Equal(t, "[(0,1,1) (1,2,4) (4,5,7) (6,8,10)]", env.String())

	// Grows past the reservation, then still answers small inputs.
	rng := rand.New(rand.NewPCG(1, 1))
	big := randomLines(rng, 100, 40, 1000)
	require.NoError(t, env.BuildDeterministic(big, 1, 50))
	assert.GreaterOrEqual(t, ws.Capacity(), 100)
	assert.True(t, env.Verify(big))

	require.NoError(t, env.BuildDuality(referenceLines(), 1, 10))
	assert.Equal(t, "[(0,1,1) (1,2,4) (4,5,7) (6,8,10)]", env.String())
}

func TestWorkspace_NoAllocationAfterReserve(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 4))
	lines := randomLines(rng, 64, 30, 500)
	ws := NewWorkspace(64)
	sorted := slices.Clone(ws.Dedup(lines))
	src := NewSliceSource(sorted)

	allocs := testing.AllocsPerRun(20, func() {
		ws.Randomized(sorted, 1, 100)
		ws.Deterministic(src, 1, 100)
		ws.Duality(sorted, 1, 100)
	})
	assert.Zero(t, allocs)
}

func TestDedup(t *testing.T) {
	ws := NewWorkspace(0)
	got := ws.Dedup(referenceLines())

	ids := make([]int, len(got))
	for i, l := range got {
		ids[i] = l.ID
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, ids)

	first := slices.Clone(got)
	assert.Equal(t, first, ws.Dedup(first))
}

func TestDedup_WideSlopes(t *testing.T) {
	const big = int64(1) << 62
	lines := []geom.Line{
		{M: big, B: 0, ID: 0},
		{M: -big, B: 1, ID: 1},
		{M: 0, B: 2, ID: 2},
		{M: -big, B: 5, ID: 3},
		{M: big, B: 0, ID: 4},
	}
	got := NewWorkspace(0).Dedup(lines)
	assert.Equal(t, []geom.Line{{M: -big, B: 5, ID: 3}, {M: 0, B: 2, ID: 2}, {M: big, B: 0, ID: 0}}, got)
}

func TestEnvelope_At(t *testing.T) {
	env := New()
	require.NoError(t, env.Build(referenceLines(), 10))

	tests := []struct {
		x      int64
		wantID int
		ok     bool
	}{
		{1, 0, true}, {2, 1, true}, {4, 1, true}, {5, 4, true}, {10, 6, true}, {0, 0, false}, {11, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.x), func(t *testing.T) {
			c, ok := env.At(tt.x)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantID, c.Line.ID)
			}
		})
	}

	count := 0
	for i, c := range env.All() {
		assert.Equal(t, env.Cells()[i], c)
		count++
	}
	assert.Equal(t, env.Len(), count)
	assert.Equal(t, DefaultLower, env.Lower())
	assert.Equal(t, int64(10), env.Upper())
}

func TestEnvelope_Mismatch(t *testing.T) {
	env := New()
	require.NoError(t, env.Build(referenceLines(), 10))
	assert.Equal(t, -1, env.Mismatch(referenceLines()))

	// Dropping the line that owns cell 2 changes the envelope from there.
	partial := slices.DeleteFunc(referenceLines(), func(l geom.Line) bool { return l.ID == 4 })
	assert.Equal(t, 2, env.Mismatch(partial))

	err := env.Check(partial)
	var mismatch *errors.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Index)
	assert.Equal(t, "(4,5,7)", mismatch.Got)
	assert.False(t, env.Verify(partial))
}

func TestFirstDifference(t *testing.T) {
	a := []Cell{{Line: geom.Line{ID: 1}, Left: 1, Right: 3}, {Line: geom.Line{ID: 2}, Left: 4, Right: 9}}
	assert.Equal(t, -1, FirstDifference(a, a))
	assert.Equal(t, 1, FirstDifference(a, a[:1]))
	b := slices.Clone(a)
	b[1].Right = 8
	assert.Equal(t, 1, FirstDifference(a, b))
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{"", Randomized, false},
		{"ric", Randomized, false},
		{"Deterministic", Deterministic, false},
		{" dual ", Duality, false},
		{"brute", BruteForce, false},
		{"quickhull", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "unknown", Algorithm(-1).String())
}

func TestChainSource(t *testing.T) {
	c := NewChainSource(0)
	assert.True(t, c.Empty())

	for i := range 3 {
		c.Push(geom.Line{M: int64(i), ID: i})
	}
	assert.Equal(t, 3, c.Len())

	for pass := range 2 {
		c.Reset()
		var ids []int
		for !c.Empty() {
			ids = append(ids, c.Next().ID)
		}
		assert.Equal(t, []int{0, 1, 2}, ids, "pass %d", pass)
	}

	c.Clear()
	c.Reset()
	assert.True(t, c.Empty())
}
