// Package search_test validates best-k enumeration: exact and noisy
// matching, ranking determinism, threshold admission and budgets.
package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noctilum/submatch/bounds"
	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/search"
	"github.com/noctilum/submatch/sparse"
)

func adj(t *testing.T, a [][]float64) *sparse.CSR {
	t.Helper()
	m, err := sparse.NewCSRFromDense(a)
	require.NoError(t, err)
	return m
}

// triGraph: 3 nodes, 2 channels, b→a on c1, c→b on c2.
func triGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		[]string{"a", "b", "c"},
		[]string{"c1", "c2"},
		[]*sparse.CSR{
			adj(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}}),
			adj(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 1, 0}}),
		},
		[]graph.Edge{
			{Source: "b", Target: "a", Channel: "c1"},
			{Source: "c", Target: "b", Channel: "c2"},
		},
	)
	require.NoError(t, err)
	return g
}

// noisyWorld: triGraph with the c2 edge removed.
func noisyWorld(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		[]string{"a", "b", "c"},
		[]string{"c1", "c2"},
		[]*sparse.CSR{
			adj(t, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}}),
			adj(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}),
		},
		[]graph.Edge{
			{Source: "b", Target: "a", Channel: "c1"},
		},
	)
	require.NoError(t, err)
	return g
}

func filtered(t *testing.T, tmplt, world *graph.Graph, opts ...matching.Option) *matching.Problem {
	t.Helper()
	p, err := matching.NewProblem(tmplt, world, opts...)
	require.NoError(t, err)
	_, err = bounds.RunFilters(p)
	require.NoError(t, err)
	return p
}

func TestBestK_Validation(t *testing.T) {
	_, err := search.BestK(nil, 1)
	require.ErrorIs(t, err, search.ErrNilProblem)

	p := filtered(t, triGraph(t), triGraph(t))
	_, err = search.BestK(p, 0)
	require.ErrorIs(t, err, search.ErrBadK)
	_, err = search.BestK(p, -2)
	require.ErrorIs(t, err, search.ErrBadK)
}

func TestBestK_ExactMatch(t *testing.T) {
	p := filtered(t, triGraph(t), triGraph(t))

	sols, err := search.BestK(p, 1)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	require.Equal(t, []int{0, 1, 2}, sols[0].Mapping)
	require.Zero(t, sols[0].Cost)
}

func TestBestK_NoisySingleSolutionWithinTolerance(t *testing.T) {
	p := filtered(t, triGraph(t), noisyWorld(t),
		matching.WithGlobalCostThreshold(1))

	// Only the identity stays within one missing edge; every other
	// complete assignment misses both template edges.
	sols, err := search.BestK(p, -1)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	require.Equal(t, []int{0, 1, 2}, sols[0].Mapping)
	require.Equal(t, 1.0, sols[0].Cost)
}

func TestBestK_UnlimitedToleranceRanksAllAssignments(t *testing.T) {
	p := filtered(t, triGraph(t), noisyWorld(t),
		matching.WithGlobalCostThreshold(math.Inf(1)))

	sols, err := search.BestK(p, 6)
	require.NoError(t, err)
	require.Len(t, sols, 6)

	// The identity is strictly best; the other five permutations all miss
	// both template edges.
	require.Equal(t, []int{0, 1, 2}, sols[0].Mapping)
	require.Equal(t, 1.0, sols[0].Cost)
	for _, s := range sols[1:] {
		require.Equal(t, 2.0, s.Cost)
	}
}

func TestBestK_TruncationKeepsCheapestAndIsDeterministic(t *testing.T) {
	p := filtered(t, triGraph(t), noisyWorld(t),
		matching.WithGlobalCostThreshold(math.Inf(1)))

	five, err := search.BestK(p, 5)
	require.NoError(t, err)
	require.Len(t, five, 5)

	six, err := search.BestK(p, 6)
	require.NoError(t, err)
	require.Equal(t, six[:5], five)

	// Equal-cost solutions are ordered by lexicographic mapping.
	for i := 2; i < 5; i++ {
		require.True(t, lexLess(five[i-1].Mapping, five[i].Mapping))
	}
}

func TestBestK_EmptyCandidateRowYieldsNoSolutions(t *testing.T) {
	g := triGraph(t)
	mask := [][]bool{
		{true, true, true},
		{false, false, false},
		{true, true, true},
	}
	p, err := matching.NewProblem(g, g, matching.WithCandidates(mask))
	require.NoError(t, err)
	_, err = bounds.RunFilters(p)
	require.NoError(t, err)

	sols, err := search.BestK(p, 1)
	require.NoError(t, err)
	require.Empty(t, sols)
}

func TestBestK_WithoutFiltering(t *testing.T) {
	// Brute force straight after construction: the verified costs do not
	// depend on the bounds having run.
	p, err := matching.NewProblem(triGraph(t), triGraph(t),
		matching.WithGlobalCostThreshold(math.Inf(1)))
	require.NoError(t, err)

	sols, err := search.BestK(p, 1)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	require.Equal(t, []int{0, 1, 2}, sols[0].Mapping)
	require.Zero(t, sols[0].Cost)
}

func TestBestK_FixedCostsShiftRanking(t *testing.T) {
	p, err := matching.NewProblem(triGraph(t), triGraph(t),
		matching.WithGlobalCostThreshold(math.Inf(1)))
	require.NoError(t, err)

	// Penalize the identity placement of node a: the best assignment is
	// still the identity (structure dominates), but its cost carries the
	// fixed charge.
	p.FixedCosts().RaiseTo(0, 0, 0.5)
	_, err = bounds.RunFilters(p)
	require.NoError(t, err)

	sols, err := search.BestK(p, 1)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	require.Equal(t, []int{0, 1, 2}, sols[0].Mapping)
	require.Equal(t, 0.5, sols[0].Cost)
}

func TestBestK_EdgeCostFnVerifiedTotal(t *testing.T) {
	g, err := graph.New(
		[]string{"a", "b"},
		[]string{"c1"},
		[]*sparse.CSR{adj(t, [][]float64{{0, 1}, {0, 0}})},
		[]graph.Edge{{Source: "a", Target: "b", Channel: "c1", Attrs: map[string]float64{"w": 3}}},
	)
	require.NoError(t, err)
	w, err := graph.New(
		[]string{"x", "y"},
		[]string{"c1"},
		[]*sparse.CSR{adj(t, [][]float64{{0, 1}, {0, 0}})},
		[]graph.Edge{{Source: "x", Target: "y", Channel: "c1", Attrs: map[string]float64{"w": 5}}},
	)
	require.NoError(t, err)

	p, err := matching.NewProblem(g, w,
		matching.WithGlobalCostThreshold(math.Inf(1)),
		matching.WithEdgeCostFn(func(te, we graph.Edge) float64 {
			return math.Abs(te.Attrs["w"]-we.Attrs["w"]) / 10
		}))
	require.NoError(t, err)

	sols, err := search.BestK(p, 2)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	require.Equal(t, []int{0, 1}, sols[0].Mapping)
	require.InDelta(t, 0.2, sols[0].Cost, 1e-12)
	// The swapped assignment has no world edge behind the template edge.
	require.Equal(t, []int{1, 0}, sols[1].Mapping)
	require.Equal(t, 1.0, sols[1].Cost)
}

func TestBestK_ExpansionBudgetStopsCleanly(t *testing.T) {
	p := filtered(t, triGraph(t), noisyWorld(t),
		matching.WithGlobalCostThreshold(math.Inf(1)))

	sols, err := search.BestK(p, -1, search.WithMaxExpansions(1))
	require.NoError(t, err)
	// One expansion cannot complete a 3-node assignment.
	require.Empty(t, sols)
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
