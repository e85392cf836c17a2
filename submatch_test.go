// Package submatch_test validates the facade: end-to-end filtering,
// solving and isomorphism counting on small graphs.
package submatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noctilum/submatch"
	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
)

func path2(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(nil, []graph.Edge{
		{Source: "x", Target: "y", Channel: "knows"},
	})
	require.NoError(t, err)
	return g
}

func path3(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(nil, []graph.Edge{
		{Source: "a", Target: "b", Channel: "knows"},
		{Source: "b", Target: "c", Channel: "knows"},
	})
	require.NoError(t, err)
	return g
}

func TestFilter_SurfacesCandidates(t *testing.T) {
	p, err := submatch.Filter(path2(t), path3(t))
	require.NoError(t, err)

	// x needs an outgoing edge, so world node c is ruled out; y needs an
	// incoming one, ruling out a.
	xi, ok := p.Tmplt().NodeIndex("x")
	require.True(t, ok)
	require.Equal(t, []bool{true, true, false}, p.CandidateRow(xi))

	yi, ok := p.Tmplt().NodeIndex("y")
	require.True(t, ok)
	require.Equal(t, []bool{false, true, true}, p.CandidateRow(yi))
}

func TestSolve_RanksEmbeddings(t *testing.T) {
	sols, err := submatch.Solve(path2(t), path3(t), -1)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	for _, s := range sols {
		require.Zero(t, s.Cost)
	}
}

func TestCountIsomorphisms(t *testing.T) {
	count, err := submatch.CountIsomorphisms(path2(t), path3(t))
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// The reverse direction: a 3-node template cannot embed injectively
	// into a 2-node world.
	count, err = submatch.CountIsomorphisms(path3(t), path2(t))
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSolve_NoisyTolerance(t *testing.T) {
	// The template demands b→c; a world with only a→b still admits one
	// assignment when a single missing edge is tolerated.
	tmplt := path3(t)
	world, err := graph.FromEdges([]string{"a", "b", "c"}, []graph.Edge{
		{Source: "a", Target: "b", Channel: "knows"},
	})
	require.NoError(t, err)

	exact, err := submatch.Solve(tmplt, world, -1)
	require.NoError(t, err)
	require.Empty(t, exact)

	noisy, err := submatch.Solve(tmplt, world, -1,
		matching.WithGlobalCostThreshold(1))
	require.NoError(t, err)
	require.NotEmpty(t, noisy)
	require.Equal(t, 1.0, noisy[0].Cost)
}
