// Package bounds_test validates the local bounds, the global combination
// and the fixed-point filter driver on small hand-checked graphs.
package bounds_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noctilum/submatch/bounds"
	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/sparse"
	"github.com/noctilum/submatch/synth"
)

// adj builds a CSR from dense rows or fails the test.
func adj(t *testing.T, a [][]float64) *sparse.CSR {
	t.Helper()
	m, err := sparse.NewCSRFromDense(a)
	require.NoError(t, err)
	return m
}

// triGraph is the 3-node, 2-channel fixture: b→a on c1, c→b on c2.
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

// noisyWorld is triGraph with the c2 edge dropped: one template edge has no
// counterpart in the world.
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

func TestNodewise_NoFunctionIsNoOp(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	require.NoError(t, bounds.Nodewise(p))
	n, m := p.Shape()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			require.Zero(t, p.LocalCosts().At(i, j))
		}
	}
}

func TestNodewise_RaisesAttributeCosts(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g, matching.WithNodeCostFn(
		func(tNode, wNode string) float64 {
			if tNode == wNode {
				return 0
			}
			return 2
		}))
	require.NoError(t, err)

	require.NoError(t, bounds.Nodewise(p))
	require.Zero(t, p.LocalCosts().At(0, 0))
	require.Equal(t, 2.0, p.LocalCosts().At(0, 1))
	require.Equal(t, 2.0, p.LocalCosts().At(2, 0))
}

func TestNodewise_NilProblem(t *testing.T) {
	require.ErrorIs(t, bounds.Nodewise(nil), matching.ErrNilGraph)
}

func TestEdgewise_ExactLocalCosts(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	require.NoError(t, bounds.Edgewise(p, nil))

	// Hand-checked: node a pairs once (with b), nodes a and c pay one
	// missing edge against every non-matching candidate, node b pairs
	// twice and pays against everyone but itself.
	local := p.LocalCosts()
	require.Equal(t, []float64{0, 1, 1}, local.Row(0))
	require.Equal(t, []float64{2, 0, 2}, local.Row(1))
	require.Equal(t, []float64{1, 1, 0}, local.Row(2))
}

func TestEdgewise_NoisyIdentityCost(t *testing.T) {
	p, err := matching.NewProblem(triGraph(t), noisyWorld(t))
	require.NoError(t, err)

	require.NoError(t, bounds.Edgewise(p, nil))

	// The missing c2 world edge charges one missing edge to both of its
	// template endpoints, even on the identity diagonal.
	local := p.LocalCosts()
	require.Equal(t, 1.0, local.At(1, 1))
	require.Equal(t, 1.0, local.At(2, 2))
	require.Zero(t, local.At(0, 0))
}

func TestEdgewise_EmptyCandidateRowFailsFast(t *testing.T) {
	g := triGraph(t)
	mask := [][]bool{
		{true, true, true},
		{false, false, false}, // b can go nowhere
		{true, true, true},
	}
	p, err := matching.NewProblem(g, g, matching.WithCandidates(mask))
	require.NoError(t, err)

	// The mask lives in the fixed costs; surface it in the global bound
	// so the candidate matrix reflects it.
	require.NoError(t, bounds.FromLocalBounds(p))
	require.ErrorIs(t, bounds.Edgewise(p, nil), matching.ErrNoCandidates)
}

func TestEdgewise_ChangedVectorLengthChecked(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	err = bounds.Edgewise(p, []bool{true})
	require.ErrorIs(t, err, matching.ErrCostShape)
}

func TestEdgewise_UnchangedRowsKeepBounds(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)
	require.NoError(t, bounds.Edgewise(p, nil))
	before := p.LocalCosts().Dense()

	// Nothing changed: a full skip must leave every bound in place.
	require.NoError(t, bounds.Edgewise(p, []bool{false, false, false}))
	after := p.LocalCosts().Dense()
	n, m := p.Shape()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			require.Equal(t, before.At(i, j), after.At(i, j))
		}
	}
}

func TestEdgewise_AttributeCosts(t *testing.T) {
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

	p, err := matching.NewProblem(g, w, matching.WithEdgeCostFn(
		func(te, we graph.Edge) float64 {
			return math.Abs(te.Attrs["w"] - we.Attrs["w"]) / 10
		}))
	require.NoError(t, err)

	require.NoError(t, bounds.Edgewise(p, nil))

	// Best assignment a→x, b→y costs |3−5|/10; every other pairing lacks
	// the world edge entirely and pays a full missing edge.
	local := p.LocalCosts()
	require.InDelta(t, 0.2, local.At(0, 0), 1e-12)
	require.InDelta(t, 0.2, local.At(1, 1), 1e-12)
}

func TestFromLocalBounds_CombinesFixedAndLocal(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	p.FixedCosts().RaiseTo(0, 1, 2)
	p.LocalCosts().RaiseTo(0, 1, 3)
	require.NoError(t, bounds.FromLocalBounds(p))
	require.Equal(t, 5.0, p.GlobalCosts().At(0, 1))
	require.Zero(t, p.GlobalCosts().At(0, 0))
}

func TestFromLocalBounds_LocalThresholdFilters(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g, matching.WithLocalCostThreshold(1))
	require.NoError(t, err)

	p.LocalCosts().RaiseTo(0, 1, 2) // above the tolerance
	p.LocalCosts().RaiseTo(0, 2, 1) // exactly at it
	require.NoError(t, bounds.FromLocalBounds(p))
	require.True(t, math.IsInf(p.GlobalCosts().At(0, 1), 1))
	require.Equal(t, 1.0, p.GlobalCosts().At(0, 2))
}

func TestRunFilters_ExactIdentifiesEveryNode(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	rounds, err := bounds.RunFilters(p)
	require.NoError(t, err)
	require.Positive(t, rounds)

	// Zero tolerance on an exact copy: only the identity survives.
	require.Equal(t, 3, p.CountCandidates())
	cands := p.Candidates()
	for i := 0; i < 3; i++ {
		require.True(t, cands[i][i])
	}
}

func TestRunFilters_NoisyKeepsIdentityWithinTolerance(t *testing.T) {
	p, err := matching.NewProblem(triGraph(t), noisyWorld(t),
		matching.WithGlobalCostThreshold(1))
	require.NoError(t, err)

	_, err = bounds.RunFilters(p)
	require.NoError(t, err)

	cands := p.Candidates()
	for i := 0; i < 3; i++ {
		require.True(t, cands[i][i], "identity candidate %d", i)
	}
	// b is pinned: any other placement costs at least two missing edges.
	require.Equal(t, []bool{false, true, false}, cands[1])
	require.Equal(t, 1.0, p.GlobalCosts().At(1, 1))
}

func TestRunFilters_FixedPointIsStable(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	_, err = bounds.RunFilters(p)
	require.NoError(t, err)
	before := p.GlobalCosts().Dense()

	// Re-running from the fixed point must change nothing.
	_, err = bounds.RunFilters(p)
	require.NoError(t, err)
	after := p.GlobalCosts().Dense()
	n, m := p.Shape()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			require.Equal(t, before.At(i, j), after.At(i, j))
		}
	}
}

// plantedProblem builds a noisy planted instance whose ground truth stays
// within the threshold, so no candidate row can ever empty out.
func plantedProblem(t *testing.T) *matching.Problem {
	t.Helper()
	s, err := synth.Planted(synth.Config{
		WorldNodes: 12, TmpltNodes: 4, Channels: 2,
		EdgeProb: 0.3, NoiseRemovals: 2, Seed: 4,
	})
	require.NoError(t, err)

	// Two removals cost at most two missing edges, so the planted copy is
	// admissible under a threshold of two.
	p, err := matching.NewProblem(s.Tmplt, s.World,
		matching.WithGlobalCostThreshold(2))
	require.NoError(t, err)
	return p
}

func TestRunFilters_StableUnderFullRecompute(t *testing.T) {
	p := plantedProblem(t)
	_, err := bounds.RunFilters(p)
	require.NoError(t, err)
	before := p.Candidates()

	// One full bound application on the converged state: a true fixed
	// point must not lose a single candidate, even on rows whose own
	// candidacy never flipped during the incremental rounds.
	require.NoError(t, bounds.Edgewise(p, nil))
	require.NoError(t, bounds.FromLocalBounds(p))
	require.Equal(t, before, p.Candidates())
}

func TestRunFilters_MatchesFullRecomputation(t *testing.T) {
	p := plantedProblem(t)
	full := p.Copy()

	_, err := bounds.RunFilters(p)
	require.NoError(t, err)

	// Drive the copy with unconditional full rounds until it stops moving.
	require.NoError(t, bounds.Nodewise(full))
	require.NoError(t, bounds.FromLocalBounds(full))
	n, m := full.Shape()
	for round := 0; round < n*m+1; round++ {
		before := full.Candidates()
		require.NoError(t, bounds.Edgewise(full, nil))
		require.NoError(t, bounds.FromLocalBounds(full))
		if sameCands(before, full.Candidates()) {
			break
		}
	}

	require.Equal(t, full.Candidates(), p.Candidates())
}

func sameCands(a, b [][]bool) bool {
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestRunFilters_InfeasibleStopsEarly(t *testing.T) {
	g := triGraph(t)
	mask := [][]bool{
		{true, true, true},
		{false, false, false},
		{true, true, true},
	}
	p, err := matching.NewProblem(g, g, matching.WithCandidates(mask))
	require.NoError(t, err)

	rounds, err := bounds.RunFilters(p)
	require.NoError(t, err)
	require.Zero(t, rounds)

	// Infeasibility is data: the empty row is visible, not an error.
	require.Equal(t, []bool{false, false, false}, p.CandidateRow(1))
}

func TestRunFilters_RoundCapHonored(t *testing.T) {
	g := triGraph(t)
	p, err := matching.NewProblem(g, g)
	require.NoError(t, err)

	rounds, err := bounds.RunFilters(p, bounds.WithMaxRounds(1))
	require.NoError(t, err)
	require.Equal(t, 1, rounds)
}
