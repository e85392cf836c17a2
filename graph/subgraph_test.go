// Package graph_test validates the derived immutable views.
package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/sparse"
)

func TestChannelSubgraph(t *testing.T) {
	g := twoChannel(t)

	sub, err := g.ChannelSubgraph([]string{"c2"})
	require.NoError(t, err)
	require.Equal(t, []string{"c2"}, sub.Channels())
	require.Len(t, sub.Edges(), 1)
	require.Equal(t, "c2", sub.Edges()[0].Channel)

	// Original untouched.
	require.Equal(t, 2, g.NChannels())

	_, err = g.ChannelSubgraph([]string{"zz"})
	require.ErrorIs(t, err, graph.ErrUnknownChannel)
}

func TestChannelSubgraph_PreservesRequestedOrder(t *testing.T) {
	g := twoChannel(t)

	sub, err := g.ChannelSubgraph([]string{"c2", "c1"})
	require.NoError(t, err)
	require.Equal(t, []string{"c2", "c1"}, sub.Channels())

	a, err := sub.AdjChannel("c1")
	require.NoError(t, err)
	v, err := a.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestLooplessSubgraph(t *testing.T) {
	g, err := graph.New(
		[]string{"a", "b"},
		[]string{"c1"},
		[]*sparse.CSR{adj(t, [][]float64{{2, 1}, {0, 3}})},
		[]graph.Edge{
			{Source: "a", Target: "a", Channel: "c1"},
			{Source: "a", Target: "b", Channel: "c1"},
		},
	)
	require.NoError(t, err)

	ll, err := g.LooplessSubgraph()
	require.NoError(t, err)
	require.False(t, ll.HasLoops())
	require.Equal(t, [][]float64{{0, 1}, {0, 0}}, ll.Adj(0).Dense())
	require.Len(t, ll.Edges(), 1)

	// Original keeps its loops.
	require.True(t, g.HasLoops())
}

func TestNodeSubgraph(t *testing.T) {
	g := twoChannel(t)

	sub, err := g.NodeSubgraph([]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, sub.Nodes())
	require.Equal(t, 2, sub.NChannels())

	// Only c→b (channel c2) survives: b→a lost its target.
	require.Equal(t, [][]float64{{0, 0}, {0, 0}}, sub.Adj(0).Dense())
	require.Equal(t, [][]float64{{0, 0}, {1, 0}}, sub.Adj(1).Dense())
	require.Len(t, sub.Edges(), 1)

	_, err = g.NodeSubgraph(nil)
	require.ErrorIs(t, err, graph.ErrNoNodes)
	_, err = g.NodeSubgraph([]int{7})
	require.ErrorIs(t, err, sparse.ErrIndexOutOfBounds)
}
