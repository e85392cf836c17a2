// Package graph: derived immutable views (channel, loopless and node
// subgraphs). Each view allocates a new Graph; the receiver is untouched.
package graph

import (
	"fmt"
	"sort"

	"github.com/noctilum/submatch/sparse"
)

// ChannelSubgraph restricts the graph to the given channels, in the given
// order. Every requested channel must exist. Edges of dropped channels are
// removed from the edge list.
// Complexity: O(n + kept channels·nnz + edges).
func (g *Graph) ChannelSubgraph(channels []string) (*Graph, error) {
	keep := make(map[string]struct{}, len(channels))
	adjs := make([]*sparse.CSR, len(channels))
	for c, label := range channels {
		ci, ok := g.chIdx[label]
		if !ok {
			return nil, fmt.Errorf("graph.ChannelSubgraph: %q: %w", label, ErrUnknownChannel)
		}
		adjs[c] = g.adj[ci]
		keep[label] = struct{}{}
	}

	var edges []Edge
	for _, e := range g.edges {
		if _, ok := keep[e.Channel]; ok {
			edges = append(edges, e)
		}
	}

	return New(g.nodes, channels, adjs, edges)
}

// LooplessSubgraph returns the graph with every self-loop removed: channel
// diagonals are zeroed and self-loop edges dropped from the edge list.
// Complexity: O(n + channels·nnz + edges).
func (g *Graph) LooplessSubgraph() (*Graph, error) {
	adjs := make([]*sparse.CSR, len(g.adj))
	for c, a := range g.adj {
		la, err := a.ZeroDiag()
		if err != nil {
			return nil, fmt.Errorf("graph.LooplessSubgraph: channel %q: %w", g.channels[c], err)
		}
		adjs[c] = la
	}

	var edges []Edge
	for _, e := range g.edges {
		if e.Source != e.Target {
			edges = append(edges, e)
		}
	}

	return New(g.nodes, g.channels, adjs, edges)
}

// NodeSubgraph restricts the graph to the nodes at the given dense indices,
// in ascending index order (so world reduction preserves relative node
// order). Edges with a dropped endpoint are removed.
// Complexity: O(n + channels·nnz + edges).
func (g *Graph) NodeSubgraph(idxs []int) (*Graph, error) {
	if len(idxs) == 0 {
		return nil, fmt.Errorf("graph.NodeSubgraph: %w", ErrNoNodes)
	}
	sorted := append([]int(nil), idxs...)
	sort.Ints(sorted)
	kept := make(map[string]struct{}, len(sorted))
	nodes := make([]string, len(sorted))
	for k, i := range sorted {
		if i < 0 || i >= len(g.nodes) {
			return nil, fmt.Errorf("graph.NodeSubgraph: index %d: %w", i, sparse.ErrIndexOutOfBounds)
		}
		nodes[k] = g.nodes[i]
		kept[g.nodes[i]] = struct{}{}
	}

	adjs := make([]*sparse.CSR, len(g.adj))
	for c, a := range g.adj {
		sub, err := a.SubMatrixIdx(sorted, sorted)
		if err != nil {
			return nil, fmt.Errorf("graph.NodeSubgraph: channel %q: %w", g.channels[c], err)
		}
		adjs[c] = sub
	}

	var edges []Edge
	for _, e := range g.edges {
		if _, sok := kept[e.Source]; !sok {
			continue
		}
		if _, tok := kept[e.Target]; !tok {
			continue
		}
		edges = append(edges, e)
	}

	return New(nodes, g.channels, adjs, edges)
}
