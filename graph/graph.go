// Package graph: constructors and pure queries.
package graph

import (
	"fmt"
	"sort"

	"github.com/noctilum/submatch/sparse"
)

// New constructs a Graph from an ordered node list, an ordered channel list,
// one adjacency matrix per channel, and an optional edge list.
//
// Validation (fail-fast, misconfiguration is fatal):
//   - at least one node; identifiers unique;
//   - len(adjs) == len(channels); every adjacency n×n;
//   - every edge references known nodes and a known channel.
//
// The adjacency matrices are cloned so later external mutation of the inputs
// cannot break immutability.
// Complexity: O(n + channels·nnz + edges).
func New(nodes, channels []string, adjs []*sparse.CSR, edges []Edge) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("graph.New: %w", ErrNoNodes)
	}
	if len(adjs) != len(channels) {
		return nil, fmt.Errorf("graph.New: %d matrices for %d channels: %w",
			len(adjs), len(channels), ErrChannelCount)
	}

	g := &Graph{
		nodes:    append([]string(nil), nodes...),
		nodeIdx:  make(map[string]int, len(nodes)),
		channels: append([]string(nil), channels...),
		chIdx:    make(map[string]int, len(channels)),
		adj:      make([]*sparse.CSR, len(adjs)),
	}
	for i, id := range g.nodes {
		if _, dup := g.nodeIdx[id]; dup {
			return nil, fmt.Errorf("graph.New: node %q: %w", id, ErrDuplicateNode)
		}
		g.nodeIdx[id] = i
	}
	for c, label := range g.channels {
		if _, dup := g.chIdx[label]; dup {
			return nil, fmt.Errorf("graph.New: channel %q: %w", label, ErrDuplicateChannel)
		}
		g.chIdx[label] = c
	}
	n := len(g.nodes)
	for c, a := range adjs {
		if a == nil {
			return nil, fmt.Errorf("graph.New: channel %q: %w", channels[c], sparse.ErrNilMatrix)
		}
		if a.Rows() != n || a.Cols() != n {
			return nil, fmt.Errorf("graph.New: channel %q is %dx%d for %d nodes: %w",
				channels[c], a.Rows(), a.Cols(), n, ErrAdjShape)
		}
		g.adj[c] = a.Clone()
	}
	for _, e := range edges {
		if _, ok := g.nodeIdx[e.Source]; !ok {
			return nil, fmt.Errorf("graph.New: edge source %q: %w", e.Source, ErrUnknownNode)
		}
		if _, ok := g.nodeIdx[e.Target]; !ok {
			return nil, fmt.Errorf("graph.New: edge target %q: %w", e.Target, ErrUnknownNode)
		}
		if _, ok := g.chIdx[e.Channel]; !ok {
			return nil, fmt.Errorf("graph.New: edge channel %q: %w", e.Channel, ErrUnknownChannel)
		}
	}
	g.edges = append([]Edge(nil), edges...)

	return g, nil
}

// FromEdges builds a Graph from an edge list alone. Channels are the sorted
// distinct labels; per-channel multiplicities count parallel edges. When
// nodes is nil, the node list is the sorted distinct set of edge endpoints.
// Complexity: O(edges log edges + n).
func FromEdges(nodes []string, edges []Edge) (*Graph, error) {
	if nodes == nil {
		seen := make(map[string]struct{})
		for _, e := range edges {
			seen[e.Source] = struct{}{}
			seen[e.Target] = struct{}{}
		}
		for id := range seen {
			nodes = append(nodes, id)
		}
		sort.Strings(nodes)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("graph.FromEdges: %w", ErrNoNodes)
	}

	nodeIdx := make(map[string]int, len(nodes))
	for i, id := range nodes {
		if _, dup := nodeIdx[id]; dup {
			return nil, fmt.Errorf("graph.FromEdges: node %q: %w", id, ErrDuplicateNode)
		}
		nodeIdx[id] = i
	}

	chSet := make(map[string][]sparse.Entry)
	for _, e := range edges {
		si, ok := nodeIdx[e.Source]
		if !ok {
			return nil, fmt.Errorf("graph.FromEdges: edge source %q: %w", e.Source, ErrUnknownNode)
		}
		ti, ok := nodeIdx[e.Target]
		if !ok {
			return nil, fmt.Errorf("graph.FromEdges: edge target %q: %w", e.Target, ErrUnknownNode)
		}
		chSet[e.Channel] = append(chSet[e.Channel], sparse.Entry{Row: si, Col: ti, Val: 1})
	}

	channels := make([]string, 0, len(chSet))
	for label := range chSet {
		channels = append(channels, label)
	}
	sort.Strings(channels)

	adjs := make([]*sparse.CSR, len(channels))
	for c, label := range channels {
		a, err := sparse.NewCSR(len(nodes), len(nodes), chSet[label])
		if err != nil {
			return nil, fmt.Errorf("graph.FromEdges: channel %q: %w", label, err)
		}
		adjs[c] = a
	}

	return New(nodes, channels, adjs, edges)
}

// NNodes returns the node count. Complexity: O(1).
func (g *Graph) NNodes() int { return len(g.nodes) }

// NChannels returns the channel count. Complexity: O(1).
func (g *Graph) NChannels() int { return len(g.channels) }

// Nodes returns a copy of the ordered node identifier list.
func (g *Graph) Nodes() []string { return append([]string(nil), g.nodes...) }

// Node returns the identifier at dense index i.
func (g *Graph) Node(i int) string { return g.nodes[i] }

// NodeIndex returns the dense index of a node identifier.
func (g *Graph) NodeIndex(id string) (int, bool) {
	i, ok := g.nodeIdx[id]
	return i, ok
}

// Channels returns a copy of the ordered channel label list.
func (g *Graph) Channels() []string { return append([]string(nil), g.channels...) }

// HasChannel reports whether the graph carries the given channel.
func (g *Graph) HasChannel(label string) bool {
	_, ok := g.chIdx[label]
	return ok
}

// Adj returns the adjacency matrix of channel index c. The returned matrix
// is shared, not copied; CSR values are immutable so this is safe.
func (g *Graph) Adj(c int) *sparse.CSR { return g.adj[c] }

// AdjChannel returns the adjacency matrix of a channel by label.
func (g *Graph) AdjChannel(label string) (*sparse.CSR, error) {
	c, ok := g.chIdx[label]
	if !ok {
		return nil, fmt.Errorf("graph.AdjChannel: %q: %w", label, ErrUnknownChannel)
	}

	return g.adj[c], nil
}

// Edges returns a copy of the edge list (nil when the graph was constructed
// from adjacency matrices alone).
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// NEdges returns the total edge multiplicity summed over all channels.
// Complexity: O(channels·nnz).
func (g *Graph) NEdges() float64 {
	total := 0.0
	for _, a := range g.adj {
		for _, s := range a.RowSum() {
			total += s
		}
	}

	return total
}

// HasLoops reports whether any channel carries a self-loop.
// Complexity: O(channels·nnz).
func (g *Graph) HasLoops() bool {
	for _, a := range g.adj {
		d, _ := a.Diag() // adjacency is square by construction
		for _, v := range d {
			if v != 0 {
				return true
			}
		}
	}

	return false
}

// SelfEdges returns an n×channels matrix of per-node self-loop
// multiplicities, one column per channel in graph order.
// Complexity: O(channels·nnz).
func (g *Graph) SelfEdges() [][]float64 {
	out := make([][]float64, len(g.nodes))
	for i := range out {
		out[i] = make([]float64, len(g.channels))
	}
	for c, a := range g.adj {
		d, _ := a.Diag()
		for i, v := range d {
			out[i][c] = v
		}
	}

	return out
}

// CompositeAdj returns the element-wise sum of all channel adjacencies.
// Complexity: O(channels·nnz).
func (g *Graph) CompositeAdj() *sparse.CSR {
	if len(g.adj) == 0 {
		z, _ := sparse.Zeros(len(g.nodes), len(g.nodes))
		return z
	}
	comp := g.adj[0].Clone()
	for _, a := range g.adj[1:] {
		comp, _ = comp.Add(a) // shapes match by construction
	}

	return comp
}

// SymCompositeAdj returns the symmetrized composite adjacency: the sum of
// all channel adjacencies plus its transpose. Entry (i, j) is nonzero iff
// i and j are adjacent in any channel, in either direction.
// Complexity: O(channels·nnz).
func (g *Graph) SymCompositeAdj() *sparse.CSR {
	comp := g.CompositeAdj()
	sym, _ := comp.Add(comp.Transpose()) // same shape by construction

	return sym
}

// OutDegrees returns per-node total outgoing multiplicity across channels.
func (g *Graph) OutDegrees() []float64 { return g.CompositeAdj().RowSum() }

// InDegrees returns per-node total incoming multiplicity across channels.
func (g *Graph) InDegrees() []float64 { return g.CompositeAdj().ColSum() }

// NeighborPairs returns every unordered pair of distinct adjacent nodes
// (i, j), i < j, where adjacency in any channel and either direction counts,
// plus (i, i) pairs for nodes with self-loops. Pair order is deterministic:
// ascending by (i, j).
//
// This is exactly the set of template-node pairs the edgewise bound has to
// examine.
// Complexity: O(channels·nnz).
func (g *Graph) NeighborPairs() [][2]int {
	sym := g.SymCompositeAdj()

	var pairs [][2]int
	for i := 0; i < sym.Rows(); i++ {
		_ = sym.IterRow(i, func(j int, _ float64) bool {
			if j >= i {
				pairs = append(pairs, [2]int{i, j})
			}
			return true
		})
	}

	return pairs
}
