// Package graph defines the immutable multichannel directed graph consumed
// by the matching, bounds and search packages.
//
// A Graph holds an ordered list of distinct node identifiers, an ordered
// list of channel labels (edge types), one square sparse adjacency matrix
// per channel whose entries are edge multiplicities, and the originating
// edge list with optional numeric attributes.
//
// Overview:
//
//   - Construction happens once, either from explicit per-channel adjacency
//     matrices (New) or from an edge list (FromEdges). Both constructors
//     validate the structural invariants up front: unique node identifiers,
//     one n×n adjacency per channel, non-negative multiplicities.
//   - Everything after construction is a pure query or a derived view.
//     ChannelSubgraph, LooplessSubgraph and NodeSubgraph return new Graph
//     values; adjacency is never mutated in place.
//   - NeighborPairs exposes the unordered pairs of nodes adjacent in any
//     channel, in either direction: the iteration set of the edgewise cost
//     bound.
//
// Concurrency: a Graph is immutable after construction, so it may be shared
// freely across goroutines without locking.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:       a nil *Graph was passed where one is required.
//   - ErrNoNodes:        constructing a graph with an empty node list.
//   - ErrDuplicateNode:  a node identifier occurs twice.
//   - ErrUnknownNode:    an edge references a node absent from the node list.
//   - ErrUnknownChannel: a channel label is not part of the graph.
//   - ErrChannelCount:   adjacency matrix count differs from channel count.
//   - ErrAdjShape:       an adjacency matrix is not node-count square.
package graph
