// Package graph: domain types and sentinel errors.
package graph

import (
	"errors"

	"github.com/noctilum/submatch/sparse"
)

// Sentinel errors for graph construction and queries.
var (
	// ErrNilGraph indicates a nil *Graph argument.
	ErrNilGraph = errors.New("graph: nil graph")

	// ErrNoNodes indicates an empty node list at construction.
	ErrNoNodes = errors.New("graph: no nodes")

	// ErrDuplicateNode indicates a repeated node identifier.
	ErrDuplicateNode = errors.New("graph: duplicate node identifier")

	// ErrDuplicateChannel indicates a repeated channel label.
	ErrDuplicateChannel = errors.New("graph: duplicate channel label")

	// ErrUnknownNode indicates an edge endpoint absent from the node list.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrUnknownChannel indicates a channel label absent from the graph.
	ErrUnknownChannel = errors.New("graph: unknown channel")

	// ErrChannelCount indicates a mismatch between the number of adjacency
	// matrices and the number of channel labels.
	ErrChannelCount = errors.New("graph: channel count mismatch")

	// ErrAdjShape indicates an adjacency matrix that is not n×n for the
	// graph's n nodes.
	ErrAdjShape = errors.New("graph: adjacency shape mismatch")
)

// Edge is a single directed edge in one channel, with optional numeric
// attributes. Attrs is consulted only by attribute-aware cost functions;
// the structural kernels read multiplicities from the adjacency matrices.
type Edge struct {
	// Source and Target are node identifiers.
	Source, Target string

	// Channel is the edge type label.
	Channel string

	// Attrs holds optional numeric edge attributes (nil when absent).
	Attrs map[string]float64
}

// Graph is the immutable multichannel directed graph.
//
// nodes is the ordered identifier list; nodeIdx maps identifier → dense
// index. channels is the ordered label list; adj[c] is the n×n multiplicity
// matrix of channels[c]. edges retains the originating edge list (possibly
// nil when constructed from adjacency alone).
type Graph struct {
	nodes    []string
	nodeIdx  map[string]int
	channels []string
	chIdx    map[string]int
	adj      []*sparse.CSR
	edges    []Edge
}
