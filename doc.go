// Package submatch locates approximate copies of a template graph inside a
// larger world graph: multichannel directed graphs, monotone cost bounds
// and an exact best-k assignment search.
//
// The pipeline, bottom to top:
//
//	sparse/   — compressed sparse row matrices: the adjacency representation
//	graph/    — immutable multichannel directed graphs and subgraph views
//	matching/ — the Problem aggregate: graphs, cost arrays, thresholds
//	bounds/   — nodewise and edgewise local bounds, global combination,
//	            fixed-point candidate filtering
//	search/   — branch-and-bound enumeration of the cheapest complete
//	            injective assignments
//	synth/    — reproducible planted-scenario generation for experiments
//
// This package is the convenience facade: Filter builds a problem and runs
// the candidate filters to their fixed point, Solve additionally
// enumerates the best assignments, and CountIsomorphisms counts the exact
// (zero cost) embeddings of the template.
//
// Quick example, exact matching:
//
//	tmplt, _ := graph.FromEdges(nil, []graph.Edge{
//		{Source: "x", Target: "y", Channel: "knows"},
//	})
//	world, _ := graph.FromEdges(nil, []graph.Edge{
//		{Source: "a", Target: "b", Channel: "knows"},
//		{Source: "b", Target: "c", Channel: "knows"},
//	})
//	count, _ := submatch.CountIsomorphisms(tmplt, world)
//	// count == 2: x→a,y→b and x→b,y→c
//
// Noisy matching tolerates a bounded number of missing world edges via
// matching.WithGlobalCostThreshold; see the matching package for the full
// cost model.
package submatch

import (
	"github.com/noctilum/submatch/bounds"
	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/search"
)

// Filter builds a matching problem and runs the candidate filters to their
// fixed point. The returned problem exposes the surviving candidates and
// the tightened cost bounds.
func Filter(tmplt, world *graph.Graph, opts ...matching.Option) (*matching.Problem, error) {
	p, err := matching.NewProblem(tmplt, world, opts...)
	if err != nil {
		return nil, err
	}
	if _, err = bounds.RunFilters(p); err != nil {
		return nil, err
	}

	return p, nil
}

// Solve filters and then enumerates the best k complete assignments,
// ranked by ascending verified cost. k = -1 returns every assignment
// within the global cost threshold.
func Solve(tmplt, world *graph.Graph, k int, opts ...matching.Option) ([]search.Solution, error) {
	p, err := Filter(tmplt, world, opts...)
	if err != nil {
		return nil, err
	}

	return search.BestK(p, k)
}

// CountIsomorphisms counts the exact embeddings of the template: complete
// injective assignments under which every template edge is present in the
// world. Options may add attribute costs; any assignment with a nonzero
// total is excluded by the zero threshold either way.
func CountIsomorphisms(tmplt, world *graph.Graph, opts ...matching.Option) (int, error) {
	sols, err := Solve(tmplt, world, -1, opts...)
	if err != nil {
		return 0, err
	}

	return len(sols), nil
}
