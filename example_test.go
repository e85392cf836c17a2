package submatch_test

import (
	"fmt"

	"github.com/noctilum/submatch"
	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
)

// Count the exact embeddings of a 2-node template in a 3-node path.
func ExampleCountIsomorphisms() {
	tmplt, _ := graph.FromEdges(nil, []graph.Edge{
		{Source: "x", Target: "y", Channel: "knows"},
	})
	world, _ := graph.FromEdges(nil, []graph.Edge{
		{Source: "a", Target: "b", Channel: "knows"},
		{Source: "b", Target: "c", Channel: "knows"},
	})

	count, _ := submatch.CountIsomorphisms(tmplt, world)
	fmt.Println(count)
	// Output: 2
}

// Tolerate one missing world edge and rank the surviving assignments.
func ExampleSolve() {
	tmplt, _ := graph.FromEdges(nil, []graph.Edge{
		{Source: "a", Target: "b", Channel: "c1"},
		{Source: "b", Target: "c", Channel: "c1"},
	})
	world, _ := graph.FromEdges([]string{"a", "b", "c"}, []graph.Edge{
		{Source: "a", Target: "b", Channel: "c1"},
	})

	sols, _ := submatch.Solve(tmplt, world, -1,
		matching.WithGlobalCostThreshold(1))
	for _, s := range sols {
		fmt.Printf("cost=%g mapping=%v\n", s.Cost, s.Mapping)
	}
	// Output:
	// cost=1 mapping=[0 1 2]
	// cost=1 mapping=[2 0 1]
}
