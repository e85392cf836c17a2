// Package search enumerates the best-k complete injective assignments of a
// converged matching problem, ranked by ascending verified total cost.
//
// Overview:
//
//   - BestK explores partial assignments template-node-by-template-node in
//     a fixed order (ascending candidate count, index tiebreak — fail-first
//     keeps the tree narrow), extending only to world nodes that are still
//     candidates and not already used (injectivity).
//   - The cost of a completed assignment is verified against the actual
//     graph structure, not the lower bound: the sum of the chosen pairs'
//     fixed costs plus, per template edge, the missing-edge count (or the
//     attribute cost of the cheapest matching world edge) under the full
//     mapping. Verification is incremental: assigning a node settles
//     exactly the template edges between it and previously assigned nodes.
//   - Branch-and-bound pruning: a partial assignment is abandoned when its
//     verified cost plus an admissible completion bound (the cheapest
//     available fixed cost per unassigned template node) already exceeds
//     the admission bar — the global cost threshold, or the current k-th
//     best once k results are held.
//   - Results are kept in a bounded set ordered by (cost, lexicographic
//     mapping), so repeated runs on identical input produce identical
//     output, ties included.
//
// k = -1 requests every assignment whose total cost is within the global
// cost threshold. A template node with an empty candidate row yields an
// empty result — an unsatisfiable problem is a legitimate answer at search
// time, in deliberate contrast with the bounds package, which treats empty
// rows as precondition violations mid-filtering.
//
// The search is synchronous and deterministic. Callers wanting bounded
// runtime impose an expansion budget via WithMaxExpansions; there is no
// internal timeout.
package search
