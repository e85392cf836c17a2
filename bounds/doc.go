// Package bounds computes the local and global cost bounds of a matching
// problem and drives the fixed-point filtering loop that shrinks the
// candidate set.
//
// Overview:
//
//   - Nodewise: attribute-only lower bound. For every (template node, world
//     node) pair, the configured node cost function (or zero when absent)
//     is raised into the local cost array. Structure is ignored.
//   - Edgewise: structural lower bound. For every adjacent template pair
//     (u, v), the supported-edge count between their candidate sets is
//     computed per channel and orientation: the candidate-restricted world
//     sub-adjacency, clamped by the template multiplicity, summed over
//     channels. The row maxima give, per candidate of u, the best possible
//     support over all admissible partners for v; template total minus best
//     support is the minimum missing-edge cost added to u's local cost row
//     (and symmetrically for v via column maxima). An attribute-aware
//     variant substitutes real-valued per-edge mismatch costs for counts.
//   - FromLocalBounds: global = fixed + local, element-wise, installed
//     through the monotone setter. Candidacy is then global ≤ threshold.
//   - RunFilters: nodewise once, then edgewise/global rounds restricted to
//     template nodes whose candidate row changed, until the candidate
//     matrix is stable. Monotone costs guarantee termination: each round
//     can only move entries from candidate to non-candidate.
//
// Failure semantics follow the split mandated by the cost model: Edgewise
// fails fast (matching.ErrNoCandidates) when a template node in a required
// pair has an empty candidate row, because the filtering loop must never
// run on an inconsistent problem. The driver, in contrast, treats a row
// that empties out as data: it stops filtering and leaves the infeasibility
// visible through Candidates().
//
// The package is single-threaded by design; the per-pair computations in
// Edgewise are independent and could be parallelized with a reduction over
// the result rows, but the sequential version keeps the monotone-write
// discipline trivial to audit.
package bounds
