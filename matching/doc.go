// Package matching defines the subgraph matching problem aggregate: a
// template graph, a world graph, and three n×m cost arrays (fixed, local,
// global) kept under a monotonicity invariant.
//
// Overview:
//
//   - Fixed costs capture structure-independent mismatch (node attributes,
//     self-loop disagreements). They are written once at construction.
//   - Local costs are a per-assignment structural lower bound, tightened
//     iteratively by the bounds package.
//   - Global costs combine the two and are compared against
//     GlobalCostThreshold to decide candidacy: world node j is a candidate
//     for template node i iff global(i,j) ≤ threshold.
//
// The monotonicity invariant is what makes the filtering loop terminate:
// every cost array is wrapped in a MonotoneDense that only admits
// raise-to-at-least writes, with +Inf absorbing. Each filtering round can
// therefore only shrink or hold the candidate set, which is bounded below,
// so a fixed point is reached in finitely many rounds.
//
// Construction normalizes the two graphs: the world is restricted to the
// template's channels (identical, identically ordered channel lists are
// required for adjacency comparison), and self-loops are folded into fixed
// costs and stripped from both graphs — they are never re-examined
// structurally.
//
// A Problem is owned by a single caller; nothing in this package is safe
// for concurrent mutation. That matches the synchronous, CPU-bound
// filtering pipeline driving it.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:        template or world is nil.
//   - ErrChannelMismatch: the template uses a channel the world lacks.
//   - ErrCostShape:       a supplied cost array is not n×m.
//   - ErrNoCandidates:    raised by collaborators when a template node has
//     an empty candidate row where at least one is required.
package matching
