// Package sparse provides compressed sparse row (CSR) matrices with
// non-negative float64 entries, tuned for the handful of kernels that
// dominate candidate filtering in subgraph matching:
//
//   - mask-restricted slicing (SubMatrix): cut a sub-adjacency down to the
//     rows/columns that are still candidates for a pair of template nodes;
//   - element-wise minimum against a scalar (MinScalar): clamp world edge
//     multiplicities by the template multiplicity;
//   - per-row and per-column maxima (RowMax/ColMax): best supported-edge
//     count over all admissible partner assignments;
//   - element-wise addition (Add): accumulate support across channels;
//   - transposition (Transpose): read adjacency in both directions.
//
// All operations return new matrices; a CSR value is never mutated after
// construction. Entries are validated to be finite and non-negative at
// ingestion, so the kernels above never need to re-check.
//
// Complexity:
//
//	Construction from COO triples is O(nnz log nnz) (per-row sort).
//	SubMatrix, MinScalar, Add, Transpose, RowMax and ColMax are O(nnz)
//	(plus O(rows+cols) bookkeeping), independent of the dense size.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidDimensions: non-positive row or column count.
//   - ErrIndexOutOfBounds:  an entry or query index outside the shape.
//   - ErrDimensionMismatch: shapes or mask lengths disagree.
//   - ErrNegativeEntry:     a negative or non-finite value at ingestion.
//   - ErrNilMatrix:         a nil *CSR passed to a binary operation.
//
// A dense fallback is intentionally absent: callers that want dense
// numerics use gonum's mat package directly.
package sparse
