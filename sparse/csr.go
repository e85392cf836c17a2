// Package sparse: the CSR type, constructors and element access.
package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Entry is a single (row, col, val) triple in coordinate (COO) form.
// Duplicate triples passed to NewCSR accumulate by addition, mirroring the
// usual COO→CSR conversion semantics.
type Entry struct {
	Row, Col int
	Val      float64
}

// CSR is an immutable matrix in compressed sparse row form.
//
// Invariants maintained by every constructor and operation:
//   - len(rowPtr) == rows+1, rowPtr[0] == 0, rowPtr non-decreasing;
//   - column indices are strictly ascending within each row;
//   - every stored value is finite and >= 0;
//   - explicit zeros are never stored.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	val        []float64
}

// NewCSR builds a rows×cols matrix from COO triples.
// Duplicates accumulate; zero-valued results are dropped.
// Complexity: O(nnz log nnz) time, O(nnz) memory.
func NewCSR(rows, cols int, entries []Entry) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewCSR: %w", ErrInvalidDimensions)
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, fmt.Errorf("NewCSR: entry (%d,%d): %w", e.Row, e.Col, ErrIndexOutOfBounds)
		}
		if e.Val < 0 || math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return nil, fmt.Errorf("NewCSR: entry (%d,%d): %w", e.Row, e.Col, ErrNegativeEntry)
		}
	}

	// Sort a private copy by (row, col) so accumulation is a single pass.
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	m := &CSR{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int, rows+1),
		colIdx: make([]int, 0, len(sorted)),
		val:    make([]float64, 0, len(sorted)),
	}
	for i := 0; i < len(sorted); {
		j := i + 1
		acc := sorted[i].Val
		for j < len(sorted) && sorted[j].Row == sorted[i].Row && sorted[j].Col == sorted[i].Col {
			acc += sorted[j].Val
			j++
		}
		if acc != 0 {
			m.colIdx = append(m.colIdx, sorted[i].Col)
			m.val = append(m.val, acc)
			m.rowPtr[sorted[i].Row+1]++
		}
		i = j
	}
	for r := 0; r < rows; r++ {
		m.rowPtr[r+1] += m.rowPtr[r]
	}

	return m, nil
}

// NewCSRFromDense builds a CSR from a rectangular dense slice-of-slices.
// Ragged input is rejected with ErrDimensionMismatch.
// Complexity: O(rows·cols).
func NewCSRFromDense(a [][]float64) (*CSR, error) {
	if len(a) == 0 || len(a[0]) == 0 {
		return nil, fmt.Errorf("NewCSRFromDense: %w", ErrInvalidDimensions)
	}
	cols := len(a[0])
	entries := make([]Entry, 0)
	for i, row := range a {
		if len(row) != cols {
			return nil, fmt.Errorf("NewCSRFromDense: row %d: %w", i, ErrDimensionMismatch)
		}
		for j, v := range row {
			if v != 0 {
				entries = append(entries, Entry{Row: i, Col: j, Val: v})
			}
		}
	}

	return NewCSR(len(a), cols, entries)
}

// Zeros returns an all-zero rows×cols matrix.
// Complexity: O(rows).
func Zeros(rows, cols int) (*CSR, error) {
	return NewCSR(rows, cols, nil)
}

// Rows returns the number of rows. Complexity: O(1).
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns. Complexity: O(1).
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of stored (non-zero) entries. Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.val) }

// At returns the value at (i, j), 0 for absent entries.
// Complexity: O(log nnz(row i)) via binary search on the row's column indices.
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	k := lo + sort.SearchInts(m.colIdx[lo:hi], j)
	if k < hi && m.colIdx[k] == j {
		return m.val[k], nil
	}

	return 0, nil
}

// IterRow calls fn(col, val) for every stored entry of row i in ascending
// column order. Iteration stops early if fn returns false.
// Complexity: O(nnz(row i)).
func (m *CSR) IterRow(i int, fn func(col int, val float64) bool) error {
	if i < 0 || i >= m.rows {
		return fmt.Errorf("IterRow(%d): %w", i, ErrIndexOutOfBounds)
	}
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		if !fn(m.colIdx[k], m.val[k]) {
			break
		}
	}

	return nil
}

// Clone returns a deep copy. Complexity: O(rows + nnz).
func (m *CSR) Clone() *CSR {
	c := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, len(m.rowPtr)),
		colIdx: make([]int, len(m.colIdx)),
		val:    make([]float64, len(m.val)),
	}
	copy(c.rowPtr, m.rowPtr)
	copy(c.colIdx, m.colIdx)
	copy(c.val, m.val)

	return c
}

// Dense expands the matrix into a freshly allocated slice-of-slices.
// Intended for tests and small diagnostics only.
// Complexity: O(rows·cols).
func (m *CSR) Dense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			out[i][m.colIdx[k]] = m.val[k]
		}
	}

	return out
}

// Diag returns the main diagonal as a dense vector (square matrices only).
// Complexity: O(nnz).
func (m *CSR) Diag() ([]float64, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("Diag: %w", ErrDimensionMismatch)
	}
	d := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if m.colIdx[k] == i {
				d[i] = m.val[k]
				break
			}
		}
	}

	return d, nil
}
