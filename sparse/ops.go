// Package sparse: the filtering kernels (transpose, masked slicing,
// scalar minimum, addition, axis maxima).
//
// Every operation allocates its result; inputs are never mutated. This keeps
// the cost-bound pipeline free of aliasing hazards when the same adjacency
// matrix is sliced for many template-node pairs.
package sparse

import (
	"fmt"
	"math"
)

// Transpose returns the cols×rows transpose.
// Classic two-pass bucket transpose over the stored entries.
// Complexity: O(rows + cols + nnz).
func (m *CSR) Transpose() *CSR {
	t := &CSR{
		rows:   m.cols,
		cols:   m.rows,
		rowPtr: make([]int, m.cols+1),
		colIdx: make([]int, len(m.colIdx)),
		val:    make([]float64, len(m.val)),
	}

	// Pass 1: count entries per transposed row (= original column).
	for _, j := range m.colIdx {
		t.rowPtr[j+1]++
	}
	for r := 0; r < t.rows; r++ {
		t.rowPtr[r+1] += t.rowPtr[r]
	}

	// Pass 2: scatter. next[j] tracks the insert cursor of transposed row j.
	next := make([]int, t.rows)
	copy(next, t.rowPtr[:t.rows])
	for i := 0; i < m.rows; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			j := m.colIdx[k]
			t.colIdx[next[j]] = i
			t.val[next[j]] = m.val[k]
			next[j]++
		}
	}

	return t
}

// SubMatrix restricts the matrix to the rows and columns whose mask entry is
// true, preserving order. The result has dimensions (popcount(rowMask),
// popcount(colMask)); either may legitimately be smaller than the input.
// Complexity: O(rows + cols + nnz).
func (m *CSR) SubMatrix(rowMask, colMask []bool) (*CSR, error) {
	if len(rowMask) != m.rows || len(colMask) != m.cols {
		return nil, fmt.Errorf("SubMatrix: %w", ErrDimensionMismatch)
	}

	// Map original column indices to compacted ones (-1 = dropped).
	colMap := make([]int, m.cols)
	nc := 0
	for j, keep := range colMask {
		if keep {
			colMap[j] = nc
			nc++
		} else {
			colMap[j] = -1
		}
	}
	nr := 0
	for _, keep := range rowMask {
		if keep {
			nr++
		}
	}
	if nr == 0 || nc == 0 {
		// A fully masked-out axis yields a degenerate matrix; represent it
		// explicitly so callers can distinguish "no candidates" from misuse.
		return &CSR{rows: nr, cols: nc, rowPtr: make([]int, nr+1)}, nil
	}

	s := &CSR{rows: nr, cols: nc, rowPtr: make([]int, nr+1)}
	ri := 0
	for i := 0; i < m.rows; i++ {
		if !rowMask[i] {
			continue
		}
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if jc := colMap[m.colIdx[k]]; jc >= 0 {
				s.colIdx = append(s.colIdx, jc)
				s.val = append(s.val, m.val[k])
			}
		}
		ri++
		s.rowPtr[ri] = len(s.colIdx)
	}

	return s, nil
}

// SubMatrixIdx restricts the matrix to the given row and column index lists,
// in the order provided. Indices must be in range and free of duplicates in
// colIdxs (duplicated rows are permitted: they copy entries).
// Complexity: O(len(rowIdxs) + cols + nnz of selected rows).
func (m *CSR) SubMatrixIdx(rowIdxs, colIdxs []int) (*CSR, error) {
	if len(rowIdxs) == 0 || len(colIdxs) == 0 {
		return nil, fmt.Errorf("SubMatrixIdx: %w", ErrInvalidDimensions)
	}
	colMap := make([]int, m.cols)
	for j := range colMap {
		colMap[j] = -1
	}
	for jc, j := range colIdxs {
		if j < 0 || j >= m.cols {
			return nil, fmt.Errorf("SubMatrixIdx: col %d: %w", j, ErrIndexOutOfBounds)
		}
		if colMap[j] != -1 {
			return nil, fmt.Errorf("SubMatrixIdx: duplicate col %d: %w", j, ErrDimensionMismatch)
		}
		colMap[j] = jc
	}

	s := &CSR{rows: len(rowIdxs), cols: len(colIdxs), rowPtr: make([]int, len(rowIdxs)+1)}
	scratch := make([]colVal, 0, m.cols)
	for ri, i := range rowIdxs {
		if i < 0 || i >= m.rows {
			return nil, fmt.Errorf("SubMatrixIdx: row %d: %w", i, ErrIndexOutOfBounds)
		}
		scratch = scratch[:0]
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if jc := colMap[m.colIdx[k]]; jc >= 0 {
				scratch = append(scratch, colVal{col: jc, val: m.val[k]})
			}
		}
		// Column order may be permuted by colIdxs; restore ascending order.
		insertionSortEV(scratch)
		for _, e := range scratch {
			s.colIdx = append(s.colIdx, e.col)
			s.val = append(s.val, e.val)
		}
		s.rowPtr[ri+1] = len(s.colIdx)
	}

	return s, nil
}

// colVal is a per-row scratch pair used when column order must be restored.
type colVal struct {
	col int
	val float64
}

// insertionSortEV sorts a short per-row scratch slice by column index.
// Rows are typically very sparse, so insertion sort beats sort.Slice here.
func insertionSortEV(s []colVal) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].col < s[j-1].col; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// MinScalar returns a matrix whose stored entries are min(entry, s).
// Structural zeros are unaffected (min(0, s) == 0 for s >= 0).
// Complexity: O(rows + nnz).
func (m *CSR) MinScalar(s float64) (*CSR, error) {
	if s < 0 || math.IsNaN(s) {
		return nil, fmt.Errorf("MinScalar(%v): %w", s, ErrNegativeEntry)
	}
	c := m.Clone()
	for k, v := range c.val {
		if v > s {
			c.val[k] = s
		}
	}

	return c, nil
}

// Add returns the element-wise sum of m and b (same shape required).
// Rows are merged pairwise since both operands keep ascending column order.
// Complexity: O(rows + nnz(m) + nnz(b)).
func (m *CSR) Add(b *CSR) (*CSR, error) {
	if b == nil {
		return nil, fmt.Errorf("Add: %w", ErrNilMatrix)
	}
	if m.rows != b.rows || m.cols != b.cols {
		return nil, fmt.Errorf("Add: %w", ErrDimensionMismatch)
	}

	s := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		rowPtr: make([]int, m.rows+1),
		colIdx: make([]int, 0, len(m.colIdx)+len(b.colIdx)),
		val:    make([]float64, 0, len(m.val)+len(b.val)),
	}
	for i := 0; i < m.rows; i++ {
		ka, ea := m.rowPtr[i], m.rowPtr[i+1]
		kb, eb := b.rowPtr[i], b.rowPtr[i+1]
		for ka < ea || kb < eb {
			switch {
			case kb >= eb || (ka < ea && m.colIdx[ka] < b.colIdx[kb]):
				s.colIdx = append(s.colIdx, m.colIdx[ka])
				s.val = append(s.val, m.val[ka])
				ka++
			case ka >= ea || b.colIdx[kb] < m.colIdx[ka]:
				s.colIdx = append(s.colIdx, b.colIdx[kb])
				s.val = append(s.val, b.val[kb])
				kb++
			default: // equal column: accumulate
				s.colIdx = append(s.colIdx, m.colIdx[ka])
				s.val = append(s.val, m.val[ka]+b.val[kb])
				ka++
				kb++
			}
		}
		s.rowPtr[i+1] = len(s.colIdx)
	}

	return s, nil
}

// Scale returns the matrix with every stored entry multiplied by f (f >= 0).
// Complexity: O(rows + nnz).
func (m *CSR) Scale(f float64) (*CSR, error) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Scale(%v): %w", f, ErrNegativeEntry)
	}
	c := m.Clone()
	for k := range c.val {
		c.val[k] *= f
	}

	return c, nil
}

// RowMax returns, per row, the maximum over the row's entries, where absent
// entries count as 0. With non-negative storage this is simply the largest
// stored value, or 0 for an empty row.
// Complexity: O(rows + nnz).
func (m *CSR) RowMax() []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if m.val[k] > out[i] {
				out[i] = m.val[k]
			}
		}
	}

	return out
}

// RowSum returns, per row, the sum over the row's stored entries.
// Complexity: O(rows + nnz).
func (m *CSR) RowSum() []float64 {
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			out[i] += m.val[k]
		}
	}

	return out
}

// ColSum is RowSum along the other axis.
// Complexity: O(cols + nnz).
func (m *CSR) ColSum() []float64 {
	out := make([]float64, m.cols)
	for k, j := range m.colIdx {
		out[j] += m.val[k]
	}

	return out
}

// ColMax is RowMax along the other axis.
// Complexity: O(cols + nnz).
func (m *CSR) ColMax() []float64 {
	out := make([]float64, m.cols)
	for k, j := range m.colIdx {
		if m.val[k] > out[j] {
			out[j] = m.val[k]
		}
	}

	return out
}

// ZeroDiag returns a copy with the main diagonal removed (square only).
// Complexity: O(rows + nnz).
func (m *CSR) ZeroDiag() (*CSR, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("ZeroDiag: %w", ErrDimensionMismatch)
	}
	s := &CSR{rows: m.rows, cols: m.cols, rowPtr: make([]int, m.rows+1)}
	for i := 0; i < m.rows; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if m.colIdx[k] != i {
				s.colIdx = append(s.colIdx, m.colIdx[k])
				s.val = append(s.val, m.val[k])
			}
		}
		s.rowPtr[i+1] = len(s.colIdx)
	}

	return s, nil
}
