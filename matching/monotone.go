// Package matching: the monotone cost array.
//
// MonotoneDense wraps a gonum dense matrix and exposes only writes that
// respect the cost-bound invariant: a cell may move up, never down, and
// +Inf is absorbing. Reinitialization (construction, world reduction) goes
// through MonotoneFromDense and the explicitly named ForceCols so every
// invariant-breaking write is visible at the call site.
package matching

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MonotoneDense is an n×m float64 cost array under the monotonicity
// invariant. The zero value is not usable; use NewMonotoneDense.
type MonotoneDense struct {
	d *mat.Dense
}

// NewMonotoneDense returns an all-zero r×c monotone array.
// Complexity: O(r·c).
func NewMonotoneDense(r, c int) *MonotoneDense {
	return &MonotoneDense{d: mat.NewDense(r, c, nil)}
}

// MonotoneFromDense adopts (deep-copies) an existing dense matrix.
// Complexity: O(r·c).
func MonotoneFromDense(d *mat.Dense) *MonotoneDense {
	var cp mat.Dense
	cp.CloneFrom(d)

	return &MonotoneDense{d: &cp}
}

// Dims returns the array dimensions. Complexity: O(1).
func (a *MonotoneDense) Dims() (r, c int) { return a.d.Dims() }

// At returns the value at (i, j). Complexity: O(1).
func (a *MonotoneDense) At(i, j int) float64 { return a.d.At(i, j) }

// RaiseTo lifts cell (i, j) to at least v. Writes below the current value
// are dropped; once a cell is +Inf it stays +Inf. NaN is ignored.
// Complexity: O(1).
func (a *MonotoneDense) RaiseTo(i, j int, v float64) {
	if math.IsNaN(v) {
		return
	}
	if cur := a.d.At(i, j); v > cur {
		a.d.Set(i, j, v)
	}
}

// RaiseAll lifts every cell to at least the corresponding cell of other.
// Complexity: O(r·c).
func (a *MonotoneDense) RaiseAll(other *mat.Dense) error {
	r, c := a.d.Dims()
	or, oc := other.Dims()
	if r != or || c != oc {
		return fmt.Errorf("MonotoneDense.RaiseAll: %dx%d vs %dx%d: %w", r, c, or, oc, ErrCostShape)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a.RaiseTo(i, j, other.At(i, j))
		}
	}

	return nil
}

// RaiseRow lifts row i to at least the given values.
// Complexity: O(c).
func (a *MonotoneDense) RaiseRow(i int, vals []float64) error {
	_, c := a.d.Dims()
	if len(vals) != c {
		return fmt.Errorf("MonotoneDense.RaiseRow: %d values for %d columns: %w", len(vals), c, ErrCostShape)
	}
	for j, v := range vals {
		a.RaiseTo(i, j, v)
	}

	return nil
}

// Row copies row i into a fresh slice. Complexity: O(c).
func (a *MonotoneDense) Row(i int) []float64 {
	_, c := a.d.Dims()
	out := make([]float64, c)
	mat.Row(out, i, a.d)

	return out
}

// Dense returns a deep copy of the underlying matrix, for callers that need
// to read the whole array (combination, snapshots) without aliasing it.
// Complexity: O(r·c).
func (a *MonotoneDense) Dense() *mat.Dense {
	var cp mat.Dense
	cp.CloneFrom(a.d)

	return &cp
}

// Clone returns an independent copy. Complexity: O(r·c).
func (a *MonotoneDense) Clone() *MonotoneDense {
	return MonotoneFromDense(a.d)
}

// ForceCols rebuilds the array keeping only the given columns, in order.
// Used when the world graph shrinks. Breaking monotonicity is fine here:
// the surviving cells keep their values, dropped cells no longer exist.
// Complexity: O(r·len(cols)).
func (a *MonotoneDense) ForceCols(cols []int) (*MonotoneDense, error) {
	r, c := a.d.Dims()
	if len(cols) == 0 {
		return nil, fmt.Errorf("MonotoneDense.ForceCols: no columns: %w", ErrCostShape)
	}
	out := mat.NewDense(r, len(cols), nil)
	for k, j := range cols {
		if j < 0 || j >= c {
			return nil, fmt.Errorf("MonotoneDense.ForceCols: column %d: %w", j, ErrCostShape)
		}
		for i := 0; i < r; i++ {
			out.Set(i, k, a.d.At(i, j))
		}
	}

	return &MonotoneDense{d: out}, nil
}
