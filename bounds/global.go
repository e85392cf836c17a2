// Package bounds: global cost combination and the fixed-point filter loop.
package bounds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/noctilum/submatch/matching"
)

// FromLocalBounds combines fixed and local costs into the global bound:
// global(i, j) is raised to fixed(i, j) + local(i, j), element-wise. Both
// summands are lower bounds on disjoint cost sources (attributes and
// self-loops vs. missing edges around i), so their sum is a valid lower
// bound on the total cost of any assignment mapping i to j.
//
// A positive LocalCostThreshold additionally rules out pairs whose local
// bound already exceeds it (+Inf global cost). A zero threshold applies no
// per-node filter: candidacy is then governed by the global threshold
// alone.
//
// Complexity: O(n·m).
func FromLocalBounds(p *matching.Problem) error {
	if p == nil {
		return fmt.Errorf("bounds.FromLocalBounds: %w", matching.ErrNilGraph)
	}
	n, m := p.Shape()
	fixed, local := p.FixedCosts(), p.LocalCosts()
	lt := p.LocalCostThreshold()
	inf := math.Inf(1)

	combined := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			lc := local.At(i, j)
			if lt > 0 && lc > lt {
				combined.Set(i, j, inf)
				continue
			}
			combined.Set(i, j, fixed.At(i, j)+lc)
		}
	}
	if err := p.GlobalCosts().RaiseAll(combined); err != nil {
		return fmt.Errorf("bounds.FromLocalBounds: %w", err)
	}

	return nil
}

// RunFilters drives the candidate filtering to its fixed point:
//
//	nodewise once → global → repeat { edgewise on changed rows → global }
//	until no entry of the candidate matrix moved in a round.
//
// Termination is guaranteed: costs only rise, so candidacy entries can only
// flip from true to false, and there are n·m of them. The incremental
// changed-row dispatch reaches the same fixed point as full recomputation
// every round: any row whose masks moved is fully re-summed (see Edgewise),
// so a candidate matrix that survives a round unchanged is stable under one
// more full application of the bound. A template node whose candidate row
// empties out stops the loop early — that infeasibility is a legitimate
// outcome surfaced through p.Candidates(), not an error.
//
// Returns the number of edgewise rounds executed.
// Complexity: O(rounds · pairs · channels · nnz), rounds ≤ n·m.
func RunFilters(p *matching.Problem, opts ...Option) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("bounds.RunFilters: %w", matching.ErrNilGraph)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	n, m := p.Shape()
	maxRounds := o.maxRounds
	if maxRounds == 0 {
		maxRounds = n*m + 1
	}

	if err := Nodewise(p); err != nil {
		return 0, err
	}
	if err := FromLocalBounds(p); err != nil {
		return 0, err
	}

	changed := make([]bool, n)
	for i := range changed {
		changed[i] = true
	}

	rounds := 0
	for rounds < maxRounds {
		prev := p.Candidates()
		if emptyRow(prev) >= 0 {
			o.logger.Info("filtering stopped: infeasible template node",
				"node", p.Tmplt().Node(emptyRow(prev)), "rounds", rounds)
			return rounds, nil
		}

		if err := Edgewise(p, changed); err != nil {
			return rounds, err
		}
		if err := FromLocalBounds(p); err != nil {
			return rounds, err
		}
		rounds++

		next := p.Candidates()
		stable := true
		for i := 0; i < n; i++ {
			changed[i] = false
			for j := 0; j < m; j++ {
				if prev[i][j] != next[i][j] {
					changed[i] = true
					stable = false
					break
				}
			}
		}
		o.logger.Info("filter round complete",
			"round", rounds, "candidates", p.CountCandidates())
		if stable {
			break
		}
	}

	return rounds, nil
}

// emptyRow returns the index of the first all-false row, or -1.
func emptyRow(cands [][]bool) int {
	for i, row := range cands {
		any := false
		for _, ok := range row {
			if ok {
				any = true
				break
			}
		}
		if !any {
			return i
		}
	}

	return -1
}
