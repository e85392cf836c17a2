// Package bounds: the nodewise (attribute-only) local cost bound.
package bounds

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/noctilum/submatch/matching"
)

// Nodewise raises the local cost array by the attribute mismatch cost of
// every (template node, world node) pair, ignoring structure entirely.
// Without a configured node cost function the bound is all zero and the
// call is a no-op: attributes are treated as compatible.
// Complexity: O(n·m) cost function evaluations.
func Nodewise(p *matching.Problem) error {
	if p == nil {
		return fmt.Errorf("bounds.Nodewise: %w", matching.ErrNilGraph)
	}
	fn := p.NodeCostFn()
	if fn == nil {
		return nil
	}

	n, m := p.Shape()
	costs := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			costs.Set(i, j, fn(p.Tmplt().Node(i), p.World().Node(j)))
		}
	}
	if err := p.LocalCosts().RaiseAll(costs); err != nil {
		return fmt.Errorf("bounds.Nodewise: %w", err)
	}

	return nil
}
