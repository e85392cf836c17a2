// search/types.go — result type and sentinel errors for best-k enumeration.

package search

import "errors"

var (
	// ErrNilProblem is returned when BestK receives a nil problem.
	ErrNilProblem = errors.New("search: nil problem")

	// ErrBadK is returned when k is zero or less than -1.
	ErrBadK = errors.New("search: k must be positive or -1")
)

// Solution is one complete injective assignment of template nodes to world
// nodes together with its verified total cost.
//
// Mapping is indexed by template node: Mapping[i] is the world node index
// assigned to template node i. Cost is the verified total — fixed costs of
// the chosen pairs plus the structural disagreement of every template edge
// under the mapping — and is always within the problem's global cost
// threshold.
type Solution struct {
	Mapping []int
	Cost    float64
}

// Clone returns a deep copy of the solution.
func (s Solution) Clone() Solution {
	m := make([]int, len(s.Mapping))
	copy(m, s.Mapping)
	return Solution{Mapping: m, Cost: s.Cost}
}
