// Package matching: the Problem aggregate — construction, candidacy,
// world reduction and the human-readable summary.
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/noctilum/submatch/graph"
)

// Problem is a noisy (or exact) subgraph matching problem: the template
// graph to be located, the world graph to be searched, and the three cost
// arrays with their thresholds. It is mutated only through the monotone
// setters of its cost arrays and is owned by a single caller.
type Problem struct {
	tmplt *graph.Graph
	world *graph.Graph

	fixed  *MonotoneDense
	local  *MonotoneDense
	global *MonotoneDense

	localThreshold  float64
	globalThreshold float64

	nodeCostFn NodeCostFn
	edgeCostFn EdgeCostFn

	groundTruthProvided bool
	candidatePrintLimit int
}

// NewProblem builds a Problem from a template and a world graph.
//
// Normalization, in order:
//  1. Channel reconciliation: when the channel lists differ, the world is
//     restricted to the template's channels (same order). A template
//     channel absent from the world is fatal (ErrChannelMismatch).
//  2. Cost arrays: defaults are zero n×m; supplied arrays are shape-checked
//     (ErrCostShape). An initial candidate mask becomes +Inf fixed cost
//     outside the mask.
//  3. Self-loop folding: when the template has self-loops, per-channel
//     missing self-loop counts are added into fixed costs and both graphs
//     are replaced by their loopless subgraphs. Self-loops are fixed costs
//     from here on, never re-examined structurally.
//
// Complexity: O(n·m + channels·nnz).
func NewProblem(tmplt, world *graph.Graph, opts ...Option) (*Problem, error) {
	if tmplt == nil || world == nil {
		return nil, fmt.Errorf("matching.NewProblem: %w", ErrNilGraph)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validThreshold(cfg.localThreshold); err != nil {
		return nil, fmt.Errorf("matching.NewProblem: local threshold: %w", err)
	}
	if err := validThreshold(cfg.globalThreshold); err != nil {
		return nil, fmt.Errorf("matching.NewProblem: global threshold: %w", err)
	}

	// Stage 1: channel reconciliation.
	if !equalStrings(tmplt.Channels(), world.Channels()) {
		for _, ch := range tmplt.Channels() {
			if !world.HasChannel(ch) {
				return nil, fmt.Errorf("matching.NewProblem: channel %q: %w", ch, ErrChannelMismatch)
			}
		}
		restricted, err := world.ChannelSubgraph(tmplt.Channels())
		if err != nil {
			return nil, fmt.Errorf("matching.NewProblem: %w", err)
		}
		world = restricted
	}

	n, m := tmplt.NNodes(), world.NNodes()

	// Stage 2: cost arrays.
	fixed, err := adoptCosts(cfg.fixed, n, m)
	if err != nil {
		return nil, fmt.Errorf("matching.NewProblem: fixed costs: %w", err)
	}
	local, err := adoptCosts(cfg.local, n, m)
	if err != nil {
		return nil, fmt.Errorf("matching.NewProblem: local costs: %w", err)
	}
	global, err := adoptCosts(cfg.global, n, m)
	if err != nil {
		return nil, fmt.Errorf("matching.NewProblem: global costs: %w", err)
	}
	if cfg.candidates != nil {
		if len(cfg.candidates) != n {
			return nil, fmt.Errorf("matching.NewProblem: candidate mask: %w", ErrCostShape)
		}
		for i, row := range cfg.candidates {
			if len(row) != m {
				return nil, fmt.Errorf("matching.NewProblem: candidate mask row %d: %w", i, ErrCostShape)
			}
			for j, ok := range row {
				if !ok {
					fixed.RaiseTo(i, j, math.Inf(1))
				}
			}
		}
	}

	// Stage 3: fold self-loops into fixed costs, then strip them.
	if tmplt.HasLoops() {
		tSelf, wSelf := tmplt.SelfEdges(), world.SelfEdges()
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				miss := 0.0
				for c := range tSelf[i] {
					if d := tSelf[i][c] - wSelf[j][c]; d > 0 {
						miss += d
					}
				}
				if miss > 0 {
					fixed.RaiseTo(i, j, fixed.At(i, j)+miss)
				}
			}
		}
		if tmplt, err = tmplt.LooplessSubgraph(); err != nil {
			return nil, fmt.Errorf("matching.NewProblem: %w", err)
		}
		if world, err = world.LooplessSubgraph(); err != nil {
			return nil, fmt.Errorf("matching.NewProblem: %w", err)
		}
	}

	return &Problem{
		tmplt:               tmplt,
		world:               world,
		fixed:               fixed,
		local:               local,
		global:              global,
		localThreshold:      cfg.localThreshold,
		globalThreshold:     cfg.globalThreshold,
		nodeCostFn:          cfg.nodeCostFn,
		edgeCostFn:          cfg.edgeCostFn,
		groundTruthProvided: cfg.groundTruthProvided,
		candidatePrintLimit: cfg.candidatePrintLimit,
	}, nil
}

// adoptCosts wraps a supplied dense array (shape-checked) or allocates zeros.
func adoptCosts(d *mat.Dense, n, m int) (*MonotoneDense, error) {
	if d == nil {
		return NewMonotoneDense(n, m), nil
	}
	r, c := d.Dims()
	if r != n || c != m {
		return nil, fmt.Errorf("%dx%d for %dx%d problem: %w", r, c, n, m, ErrCostShape)
	}

	return MonotoneFromDense(d), nil
}

func validThreshold(v float64) error {
	if v < 0 || math.IsNaN(v) {
		return ErrBadThreshold
	}

	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Tmplt returns the (normalized, loopless) template graph.
func (p *Problem) Tmplt() *graph.Graph { return p.tmplt }

// World returns the (normalized, loopless) world graph.
func (p *Problem) World() *graph.Graph { return p.world }

// Shape returns (template node count, world node count).
func (p *Problem) Shape() (n, m int) { return p.tmplt.NNodes(), p.world.NNodes() }

// FixedCosts returns the fixed cost array.
func (p *Problem) FixedCosts() *MonotoneDense { return p.fixed }

// LocalCosts returns the local cost array.
func (p *Problem) LocalCosts() *MonotoneDense { return p.local }

// GlobalCosts returns the global cost array.
func (p *Problem) GlobalCosts() *MonotoneDense { return p.global }

// LocalCostThreshold returns the per-node missing-edge tolerance.
func (p *Problem) LocalCostThreshold() float64 { return p.localThreshold }

// GlobalCostThreshold returns the total match cost tolerance.
func (p *Problem) GlobalCostThreshold() float64 { return p.globalThreshold }

// SetGlobalCostThreshold relaxes or tightens the candidacy threshold.
// Raising it may readmit pairs whose global cost bound already exceeded the
// old threshold; it never un-writes any cost.
func (p *Problem) SetGlobalCostThreshold(v float64) error {
	if err := validThreshold(v); err != nil {
		return fmt.Errorf("matching.SetGlobalCostThreshold: %w", err)
	}
	p.globalThreshold = v

	return nil
}

// NodeCostFn returns the node attribute cost function (nil when absent).
func (p *Problem) NodeCostFn() NodeCostFn { return p.nodeCostFn }

// EdgeCostFn returns the edge attribute cost function (nil when absent).
func (p *Problem) EdgeCostFn() EdgeCostFn { return p.edgeCostFn }

// Candidates returns the boolean candidacy matrix: entry (i, j) is true iff
// global(i, j) ≤ GlobalCostThreshold. A row of all false means no match
// exists for that template node under the current cost model — that is
// data, not an error.
// Complexity: O(n·m).
func (p *Problem) Candidates() [][]bool {
	n, m := p.Shape()
	out := make([][]bool, n)
	for i := 0; i < n; i++ {
		out[i] = make([]bool, m)
		for j := 0; j < m; j++ {
			out[i][j] = p.global.At(i, j) <= p.globalThreshold
		}
	}

	return out
}

// CandidateRow returns the candidacy mask of template node i.
// Complexity: O(m).
func (p *Problem) CandidateRow(i int) []bool {
	_, m := p.Shape()
	out := make([]bool, m)
	for j := 0; j < m; j++ {
		out[j] = p.global.At(i, j) <= p.globalThreshold
	}

	return out
}

// CountCandidates returns the number of true entries in the candidacy matrix.
// Complexity: O(n·m).
func (p *Problem) CountCandidates() int {
	n, m := p.Shape()
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if p.global.At(i, j) <= p.globalThreshold {
				count++
			}
		}
	}

	return count
}

// Copy returns an independent Problem sharing the immutable graphs but
// deep-copying all three cost arrays.
// Complexity: O(n·m).
func (p *Problem) Copy() *Problem {
	cp := *p
	cp.fixed = p.fixed.Clone()
	cp.local = p.local.Clone()
	cp.global = p.global.Clone()

	return &cp
}

// ReduceWorld shrinks the world graph to the nodes that are candidates for
// at least one template node, slicing the cost arrays' columns to match.
// Returns true when the world actually shrank. A world with no candidate
// nodes at all is left untouched (the infeasibility stays visible through
// Candidates()).
// Complexity: O(n·m + channels·nnz).
func (p *Problem) ReduceWorld() (bool, error) {
	n, m := p.Shape()
	var keep []int
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			if p.global.At(i, j) <= p.globalThreshold {
				keep = append(keep, j)
				break
			}
		}
	}
	if len(keep) == 0 || len(keep) == m {
		return false, nil
	}

	world, err := p.world.NodeSubgraph(keep)
	if err != nil {
		return false, fmt.Errorf("matching.ReduceWorld: %w", err)
	}
	fixed, err := p.fixed.ForceCols(keep)
	if err != nil {
		return false, fmt.Errorf("matching.ReduceWorld: %w", err)
	}
	local, err := p.local.ForceCols(keep)
	if err != nil {
		return false, fmt.Errorf("matching.ReduceWorld: %w", err)
	}
	global, err := p.global.ForceCols(keep)
	if err != nil {
		return false, fmt.Errorf("matching.ReduceWorld: %w", err)
	}

	p.world = world
	p.fixed = fixed
	p.local = local
	p.global = global

	return true, nil
}

// String summarizes the problem state: graph sizes, per-node candidate
// listings (largest candidate sets first, capped by the print limit),
// identified nodes, and ground-truth diagnostics when enabled.
func (p *Problem) String() string {
	n, m := p.Shape()
	cands := p.Candidates()

	counts := make([]int, n)
	for i, row := range cands {
		for _, ok := range row {
			if ok {
				counts[i]++
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "There are %d template nodes and %d world nodes.\n", n, m)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool { return counts[order[a]] > counts[order[c]] })

	for _, i := range order {
		if counts[i] == 1 {
			continue
		}
		names := make([]string, 0, counts[i])
		for j, ok := range cands[i] {
			if ok {
				names = append(names, p.world.Node(j))
			}
		}
		sort.Strings(names)
		if len(names) > p.candidatePrintLimit {
			names = append(names[:p.candidatePrintLimit], "...")
		}
		fmt.Fprintf(&b, "%s has %d candidates: %s\n",
			p.tmplt.Node(i), counts[i], strings.Join(names, ", "))
	}

	var identified []string
	for i, c := range counts {
		if c == 1 {
			identified = append(identified, p.tmplt.Node(i))
		}
	}
	if len(identified) > 0 {
		fmt.Fprintf(&b, "%d template nodes have 1 candidate: %s\n",
			len(identified), strings.Join(identified, ", "))
	}

	if p.groundTruthProvided {
		var missing []string
		for i := 0; i < n; i++ {
			j, ok := p.world.NodeIndex(p.tmplt.Node(i))
			if !ok || !cands[i][j] {
				missing = append(missing, p.tmplt.Node(i))
			}
		}
		fmt.Fprintf(&b, "%d nodes are missing ground truth candidate: %s\n",
			len(missing), strings.Join(missing, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}
