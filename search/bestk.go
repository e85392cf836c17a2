// Package search — best-k enumeration (exact depth-first search with
// admissible lower bounds).
//
// BestK enumerates complete injective template→world assignments via a
// depth-first branch-and-bound search with deterministic branching.
//
// Rationale (succinct):
//  1. Template nodes are processed in ascending candidate count (index
//     tiebreak): the most constrained node first keeps the tree narrow.
//  2. Per node, candidates are tried in ascending global cost bound (index
//     tiebreak). Cheap candidates first tightens the incumbent set early
//     while remaining fully deterministic.
//  3. Costs are verified incrementally: assigning a node settles exactly
//     the template edges between it and previously assigned nodes, so a
//     completed branch carries its exact total with no final re-scan.
//  4. Lower bound: verified cost so far plus, for each unassigned template
//     node, its cheapest candidate fixed cost. Edges among unassigned
//     nodes are ignored — an underestimate, hence admissible. Prune when
//     the bound exceeds the admission bar (global threshold, or the k-th
//     best cost once k solutions are held).
//  5. Optional expansion budget: the search stops cleanly when exhausted
//     and reports what it has.
//
// Complexity: worst case exponential in the template size (exact search);
// per expansion O(incident template edges + m) state work.
package search

import (
	"fmt"
	"math"
	"sort"

	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
)

// bbEngine holds all search data and policies. A dedicated engine struct
// (instead of closures) keeps dependencies explicit and hot-path state
// predictable.
type bbEngine struct {
	p    *matching.Problem
	n, m int
	k    int // -1: every solution within the threshold

	threshold float64

	// Branching policy, fixed before the search starts.
	order     []int   // template nodes, most constrained first
	candLists [][]int // per template node: candidate world indices, cheap first

	// Admissible remainder: suffixFixed[pos] is the sum of the cheapest
	// candidate fixed cost of every template node at order position ≥ pos.
	suffixFixed []float64

	// Template edges with resolved endpoint indices, and a world edge
	// index keyed by (source, target, channel) for the attribute path.
	tEdges  []resolvedEdge
	wEdges  map[edgeKey][]graph.Edge
	countTv [][]chanCount // countTv[i]: per assigned-neighbor structural demands of node i

	// Current search state.
	mapping []int  // template index → world index, -1 while unassigned
	used    []bool // world indices taken by the partial assignment
	results []Solution

	expansions    int
	maxExpansions int
	out           options
}

type resolvedEdge struct {
	src, dst int // template node indices
	e        graph.Edge
}

type edgeKey struct {
	source, target, channel string
}

// chanCount is one directed structural demand between two template nodes:
// tv parallel edges from src to dst in channel c.
type chanCount struct {
	other    int // the neighboring template node
	srcFirst bool
	c        int
	tv       float64
}

// BestK returns the best k complete assignments of the problem, ranked by
// ascending verified cost with lexicographic mapping as the tiebreak.
// k = -1 returns every assignment whose cost is within the global cost
// threshold. A template node without candidates yields an empty result.
//
// BestK reads the problem but never mutates it; run the filters first for
// a tight candidate set, or call it directly for a brute-force enumeration.
func BestK(p *matching.Problem, k int, opts ...Option) ([]Solution, error) {
	if p == nil {
		return nil, fmt.Errorf("search.BestK: %w", ErrNilProblem)
	}
	if k == 0 || k < -1 {
		return nil, fmt.Errorf("search.BestK: k=%d: %w", k, ErrBadK)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &bbEngine{
		p:             p,
		k:             k,
		threshold:     p.GlobalCostThreshold(),
		maxExpansions: o.maxExpansions,
		out:           o,
	}
	e.n, e.m = p.Shape()

	if !e.initBranching() {
		return nil, nil // a candidate-less template node: no solutions
	}
	e.initStructure()

	e.mapping = make([]int, e.n)
	for i := range e.mapping {
		e.mapping[i] = -1
	}
	e.used = make([]bool, e.m)

	e.dfs(0, 0)

	o.logger.Info("search complete",
		"solutions", len(e.results), "expansions", e.expansions)

	return e.results, nil
}

// initBranching fixes the node order and per-node candidate order. Returns
// false when some template node has no candidates at all.
func (e *bbEngine) initBranching() bool {
	cands := e.p.Candidates()
	global := e.p.GlobalCosts()
	fixed := e.p.FixedCosts()

	counts := make([]int, e.n)
	e.candLists = make([][]int, e.n)
	minFixed := make([]float64, e.n)
	for i := 0; i < e.n; i++ {
		minFixed[i] = math.Inf(1)
		for j := 0; j < e.m; j++ {
			if !cands[i][j] {
				continue
			}
			counts[i]++
			e.candLists[i] = append(e.candLists[i], j)
			if f := fixed.At(i, j); f < minFixed[i] {
				minFixed[i] = f
			}
		}
		if counts[i] == 0 {
			return false
		}
		list := e.candLists[i]
		row := i
		sort.SliceStable(list, func(a, b int) bool {
			ga, gb := global.At(row, list[a]), global.At(row, list[b])
			if ga != gb {
				return ga < gb
			}
			return list[a] < list[b]
		})
	}

	e.order = make([]int, e.n)
	for i := range e.order {
		e.order[i] = i
	}
	sort.SliceStable(e.order, func(a, b int) bool {
		if counts[e.order[a]] != counts[e.order[b]] {
			return counts[e.order[a]] < counts[e.order[b]]
		}
		return e.order[a] < e.order[b]
	})

	e.suffixFixed = make([]float64, e.n+1)
	for pos := e.n - 1; pos >= 0; pos-- {
		e.suffixFixed[pos] = e.suffixFixed[pos+1] + minFixed[e.order[pos]]
	}

	return true
}

// initStructure precomputes the template's structural demands (per-node
// directed channel counts) and, for the attribute path, the resolved
// template edge list and a world edge index.
func (e *bbEngine) initStructure() {
	tmplt := e.p.Tmplt()
	nch := tmplt.NChannels()

	e.countTv = make([][]chanCount, e.n)
	for c := 0; c < nch; c++ {
		adj := tmplt.Adj(c)
		for i := 0; i < e.n; i++ {
			src := i
			_ = adj.IterRow(src, func(j int, tv float64) bool {
				e.countTv[src] = append(e.countTv[src], chanCount{other: j, srcFirst: true, c: c, tv: tv})
				if src != j {
					e.countTv[j] = append(e.countTv[j], chanCount{other: src, srcFirst: false, c: c, tv: tv})
				}
				return true
			})
		}
	}

	if e.p.EdgeCostFn() == nil {
		return
	}

	for _, te := range tmplt.Edges() {
		si, _ := tmplt.NodeIndex(te.Source)
		ti, _ := tmplt.NodeIndex(te.Target)
		e.tEdges = append(e.tEdges, resolvedEdge{src: si, dst: ti, e: te})
	}

	world := e.p.World()
	e.wEdges = make(map[edgeKey][]graph.Edge)
	for _, we := range world.Edges() {
		key := edgeKey{we.Source, we.Target, we.Channel}
		e.wEdges[key] = append(e.wEdges[key], we)
	}
}

// dfs extends the partial assignment at order position pos, carrying its
// verified cost.
func (e *bbEngine) dfs(pos int, verified float64) {
	if e.budgetSpent() {
		return
	}
	if pos == e.n {
		e.record(verified)
		return
	}

	t := e.order[pos]
	for _, j := range e.candLists[t] {
		if e.used[j] {
			continue
		}
		added := e.assignCost(t, j)
		bound := verified + added + e.suffixFixed[pos+1]
		if bound > e.admission() {
			continue
		}

		e.mapping[t], e.used[j] = j, true
		e.expansions++
		e.dfs(pos+1, verified+added)
		e.mapping[t], e.used[j] = -1, false

		if e.budgetSpent() {
			return
		}
	}
}

// admission is the current pruning bar: the threshold, tightened to the
// worst held cost once k solutions are in hand.
func (e *bbEngine) admission() float64 {
	if e.k > 0 && len(e.results) == e.k {
		worst := e.results[e.k-1].Cost
		if worst < e.threshold {
			return worst
		}
	}

	return e.threshold
}

// assignCost is the exact cost settled by mapping template node t to world
// node j: the pair's fixed cost plus the disagreement of every template
// edge between t and an already-assigned node.
func (e *bbEngine) assignCost(t, j int) float64 {
	cost := e.p.FixedCosts().At(t, j)
	if e.p.EdgeCostFn() == nil {
		cost += e.countCost(t, j)
	} else {
		cost += e.attrCost(t, j)
	}

	return cost
}

// countCost: per settled directed demand, the shortfall of world parallel
// edges against the template multiplicity.
func (e *bbEngine) countCost(t, j int) float64 {
	world := e.p.World()
	cost := 0.0
	for _, d := range e.countTv[t] {
		var wj int
		if d.other == t {
			wj = j // self demand, loopless graphs never produce one
		} else if wj = e.mapping[d.other]; wj < 0 {
			continue
		}
		src, dst := j, wj
		if !d.srcFirst {
			src, dst = wj, j
		}
		wv, err := world.Adj(d.c).At(src, dst)
		if err != nil {
			continue // settled demands always index in range
		}
		if d.tv > wv {
			cost += d.tv - wv
		}
	}

	return cost
}

// attrCost: per settled template edge, the cheapest matching world edge's
// attribute cost, or one full missing edge when no world edge exists.
func (e *bbEngine) attrCost(t, j int) float64 {
	world := e.p.World()
	fn := e.p.EdgeCostFn()
	cost := 0.0
	for _, re := range e.tEdges {
		if re.src != t && re.dst != t {
			continue
		}
		other := re.src
		if other == t {
			other = re.dst
		}
		if other != t && e.mapping[other] < 0 {
			continue
		}
		ws, wt := e.mapped(re.src, t, j), e.mapped(re.dst, t, j)
		key := edgeKey{world.Node(ws), world.Node(wt), re.e.Channel}
		matches := e.wEdges[key]
		if len(matches) == 0 {
			cost++
			continue
		}
		best := math.Inf(1)
		for _, we := range matches {
			if c := fn(re.e, we); c < best {
				best = c
			}
		}
		cost += best
	}

	return cost
}

// mapped resolves a template endpoint to its world index, treating t as
// already mapped to j.
func (e *bbEngine) mapped(endpoint, t, j int) int {
	if endpoint == t {
		return j
	}

	return e.mapping[endpoint]
}

// record admits a completed assignment into the bounded result set, kept
// sorted by (cost, lexicographic mapping).
func (e *bbEngine) record(cost float64) {
	if cost > e.threshold {
		return
	}
	sol := Solution{Mapping: append([]int(nil), e.mapping...), Cost: cost}

	at := sort.Search(len(e.results), func(i int) bool {
		return !solutionLess(e.results[i], sol)
	})
	e.results = append(e.results, Solution{})
	copy(e.results[at+1:], e.results[at:])
	e.results[at] = sol

	if e.k > 0 && len(e.results) > e.k {
		e.results = e.results[:e.k]
	}
	if at == 0 {
		e.out.logger.Info("new best assignment", "cost", cost)
	}
}

// budgetSpent reports whether the expansion budget is exhausted.
func (e *bbEngine) budgetSpent() bool {
	return e.maxExpansions > 0 && e.expansions >= e.maxExpansions
}

// solutionLess orders solutions by ascending cost, then lexicographic
// mapping. Total and deterministic: two distinct complete injective
// assignments always differ somewhere in the mapping.
func solutionLess(a, b Solution) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	for i := range a.Mapping {
		if a.Mapping[i] != b.Mapping[i] {
			return a.Mapping[i] < b.Mapping[i]
		}
	}

	return false
}
