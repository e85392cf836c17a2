// Package bounds: the edgewise (structural) local cost bound.
package bounds

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/sparse"
)

// ErrAttrMultiEdge is returned by the attribute-aware edgewise bound when a
// template carries more than one edge between the same pair of nodes in one
// channel; per-edge attribute costs are only defined for multiplicity one.
var ErrAttrMultiEdge = errors.New("bounds: attribute costs require edge multiplicity 1")

// Edgewise raises the local cost array by the minimum missing-edge cost of
// every (template node, candidate) pair, derived from neighbor candidate
// sets.
//
// For each adjacent template pair (u, v), each channel and each orientation,
// the world adjacency restricted to u's and v's candidates is clamped by
// the template multiplicity and accumulated into a supported-edge count.
// The best support for a candidate u' is the maximum over v's candidates
// (row maxima); template total minus best support is the cost added to
// (u, u'). Column maxima give v's side.
//
// changed marks template nodes whose candidate row changed since the last
// call. Recomputation covers the closed neighborhood of the changed set:
// every neighbor of a changed node has all of its pairs re-evaluated, so
// each row that can move holds a complete sum over its pairs rather than a
// partial one the monotone install would cap at a stale total. Pairs with
// no endpoint in that expanded set are skipped; their rows keep the
// previous bound, which is still exact because none of their masks moved.
// A nil changed vector recomputes everything.
//
// Fails fast with matching.ErrNoCandidates when a template node of a
// required pair has an empty candidate row: the problem is already
// infeasible and the bound must not silently proceed.
//
// Complexity: O(pairs · channels · nnz) for the count path; the
// attribute-aware path additionally scans the world edge list per pair.
func Edgewise(p *matching.Problem, changed []bool) error {
	if p == nil {
		return fmt.Errorf("bounds.Edgewise: %w", matching.ErrNilGraph)
	}
	tmplt, world := p.Tmplt(), p.World()
	n, m := p.Shape()
	if changed != nil && len(changed) != n {
		return fmt.Errorf("bounds.Edgewise: changed vector length %d for %d template nodes: %w",
			len(changed), n, matching.ErrCostShape)
	}

	cands := p.Candidates()
	newLocal := mat.NewDense(n, m, nil)

	// Transposed adjacencies, shared by every pair below.
	nch := tmplt.NChannels()
	tAdj := make([]*sparse.CSR, nch)
	wAdj := make([]*sparse.CSR, nch)
	tAdjT := make([]*sparse.CSR, nch)
	wAdjT := make([]*sparse.CSR, nch)
	for c := 0; c < nch; c++ {
		tAdj[c], wAdj[c] = tmplt.Adj(c), world.Adj(c)
		tAdjT[c], wAdjT[c] = tAdj[c].Transpose(), wAdj[c].Transpose()
	}

	pairs := tmplt.NeighborPairs()

	// Expand changed to its closed template neighborhood: a node whose
	// partner changed gets every one of its pairs recomputed below, keeping
	// its newLocal row a full sum.
	active := changed
	if changed != nil {
		active = make([]bool, n)
		copy(active, changed)
		for _, pair := range pairs {
			if changed[pair[0]] || changed[pair[1]] {
				active[pair[0]], active[pair[1]] = true, true
			}
		}
	}

	for _, pair := range pairs {
		src, dst := pair[0], pair[1]
		if active != nil && !active[src] && !active[dst] {
			continue
		}

		srcMask, dstMask := cands[src], cands[dst]
		srcCands, dstCands := trueIndices(srcMask), trueIndices(dstMask)
		if len(srcCands) == 0 {
			return fmt.Errorf("bounds.Edgewise: template node %q: %w", tmplt.Node(src), matching.ErrNoCandidates)
		}
		if len(dstCands) == 0 {
			return fmt.Errorf("bounds.Edgewise: template node %q: %w", tmplt.Node(dst), matching.ErrNoCandidates)
		}

		var err error
		if p.EdgeCostFn() == nil {
			err = countPair(newLocal, src, dst, srcMask, dstMask, srcCands, dstCands, tAdj, wAdj, tAdjT, wAdjT)
		} else {
			err = attrPair(p, newLocal, src, dst, srcCands, dstCands, tAdj, tAdjT)
		}
		if err != nil {
			return fmt.Errorf("bounds.Edgewise: pair (%q, %q): %w", tmplt.Node(src), tmplt.Node(dst), err)
		}
	}

	// Monotone install: recomputed entries only tighten, rows untouched by
	// any recomputed pair keep their previous bound automatically.
	if err := p.LocalCosts().RaiseAll(newLocal); err != nil {
		return fmt.Errorf("bounds.Edgewise: %w", err)
	}

	return nil
}

// countPair accumulates the pure edge-count bound of one template pair.
func countPair(
	newLocal *mat.Dense,
	src, dst int,
	srcMask, dstMask []bool,
	srcCands, dstCands []int,
	tAdj, wAdj, tAdjT, wAdjT []*sparse.CSR,
) error {
	var supported *sparse.CSR
	totalTmplt := 0.0

	for c := range tAdj {
		for _, view := range [2]struct{ t, w *sparse.CSR }{
			{tAdj[c], wAdj[c]},
			{tAdjT[c], wAdjT[c]},
		} {
			tv, err := view.t.At(src, dst)
			if err != nil {
				return err
			}
			totalTmplt += tv
			if tv == 0 {
				continue
			}

			sub, err := view.w.SubMatrix(srcMask, dstMask)
			if err != nil {
				return err
			}
			clamped, err := sub.MinScalar(tv)
			if err != nil {
				return err
			}
			if supported == nil {
				supported = clamped
			} else if supported, err = supported.Add(clamped); err != nil {
				return err
			}
		}
	}
	if supported == nil {
		// NeighborPairs only yields adjacent pairs, so some orientation
		// always carries template edges.
		return nil
	}

	rowMax := supported.RowMax()
	for k, j := range srcCands {
		newLocal.Set(src, j, newLocal.At(src, j)+totalTmplt-rowMax[k])
	}
	if src != dst {
		colMax := supported.ColMax()
		for k, j := range dstCands {
			newLocal.Set(dst, j, newLocal.At(dst, j)+totalTmplt-colMax[k])
		}
	}

	return nil
}

// attrPair accumulates the attribute-aware bound of one template pair:
// per channel and orientation, the cheapest world edge between each
// candidate pair (a missing world edge costs one full missing edge), then
// per endpoint the minimum over admissible partner assignments.
func attrPair(
	p *matching.Problem,
	newLocal *mat.Dense,
	src, dst int,
	srcCands, dstCands []int,
	tAdj, tAdjT []*sparse.CSR,
) error {
	tmplt, world := p.Tmplt(), p.World()
	fn := p.EdgeCostFn()
	inf := math.Inf(1)

	// Candidate world index → compacted position, -1 elsewhere.
	_, m := p.Shape()
	srcPos, dstPos := make([]int, m), make([]int, m)
	for j := range srcPos {
		srcPos[j], dstPos[j] = -1, -1
	}
	for k, j := range srcCands {
		srcPos[j] = k
	}
	for k, j := range dstCands {
		dstPos[j] = k
	}

	// assignment[s][d]: accumulated cost of mapping (src→srcCands[s],
	// dst→dstCands[d]) over all template edges of this pair.
	assignment := make([][]float64, len(srcCands))
	for s := range assignment {
		assignment[s] = make([]float64, len(dstCands))
	}
	touched := false

	for c := range tAdj {
		for _, transposed := range [2]bool{false, true} {
			view := tAdj[c]
			if transposed {
				view = tAdjT[c]
			}
			tv, err := view.At(src, dst)
			if err != nil {
				return err
			}
			if tv == 0 {
				continue
			}
			if tv != 1 {
				return ErrAttrMultiEdge
			}
			touched = true

			// The template edge behind this orientation.
			from, to := tmplt.Node(src), tmplt.Node(dst)
			if transposed {
				from, to = to, from
			}
			tEdge, ok := findEdge(tmplt.Edges(), from, to, tmplt.Channels()[c])
			if !ok {
				// Adjacency says the edge exists; a missing edge list row
				// means the graph was built from matrices alone. Degrade to
				// a bare structural edge.
				tEdge = graph.Edge{Source: from, Target: to, Channel: tmplt.Channels()[c]}
			}

			// Cheapest matching world edge per candidate pair.
			best := make([][]float64, len(srcCands))
			for s := range best {
				best[s] = make([]float64, len(dstCands))
				for d := range best[s] {
					best[s][d] = inf
				}
			}
			for _, we := range world.Edges() {
				if we.Channel != tEdge.Channel {
					continue
				}
				ws, _ := world.NodeIndex(we.Source)
				wt, _ := world.NodeIndex(we.Target)
				s, d := srcPos[ws], dstPos[wt]
				if transposed {
					s, d = srcPos[wt], dstPos[ws]
				}
				if s < 0 || d < 0 {
					continue
				}
				if cost := fn(tEdge, we); cost < best[s][d] {
					best[s][d] = cost
				}
			}

			for s := range assignment {
				for d := range assignment[s] {
					if math.IsInf(best[s][d], 1) {
						assignment[s][d]++ // no world edge at all: one missing edge
					} else {
						assignment[s][d] += best[s][d]
					}
				}
			}
		}
	}
	if !touched {
		return nil
	}

	for s, j := range srcCands {
		least := inf
		for d := range dstCands {
			if assignment[s][d] < least {
				least = assignment[s][d]
			}
		}
		newLocal.Set(src, j, newLocal.At(src, j)+least)
	}
	if src != dst {
		for d, j := range dstCands {
			least := inf
			for s := range srcCands {
				if assignment[s][d] < least {
					least = assignment[s][d]
				}
			}
			newLocal.Set(dst, j, newLocal.At(dst, j)+least)
		}
	}

	return nil
}

// trueIndices returns the positions of the true entries of a mask.
func trueIndices(mask []bool) []int {
	var idxs []int
	for i, ok := range mask {
		if ok {
			idxs = append(idxs, i)
		}
	}

	return idxs
}

// findEdge locates the first edge with the given endpoints and channel.
func findEdge(edges []graph.Edge, source, target, channel string) (graph.Edge, bool) {
	for _, e := range edges {
		if e.Source == source && e.Target == target && e.Channel == channel {
			return e, true
		}
	}

	return graph.Edge{}, false
}
