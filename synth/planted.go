// Package synth: the planted-template scenario generator.
package synth

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/sparse"
)

const (
	minNodes    = 1
	minChannels = 1
	probMin     = 0.0
	probMax     = 1.0

	nodePrefix    = "n"
	channelPrefix = "ch"
)

// Config controls the generated scenario. All fields are required except
// NoiseRemovals (zero yields an exact planted instance).
type Config struct {
	WorldNodes    int
	TmpltNodes    int
	Channels      int
	EdgeProb      float64
	NoiseRemovals int
	Seed          int64
}

// Scenario is a generated matching instance with its ground truth.
type Scenario struct {
	Tmplt *graph.Graph
	World *graph.Graph

	// GroundTruth maps each template node index to the world node index it
	// was planted at — the identity prefix by construction.
	GroundTruth []int
}

// Planted generates a world graph, plants a template at its first
// TmpltNodes nodes and applies noise. See the package comment for the
// sampling model.
//
// Validation is fail-fast and side-effect free: every parameter violation
// returns a sentinel before any sampling happens.
// Complexity: O(channels·n²) trials plus O(edges) for noise.
func Planted(cfg Config) (*Scenario, error) {
	if cfg.WorldNodes < minNodes {
		return nil, fmt.Errorf("synth.Planted: world nodes %d: %w", cfg.WorldNodes, ErrTooFewNodes)
	}
	if cfg.TmpltNodes < minNodes {
		return nil, fmt.Errorf("synth.Planted: template nodes %d: %w", cfg.TmpltNodes, ErrTooFewNodes)
	}
	if cfg.TmpltNodes > cfg.WorldNodes {
		return nil, fmt.Errorf("synth.Planted: %d template nodes in a %d-node world: %w",
			cfg.TmpltNodes, cfg.WorldNodes, ErrTemplateTooLarge)
	}
	if cfg.Channels < minChannels {
		return nil, fmt.Errorf("synth.Planted: channels %d: %w", cfg.Channels, ErrBadChannelCount)
	}
	if cfg.EdgeProb < probMin || cfg.EdgeProb > probMax {
		return nil, fmt.Errorf("synth.Planted: p=%v: %w", cfg.EdgeProb, ErrBadProbability)
	}
	if cfg.NoiseRemovals < 0 {
		return nil, fmt.Errorf("synth.Planted: removals %d: %w", cfg.NoiseRemovals, ErrBadNoise)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	worldNodes := nodeIDs(cfg.WorldNodes)
	tmpltNodes := worldNodes[:cfg.TmpltNodes]

	// Fixed trial order: channel asc, source asc, target asc.
	var worldEdges []graph.Edge
	for c := 0; c < cfg.Channels; c++ {
		label := channelPrefix + strconv.Itoa(c)
		for i := 0; i < cfg.WorldNodes; i++ {
			for j := 0; j < cfg.WorldNodes; j++ {
				if i == j {
					continue
				}
				if rng.Float64() < cfg.EdgeProb {
					worldEdges = append(worldEdges, graph.Edge{
						Source: worldNodes[i], Target: worldNodes[j], Channel: label,
					})
				}
			}
		}
	}

	// Capture the planted template before noise touches the world.
	inTmplt := make(map[string]bool, cfg.TmpltNodes)
	for _, id := range tmpltNodes {
		inTmplt[id] = true
	}
	var tmpltEdges []graph.Edge
	for _, e := range worldEdges {
		if inTmplt[e.Source] && inTmplt[e.Target] {
			tmpltEdges = append(tmpltEdges, e)
		}
	}

	worldEdges = removeEdges(rng, worldEdges, cfg.NoiseRemovals)

	// Build both graphs against the same explicit channel list: a channel
	// emptied by sparsity or noise must still line up on both sides.
	channels := make([]string, cfg.Channels)
	for c := range channels {
		channels[c] = channelPrefix + strconv.Itoa(c)
	}
	tmplt, err := assemble(tmpltNodes, channels, tmpltEdges)
	if err != nil {
		return nil, fmt.Errorf("synth.Planted: template: %w", err)
	}
	world, err := assemble(worldNodes, channels, worldEdges)
	if err != nil {
		return nil, fmt.Errorf("synth.Planted: world: %w", err)
	}

	truth := make([]int, cfg.TmpltNodes)
	for i := range truth {
		truth[i] = i
	}

	return &Scenario{Tmplt: tmplt, World: world, GroundTruth: truth}, nil
}

// assemble builds a graph from an edge list over a fixed node and channel
// order, materializing one adjacency matrix per channel.
func assemble(nodes, channels []string, edges []graph.Edge) (*graph.Graph, error) {
	nodeIdx := make(map[string]int, len(nodes))
	for i, id := range nodes {
		nodeIdx[id] = i
	}
	chIdx := make(map[string]int, len(channels))
	for c, label := range channels {
		chIdx[label] = c
	}

	entries := make([][]sparse.Entry, len(channels))
	for _, e := range edges {
		c := chIdx[e.Channel]
		entries[c] = append(entries[c], sparse.Entry{
			Row: nodeIdx[e.Source], Col: nodeIdx[e.Target], Val: 1,
		})
	}

	adjs := make([]*sparse.CSR, len(channels))
	for c := range adjs {
		a, err := sparse.NewCSR(len(nodes), len(nodes), entries[c])
		if err != nil {
			return nil, err
		}
		adjs[c] = a
	}

	return graph.New(nodes, channels, adjs, edges)
}

// removeEdges drops up to count edges at uniformly random positions,
// preserving the order of the survivors.
func removeEdges(rng *rand.Rand, edges []graph.Edge, count int) []graph.Edge {
	for ; count > 0 && len(edges) > 0; count-- {
		at := rng.Intn(len(edges))
		edges = append(edges[:at], edges[at+1:]...)
	}

	return edges
}

// nodeIDs returns the deterministic node identifiers n0..n{count-1}.
func nodeIDs(count int) []string {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = nodePrefix + strconv.Itoa(i)
	}

	return ids
}
