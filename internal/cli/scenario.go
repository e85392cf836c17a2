package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/noctilum/submatch/graph"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/synth"
)

// scenarioFile is the TOML schema of a matching scenario. A file carries
// either explicit [template]/[world] graphs or a [generate] block, never
// both.
type scenarioFile struct {
	Template *graphSection    `toml:"template"`
	World    *graphSection    `toml:"world"`
	Generate *generateSection `toml:"generate"`
	Matching matchingSection  `toml:"matching"`
}

type graphSection struct {
	Nodes []string      `toml:"nodes"`
	Edges []edgeSection `toml:"edges"`
}

type edgeSection struct {
	Source  string `toml:"source"`
	Target  string `toml:"target"`
	Channel string `toml:"channel"`
}

type generateSection struct {
	WorldNodes    int     `toml:"world_nodes"`
	TmpltNodes    int     `toml:"tmplt_nodes"`
	Channels      int     `toml:"channels"`
	EdgeProb      float64 `toml:"edge_prob"`
	NoiseRemovals int     `toml:"noise_removals"`
	Seed          int64   `toml:"seed"`
}

type matchingSection struct {
	LocalCostThreshold  float64 `toml:"local_cost_threshold"`
	GlobalCostThreshold float64 `toml:"global_cost_threshold"`
}

// loadScenario parses a scenario file and materializes its graphs.
func loadScenario(path string) (tmplt, world *graph.Graph, m matchingSection, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, m, fmt.Errorf("cli: read scenario: %w", err)
	}

	var sf scenarioFile
	if err = toml.Unmarshal(data, &sf); err != nil {
		return nil, nil, m, fmt.Errorf("cli: parse scenario %s: %w", path, err)
	}
	m = sf.Matching

	switch {
	case sf.Generate != nil && (sf.Template != nil || sf.World != nil):
		return nil, nil, m, fmt.Errorf("cli: scenario %s mixes [generate] with explicit graphs", path)
	case sf.Generate != nil:
		s, gerr := synth.Planted(synth.Config{
			WorldNodes:    sf.Generate.WorldNodes,
			TmpltNodes:    sf.Generate.TmpltNodes,
			Channels:      sf.Generate.Channels,
			EdgeProb:      sf.Generate.EdgeProb,
			NoiseRemovals: sf.Generate.NoiseRemovals,
			Seed:          sf.Generate.Seed,
		})
		if gerr != nil {
			return nil, nil, m, fmt.Errorf("cli: %w", gerr)
		}
		return s.Tmplt, s.World, m, nil
	case sf.Template == nil || sf.World == nil:
		return nil, nil, m, fmt.Errorf("cli: scenario %s needs [template] and [world] (or [generate])", path)
	}

	if tmplt, err = buildGraph(sf.Template); err != nil {
		return nil, nil, m, fmt.Errorf("cli: template: %w", err)
	}
	if world, err = buildGraph(sf.World); err != nil {
		return nil, nil, m, fmt.Errorf("cli: world: %w", err)
	}

	return tmplt, world, m, nil
}

func buildGraph(s *graphSection) (*graph.Graph, error) {
	edges := make([]graph.Edge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = graph.Edge{Source: e.Source, Target: e.Target, Channel: e.Channel}
	}
	nodes := s.Nodes
	if len(nodes) == 0 {
		nodes = nil // derive from edge endpoints
	}

	return graph.FromEdges(nodes, edges)
}

// problemOptions translates the [matching] section into constructor options.
func (m matchingSection) problemOptions() []matching.Option {
	var opts []matching.Option
	if m.LocalCostThreshold != 0 {
		opts = append(opts, matching.WithLocalCostThreshold(m.LocalCostThreshold))
	}
	if m.GlobalCostThreshold != 0 {
		opts = append(opts, matching.WithGlobalCostThreshold(m.GlobalCostThreshold))
	}

	return opts
}

// encodeScenario renders a generated scenario back into the TOML schema so
// a sampled instance can be inspected, edited and re-solved.
func encodeScenario(s *synth.Scenario, m matchingSection) ([]byte, error) {
	// A dedicated output shape: the encoder must never see the nil
	// [generate] pointer of the full schema.
	out := struct {
		Template *graphSection   `toml:"template"`
		World    *graphSection   `toml:"world"`
		Matching matchingSection `toml:"matching"`
	}{
		Template: toSection(s.Tmplt),
		World:    toSection(s.World),
		Matching: m,
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("cli: encode scenario: %w", err)
	}

	return buf.Bytes(), nil
}

func toSection(g *graph.Graph) *graphSection {
	s := &graphSection{Nodes: g.Nodes()}
	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, edgeSection{Source: e.Source, Target: e.Target, Channel: e.Channel})
	}

	return s
}
