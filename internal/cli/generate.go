package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noctilum/submatch/synth"
)

type generateOpts struct {
	worldNodes int
	tmpltNodes int
	channels   int
	edgeProb   float64
	noise      int
	seed       int64
	threshold  float64
	output     string
}

// newGenerateCmd creates the generate command: sample a planted scenario
// and write it in the scenario TOML schema.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{
		worldNodes: 30,
		tmpltNodes: 5,
		channels:   2,
		edgeProb:   0.2,
		seed:       1,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample a planted matching scenario and write it as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.worldNodes, "world-nodes", opts.worldNodes, "world node count")
	cmd.Flags().IntVar(&opts.tmpltNodes, "tmplt-nodes", opts.tmpltNodes, "template node count")
	cmd.Flags().IntVar(&opts.channels, "channels", opts.channels, "channel count")
	cmd.Flags().Float64Var(&opts.edgeProb, "edge-prob", opts.edgeProb, "per-pair edge probability")
	cmd.Flags().IntVar(&opts.noise, "noise", 0, "world edges to remove after planting")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "sampling seed")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "global cost threshold written to the scenario")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	s, err := synth.Planted(synth.Config{
		WorldNodes:    opts.worldNodes,
		TmpltNodes:    opts.tmpltNodes,
		Channels:      opts.channels,
		EdgeProb:      opts.edgeProb,
		NoiseRemovals: opts.noise,
		Seed:          opts.seed,
	})
	if err != nil {
		return err
	}
	logger.Info("scenario sampled",
		"world_edges", len(s.World.Edges()), "template_edges", len(s.Tmplt.Edges()))

	data, err := encodeScenario(s, matchingSection{GlobalCostThreshold: opts.threshold})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("cli: write scenario: %w", err)
	}
	logger.Info("scenario written", "path", opts.output)

	return nil
}
