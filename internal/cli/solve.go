package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noctilum/submatch/bounds"
	"github.com/noctilum/submatch/matching"
	"github.com/noctilum/submatch/search"
)

type solveOpts struct {
	scenario string
	k        int
	summary  bool
}

// newSolveCmd creates the solve command: load a scenario, run the filters
// to their fixed point and enumerate the best assignments.
func newSolveCmd() *cobra.Command {
	opts := solveOpts{k: 1}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Filter candidates and enumerate the best template assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "scenario TOML file (required)")
	cmd.Flags().IntVarP(&opts.k, "best", "k", 1, "solutions to report; -1 for all within the cost threshold")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print the per-node candidate summary after filtering")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runSolve(cmd *cobra.Command, opts solveOpts) error {
	logger := loggerFromContext(cmd.Context())

	tmplt, world, msec, err := loadScenario(opts.scenario)
	if err != nil {
		return err
	}
	logger.Info("scenario loaded",
		"template_nodes", tmplt.NNodes(), "world_nodes", world.NNodes(),
		"channels", tmplt.NChannels())

	p, err := matching.NewProblem(tmplt, world, msec.problemOptions()...)
	if err != nil {
		return err
	}

	rounds, err := bounds.RunFilters(p, bounds.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("filtering converged",
		"rounds", rounds, "candidates", p.CountCandidates())

	if opts.summary {
		fmt.Fprintln(cmd.OutOrStdout(), p.String())
	}

	sols, err := search.BestK(p, opts.k, search.WithLogger(logger))
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no assignments within the cost threshold")
		return nil
	}

	out := cmd.OutOrStdout()
	for rank, sol := range sols {
		pairs := make([]string, len(sol.Mapping))
		for i, j := range sol.Mapping {
			// The problem's graphs: normalization preserves node order.
			pairs[i] = fmt.Sprintf("%s→%s", p.Tmplt().Node(i), p.World().Node(j))
		}
		fmt.Fprintf(out, "#%d cost=%g %s\n", rank+1, sol.Cost, strings.Join(pairs, " "))
	}

	return nil
}
