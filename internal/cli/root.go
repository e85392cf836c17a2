package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the submatch CLI: it builds the root command with all
// subcommands, wires the --verbose flag into the context logger and
// executes the command tree.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "submatch",
		Short:        "submatch finds approximate copies of a template graph inside a world graph",
		Long:         `submatch solves noisy subgraph matching problems: it filters the candidate space with monotone cost bounds, then enumerates the cheapest complete assignments of the template into the world.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newGenerateCmd())

	return root.ExecuteContext(ctx)
}
