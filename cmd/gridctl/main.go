// Command gridctl inspects sensor readings and replays recorded perception
// runs offline, without a server.
package main

import (
	"fmt"
	"os"

	"github.com/Harshitk-cp/gridmind/internal/buildconfig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "gridctl",
		Short: "Offline tools for the gridmind perception pipeline",
		Long: `gridctl decodes raw sensor readings, maps local field cells to grid
coordinates, and replays YAML scenarios against a fresh belief grid.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !c.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	root.AddCommand(
		c.replayCmd(),
		c.decodeCmd(),
		c.encodeCmd(),
		c.transformCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), buildconfig.String())
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
