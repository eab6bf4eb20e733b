package main

import (
	"fmt"
	"strings"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"github.com/Harshitk-cp/gridmind/internal/render"
	"github.com/Harshitk-cp/gridmind/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) replayCmd() *cobra.Command {
	var keepGoing, plain bool

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario and print the resulting belief map",
		Long: `Applies every cycle of the scenario, in order, to a new grid of the
scenario's size and prints one line per cycle followed by the final map.

By default the first failing cycle stops the replay. Cells that cycle wrote
before failing stay in the printed map.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := render.New(out, plain)
			replayer := scenario.NewReplayer(perception.NewUpdater(perception.DefaultGeometry), keepGoing, c.logger)

			title := sc.Name
			if title == "" {
				title = args[0]
			}
			fmt.Fprint(out, r.Heading("%s: %dx%d, %d cycles", title, sc.Width, sc.Height, len(sc.Cycles)))

			var last *domain.Position
			report, runErr := replayer.Run(cmd.Context(), sc, func(s scenario.Step) {
				fmt.Fprintln(out, describeStep(s))
				if s.Err == nil {
					pos := s.Position
					last = &pos
				}
			})
			if report != nil {
				fmt.Fprint(out, r.Grid(report.Grid, last))
				fmt.Fprint(out, r.Legend())
				fmt.Fprintf(out, "applied %d, failed %d\n", report.Applied, report.Failed)
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue past failing cycles")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the map without colors or border")
	return cmd
}

func describeStep(s scenario.Step) string {
	if s.Err != nil {
		return fmt.Sprintf("cycle %d at %s: failed after %d writes: %v", s.Index, s.Position, s.Result.CellsWritten, s.Err)
	}
	return fmt.Sprintf("cycle %d at %s facing %s: %d written, %d empty",
		s.Index, s.Position, s.Facing, s.Result.CellsWritten, s.Result.Empty)
}

func (c *cli) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <reading>",
		Short: "Decode a raw reading into its local field",
		Long: `Prints the field one local row per line, highest row first (wire
order), with '.' for cells where nothing was observed. Tile codes are resolved
so unrecognized codes are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := perception.DefaultGeometry
			frame, err := perception.NewDecoder(g).Decode(args[0])
			if err != nil {
				return err
			}

			rows := make([][]byte, g.Rows)
			for i := range rows {
				rows[i] = []byte(strings.Repeat(string(domain.NothingGlyph), g.Cols))
			}
			for o := range frame.Observations() {
				if o.Empty {
					continue
				}
				if _, err := domain.ParseTileCode(o.Code); err != nil {
					return fmt.Errorf("local %s: %w", o.Cell, err)
				}
				rows[o.Cell.Row][o.Cell.Col] = o.Code
			}

			out := cmd.OutOrStdout()
			for r := g.Rows - 1; r >= 0; r-- {
				marker := ""
				if r == g.Origin.Row {
					marker = "  <- agent row"
				}
				fmt.Fprintf(out, "%d %s%s\n", r, rows[r], marker)
			}
			return nil
		},
	}
}

func (c *cli) transformCmd() *cobra.Command {
	var x, y, row, col int
	var facing string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Map a local field cell to absolute grid coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := domain.ParseDirection(facing)
			if err != nil {
				return err
			}
			cell := domain.LocalCell{Row: row, Col: col}
			pos, err := perception.NewTransform(perception.DefaultGeometry).ToAbsolute(domain.Position{X: x, Y: y}, dir, cell)
			if err != nil {
				return err
			}
			c.logger.Debug("transformed", zap.Stringer("cell", cell), zap.Stringer("position", pos))
			fmt.Fprintln(cmd.OutOrStdout(), pos)
			return nil
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "Agent x")
	cmd.Flags().IntVar(&y, "y", 0, "Agent y")
	cmd.Flags().StringVar(&facing, "facing", "", "Agent facing: north, east, south or west")
	cmd.Flags().IntVar(&row, "row", perception.OriginRow, "Local field row")
	cmd.Flags().IntVar(&col, "col", perception.OriginCol, "Local field column")
	_ = cmd.MarkFlagRequired("facing")
	return cmd
}

func (c *cli) encodeCmd() *cobra.Command {
	g := perception.DefaultGeometry
	return &cobra.Command{
		Use:   "encode <row>...",
		Short: "Build a raw reading from a local field",
		Long: fmt.Sprintf(`Takes %d rows of %d tile codes, highest local row first, with '.' for
cells where nothing was observed, and prints the reading in wire format.`, g.Rows, g.Cols),
		Args: cobra.ExactArgs(g.Rows),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := perception.NewDecoder(g).Encode(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
}
