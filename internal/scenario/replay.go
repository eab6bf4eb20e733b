package scenario

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/memorymap"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"go.uber.org/zap"
)

// Step is the outcome of one replayed cycle.
type Step struct {
	Index    int
	Position domain.Position
	Facing   domain.Direction
	Result   perception.CycleResult
	Err      error
}

// Report is what a replay leaves behind.
type Report struct {
	Grid    *memorymap.Grid
	Applied int
	Failed  int
}

// Replayer runs scenarios through a perception.Updater.
type Replayer struct {
	updater   *perception.Updater
	keepGoing bool
	logger    *zap.Logger
}

// NewReplayer returns a Replayer. With keepGoing a failed cycle is recorded
// and the replay continues; otherwise the first failure ends it.
func NewReplayer(u *perception.Updater, keepGoing bool, logger *zap.Logger) *Replayer {
	return &Replayer{updater: u, keepGoing: keepGoing, logger: logger}
}

// Run replays sc on a new grid, calling observe after every cycle. Writes
// made by a failing cycle before its failure stay in the grid.
func (r *Replayer) Run(ctx context.Context, sc *Scenario, observe func(Step)) (*Report, error) {
	grid, err := memorymap.New(sc.Width, sc.Height)
	if err != nil {
		return nil, err
	}
	report := &Report{Grid: grid}

	for i, c := range sc.Cycles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		step := Step{Index: i, Position: c.Position()}
		step.Err = r.apply(grid, c, &step)

		if step.Err != nil {
			report.Failed++
			r.logger.Warn("cycle failed",
				zap.Int("cycle", i),
				zap.Stringer("position", step.Position),
				zap.String("facing", c.Facing),
				zap.Int("cells_written", step.Result.CellsWritten),
				zap.Error(step.Err),
			)
		} else {
			report.Applied++
			r.logger.Debug("cycle applied",
				zap.Int("cycle", i),
				zap.Stringer("position", step.Position),
				zap.Stringer("facing", step.Facing),
			)
		}

		if observe != nil {
			observe(step)
		}
		if step.Err != nil && !r.keepGoing {
			return report, fmt.Errorf("cycle %d: %w", i, step.Err)
		}
	}
	return report, nil
}

func (r *Replayer) apply(grid *memorymap.Grid, c Cycle, step *Step) error {
	facing, err := domain.ParseDirection(c.Facing)
	if err != nil {
		return err
	}
	step.Facing = facing

	raw, err := c.Raw(r.updater.Decoder())
	if err != nil {
		return err
	}

	step.Result, err = r.updater.Apply(grid, step.Position, facing, raw)
	return err
}
