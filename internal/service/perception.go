package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"github.com/Harshitk-cp/gridmind/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PerceptionInput is one sensor reading taken at a known pose.
type PerceptionInput struct {
	Position domain.Position
	Facing   domain.Direction
	Reading  string
}

// RawPerception is a PerceptionInput whose facing is still the name the
// caller sent.
type RawPerception struct {
	Position domain.Position
	Facing   string
	Reading  string
}

type PerceptionOutcome struct {
	Cycle int64 `json:"cycle"`
	perception.CycleResult
}

// PerceptionStats counts cycles since start.
type PerceptionStats struct {
	Applied int64 `json:"cycles_applied"`
	Failed  int64 `json:"cycles_failed"`
}

// PerceptionService applies sensor readings to agents' belief grids.
type PerceptionService struct {
	agents  domain.AgentStore
	grids   domain.GridStore
	updater *perception.Updater
	logger  *zap.Logger

	applied atomic.Int64
	failed  atomic.Int64
}

func NewPerceptionService(agents domain.AgentStore, grids domain.GridStore, updater *perception.Updater, logger *zap.Logger) *PerceptionService {
	return &PerceptionService{
		agents:  agents,
		grids:   grids,
		updater: updater,
		logger:  logger,
	}
}

// IsPerceptionError reports whether err is a failure of the reading itself
// rather than of the service.
func IsPerceptionError(err error) bool {
	return errors.Is(err, domain.ErrMalformedSensorFrame) ||
		errors.Is(err, domain.ErrUnrecognizedTileCode) ||
		errors.Is(err, domain.ErrOutOfBoundsWrite) ||
		errors.Is(err, domain.ErrInvalidFacingDirection)
}

// Apply runs one perception cycle for the agent. The whole cycle, including
// the pose bookkeeping, happens under the agent's grid write lock. A failed
// cycle keeps whatever cells it wrote before failing and does not move the
// agent.
func (s *PerceptionService) Apply(ctx context.Context, agentID uuid.UUID, in PerceptionInput) (*PerceptionOutcome, error) {
	var outcome PerceptionOutcome

	err := s.grids.Update(ctx, agentID, func(g domain.BeliefGrid) error {
		a, err := s.agents.GetByID(ctx, agentID)
		if err != nil {
			return err
		}

		res, err := s.updater.Apply(g, in.Position, in.Facing, in.Reading)
		outcome.CycleResult = res
		if err != nil {
			return err
		}

		a.Position = in.Position
		a.Facing = in.Facing
		a.Cycles++
		outcome.Cycle = a.Cycles
		return s.agents.Update(ctx, a)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		s.cycleFailed(agentID, in.Position, in.Facing.String(), outcome.CellsWritten, err)
		return &outcome, err
	}

	s.applied.Add(1)
	s.logger.Debug("perception cycle applied",
		zap.String("agent_id", agentID.String()),
		zap.Int64("cycle", outcome.Cycle),
		zap.Stringer("position", in.Position),
		zap.Stringer("facing", in.Facing),
		zap.Int("cells_written", outcome.CellsWritten),
		zap.Int("empty", outcome.Empty))
	return &outcome, nil
}

// ApplyRaw parses the facing name and runs the cycle. An unparsable facing
// for a known agent counts as a failed cycle that wrote nothing.
func (s *PerceptionService) ApplyRaw(ctx context.Context, agentID uuid.UUID, in RawPerception) (*PerceptionOutcome, error) {
	facing, err := domain.ParseDirection(in.Facing)
	if err != nil {
		if _, gerr := s.agents.GetByID(ctx, agentID); gerr != nil {
			if errors.Is(gerr, store.ErrNotFound) {
				return nil, ErrAgentNotFound
			}
			return nil, gerr
		}
		s.cycleFailed(agentID, in.Position, in.Facing, 0, err)
		return &PerceptionOutcome{}, err
	}

	return s.Apply(ctx, agentID, PerceptionInput{
		Position: in.Position,
		Facing:   facing,
		Reading:  in.Reading,
	})
}

func (s *PerceptionService) cycleFailed(agentID uuid.UUID, pos domain.Position, facing string, written int, err error) {
	s.failed.Add(1)
	s.logger.Warn("perception cycle failed",
		zap.String("agent_id", agentID.String()),
		zap.Stringer("position", pos),
		zap.String("facing", facing),
		zap.Int("cells_written", written),
		zap.Error(err))
}

func (s *PerceptionService) Stats() PerceptionStats {
	return PerceptionStats{
		Applied: s.applied.Load(),
		Failed:  s.failed.Load(),
	}
}
