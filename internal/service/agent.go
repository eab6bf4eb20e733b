package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/memorymap"
	"github.com/Harshitk-cp/gridmind/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GridLimits sizes new agents' belief grids.
type GridLimits struct {
	DefaultWidth  int
	DefaultHeight int
	// MaxCells caps width*height; zero means memorymap.MaxCells.
	MaxCells int
}

type AgentService struct {
	store  domain.AgentStore
	grids  domain.GridStore
	limits GridLimits
	logger *zap.Logger
}

func NewAgentService(s domain.AgentStore, grids domain.GridStore, limits GridLimits, logger *zap.Logger) *AgentService {
	if limits.MaxCells <= 0 || limits.MaxCells > memorymap.MaxCells {
		limits.MaxCells = memorymap.MaxCells
	}
	return &AgentService{
		store:  s,
		grids:  grids,
		limits: limits,
		logger: logger,
	}
}

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentConflict = errors.New("agent with this external_id already exists")
)

// Create registers the agent and allocates its belief grid. Zero dimensions
// fall back to the configured defaults. If the grid cannot be allocated the
// agent is removed again, so a registered agent always has a grid.
func (s *AgentService) Create(ctx context.Context, a *domain.Agent) error {
	if a.Width == 0 {
		a.Width = s.limits.DefaultWidth
	}
	if a.Height == 0 {
		a.Height = s.limits.DefaultHeight
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, a.Width, a.Height)
	}
	if a.Width > s.limits.MaxCells/a.Height {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", domain.ErrInvalidDimensions, a.Width, a.Height, s.limits.MaxCells)
	}

	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrAgentConflict
		}
		return err
	}

	if err := s.grids.Create(ctx, a.ID, a.Width, a.Height); err != nil {
		if derr := s.store.Delete(ctx, a.ID); derr != nil {
			s.logger.Error("failed to remove agent without grid",
				zap.String("agent_id", a.ID.String()),
				zap.Error(derr))
		}
		return fmt.Errorf("allocate belief grid: %w", err)
	}

	s.logger.Info("agent registered",
		zap.String("agent_id", a.ID.String()),
		zap.String("external_id", a.ExternalID),
		zap.Int("width", a.Width),
		zap.Int("height", a.Height))
	return nil
}

func (s *AgentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AgentService) List(ctx context.Context) ([]domain.Agent, error) {
	return s.store.List(ctx)
}
