package service

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTileOutOfRange = errors.New("tile outside the agent's grid")

// MemorySummary counts cells per belief state.
type MemorySummary struct {
	Width  int                        `json:"width"`
	Height int                        `json:"height"`
	Counts map[domain.BeliefState]int `json:"counts"`
}

// MemoryService answers queries against agents' belief grids.
type MemoryService struct {
	grids  domain.GridStore
	logger *zap.Logger
}

func NewMemoryService(grids domain.GridStore, logger *zap.Logger) *MemoryService {
	return &MemoryService{grids: grids, logger: logger}
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAgentNotFound
	}
	if errors.Is(err, domain.ErrOutOfBoundsWrite) {
		return ErrTileOutOfRange
	}
	return err
}

// Tiles returns every tile, or only those in state when it is non-nil.
func (s *MemoryService) Tiles(ctx context.Context, agentID uuid.UUID, state *domain.BeliefState) ([]domain.Tile, error) {
	var tiles []domain.Tile
	err := s.grids.View(ctx, agentID, func(g domain.BeliefGrid) error {
		seq := g.AllTiles()
		if state != nil {
			seq = g.TilesWithState(*state)
			tiles = make([]domain.Tile, 0, g.Count(*state))
		} else {
			tiles = make([]domain.Tile, 0, g.Width()*g.Height())
		}
		for t := range seq {
			tiles = append(tiles, t)
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return tiles, nil
}

func (s *MemoryService) Tile(ctx context.Context, agentID uuid.UUID, x, y int) (domain.Tile, error) {
	var tile domain.Tile
	err := s.grids.View(ctx, agentID, func(g domain.BeliefGrid) error {
		var err error
		tile, err = g.Tile(x, y)
		return err
	})
	if err != nil {
		return domain.Tile{}, mapStoreErr(err)
	}
	return tile, nil
}

func (s *MemoryService) Summary(ctx context.Context, agentID uuid.UUID) (*MemorySummary, error) {
	sum := &MemorySummary{Counts: make(map[domain.BeliefState]int)}
	err := s.grids.View(ctx, agentID, func(g domain.BeliefGrid) error {
		sum.Width, sum.Height = g.Width(), g.Height()
		for _, st := range domain.BeliefStates() {
			if n := g.Count(st); n > 0 {
				sum.Counts[st] = n
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return sum, nil
}

// Render returns the plain-text map of the agent's beliefs.
func (s *MemoryService) Render(ctx context.Context, agentID uuid.UUID) (string, error) {
	var out string
	err := s.grids.View(ctx, agentID, func(g domain.BeliefGrid) error {
		out = g.String()
		return nil
	})
	if err != nil {
		return "", mapStoreErr(err)
	}
	return out, nil
}

// Clear resets every cell of the agent's grid to Unknown.
func (s *MemoryService) Clear(ctx context.Context, agentID uuid.UUID) error {
	err := s.grids.Update(ctx, agentID, func(g domain.BeliefGrid) error {
		g.ClearMemory()
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}
	s.logger.Info("belief memory cleared", zap.String("agent_id", agentID.String()))
	return nil
}
