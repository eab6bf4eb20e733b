package store

import (
	"context"
	"sync"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/memorymap"
	"github.com/google/uuid"
)

type gridEntry struct {
	mu   sync.RWMutex
	grid *memorymap.Grid
}

// GridStore holds one belief grid per agent, each behind its own lock.
type GridStore struct {
	mu    sync.RWMutex
	grids map[uuid.UUID]*gridEntry
}

func NewGridStore() *GridStore {
	return &GridStore{grids: make(map[uuid.UUID]*gridEntry)}
}

func (s *GridStore) Create(ctx context.Context, agentID uuid.UUID, width, height int) error {
	g, err := memorymap.New(width, height)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.grids[agentID]; exists {
		return ErrConflict
	}
	s.grids[agentID] = &gridEntry{grid: g}
	return nil
}

func (s *GridStore) entry(agentID uuid.UUID) (*gridEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.grids[agentID]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *GridStore) View(ctx context.Context, agentID uuid.UUID, fn func(domain.BeliefGrid) error) error {
	e, err := s.entry(agentID)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.grid)
}

func (s *GridStore) Update(ctx context.Context, agentID uuid.UUID, fn func(domain.BeliefGrid) error) error {
	e, err := s.entry(agentID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.grid)
}

func (s *GridStore) Delete(ctx context.Context, agentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[agentID]; !ok {
		return ErrNotFound
	}
	delete(s.grids, agentID)
	return nil
}
