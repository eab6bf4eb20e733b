package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/google/uuid"
)

// AgentStore keeps registered agents in process memory.
type AgentStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.Agent
	byExternal map[string]uuid.UUID
}

func NewAgentStore() *AgentStore {
	return &AgentStore{
		byID:       make(map[uuid.UUID]*domain.Agent),
		byExternal: make(map[string]uuid.UUID),
	}
}

func (s *AgentStore) Create(ctx context.Context, a *domain.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byExternal[a.ExternalID]; exists {
		return ErrConflict
	}

	now := time.Now().UTC()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now

	stored := *a
	s.byID[a.ID] = &stored
	s.byExternal[a.ExternalID] = a.ID
	return nil
}

func (s *AgentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	return &out, nil
}

func (s *AgentStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Agent, error) {
	s.mu.RLock()
	id, ok := s.byExternal[externalID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Update replaces the mutable fields of an existing agent.
func (s *AgentStore) Update(ctx context.Context, a *domain.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[a.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = a.Name
	existing.Position = a.Position
	existing.Facing = a.Facing
	existing.Cycles = a.Cycles
	existing.UpdatedAt = time.Now().UTC()
	a.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete removes the agent and frees its external id.
func (s *AgentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byExternal, a.ExternalID)
	delete(s.byID, id)
	return nil
}

// List returns all agents ordered by external id.
func (s *AgentStore) List(ctx context.Context) ([]domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Agent, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, *a)
	}
	slices.SortFunc(out, func(a, b domain.Agent) int {
		return strings.Compare(a.ExternalID, b.ExternalID)
	})
	return out, nil
}
