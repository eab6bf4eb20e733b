package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAgentStore mocks the AgentStore interface.
type MockAgentStore struct {
	mock.Mock
}

func (m *MockAgentStore) Create(ctx context.Context, a *domain.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Agent, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentStore) Update(ctx context.Context, a *domain.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentStore) List(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGridStore mocks the GridStore interface.
type MockGridStore struct {
	mock.Mock
}

func (m *MockGridStore) Create(ctx context.Context, agentID uuid.UUID, width, height int) error {
	args := m.Called(ctx, agentID, width, height)
	return args.Error(0)
}

func (m *MockGridStore) View(ctx context.Context, agentID uuid.UUID, fn func(domain.BeliefGrid) error) error {
	args := m.Called(ctx, agentID, fn)
	return args.Error(0)
}

func (m *MockGridStore) Update(ctx context.Context, agentID uuid.UUID, fn func(domain.BeliefGrid) error) error {
	args := m.Called(ctx, agentID, fn)
	return args.Error(0)
}

func (m *MockGridStore) Delete(ctx context.Context, agentID uuid.UUID) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

func newAgentService() (*AgentService, *store.GridStore) {
	grids := store.NewGridStore()
	return NewAgentService(store.NewAgentStore(), grids, GridLimits{DefaultWidth: 16, DefaultHeight: 12, MaxCells: 4096}, zap.NewNop()), grids
}

func TestAgentService_Create(t *testing.T) {
	s, grids := newAgentService()
	ctx := context.Background()

	agent := &domain.Agent{ExternalID: "bot-1", Name: "Scout", Width: 10, Height: 8}
	require.NoError(t, s.Create(ctx, agent))
	assert.NotEqual(t, uuid.Nil, agent.ID)

	err := grids.View(ctx, agent.ID, func(g domain.BeliefGrid) error {
		assert.Equal(t, 10, g.Width())
		assert.Equal(t, 8, g.Height())
		assert.Equal(t, 80, g.Count(domain.Unknown))
		return nil
	})
	require.NoError(t, err)
}

func TestAgentService_CreateUsesDefaultDimensions(t *testing.T) {
	s, _ := newAgentService()
	agent := &domain.Agent{ExternalID: "bot-1"}
	require.NoError(t, s.Create(context.Background(), agent))
	assert.Equal(t, 16, agent.Width)
	assert.Equal(t, 12, agent.Height)
}

func TestAgentService_CreateInvalidDimensions(t *testing.T) {
	s, _ := newAgentService()
	err := s.Create(context.Background(), &domain.Agent{ExternalID: "bot-1", Width: -3, Height: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
}

func TestAgentService_CreateTooLarge(t *testing.T) {
	s, _ := newAgentService()
	ctx := context.Background()

	tests := []struct {
		name          string
		width, height int
	}{
		{"over configured cap", 65, 64},
		{"product overflows", 1 << 32, 1 << 32},
		{"one huge side", 1 << 40, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Create(ctx, &domain.Agent{ExternalID: tt.name, Width: tt.width, Height: tt.height})
			assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
		})
	}

	require.NoError(t, s.Create(ctx, &domain.Agent{ExternalID: "at-cap", Width: 64, Height: 64}))
}

func TestAgentService_CreateDuplicate(t *testing.T) {
	s, _ := newAgentService()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &domain.Agent{ExternalID: "bot-1"}))
	err := s.Create(ctx, &domain.Agent{ExternalID: "bot-1"})
	assert.ErrorIs(t, err, ErrAgentConflict)
}

func TestAgentService_GetByID(t *testing.T) {
	s, _ := newAgentService()
	ctx := context.Background()

	agent := &domain.Agent{ExternalID: "bot-1", Name: "Scout"}
	require.NoError(t, s.Create(ctx, agent))

	found, err := s.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scout", found.Name)
}

func TestAgentService_GetByID_NotFound(t *testing.T) {
	agents := new(MockAgentStore)
	id := uuid.New()
	agents.On("GetByID", mock.Anything, id).Return(nil, store.ErrNotFound)

	s := NewAgentService(agents, store.NewGridStore(), GridLimits{DefaultWidth: 8, DefaultHeight: 8}, zap.NewNop())
	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrAgentNotFound)
	agents.AssertExpectations(t)
}

func TestAgentService_CreateStoreConflictMapped(t *testing.T) {
	agents := new(MockAgentStore)
	agents.On("Create", mock.Anything, mock.AnythingOfType("*domain.Agent")).Return(store.ErrConflict)

	s := NewAgentService(agents, store.NewGridStore(), GridLimits{DefaultWidth: 8, DefaultHeight: 8}, zap.NewNop())
	err := s.Create(context.Background(), &domain.Agent{ExternalID: "dup"})
	assert.ErrorIs(t, err, ErrAgentConflict)
	agents.AssertExpectations(t)
}

func TestAgentService_CreateRemovesAgentWhenGridFails(t *testing.T) {
	agents := new(MockAgentStore)
	grids := new(MockGridStore)
	id := uuid.New()
	allocErr := errors.New("out of memory")

	agents.On("Create", mock.Anything, mock.AnythingOfType("*domain.Agent")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Agent).ID = id }).
		Return(nil)
	grids.On("Create", mock.Anything, id, 8, 8).Return(allocErr)
	agents.On("Delete", mock.Anything, id).Return(nil)

	s := NewAgentService(agents, grids, GridLimits{DefaultWidth: 8, DefaultHeight: 8}, zap.NewNop())
	err := s.Create(context.Background(), &domain.Agent{ExternalID: "bot-1"})
	assert.ErrorIs(t, err, allocErr)
	agents.AssertExpectations(t)
	grids.AssertExpectations(t)
}
