package domain

import (
	"context"
	"iter"

	"github.com/google/uuid"
)

type AgentStore interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Agent, error)
	GetByExternalID(ctx context.Context, externalID string) (*Agent, error)
	Update(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Agent, error)
}

// BeliefGrid is the mutable belief map of one agent. Implementations are not
// safe for concurrent use; GridStore serializes access.
type BeliefGrid interface {
	Width() int
	Height() int
	InBounds(x, y int) bool
	State(x, y int) (BeliefState, error)
	Tile(x, y int) (Tile, error)
	SetState(x, y int, s BeliefState) error
	SetFromChar(x, y int, code byte) error
	ClearMemory()
	AllTiles() iter.Seq[Tile]
	TilesWithState(s BeliefState) iter.Seq[Tile]
	Count(s BeliefState) int
	String() string
}

// GridStore owns one BeliefGrid per agent. View and Update run fn while
// holding the agent's read or write lock, so a perception cycle applied
// through Update is never observed half-done by a View.
type GridStore interface {
	Create(ctx context.Context, agentID uuid.UUID, width, height int) error
	View(ctx context.Context, agentID uuid.UUID, fn func(BeliefGrid) error) error
	Update(ctx context.Context, agentID uuid.UUID, fn func(BeliefGrid) error) error
	Delete(ctx context.Context, agentID uuid.UUID) error
}
