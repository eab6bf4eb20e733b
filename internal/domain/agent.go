package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is one registered observer. Its belief grid lives in the store next
// to it and is never shared with another agent.
type Agent struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Position   Position  `json:"position"`
	Facing     Direction `json:"facing,omitempty"`
	Cycles     int64     `json:"cycles"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
