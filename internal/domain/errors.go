package domain

import "errors"

// Perception cycle failures. All of them are scoped to one cycle.
var (
	ErrUnrecognizedTileCode   = errors.New("unrecognized tile code")
	ErrMalformedSensorFrame   = errors.New("malformed sensor frame")
	ErrOutOfBoundsWrite       = errors.New("coordinate outside grid")
	ErrInvalidFacingDirection = errors.New("invalid facing direction")
	ErrInvalidDimensions      = errors.New("grid dimensions must be positive")
)
