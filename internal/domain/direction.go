package domain

import (
	"fmt"
	"strings"
)

// Direction is the cardinal facing of an agent.
type Direction uint8

const (
	North Direction = iota + 1
	East
	South
	West
)

func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection accepts full names in any case and the single-letter
// compass forms n, e, s, w.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFacingDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFacingDirection, uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Directions returns the four cardinal facings, clockwise from North.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// Position is an absolute grid coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// LocalCell is a coordinate inside the sensor field.
type LocalCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c LocalCell) String() string {
	return fmt.Sprintf("[%d,%d]", c.Row, c.Col)
}
