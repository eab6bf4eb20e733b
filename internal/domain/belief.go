package domain

import (
	"fmt"
)

// BeliefState is the agent's current knowledge of one grid cell.
type BeliefState uint8

const (
	// Unknown means never observed, or explicitly forgotten.
	Unknown BeliefState = iota
	PotentialFood
	Food
	Wall
	Rock
	Key
	Hammer
	Door
	// AgentSeen is another agent occupying the cell.
	AgentSeen
	// Nothing means observed and confirmed empty.
	Nothing
)

var beliefNames = [...]string{
	Unknown:       "unknown",
	PotentialFood: "potential_food",
	Food:          "food",
	Wall:          "wall",
	Rock:          "rock",
	Key:           "key",
	Hammer:        "hammer",
	Door:          "door",
	AgentSeen:     "agent",
	Nothing:       "nothing",
}

// Tile codes as they appear in sensor readings.
const (
	CodeUnknown       byte = 'u'
	CodePotentialFood byte = 'p'
	CodeFood          byte = '+'
	CodeWall          byte = '*'
	CodeRock          byte = '@'
	CodeDoor          byte = '#'
	CodeKey           byte = 'K'
	CodeHammer        byte = 'T'
	CodeAgent         byte = '0'

	// NothingGlyph stands for Nothing when printing or hand-writing a field.
	// It is not a tile code.
	NothingGlyph byte = '.'
)

var codeToBelief = map[byte]BeliefState{
	CodeUnknown:       Unknown,
	CodePotentialFood: PotentialFood,
	CodeFood:          Food,
	CodeWall:          Wall,
	CodeRock:          Rock,
	CodeDoor:          Door,
	CodeKey:           Key,
	CodeHammer:        Hammer,
	CodeAgent:         AgentSeen,
}

var beliefToCode = func() map[BeliefState]byte {
	m := make(map[BeliefState]byte, len(codeToBelief))
	for c, s := range codeToBelief {
		m[s] = c
	}
	return m
}()

// ParseTileCode resolves a sensor tile code. Codes outside the table are
// rejected rather than mapped to a default.
func ParseTileCode(code byte) (BeliefState, error) {
	s, ok := codeToBelief[code]
	if !ok {
		return Unknown, fmt.Errorf("%w: %q", ErrUnrecognizedTileCode, code)
	}
	return s, nil
}

// TileCodes returns every code of the table.
func TileCodes() []byte {
	return []byte{
		CodeUnknown, CodePotentialFood, CodeFood, CodeWall, CodeRock,
		CodeDoor, CodeKey, CodeHammer, CodeAgent,
	}
}

// Code returns the canonical tile code of s. Nothing has no code.
func (s BeliefState) Code() (byte, bool) {
	c, ok := beliefToCode[s]
	return c, ok
}

func (s BeliefState) Valid() bool {
	return int(s) < len(beliefNames)
}

func (s BeliefState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("BeliefState(%d)", uint8(s))
	}
	return beliefNames[s]
}

func (s BeliefState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid belief state %d", uint8(s))
	}
	return []byte(beliefNames[s]), nil
}

func (s *BeliefState) UnmarshalText(text []byte) error {
	v, err := ParseBeliefState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseBeliefState parses the lower-case name of a belief state.
func ParseBeliefState(name string) (BeliefState, error) {
	for i, n := range beliefNames {
		if n == name {
			return BeliefState(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown belief state %q", name)
}

// BeliefStates returns all variants in declaration order.
func BeliefStates() []BeliefState {
	states := make([]BeliefState, len(beliefNames))
	for i := range beliefNames {
		states[i] = BeliefState(i)
	}
	return states
}

// Tile is a read-only snapshot of one grid cell.
type Tile struct {
	X     int         `json:"x"`
	Y     int         `json:"y"`
	State BeliefState `json:"state"`
}
