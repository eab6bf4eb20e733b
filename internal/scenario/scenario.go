// Package scenario loads recorded perception runs from YAML and replays them
// against a fresh belief grid.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/perception"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a grid size plus an ordered list of perception cycles.
type Scenario struct {
	Name   string  `yaml:"name"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Cycles []Cycle `yaml:"cycles"`
}

// Cycle is one reading taken at a pose. Exactly one of Reading (raw wire
// format) or Field (rows in wire order, '.' for nothing) is set.
type Cycle struct {
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Facing  string   `yaml:"facing"`
	Reading string   `yaml:"reading,omitempty"`
	Field   []string `yaml:"field,omitempty"`
}

func (c Cycle) Position() domain.Position {
	return domain.Position{X: c.X, Y: c.Y}
}

// Raw returns the cycle's reading in wire format, encoding Field if needed.
func (c Cycle) Raw(d *perception.Decoder) (string, error) {
	if c.Reading != "" {
		return c.Reading, nil
	}
	return d.Encode(c.Field)
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario document. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the document shape. Facings and readings are checked by
// the updater when the cycle runs, so a replay can report them per cycle.
func (sc *Scenario) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("%w: %w: %dx%d", ErrInvalidScenario, domain.ErrInvalidDimensions, sc.Width, sc.Height)
	}
	if len(sc.Cycles) == 0 {
		return fmt.Errorf("%w: no cycles", ErrInvalidScenario)
	}
	for i, c := range sc.Cycles {
		hasReading, hasField := c.Reading != "", len(c.Field) > 0
		if hasReading == hasField {
			return fmt.Errorf("%w: cycle %d: exactly one of reading or field is required", ErrInvalidScenario, i)
		}
	}
	return nil
}
