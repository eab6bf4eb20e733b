package perception

import (
	"fmt"

	"github.com/Harshitk-cp/gridmind/internal/domain"
)

// CycleResult summarizes one applied perception cycle.
type CycleResult struct {
	CellsWritten int `json:"cells_written"`
	Empty        int `json:"empty"`
}

// Updater applies sensor readings to a belief grid.
type Updater struct {
	decoder   *Decoder
	transform Transform
}

func NewUpdater(g Geometry) *Updater {
	return &Updater{
		decoder:   NewDecoder(g),
		transform: NewTransform(g),
	}
}

// Apply runs one perception cycle: every decoded cell is written exactly once
// at its absolute coordinate, Nothing for empty entries. When two local cells
// land on the same coordinate the later one wins.
//
// A bad facing or a malformed reading fails before anything is written. An
// unrecognized tile code or an out-of-grid coordinate aborts the cycle at that
// cell; cells written earlier in the same cycle are kept.
func (u *Updater) Apply(grid domain.BeliefGrid, agent domain.Position, facing domain.Direction, raw string) (CycleResult, error) {
	var res CycleResult
	if !facing.Valid() {
		return res, fmt.Errorf("%w: %s", domain.ErrInvalidFacingDirection, facing)
	}

	frame, err := u.decoder.Decode(raw)
	if err != nil {
		return res, err
	}

	for o := range frame.Observations() {
		pos, err := u.transform.ToAbsolute(agent, facing, o.Cell)
		if err != nil {
			return res, err
		}
		if !grid.InBounds(pos.X, pos.Y) {
			return res, fmt.Errorf("%w: local %s maps to %s outside %dx%d",
				domain.ErrOutOfBoundsWrite, o.Cell, pos, grid.Width(), grid.Height())
		}

		if o.Empty {
			err = grid.SetState(pos.X, pos.Y, domain.Nothing)
		} else {
			err = grid.SetFromChar(pos.X, pos.Y, o.Code)
		}
		if err != nil {
			return res, fmt.Errorf("local %s: %w", o.Cell, err)
		}
		if o.Empty {
			res.Empty++
		}
		res.CellsWritten++
	}
	return res, nil
}

// Decoder exposes the updater's decoder for callers that only need parsing.
func (u *Updater) Decoder() *Decoder { return u.decoder }

// Transform exposes the updater's coordinate transform.
func (u *Updater) Transform() Transform { return u.transform }
