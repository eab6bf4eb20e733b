package perception

import (
	"fmt"

	"github.com/Harshitk-cp/gridmind/internal/domain"
)

// Transform maps sensor-field cells to absolute grid coordinates.
type Transform struct {
	origin domain.LocalCell
}

func NewTransform(g Geometry) Transform {
	return Transform{origin: g.Origin}
}

// ToAbsolute rotates cell around the field origin by the agent's facing and
// translates it to the agent's position. The local row axis is forward/back,
// the local column axis is left/right.
func (t Transform) ToAbsolute(agent domain.Position, facing domain.Direction, cell domain.LocalCell) (domain.Position, error) {
	colDist := cell.Row - t.origin.Row
	rowDist := cell.Col - t.origin.Col

	switch facing {
	case domain.North:
		return domain.Position{X: agent.X + colDist, Y: agent.Y - rowDist}, nil
	case domain.East:
		return domain.Position{X: agent.X + rowDist, Y: agent.Y + colDist}, nil
	case domain.South:
		return domain.Position{X: agent.X - colDist, Y: agent.Y + rowDist}, nil
	case domain.West:
		return domain.Position{X: agent.X - rowDist, Y: agent.Y - colDist}, nil
	default:
		return domain.Position{}, fmt.Errorf("%w: %s", domain.ErrInvalidFacingDirection, facing)
	}
}
