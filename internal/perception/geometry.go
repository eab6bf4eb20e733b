// Package perception turns raw sensor readings into belief grid writes.
//
// A reading describes a Rows x Cols field in the agent's local frame. The
// Decoder parses it, the Transform rotates each local cell into absolute grid
// coordinates for the agent's facing, and the Updater writes the observed
// states into a domain.BeliefGrid.
package perception

import "github.com/Harshitk-cp/gridmind/internal/domain"

// Sensor field layout of the reference environment. The rotation formulas in
// Transform are tied to this origin; change them together.
const (
	FieldRows = 7
	FieldCols = 5
	OriginRow = 5
	OriginCol = 2
)

// Geometry describes the sensor field and where the agent sits in it.
type Geometry struct {
	Rows   int
	Cols   int
	Origin domain.LocalCell
}

var DefaultGeometry = Geometry{
	Rows:   FieldRows,
	Cols:   FieldCols,
	Origin: domain.LocalCell{Row: OriginRow, Col: OriginCol},
}

// Cells returns every local cell in wire order: rows Rows-1 down to 0,
// columns 0 to Cols-1.
func (g Geometry) Cells() []domain.LocalCell {
	cells := make([]domain.LocalCell, 0, g.Rows*g.Cols)
	for r := g.Rows - 1; r >= 0; r-- {
		for c := 0; c < g.Cols; c++ {
			cells = append(cells, domain.LocalCell{Row: r, Col: c})
		}
	}
	return cells
}
