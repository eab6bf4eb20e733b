package perception

import (
	"testing"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAbsolute_ConcreteCases(t *testing.T) {
	tr := NewTransform(DefaultGeometry)
	agent := domain.Position{X: 5, Y: 5}
	ahead := domain.LocalCell{Row: 6, Col: 2}

	tests := []struct {
		facing domain.Direction
		cell   domain.LocalCell
		want   domain.Position
	}{
		{domain.North, ahead, domain.Position{X: 6, Y: 5}},
		{domain.East, ahead, domain.Position{X: 5, Y: 6}},
		{domain.South, ahead, domain.Position{X: 4, Y: 5}},
		{domain.West, ahead, domain.Position{X: 5, Y: 4}},
		// one column to the right of the origin
		{domain.North, domain.LocalCell{Row: 5, Col: 3}, domain.Position{X: 5, Y: 4}},
		{domain.East, domain.LocalCell{Row: 5, Col: 3}, domain.Position{X: 6, Y: 5}},
		{domain.South, domain.LocalCell{Row: 5, Col: 3}, domain.Position{X: 5, Y: 6}},
		{domain.West, domain.LocalCell{Row: 5, Col: 3}, domain.Position{X: 4, Y: 5}},
		// far corner
		{domain.North, domain.LocalCell{Row: 0, Col: 0}, domain.Position{X: 0, Y: 7}},
		{domain.East, domain.LocalCell{Row: 0, Col: 0}, domain.Position{X: 3, Y: 0}},
		{domain.South, domain.LocalCell{Row: 0, Col: 0}, domain.Position{X: 10, Y: 3}},
		{domain.West, domain.LocalCell{Row: 0, Col: 0}, domain.Position{X: 7, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String()+tt.cell.String(), func(t *testing.T) {
			got, err := tr.ToAbsolute(agent, tt.facing, tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToAbsolute_OriginIsAgent(t *testing.T) {
	tr := NewTransform(DefaultGeometry)
	agent := domain.Position{X: 12, Y: 3}
	for _, facing := range domain.Directions() {
		got, err := tr.ToAbsolute(agent, facing, DefaultGeometry.Origin)
		require.NoError(t, err)
		assert.Equal(t, agent, got, "facing %s", facing)
	}
}

func TestToAbsolute_BijectivePerFacing(t *testing.T) {
	tr := NewTransform(DefaultGeometry)
	agent := domain.Position{X: 20, Y: 20}

	for _, facing := range domain.Directions() {
		seen := make(map[domain.Position]domain.LocalCell)
		for _, cell := range DefaultGeometry.Cells() {
			pos, err := tr.ToAbsolute(agent, facing, cell)
			require.NoError(t, err)
			if prev, dup := seen[pos]; dup {
				t.Fatalf("facing %s: %s and %s both map to %s", facing, prev, cell, pos)
			}
			seen[pos] = cell
		}
		assert.Len(t, seen, FieldRows*FieldCols)
	}
}

func TestToAbsolute_InvalidFacing(t *testing.T) {
	tr := NewTransform(DefaultGeometry)
	_, err := tr.ToAbsolute(domain.Position{}, domain.Direction(0), domain.LocalCell{})
	assert.ErrorIs(t, err, domain.ErrInvalidFacingDirection)

	_, err = tr.ToAbsolute(domain.Position{}, domain.Direction(7), domain.LocalCell{})
	assert.ErrorIs(t, err, domain.ErrInvalidFacingDirection)
}
