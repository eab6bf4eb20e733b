package perception

import (
	"testing"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/memorymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, w, h int) *memorymap.Grid {
	t.Helper()
	g, err := memorymap.New(w, h)
	require.NoError(t, err)
	return g
}

func stateAt(t *testing.T, g *memorymap.Grid, x, y int) domain.BeliefState {
	t.Helper()
	s, err := g.State(x, y)
	require.NoError(t, err)
	return s
}

func TestApply_North(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)
	raw := rawReading(map[domain.LocalCell]byte{
		{Row: 6, Col: 2}: '+',
		{Row: 5, Col: 2}: '0',
		{Row: 5, Col: 4}: '*',
	})

	res, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.North, raw)
	require.NoError(t, err)
	assert.Equal(t, 35, res.CellsWritten)
	assert.Equal(t, 32, res.Empty)

	assert.Equal(t, domain.Food, stateAt(t, g, 6, 5))
	assert.Equal(t, domain.AgentSeen, stateAt(t, g, 5, 5))
	assert.Equal(t, domain.Wall, stateAt(t, g, 5, 3))
	assert.Equal(t, domain.Nothing, stateAt(t, g, 0, 7))
	assert.Equal(t, 32, g.Count(domain.Nothing))
	assert.Equal(t, 100-35, g.Count(domain.Unknown))
}

func TestApply_East(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)
	raw := rawReading(map[domain.LocalCell]byte{{Row: 6, Col: 2}: 'T'})

	_, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.East, raw)
	require.NoError(t, err)
	assert.Equal(t, domain.Hammer, stateAt(t, g, 5, 6))
}

func TestApply_EmptyContentWritesNothing(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)

	_, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.South, emptyReading())
	require.NoError(t, err)

	tr := NewTransform(DefaultGeometry)
	for _, cell := range DefaultGeometry.Cells() {
		pos, err := tr.ToAbsolute(domain.Position{X: 5, Y: 5}, domain.South, cell)
		require.NoError(t, err)
		assert.Equal(t, domain.Nothing, stateAt(t, g, pos.X, pos.Y), "local %s", cell)
	}
}

func TestApply_OverwritesPreviousBeliefs(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)
	agent := domain.Position{X: 5, Y: 5}

	_, err := u.Apply(g, agent, domain.West, rawReading(map[domain.LocalCell]byte{{Row: 6, Col: 2}: '@'}))
	require.NoError(t, err)
	assert.Equal(t, domain.Rock, stateAt(t, g, 5, 4))

	_, err = u.Apply(g, agent, domain.West, emptyReading())
	require.NoError(t, err)
	assert.Equal(t, domain.Nothing, stateAt(t, g, 5, 4))
}

func TestApply_MalformedWritesNothing(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)
	full := emptyReading()

	_, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.North, full[:len(full)-12])
	assert.ErrorIs(t, err, domain.ErrMalformedSensorFrame)
	assert.Equal(t, 100, g.Count(domain.Unknown))
}

func TestApply_InvalidFacingWritesNothing(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)

	_, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.Direction(0), emptyReading())
	assert.ErrorIs(t, err, domain.ErrInvalidFacingDirection)
	assert.Equal(t, 100, g.Count(domain.Unknown))
}

func TestApply_OutOfBounds(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)

	// Facing north from (0,0): row 6 columns 0..2 land on y=2..0, column 3
	// lands on y=-1.
	res, err := u.Apply(g, domain.Position{X: 0, Y: 0}, domain.North, emptyReading())
	assert.ErrorIs(t, err, domain.ErrOutOfBoundsWrite)
	assert.Equal(t, 3, res.CellsWritten)

	// no rollback
	assert.Equal(t, domain.Nothing, stateAt(t, g, 1, 2))
	assert.Equal(t, domain.Nothing, stateAt(t, g, 1, 0))
	assert.Equal(t, 3, g.Count(domain.Nothing))
}

func TestApply_UnrecognizedCode(t *testing.T) {
	g := newGrid(t, 10, 10)
	u := NewUpdater(DefaultGeometry)
	raw := rawReading(map[domain.LocalCell]byte{{Row: 4, Col: 0}: 'x'})

	res, err := u.Apply(g, domain.Position{X: 5, Y: 5}, domain.North, raw)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedTileCode)
	assert.Equal(t, 2*FieldCols, res.CellsWritten)
	assert.Equal(t, 2*FieldCols, g.Count(domain.Nothing))
	// North from (5,5): local (4,0) is (4,7).
	assert.Equal(t, domain.Unknown, stateAt(t, g, 4, 7))
}
