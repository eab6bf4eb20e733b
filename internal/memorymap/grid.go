// Package memorymap holds the belief grid of a single agent: a fixed-size,
// dense array of belief states indexed by absolute (x, y).
package memorymap

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Harshitk-cp/gridmind/internal/domain"
)

// Grid is a width x height belief map. Every cell always holds exactly one
// state. A Grid is not safe for concurrent use.
type Grid struct {
	width  int
	height int
	cells  []domain.BeliefState
}

// MaxCells bounds width*height so the cell count can never overflow int.
const MaxCells = 1 << 26

// New allocates a grid with every cell Unknown.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]domain.BeliefState, width*height),
	}, nil
}

func (g *Grid) Width() int    { return g.width }
func (g *Grid) Height() int   { return g.height }
func (g *Grid) NumTiles() int { return len(g.cells) }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// index is x-major, matching AllTiles order.
func (g *Grid) index(x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) not in %dx%d", domain.ErrOutOfBoundsWrite, x, y, g.width, g.height)
	}
	return x*g.height + y, nil
}

func (g *Grid) SetState(x, y int, s domain.BeliefState) error {
	if !s.Valid() {
		return fmt.Errorf("invalid belief state %d", uint8(s))
	}
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.cells[i] = s
	return nil
}

// SetFromChar decodes code through the tile table and stores the result.
// An unrecognized code leaves the grid unchanged.
func (g *Grid) SetFromChar(x, y int, code byte) error {
	s, err := domain.ParseTileCode(code)
	if err != nil {
		return err
	}
	return g.SetState(x, y, s)
}

func (g *Grid) State(x, y int) (domain.BeliefState, error) {
	i, err := g.index(x, y)
	if err != nil {
		return domain.Unknown, err
	}
	return g.cells[i], nil
}

func (g *Grid) Tile(x, y int) (domain.Tile, error) {
	s, err := g.State(x, y)
	if err != nil {
		return domain.Tile{}, err
	}
	return domain.Tile{X: x, Y: y, State: s}, nil
}

// ClearMemory forgets everything. The backing array is reused.
func (g *Grid) ClearMemory() {
	clear(g.cells)
}

// AllTiles yields every cell, x outer and y inner.
func (g *Grid) AllTiles() iter.Seq[domain.Tile] {
	return func(yield func(domain.Tile) bool) {
		for i, s := range g.cells {
			if !yield(domain.Tile{X: i / g.height, Y: i % g.height, State: s}) {
				return
			}
		}
	}
}

func (g *Grid) TilesWithState(s domain.BeliefState) iter.Seq[domain.Tile] {
	return func(yield func(domain.Tile) bool) {
		for t := range g.AllTiles() {
			if t.State == s && !yield(t) {
				return
			}
		}
	}
}

func (g *Grid) Count(s domain.BeliefState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Glyph is the character used to print s.
func Glyph(s domain.BeliefState) byte {
	if c, ok := s.Code(); ok {
		return c
	}
	return domain.NothingGlyph
}

// String prints one line per x, y increasing left to right.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(len(g.cells) + g.width)
	for i, s := range g.cells {
		b.WriteByte(Glyph(s))
		if (i+1)%g.height == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var _ domain.BeliefGrid = (*Grid)(nil)
