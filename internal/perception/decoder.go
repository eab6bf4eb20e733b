package perception

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Harshitk-cp/gridmind/internal/domain"
)

const (
	delimiter  = "("
	emptyMark  = ')'
	quote      = '"'
	codeOffset = 1
)

// Observation is one decoded column-entry of a reading.
type Observation struct {
	Cell  domain.LocalCell
	Empty bool // nothing observed at Cell
	Code  byte // tile code, valid when !Empty
}

// Frame is a fully validated reading.
type Frame struct {
	obs []Observation
}

// Observations yields the cells in wire order.
func (f *Frame) Observations() iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for _, o := range f.obs {
			if !yield(o) {
				return
			}
		}
	}
}

func (f *Frame) Len() int { return len(f.obs) }

// Decoder parses the parenthesis-delimited sensor format:
//
//	header ( row-group ){Rows}
//	row-group   = "(" ( "(" content ){Cols}
//
// Row-groups arrive in reverse local-row order. A content token starting with
// ')' means nothing was observed, otherwise its second byte is the tile code.
type Decoder struct {
	geometry Geometry
}

func NewDecoder(g Geometry) *Decoder {
	return &Decoder{geometry: g}
}

// tokenize splits raw on '(' keeping every delimiter as its own token.
func tokenize(raw string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != delimiter[0] {
			continue
		}
		if i > start {
			tokens = append(tokens, raw[start:i])
		}
		tokens = append(tokens, delimiter)
		start = i + 1
	}
	if start < len(raw) {
		tokens = append(tokens, raw[start:])
	}
	return tokens
}

type tokenReader struct {
	tokens []string
	pos    int
}

func (r *tokenReader) expectDelimiter(what string) error {
	if r.pos >= len(r.tokens) {
		return fmt.Errorf("%w: reading ended before %s delimiter", domain.ErrMalformedSensorFrame, what)
	}
	tok := r.tokens[r.pos]
	if tok != delimiter {
		return fmt.Errorf("%w: token %d: expected %s delimiter, got %q", domain.ErrMalformedSensorFrame, r.pos, what, tok)
	}
	r.pos++
	return nil
}

func (r *tokenReader) expectContent(cell domain.LocalCell) (Observation, error) {
	if r.pos >= len(r.tokens) {
		return Observation{}, fmt.Errorf("%w: reading ended before content of %s", domain.ErrMalformedSensorFrame, cell)
	}
	tok := r.tokens[r.pos]
	if tok == delimiter {
		return Observation{}, fmt.Errorf("%w: token %d: missing content of %s", domain.ErrMalformedSensorFrame, r.pos, cell)
	}
	r.pos++
	if tok[0] == emptyMark {
		return Observation{Cell: cell, Empty: true}, nil
	}
	if len(tok) <= codeOffset {
		return Observation{}, fmt.Errorf("%w: content %q of %s has no tile code", domain.ErrMalformedSensorFrame, tok, cell)
	}
	return Observation{Cell: cell, Code: tok[codeOffset]}, nil
}

// Decode validates the whole reading before returning it, so a short or
// garbled reading never yields a partial frame. Tile codes are not resolved
// here.
func (d *Decoder) Decode(raw string) (*Frame, error) {
	tokens := tokenize(raw)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty reading", domain.ErrMalformedSensorFrame)
	}
	r := &tokenReader{tokens: tokens, pos: 1} // header

	obs := make([]Observation, 0, d.geometry.Rows*d.geometry.Cols)
	for row := d.geometry.Rows - 1; row >= 0; row-- {
		if err := r.expectDelimiter(fmt.Sprintf("row-group %d", row)); err != nil {
			return nil, err
		}
		for col := 0; col < d.geometry.Cols; col++ {
			cell := domain.LocalCell{Row: row, Col: col}
			if err := r.expectDelimiter("column " + cell.String()); err != nil {
				return nil, err
			}
			o, err := r.expectContent(cell)
			if err != nil {
				return nil, err
			}
			obs = append(obs, o)
		}
	}
	if r.pos != len(tokens) {
		return nil, fmt.Errorf("%w: %d trailing tokens", domain.ErrMalformedSensorFrame, len(tokens)-r.pos)
	}
	return &Frame{obs: obs}, nil
}

// Encode builds a reading from rows given in wire order (first string is
// local row Rows-1). Each byte is a tile code or domain.NothingGlyph.
func (d *Decoder) Encode(rows []string) (string, error) {
	if len(rows) != d.geometry.Rows {
		return "", fmt.Errorf("%w: got %d rows, want %d", domain.ErrMalformedSensorFrame, len(rows), d.geometry.Rows)
	}
	var b strings.Builder
	b.WriteString(delimiter)
	for i, row := range rows {
		if len(row) != d.geometry.Cols {
			return "", fmt.Errorf("%w: row %d has %d columns, want %d", domain.ErrMalformedSensorFrame, i, len(row), d.geometry.Cols)
		}
		b.WriteString(delimiter)
		for j := 0; j < len(row); j++ {
			b.WriteString(delimiter)
			if row[j] == domain.NothingGlyph {
				b.WriteByte(emptyMark)
				continue
			}
			if _, err := domain.ParseTileCode(row[j]); err != nil {
				return "", err
			}
			b.WriteByte(quote)
			b.WriteByte(row[j])
			b.WriteByte(quote)
			b.WriteByte(emptyMark)
		}
		b.WriteByte(emptyMark)
	}
	b.WriteByte(emptyMark)
	return b.String(), nil
}
