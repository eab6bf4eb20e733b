// Package render draws belief grids for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Harshitk-cp/gridmind/internal/domain"
	"github.com/Harshitk-cp/gridmind/internal/memorymap"
	"github.com/charmbracelet/lipgloss"
)

// Palette per belief state. Unknown stays dim so explored area stands out.
var (
	colorUnknown = lipgloss.Color("#5c6370")
	colorNothing = lipgloss.Color("#3e4451")
	colorFood    = lipgloss.Color("#8BC34A")
	colorMaybe   = lipgloss.Color("#d7e8a8")
	colorWall    = lipgloss.Color("#e1e4e8")
	colorRock    = lipgloss.Color("#ff8a65")
	colorItem    = lipgloss.Color("#FFC107")
	colorDoor    = lipgloss.Color("#4db6ac")
	colorAgent   = lipgloss.Color("#2196F3")
	colorBorder  = lipgloss.Color("#2a3850")
)

// Renderer draws grids with one style per belief state. In plain mode it
// produces exactly the grid's String form.
type Renderer struct {
	plain  bool
	states map[domain.BeliefState]lipgloss.Style
	self   lipgloss.Style
	frame  lipgloss.Style
	title  lipgloss.Style
}

// New builds a Renderer whose color profile is detected from out.
func New(out io.Writer, plain bool) *Renderer {
	lr := lipgloss.NewRenderer(out)
	fg := func(c lipgloss.Color) lipgloss.Style { return lr.NewStyle().Foreground(c) }

	return &Renderer{
		plain: plain,
		states: map[domain.BeliefState]lipgloss.Style{
			domain.Unknown:       fg(colorUnknown),
			domain.Nothing:       fg(colorNothing),
			domain.PotentialFood: fg(colorMaybe),
			domain.Food:          fg(colorFood).Bold(true),
			domain.Wall:          fg(colorWall).Bold(true),
			domain.Rock:          fg(colorRock),
			domain.Key:           fg(colorItem).Bold(true),
			domain.Hammer:        fg(colorItem).Bold(true),
			domain.Door:          fg(colorDoor).Bold(true),
			domain.AgentSeen:     fg(colorAgent),
		},
		self:  fg(colorAgent).Bold(true).Reverse(true),
		frame: lr.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder),
		title: lr.NewStyle().Bold(true),
	}
}

// Grid draws g one line per x. When self is non-nil that cell is highlighted
// as the observing agent.
func (r *Renderer) Grid(g domain.BeliefGrid, self *domain.Position) string {
	if r.plain {
		return g.String()
	}

	var b strings.Builder
	for x := 0; x < g.Width(); x++ {
		if x > 0 {
			b.WriteByte('\n')
		}
		for y := 0; y < g.Height(); y++ {
			st, _ := g.State(x, y)
			glyph := string(memorymap.Glyph(st))
			if self != nil && self.X == x && self.Y == y {
				b.WriteString(r.self.Render(glyph))
				continue
			}
			b.WriteString(r.states[st].Render(glyph))
		}
	}
	return r.frame.Render(b.String()) + "\n"
}

// Legend lists the glyph of every belief state.
func (r *Renderer) Legend() string {
	parts := make([]string, 0, len(domain.BeliefStates()))
	for _, st := range domain.BeliefStates() {
		glyph := string(memorymap.Glyph(st))
		if !r.plain {
			glyph = r.states[st].Render(glyph)
		}
		parts = append(parts, glyph+" "+st.String())
	}
	return strings.Join(parts, "  ") + "\n"
}

// Heading renders a one-line section title.
func (r *Renderer) Heading(format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	if r.plain {
		return s + "\n"
	}
	return r.title.Render(s) + "\n"
}
