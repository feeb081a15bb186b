package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twisty/pkg/types"
)

// Marks highlights facets. Use -1 for none.
type Marks struct {
	Cursor   int
	Selected int
}

// NoMarks highlights nothing.
var NoMarks = Marks{Cursor: -1, Selected: -1}

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Hex converts a palette entry to a lipgloss color.
func Hex(rgb [3]float64) lipgloss.Color {
	channel := func(v float64) int {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		default:
			return int(v*255 + 0.5)
		}
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", channel(rgb[0]), channel(rgb[1]), channel(rgb[2])))
}

// Painter draws a grid in a fixed palette.
type Painter struct {
	styles []lipgloss.Style
}

// NewPainter builds one cell style per palette entry.
func NewPainter(palette [][3]float64) *Painter {
	p := &Painter{}
	for _, rgb := range palette {
		p.styles = append(p.styles, lipgloss.NewStyle().
			Background(Hex(rgb)).
			Foreground(lipgloss.Color("0")))
	}
	return p
}

// Render draws colors over g. Each cell is two characters wide.
func (p *Painter) Render(g *Grid, colors []int, marks Marks) string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			b.WriteString(p.cell(g.At(r, c), colors, marks))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Painter) cell(facet int, colors []int, marks Marks) string {
	if facet < 0 {
		return "  "
	}

	text := "  "
	switch facet {
	case marks.Selected:
		text = "<>"
	case marks.Cursor:
		text = "[]"
	}

	color := types.NoColor
	if facet < len(colors) {
		color = colors[facet]
	}
	if color < 0 || color >= len(p.styles) {
		if text == "  " {
			text = ".."
		}
		return emptyStyle.Render(text)
	}
	return p.styles[color].Render(text)
}
