package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dino/internal/core"
)

// ansiColors maps core.Color to terminal color codes.
var ansiColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette holds one lipgloss style per core.Color for a renderer. SSH
// sessions each get their own renderer so color detection follows the
// client terminal.
type Palette struct {
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds a palette for r. A nil renderer uses the default one.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		styles: make(map[core.Color]lipgloss.Style, len(ansiColors)+1),
	}
	p.styles[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiColors {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	return p.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
