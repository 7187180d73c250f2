package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the card-style screens so
// their boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double border, centered in the given
// area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded card of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Stars renders n filled stars out of three.
func Stars(n int) string {
	filled := lipgloss.NewStyle().Foreground(theme.Star).Bold(true)
	empty := lipgloss.NewStyle().Foreground(theme.Border)
	var s string
	for i := 0; i < 3; i++ {
		if i > 0 {
			s += " "
		}
		if i < n {
			s += filled.Render("★")
		} else {
			s += empty.Render("☆")
		}
	}
	return s
}
