package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const titleFull = `██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const titleCompact = "W · O · R · D · I · Z"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Star).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows how much practice has been done.
func renderStatsBar(st stats, cw int, compact bool) string {
	played := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	stars := lipgloss.NewStyle().Foreground(theme.Star).Bold(true)
	acc := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			played.Render(fmt.Sprintf("▶%d", st.Sessions)),
			stars.Render(fmt.Sprintf("★%d", st.Stars)),
			acc.Render(fmt.Sprintf("%d%%", st.Percent)))
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			played.Render(fmt.Sprintf("▶ %d PLAYED", st.Sessions)),
			stars.Render(fmt.Sprintf("★ %d STARS", st.Stars)),
			acc.Render(fmt.Sprintf("%d%% CORRECT", st.Percent)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when compact.
func renderMenu(items []components.MenuItem, selected, cw int, compact bool) string {
	base := lipgloss.NewStyle().Width(buttonWidth).Align(lipgloss.Center).Padding(0, 1)
	if !compact {
		base = base.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}
	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Star).
		BorderForeground(theme.Star)
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim)

	buttons := make([]string, 0, len(items))
	for i, item := range items {
		switch {
		case item.Disabled:
			buttons = append(buttons, disabledBtn.Render(item.Label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, normalBtn.Render(item.Label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderSourceLine(source string, count, cw int) string {
	text := fmt.Sprintf("%s · %d questions", source, count)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
