package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // last session earned three stars
	MascotEncouraging               // last session earned no stars
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ABC │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ABC │
└─╥═╥─┘
  ╚═╝`

const mascotEncouraging = `┌─────┐
│ ◉ ◉ │ ♥
│  ◡  │
│ ABC │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary
	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Star
	case MascotEncouraging:
		art = mascotEncouraging
		fg = theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// mascotFor picks the mascot from the most recent finished session.
func mascotFor(lastStars int, played bool) MascotVariant {
	switch {
	case !played:
		return MascotIdle
	case lastStars == 3:
		return MascotCelebrating
	case lastStars == 0:
		return MascotEncouraging
	}
	return MascotIdle
}
