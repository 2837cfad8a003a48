package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/ui/theme"
)

// MascotMood selects which mascot art to display.
type MascotMood int

const (
	MascotIdle        MascotMood = iota // Default purple
	MascotCelebrating                   // Gold, star eyes after a right answer
	MascotThinking                      // Orange, after a miss
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ?!? │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ?!? │
└─╥═╥─┘
  ╚═╝`

const mascotThinking = `┌─────┐
│ ◉ ◉ │ ?
│  ~  │
│ ?!? │
└─────┘`

// Mascot returns the mascot art for the given mood.
func Mascot(mood MascotMood) string {
	art, fg := mascotIdle, theme.Primary
	switch mood {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotThinking:
		art, fg = mascotThinking, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
