// Package summary shows the result of a finished quiz.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/achievements"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/screens/quiz"
	"github.com/abhisek/quizbuddy/internal/ui/components"
	"github.com/abhisek/quizbuddy/internal/ui/layout"
	"github.com/abhisek/quizbuddy/internal/ui/theme"
)

const (
	buttonPlayAgain = iota
	buttonNewProfile
)

// AchievementLister fetches a learner's badges; *client.Client satisfies it.
type AchievementLister interface {
	Achievements(ctx context.Context, profileID string) ([]achievements.Achievement, error)
}

type achievementsMsg struct {
	Achievements []achievements.Achievement
	Err          error
}

// SummaryScreen displays the quiz result and earned badges.
type SummaryScreen struct {
	api        AchievementLister
	outcome    quiz.Outcome
	newProfile func() screen.Screen

	badges   []achievements.Achievement
	loaded   bool
	badgeErr error
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. newProfile builds the screen shown when
// the learner picks "New Profile".
func New(api AchievementLister, outcome quiz.Outcome, newProfile func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{api: api, outcome: outcome, newProfile: newProfile}
}

func (s *SummaryScreen) Init() tea.Cmd {
	api, id := s.api, s.outcome.Learner.ID
	return func() tea.Msg {
		all, err := api.Achievements(context.Background(), id)
		return achievementsMsg{Achievements: all, Err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Topics"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case achievementsMsg:
		s.loaded = true
		s.badges, s.badgeErr = msg.Achievements, msg.Err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			s.selected = buttonPlayAgain
		case "right", "l", "tab":
			s.selected = buttonNewProfile
		case "enter":
			if s.selected == buttonNewProfile && s.newProfile != nil {
				next := s.newProfile()
				return s, tea.Sequence(
					func() tea.Msg { return router.PopScreenMsg{} },
					func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
				)
			}
			// Back to the topic picker underneath.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// Percent is the rounded share of correct answers.
func (s *SummaryScreen) Percent() int {
	if s.outcome.Total == 0 {
		return 0
	}
	return (s.outcome.Score*100 + s.outcome.Total/2) / s.outcome.Total
}

func (s *SummaryScreen) View(width, height int) string {
	o := s.outcome
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	title := "Congratulations!"
	if o.Learner.Name != "" {
		title = fmt.Sprintf("Congratulations, %s!", o.Learner.Name)
	}
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	mood := components.MascotIdle
	if o.Score == o.Total && o.Total > 0 {
		mood = components.MascotCelebrating
	}
	score := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%d/%d", o.Score, o.Total))
	right := lipgloss.JoinVertical(lipgloss.Left,
		score,
		"",
		components.AnswerDots(o.Results, o.Total),
		components.NewProgressBar("", float64(s.Percent())/100, false, 24).View(),
		"",
		theme.Body.Render(fmt.Sprintf("You got %d%% correct!", s.Percent())),
		theme.Body.Render("Great job learning about ")+theme.Selected.Render(o.Topic)+theme.Body.Render("!"),
	)
	if layout.IsCompactHeight(height) {
		b.WriteString(center(right))
	} else {
		b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, components.Mascot(mood), "    ", right)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(s.renderBadges()))
	b.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.ArcadeButton("Play Again", s.selected == buttonPlayAgain, 18),
		"  ",
		components.ArcadeButton("New Profile", s.selected == buttonNewProfile, 18),
	)
	b.WriteString(center(buttons))

	return b.String()
}

func (s *SummaryScreen) renderBadges() string {
	switch {
	case !s.loaded:
		return theme.Hint.Render("Checking your badges...")
	case s.badgeErr != nil:
		return theme.Hint.Render("Badges are unavailable right now.")
	}

	unlocked := achievements.Unlocked(s.badges)
	if len(unlocked) == 0 {
		return theme.Hint.Render("Keep playing to earn your first badge!")
	}

	parts := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.RarityColor(string(a.Rarity))).
			Bold(true).
			Render(a.Icon+" "+a.Name))
	}
	line := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges: ") + strings.Join(parts, "   ")
	if locked := len(s.badges) - len(unlocked); locked > 0 {
		line += "\n" + theme.Locked.Render(fmt.Sprintf("%d more to discover", locked))
	}
	return line
}
