package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/ui/components"
	"github.com/abhisek/quizbuddy/internal/ui/theme"
)

var cheers = []string{"Great job!", "You got it!", "Awesome!", "Super smart!"}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder
	total := len(s.quiz.Questions)

	// Progress line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.index+1, total))
	infoRight := components.AnswerDots(s.results, total)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(s.choice.View(), cw)))
	b.WriteString("\n")

	switch {
	case s.pending:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Checking...")))
	case s.feedback != nil:
		b.WriteString(s.renderFeedback(width, cw))
	case s.errMsg != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width, cw int) string {
	fb := s.feedback

	var headline string
	mood := components.MascotThinking
	if fb.IsCorrect {
		headline = theme.Correct.Render(cheers[s.index%len(cheers)])
		mood = components.MascotCelebrating
	} else {
		q := s.quiz.Questions[s.index]
		answer := ""
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			answer = q.Options[q.CorrectAnswer]
		}
		headline = theme.Incorrect.Render("Not quite! The answer was: " + answer)
	}

	explanation := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(max(cw-10, 10)).
		Render(fb.Explanation)

	text := lipgloss.JoinVertical(lipgloss.Left, headline, "", explanation)
	row := lipgloss.JoinHorizontal(lipgloss.Center, components.Mascot(mood), "   ", text)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}
