// Package app is the Bubble Tea root model of the terminal client.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/client"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/screens/quiz"
	"github.com/abhisek/quizbuddy/internal/screens/summary"
	"github.com/abhisek/quizbuddy/internal/screens/topics"
	"github.com/abhisek/quizbuddy/internal/screens/welcome"
	"github.com/abhisek/quizbuddy/internal/ui/layout"
)

// API is everything the screens ask of the server.
type API interface {
	welcome.ProfileCreator
	topics.QuizStarter
	quiz.AnswerSubmitter
	summary.AchievementLister
}

var _ API = (*client.Client)(nil)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// navigator builds screens and wires each one to the next.
type navigator struct {
	api API
}

func (n navigator) welcome() screen.Screen {
	return welcome.New(n.api, n.topics)
}

func (n navigator) topics(p profile.Profile) screen.Screen {
	return topics.New(n.api, p, n.quiz)
}

func (n navigator) quiz(p profile.Profile, topic string, q *client.Quiz) screen.Screen {
	return quiz.New(n.api, p, topic, q, n.summary)
}

func (n navigator) summary(o quiz.Outcome) screen.Screen {
	return summary.New(n.api, o, n.welcome)
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(api API) AppModel {
	nav := navigator{api: api}
	return AppModel{
		router: router.New(nav.welcome()),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program against api.
func Run(api API) error {
	p := tea.NewProgram(newAppModel(api))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
