// Package topics is the topic picker shown between quizzes.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/client"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/ui/components"
	"github.com/abhisek/quizbuddy/internal/ui/layout"
	"github.com/abhisek/quizbuddy/internal/ui/theme"
)

const customLabel = "Something else..."

// QuizStarter lists topics and starts quizzes; *client.Client satisfies it.
type QuizStarter interface {
	Topics(ctx context.Context) ([]quizgen.Topic, error)
	GenerateQuiz(ctx context.Context, profileID, topic string) (*client.Quiz, error)
}

// NextFunc builds the quiz screen for a started quiz.
type NextFunc func(learner profile.Profile, topic string, quiz *client.Quiz) screen.Screen

type topicsLoadedMsg struct {
	Topics []quizgen.Topic
	Err    error
}

type pickTopicMsg struct {
	Topic  string
	Custom bool
}

type quizReadyMsg struct {
	Topic string
	Quiz  *client.Quiz
	Err   error
}

// TopicsScreen lets the learner choose what the next quiz is about.
type TopicsScreen struct {
	api     QuizStarter
	learner profile.Profile
	next    NextFunc

	menu       components.Menu
	loaded     bool
	custom     components.TextInput
	typing     bool
	generating string
	errMsg     string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.StatusProvider = (*TopicsScreen)(nil)

// New creates a TopicsScreen for learner.
func New(api QuizStarter, learner profile.Profile, next NextFunc) *TopicsScreen {
	return &TopicsScreen{
		api:     api,
		learner: learner,
		next:    next,
		menu:    components.NewMenu([]components.MenuItem{{Label: "Loading topics...", Disabled: true}}),
		custom:  components.NewTextInput("What do you want to learn about?", "volcanoes", false, 60),
	}
}

func (s *TopicsScreen) Init() tea.Cmd {
	api := s.api
	return func() tea.Msg {
		topics, err := api.Topics(context.Background())
		return topicsLoadedMsg{Topics: topics, Err: err}
	}
}

func (s *TopicsScreen) Title() string {
	return "Pick a Topic"
}

func (s *TopicsScreen) Status() string {
	return s.learner.Name
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.generating != "" {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start quiz"},
			{Key: "Esc", Description: "Back to list"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		topics := msg.Topics
		if msg.Err != nil || len(topics) == 0 {
			// Offline or older server: the built-in list still works.
			topics = quizgen.SuggestedTopics()
		}
		s.menu = components.NewMenu(s.menuItems(topics))
		s.loaded = true
		return s, nil

	case pickTopicMsg:
		if msg.Custom {
			s.typing = true
			s.errMsg = ""
			return s, s.custom.Focus()
		}
		return s, s.start(msg.Topic)

	case quizReadyMsg:
		s.generating = ""
		if msg.Err != nil {
			s.errMsg = "Couldn't start the quiz: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		next := s.next(s.learner, msg.Topic, msg.Quiz)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if s.generating != "" {
			return s, nil
		}
		if s.typing {
			return s.handleTyping(msg)
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *TopicsScreen) handleTyping(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.typing = false
		s.custom.Blur()
		return s, nil
	case "enter":
		topic := s.custom.Value()
		if topic == "" {
			s.errMsg = "Type a topic first!"
			return s, nil
		}
		s.typing = false
		s.custom.Blur()
		s.custom.SetValue("")
		return s, s.start(topic)
	}

	s.errMsg = ""
	var cmd tea.Cmd
	s.custom, cmd = s.custom.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) start(topic string) tea.Cmd {
	s.generating = topic
	s.errMsg = ""
	api, profileID := s.api, s.learner.ID
	return func() tea.Msg {
		quiz, err := api.GenerateQuiz(context.Background(), profileID, topic)
		return quizReadyMsg{Topic: topic, Quiz: quiz, Err: err}
	}
}

// menuItems lists the learner's own interests first, then the suggested
// topics, then the free-text entry.
func (s *TopicsScreen) menuItems(topics []quizgen.Topic) []components.MenuItem {
	seen := make(map[string]bool)
	var items []components.MenuItem
	add := func(name, icon string) {
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		items = append(items, components.MenuItem{
			Label:  name,
			Icon:   icon,
			Action: pick(name),
		})
	}

	for _, interest := range s.learner.Interests {
		add(interest, "⭐")
	}
	for _, t := range topics {
		add(t.Name, t.Emoji)
	}
	items = append(items, components.MenuItem{
		Label:  customLabel,
		Icon:   "✏️",
		Action: func() tea.Cmd { return func() tea.Msg { return pickTopicMsg{Custom: true} } },
	})
	return items
}

func pick(topic string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickTopicMsg{Topic: topic} }
	}
}

func (s *TopicsScreen) View(width, height int) string {
	var b strings.Builder

	greeting := "What do you want to learn today?"
	if s.learner.Name != "" {
		greeting = fmt.Sprintf("Hi %s! What do you want to learn today?", s.learner.Name)
	}
	b.WriteString(theme.Title.Width(width).Render(greeting))
	b.WriteString("\n\n")

	switch {
	case s.generating != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Making a quiz about %s...", s.generating)))
	case s.typing:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.ArcadeCard(s.custom.View(), components.ContentWidth(width))))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}
