package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/ui/components"
	"github.com/abhisek/quizbuddy/internal/ui/layout"
	"github.com/abhisek/quizbuddy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const (
	fieldName = iota
	fieldAge
	fieldInterests
	fieldCount
)

const maxAge = 99

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// profileCreatedMsg carries the server's answer to the profile form.
type profileCreatedMsg struct {
	Profile *profile.Profile
	Err     error
}

// ProfileCreator registers a learner; *client.Client satisfies it.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, name string, age *int, interests []string) (*profile.Profile, error)
}

// WelcomeScreen plays a short splash and then asks who is playing.
type WelcomeScreen struct {
	api  ProfileCreator
	next func(profile.Profile) screen.Screen

	elapsed   time.Duration
	tickCount int

	fields     [fieldCount]components.TextInput
	focus      int
	submitting bool
	errMsg     string

	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next builds the screen shown once the
// profile exists.
func New(api ProfileCreator, next func(profile.Profile) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		api:  api,
		next: next,
		fields: [fieldCount]components.TextInput{
			components.NewTextInput("What's your name?", "Type your name", false, 30),
			components.NewTextInput("How old are you?", "8", true, 2),
			components.NewTextInput("Favorite things (optional, comma separated)", "dinosaurs, space", false, 80),
		},
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.tick(), w.fields[fieldName].Focus())
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if !w.formVisible() {
		return []layout.KeyHint{{Key: "any key", Description: "Skip"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) formVisible() bool {
	return w.elapsed >= phase2End
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, w.tick()

	case profileCreatedMsg:
		w.submitting = false
		if msg.Err != nil {
			w.errMsg = "Couldn't save your profile: " + msg.Err.Error()
			return w, nil
		}
		return w, w.transition(*msg.Profile)

	case tea.KeyPressMsg:
		// The first key skips the intro.
		if !w.formVisible() {
			w.elapsed = totalDur
			return w, nil
		}
		if w.submitting {
			return w, nil
		}
		return w.handleKey(msg)
	}

	return w, nil
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return w, w.setFocus((w.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return w, w.setFocus((w.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if w.fields[fieldName].Value() == "" {
			w.errMsg = "Tell me your name first!"
			return w, w.setFocus(fieldName)
		}
		if w.focus < fieldCount-1 {
			return w, w.setFocus(w.focus + 1)
		}
		return w, w.submit()
	}

	w.errMsg = ""
	var cmd tea.Cmd
	w.fields[w.focus], cmd = w.fields[w.focus].Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) setFocus(i int) tea.Cmd {
	for j := range w.fields {
		w.fields[j].Blur()
	}
	w.focus = i
	return w.fields[i].Focus()
}

func (w *WelcomeScreen) submit() tea.Cmd {
	name := w.fields[fieldName].Value()

	var age *int
	if w.fields[fieldAge].Value() != "" {
		n, err := w.fields[fieldAge].NumericValue()
		if err != nil || n < 1 || n > maxAge {
			w.errMsg = "Age should be a number like 7 or 10."
			return w.setFocus(fieldAge)
		}
		age = &n
	}

	interests := splitInterests(w.fields[fieldInterests].Value())

	w.errMsg = ""
	w.submitting = true
	api := w.api
	return func() tea.Msg {
		p, err := api.CreateProfile(context.Background(), name, age, interests)
		return profileCreatedMsg{Profile: p, Err: err}
	}
}

func splitInterests(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (w *WelcomeScreen) transition(p profile.Profile) tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next(p)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := components.Mascot(components.MascotIdle)

	// Sparkles start after the first phase.
	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 0 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 2 {
			lines[2] = s2 + "  " + lines[2] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	if !w.formVisible() {
		sections = append(sections, rendered, "", RenderBanner(width))
		content := strings.Join(sections, "\n")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	// The form needs the room, so the banner shrinks once it appears.
	sections = append(sections, RenderBanner(0), "", lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Let's learn something fun!"), "")

	form := make([]string, 0, fieldCount)
	for _, f := range w.fields {
		form = append(form, f.View())
	}
	cw := components.ContentWidth(width)
	sections = append(sections, components.ArcadeCard(strings.Join(form, "\n\n"), cw))

	switch {
	case w.submitting:
		sections = append(sections, "", theme.Hint.Render("Saving your profile..."))
	case w.errMsg != "":
		sections = append(sections, "", theme.Incorrect.Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
