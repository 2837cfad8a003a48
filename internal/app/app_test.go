package app

import (
	"net/http/httptest"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbuddy/internal/client"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/server"
	"github.com/abhisek/quizbuddy/internal/session"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	srv := server.New(profile.NewStore(), session.NewStore(),
		quizgen.New(nil, quizgen.DefaultConfig(), nil), nil, server.Options{})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	return newAppModel(c)
}

func TestInitStartsWelcome(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Error("welcome screen should start its animation")
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestViewBeforeResizeIsEmpty(t *testing.T) {
	m := newTestModel(t)
	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
	if m.render() != "" {
		t.Error("nothing should render before the first resize")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = updated.(AppModel)
	if m.width != 40 || m.height != 10 {
		t.Fatalf("size not recorded: %dx%d", m.width, m.height)
	}
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc at the root should not pop")
		}
	}

	nav := navigator{api: nil}
	m.router.Push(nav.topics(profile.Profile{ID: "profile_1", Name: "Ava"}))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc above the root should pop")
	}
}

func TestHeaderShowsLearner(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(AppModel)

	nav := navigator{api: nil}
	m.router.Replace(nav.topics(profile.Profile{ID: "profile_1", Name: "Ava"}))

	content := m.render()
	if !strings.Contains(content, "QuizBuddy") || !strings.Contains(content, "Ava") {
		t.Error("header should show app name and learner")
	}
}
