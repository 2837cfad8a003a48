package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbuddy/internal/client"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/router"
	"github.com/abhisek/quizbuddy/internal/screen"
	"github.com/abhisek/quizbuddy/internal/session"
)

type stubScreen struct{ outcome Outcome }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "summary" }
func (s *stubScreen) Title() string                           { return "Summary" }

// sessionAPI grades against a real in-memory session store.
type sessionAPI struct {
	store *session.Store
	fail  bool
	calls int
}

func (a *sessionAPI) SubmitAnswer(_ context.Context, sessionID string, idx int) (*session.AnswerResult, error) {
	a.calls++
	if a.fail {
		return nil, errors.New("server unavailable")
	}
	res, err := a.store.SubmitAnswer(sessionID, idx)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func newTestQuiz(t *testing.T) (*QuizScreen, *sessionAPI) {
	t.Helper()
	store := session.NewStore()
	qs := quizgen.Fallback("dinosaurs")
	sess := store.Start("profile_1", "dinosaurs", qs, quizgen.SourceFallback)

	api := &sessionAPI{store: store}
	quiz := &client.Quiz{SessionID: sess.ID, Source: sess.Source, Questions: qs}
	next := func(o Outcome) screen.Screen { return &stubScreen{outcome: o} }

	return New(api, profile.Profile{ID: "profile_1", Name: "Ava", Age: 7}, "dinosaurs", quiz, next), api
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// answer presses the number key and feeds the graded result back.
func answer(t *testing.T, s *QuizScreen, r rune) {
	t.Helper()
	_, cmd := s.Update(key(r))
	if cmd == nil {
		t.Fatalf("expected submit command for key %q", r)
	}
	if !s.pending {
		t.Error("expected pending while grading")
	}
	s.Update(cmd())
}

func TestAvaDinosaursRun(t *testing.T) {
	s, _ := newTestQuiz(t)

	wantCorrect := []bool{true, true, true, false}
	for i, r := range []rune{'4', '2', '4', '1'} {
		if s.Question() != i {
			t.Fatalf("on question %d, want %d", s.Question(), i)
		}
		answer(t, s, r)
		if s.feedback == nil {
			t.Fatalf("q%d: expected feedback", i)
		}
		if s.feedback.IsCorrect != wantCorrect[i] {
			t.Errorf("q%d: IsCorrect = %v, want %v", i, s.feedback.IsCorrect, wantCorrect[i])
		}

		_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if i < 3 {
			if cmd != nil {
				t.Fatalf("q%d: continuing should not navigate", i)
			}
			continue
		}

		if cmd == nil {
			t.Fatal("expected navigation to summary")
		}
		replace, ok := cmd().(router.ReplaceScreenMsg)
		if !ok {
			t.Fatal("expected ReplaceScreenMsg")
		}
		out := replace.Screen.(*stubScreen).outcome
		if out.Score != 3 || out.Total != 4 {
			t.Errorf("outcome score %d/%d, want 3/4", out.Score, out.Total)
		}
		if len(out.Results) != 4 || out.Results[3] {
			t.Errorf("results = %v", out.Results)
		}
		if out.Learner.Name != "Ava" || out.Topic != "dinosaurs" {
			t.Errorf("outcome = %+v", out)
		}
	}

	if s.Status() != "3/4" {
		t.Errorf("Status = %q, want 3/4", s.Status())
	}
}

func TestFeedbackShowsExplanation(t *testing.T) {
	s, _ := newTestQuiz(t)
	answer(t, s, '1')

	view := s.View(100, 20)
	if !strings.Contains(view, "Not quite") {
		t.Error("wrong answer should say so")
	}
	if !strings.Contains(view, "All of the above!") {
		t.Error("wrong answer should show the right option")
	}
	if !s.choice.Submitted || s.choice.CorrectIndex != 3 {
		t.Errorf("choice should reveal option 3, got %d", s.choice.CorrectIndex)
	}
}

func TestKeysIgnoredWhilePending(t *testing.T) {
	s, api := newTestQuiz(t)

	_, cmd := s.Update(key('4'))
	if cmd == nil {
		t.Fatal("expected submit")
	}
	if _, again := s.Update(key('3')); again != nil {
		t.Error("second answer while pending should be ignored")
	}
	s.Update(cmd())
	if api.calls != 1 {
		t.Errorf("SubmitAnswer called %d times, want 1", api.calls)
	}
}

func TestSubmitErrorAllowsRetry(t *testing.T) {
	s, api := newTestQuiz(t)
	api.fail = true

	answer(t, s, '2')
	if s.feedback != nil {
		t.Fatal("no feedback on error")
	}
	if !strings.Contains(s.errMsg, "server unavailable") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.choice.Submitted {
		t.Error("choice should be re-enabled after an error")
	}

	api.fail = false
	answer(t, s, '4')
	if s.feedback == nil || !s.feedback.IsCorrect {
		t.Error("retry should succeed")
	}
	if s.Question() != 0 {
		t.Error("retry should stay on the same question")
	}
}

func TestNonContinueKeysIgnoredOnFeedback(t *testing.T) {
	s, _ := newTestQuiz(t)
	answer(t, s, '4')

	s.Update(key('x'))
	if s.Question() != 0 || s.feedback == nil {
		t.Error("'x' should not advance")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if s.Question() != 1 {
		t.Error("space should advance")
	}
}

func TestKeyHints(t *testing.T) {
	s, _ := newTestQuiz(t)
	if len(s.KeyHints()) != 4 {
		t.Errorf("question hints = %d, want 4", len(s.KeyHints()))
	}
	answer(t, s, '4')
	if h := s.KeyHints(); len(h) != 1 || h[0].Description != "Next question" {
		t.Errorf("feedback hints = %+v", h)
	}
}
